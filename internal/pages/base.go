package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/kronos-qa/kronos-webui-e2e/internal/device"
)

// base carries what every page object needs: the Playwright page, the device
// root URL, and the page's own path.
type base struct {
	page    playwright.Page
	baseURL string
	path    string
}

func newBase(page playwright.Page, baseURL, path string) base {
	return base{page: page, baseURL: strings.TrimRight(baseURL, "/"), path: path}
}

// Page exposes the underlying Playwright page for ad-hoc assertions.
func (b *base) Page() playwright.Page { return b.page }

// Path returns the page's path relative to the device root.
func (b *base) Path() string { return b.path }

// Navigate opens the page and requires it to load within the bound. A slow
// load is a TimeoutError, which is a test failure, not a retry trigger.
func (b *base) Navigate(bound time.Duration) error {
	_, err := b.page.Goto(b.baseURL+b.path, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(bound.Milliseconds())),
	})
	if err != nil {
		if strings.Contains(err.Error(), "Timeout") {
			return &device.TimeoutError{
				Operation: "loading " + b.path,
				Detail:    fmt.Sprintf("bound %s: %v", bound, err),
			}
		}
		return &device.EnvironmentError{Detail: "navigating to " + b.path, Err: err}
	}
	return nil
}

// Reload re-fetches the page, used by round-trip persistence checks.
func (b *base) Reload() error {
	if _, err := b.page.Reload(playwright.PageReloadOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("reloading %s: %w", b.path, err)
	}
	return nil
}

// FillField sets a text/numeric input by field name.
func (b *base) FillField(name, value string) error {
	loc := b.page.Locator(fmt.Sprintf("input[name='%s']", name))
	if err := loc.Fill(value); err != nil {
		return fmt.Errorf("filling %s: %w", name, err)
	}
	return nil
}

// FieldValue reads the current value of an input by field name.
func (b *base) FieldValue(name string) (string, error) {
	v, err := b.page.Locator(fmt.Sprintf("input[name='%s']", name)).InputValue()
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return v, nil
}

// SelectOption picks an option of a dropdown by field name.
func (b *base) SelectOption(name, value string) error {
	loc := b.page.Locator(fmt.Sprintf("select[name='%s']", name))
	if _, err := loc.SelectOption(playwright.SelectOptionValues{
		Values: playwright.StringSlice(value),
	}); err != nil {
		return fmt.Errorf("selecting %s=%s: %w", name, value, err)
	}
	return nil
}

// SelectedValue reads the current value of a dropdown by field name.
func (b *base) SelectedValue(name string) (string, error) {
	v, err := b.page.Locator(fmt.Sprintf("select[name='%s']", name)).InputValue()
	if err != nil {
		return "", fmt.Errorf("reading select %s: %w", name, err)
	}
	return v, nil
}

// ButtonEnabled reports whether the button matched by selector is enabled.
// A missing button is an error, not "disabled": the section inventory comes
// from the form catalog and a vanished button means the page changed.
func (b *base) ButtonEnabled(selector string) (bool, error) {
	loc := b.page.Locator(selector)
	n, err := loc.Count()
	if err != nil {
		return false, fmt.Errorf("locating %s: %w", selector, err)
	}
	if n == 0 {
		return false, fmt.Errorf("no element matches %s on %s", selector, b.path)
	}
	enabled, err := loc.First().IsEnabled()
	if err != nil {
		return false, fmt.Errorf("reading enabled state of %s: %w", selector, err)
	}
	return enabled, nil
}

// SaveSection clicks a section's save button and waits for it to disable
// again, which is how the firmware signals a completed save.
func (b *base) SaveSection(section FormSection, timeout time.Duration) error {
	btn := b.page.Locator(section.SaveButtonSelector)
	if err := btn.Click(); err != nil {
		return fmt.Errorf("clicking save for %s: %w", section.ID, err)
	}
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		enabled, err := btn.IsEnabled()
		if err == nil && !enabled {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return &device.TimeoutError{
		Operation: "saving " + section.ID,
		Detail:    fmt.Sprintf("save button still enabled after %s", timeout),
	}
}

// CancelSection clicks a section's cancel button, reverting its fields to
// their last-saved values.
func (b *base) CancelSection(section FormSection) error {
	if err := b.page.Locator(section.CancelSelector).Click(); err != nil {
		return fmt.Errorf("clicking cancel for %s: %w", section.ID, err)
	}
	return nil
}
