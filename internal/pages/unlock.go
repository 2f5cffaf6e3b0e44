package pages

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/kronos-qa/kronos-webui-e2e/internal/device"
)

// UnlockPage handles the second authentication step: unlocking configuration
// mode from the dashboard's Configure link (field name cfg_password).
type UnlockPage struct {
	base
}

func NewUnlockPage(page playwright.Page, baseURL string) *UnlockPage {
	return &UnlockPage{base: newBase(page, baseURL, "/configure")}
}

// Unlock follows the Configure link, submits the configuration password,
// and verifies the section links appear.
func (p *UnlockPage) Unlock(password string, bound time.Duration) error {
	configure := p.page.Locator("a:has-text('Configure')")
	if visible, _ := configure.First().IsVisible(); visible {
		if err := configure.First().Click(); err != nil {
			return fmt.Errorf("clicking Configure: %w", err)
		}
	} else if err := p.Navigate(bound); err != nil {
		return err
	}

	field := p.page.Locator("input[name='cfg_password']")
	if visible, _ := field.IsVisible(); !visible {
		// Already unlocked sessions skip the password prompt.
		if unlocked, _ := p.Unlocked(); unlocked {
			return nil
		}
		return &device.EnvironmentError{Detail: "configuration password field not found"}
	}
	if err := field.Fill(password); err != nil {
		return fmt.Errorf("filling configuration password: %w", err)
	}
	if err := p.page.Locator("button[type='submit'], input[type='submit']").First().Click(); err != nil {
		return fmt.Errorf("submitting unlock: %w", err)
	}
	if err := p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("waiting for unlock response: %w", err)
	}

	unlocked, err := p.Unlocked()
	if err != nil {
		return err
	}
	if !unlocked {
		return &device.ValidationError{
			Field:  "cfg_password",
			Value:  "********",
			Detail: "configuration sections did not appear after unlock",
		}
	}
	return nil
}

// Unlocked reports whether configuration sections are reachable.
func (p *UnlockPage) Unlocked() (bool, error) {
	n, err := p.page.Locator("a[href='/general']").Count()
	if err != nil {
		return false, fmt.Errorf("probing section links: %w", err)
	}
	return n > 0, nil
}
