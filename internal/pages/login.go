package pages

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/kronos-qa/kronos-webui-e2e/internal/device"
)

// LoginPage handles status-monitoring authentication. The firmware serves a
// single password field (name sts_password) and a submit button.
type LoginPage struct {
	base
}

func NewLoginPage(page playwright.Page, baseURL string) *LoginPage {
	return &LoginPage{base: newBase(page, baseURL, "/")}
}

var loginErrorMarkers = []string{
	"Login failed",
	"Authentication error",
	"Invalid credentials",
	"Session expired",
}

// Login submits the status password and waits for the dashboard. The whole
// round trip must finish within bound; exceeding it is a TimeoutError.
func (p *LoginPage) Login(password string, bound time.Duration) error {
	start := time.Now()
	if err := p.Navigate(bound); err != nil {
		return err
	}

	field := p.page.Locator("input[name='sts_password']")
	if visible, _ := field.IsVisible(); !visible {
		// Some firmware builds only carry the placeholder.
		field = p.page.GetByPlaceholder("Password")
	}
	if err := field.Fill(password); err != nil {
		return fmt.Errorf("filling password: %w", err)
	}
	if err := p.page.Locator("button[type='submit'], input[type='submit']").First().Click(); err != nil {
		return fmt.Errorf("submitting login: %w", err)
	}
	if err := p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("waiting for login response: %w", err)
	}

	if msg := p.authError(); msg != "" {
		return &device.ValidationError{Field: "sts_password", Value: "********", Detail: msg}
	}
	if elapsed := time.Since(start); elapsed > bound {
		return &device.TimeoutError{
			Operation: "login",
			Detail:    fmt.Sprintf("took %s, bound %s", elapsed.Round(time.Millisecond), bound),
		}
	}
	return nil
}

// authError returns the first visible authentication error marker, if any.
func (p *LoginPage) authError() string {
	for _, marker := range loginErrorMarkers {
		loc := p.page.GetByText(marker)
		if visible, _ := loc.First().IsVisible(); visible {
			return marker
		}
	}
	return ""
}

// LoggedIn reports whether the session reached the dashboard.
func (p *LoginPage) LoggedIn() (bool, error) {
	n, err := p.page.Locator("table").Count()
	if err != nil {
		return false, fmt.Errorf("probing dashboard tables: %w", err)
	}
	return n > 0, nil
}
