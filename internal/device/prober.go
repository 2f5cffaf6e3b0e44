package device

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// PageProber adapts a live Playwright page to the Prober interface. The
// session behind the page must already be authenticated and unlocked.
type PageProber struct {
	page    playwright.Page
	baseURL string
}

func NewPageProber(page playwright.Page, baseURL string) *PageProber {
	return &PageProber{page: page, baseURL: strings.TrimRight(baseURL, "/")}
}

func (p *PageProber) Navigate(path string) error {
	_, err := p.page.Goto(p.baseURL+path, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return fmt.Errorf("goto %s: %w", path, err)
	}
	return nil
}

func (p *PageProber) Title() (string, error) {
	return p.page.Title()
}

func (p *PageProber) Count(selector string) (int, error) {
	return p.page.Locator(selector).Count()
}

func (p *PageProber) CurrentPath() (string, error) {
	u, err := url.Parse(p.page.URL())
	if err != nil {
		return "", fmt.Errorf("parsing current URL: %w", err)
	}
	return u.Path, nil
}
