// Package helpers provides browser and session setup for the e2e suite.
package helpers

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/kronos-qa/kronos-webui-e2e/internal/config"
)

// BrowserHelper owns one exclusive browser session against the device under
// test. Every test case creates its own; parallel workers never share one.
type BrowserHelper struct {
	Playwright *playwright.Playwright
	Browser    playwright.Browser
	Context    playwright.BrowserContext
	Page       playwright.Page
	Config     *config.Config
	t          *testing.T
}

// NewBrowserHelper creates a helper bound to the process-wide configuration.
func NewBrowserHelper(t *testing.T) *BrowserHelper {
	return &BrowserHelper{
		Config: config.Get(),
		t:      t,
	}
}

// RequireDevice skips the test when no device is configured. E2E categories
// call this first; unit-level suites never touch it.
func RequireDevice(t *testing.T) {
	if !config.Get().HasDevice() {
		t.Skip("KRONOS_DEVICE_IP not set; skipping device test")
	}
}

// Setup starts Playwright, launches the configured browser engine, and
// opens a fresh page.
func (b *BrowserHelper) Setup() error {
	var pw *playwright.Playwright
	var err error
	if os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1" {
		if err = playwright.Install(); err != nil {
			return fmt.Errorf("could not install playwright browsers: %w", err)
		}
	}
	pw, err = playwright.Run()
	if err != nil {
		// Retry once after an explicit driver install; stale driver
		// versions are the usual cause.
		_ = playwright.Install()
		pw, err = playwright.Run()
		if err != nil {
			return fmt.Errorf("could not start playwright after retry: %w", err)
		}
	}
	b.Playwright = pw

	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(b.Config.Headless),
		SlowMo:   playwright.Float(float64(b.Config.SlowMo)),
	}
	var browser playwright.Browser
	switch b.Config.Browser {
	case "firefox":
		browser, err = pw.Firefox.Launch(launch)
	case "webkit":
		browser, err = pw.WebKit.Launch(launch)
	default:
		browser, err = pw.Chromium.Launch(launch)
	}
	if err != nil {
		return fmt.Errorf("could not launch %s: %w", b.Config.Browser, err)
	}
	b.Browser = browser

	opts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1280, Height: 720},
		// Device firmware ships a self-signed certificate.
		IgnoreHttpsErrors: playwright.Bool(true),
	}
	if b.Config.Videos {
		opts.RecordVideo = &playwright.RecordVideo{
			Dir: b.Config.ResultsDir + "/videos",
		}
	}
	context, err := browser.NewContext(opts)
	if err != nil {
		return fmt.Errorf("could not create context: %w", err)
	}
	b.Context = context

	page, err := context.NewPage()
	if err != nil {
		return fmt.Errorf("could not create page: %w", err)
	}
	b.Page = page
	page.SetDefaultTimeout(float64(b.Config.Timeout.Milliseconds()))

	return nil
}

// TearDown captures a screenshot when the test failed, then closes
// everything in reverse order.
func (b *BrowserHelper) TearDown() {
	if b.t.Failed() && b.Config.Screenshots && b.Page != nil {
		path := fmt.Sprintf("%s/screenshots/%s_%d.png",
			b.Config.ResultsDir, b.t.Name(), time.Now().Unix())
		_, _ = b.Page.Screenshot(playwright.PageScreenshotOptions{
			Path: playwright.String(path),
		})
	}
	if b.Page != nil {
		_ = b.Page.Close()
	}
	if b.Context != nil {
		_ = b.Context.Close()
	}
	if b.Browser != nil {
		_ = b.Browser.Close()
	}
	if b.Playwright != nil {
		_ = b.Playwright.Stop()
	}
}

// NavigateTo opens a path relative to the device base URL.
func (b *BrowserHelper) NavigateTo(path string) error {
	_, err := b.Page.Goto(b.Config.BaseURL()+path, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return err
}

// WaitForLoad waits for the current navigation to settle.
func (b *BrowserHelper) WaitForLoad() error {
	return b.Page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateDomcontentloaded,
	})
}
