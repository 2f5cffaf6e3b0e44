package pages

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/kronos-qa/kronos-webui-e2e/internal/device"
)

// PTPPage covers /ptp, Series 3 only: one collapsible configuration form
// per PTP-capable port (select id ethN_profile), each saved independently.
type PTPPage struct {
	base
	profile device.Profile
}

func NewPTPPage(page playwright.Page, baseURL string, profile device.Profile) *PTPPage {
	return &PTPPage{base: newBase(page, baseURL, "/ptp"), profile: profile}
}

// Ports returns the PTP-capable ports for the resolved profile: eth1 and
// eth3 on Variant A, eth1 through eth4 on Variant B.
func (p *PTPPage) Ports() []string {
	return device.PTPPorts(p.profile)
}

// FormCount counts the rendered PTP profile dropdowns, one per port form.
func (p *PTPPage) FormCount() (int, error) {
	return p.page.Locator("select[id*='profile']").Count()
}

// ExpandPanel opens a port's collapsible panel if it is closed.
func (p *PTPPage) ExpandPanel(port string) error {
	sel := p.page.Locator(fmt.Sprintf("select#%s_profile", port))
	if visible, _ := sel.IsVisible(); visible {
		return nil
	}
	link := p.page.Locator(fmt.Sprintf("a:has-text('%s')", port))
	if n, _ := link.Count(); n == 0 {
		return fmt.Errorf("no PTP panel for %s", port)
	}
	if err := link.First().Click(); err != nil {
		return fmt.Errorf("expanding PTP panel %s: %w", port, err)
	}
	if err := sel.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return fmt.Errorf("waiting for %s profile select: %w", port, err)
	}
	return nil
}

// SetProfile selects a PTP profile (e.g. "IEEE C37.238", "G.8275.1") for a
// port.
func (p *PTPPage) SetProfile(port, profile string) error {
	if err := p.ExpandPanel(port); err != nil {
		return err
	}
	if _, err := p.page.Locator(fmt.Sprintf("select#%s_profile", port)).SelectOption(
		playwright.SelectOptionValues{Values: playwright.StringSlice(profile)},
	); err != nil {
		return fmt.Errorf("selecting PTP profile %s for %s: %w", profile, port, err)
	}
	return nil
}

// Profile reads the selected PTP profile for a port.
func (p *PTPPage) Profile(port string) (string, error) {
	if err := p.ExpandPanel(port); err != nil {
		return "", err
	}
	v, err := p.page.Locator(fmt.Sprintf("select#%s_profile", port)).InputValue()
	if err != nil {
		return "", fmt.Errorf("reading PTP profile for %s: %w", port, err)
	}
	return v, nil
}

// SetDomain fills the PTP domain number field for a port.
func (p *PTPPage) SetDomain(port string, domain int) error {
	if err := p.ExpandPanel(port); err != nil {
		return err
	}
	return p.FillField(fmt.Sprintf("domain_number_%s", port), fmt.Sprintf("%d", domain))
}

// SavePort persists one port's PTP section only.
func (p *PTPPage) SavePort(port string, timeout time.Duration) error {
	return p.SaveSection(PTPSection(port), timeout)
}

// CancelPort reverts one port's unsaved PTP edits.
func (p *PTPPage) CancelPort(port string) error {
	return p.CancelSection(PTPSection(port))
}
