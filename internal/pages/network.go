package pages

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/kronos-qa/kronos-webui-e2e/internal/device"
)

// NetworkPage covers /network. Series 3 renders one collapsible panel per
// ethernet interface, each an independently savable section; Series 2 has a
// single form for eth0.
type NetworkPage struct {
	base
	profile device.Profile
}

func NewNetworkPage(page playwright.Page, baseURL string, profile device.Profile) *NetworkPage {
	return &NetworkPage{base: newBase(page, baseURL, "/network"), profile: profile}
}

// Sections returns the per-interface form sections expected for the
// resolved profile.
func (p *NetworkPage) Sections() ([]FormSection, error) {
	ports, err := device.ResolvePortDescriptors(p.profile)
	if err != nil {
		return nil, err
	}
	sections := make([]FormSection, 0, len(ports))
	for _, port := range ports {
		sections = append(sections, NetworkSection(port.Name, port.SupportsRedundancy))
	}
	return sections, nil
}

// FormCount counts the configuration forms rendered on the page, one of the
// three variant classification signals.
func (p *NetworkPage) FormCount() (int, error) {
	return p.page.Locator("form").Count()
}

// ExpandPanel opens an interface's collapsible panel so its fields become
// editable. A no-op when the panel is already open.
func (p *NetworkPage) ExpandPanel(port string) error {
	field := p.page.Locator(fmt.Sprintf("input[name='ip_%s']", port))
	if visible, _ := field.IsVisible(); visible {
		return nil
	}
	link := p.page.Locator(fmt.Sprintf("a:has-text('%s')", port))
	if n, _ := link.Count(); n == 0 {
		return fmt.Errorf("no panel link for %s on /network", port)
	}
	if err := link.First().Click(); err != nil {
		return fmt.Errorf("expanding %s panel: %w", port, err)
	}
	if err := field.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return fmt.Errorf("waiting for %s fields: %w", port, err)
	}
	return nil
}

// SetIP fills an interface's IP address field.
func (p *NetworkPage) SetIP(port, ip string) error {
	if err := p.ExpandPanel(port); err != nil {
		return err
	}
	return p.FillField("ip_"+port, ip)
}

// IP reads an interface's IP address field.
func (p *NetworkPage) IP(port string) (string, error) {
	if err := p.ExpandPanel(port); err != nil {
		return "", err
	}
	return p.FieldValue("ip_" + port)
}

// SetMTU fills an interface's MTU field.
func (p *NetworkPage) SetMTU(port string, mtu int) error {
	if err := p.ExpandPanel(port); err != nil {
		return err
	}
	return p.FillField("mtu_"+port, fmt.Sprintf("%d", mtu))
}

// RedundancyModeVisible reports whether the redundancy-mode dropdown exists
// for a port. Present on Variant A, absent on Variant B.
func (p *NetworkPage) RedundancyModeVisible(port string) (bool, error) {
	n, err := p.page.Locator(fmt.Sprintf("select[name='redundancy_mode_%s']", port)).Count()
	if err != nil {
		return false, fmt.Errorf("probing redundancy mode for %s: %w", port, err)
	}
	return n > 0, nil
}

// SaveInterface persists one interface's section only.
func (p *NetworkPage) SaveInterface(port string, timeout time.Duration) error {
	ports, err := device.ResolvePortDescriptors(p.profile)
	if err != nil {
		return err
	}
	for _, pd := range ports {
		if pd.Name == port {
			return p.SaveSection(NetworkSection(pd.Name, pd.SupportsRedundancy), timeout)
		}
	}
	return fmt.Errorf("port %s not in profile %s variant %s", port, p.profile.Series, p.profile.Variant)
}
