package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// DashboardPage scrapes the post-login status dashboard. Both series render
// four tables: time information, GNSS status, device information, and
// satellite tracking.
type DashboardPage struct {
	base
}

const dashboardTableCount = 4

func NewDashboardPage(page playwright.Page, baseURL string) *DashboardPage {
	return &DashboardPage{base: newBase(page, baseURL, "/")}
}

// TableCount returns how many status tables are rendered.
func (p *DashboardPage) TableCount() (int, error) {
	return p.page.Locator("table").Count()
}

// Loaded reports whether the full dashboard is visible.
func (p *DashboardPage) Loaded() (bool, error) {
	n, err := p.TableCount()
	if err != nil {
		return false, err
	}
	return n >= dashboardTableCount, nil
}

// DeviceInfo scrapes the device-information table into a map of row label
// to value (hardware model, serial number, firmware version, ...).
func (p *DashboardPage) DeviceInfo() (map[string]string, error) {
	rows := p.page.Locator("table:has-text('Device Information') tr")
	n, err := rows.Count()
	if err != nil {
		return nil, fmt.Errorf("counting device info rows: %w", err)
	}
	info := make(map[string]string, n)
	for i := 0; i < n; i++ {
		cells := rows.Nth(i).Locator("td")
		c, err := cells.Count()
		if err != nil || c < 2 {
			continue
		}
		label, err := cells.Nth(0).InnerText()
		if err != nil {
			continue
		}
		value, err := cells.Nth(1).InnerText()
		if err != nil {
			continue
		}
		info[strings.TrimSpace(label)] = strings.TrimSpace(value)
	}
	return info, nil
}

// GNSSLocked reports whether the GNSS status table shows a LOCKED state.
func (p *DashboardPage) GNSSLocked() (bool, error) {
	loc := p.page.Locator("table:has-text('GNSS') td:has-text('LOCKED')")
	n, err := loc.Count()
	if err != nil {
		return false, fmt.Errorf("probing GNSS state: %w", err)
	}
	return n > 0, nil
}

// SatelliteCount returns the number of rows in the satellite tracking table.
func (p *DashboardPage) SatelliteCount() (int, error) {
	rows := p.page.Locator("table:has-text('Satellite') tbody tr")
	n, err := rows.Count()
	if err != nil {
		return 0, fmt.Errorf("counting satellite rows: %w", err)
	}
	return n, nil
}

// HasConfigureLink reports whether the dashboard offers the Configure entry
// point for the second authentication step.
func (p *DashboardPage) HasConfigureLink() (bool, error) {
	n, err := p.page.Locator("a:has-text('Configure')").Count()
	if err != nil {
		return false, fmt.Errorf("probing Configure link: %w", err)
	}
	return n > 0, nil
}
