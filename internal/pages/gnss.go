package pages

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// GNSSPage covers /gnss: the constellation section (button_save_gnss) and
// the antenna section, saved independently.
type GNSSPage struct {
	base
	constellations FormSection
	antenna        FormSection
}

func NewGNSSPage(page playwright.Page, baseURL string) *GNSSPage {
	sections := SectionsFor("/gnss")
	return &GNSSPage{
		base:           newBase(page, baseURL, "/gnss"),
		constellations: sections[0],
		antenna:        sections[1],
	}
}

func (p *GNSSPage) ConstellationSection() FormSection { return p.constellations }
func (p *GNSSPage) AntennaSection() FormSection       { return p.antenna }

// SetConstellation toggles one constellation checkbox (gps, galileo,
// glonass, beidou).
func (p *GNSSPage) SetConstellation(name string, enabled bool) error {
	loc := p.page.Locator(fmt.Sprintf("input[name='%s_enabled']", name))
	if n, _ := loc.Count(); n == 0 {
		return fmt.Errorf("no %s constellation checkbox on /gnss", name)
	}
	if enabled {
		return loc.Check()
	}
	return loc.Uncheck()
}

// ConstellationEnabled reads one constellation checkbox.
func (p *GNSSPage) ConstellationEnabled(name string) (bool, error) {
	checked, err := p.page.Locator(fmt.Sprintf("input[name='%s_enabled']", name)).IsChecked()
	if err != nil {
		return false, fmt.Errorf("reading %s checkbox: %w", name, err)
	}
	return checked, nil
}

// SetAntennaDelay fills the antenna cable delay compensation field (ns).
func (p *GNSSPage) SetAntennaDelay(ns int) error {
	return p.FillField("antenna_delay", fmt.Sprintf("%d", ns))
}

func (p *GNSSPage) SaveConstellations(timeout time.Duration) error {
	return p.SaveSection(p.constellations, timeout)
}
func (p *GNSSPage) SaveAntenna(timeout time.Duration) error {
	return p.SaveSection(p.antenna, timeout)
}
func (p *GNSSPage) CancelConstellations() error { return p.CancelSection(p.constellations) }
