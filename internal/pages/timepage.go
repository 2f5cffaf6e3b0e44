package pages

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// TimePage covers /time: the timezone section (button_save_1) and the DST
// section (button_save_2), saved independently.
type TimePage struct {
	base
	timezone FormSection
	dst      FormSection
}

func NewTimePage(page playwright.Page, baseURL string) *TimePage {
	sections := SectionsFor("/time")
	return &TimePage{
		base:     newBase(page, baseURL, "/time"),
		timezone: sections[0],
		dst:      sections[1],
	}
}

func (p *TimePage) TimezoneSection() FormSection { return p.timezone }
func (p *TimePage) DSTSection() FormSection      { return p.dst }

// SetTimezone picks a timezone from the dropdown.
func (p *TimePage) SetTimezone(tz string) error {
	return p.SelectOption("timezone", tz)
}

// Timezone reads the currently selected timezone.
func (p *TimePage) Timezone() (string, error) {
	return p.SelectedValue("timezone")
}

// AvailableTimezones lists the dropdown's options.
func (p *TimePage) AvailableTimezones() ([]string, error) {
	options := p.page.Locator("select[name='timezone'] option")
	n, err := options.Count()
	if err != nil {
		return nil, err
	}
	zones := make([]string, 0, n)
	for i := 0; i < n; i++ {
		text, err := options.Nth(i).InnerText()
		if err != nil {
			continue
		}
		zones = append(zones, text)
	}
	return zones, nil
}

// SetDSTEnabled toggles the DST checkbox.
func (p *TimePage) SetDSTEnabled(enabled bool) error {
	loc := p.page.Locator("input[name='dst_enabled']")
	if enabled {
		return loc.Check()
	}
	return loc.Uncheck()
}

func (p *TimePage) SaveTimezone(timeout time.Duration) error { return p.SaveSection(p.timezone, timeout) }
func (p *TimePage) SaveDST(timeout time.Duration) error      { return p.SaveSection(p.dst, timeout) }
func (p *TimePage) CancelTimezone() error                    { return p.CancelSection(p.timezone) }
func (p *TimePage) CancelDST() error                         { return p.CancelSection(p.dst) }
