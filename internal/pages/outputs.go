package pages

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/kronos-qa/kronos-webui-e2e/internal/device"
)

// OutputsPage covers /outputs: one signal-type dropdown per output channel
// (select name signalN), with time-reference radios whose visibility depends
// on the selected signal family.
type OutputsPage struct {
	base
	profile device.Profile
}

func NewOutputsPage(page playwright.Page, baseURL string, profile device.Profile) *OutputsPage {
	return &OutputsPage{base: newBase(page, baseURL, "/outputs"), profile: profile}
}

// SignalCatalog lists the signal types each output channel offers. On
// Series 2 the first two channels carry the modulated IRIG-B12x family and
// the last two the unmodulated IRIG-B00x family plus pulse outputs; Series 3
// offers the full set on all six channels.
func SignalCatalog(profile device.Profile, output int) []string {
	modulated := []string{"OFF", "IRIG-B120", "IRIG-B122", "IRIG-B124", "IRIG-B126"}
	unmodulated := []string{"OFF", "IRIG-B000", "IRIG-B002", "IRIG-B004", "IRIG-B006", "PPS", "PPM"}
	if profile.Series == device.Series2 {
		if output <= 2 {
			return modulated
		}
		return unmodulated
	}
	full := append([]string{}, modulated[1:]...)
	return append(unmodulated, full...)
}

// TimeReferencesFor returns which time-reference radios are visible for a
// selected signal type: IRIG-B shows UTC and LOCAL, pulse outputs LOCAL only.
func TimeReferencesFor(signal string) []string {
	switch signal {
	case "PPS", "PPM":
		return []string{"LOCAL"}
	default:
		return []string{"UTC", "LOCAL"}
	}
}

// OutputCount counts the rendered signal dropdowns.
func (p *OutputsPage) OutputCount() (int, error) {
	return p.page.Locator("select[name*='signal']").Count()
}

// SetSignal picks a signal type for one output channel (1-based).
func (p *OutputsPage) SetSignal(output int, signal string) error {
	return p.SelectOption(fmt.Sprintf("signal%d", output), signal)
}

// Signal reads the selected signal type for one output channel.
func (p *OutputsPage) Signal(output int) (string, error) {
	return p.SelectedValue(fmt.Sprintf("signal%d", output))
}

// TimeReferenceVisible reports whether a time-reference radio (UTC or
// LOCAL) is rendered for an output.
func (p *OutputsPage) TimeReferenceVisible(output int, ref string) (bool, error) {
	loc := p.page.Locator(fmt.Sprintf("input[name='time_ref_%d'][value='%s']", output, ref))
	n, err := loc.Count()
	if err != nil {
		return false, fmt.Errorf("probing time reference %s for output %d: %w", ref, output, err)
	}
	if n == 0 {
		return false, nil
	}
	return loc.First().IsVisible()
}

// Save persists the outputs form.
func (p *OutputsPage) Save(timeout time.Duration) error {
	return p.SaveSection(FormSection{
		ID:                 "outputs",
		SaveButtonSelector: "button#button_save",
		CancelSelector:     "button#button_cancel",
	}, timeout)
}
