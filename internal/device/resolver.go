package device

import (
	"fmt"
	"strings"
)

// Title markers and probe selectors, taken from the device firmware's
// rendered pages.
const (
	series2TitleMarker = "Series 2"
	series3TitleMarker = "Series 3"

	outputSelectSelector    = "select[name*='signal']"
	ptpProfileSelector      = "select[id*='profile']"
	networkFormSelector     = "form"
	redundancyFieldSelector = "select[name^='redundancy_mode_']"
)

// Prober is the narrow view of a browser session the resolver needs. The
// live implementation wraps a Playwright page; tests substitute a fake.
type Prober interface {
	// Navigate opens a configuration path relative to the device base URL.
	Navigate(path string) error
	// Title returns the current document title.
	Title() (string, error)
	// Count returns how many elements match the selector on the current page.
	Count(selector string) (int, error)
	// CurrentPath returns the path component of the current URL, so the
	// resolver can see redirects away from an unsupported page.
	CurrentPath() (string, error)
}

// Resolver classifies a device through independent signals and refuses to
// guess when they disagree. All probing is read-only navigation against the
// already-authenticated session.
type Resolver struct {
	probe Prober
}

func NewResolver(p Prober) *Resolver {
	return &Resolver{probe: p}
}

// DetectSeries inspects the post-login page title for a series marker.
func (r *Resolver) DetectSeries() (Series, error) {
	title, err := r.probe.Title()
	if err != nil {
		return 0, &EnvironmentError{Detail: "reading page title", Err: err}
	}
	is2 := strings.Contains(title, series2TitleMarker)
	is3 := strings.Contains(title, series3TitleMarker)
	switch {
	case is2 && is3:
		return 0, &ConsistencyError{
			Signals: []string{"title"},
			Detail:  fmt.Sprintf("title %q carries both series markers", title),
		}
	case is2:
		return Series2, nil
	case is3:
		return Series3, nil
	default:
		return 0, &DetectionError{
			Signal: "title",
			Detail: fmt.Sprintf("no series marker in title %q (unsupported firmware?)", title),
		}
	}
}

// DetectOutputCount counts output-configuration elements on /outputs and
// cross-checks them against the title-derived series.
func (r *Resolver) DetectOutputCount(s Series) (int, error) {
	if err := r.probe.Navigate("/outputs"); err != nil {
		return 0, &EnvironmentError{Detail: "navigating to /outputs", Err: err}
	}
	n, err := r.probe.Count(outputSelectSelector)
	if err != nil {
		return 0, &EnvironmentError{Detail: "counting output selects", Err: err}
	}
	want := Series2OutputCount
	if s == Series3 {
		want = Series3OutputCount
	}
	if n != want {
		return 0, &ConsistencyError{
			Signals: []string{"title", "output-count"},
			Detail:  fmt.Sprintf("%s by title but %d outputs (expected %d)", s, n, want),
		}
	}
	return n, nil
}

// DetectPTPCapability verifies the /ptp page matches the series: present
// with configuration forms on Series 3, absent (404 or redirected away) on
// Series 2.
func (r *Resolver) DetectPTPCapability(s Series) (bool, error) {
	if err := r.probe.Navigate("/ptp"); err != nil {
		// A refused navigation counts as an absent page only for Series 2.
		if s == Series2 {
			return false, nil
		}
		return false, &EnvironmentError{Detail: "navigating to /ptp", Err: err}
	}
	path, err := r.probe.CurrentPath()
	if err != nil {
		return false, &EnvironmentError{Detail: "reading current path", Err: err}
	}
	onPTPPage := strings.Contains(path, "/ptp")
	forms := 0
	if onPTPPage {
		if forms, err = r.probe.Count(ptpProfileSelector); err != nil {
			return false, &EnvironmentError{Detail: "counting PTP profile selects", Err: err}
		}
	}
	hasPTP := onPTPPage && forms > 0
	if s == Series2 && hasPTP {
		return false, &ConsistencyError{
			Signals: []string{"title", "ptp-page"},
			Detail:  "Series 2 by title but /ptp serves configuration forms",
		}
	}
	if s == Series3 && !hasPTP {
		return false, &ConsistencyError{
			Signals: []string{"title", "ptp-page"},
			Detail:  fmt.Sprintf("Series 3 by title but /ptp unusable (on page: %v, forms: %d)", onPTPPage, forms),
		}
	}
	return hasPTP, nil
}

// DetectVariant classifies a Series-3 device as Variant A or B from three
// independent signals: PTP form count, network form count, and presence of
// the redundancy-mode field. All three must agree; any disagreement aborts
// classification for manual triage.
func (r *Resolver) DetectVariant(s Series) (Variant, int, error) {
	if s != Series3 {
		return VariantNone, 0, nil
	}

	if err := r.probe.Navigate("/ptp"); err != nil {
		return VariantNone, 0, &EnvironmentError{Detail: "navigating to /ptp", Err: err}
	}
	ptpForms, err := r.probe.Count(ptpProfileSelector)
	if err != nil {
		return VariantNone, 0, &EnvironmentError{Detail: "counting PTP profile selects", Err: err}
	}

	if err := r.probe.Navigate("/network"); err != nil {
		return VariantNone, 0, &EnvironmentError{Detail: "navigating to /network", Err: err}
	}
	netForms, err := r.probe.Count(networkFormSelector)
	if err != nil {
		return VariantNone, 0, &EnvironmentError{Detail: "counting network forms", Err: err}
	}
	redundancy, err := r.probe.Count(redundancyFieldSelector)
	if err != nil {
		return VariantNone, 0, &EnvironmentError{Detail: "probing redundancy field", Err: err}
	}

	byPTP, okPTP := variantFromPTPForms(ptpForms)
	byNet, okNet := variantFromNetworkForms(netForms)
	byRed := VariantB
	if redundancy > 0 {
		byRed = VariantA
	}

	if !okPTP || !okNet {
		return VariantNone, 0, &DetectionError{
			Signal: "variant",
			Detail: fmt.Sprintf("unrecognized form counts: %d PTP, %d network", ptpForms, netForms),
		}
	}
	if byPTP != byNet || byNet != byRed {
		return VariantNone, 0, &ConsistencyError{
			Signals: []string{"ptp-forms", "network-forms", "redundancy-field"},
			Detail: fmt.Sprintf("PTP forms say %s, network forms say %s, redundancy field says %s",
				byPTP, byNet, byRed),
		}
	}
	return byPTP, netForms, nil
}

func variantFromPTPForms(n int) (Variant, bool) {
	switch n {
	case VariantAPTPFormCount:
		return VariantA, true
	case VariantBPTPFormCount:
		return VariantB, true
	}
	return VariantNone, false
}

func variantFromNetworkForms(n int) (Variant, bool) {
	switch n {
	case VariantANetworkFormCount:
		return VariantA, true
	case VariantBNetworkFormCount:
		return VariantB, true
	}
	return VariantNone, false
}

// Resolve runs the full classification pipeline and returns the immutable
// session profile. Errors abort resolution; the profile is never guessed.
func (r *Resolver) Resolve() (Profile, error) {
	series, err := r.DetectSeries()
	if err != nil {
		return Profile{}, err
	}
	outputs, err := r.DetectOutputCount(series)
	if err != nil {
		return Profile{}, err
	}
	ptp, err := r.DetectPTPCapability(series)
	if err != nil {
		return Profile{}, err
	}
	variant, netForms, err := r.DetectVariant(series)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		Series:           series,
		Variant:          variant,
		OutputCount:      outputs,
		PTPCapable:       ptp,
		NetworkFormCount: netForms,
	}, nil
}
