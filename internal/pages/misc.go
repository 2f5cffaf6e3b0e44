package pages

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// SectionProbe is a bare page object for tests that only need navigation
// and URL assertions against an arbitrary section path.
type SectionProbe struct {
	base
}

func NewSectionProbe(page playwright.Page, baseURL, path string) *SectionProbe {
	return &SectionProbe{base: newBase(page, baseURL, path)}
}

// DisplayPage covers /display: front-panel brightness and display mode.
type DisplayPage struct {
	base
	section FormSection
}

func NewDisplayPage(page playwright.Page, baseURL string) *DisplayPage {
	return &DisplayPage{
		base:    newBase(page, baseURL, "/display"),
		section: SectionsFor("/display")[0],
	}
}

func (p *DisplayPage) Section() FormSection { return p.section }

func (p *DisplayPage) SetBrightness(level string) error {
	return p.SelectOption("brightness", level)
}

func (p *DisplayPage) Save(timeout time.Duration) error {
	return p.SaveSection(p.section, timeout)
}

// SyslogPage covers /syslog: remote log destination and enable flag.
type SyslogPage struct {
	base
	section FormSection
}

func NewSyslogPage(page playwright.Page, baseURL string) *SyslogPage {
	return &SyslogPage{
		base:    newBase(page, baseURL, "/syslog"),
		section: SectionsFor("/syslog")[0],
	}
}

func (p *SyslogPage) Section() FormSection { return p.section }

func (p *SyslogPage) SetHost(host string) error { return p.FillField("syslog_host", host) }
func (p *SyslogPage) Host() (string, error)     { return p.FieldValue("syslog_host") }

func (p *SyslogPage) SetPort(port int) error {
	return p.FillField("syslog_port", fmt.Sprintf("%d", port))
}

func (p *SyslogPage) Save(timeout time.Duration) error {
	return p.SaveSection(p.section, timeout)
}

// UploadPage covers /upload: firmware and configuration file upload. The
// suite only asserts the form's presence; actually flashing a device from a
// test run is off the table.
type UploadPage struct {
	base
}

func NewUploadPage(page playwright.Page, baseURL string) *UploadPage {
	return &UploadPage{base: newBase(page, baseURL, "/upload")}
}

// HasFileInput reports whether the upload form is rendered.
func (p *UploadPage) HasFileInput() (bool, error) {
	n, err := p.page.Locator("input[type='file']").Count()
	if err != nil {
		return false, fmt.Errorf("probing upload form: %w", err)
	}
	return n > 0, nil
}

// AccessPage covers /access: password changes and the HTTPS enforcement
// toggle.
type AccessPage struct {
	base
}

func NewAccessPage(page playwright.Page, baseURL string) *AccessPage {
	return &AccessPage{base: newBase(page, baseURL, "/access")}
}

// HasPasswordFields reports whether the password-change form is rendered.
func (p *AccessPage) HasPasswordFields() (bool, error) {
	n, err := p.page.Locator("input[type='password']").Count()
	if err != nil {
		return false, fmt.Errorf("probing password fields: %w", err)
	}
	return n >= 1, nil
}

// HTTPSEnforced reads the HTTPS enforcement checkbox if present.
func (p *AccessPage) HTTPSEnforced() (bool, error) {
	loc := p.page.Locator("input[name='https_only']")
	if n, _ := loc.Count(); n == 0 {
		return false, nil
	}
	return loc.IsChecked()
}
