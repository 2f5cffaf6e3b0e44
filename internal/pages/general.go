package pages

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// GeneralPage covers /general: device identifier, location, contact, and
// description, all in a single savable section.
type GeneralPage struct {
	base
	section FormSection
}

func NewGeneralPage(page playwright.Page, baseURL string) *GeneralPage {
	return &GeneralPage{
		base:    newBase(page, baseURL, "/general"),
		section: SectionsFor("/general")[0],
	}
}

func (p *GeneralPage) Section() FormSection { return p.section }

func (p *GeneralPage) SetIdentifier(v string) error { return p.FillField("identifier", v) }
func (p *GeneralPage) Identifier() (string, error)  { return p.FieldValue("identifier") }

func (p *GeneralPage) SetLocation(v string) error { return p.FillField("location", v) }
func (p *GeneralPage) Location() (string, error)  { return p.FieldValue("location") }

func (p *GeneralPage) SetContact(v string) error { return p.FillField("contact", v) }
func (p *GeneralPage) Contact() (string, error)  { return p.FieldValue("contact") }

// Save persists the section and waits for the save button to disable.
func (p *GeneralPage) Save(timeout time.Duration) error {
	return p.SaveSection(p.section, timeout)
}

// Cancel reverts unsaved edits.
func (p *GeneralPage) Cancel() error {
	return p.CancelSection(p.section)
}

// SaveEnabled reports the save button state.
func (p *GeneralPage) SaveEnabled() (bool, error) {
	return p.ButtonEnabled(p.section.SaveButtonSelector)
}
