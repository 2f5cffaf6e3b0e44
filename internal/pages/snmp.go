package pages

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// SNMPPage covers /snmp, the page with the most independent sections:
// v1/v2c read-only communities (button_save_1), trap configuration
// (button_save_2), and v3 authentication (button_save_3).
type SNMPPage struct {
	base
	sections []FormSection
}

func NewSNMPPage(page playwright.Page, baseURL string) *SNMPPage {
	return &SNMPPage{
		base:     newBase(page, baseURL, "/snmp"),
		sections: SectionsFor("/snmp"),
	}
}

// Sections returns the three independently savable SNMP sections in page
// order: communities, traps, v3 authentication.
func (p *SNMPPage) Sections() []FormSection { return p.sections }

// CommunitySection is the v1/v2c read-only community section.
func (p *SNMPPage) CommunitySection() FormSection { return p.sections[0] }

// TrapSection is the trap destination section.
func (p *SNMPPage) TrapSection() FormSection { return p.sections[1] }

// V3Section is the SNMPv3 authentication section.
func (p *SNMPPage) V3Section() FormSection { return p.sections[2] }

// SetCommunity fills one of the read-only community strings (1 or 2).
func (p *SNMPPage) SetCommunity(index int, value string) error {
	name := "ro_community1"
	if index == 2 {
		name = "ro_community2"
	}
	return p.FillField(name, value)
}

// Community reads one of the read-only community strings.
func (p *SNMPPage) Community(index int) (string, error) {
	name := "ro_community1"
	if index == 2 {
		name = "ro_community2"
	}
	return p.FieldValue(name)
}

// SetTrapHost fills the first trap destination address.
func (p *SNMPPage) SetTrapHost(host string) error {
	return p.FillField("trap_host1", host)
}

func (p *SNMPPage) SaveCommunities(timeout time.Duration) error {
	return p.SaveSection(p.CommunitySection(), timeout)
}
func (p *SNMPPage) SaveTraps(timeout time.Duration) error {
	return p.SaveSection(p.TrapSection(), timeout)
}
func (p *SNMPPage) CancelCommunities() error { return p.CancelSection(p.CommunitySection()) }
