// Package pages holds the page objects for the Kronos web configuration
// interface, one per section page, plus the form-section model shared by
// the save/cancel state assertions.
package pages

import (
	"fmt"
	"strconv"
)

// FieldType classifies a configuration form field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldIP       FieldType = "ip"
	FieldNumeric  FieldType = "numeric"
	FieldDecimal  FieldType = "decimal"
	FieldCheckbox FieldType = "checkbox"
	FieldDropdown FieldType = "dropdown"
)

// IntRange is an inclusive numeric bound for a numeric field.
type IntRange struct {
	Min int
	Max int
}

// FieldDescriptor describes one named form field. Descriptors are fixed
// per firmware; tests mutate live field values only.
type FieldDescriptor struct {
	Name         string
	Type         FieldType
	MaxLength    int
	Range        *IntRange
	DefaultValue string
}

// Selector returns the locator string for the field's input element.
func (f FieldDescriptor) Selector() string {
	switch f.Type {
	case FieldDropdown:
		return fmt.Sprintf("select[name='%s']", f.Name)
	default:
		return fmt.Sprintf("input[name='%s']", f.Name)
	}
}

// Accepts reports whether a raw value is inside the field's declared
// constraints. It mirrors what the device firmware enforces; validation
// tests assert the live device agrees.
func (f FieldDescriptor) Accepts(value string) bool {
	if f.MaxLength > 0 && len(value) > f.MaxLength {
		return false
	}
	if f.Type == FieldNumeric && f.Range != nil {
		n, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		return n >= f.Range.Min && n <= f.Range.Max
	}
	return true
}

// FormSection is one independently savable region of a configuration page.
// Its save button state is independent of every sibling section on the same
// page: enabling one section's save control must never enable another's.
type FormSection struct {
	ID                 string
	SaveButtonSelector string
	CancelSelector     string
	Fields             []FieldDescriptor
}

// Field looks a descriptor up by name.
func (s FormSection) Field(name string) (FieldDescriptor, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// Shared field constraints observed on the device.
const (
	IdentifierMaxLength = 32
	DomainNumberMin     = 0
	DomainNumberMax     = 255
)

// sectionCatalog maps a page path to its independently savable sections.
// SNMP has three, Time and GNSS two each; most pages have one.
var sectionCatalog = map[string][]FormSection{
	"/general": {
		{
			ID:                 "general",
			SaveButtonSelector: "button#button_save",
			CancelSelector:     "button#button_cancel",
			Fields: []FieldDescriptor{
				{Name: "identifier", Type: FieldText, MaxLength: IdentifierMaxLength},
				{Name: "location", Type: FieldText, MaxLength: 64},
				{Name: "contact", Type: FieldText, MaxLength: 64},
				{Name: "description", Type: FieldText, MaxLength: 64},
			},
		},
	},
	"/time": {
		{
			ID:                 "timezone",
			SaveButtonSelector: "button#button_save_1",
			CancelSelector:     "button#button_cancel_1",
			Fields: []FieldDescriptor{
				{Name: "timezone", Type: FieldDropdown, DefaultValue: "UTC"},
			},
		},
		{
			ID:                 "dst",
			SaveButtonSelector: "button#button_save_2",
			CancelSelector:     "button#button_cancel_2",
			Fields: []FieldDescriptor{
				{Name: "dst_enabled", Type: FieldCheckbox},
				{Name: "dst_offset", Type: FieldNumeric, Range: &IntRange{Min: 0, Max: 120}},
			},
		},
	},
	"/gnss": {
		{
			ID:                 "constellations",
			SaveButtonSelector: "button#button_save_gnss",
			CancelSelector:     "button#button_cancel_gnss",
			Fields: []FieldDescriptor{
				{Name: "gps_enabled", Type: FieldCheckbox, DefaultValue: "true"},
				{Name: "galileo_enabled", Type: FieldCheckbox},
				{Name: "glonass_enabled", Type: FieldCheckbox},
				{Name: "beidou_enabled", Type: FieldCheckbox},
			},
		},
		{
			ID:                 "antenna",
			SaveButtonSelector: "button#button_save_antenna",
			CancelSelector:     "button#button_cancel_antenna",
			Fields: []FieldDescriptor{
				{Name: "antenna_delay", Type: FieldNumeric, Range: &IntRange{Min: 0, Max: 99999}},
				{Name: "elevation_mask", Type: FieldNumeric, Range: &IntRange{Min: 0, Max: 90}},
			},
		},
	},
	"/snmp": {
		{
			ID:                 "communities",
			SaveButtonSelector: "button#button_save_1",
			CancelSelector:     "button#button_cancel_1",
			Fields: []FieldDescriptor{
				{Name: "ro_community1", Type: FieldText, MaxLength: 32, DefaultValue: "public"},
				{Name: "ro_community2", Type: FieldText, MaxLength: 32},
			},
		},
		{
			ID:                 "traps",
			SaveButtonSelector: "button#button_save_2",
			CancelSelector:     "button#button_cancel_2",
			Fields: []FieldDescriptor{
				{Name: "trap_host1", Type: FieldIP},
				{Name: "trap_community", Type: FieldText, MaxLength: 32},
				{Name: "trap_enabled", Type: FieldCheckbox},
			},
		},
		{
			ID:                 "v3auth",
			SaveButtonSelector: "button#button_save_3",
			CancelSelector:     "button#button_cancel_3",
			Fields: []FieldDescriptor{
				{Name: "v3_username", Type: FieldText, MaxLength: 32},
				{Name: "v3_auth_protocol", Type: FieldDropdown},
				{Name: "v3_priv_protocol", Type: FieldDropdown},
			},
		},
	},
	"/syslog": {
		{
			ID:                 "syslog",
			SaveButtonSelector: "button#button_save",
			CancelSelector:     "button#button_cancel",
			Fields: []FieldDescriptor{
				{Name: "syslog_host", Type: FieldIP},
				{Name: "syslog_port", Type: FieldNumeric, Range: &IntRange{Min: 1, Max: 65535}, DefaultValue: "514"},
				{Name: "syslog_enabled", Type: FieldCheckbox},
			},
		},
	},
	"/display": {
		{
			ID:                 "display",
			SaveButtonSelector: "button#button_save",
			CancelSelector:     "button#button_cancel",
			Fields: []FieldDescriptor{
				{Name: "brightness", Type: FieldDropdown},
				{Name: "display_mode", Type: FieldDropdown},
			},
		},
	},
}

// SectionsFor returns the form sections of a configuration page, or nil for
// pages whose sections are port-dependent (/network, /ptp) or absent.
func SectionsFor(path string) []FormSection {
	sections := sectionCatalog[path]
	out := make([]FormSection, len(sections))
	copy(out, sections)
	return out
}

// NetworkSection builds the per-interface network form section. The field
// set is the same for every port; redundancy appears on Variant A only.
func NetworkSection(port string, redundancy bool) FormSection {
	fields := []FieldDescriptor{
		{Name: "ip_" + port, Type: FieldIP},
		{Name: "netmask_" + port, Type: FieldIP},
		{Name: "mtu_" + port, Type: FieldNumeric, Range: &IntRange{Min: 68, Max: 9000}, DefaultValue: "1500"},
		{Name: "domain_number_" + port, Type: FieldNumeric, Range: &IntRange{Min: DomainNumberMin, Max: DomainNumberMax}},
	}
	if port == "eth0" {
		fields = append(fields, FieldDescriptor{Name: "gateway_" + port, Type: FieldIP})
	}
	if redundancy {
		fields = append(fields, FieldDescriptor{Name: "redundancy_mode_" + port, Type: FieldDropdown})
	}
	return FormSection{
		ID:                 "network-" + port,
		SaveButtonSelector: fmt.Sprintf("button#button_save_%s", port),
		CancelSelector:     fmt.Sprintf("button#button_cancel_%s", port),
		Fields:             fields,
	}
}

// PTPSection builds the per-port PTP form section for Series-3 devices.
func PTPSection(port string) FormSection {
	return FormSection{
		ID:                 "ptp-" + port,
		SaveButtonSelector: fmt.Sprintf("button#button_save_%s", port),
		CancelSelector:     fmt.Sprintf("button#button_cancel_%s", port),
		Fields: []FieldDescriptor{
			{Name: port + "_profile", Type: FieldDropdown},
			{Name: "domain_number_" + port, Type: FieldNumeric, Range: &IntRange{Min: DomainNumberMin, Max: DomainNumberMax}},
			{Name: port + "_enabled", Type: FieldCheckbox},
		},
	}
}
