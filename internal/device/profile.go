// Package device classifies the Kronos unit under test and exposes a stable,
// queryable profile so the rest of the suite can decide which tests apply.
//
// Two hardware generations exist: Series 2 (4 outputs, no PTP, single network
// interface) and Series 3 (6 outputs, PTP capable). Series 3 ships in two
// sub-configurations: Variant A (ports eth0, eth1, eth3, link redundancy) and
// Variant B (ports eth0 through eth4, no redundancy). The profile is resolved
// once per browser session from live signals and is immutable afterwards.
package device

import "fmt"

// Series is the hardware generation of the device under test.
type Series int

const (
	Series2 Series = 2
	Series3 Series = 3
)

func (s Series) String() string { return fmt.Sprintf("Series %d", int(s)) }

// Variant is the Series-3 hardware sub-configuration. Series 2 has none.
type Variant string

const (
	VariantNone Variant = ""
	VariantA    Variant = "A"
	VariantB    Variant = "B"
)

func (v Variant) String() string {
	if v == VariantNone {
		return "none"
	}
	return string(v)
}

// Expected per-series element counts. Title-based and element-based
// detection must agree on these or classification aborts.
const (
	Series2OutputCount = 4
	Series3OutputCount = 6

	VariantAPTPFormCount = 2
	VariantBPTPFormCount = 4

	VariantANetworkFormCount = 5
	VariantBNetworkFormCount = 7
)

// Profile describes one device under test. Resolved once per session by
// probing the live device, then treated as read-only by every test.
type Profile struct {
	Series           Series  `yaml:"series"`
	Variant          Variant `yaml:"variant,omitempty"`
	OutputCount      int     `yaml:"output_count"`
	PTPCapable       bool    `yaml:"ptp_capable"`
	NetworkFormCount int     `yaml:"network_form_count"`
}

// PortRole distinguishes the management interface from data-plane ports.
type PortRole string

const (
	RoleManagement PortRole = "management"
	RoleData       PortRole = "data"
)

// PortDescriptor describes one ethernet interface of a resolved device.
// The set of descriptors is a pure function of (series, variant); tests
// mutate live field values, never these.
type PortDescriptor struct {
	Name               string
	Role               PortRole
	SupportsRedundancy bool
	DefaultMTU         int
	SupportsPTP        bool
}

const defaultMTU = 1500

// portTables maps each supported (series, variant) pair to its fixed port
// set. eth0 is always the management interface and never carries PTP.
var portTables = map[Series]map[Variant][]PortDescriptor{
	Series2: {
		VariantNone: {
			{Name: "eth0", Role: RoleManagement, DefaultMTU: defaultMTU},
		},
	},
	Series3: {
		VariantA: {
			{Name: "eth0", Role: RoleManagement, DefaultMTU: defaultMTU},
			{Name: "eth1", Role: RoleData, SupportsRedundancy: true, DefaultMTU: defaultMTU, SupportsPTP: true},
			{Name: "eth3", Role: RoleData, SupportsRedundancy: true, DefaultMTU: defaultMTU, SupportsPTP: true},
		},
		VariantB: {
			{Name: "eth0", Role: RoleManagement, DefaultMTU: defaultMTU},
			{Name: "eth1", Role: RoleData, DefaultMTU: defaultMTU, SupportsPTP: true},
			{Name: "eth2", Role: RoleData, DefaultMTU: defaultMTU, SupportsPTP: true},
			{Name: "eth3", Role: RoleData, DefaultMTU: defaultMTU, SupportsPTP: true},
			{Name: "eth4", Role: RoleData, DefaultMTU: defaultMTU, SupportsPTP: true},
		},
	},
}

// ResolvePortDescriptors returns the fixed port set for a resolved profile.
// No device interaction; table-driven.
func ResolvePortDescriptors(p Profile) ([]PortDescriptor, error) {
	variants, ok := portTables[p.Series]
	if !ok {
		return nil, &DetectionError{Signal: "series", Detail: fmt.Sprintf("unsupported series %d", p.Series)}
	}
	ports, ok := variants[p.Variant]
	if !ok {
		return nil, &DetectionError{
			Signal: "variant",
			Detail: fmt.Sprintf("no port table for %s variant %s", p.Series, p.Variant),
		}
	}
	out := make([]PortDescriptor, len(ports))
	copy(out, ports)
	return out, nil
}

// PTPPorts returns the names of the ports that expose a PTP configuration
// form, in panel order.
func PTPPorts(p Profile) []string {
	ports, err := ResolvePortDescriptors(p)
	if err != nil {
		return nil
	}
	var names []string
	for _, pd := range ports {
		if pd.SupportsPTP {
			names = append(names, pd.Name)
		}
	}
	return names
}

// Sections lists the configuration pages the device is expected to serve.
// /ptp exists on Series 3 only.
func Sections(p Profile) []string {
	base := []string{
		"/general", "/network", "/time", "/gnss", "/outputs",
		"/display", "/snmp", "/syslog", "/upload", "/access",
	}
	if p.PTPCapable {
		base = append(base, "/ptp")
	}
	return base
}
