package device

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type deviceFixture struct {
	Name     string   `yaml:"name"`
	Profile  Profile  `yaml:"profile"`
	Ports    []string `yaml:"ports"`
	PTPPorts []string `yaml:"ptp_ports"`
}

type fixtureFile struct {
	Devices []deviceFixture `yaml:"devices"`
}

// TestProfileFixtures checks the port tables against the known hardware
// builds recorded in testdata. A new shippable configuration gets a fixture
// entry before it gets code.
func TestProfileFixtures(t *testing.T) {
	raw, err := os.ReadFile("testdata/profiles.yaml")
	require.NoError(t, err)

	var fixtures fixtureFile
	require.NoError(t, yaml.Unmarshal(raw, &fixtures))
	require.Len(t, fixtures.Devices, 3, "one fixture per shippable build")

	for _, fx := range fixtures.Devices {
		t.Run(fx.Name, func(t *testing.T) {
			ports, err := ResolvePortDescriptors(fx.Profile)
			require.NoError(t, err)
			assert.Equal(t, fx.Ports, portNames(ports))
			assert.ElementsMatch(t, fx.PTPPorts, PTPPorts(fx.Profile))

			if fx.Profile.Series == Series2 {
				assert.Equal(t, Series2OutputCount, fx.Profile.OutputCount)
				assert.False(t, fx.Profile.PTPCapable)
				assert.NotContains(t, Sections(fx.Profile), "/ptp")
			} else {
				assert.Equal(t, Series3OutputCount, fx.Profile.OutputCount)
				assert.True(t, fx.Profile.PTPCapable)
				assert.Contains(t, Sections(fx.Profile), "/ptp")
			}
		})
	}
}
