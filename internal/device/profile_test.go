package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePortDescriptors(t *testing.T) {
	t.Run("series 2 has a single management port", func(t *testing.T) {
		ports, err := ResolvePortDescriptors(Profile{Series: Series2})
		require.NoError(t, err)
		require.Len(t, ports, 1)
		assert.Equal(t, "eth0", ports[0].Name)
		assert.Equal(t, RoleManagement, ports[0].Role)
		assert.False(t, ports[0].SupportsPTP)
		assert.False(t, ports[0].SupportsRedundancy)
	})

	t.Run("variant A ports", func(t *testing.T) {
		ports, err := ResolvePortDescriptors(Profile{Series: Series3, Variant: VariantA})
		require.NoError(t, err)
		assert.Equal(t, []string{"eth0", "eth1", "eth3"}, portNames(ports))
		for _, p := range ports[1:] {
			assert.True(t, p.SupportsRedundancy, "%s should support redundancy on variant A", p.Name)
			assert.True(t, p.SupportsPTP, "%s should support PTP on variant A", p.Name)
		}
	})

	t.Run("variant B ports", func(t *testing.T) {
		ports, err := ResolvePortDescriptors(Profile{Series: Series3, Variant: VariantB})
		require.NoError(t, err)
		assert.Equal(t, []string{"eth0", "eth1", "eth2", "eth3", "eth4"}, portNames(ports))
		for _, p := range ports {
			assert.False(t, p.SupportsRedundancy, "variant B has no link redundancy")
		}
	})

	t.Run("every port carries the default MTU", func(t *testing.T) {
		for _, profile := range []Profile{
			{Series: Series2},
			{Series: Series3, Variant: VariantA},
			{Series: Series3, Variant: VariantB},
		} {
			ports, err := ResolvePortDescriptors(profile)
			require.NoError(t, err)
			for _, p := range ports {
				assert.Equal(t, 1500, p.DefaultMTU)
			}
		}
	})

	t.Run("unsupported combinations error out", func(t *testing.T) {
		var detection *DetectionError
		_, err := ResolvePortDescriptors(Profile{Series: Series(9)})
		require.ErrorAs(t, err, &detection)

		_, err = ResolvePortDescriptors(Profile{Series: Series3, Variant: VariantNone})
		require.ErrorAs(t, err, &detection)
	})

	t.Run("callers cannot mutate the table", func(t *testing.T) {
		ports, err := ResolvePortDescriptors(Profile{Series: Series2})
		require.NoError(t, err)
		ports[0].Name = "mangled"
		again, err := ResolvePortDescriptors(Profile{Series: Series2})
		require.NoError(t, err)
		assert.Equal(t, "eth0", again[0].Name)
	})
}

func TestPTPPorts(t *testing.T) {
	assert.Equal(t, []string{"eth1", "eth3"},
		PTPPorts(Profile{Series: Series3, Variant: VariantA}))
	assert.Equal(t, []string{"eth1", "eth2", "eth3", "eth4"},
		PTPPorts(Profile{Series: Series3, Variant: VariantB}))
	assert.Empty(t, PTPPorts(Profile{Series: Series2}))
}

func TestSections(t *testing.T) {
	s2 := Sections(Profile{Series: Series2})
	assert.NotContains(t, s2, "/ptp")
	assert.Contains(t, s2, "/general")
	assert.Contains(t, s2, "/snmp")

	s3 := Sections(Profile{Series: Series3, Variant: VariantB, PTPCapable: true})
	assert.Contains(t, s3, "/ptp")
	assert.Len(t, s3, len(s2)+1)
}

func portNames(ports []PortDescriptor) []string {
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.Name
	}
	return names
}
