package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "chromium", c.Browser)
	assert.True(t, c.Headless)
	assert.Equal(t, "novatech", c.StatusPassword)
	assert.Equal(t, 3*time.Second, c.PageLoadTimeout)
	assert.Equal(t, 15*time.Second, c.LoginTimeout)
	assert.Equal(t, 0, c.MaxFailures, "max failures defaults to unlimited")
	assert.Equal(t, 1, c.Workers)
	assert.False(t, c.HasDevice())
	assert.Empty(t, c.BaseURL())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("KRONOS_DEVICE_IP", "172.16.190.46")
	t.Setenv("KRONOS_BROWSER", "firefox")
	t.Setenv("KRONOS_HEADLESS", "false")
	t.Setenv("KRONOS_MAX_FAILURES", "5")
	t.Setenv("KRONOS_CONFIG_PASSWORD", "secret")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "172.16.190.46", c.DeviceIP)
	assert.Equal(t, "http://172.16.190.46", c.BaseURL())
	assert.Equal(t, "firefox", c.Browser)
	assert.False(t, c.Headless)
	assert.Equal(t, 5, c.MaxFailures)
	assert.Equal(t, "secret", c.ConfigPassword)
	assert.True(t, c.HasDevice())
}

func TestMaxFailuresIsPlainInteger(t *testing.T) {
	// The legacy launcher scripts prefixed the flag value with a literal
	// "2", silently changing the threshold. The value must round-trip
	// unmodified here.
	t.Setenv("KRONOS_MAX_FAILURES", "2")
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2, c.MaxFailures)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}, ok: true},
		{name: "webkit is supported", mutate: func(c *Config) { c.Browser = "webkit" }, ok: true},
		{name: "unknown browser", mutate: func(c *Config) { c.Browser = "opera" }},
		{name: "negative max failures", mutate: func(c *Config) { c.MaxFailures = -1 }},
		{name: "zero workers", mutate: func(c *Config) { c.Workers = 0 }},
		{name: "negative reruns", mutate: func(c *Config) { c.Reruns = -1 }},
		{name: "bad scheme", mutate: func(c *Config) { c.Scheme = "ftp" }},
		{name: "https allowed", mutate: func(c *Config) { c.Scheme = "https" }, ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)
			err := c.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
