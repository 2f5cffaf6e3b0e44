// Package config resolves the suite configuration from environment
// variables, an optional .env file, and runner flags. Tests read it through
// the Get singleton; the runner CLI builds one explicitly from flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the suite and the runner need to talk to one
// device under test.
type Config struct {
	// DeviceIP is the address of the unit under test. Empty means no
	// device is available and every e2e test skips.
	DeviceIP string `mapstructure:"device_ip"`
	// Scheme is http or https.
	Scheme string `mapstructure:"scheme"`

	// StatusPassword authenticates status monitoring (the login page).
	StatusPassword string `mapstructure:"status_password"`
	// ConfigPassword unlocks configuration mode after login.
	ConfigPassword string `mapstructure:"config_password"`

	Browser     string `mapstructure:"browser"`
	Headless    bool   `mapstructure:"headless"`
	SlowMo      int    `mapstructure:"slow_mo"`
	Screenshots bool   `mapstructure:"screenshots"`
	Videos      bool   `mapstructure:"videos"`

	// Timeout is the default Playwright action timeout.
	Timeout time.Duration `mapstructure:"timeout"`
	// PageLoadTimeout bounds a section-page navigation. Exceeding it is a
	// test failure, not a retry trigger.
	PageLoadTimeout time.Duration `mapstructure:"page_load_timeout"`
	// LoginTimeout bounds the full login round trip.
	LoginTimeout time.Duration `mapstructure:"login_timeout"`

	Workers int `mapstructure:"workers"`
	// MaxFailures aborts the remaining run once this many tests have
	// failed. 0 means unlimited.
	MaxFailures int `mapstructure:"max_failures"`
	// Reruns is how many times the runner retries a failed test before
	// counting it as failed. Applied uniformly by the runner, never by
	// suite logic.
	Reruns int `mapstructure:"reruns"`

	Pattern    string `mapstructure:"pattern"`
	ResultsDir string `mapstructure:"results_dir"`
	ReportPath string `mapstructure:"report_path"`
}

var (
	cfg  *Config
	once sync.Once
)

// Get returns the process-wide suite configuration, loading it on first use.
// Load errors fall back to defaults: without a device IP every e2e test
// skips anyway.
func Get() *Config {
	once.Do(func() {
		loaded, err := Load()
		if err != nil {
			loaded = defaults()
		}
		cfg = loaded
	})
	return cfg
}

// Load reads the configuration from KRONOS_* environment variables and an
// optional .env file in the working directory. Environment wins over file.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("KRONOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading .env: %w", err)
		}
	}

	c := defaults()
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// setDefaults registers every key so AutomaticEnv-sourced values survive
// Unmarshal (viper only unmarshals keys it knows about).
func setDefaults(v *viper.Viper) {
	d := defaults()
	v.SetDefault("device_ip", "")
	v.SetDefault("config_password", "")
	v.SetDefault("slow_mo", 0)
	v.SetDefault("videos", false)
	v.SetDefault("max_failures", 0)
	v.SetDefault("pattern", "")
	v.SetDefault("report_path", "")
	v.SetDefault("scheme", d.Scheme)
	v.SetDefault("status_password", d.StatusPassword)
	v.SetDefault("browser", d.Browser)
	v.SetDefault("headless", d.Headless)
	v.SetDefault("screenshots", d.Screenshots)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("page_load_timeout", d.PageLoadTimeout)
	v.SetDefault("login_timeout", d.LoginTimeout)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("reruns", d.Reruns)
	v.SetDefault("results_dir", d.ResultsDir)
}

func defaults() *Config {
	return &Config{
		Scheme:          "http",
		StatusPassword:  "novatech",
		Browser:         "chromium",
		Headless:        true,
		Screenshots:     true,
		Timeout:         30 * time.Second,
		PageLoadTimeout: 3 * time.Second,
		LoginTimeout:    15 * time.Second,
		Workers:         1,
		Reruns:          1,
		ResultsDir:      "./test-results",
	}
}

// Validate rejects configurations the runner must not start with.
func (c *Config) Validate() error {
	switch c.Browser {
	case "chromium", "firefox", "webkit":
	default:
		return fmt.Errorf("unsupported browser %q (want chromium, firefox, or webkit)", c.Browser)
	}
	if c.MaxFailures < 0 {
		return fmt.Errorf("max failures must be a non-negative integer, got %d", c.MaxFailures)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Reruns < 0 {
		return fmt.Errorf("reruns must be non-negative, got %d", c.Reruns)
	}
	if c.Scheme != "http" && c.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", c.Scheme)
	}
	return nil
}

// BaseURL returns the device root URL, or empty when no device is
// configured.
func (c *Config) BaseURL() string {
	if c.DeviceIP == "" {
		return ""
	}
	return fmt.Sprintf("%s://%s", c.Scheme, c.DeviceIP)
}

// HasDevice reports whether a live device is configured for this run.
func (c *Config) HasDevice() bool { return c.DeviceIP != "" }
