// kronos-e2e drives the Kronos web UI test suite: installing browser
// dependencies, probing a device's series/variant, and running the suite
// against one device with failure-threshold and rerun policies.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kronos-qa/kronos-webui-e2e/internal/config"
	"github.com/kronos-qa/kronos-webui-e2e/internal/device"
	"github.com/kronos-qa/kronos-webui-e2e/internal/runner"
)

var (
	version = "dev"
	commit  = "none"
)

var log = logrus.New()

var (
	deviceIPFlag    string
	passwordFlag    string
	cfgPasswordFlag string
	browserFlag     string
	headedFlag      bool
	workersFlag     int
	maxFailuresFlag int
	rerunsFlag      int
	patternFlag     string
	resultsDirFlag  string
	reportPathFlag  string
	verboseFlag     bool
)

var rootCmd = &cobra.Command{
	Use:   "kronos-e2e",
	Short: "End-to-end test runner for the Kronos web configuration interface",
	Long: `kronos-e2e runs the browser-based test suite against a Kronos
satellite-timing device (Series 2 or Series 3, Variant A or B).

The suite classifies the device first and skips tests the hardware
cannot satisfy; classification signal disagreements abort the run
instead of guessing.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the suite against a device",
	RunE:  runSuite,
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Probe a device and print its resolved profile as YAML",
	RunE:  runDetect,
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the Playwright driver and browsers",
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Info("installing playwright driver and browsers")
		if err := playwright.Install(); err != nil {
			return fmt.Errorf("installing playwright: %w", err)
		}
		log.Info("install complete")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("kronos-e2e %s (commit %s)\n", version, commit)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&deviceIPFlag, "device-ip", "d", "", "IP address of the device under test")
	pf.StringVarP(&passwordFlag, "password", "p", "", "status monitoring password")
	pf.StringVar(&cfgPasswordFlag, "config-password", "", "configuration unlock password")
	pf.StringVarP(&browserFlag, "browser", "b", "", "browser engine: chromium, firefox, or webkit")
	pf.BoolVar(&headedFlag, "headed", false, "run the browser with a visible window")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "debug logging")

	rf := runCmd.Flags()
	rf.IntVarP(&workersFlag, "workers", "w", 0, "parallel test workers")
	rf.IntVar(&maxFailuresFlag, "max-failures", 0, "abort the run after this many failures (0 = unlimited)")
	rf.IntVar(&rerunsFlag, "reruns", -1, "rerun failed tests up to this many times")
	rf.StringVarP(&patternFlag, "run", "r", "", "test name pattern filter")
	rf.StringVar(&resultsDirFlag, "results-dir", "", "directory for summaries, screenshots, and videos")
	rf.StringVar(&reportPathFlag, "report", "", "HTML report output path")

	rootCmd.AddCommand(runCmd, detectCmd, installCmd, versionCmd)
}

// buildConfig layers CLI flags over the environment-derived configuration.
func buildConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if deviceIPFlag != "" {
		cfg.DeviceIP = deviceIPFlag
	}
	if passwordFlag != "" {
		cfg.StatusPassword = passwordFlag
	}
	if cfgPasswordFlag != "" {
		cfg.ConfigPassword = cfgPasswordFlag
	}
	if browserFlag != "" {
		cfg.Browser = browserFlag
	}
	if headedFlag {
		cfg.Headless = false
	}
	if workersFlag > 0 {
		cfg.Workers = workersFlag
	}
	if maxFailuresFlag > 0 {
		cfg.MaxFailures = maxFailuresFlag
	}
	if rerunsFlag >= 0 {
		cfg.Reruns = rerunsFlag
	}
	if patternFlag != "" {
		cfg.Pattern = patternFlag
	}
	if resultsDirFlag != "" {
		cfg.ResultsDir = resultsDirFlag
	}
	if reportPathFlag != "" {
		cfg.ReportPath = reportPathFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSuite(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if !cfg.HasDevice() {
		return fmt.Errorf("no device configured: pass --device-ip or set KRONOS_DEVICE_IP")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := runner.New(cfg, log, ".").Run(ctx)
	if err != nil {
		return err
	}
	if summary.Failed > 0 || summary.Aborted {
		return fmt.Errorf("%d test(s) failed (aborted: %t)", summary.Failed, summary.Aborted)
	}
	return nil
}

// runDetect opens a one-shot session, classifies the device, and prints the
// profile. Classification errors surface verbatim; they are the point.
func runDetect(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if !cfg.HasDevice() {
		return fmt.Errorf("no device configured: pass --device-ip or set KRONOS_DEVICE_IP")
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("starting playwright (run `kronos-e2e install` first): %w", err)
	}
	defer pw.Stop()

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.NewPage(playwright.BrowserNewPageOptions{
		IgnoreHttpsErrors: playwright.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("opening page: %w", err)
	}

	if err := authenticate(page, cfg); err != nil {
		return err
	}

	prober := device.NewPageProber(page, cfg.BaseURL())
	profile, err := device.NewResolver(prober).Resolve()
	if err != nil {
		return fmt.Errorf("classifying device: %w", err)
	}

	out, err := yaml.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	fmt.Print(string(out))

	ports, err := device.ResolvePortDescriptors(profile)
	if err != nil {
		return err
	}
	fmt.Println("ports:")
	for _, p := range ports {
		fmt.Printf("  - %s (%s, mtu %d, ptp %t, redundancy %t)\n",
			p.Name, p.Role, p.DefaultMTU, p.SupportsPTP, p.SupportsRedundancy)
	}
	return nil
}

// authenticate performs the two-step login the detect probe needs.
func authenticate(page playwright.Page, cfg *config.Config) error {
	if _, err := page.Goto(cfg.BaseURL() + "/"); err != nil {
		return fmt.Errorf("reaching device at %s: %w", cfg.BaseURL(), err)
	}
	if err := page.Locator("input[name='sts_password']").Fill(cfg.StatusPassword); err != nil {
		return fmt.Errorf("filling status password: %w", err)
	}
	if err := page.Locator("button[type='submit'], input[type='submit']").First().Click(); err != nil {
		return fmt.Errorf("submitting login: %w", err)
	}

	configure := page.Locator("a:has-text('Configure')")
	if visible, _ := configure.First().IsVisible(); visible {
		if err := configure.First().Click(); err != nil {
			return fmt.Errorf("opening configuration unlock: %w", err)
		}
		unlock := page.Locator("input[name='cfg_password']")
		if visible, _ := unlock.IsVisible(); visible {
			if err := unlock.Fill(cfg.ConfigPassword); err != nil {
				return fmt.Errorf("filling configuration password: %w", err)
			}
			if err := page.Locator("button[type='submit'], input[type='submit']").First().Click(); err != nil {
				return fmt.Errorf("submitting unlock: %w", err)
			}
		}
	}
	return nil
}

func main() {
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
