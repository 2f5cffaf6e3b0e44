// Package runner invokes the e2e suite as a go test child process, applies
// the max-failure threshold and the bounded rerun-on-failure policy, and
// writes a machine-readable summary under the results directory. Retry
// policy lives here, uniformly, never inside suite logic.
package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kronos-qa/kronos-webui-e2e/internal/config"
)

// Summary is the persisted outcome of one run.
type Summary struct {
	RunID    string    `json:"run_id"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
	Browser  string    `json:"browser"`
	DeviceIP string    `json:"device_ip"`

	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
	Reruns  int `json:"reruns"`

	// Aborted is set when the max-failure threshold stopped the run early.
	Aborted  bool     `json:"aborted"`
	Failures []string `json:"failures,omitempty"`
}

// Runner drives go test for the e2e packages.
type Runner struct {
	cfg *config.Config
	log *logrus.Logger
	// dir is the module root the child process runs in.
	dir string
}

func New(cfg *config.Config, log *logrus.Logger, dir string) *Runner {
	return &Runner{cfg: cfg, log: log, dir: dir}
}

// BuildArgs assembles the go test invocation for a run, optionally narrowed
// to a -run pattern.
func BuildArgs(cfg *config.Config, pattern string) []string {
	args := []string{
		"test", "./tests/e2e/...",
		"-count=1", "-v",
		fmt.Sprintf("-parallel=%d", cfg.Workers),
	}
	if pattern != "" {
		args = append(args, "-run", pattern)
	}
	return args
}

// Environ returns the child environment: the parent's, with the suite
// configuration pinned so flags beat ambient variables.
func Environ(cfg *config.Config) []string {
	env := os.Environ()
	pinned := map[string]string{
		"KRONOS_DEVICE_IP":       cfg.DeviceIP,
		"KRONOS_SCHEME":          cfg.Scheme,
		"KRONOS_STATUS_PASSWORD": cfg.StatusPassword,
		"KRONOS_CONFIG_PASSWORD": cfg.ConfigPassword,
		"KRONOS_BROWSER":         cfg.Browser,
		"KRONOS_HEADLESS":        fmt.Sprintf("%t", cfg.Headless),
		"KRONOS_RESULTS_DIR":     cfg.ResultsDir,
	}
	for k, v := range pinned {
		env = append(env, k+"="+v)
	}
	return env
}

var resultLine = regexp.MustCompile(`^(?:=== RUN|--- (PASS|FAIL|SKIP)): +(\S+)`)

// parseResultLine extracts a terminal test event from one go test -v output
// line. Subtests are attributed to their top-level test for rerun purposes.
func parseResultLine(line string) (event, name string, ok bool) {
	m := resultLine.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil || m[1] == "" {
		return "", "", false
	}
	name = m[2]
	if i := strings.IndexByte(name, '/'); i >= 0 {
		name = name[:i]
	}
	return m[1], name, true
}

// rerunPattern builds an exact -run expression for a set of failed tests.
func rerunPattern(tests []string) string {
	if len(tests) == 0 {
		return ""
	}
	seen := map[string]bool{}
	uniq := make([]string, 0, len(tests))
	for _, t := range tests {
		if !seen[t] {
			seen[t] = true
			uniq = append(uniq, t)
		}
	}
	return "^(" + strings.Join(uniq, "|") + ")$"
}

// collector tallies streamed results and trips the abort threshold.
type collector struct {
	maxFailures int

	passed  map[string]bool
	failed  map[string]bool
	skipped map[string]bool
}

func newCollector(maxFailures int) *collector {
	return &collector{
		maxFailures: maxFailures,
		passed:      map[string]bool{},
		failed:      map[string]bool{},
		skipped:     map[string]bool{},
	}
}

// observe records one output line. It returns true when the max-failure
// threshold has been reached and the run should abort. A threshold of 0
// means unlimited.
func (c *collector) observe(line string) (abort bool) {
	event, name, ok := parseResultLine(line)
	if !ok {
		return false
	}
	switch event {
	case "PASS":
		// A rerun pass supersedes an earlier failure.
		delete(c.failed, name)
		c.passed[name] = true
	case "FAIL":
		c.failed[name] = true
	case "SKIP":
		c.skipped[name] = true
	}
	return c.maxFailures > 0 && len(c.failed) >= c.maxFailures
}

func (c *collector) failures() []string {
	out := make([]string, 0, len(c.failed))
	for name := range c.failed {
		out = append(out, name)
	}
	return out
}

// Run executes the suite, reruns failures up to the configured bound, and
// persists the summary. A non-nil Summary comes back even on failure.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		RunID:    uuid.NewString(),
		Started:  time.Now(),
		Browser:  r.cfg.Browser,
		DeviceIP: r.cfg.DeviceIP,
	}
	col := newCollector(r.cfg.MaxFailures)

	r.log.WithFields(logrus.Fields{
		"run_id":  summary.RunID,
		"device":  r.cfg.DeviceIP,
		"browser": r.cfg.Browser,
		"workers": r.cfg.Workers,
	}).Info("starting run")

	aborted, err := r.invoke(ctx, BuildArgs(r.cfg, r.cfg.Pattern), col)
	if err != nil {
		return summary, err
	}
	summary.Aborted = aborted

	for attempt := 1; !aborted && attempt <= r.cfg.Reruns && len(col.failed) > 0; attempt++ {
		pattern := rerunPattern(col.failures())
		r.log.WithFields(logrus.Fields{
			"attempt": attempt,
			"tests":   len(col.failed),
		}).Warn("rerunning failed tests")
		summary.Reruns++
		if aborted, err = r.invoke(ctx, BuildArgs(r.cfg, pattern), col); err != nil {
			return summary, err
		}
	}

	summary.Finished = time.Now()
	summary.Passed = len(col.passed)
	summary.Failed = len(col.failed)
	summary.Skipped = len(col.skipped)
	summary.Failures = col.failures()

	if err := r.writeSummary(summary); err != nil {
		r.log.WithError(err).Error("writing summary")
	}
	r.log.WithFields(logrus.Fields{
		"passed":  summary.Passed,
		"failed":  summary.Failed,
		"skipped": summary.Skipped,
		"aborted": summary.Aborted,
	}).Info("run finished")
	return summary, nil
}

// invoke runs one go test process, streaming output into the collector.
// When the collector trips the threshold the process is killed.
func (r *Runner) invoke(ctx context.Context, args []string, col *collector) (aborted bool, err error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "go", args...)
	cmd.Dir = r.dir
	cmd.Env = Environ(r.cfg)
	cmd.Stderr = os.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return false, fmt.Errorf("opening test output: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return false, fmt.Errorf("starting go test: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		fmt.Println(line)
		if col.observe(line) {
			r.log.WithField("max_failures", r.cfg.MaxFailures).
				Error("failure threshold reached, aborting remaining tests")
			aborted = true
			cancel()
			break
		}
	}

	// go test exits non-zero when tests fail; that is a result here, not
	// an invocation error.
	waitErr := cmd.Wait()
	if waitErr != nil && !aborted {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return aborted, fmt.Errorf("running go test: %w", waitErr)
		}
	}
	return aborted, nil
}

func (r *Runner) writeSummary(s *Summary) error {
	dir := filepath.Join(r.cfg.ResultsDir, s.RunID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating results dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	path := filepath.Join(dir, "summary.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
