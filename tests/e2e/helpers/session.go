package helpers

import (
	"fmt"
	"sync"
	"testing"

	"github.com/kronos-qa/kronos-webui-e2e/internal/device"
	"github.com/kronos-qa/kronos-webui-e2e/internal/pages"
)

// SessionHelper performs the two-step device authentication (status login,
// then configuration unlock) and resolves the device profile.
type SessionHelper struct {
	browser *BrowserHelper
}

func NewSessionHelper(browser *BrowserHelper) *SessionHelper {
	return &SessionHelper{browser: browser}
}

// Login authenticates status monitoring within the configured bound.
func (s *SessionHelper) Login() error {
	login := pages.NewLoginPage(s.browser.Page, s.browser.Config.BaseURL())
	if err := login.Login(s.browser.Config.StatusPassword, s.browser.Config.LoginTimeout); err != nil {
		return fmt.Errorf("status login: %w", err)
	}
	return nil
}

// Unlock enables configuration mode with the second password.
func (s *SessionHelper) Unlock() error {
	unlock := pages.NewUnlockPage(s.browser.Page, s.browser.Config.BaseURL())
	if err := unlock.Unlock(s.browser.Config.ConfigPassword, s.browser.Config.LoginTimeout); err != nil {
		return fmt.Errorf("configuration unlock: %w", err)
	}
	return nil
}

// LoginAndUnlock runs both authentication steps.
func (s *SessionHelper) LoginAndUnlock() error {
	if err := s.Login(); err != nil {
		return err
	}
	return s.Unlock()
}

// The profile is resolved once per test process and shared: all workers
// talk to the same physical device, and the profile is immutable.
var (
	profileOnce sync.Once
	profileVal  device.Profile
	profileErr  error
)

// Profile resolves the device profile through this session, caching the
// result for the whole run. A classification error is returned to every
// caller; tests must abort rather than guess.
func (s *SessionHelper) Profile() (device.Profile, error) {
	profileOnce.Do(func() {
		prober := device.NewPageProber(s.browser.Page, s.browser.Config.BaseURL())
		profileVal, profileErr = device.NewResolver(prober).Resolve()
	})
	return profileVal, profileErr
}

// RequireProfile resolves the profile or fails the test. Classification
// errors are fatal for the dependent test, never silently skipped.
func (s *SessionHelper) RequireProfile(t *testing.T) device.Profile {
	t.Helper()
	p, err := s.Profile()
	if err != nil {
		t.Fatalf("device classification failed: %v", err)
	}
	return p
}

// SkipUnlessSeries3 skips tests for capabilities Series 2 lacks. Explicit
// precondition check, not an exception path.
func SkipUnlessSeries3(t *testing.T, p device.Profile) {
	t.Helper()
	if p.Series != device.Series3 {
		t.Skip("test applies to Series 3 only")
	}
}

// SkipUnlessSeries2 skips tests that only make sense on Series 2.
func SkipUnlessSeries2(t *testing.T, p device.Profile) {
	t.Helper()
	if p.Series != device.Series2 {
		t.Skip("test applies to Series 2 only")
	}
}
