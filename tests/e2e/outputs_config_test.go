package e2e

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kronos-qa/kronos-webui-e2e/internal/pages"
	"github.com/kronos-qa/kronos-webui-e2e/tests/e2e/helpers"
)

func TestOutputsConfiguration(t *testing.T) {
	helpers.RequireDevice(t)
	browser := helpers.NewBrowserHelper(t)
	require.NoError(t, browser.Setup())
	defer browser.TearDown()
	session := helpers.NewSessionHelper(browser)
	require.NoError(t, session.LoginAndUnlock())
	profile := session.RequireProfile(t)

	outputs := pages.NewOutputsPage(browser.Page, browser.Config.BaseURL(), profile)
	require.NoError(t, outputs.Navigate(browser.Config.PageLoadTimeout))

	t.Run("output count matches the profile", func(t *testing.T) {
		n, err := outputs.OutputCount()
		require.NoError(t, err)
		assert.Equal(t, profile.OutputCount, n)
	})

	t.Run("each output offers its catalog signals", func(t *testing.T) {
		for out := 1; out <= profile.OutputCount; out++ {
			options := browser.Page.Locator(fmt.Sprintf("select[name='signal%d'] option", out))
			n, err := options.Count()
			require.NoError(t, err)

			rendered := make(map[string]bool, n)
			for i := 0; i < n; i++ {
				text, err := options.Nth(i).InnerText()
				require.NoError(t, err)
				rendered[text] = true
			}
			for _, signal := range pages.SignalCatalog(profile, out) {
				assert.True(t, rendered[signal],
					"output %d should offer %s", out, signal)
			}
		}
	})

	t.Run("pulse signals hide the UTC reference", func(t *testing.T) {
		// PPS is only offered on outputs carrying the unmodulated family.
		target := 0
		for out := 1; out <= profile.OutputCount; out++ {
			for _, s := range pages.SignalCatalog(profile, out) {
				if s == "PPS" {
					target = out
					break
				}
			}
			if target > 0 {
				break
			}
		}
		require.Greater(t, target, 0, "no output offers PPS")

		original, err := outputs.Signal(target)
		require.NoError(t, err)
		defer func() {
			_ = outputs.SetSignal(target, original)
			_ = outputs.Save(browser.Config.Timeout)
		}()

		require.NoError(t, outputs.SetSignal(target, "PPS"))
		utc, err := outputs.TimeReferenceVisible(target, "UTC")
		require.NoError(t, err)
		assert.False(t, utc, "PPS must hide the UTC radio")
		local, err := outputs.TimeReferenceVisible(target, "LOCAL")
		require.NoError(t, err)
		assert.True(t, local, "PPS keeps the LOCAL radio")
	})
}
