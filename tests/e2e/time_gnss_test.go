package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kronos-qa/kronos-webui-e2e/internal/pages"
	"github.com/kronos-qa/kronos-webui-e2e/tests/e2e/helpers"
)

func TestTimeSectionIndependence(t *testing.T) {
	helpers.RequireDevice(t)
	browser := helpers.NewBrowserHelper(t)
	require.NoError(t, browser.Setup())
	defer browser.TearDown()
	session := helpers.NewSessionHelper(browser)
	require.NoError(t, session.LoginAndUnlock())

	timePage := pages.NewTimePage(browser.Page, browser.Config.BaseURL())
	require.NoError(t, timePage.Navigate(browser.Config.PageLoadTimeout))

	t.Run("both save buttons start disabled", func(t *testing.T) {
		helpers.AssertAllSavesDisabled(t, browser.Page,
			[]pages.FormSection{timePage.TimezoneSection(), timePage.DSTSection()})
	})

	t.Run("timezone edit leaves dst save untouched", func(t *testing.T) {
		zones, err := timePage.AvailableTimezones()
		require.NoError(t, err)
		require.NotEmpty(t, zones)
		assert.Contains(t, zones, "UTC", "timezone list always includes UTC")

		current, err := timePage.Timezone()
		require.NoError(t, err)
		target := "UTC"
		if current == "UTC" {
			target = zones[0]
		}
		require.NoError(t, timePage.SetTimezone(target))

		assert.True(t, helpers.ButtonEnabled(t, browser.Page, timePage.TimezoneSection().SaveButtonSelector))
		assert.False(t, helpers.ButtonEnabled(t, browser.Page, timePage.DSTSection().SaveButtonSelector),
			"DST save must not react to timezone edits")

		require.NoError(t, timePage.CancelTimezone())
	})

	t.Run("dst edit leaves timezone save untouched", func(t *testing.T) {
		require.NoError(t, timePage.SetDSTEnabled(true))

		assert.True(t, helpers.ButtonEnabled(t, browser.Page, timePage.DSTSection().SaveButtonSelector))
		assert.False(t, helpers.ButtonEnabled(t, browser.Page, timePage.TimezoneSection().SaveButtonSelector))

		require.NoError(t, timePage.CancelDST())
	})
}

func TestGNSSSectionIndependence(t *testing.T) {
	helpers.RequireDevice(t)
	browser := helpers.NewBrowserHelper(t)
	require.NoError(t, browser.Setup())
	defer browser.TearDown()
	session := helpers.NewSessionHelper(browser)
	require.NoError(t, session.LoginAndUnlock())

	gnss := pages.NewGNSSPage(browser.Page, browser.Config.BaseURL())
	require.NoError(t, gnss.Navigate(browser.Config.PageLoadTimeout))

	t.Run("constellation toggle enables only its own save", func(t *testing.T) {
		enabled, err := gnss.ConstellationEnabled("galileo")
		require.NoError(t, err)
		require.NoError(t, gnss.SetConstellation("galileo", !enabled))

		assert.True(t, helpers.ButtonEnabled(t, browser.Page, gnss.ConstellationSection().SaveButtonSelector))
		assert.False(t, helpers.ButtonEnabled(t, browser.Page, gnss.AntennaSection().SaveButtonSelector),
			"antenna save must not react to constellation edits")

		require.NoError(t, gnss.CancelConstellations())
	})

	t.Run("cancel restores the checkbox state", func(t *testing.T) {
		before, err := gnss.ConstellationEnabled("glonass")
		require.NoError(t, err)

		require.NoError(t, gnss.SetConstellation("glonass", !before))
		require.NoError(t, gnss.CancelConstellations())

		after, err := gnss.ConstellationEnabled("glonass")
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}
