package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kronos-qa/kronos-webui-e2e/internal/device"
	"github.com/kronos-qa/kronos-webui-e2e/internal/pages"
	"github.com/kronos-qa/kronos-webui-e2e/tests/e2e/helpers"
)

func TestNetworkConfiguration(t *testing.T) {
	helpers.RequireDevice(t)
	browser := helpers.NewBrowserHelper(t)
	require.NoError(t, browser.Setup())
	defer browser.TearDown()
	session := helpers.NewSessionHelper(browser)
	require.NoError(t, session.LoginAndUnlock())
	profile := session.RequireProfile(t)

	network := pages.NewNetworkPage(browser.Page, browser.Config.BaseURL(), profile)
	require.NoError(t, network.Navigate(browser.Config.PageLoadTimeout))

	t.Run("form count matches the resolved variant", func(t *testing.T) {
		if profile.Series != device.Series3 {
			t.Skip("form-count signal is variant classification, Series 3 only")
		}
		n, err := network.FormCount()
		require.NoError(t, err)
		assert.Equal(t, profile.NetworkFormCount, n,
			"live form count must match the count recorded at classification")
	})

	t.Run("every profile port has an addressable panel", func(t *testing.T) {
		ports, err := device.ResolvePortDescriptors(profile)
		require.NoError(t, err)
		for _, port := range ports {
			ip, err := network.IP(port.Name)
			require.NoError(t, err, "reading IP of %s", port.Name)
			assert.NotEmpty(t, ip, "%s should carry an address", port.Name)
		}
	})

	t.Run("redundancy mode follows the variant", func(t *testing.T) {
		helpers.SkipUnlessSeries3(t, profile)
		visible, err := network.RedundancyModeVisible("eth1")
		require.NoError(t, err)
		assert.Equal(t, profile.Variant == device.VariantA, visible,
			"redundancy-mode field is a Variant A feature")
	})

	t.Run("management port exposes a gateway field", func(t *testing.T) {
		require.NoError(t, network.ExpandPanel("eth0"))
		n, err := browser.Page.Locator("input[name='gateway_eth0']").Count()
		require.NoError(t, err)
		assert.Greater(t, n, 0, "eth0 carries the default gateway")
	})
}
