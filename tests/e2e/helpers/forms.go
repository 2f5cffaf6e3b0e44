package helpers

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kronos-qa/kronos-webui-e2e/internal/pages"
)

// ButtonEnabled reads a save/cancel button's enabled state directly.
func ButtonEnabled(t *testing.T, page playwright.Page, selector string) bool {
	t.Helper()
	loc := page.Locator(selector)
	n, err := loc.Count()
	require.NoError(t, err, "locating %s", selector)
	require.Greater(t, n, 0, "no element matches %s", selector)
	enabled, err := loc.First().IsEnabled()
	require.NoError(t, err, "reading enabled state of %s", selector)
	return enabled
}

// AssertAllSavesDisabled checks the initial state of a freshly loaded page:
// every section's save button disabled.
func AssertAllSavesDisabled(t *testing.T, page playwright.Page, sections []pages.FormSection) {
	t.Helper()
	for _, s := range sections {
		assert.False(t, ButtonEnabled(t, page, s.SaveButtonSelector),
			"section %s save button should start disabled", s.ID)
	}
}

// AssertSectionIndependence verifies the cross-cutting form-section
// contract on one page: mutating a field inside section i enables section
// i's save button and leaves every sibling's enabled-state unchanged, and
// cancelling section i disables its save button again.
//
// mutate must edit exactly one field inside the given section.
func AssertSectionIndependence(t *testing.T, page playwright.Page, sections []pages.FormSection, mutate func(pages.FormSection) error) {
	t.Helper()
	require.Greater(t, len(sections), 1, "independence needs at least two sections")

	for i, target := range sections {
		before := make([]bool, len(sections))
		for j, s := range sections {
			before[j] = ButtonEnabled(t, page, s.SaveButtonSelector)
		}

		require.NoError(t, mutate(target), "mutating section %s", target.ID)

		for j, s := range sections {
			enabled := ButtonEnabled(t, page, s.SaveButtonSelector)
			if j == i {
				assert.True(t, enabled,
					"editing section %s should enable its own save button", target.ID)
				continue
			}
			assert.Equal(t, before[j], enabled,
				"editing section %s must not change section %s's save state", target.ID, s.ID)
		}

		require.NoError(t, page.Locator(target.CancelSelector).Click(),
			"cancelling section %s", target.ID)
		assert.False(t, ButtonEnabled(t, page, target.SaveButtonSelector),
			"cancel should disable section %s's save button", target.ID)
	}
}
