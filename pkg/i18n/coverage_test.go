package i18n_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mazhu/website/pkg/i18n"
)

func TestExtractKeys(t *testing.T) {
	t.Parallel()

	t.Run("collects distinct sorted keys", func(t *testing.T) {
		t.Parallel()
		markup := `<html><body>
			<nav><a href="/" data-i18n="nav.home">首頁</a><a data-i18n="nav.menu">菜單</a></nav>
			<h1 data-i18n="nav.home">首頁</h1>
			<img src="x.png" data-i18n=" hero.alt " />
			<p data-i18n="">skip</p>
		</body></html>`

		keys, err := i18n.ExtractKeys(strings.NewReader(markup))
		require.NoError(t, err)
		require.Equal(t, []string{"hero.alt", "nav.home", "nav.menu"}, keys)
	})

	t.Run("returns empty for markup without keys", func(t *testing.T) {
		t.Parallel()
		keys, err := i18n.ExtractKeys(strings.NewReader("<p>plain</p>"))
		require.NoError(t, err)
		require.Empty(t, keys)
	})
}

func TestI18n_CheckCoverage(t *testing.T) {
	t.Parallel()

	inst := newTestI18n(t)

	t.Run("reports keys missing per language", func(t *testing.T) {
		t.Parallel()
		missing := inst.CheckCoverage([]string{"nav.home", "nav.menu", "footer.tagline"})
		require.Equal(t, []i18n.MissingKey{
			{Lang: "en", Key: "footer.tagline"},
			{Lang: "en", Key: "nav.menu"},
			{Lang: "zh", Key: "footer.tagline"},
		}, missing)

		err := i18n.MissingError(missing)
		require.ErrorIs(t, err, i18n.ErrMissingKeys)
		require.Contains(t, err.Error(), "en:nav.menu")
	})

	t.Run("full coverage returns nothing", func(t *testing.T) {
		t.Parallel()
		require.Empty(t, inst.CheckCoverage([]string{"nav.home", "welcome"}))
		require.NoError(t, i18n.MissingError(nil))
	})
}
