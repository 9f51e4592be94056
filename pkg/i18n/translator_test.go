package i18n_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mazhu/website/pkg/i18n"
)

func TestNewTranslator(t *testing.T) {
	t.Parallel()

	inst := newTestI18n(t)

	t.Run("panics with nil i18n", func(t *testing.T) {
		t.Parallel()
		require.Panics(t, func() {
			i18n.NewTranslator(nil, "en", nil)
		})
	})

	t.Run("defaults to i18n default language when empty", func(t *testing.T) {
		t.Parallel()
		tr := i18n.NewTranslator(inst, "", nil)
		require.Equal(t, "zh", tr.Language())
		require.Equal(t, "zh-TW", tr.HTMLLang())
	})

	t.Run("picks predefined format for the language", func(t *testing.T) {
		t.Parallel()
		tr := i18n.NewTranslator(inst, "en", nil)
		require.Equal(t, "en", tr.HTMLLang())
		require.Equal(t, "714,649", tr.FormatInt(714649))
		require.Equal(t, "Mar 5, 2024", tr.FormatDate(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("uses provided format", func(t *testing.T) {
		t.Parallel()
		tr := i18n.NewTranslator(inst, "en", i18n.NewLocaleFormat(i18n.WithThousandSeparator(" ")))
		require.Equal(t, "1 234.5", tr.FormatNumber(1234.5))
	})

	t.Run("translates in its language", func(t *testing.T) {
		t.Parallel()
		tr := i18n.NewTranslator(inst, "zh", nil)
		require.Equal(t, "歡迎，阿明！", tr.T("welcome", i18n.M{"name": "阿明"}))
		require.Equal(t, []string{"zh", "en"}, tr.Languages())
	})
}
