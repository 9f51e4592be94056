package i18n_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mazhu/website/pkg/i18n"
)

func newTestI18n(t *testing.T, opts ...i18n.Option) *i18n.I18n {
	t.Helper()
	base := []i18n.Option{
		i18n.WithDefaultLanguage("zh"),
		i18n.WithTranslations("zh", map[string]any{
			"nav": map[string]any{
				"home": "首頁",
				"menu": "菜單",
			},
			"welcome": "歡迎，{{name}}！",
		}),
		i18n.WithTranslations("en", map[string]any{
			"nav": map[string]any{
				"home": "Home",
			},
			"welcome": "Welcome, {{name}}!",
			"count":   42,
		}),
	}
	inst, err := i18n.New(append(base, opts...)...)
	require.NoError(t, err)
	return inst
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults to zh", func(t *testing.T) {
		t.Parallel()
		inst, err := i18n.New()
		require.NoError(t, err)
		require.Equal(t, "zh", inst.DefaultLanguage())
		require.Equal(t, []string{"zh"}, inst.Languages())
	})

	t.Run("returns error for empty default language", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithDefaultLanguage(""))
		require.ErrorIs(t, err, i18n.ErrEmptyLanguage)
	})

	t.Run("returns error for empty language in translations", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithTranslations("", map[string]any{"a": "b"}))
		require.ErrorIs(t, err, i18n.ErrEmptyLanguage)
	})

	t.Run("derives languages from translations with default first", func(t *testing.T) {
		t.Parallel()
		inst := newTestI18n(t)
		require.Equal(t, []string{"zh", "en"}, inst.Languages())
	})

	t.Run("explicit language list keeps default first", func(t *testing.T) {
		t.Parallel()
		inst := newTestI18n(t, i18n.WithLanguages("ja", "en", "zh"))
		require.Equal(t, []string{"zh", "en", "ja"}, inst.Languages())
		require.True(t, inst.Supports("ja"))
		require.False(t, inst.Supports("fr"))
	})
}

func TestI18n_T(t *testing.T) {
	t.Parallel()

	inst := newTestI18n(t)

	t.Run("translates nested keys", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "首頁", inst.T("zh", "nav.home"))
		require.Equal(t, "Home", inst.T("en", "nav.home"))
	})

	t.Run("replaces placeholders", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "Welcome, Ann!", inst.T("en", "welcome", i18n.M{"name": "Ann"}))
	})

	t.Run("stringifies non-string values", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "42", inst.T("en", "count"))
	})

	t.Run("falls back to base language", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "Home", inst.T("en-US", "nav.home"))
	})

	t.Run("falls back to default language", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "菜單", inst.T("en", "nav.menu"))
	})

	t.Run("returns key when missing everywhere", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "nav.unknown", inst.T("en", "nav.unknown"))
	})
}

func TestI18n_MissingKeyHandler(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		called []string
	)
	inst := newTestI18n(t, i18n.WithMissingKeyHandler(func(lang, key string) {
		mu.Lock()
		defer mu.Unlock()
		called = append(called, lang+":"+key)
	}))

	inst.T("en", "nav.menu")
	inst.T("en", "footer.copyright")

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"en:footer.copyright"}, called)
}

func TestI18n_KeysAndMessages(t *testing.T) {
	t.Parallel()

	inst := newTestI18n(t)

	require.Equal(t, []string{"nav.home", "nav.menu", "welcome"}, inst.Keys("zh"))
	require.Empty(t, inst.Keys("fr"))

	msgs := inst.Messages("en")
	require.Equal(t, "Home", msgs["nav.home"])
	require.NotContains(t, msgs, "nav.menu")
	require.True(t, inst.Has("zh", "nav.menu"))
	require.False(t, inst.Has("en", "nav.menu"))
}
