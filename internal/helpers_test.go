package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazhu/website/internal"
)

type sectionID string

type ctxKey struct{}

func TestTypedParams(t *testing.T) {
	t.Parallel()

	var (
		section  sectionID
		page     int
		preview  bool
		missing  int64
		fallback int
	)

	app := internal.New(internal.WithHandlers(handlerFunc(func(r internal.Router) {
		r.GET("/menu/{section}/{page}", func(c internal.Context) error {
			section = internal.Param[sectionID](c, "section")
			page = internal.Param[int](c, "page")
			preview = internal.Query[bool](c, "preview")
			missing = internal.Query[int64](c, "nope")
			fallback = internal.QueryDefault(c, "limit", 20)
			return c.NoContent(http.StatusNoContent)
		})
	})))

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/menu/broth/2?preview=true&limit=abc", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, sectionID("broth"), section)
	assert.Equal(t, 2, page)
	assert.True(t, preview)
	assert.Zero(t, missing)
	assert.Equal(t, 20, fallback)
}

func TestContextValue(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	requestVia(t, req, nil, func(c internal.Context) {
		assert.Empty(t, internal.ContextValue[string](c, ctxKey{}))

		c.Set(ctxKey{}, "zh")
		assert.Equal(t, "zh", internal.ContextValue[string](c, ctxKey{}))
		assert.Zero(t, internal.ContextValue[int](c, ctxKey{}))
	})
}
