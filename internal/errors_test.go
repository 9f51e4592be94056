package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazhu/website/internal"
)

func TestHTTPError(t *testing.T) {
	t.Parallel()

	cause := errors.New("store unavailable")
	err := internal.ErrInternal("Internal server error",
		internal.WithError(cause),
		internal.WithTitle("Oops"),
		internal.WithDetail("try later"),
		internal.WithErrorCode("internal"),
		internal.WithRequestID("req-1"),
	)

	assert.Equal(t, "Internal server error", err.Error())
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode())
	assert.Equal(t, "Internal Server Error", err.StatusText())
	assert.Equal(t, "Oops", err.Title)
	assert.Equal(t, "try later", err.Detail)
	assert.Equal(t, "internal", err.ErrorCode)
	assert.Equal(t, "req-1", err.RequestID)
	assert.ErrorIs(t, err, cause)
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  *internal.HTTPError
		code int
	}{
		{internal.ErrBadRequest("x"), http.StatusBadRequest},
		{internal.ErrNotFound("x"), http.StatusNotFound},
		{internal.ErrMethodNotAllowed("x"), http.StatusMethodNotAllowed},
		{internal.ErrUnsupportedMediaType("x"), http.StatusUnsupportedMediaType},
		{internal.ErrTooManyRequests("x"), http.StatusTooManyRequests},
		{internal.ErrInternal("x"), http.StatusInternalServerError},
		{internal.ErrServiceUnavailable("x"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, tt.err.Code)
	}
}

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, internal.AsHTTPError(nil))
	assert.Nil(t, internal.AsHTTPError(errors.New("plain")))
	assert.False(t, internal.IsHTTPError(errors.New("plain")))

	wrapped := fmt.Errorf("handler: %w", internal.ErrTooManyRequests("Rate limit exceeded"))
	require.True(t, internal.IsHTTPError(wrapped))
	assert.Equal(t, http.StatusTooManyRequests, internal.AsHTTPError(wrapped).Code)
}
