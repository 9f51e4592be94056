package middlewares

import (
	"log/slog"
	"time"

	"github.com/mazhu/website/internal"
)

// AccessLog logs one line per request with method, path, status, size
// and duration. 5xx responses log at error level, 4xx at warn.
func AccessLog() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			status := responseStatus(c, err)
			var size int64
			if rw := c.ResponseWriter(); rw != nil {
				size = rw.Size()
			}

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Int64("size", size),
				slog.Duration("duration", time.Since(start)),
				slog.String("ip", c.RealIP()),
			}

			switch {
			case status >= 500:
				c.LogError("request", attrs...)
			case status >= 400:
				c.LogWarn("request", attrs...)
			default:
				c.LogInfo("request", attrs...)
			}

			return err
		}
	}
}
