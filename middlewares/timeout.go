package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/mazhu/website/internal"
)

// DefaultTimeout is the default request deadline.
const DefaultTimeout = 30 * time.Second

// Timeout puts a deadline on the request context and runs the handler
// inline. Handlers observe it through ctx.Done(). A handler that returns
// after the deadline without writing yields *TimeoutError.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()
			c.SetContext(ctx)

			err := next(c)

			if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Written() {
				c.LogWarn("request timeout", "timeout", timeout.String())
				return errors.Join(&TimeoutError{Duration: timeout}, err)
			}
			return err
		}
	}
}
