package middlewares

import (
	"net/http"
	"runtime"

	"github.com/mazhu/website/internal"
)

// DefaultStackSize caps the captured stack trace.
const DefaultStackSize = 4096

// RecoverOption configures Recover.
type RecoverOption func(*recoverConfig)

type recoverConfig struct {
	stackSize  int
	printStack bool
}

// WithRecoverStackSize sets the captured stack size in bytes.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *recoverConfig) {
		if size > 0 {
			cfg.stackSize = size
		}
	}
}

// WithRecoverDisablePrintStack omits the stack from the log entry.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *recoverConfig) {
		cfg.printStack = false
	}
}

// Recover turns panics into *PanicError. http.ErrAbortHandler is
// re-raised so net/http can abort the connection silently.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &recoverConfig{
		stackSize:  DefaultStackSize,
		printStack: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				stack := make([]byte, cfg.stackSize)
				stack = stack[:runtime.Stack(stack, false)]

				attrs := []any{"panic", r, "method", c.Request().Method, "path", c.Request().URL.Path}
				if cfg.printStack {
					attrs = append(attrs, "stack", string(stack))
				}
				c.LogError("panic recovered", attrs...)

				err = &PanicError{Value: r, Stack: stack}
			}()

			return next(c)
		}
	}
}
