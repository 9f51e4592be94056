// Package ratelimit implements sliding-window request limiting.
//
// A window counts the requests a key made during the last Window. A request
// is allowed while that count is below Limit; rejected requests are not
// recorded, so a client that keeps hammering a full window regains access
// as soon as its oldest allowed request leaves the window.
//
//	lim := ratelimit.NewMemory(ratelimit.Config{Limit: 100, Window: time.Minute})
//	res, err := lim.Allow(ctx, clientIP)
//	if !res.Allowed {
//	    // respond 429, Retry-After: res.RetryAfter
//	}
//
// [Memory] keeps windows in process. [Redis] keeps them in sorted sets so
// several instances share one budget per client.
package ratelimit
