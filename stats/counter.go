package stats

import (
	"math"
	"time"
)

// DefaultCounterDuration is how long the love page counters animate.
const DefaultCounterDuration = 2 * time.Second

// EaseOut maps linear progress p in [0,1] to cubic ease-out progress.
// Values outside the range are clamped.
func EaseOut(p float64) float64 {
	switch {
	case p <= 0 || math.IsNaN(p):
		return 0
	case p >= 1:
		return 1
	}
	inv := 1 - p
	return 1 - inv*inv*inv
}

// CounterValue is the number a counter animating from 0 to target over
// duration displays after elapsed. It reaches target exactly at duration.
func CounterValue(target int64, elapsed, duration time.Duration) int64 {
	if duration <= 0 || elapsed >= duration {
		return target
	}
	if elapsed <= 0 {
		return 0
	}
	return int64(math.Floor(float64(target) * EaseOut(float64(elapsed)/float64(duration))))
}
