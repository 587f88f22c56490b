package kbroker

import "time"

// helper for launching goroutines with the appropriate panic handler
func withRecover(fn func()) {
	defer func() {
		if PanicHandler != nil {
			if err := recover(); err != nil {
				PanicHandler(err)
			}
		}
	}()

	fn()
}

// nextBackoff doubles the previous pause, starting from base and never
// exceeding max.
func nextBackoff(prev, base, max time.Duration) time.Duration {
	if prev <= 0 {
		return base
	}
	if next := prev * 2; next < max {
		return next
	}
	return max
}
