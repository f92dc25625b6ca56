package response

import "time"

// SetNow replaces the envelope clock and returns a restore func.
func SetNow(fn func() time.Time) func() {
	prev := now
	now = fn

	return func() { now = prev }
}
