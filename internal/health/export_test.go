package health

import "time"

// SetClock replaces the handler clock.
func (h *Handler) SetClock(now func() time.Time) {
	h.now = now
}
