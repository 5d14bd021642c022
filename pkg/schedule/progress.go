package schedule

import (
	"math"
	"time"

	"eventdeck/pkg/api"
)

// Progress returns the percent shown on an event's progress bar.
//
// Active events report elapsed time over the planned window, clamped to
// [0, 100]: the lower clamp covers clock skew putting now before the
// creation time, the upper covers now drifting past the deadline in the
// same render pass that still sees the event as not overdue. Overdue and
// completed events are 100. Cancelled events report 50 purely as a visual
// marker, not a real measure.
func Progress(event api.Event, now time.Time) int {
	switch event.Status {
	case api.StatusCompleted:
		return 100
	case api.StatusCancelled:
		return 50
	case api.StatusActive:
		// computed below
	default:
		return 0
	}

	if event.DueAt.Before(now) {
		return 100
	}

	total := event.DueAt.Sub(event.CreatedAt.Time)
	if total <= 0 {
		return 0
	}

	elapsed := now.Sub(event.CreatedAt.Time)
	if elapsed < 0 {
		return 0
	}

	percent := int(math.Round(float64(elapsed) / float64(total) * 100))
	if percent > 100 {
		percent = 100
	}

	return percent
}
