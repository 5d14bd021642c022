// Package schedule holds the pure date and urgency logic behind the list
// and calendar views: classifying time-to-deadline into tiers, bucketing
// events into calendar days, building month and waterfall grids, and the
// list sort and progress math. Nothing in here touches the network or the
// terminal, so all of it is unit-tested directly.
package schedule

import (
	"fmt"
	"math"
	"time"

	"eventdeck/pkg/api"
)

// Tier is the coarse urgency bucket driving colors and labels.
type Tier int

// Tiers in increasing urgency; TierOverdue sits apart (slate in the UI)
// and TierNeutral covers completed and unrecognized statuses.
const (
	TierNeutral Tier = iota
	TierGreen
	TierYellow
	TierRed
	TierOverdue
)

const (
	redWindow    = 48 * time.Hour
	yellowWindow = 120 * time.Hour
)

// Classify maps an event's deadline, the current time and its status to an
// urgency tier. It is total: completed events and statuses it does not
// recognize land on TierNeutral.
func Classify(dueAt, now time.Time, status string) Tier {
	switch status {
	case api.StatusCompleted:
		return TierNeutral
	case api.StatusActive, api.StatusCancelled, api.StatusDeleted:
		// time-based tiers below
	default:
		return TierNeutral
	}

	remaining := dueAt.Sub(now)

	switch {
	case remaining < 0:
		return TierOverdue
	case remaining <= redWindow:
		return TierRed
	case remaining <= yellowWindow:
		return TierYellow
	default:
		return TierGreen
	}
}

// TimeLeft renders the remaining or overdue time as the short label shown
// on cards and in the detail view.
func TimeLeft(dueAt, now time.Time) string {
	diff := dueAt.Sub(now)

	if diff < 0 {
		hours := int(-diff / time.Hour)
		days := hours / 24

		if days >= 1 {
			return fmt.Sprintf("overdue by %d days", days)
		}

		if hours >= 1 {
			return fmt.Sprintf("overdue by %d hours", hours)
		}

		return "overdue"
	}

	days := int(diff / (24 * time.Hour))
	hours := int(diff % (24 * time.Hour) / time.Hour)

	if days > 0 {
		return fmt.Sprintf("%d days left", days)
	}

	if hours > 0 {
		return fmt.Sprintf("%d hours left", hours)
	}

	return "due soon"
}

// CompletionLabel describes when a completed event was finished relative
// to its planned window, based on the first complete action in its
// history. The percentage is deliberately not clamped: values over 100
// mean the event was completed after its deadline, which is worth showing.
func CompletionLabel(event api.Event, actions []api.Action) string {
	var completed *api.Action

	for i := range actions {
		if actions[i].Type == api.ActionComplete {
			completed = &actions[i]

			break
		}
	}

	if completed == nil {
		return "completed"
	}

	total := event.DueAt.Sub(event.CreatedAt.Time)
	if total <= 0 {
		return "completed"
	}

	elapsed := completed.Time.Sub(event.CreatedAt.Time)
	percent := int(math.Round(float64(elapsed) / float64(total) * 100))

	return fmt.Sprintf("completed at %d%% of planned window", percent)
}
