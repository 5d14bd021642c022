package schedule

import (
	"time"

	"eventdeck/pkg/api"
)

// DayKey formats a time as the YYYY-MM-DD bucket key, in its own location.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// BucketByDay groups events by the local calendar date of their due time,
// scoped to the dates the month's 42-cell grid actually shows: the target
// month plus the tail of the previous month and the head of the next one.
// Scoping to the visible window rather than to whole adjacent months keeps
// far edges out — the 31st of the next month never belongs to this view.
//
// Year boundaries fall out of the same range: a January view starts in
// December of the previous year, a December view runs into January of the
// next. Input order is preserved within each key.
func BucketByDay(events []api.Event, year int, month time.Month) map[string][]api.Event {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := start.AddDate(0, 0, gridCells)

	buckets := map[string][]api.Event{}

	for _, event := range events {
		due := event.DueAt.In(time.Local)
		if due.Before(start) || !due.Before(end) {
			continue
		}

		key := DayKey(due)
		buckets[key] = append(buckets[key], event)
	}

	return buckets
}

// BucketByRange groups events due between start and end (both whole days,
// end inclusive) by day key. The waterfall view uses it with the window
// from WaterfallWindow.
func BucketByRange(events []api.Event, start, end time.Time) map[string][]api.Event {
	buckets := map[string][]api.Event{}

	limit := end.AddDate(0, 0, 1)

	for _, event := range events {
		due := event.DueAt.In(time.Local)
		if due.Before(start) || !due.Before(limit) {
			continue
		}

		key := DayKey(due)
		buckets[key] = append(buckets[key], event)
	}

	return buckets
}
