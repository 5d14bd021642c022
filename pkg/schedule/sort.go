package schedule

import (
	"sort"
	"strings"
	"time"

	"eventdeck/pkg/api"
)

// SortForList orders events the way the list view shows them: events still
// due first, ascending by due time, then overdue events also ascending.
// The sort is stable so events with equal due times keep their fetch
// order. The input is not modified.
func SortForList(events []api.Event, now time.Time) []api.Event {
	sorted := make([]api.Event, len(events))
	copy(sorted, events)

	sort.SliceStable(sorted, func(i, j int) bool {
		iOverdue := sorted[i].DueAt.Before(now)
		jOverdue := sorted[j].DueAt.Before(now)

		if iOverdue != jOverdue {
			return jOverdue
		}

		return sorted[i].DueAt.Before(sorted[j].DueAt.Time)
	})

	return sorted
}

// FilterSearch keeps events whose title or description contains the term,
// case-insensitively. An empty term returns the input unchanged. Filtering
// happens at render time; the cache itself is never filtered in place.
func FilterSearch(events []api.Event, term string) []api.Event {
	if term == "" {
		return events
	}

	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return events
	}

	matched := make([]api.Event, 0, len(events))

	for _, event := range events {
		if strings.Contains(strings.ToLower(event.Title), needle) ||
			strings.Contains(strings.ToLower(event.Description), needle) {
			matched = append(matched, event)
		}
	}

	return matched
}
