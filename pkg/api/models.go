package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// These constants refer to the statuses the server stores on events.
// StatusAll is only valid as a list filter and never appears on an event.
const (
	StatusAll       = "all"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusDeleted   = "deleted"
)

// Priority levels; a lower number is more urgent.
const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

// Action types recorded in an event's history.
const (
	ActionComplete = "complete"
	ActionReopen   = "reopen"
)

// Event is one entry as the server returns it. The client treats it as a
// read cache; all mutations go back through the API.
type Event struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	CreatedAt    Time   `json:"created_at"`
	DueAt        Time   `json:"due_at"`
	TimeHint     string `json:"time_hint"`
	Priority     int    `json:"priority"`
	Status       string `json:"status"`
	LastModified Time   `json:"last_modified"`
}

// Action is one append-only history entry for an event. The server returns
// them newest first.
type Action struct {
	ID      int64  `json:"id"`
	EventID int64  `json:"event_id"`
	Type    string `json:"action_type"`
	Time    Time   `json:"action_time"`
	Comment string `json:"comment"`
}

// EventInput is the body for create and update calls. DueAt is sent as the
// string the form produced; the server parses it leniently.
type EventInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueAt       string `json:"due_at"`
	TimeHint    string `json:"time_hint,omitempty"`
	Priority    int    `json:"priority"`
}

// Time wraps time.Time to accept the mix of timestamp shapes the server
// emits: columns filled by sqlite come back as "2006-01-02 15:04:05",
// isoformat columns with or without a zone suffix.
type Time struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// UnmarshalJSON parses the first layout that matches. Zoneless values are
// taken as local time, matching how the server stores them.
func (t *Time) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("error decoding timestamp: %w", err)
	}

	if s == "" {
		t.Time = time.Time{}

		return nil
	}

	for _, layout := range timeLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = parsed

			return nil
		}
	}

	return fmt.Errorf("unrecognized timestamp %q", s)
}

// MarshalJSON always writes RFC3339.
func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339))
}
