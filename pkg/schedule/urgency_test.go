package schedule_test

import (
	"testing"
	"time"

	"eventdeck/pkg/api"
	"eventdeck/pkg/schedule"
	"github.com/stretchr/testify/assert"
)

func makeEvent(created, due time.Time, status string, priority int) api.Event {
	return api.Event{
		ID:        1,
		Title:     "finish the slides",
		CreatedAt: api.Time{Time: created},
		DueAt:     api.Time{Time: due},
		Priority:  priority,
		Status:    status,
	}
}

func TestClassifyOverdueIgnoresPriority(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local)

	for _, priority := range []int{api.PriorityHigh, api.PriorityMedium, api.PriorityLow} {
		event := makeEvent(now.Add(-48*time.Hour), now.Add(-3*time.Hour), api.StatusActive, priority)
		assert.Equal(schedule.TierOverdue, schedule.Classify(event.DueAt.Time, now, event.Status))
	}
}

func TestClassifyTiers(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name   string
		due    time.Time
		status string
		want   schedule.Tier
	}{
		{"due within two days", now.Add(36 * time.Hour), api.StatusActive, schedule.TierRed},
		{"exactly at the red boundary", now.Add(48 * time.Hour), api.StatusActive, schedule.TierRed},
		{"due within five days", now.Add(4 * 24 * time.Hour), api.StatusActive, schedule.TierYellow},
		{"due far out", now.Add(10 * 24 * time.Hour), api.StatusActive, schedule.TierGreen},
		{"past due", now.Add(-time.Minute), api.StatusActive, schedule.TierOverdue},
		{"completed is always neutral", now.Add(-time.Minute), api.StatusCompleted, schedule.TierNeutral},
		{"cancelled still classifies by time", now.Add(-time.Minute), api.StatusCancelled, schedule.TierOverdue},
		{"unrecognized status is neutral", now.Add(-time.Minute), "archived", schedule.TierNeutral},
	}

	for _, test := range tests {
		assert.Equal(test.want, schedule.Classify(test.due, now, test.status), test.name)
	}
}

func TestTimeLeftLabels(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local)

	tests := []struct {
		due  time.Time
		want string
	}{
		{now.Add(3 * 24 * time.Hour), "3 days left"},
		{now.Add(26 * time.Hour), "1 days left"},
		{now.Add(5 * time.Hour), "5 hours left"},
		{now.Add(30 * time.Minute), "due soon"},
		{now.Add(-30 * time.Minute), "overdue"},
		{now.Add(-5 * time.Hour), "overdue by 5 hours"},
		{now.Add(-49 * time.Hour), "overdue by 2 days"},
	}

	for _, test := range tests {
		assert.Equal(test.want, schedule.TimeLeft(test.due, now))
	}
}

func TestCompletionLabel(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	created := time.Date(2024, time.March, 10, 8, 0, 0, 0, time.Local)
	due := created.Add(10 * time.Hour)
	event := makeEvent(created, due, api.StatusCompleted, api.PriorityMedium)

	actions := []api.Action{
		{Type: api.ActionComplete, Time: api.Time{Time: created.Add(3 * time.Hour)}},
	}
	assert.Equal("completed at 30% of planned window", schedule.CompletionLabel(event, actions))

	// completion after the deadline is reported over 100%, not clamped
	late := []api.Action{
		{Type: api.ActionComplete, Time: api.Time{Time: created.Add(13 * time.Hour)}},
	}
	assert.Equal("completed at 130% of planned window", schedule.CompletionLabel(event, late))

	// the first complete action wins; reopens are skipped
	mixed := []api.Action{
		{Type: api.ActionReopen, Time: api.Time{Time: created.Add(5 * time.Hour)}},
		{Type: api.ActionComplete, Time: api.Time{Time: created.Add(4 * time.Hour)}},
	}
	assert.Equal("completed at 40% of planned window", schedule.CompletionLabel(event, mixed))

	assert.Equal("completed", schedule.CompletionLabel(event, nil))

	zeroWindow := makeEvent(created, created, api.StatusCompleted, api.PriorityMedium)
	assert.Equal("completed", schedule.CompletionLabel(zeroWindow, actions))
}
