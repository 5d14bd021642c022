package schedule_test

import (
	"testing"
	"time"

	"eventdeck/pkg/api"
	"eventdeck/pkg/schedule"
	"github.com/stretchr/testify/assert"
)

func dueOn(year int, month time.Month, day int) api.Event {
	due := time.Date(year, month, day, 14, 30, 0, 0, time.Local)

	return makeEvent(due.Add(-72*time.Hour), due, api.StatusActive, api.PriorityMedium)
}

func TestBucketByDayGroupsAndPreservesOrder(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	first := dueOn(2024, time.March, 15)
	second := dueOn(2024, time.March, 15)
	second.ID = 2
	other := dueOn(2024, time.March, 20)

	buckets := schedule.BucketByDay([]api.Event{first, second, other}, 2024, time.March)

	assert.Len(buckets["2024-03-15"], 2)
	assert.Equal(int64(1), buckets["2024-03-15"][0].ID)
	assert.Equal(int64(2), buckets["2024-03-15"][1].ID)
	assert.Len(buckets["2024-03-20"], 1)
}

func TestBucketByDayMonthBoundaries(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	jan31 := dueOn(2024, time.January, 31)

	// its own month
	january := schedule.BucketByDay([]api.Event{jan31}, 2024, time.January)
	assert.Contains(january, "2024-01-31")

	// visible as a leading previous-month day of the February view
	february := schedule.BucketByDay([]api.Event{jan31}, 2024, time.February)
	assert.Contains(february, "2024-01-31")

	// but not reachable from December of the prior year: that view's
	// trailing days end in early January
	december := schedule.BucketByDay([]api.Event{jan31}, 2023, time.December)
	assert.NotContains(december, "2024-01-31")
	assert.Empty(december)
}

func TestBucketByDayYearRollover(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	// December of the previous year feeding the January view
	dec31 := dueOn(2023, time.December, 31)
	january := schedule.BucketByDay([]api.Event{dec31}, 2024, time.January)
	assert.Contains(january, "2023-12-31")

	// January of the next year feeding the December view
	jan3 := dueOn(2025, time.January, 3)
	december := schedule.BucketByDay([]api.Event{jan3}, 2024, time.December)
	assert.Contains(december, "2025-01-03")
}

func TestBucketByDayExcludesFarMonths(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	events := []api.Event{
		dueOn(2024, time.June, 10),
		dueOn(2024, time.October, 10),
	}

	buckets := schedule.BucketByDay(events, 2024, time.March)
	assert.Empty(buckets)
}

func TestBucketByRange(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	start := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, time.August, 3, 0, 0, 0, 0, time.Local)

	events := []api.Event{
		dueOn(2024, time.March, 9),  // day before the window
		dueOn(2024, time.March, 10), // first day
		dueOn(2024, time.May, 20),
		dueOn(2024, time.August, 3), // last day is inclusive
		dueOn(2024, time.August, 4),
	}

	buckets := schedule.BucketByRange(events, start, end)

	assert.Len(buckets, 3)
	assert.Contains(buckets, "2024-03-10")
	assert.Contains(buckets, "2024-05-20")
	assert.Contains(buckets, "2024-08-03")
}
