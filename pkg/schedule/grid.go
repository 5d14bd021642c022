package schedule

import (
	"fmt"
	"time"
)

// gridCells is the fixed size of the normal-mode month grid: 6 full weeks,
// so the grid height never jumps when paging between months.
const gridCells = 42

// TierMuted marks a calendar cell whose event styling is collapsed because
// quick-add mode turns the whole grid into a date picker.
const TierMuted = -1

// DayCell is one day slot in a calendar grid. A zero DayCell (Day == 0) is
// a blank filler around waterfall month dividers.
type DayCell struct {
	Date       time.Time
	Day        int
	OtherMonth bool
	Today      bool
}

// MonthGrid builds the normal-mode layout for a month: leading cells from
// the previous month (one per weekday before the 1st, Sunday-based), the
// month's own days, and trailing next-month cells padding out to exactly
// 42 cells.
func MonthGrid(year int, month time.Month, today time.Time) []DayCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	lead := int(first.Weekday())

	cells := make([]DayCell, 0, gridCells)

	for i := 0; i < gridCells; i++ {
		date := first.AddDate(0, 0, i-lead)
		cells = append(cells, DayCell{
			Date:       date,
			Day:        date.Day(),
			OtherMonth: date.Month() != month,
			Today:      sameDay(date, today),
		})
	}

	return cells
}

// WaterfallRow is one rendered row of the waterfall view: either a week of
// seven day cells or a month divider.
type WaterfallRow struct {
	Divider bool
	Label   string    // "2024年7月" on divider rows
	Cells   []DayCell // always 7 on week rows, nil on divider rows
}

// WaterfallWindow returns the day range the waterfall view covers: today
// extended back to the preceding Sunday, through the last day of the month
// span months ahead extended forward to the following Saturday.
func WaterfallWindow(today time.Time, span int) (start, end time.Time) {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.Local)
	start = day.AddDate(0, 0, -int(day.Weekday()))

	// day 0 of month+span+1 is the last day of month+span; time.Date
	// normalizes the month overflow including year rollover.
	last := time.Date(day.Year(), day.Month()+time.Month(span)+1, 0, 0, 0, 0, 0, time.Local)
	end = last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	return start, end
}

// WaterfallRows streams the window's days into week rows. Immediately
// before the first day of each month inside the window the current week is
// padded with blank cells, a divider row is emitted, and the next week
// resumes with leading blanks so weekday columns stay aligned. A month
// already in progress at the window start gets no divider.
func WaterfallRows(today time.Time, span int) []WaterfallRow {
	start, end := WaterfallWindow(today, span)

	var rows []WaterfallRow

	week := make([]DayCell, 0, 7)

	flush := func() {
		if len(week) == 0 {
			return
		}

		for len(week) < 7 {
			week = append(week, DayCell{})
		}

		rows = append(rows, WaterfallRow{Cells: week})
		week = make([]DayCell, 0, 7)
	}

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		if date.Day() == 1 {
			flush()

			rows = append(rows, WaterfallRow{
				Divider: true,
				Label:   fmt.Sprintf("%d年%d月", date.Year(), int(date.Month())),
			})

			for i := 0; i < int(date.Weekday()); i++ {
				week = append(week, DayCell{})
			}
		}

		week = append(week, DayCell{
			Date:  date,
			Day:   date.Day(),
			Today: sameDay(date, today),
		})

		if len(week) == 7 {
			rows = append(rows, WaterfallRow{Cells: week})
			week = make([]DayCell, 0, 7)
		}
	}

	flush()

	return rows
}

// CellTier maps a day's event count to its background tier (0 through 3).
// Quick-add mode flattens every non-empty cell to TierMuted so the
// calendar reads as a date picker rather than a set of links.
func CellTier(count int, quickAdd bool) int {
	if count == 0 {
		return 0
	}

	if quickAdd {
		return TierMuted
	}

	if count >= 3 {
		return 3
	}

	return count
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
