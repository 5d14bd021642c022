package controller

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"eventdeck/pkg/api"
	"eventdeck/pkg/schedule"
)

// calTitleRows is how many event-title lines each day gets before the
// remainder collapses into a "+N more" slot.
const calTitleRows = 3

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func (c *Controller) initCalendarPage() {
	c.calTitle = tview.NewTextView().SetDynamicColors(true)

	c.calTable = tview.NewTable().SetBorders(false)
	c.calTable.SetSelectable(true, true)
	c.calTable.SetFixed(1, 0)
	c.calTable.SetSelectedFunc(c.selectCalendarCell)

	c.calGrid = tview.NewGrid().SetBorders(true).SetRows(1, 0)
	c.calGrid.AddItem(c.calTitle, 0, 0, 1, 1, 0, 0, false)
	c.calGrid.AddItem(c.calTable, 1, 0, 1, 1, 0, 0, true)
}

// selectCalendarCell handles Enter on a calendar cell: title cells open
// the event behind them, day cells go through the day contract.
func (c *Controller) selectCalendarCell(row, col int) {
	switch ref := c.calTable.GetCell(row, col).GetReference().(type) {
	case *api.Event:
		c.openDetail(ref.ID)
	case schedule.DayCell:
		c.selectDay(ref)
	}
}

// selectDay is the day contract: quick-add turns the day into a form
// prefill, a day with events opens the day list, and an empty day fetches
// a filler line from the server.
func (c *Controller) selectDay(cell schedule.DayCell) {
	if c.state.QuickAdd {
		c.openEventForm(nil, cell.Date.Format("2006-01-02")+" 12:00")

		return
	}

	if events := c.calBuckets[schedule.DayKey(cell.Date)]; len(events) > 0 {
		c.openDay(cell.Date, events)

		return
	}

	go func() {
		line, err := c.api.GetLine(c.ctx)

		c.app.QueueUpdateDraw(func() {
			if err != nil {
				log.Err(err).Msg("error fetching filler line")
				c.notifyError("failed to fetch a line")

				return
			}

			c.showLine(line)
		})
	}()
}

// renderCalendar rebuilds the calendar table for the active style. Every
// week renders as one day-number row plus calTitleRows title rows, so the
// layout never jumps as events come and go.
func (c *Controller) renderCalendar() {
	now := time.Now()
	visible := c.visibleEvents()

	var rows []schedule.WaterfallRow

	if c.state.CalendarStyle == StyleMonthly {
		cells := schedule.MonthGrid(c.state.AnchorYear, c.state.AnchorMonth, now)

		for i := 0; i < len(cells); i += 7 {
			rows = append(rows, schedule.WaterfallRow{Cells: cells[i : i+7]})
		}

		c.calBuckets = schedule.BucketByDay(visible, c.state.AnchorYear, c.state.AnchorMonth)
		c.calTitle.SetText(fmt.Sprintf("[yellow]%d年%d月", c.state.AnchorYear, int(c.state.AnchorMonth)))
	} else {
		rows = schedule.WaterfallRows(now, c.cfg.WaterfallMonthsSpan)

		start, end := schedule.WaterfallWindow(now, c.cfg.WaterfallMonthsSpan)
		c.calBuckets = schedule.BucketByRange(visible, start, end)
		c.calTitle.SetText(fmt.Sprintf("[yellow]%s — %s", start.Format("2006-01-02"), end.Format("2006-01-02")))
	}

	c.calTable.Clear()

	for col, name := range weekdayNames {
		c.calTable.SetCell(0, col, tview.NewTableCell(name).SetExpansion(1).
			SetTextColor(tcell.ColorYellow).SetSelectable(false))
	}

	tableRow := 1
	selRow, selCol := 1, 0
	haveToday := false

	for _, week := range rows {
		if week.Divider {
			c.calTable.SetCell(tableRow, 0, tview.NewTableCell(week.Label).SetExpansion(1).
				SetTextColor(tcell.ColorYellow).SetSelectable(false))

			for col := 1; col < 7; col++ {
				c.calTable.SetCell(tableRow, col, tview.NewTableCell("").SetSelectable(false))
			}

			tableRow++

			continue
		}

		for col, cell := range week.Cells {
			c.calTable.SetCell(tableRow, col, c.dayNumberCell(cell))

			if cell.Today && !haveToday {
				selRow, selCol = tableRow, col
				haveToday = true
			}
		}

		for line := 0; line < calTitleRows; line++ {
			for col, cell := range week.Cells {
				c.calTable.SetCell(tableRow+1+line, col, c.dayTitleCell(cell, line, now))
			}
		}

		tableRow += 1 + calTitleRows
	}

	c.calTable.Select(selRow, selCol)
}

func (c *Controller) dayNumberCell(cell schedule.DayCell) *tview.TableCell {
	if cell.Day == 0 {
		return tview.NewTableCell("").SetSelectable(false)
	}

	events := c.calBuckets[schedule.DayKey(cell.Date)]
	tier := schedule.CellTier(len(events), c.state.QuickAdd)

	text := fmt.Sprintf("%d", cell.Day)
	if len(events) > 0 {
		text = fmt.Sprintf("%d ●%d", cell.Day, len(events))
	}

	tc := tview.NewTableCell(text).SetExpansion(1).SetReference(cell).
		SetBackgroundColor(tierBackground(tier))

	switch {
	case cell.Today:
		tc.SetTextColor(tcell.ColorAqua).SetAttributes(tcell.AttrBold)
	case cell.OtherMonth:
		tc.SetTextColor(tcell.ColorGray)
	}

	return tc
}

func (c *Controller) dayTitleCell(cell schedule.DayCell, line int, now time.Time) *tview.TableCell {
	if cell.Day == 0 {
		return tview.NewTableCell("").SetSelectable(false)
	}

	events := c.calBuckets[schedule.DayKey(cell.Date)]

	// empty slots still select through to the day
	if line >= len(events) {
		return tview.NewTableCell("").SetReference(cell)
	}

	// the last slot rolls up the overflow
	if line == calTitleRows-1 && len(events) > calTitleRows {
		return tview.NewTableCell(fmt.Sprintf("+%d more", len(events)-line)).SetExpansion(1).
			SetTextColor(tcell.ColorGray).SetReference(cell)
	}

	event := events[line]

	tc := tview.NewTableCell(event.Title).SetExpansion(1)

	// quick-add flattens the calendar into a date picker
	if c.state.QuickAdd {
		return tc.SetTextColor(tcell.ColorGray).SetReference(cell)
	}

	tc.SetReference(&events[line])

	if event.Status == api.StatusCompleted {
		return tc.SetTextColor(tcell.ColorGray).SetAttributes(tcell.AttrStrikeThrough)
	}

	tc.SetTextColor(tierColor(schedule.Classify(event.DueAt.Time, now, event.Status)))

	if event.Priority == api.PriorityHigh {
		tc.SetAttributes(tcell.AttrBold)
	}

	return tc
}

// tierBackground shades a day by how loaded it is; quick-add mutes every
// non-empty day to the same neutral shade.
func tierBackground(tier int) tcell.Color {
	switch tier {
	case schedule.TierMuted:
		return tcell.ColorDarkSlateGray
	case 1:
		return tcell.ColorDarkGreen
	case 2:
		return tcell.ColorDarkGoldenrod
	case 3:
		return tcell.ColorDarkRed
	default:
		return tcell.ColorDefault
	}
}
