package controller

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"eventdeck/pkg/api"
	"eventdeck/pkg/schedule"
)

const (
	descTitleRatio = 2
	progressSlots  = 10
)

const dueLayout = "2006-01-02 15:04"

// eventListContent implements tview.TableContent for the list and day
// pages. It renders whatever slice the controller last handed it, so a
// reload only has to swap the slice.
type eventListContent struct {
	tview.TableContentReadOnly
	events []api.Event
	now    time.Time
}

func (e *eventListContent) update(events []api.Event, now time.Time) {
	e.events = events
	e.now = now
}

var listColumns = []string{"due", "left", "title", "description", "priority", "progress", "status"}

// GetCell returns the cell at the given position or nil if no cell.
func (e *eventListContent) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		if col >= len(listColumns) {
			return nil
		}

		expansion := 1
		if listColumns[col] == "description" {
			expansion = descTitleRatio
		}

		return tview.NewTableCell(listColumns[col]).SetExpansion(expansion).
			SetTextColor(tcell.ColorYellow).SetSelectable(false)
	}

	if row-1 >= len(e.events) {
		return nil
	}

	event := e.events[row-1]
	tier := schedule.Classify(event.DueAt.Time, e.now, event.Status)

	switch col {
	case 0:
		return tview.NewTableCell(event.DueAt.Format(dueLayout)).SetExpansion(1)
	case 1:
		return tview.NewTableCell(timeLeftText(event, e.now)).SetExpansion(1).
			SetTextColor(tierColor(tier))
	case 2:
		cell := tview.NewTableCell(event.Title).SetExpansion(1).SetReference(&e.events[row-1])
		if event.Status == api.StatusCompleted {
			cell.SetTextColor(tcell.ColorGray).SetAttributes(tcell.AttrStrikeThrough)
		}

		return cell
	case 3:
		return tview.NewTableCell(event.Description).SetExpansion(descTitleRatio)
	case 4:
		return tview.NewTableCell(priorityName(event.Priority)).SetExpansion(1).
			SetTextColor(priorityColor(event.Priority))
	case 5:
		return tview.NewTableCell(progressBar(schedule.Progress(event, e.now))).SetExpansion(1)
	case 6:
		return tview.NewTableCell(event.Status).SetExpansion(1)
	}

	return nil
}

// GetRowCount returns the number of rows in the table.
func (e *eventListContent) GetRowCount() int {
	return len(e.events) + 1
}

// GetColumnCount returns the number of columns in the table.
func (e *eventListContent) GetColumnCount() int {
	return len(listColumns)
}

// timeLeftText is the "left" column: the countdown for anything still on
// the clock, a flat word for the terminal statuses.
func timeLeftText(event api.Event, now time.Time) string {
	switch event.Status {
	case api.StatusCompleted:
		return "done"
	case api.StatusCancelled:
		return "cancelled"
	}

	return schedule.TimeLeft(event.DueAt.Time, now)
}

func tierColor(tier schedule.Tier) tcell.Color {
	switch tier {
	case schedule.TierOverdue:
		return tcell.ColorSlateGray
	case schedule.TierRed:
		return tcell.ColorRed
	case schedule.TierYellow:
		return tcell.ColorYellow
	case schedule.TierGreen:
		return tcell.ColorGreen
	default:
		return tcell.ColorGray
	}
}

func priorityName(priority int) string {
	switch priority {
	case api.PriorityHigh:
		return "high"
	case api.PriorityMedium:
		return "medium"
	case api.PriorityLow:
		return "low"
	}

	return fmt.Sprintf("%d", priority)
}

func priorityColor(priority int) tcell.Color {
	switch priority {
	case api.PriorityHigh:
		return tcell.ColorOrange
	case api.PriorityLow:
		return tcell.ColorGray
	default:
		return tcell.ColorWhite
	}
}

func progressBar(percent int) string {
	filled := percent * progressSlots / 100

	return strings.Repeat("█", filled) + strings.Repeat("░", progressSlots-filled) +
		fmt.Sprintf(" %d%%", percent)
}

func (c *Controller) initListPage() {
	c.listContent = &eventListContent{}

	c.listTable = tview.NewTable().SetBorders(false)
	c.listTable.SetContent(c.listContent)
	c.listTable.SetSelectable(true, false)
	c.listTable.Select(1, 0).SetFixed(1, 0)

	c.listTable.SetSelectedFunc(func(row, col int) {
		if idx := row - 1; idx >= 0 && idx < len(c.listed) {
			c.openDetail(c.listed[idx].ID)
		}
	})
}

// renderList sorts the visible events for display: soonest deadline
// first, with everything already overdue pushed to the bottom.
func (c *Controller) renderList() {
	now := time.Now()

	c.listed = schedule.SortForList(c.visibleEvents(), now)
	c.listContent.update(c.listed, now)

	if row, _ := c.listTable.GetSelection(); row > len(c.listed) {
		c.listTable.Select(len(c.listed), 0)
	}
}

func (c *Controller) initDayPage() {
	c.dayContent = &eventListContent{}

	c.dayTitle = tview.NewTextView().SetDynamicColors(true)

	c.dayTable = tview.NewTable().SetBorders(false)
	c.dayTable.SetContent(c.dayContent)
	c.dayTable.SetSelectable(true, false)
	c.dayTable.SetFixed(1, 0)

	c.dayTable.SetSelectedFunc(func(row, col int) {
		if idx := row - 1; idx >= 0 && idx < len(c.dayList) {
			c.openDetail(c.dayList[idx].ID)
		}
	})

	c.dayGrid = tview.NewGrid().SetBorders(true).SetRows(1, 0)
	c.dayGrid.AddItem(c.dayTitle, 0, 0, 1, 1, 0, 0, false)
	c.dayGrid.AddItem(c.dayTable, 1, 0, 1, 1, 0, 0, true)
}

// openDay shows all events due on one calendar day, ascending by due
// time (the overdue-last rule is for the mixed list, not a single day).
func (c *Controller) openDay(date time.Time, events []api.Event) {
	now := time.Now()

	c.dayList = append([]api.Event(nil), events...)
	sort.SliceStable(c.dayList, func(i, j int) bool {
		return c.dayList[i].DueAt.Before(c.dayList[j].DueAt.Time)
	})
	c.dayContent.update(c.dayList, now)
	c.dayTitle.SetText(fmt.Sprintf("[yellow]%s · %d events  [white]<Esc> Back", date.Format("2006-01-02"), len(c.dayList)))
	c.dayTable.Select(1, 0)

	c.pages.SwitchToPage(pageName("day"))
	c.app.SetFocus(c.dayTable)
}
