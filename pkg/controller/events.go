package controller

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"eventdeck/pkg/api"
)

func (c *Controller) initEvents() {
	c.mainEvents = map[tcell.Key]KeyEvent{}
	c.detailEvents = map[tcell.Key]KeyEvent{}
	c.dayPageEvents = map[tcell.Key]KeyEvent{}
	c.formEvents = map[tcell.Key]KeyEvent{}

	c.initShowEvents(c.mainEvents)
	c.initCalendarEvents(c.mainEvents)
	c.initMiscEvents(c.mainEvents)
	c.initExitEvent(c.mainEvents)

	c.initDetailEvents(c.detailEvents)
	c.initBackEvent(c.dayPageEvents)
	c.initCancelEvent(c.formEvents)
}

func (c *Controller) getExitAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.app.Stop()

		log.Info().Msg("terminating application")

		os.Exit(0)

		return key
	}
}

func (c *Controller) initExitEvent(events map[tcell.Key]KeyEvent) {
	events[KeyQ] = KeyEvent{
		Description: "Exit",
		Action:      c.getExitAction(),
	}
}

func (c *Controller) getFilterAction(status string) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.state.Status = status
		c.showMain()
		c.notifyAction(fmt.Sprintf("filtering %s events", status))

		return key
	}
}

func (c *Controller) getViewAction(view string) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.state.View = view
		c.showMain()
		c.notifyAction(fmt.Sprintf("switched to %s view", view))

		return key
	}
}

func (c *Controller) initShowEvents(events map[tcell.Key]KeyEvent) {
	events[KeyShiftA] = KeyEvent{
		Description: "Show All",
		Action:      c.getFilterAction(api.StatusAll),
	}

	events[KeyShiftO] = KeyEvent{
		Description: "Show Active",
		Action:      c.getFilterAction(api.StatusActive),
	}

	events[KeyShiftD] = KeyEvent{
		Description: "Show Completed",
		Action:      c.getFilterAction(api.StatusCompleted),
	}

	events[KeyShiftL] = KeyEvent{
		Description: "Show List",
		Action:      c.getViewAction(ViewList),
	}

	events[KeyShiftC] = KeyEvent{
		Description: "Show Calendar",
		Action:      c.getViewAction(ViewCalendar),
	}
}

func (c *Controller) getStyleAction(style string) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.state.CalendarStyle = style
		c.state.View = ViewCalendar
		c.showMain()
		c.notifyAction(fmt.Sprintf("%s calendar", style))

		return key
	}
}

// getMonthAction pages the monthly calendar. The waterfall already covers
// the months ahead, so the keys do nothing while it is up.
func (c *Controller) getMonthAction(months int) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		if c.state.View != ViewCalendar || c.state.CalendarStyle != StyleMonthly {
			return key
		}

		anchor := time.Date(c.state.AnchorYear, c.state.AnchorMonth+time.Month(months), 1, 0, 0, 0, 0, time.Local)
		c.state.AnchorYear = anchor.Year()
		c.state.AnchorMonth = anchor.Month()
		c.showMain()

		return key
	}
}

func (c *Controller) initCalendarEvents(events map[tcell.Key]KeyEvent) {
	events[KeyM] = KeyEvent{
		Description: "Calendar Monthly",
		Action:      c.getStyleAction(StyleMonthly),
	}

	events[KeyW] = KeyEvent{
		Description: "Calendar Waterfall",
		Action:      c.getStyleAction(StyleWaterfall),
	}

	events[KeyP] = KeyEvent{
		Description: "Calendar Prev Month",
		Action:      c.getMonthAction(-1),
	}

	events[KeyN] = KeyEvent{
		Description: "Calendar Next Month",
		Action:      c.getMonthAction(1),
	}

	// in the waterfall a re-render is enough: selection lands on today
	events[KeyT] = KeyEvent{
		Description: "Calendar Today",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			if c.state.View != ViewCalendar {
				return key
			}

			now := time.Now()
			c.state.AnchorYear = now.Year()
			c.state.AnchorMonth = now.Month()
			c.showMain()

			return key
		},
	}
}

func (c *Controller) initMiscEvents(events map[tcell.Key]KeyEvent) {
	events[KeyA] = KeyEvent{
		Description: "Add Event",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.openEventForm(nil, "")

			return key
		},
	}

	events[KeyK] = KeyEvent{
		Description: "Toggle Quick-Add",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.state.QuickAdd = !c.state.QuickAdd

			if c.state.QuickAdd {
				c.notifyAction("quick-add on: select a day to create an event")
			} else {
				c.notifyAction("quick-add off")
			}

			c.renderMain()

			return key
		},
	}

	events[KeyR] = KeyEvent{
		Description: "Refresh",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.reload()

			return key
		},
	}

	events[KeySlash] = KeyEvent{
		Description: "Search",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.app.SetFocus(c.search)

			return nil
		},
	}

	events[KeyS] = KeyEvent{
		Description: "Settings",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.openSettings()

			return key
		},
	}
}

func (c *Controller) initDetailEvents(events map[tcell.Key]KeyEvent) {
	events[KeyE] = KeyEvent{
		Description: "Edit",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			if c.selected != nil {
				c.editEvent(c.selected.ID)
			}

			return key
		},
	}

	events[KeyC] = KeyEvent{
		Description: "Complete",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			if c.selected != nil {
				c.completeSelected()
			}

			return key
		},
	}

	events[KeyR] = KeyEvent{
		Description: "Reopen",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			if c.selected != nil {
				c.reopenSelected()
			}

			return key
		},
	}

	events[KeyD] = KeyEvent{
		Description: "Delete",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			if c.selected != nil {
				c.deleteSelected()
			}

			return key
		},
	}

	events[tcell.KeyEscape] = KeyEvent{
		Description: "Back",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.closeDetail()

			return nil
		},
	}

	c.initExitEvent(events)
}

func (c *Controller) initBackEvent(events map[tcell.Key]KeyEvent) {
	events[tcell.KeyEscape] = KeyEvent{
		Description: "Back",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.showMain()

			return nil
		},
	}

	c.initExitEvent(events)
}

func (c *Controller) initCancelEvent(events map[tcell.Key]KeyEvent) {
	events[tcell.KeyEscape] = KeyEvent{
		Description: "Cancel",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.confirmAction = nil

			// a dismissed confirm uncovers the page it floated over
			if front, _ := c.pages.GetFrontPage(); front == pageName("confirm") {
				c.pages.HidePage(pageName("confirm"))
				c.app.SetFocus(c.pages)

				return nil
			}

			c.showMain()

			return nil
		},
	}
}
