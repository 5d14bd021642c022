package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"eventdeck/pkg/api"
	"eventdeck/pkg/schedule"
)

func (c *Controller) initDetailPage() {
	c.detailView = tview.NewTextView().SetDynamicColors(true)
}

// openDetail fetches the event and its action history, then brings up the
// detail page. The page it covers is remembered so Esc lands back there.
func (c *Controller) openDetail(id int64) {
	go func() {
		event, err := c.api.GetEvent(c.ctx, id)

		var actions []api.Action
		if err == nil {
			actions, err = c.api.ListActions(c.ctx, id)
		}

		c.app.QueueUpdateDraw(func() {
			if err != nil {
				log.Err(err).Int64("id", id).Msg("error loading event detail")
				c.notifyError("failed to load event")

				return
			}

			c.selected = event
			c.detailActions = actions
			c.renderDetail()

			if front, _ := c.pages.GetFrontPage(); front != pageName("detail") {
				c.returnPage = front
			}

			c.pages.SwitchToPage(pageName("detail"))
			c.app.SetFocus(c.detailView)
		})
	}()
}

func (c *Controller) closeDetail() {
	c.selected = nil
	c.detailActions = nil

	if c.returnPage == pageName("day") {
		c.pages.SwitchToPage(pageName("day"))
		c.app.SetFocus(c.dayTable)

		return
	}

	c.showMain()
}

func (c *Controller) renderDetail() {
	event := c.selected
	now := time.Now()

	var b strings.Builder

	fmt.Fprintf(&b, "[yellow::b]%s[-:-:-]\n\n", tview.Escape(event.Title))

	if event.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", tview.Escape(event.Description))
	}

	due := event.DueAt.Format(dueLayout)
	if event.TimeHint != "" {
		due += fmt.Sprintf(" (%s)", event.TimeHint)
	}

	fmt.Fprintf(&b, "due:      %s\n", due)
	fmt.Fprintf(&b, "created:  %s\n", event.CreatedAt.Format(dueLayout))
	fmt.Fprintf(&b, "priority: %s\n", priorityName(event.Priority))
	fmt.Fprintf(&b, "status:   %s · %s\n", event.Status, c.statusLine(event, now))
	fmt.Fprintf(&b, "progress: %s\n", progressBar(schedule.Progress(*event, now)))

	fmt.Fprint(&b, "\n[yellow]history[white]\n")

	if len(c.detailActions) == 0 {
		fmt.Fprint(&b, "  none\n")
	}

	for _, action := range c.detailActions {
		line := fmt.Sprintf("  %s  %s", action.Time.Format(dueLayout), action.Type)
		if action.Comment != "" {
			line += fmt.Sprintf("  (%s)", tview.Escape(action.Comment))
		}

		fmt.Fprintf(&b, "%s\n", line)
	}

	fmt.Fprint(&b, "\n[orange]<e>[white] Edit  [orange]<c>[white] Complete  "+
		"[orange]<r>[white] Reopen  [orange]<d>[white] Delete  [orange]<Esc>[white] Back\n")

	c.detailView.SetText(b.String())
}

// statusLine is the urgency half of the status row: the countdown for an
// active event, the completion timing for a finished one.
func (c *Controller) statusLine(event *api.Event, now time.Time) string {
	switch event.Status {
	case api.StatusCompleted:
		return schedule.CompletionLabel(*event, c.detailActions)
	case api.StatusCancelled:
		return "cancelled"
	}

	tier := schedule.Classify(event.DueAt.Time, now, event.Status)

	return fmt.Sprintf("[%s]%s[white]", tierTag(tier), schedule.TimeLeft(event.DueAt.Time, now))
}

func tierTag(tier schedule.Tier) string {
	switch tier {
	case schedule.TierOverdue:
		return "#708090"
	case schedule.TierRed:
		return "red"
	case schedule.TierYellow:
		return "yellow"
	case schedule.TierGreen:
		return "green"
	default:
		return "gray"
	}
}

// completeSelected confirms and completes the selected event. Completing
// an event that is already past its deadline is recorded as a make-up so
// the history shows it was finished late.
func (c *Controller) completeSelected() {
	event := *c.selected

	if event.Status != api.StatusActive {
		c.notifySystem("only active events can be completed")

		return
	}

	comment := ""
	text := fmt.Sprintf("Complete %q?", event.Title)

	if event.DueAt.Before(time.Now()) {
		comment = "make-up"
		text = fmt.Sprintf("Complete overdue %q? It will be recorded as a make-up completion.", event.Title)
	}

	c.askConfirm(text, func() {
		go func() {
			_, err := c.api.CompleteEvent(c.ctx, event.ID, comment)

			c.app.QueueUpdateDraw(func() {
				if err != nil {
					log.Err(err).Int64("id", event.ID).Msg("error completing event")
					c.notifyError("failed to complete event")

					return
				}

				c.notifyAction(fmt.Sprintf("completed %q", event.Title))
				c.showMain()
				c.reload()
			})
		}()
	})
}

func (c *Controller) reopenSelected() {
	event := *c.selected

	if event.Status != api.StatusCompleted {
		c.notifySystem("only completed events can be reopened")

		return
	}

	c.askConfirm(fmt.Sprintf("Reopen %q?", event.Title), func() {
		go func() {
			_, err := c.api.ReopenEvent(c.ctx, event.ID)

			c.app.QueueUpdateDraw(func() {
				if err != nil {
					log.Err(err).Int64("id", event.ID).Msg("error reopening event")
					c.notifyError("failed to reopen event")

					return
				}

				c.notifyAction(fmt.Sprintf("reopened %q", event.Title))
				c.showMain()
				c.reload()
			})
		}()
	})
}

func (c *Controller) deleteSelected() {
	event := *c.selected

	c.askConfirm(fmt.Sprintf("Delete %q?", event.Title), func() {
		go func() {
			err := c.api.DeleteEvent(c.ctx, event.ID)

			c.app.QueueUpdateDraw(func() {
				if err != nil {
					log.Err(err).Int64("id", event.ID).Msg("error deleting event")
					c.notifyError("failed to delete event")

					return
				}

				c.notifyAction(fmt.Sprintf("deleted %q", event.Title))
				c.showMain()
				c.reload()
			})
		}()
	})
}
