package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"eventdeck/pkg/api"
	"eventdeck/pkg/config"
)

var dueLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

var priorityOptions = []string{"high", "medium", "low"}

func (c *Controller) initEventForm() {
	titleMax := 50
	descriptionMax := 500

	c.eventForm = tview.NewForm().
		AddInputField("Title", "", titleMax, nil, nil).
		AddInputField("Description", "", descriptionMax, nil, nil).
		AddInputField("Due", "", 20, nil, nil).
		AddInputField("Time Hint", "", 30, nil, nil).
		AddDropDown("Priority", priorityOptions, 1, nil)

	c.titleField, _ = c.eventForm.GetFormItemByLabel("Title").(*tview.InputField)
	c.descField, _ = c.eventForm.GetFormItemByLabel("Description").(*tview.InputField)
	c.dueField, _ = c.eventForm.GetFormItemByLabel("Due").(*tview.InputField)
	c.hintField, _ = c.eventForm.GetFormItemByLabel("Time Hint").(*tview.InputField)
	c.priorityDrop, _ = c.eventForm.GetFormItemByLabel("Priority").(*tview.DropDown)

	c.eventForm.AddButton("Save", c.saveEvent)
	c.eventForm.AddButton("Cancel", func() {
		c.showMain()
	})

	c.formTitle = tview.NewTextView().SetDynamicColors(true)

	c.formGrid = tview.NewGrid().SetBorders(true).SetRows(1, 0)
	c.formGrid.AddItem(c.formTitle, 0, 0, 1, 1, 0, 0, false)
	c.formGrid.AddItem(c.eventForm, 1, 0, 1, 1, 0, 0, true)
}

// openEventForm shows the form, blank for a new event or populated from
// the one being edited. dueDefault prefills the due field on quick-add.
func (c *Controller) openEventForm(event *api.Event, dueDefault string) {
	c.editing = event

	title := "New Event"
	if event != nil {
		title = "Edit Event"
	}

	c.formTitle.SetText(fmt.Sprintf("[yellow]%s  [orange]<Esc>[white] Cancel", title))

	if event != nil {
		c.titleField.SetText(event.Title)
		c.descField.SetText(event.Description)
		c.dueField.SetText(event.DueAt.Format(dueLayout))
		c.hintField.SetText(event.TimeHint)
		c.priorityDrop.SetCurrentOption(priorityIndex(event.Priority))
	} else {
		c.titleField.SetText("")
		c.descField.SetText("")
		c.dueField.SetText(dueDefault)
		c.hintField.SetText("")
		c.priorityDrop.SetCurrentOption(priorityIndex(api.PriorityMedium))
	}

	c.eventForm.SetFocus(0)

	c.pages.SwitchToPage(pageName("form"))
	c.app.SetFocus(c.eventForm)
}

// editEvent refetches the event before opening the form so the user never
// edits on top of a stale cache entry.
func (c *Controller) editEvent(id int64) {
	go func() {
		event, err := c.api.GetEvent(c.ctx, id)

		c.app.QueueUpdateDraw(func() {
			if err != nil {
				log.Err(err).Int64("id", id).Msg("error loading event for edit")
				c.notifyError("failed to load event")

				return
			}

			c.openEventForm(event, "")
		})
	}()
}

func (c *Controller) saveEvent() {
	title := strings.TrimSpace(c.titleField.GetText())
	if title == "" {
		c.notifyError("title is required")

		return
	}

	due, err := parseDue(c.dueField.GetText())
	if err != nil {
		c.notifyError("unrecognized due date, use YYYY-MM-DD HH:MM")

		return
	}

	index, _ := c.priorityDrop.GetCurrentOption()

	input := api.EventInput{
		Title:       title,
		Description: c.descField.GetText(),
		DueAt:       due.Format("2006-01-02T15:04:05"),
		TimeHint:    strings.TrimSpace(c.hintField.GetText()),
		Priority:    index + 1,
	}

	editing := c.editing

	go func() {
		var err error

		if editing == nil {
			_, err = c.api.CreateEvent(c.ctx, input)
		} else {
			_, err = c.api.UpdateEvent(c.ctx, editing.ID, input)
		}

		c.app.QueueUpdateDraw(func() {
			if err != nil {
				log.Err(err).Msg("error saving event")
				c.notifyError("failed to save event")

				return
			}

			if editing == nil {
				c.notifyAction(fmt.Sprintf("created %q", title))
			} else {
				c.notifyAction(fmt.Sprintf("updated %q", title))
			}

			c.showMain()
			c.reload()
		})
	}()
}

func parseDue(text string) (time.Time, error) {
	text = strings.TrimSpace(text)

	for _, layout := range dueLayouts {
		if due, err := time.ParseInLocation(layout, text, time.Local); err == nil {
			return due, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized due date %q", text)
}

func priorityIndex(priority int) int {
	if priority < api.PriorityHigh || priority > api.PriorityLow {
		return priorityIndex(api.PriorityMedium)
	}

	return priority - 1
}

func (c *Controller) initSettingsForm() {
	c.settingsForm = tview.NewForm().
		AddCheckbox("Notifications", true, nil).
		AddCheckbox("Action toasts", true, nil).
		AddCheckbox("System toasts", true, nil).
		AddCheckbox("Error toasts", true, nil)

	enabled, _ := c.settingsForm.GetFormItemByLabel("Notifications").(*tview.Checkbox)
	action, _ := c.settingsForm.GetFormItemByLabel("Action toasts").(*tview.Checkbox)
	system, _ := c.settingsForm.GetFormItemByLabel("System toasts").(*tview.Checkbox)
	errors, _ := c.settingsForm.GetFormItemByLabel("Error toasts").(*tview.Checkbox)

	// turning the global switch off drags every category off with it
	enabled.SetChangedFunc(func(checked bool) {
		c.state.Notifications.Enabled = checked

		if !checked {
			c.state.Notifications.Categories = config.NotificationCategories{}

			action.SetChecked(false)
			system.SetChecked(false)
			errors.SetChecked(false)
		}
	})

	action.SetChangedFunc(func(checked bool) { c.state.Notifications.Categories.Action = checked })
	system.SetChangedFunc(func(checked bool) { c.state.Notifications.Categories.System = checked })
	errors.SetChangedFunc(func(checked bool) { c.state.Notifications.Categories.Error = checked })

	c.settingsForm.AddButton("Done", func() {
		c.showMain()
	})

	title := tview.NewTextView().SetDynamicColors(true)
	title.SetText("[yellow]Settings  [orange]<Esc>[white] Back")

	c.settingsGrid = tview.NewGrid().SetBorders(true).SetRows(1, 0)
	c.settingsGrid.AddItem(title, 0, 0, 1, 1, 0, 0, false)
	c.settingsGrid.AddItem(c.settingsForm, 1, 0, 1, 1, 0, 0, true)
}

func (c *Controller) openSettings() {
	settings := map[string]bool{
		"Notifications": c.state.Notifications.Enabled,
		"Action toasts": c.state.Notifications.Categories.Action,
		"System toasts": c.state.Notifications.Categories.System,
		"Error toasts":  c.state.Notifications.Categories.Error,
	}

	for label, checked := range settings {
		if box, ok := c.settingsForm.GetFormItemByLabel(label).(*tview.Checkbox); ok {
			box.SetChecked(checked)
		}
	}

	c.settingsForm.SetFocus(0)

	c.pages.SwitchToPage(pageName("settings"))
	c.app.SetFocus(c.settingsForm)
}

func (c *Controller) initConfirm() {
	c.confirm = tview.NewModal().AddButtons([]string{"Yes", "No"})

	c.confirm.SetDoneFunc(func(index int, label string) {
		action := c.confirmAction
		c.confirmAction = nil

		c.pages.HidePage(pageName("confirm"))
		c.app.SetFocus(c.pages)

		if label == "Yes" && action != nil {
			action()
		}
	})
}

func (c *Controller) askConfirm(text string, action func()) {
	c.confirmAction = action
	c.confirm.SetText(text)

	c.pages.ShowPage(pageName("confirm"))
	c.app.SetFocus(c.confirm)
}
