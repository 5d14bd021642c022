package controller

import (
	"fmt"
	"time"
)

const toastDuration = 3 * time.Second

// notifyAction reports a completed user action ("created ...").
func (c *Controller) notifyAction(msg string) {
	if !c.state.Notifications.Enabled || !c.state.Notifications.Categories.Action {
		return
	}

	c.showTransient(fmt.Sprintf("[green]%s", msg), toastDuration)
}

// notifySystem reports state changes the user did not ask for directly.
func (c *Controller) notifySystem(msg string) {
	if !c.state.Notifications.Enabled || !c.state.Notifications.Categories.System {
		return
	}

	c.showTransient(fmt.Sprintf("[aqua]%s", msg), toastDuration)
}

// notifyError reports a failed operation. The underlying error is already
// in the log by the time this runs; the bar only says what failed.
func (c *Controller) notifyError(msg string) {
	if !c.state.Notifications.Enabled || !c.state.Notifications.Categories.Error {
		return
	}

	c.showTransient(fmt.Sprintf("[red]%s", msg), toastDuration)
}

// showLine shows the filler line fetched for an empty calendar day. It
// rides the system category with its own configured duration.
func (c *Controller) showLine(text string) {
	if !c.state.Notifications.Enabled || !c.state.Notifications.Categories.System {
		return
	}

	c.showTransient(text, time.Duration(c.cfg.MessageDisplayMS)*time.Millisecond)
}

// showTransient puts text on the status bar and clears it after the
// duration. A newer message simply restarts the clock.
func (c *Controller) showTransient(text string, duration time.Duration) {
	if c.clearTimer != nil {
		c.clearTimer.Stop()
	}

	c.statusBar.SetText(text)

	c.clearTimer = time.AfterFunc(duration, func() {
		c.app.QueueUpdateDraw(func() {
			c.statusBar.SetText("")
		})
	})
}
