package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/notifier"
)

// NotifyCmd is meant to run from cron once a minute.
type NotifyCmd struct {
	Window int  `help:"Look-back window in minutes for due reminders." default:"1"`
	DryRun bool `help:"Print what would be sent without notifying."`
}

func (c *NotifyCmd) Validate() error {
	if c.Window < 1 {
		return fmt.Errorf("window must be at least 1 minute")
	}
	return nil
}

func (c *NotifyCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	now := ctx.now()
	window := time.Duration(c.Window) * time.Minute
	sent := 0

	send := func(title, body string) {
		sent++
		if c.DryRun {
			ctx.printf("%s: %s\n", title, body)
			return
		}
		notifier.Dispatch(ctx.Notifier, title, body)
	}

	for _, r := range a.Reminders.Due(now, window) {
		body := r.Title
		if r.Description != "" {
			body += "\n" + r.Description
		}
		send(fmt.Sprintf("Reminder (%s)", label(string(r.Priority))), body)
	}
	for _, r := range a.Routines.DueAt(now) {
		send("Routine", fmt.Sprintf("%s at %s", r.Title, r.Time))
	}

	logger.Debug("Notify run complete", "sent", sent, "window", window, "at", now.Format(constants.DateTimeFormat))
	return nil
}
