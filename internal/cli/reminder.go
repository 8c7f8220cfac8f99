package cli

import (
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/reminders"
)

type ReminderAddCmd struct {
	Title       string `arg:"" help:"Reminder title."`
	At          string `short:"a" help:"Date and time (YYYY-MM-DDTHH:MM)." required:""`
	Description string `short:"D" help:"Optional description."`
	Priority    string `short:"p" help:"Priority (low|medium|high)." default:"medium" enum:"low,medium,high"`
}

func (c *ReminderAddCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	r, err := a.Reminders.Add(reminders.Input{
		Title:       c.Title,
		Description: c.Description,
		DateTime:    c.At,
		Priority:    models.Priority(c.Priority),
	})
	if err != nil {
		return err
	}
	ctx.printf("Added reminder: %s at %s (ID: %s)\n", r.Title, r.DateTime, r.ID)
	return nil
}

type ReminderEditCmd struct {
	ID          string  `arg:"" help:"Reminder ID."`
	Title       *string `short:"t" help:"New title."`
	At          *string `short:"a" help:"New date and time (YYYY-MM-DDTHH:MM)."`
	Description *string `short:"D" help:"New description."`
	Priority    *string `short:"p" help:"New priority (low|medium|high)."`
}

func (c *ReminderEditCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	existing, err := a.Reminders.Get(c.ID)
	if err != nil {
		return err
	}

	in := reminders.Input{
		Title:       existing.Title,
		Description: existing.Description,
		DateTime:    existing.DateTime,
		Priority:    existing.Priority,
	}
	if c.Title != nil {
		in.Title = *c.Title
	}
	if c.At != nil {
		in.DateTime = *c.At
	}
	if c.Description != nil {
		in.Description = *c.Description
	}
	if c.Priority != nil {
		in.Priority = models.Priority(*c.Priority)
	}

	r, err := a.Reminders.Update(c.ID, in)
	if err != nil {
		return err
	}
	ctx.printf("Updated reminder: %s at %s\n", r.Title, r.DateTime)
	return nil
}

type ReminderToggleCmd struct {
	ID string `arg:"" help:"Reminder ID."`
}

func (c *ReminderToggleCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	r, err := a.Reminders.Toggle(c.ID)
	if err != nil {
		return err
	}
	state := "incomplete"
	if r.Completed {
		state = "complete"
	}
	ctx.printf("Marked %s as %s\n", r.Title, state)
	return nil
}

type ReminderDeleteCmd struct {
	ID string `arg:"" help:"Reminder ID."`
}

func (c *ReminderDeleteCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	if err := a.Reminders.Delete(c.ID); err != nil {
		return err
	}
	ctx.printf("Deleted reminder %s\n", c.ID)
	return nil
}

type ReminderListCmd struct {
	Pending bool `help:"Only show incomplete reminders."`
}

func (c *ReminderListCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	list := a.Reminders.List()
	if len(list) == 0 {
		ctx.println("No reminders found.")
		return nil
	}

	for _, r := range list {
		if c.Pending && r.Completed {
			continue
		}
		check := "[ ]"
		if r.Completed {
			check = "[x]"
		}
		ctx.printf("%s %s  %-30s  %-6s  (%s)\n", check, r.DateTime, r.Title, label(string(r.Priority)), r.ID)
		if r.Description != "" {
			ctx.printf("      %s\n", r.Description)
		}
	}
	return nil
}
