package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/routines"
	"github.com/julianstephens/daybook/internal/utils"
)

type RoutineAddCmd struct {
	Title    string `arg:"" help:"Routine title."`
	Time     string `short:"t" help:"Time of day (HH:MM)." required:""`
	Days     string `short:"d" help:"Comma-separated weekdays, or daily/weekdays/weekends." required:""`
	Notify   bool   `short:"n" negatable:"" default:"true" help:"Send a notification at the routine's time."`
	Category string `short:"c" help:"Category (personal|work|health|hobby)." default:"personal" enum:"personal,work,health,hobby"`
}

func (c *RoutineAddCmd) Run(ctx *Context) error {
	days, err := parseWeekdays(c.Days)
	if err != nil {
		return err
	}
	a, err := ctx.App()
	if err != nil {
		return err
	}
	r, err := a.Routines.Add(routines.Input{
		Title:         c.Title,
		Time:          c.Time,
		Days:          days,
		Notifications: c.Notify,
		Category:      models.Category(c.Category),
	})
	if err != nil {
		return err
	}
	ctx.printf("Added routine: %s at %s on %s (ID: %s)\n", r.Title, r.Time, formatWeekdays(r.Days), r.ID)
	return nil
}

type RoutineEditCmd struct {
	ID       string  `arg:"" help:"Routine ID."`
	Title    *string `help:"New title."`
	Time     *string `short:"t" help:"New time of day (HH:MM)."`
	Days     *string `short:"d" help:"New weekdays."`
	Notify   string  `short:"n" help:"Turn notifications on or off." enum:",on,off" default:""`
	Category *string `short:"c" help:"New category."`
}

func (c *RoutineEditCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	existing, err := a.Routines.Get(c.ID)
	if err != nil {
		return err
	}

	in := routines.Input{
		Title:         existing.Title,
		Time:          existing.Time,
		Days:          existing.Days,
		Notifications: existing.Notifications,
		Category:      existing.Category,
	}
	if c.Title != nil {
		in.Title = *c.Title
	}
	if c.Time != nil {
		in.Time = *c.Time
	}
	if c.Days != nil {
		if in.Days, err = parseWeekdays(*c.Days); err != nil {
			return err
		}
	}
	switch c.Notify {
	case "on":
		in.Notifications = true
	case "off":
		in.Notifications = false
	}
	if c.Category != nil {
		in.Category = models.Category(*c.Category)
	}

	r, err := a.Routines.Update(c.ID, in)
	if err != nil {
		return err
	}
	ctx.printf("Updated routine: %s at %s on %s\n", r.Title, r.Time, formatWeekdays(r.Days))
	return nil
}

type RoutineDeleteCmd struct {
	ID string `arg:"" help:"Routine ID."`
}

func (c *RoutineDeleteCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	if err := a.Routines.Delete(c.ID); err != nil {
		return err
	}
	ctx.printf("Deleted routine %s\n", c.ID)
	return nil
}

type RoutineListCmd struct{}

func (c *RoutineListCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	list := a.Routines.List()
	if len(list) == 0 {
		ctx.println("No routines found.")
		return nil
	}

	todayKey := utils.DayKey(ctx.now())
	today := models.WeekdayOf(ctx.now())
	for _, r := range list {
		status := "   "
		if r.ScheduledOn(today) {
			status = "[ ]"
			if r.CompletedOn(todayKey) {
				status = "[x]"
			}
		}
		bell := ""
		if r.Notifications {
			bell = " 🔔"
		}
		ctx.printf("%s %s  %-30s  %-14s  %-8s%s  (%s)\n",
			status, r.Time, r.Title, formatWeekdays(r.Days), label(string(r.Category)), bell, r.ID)
	}
	return nil
}

type RoutineToggleCmd struct {
	ID   string `arg:"" help:"Routine ID."`
	Date string `short:"d" help:"Day (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (c *RoutineToggleCmd) Run(ctx *Context) error {
	day, err := ctx.parseDay(c.Date)
	if err != nil {
		return err
	}
	a, err := ctx.App()
	if err != nil {
		return err
	}
	done, err := a.Routines.ToggleCompletion(c.ID, day)
	if err != nil {
		return err
	}
	r, _ := a.Routines.Get(c.ID)
	state := "not done"
	if done {
		state = "done"
	}
	ctx.printf("%s on %s: %s\n", r.Title, utils.DayKey(day), state)
	return nil
}

type RoutineHeatmapCmd struct {
	ID string `arg:"" help:"Routine ID."`
}

func (c *RoutineHeatmapCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	r, err := a.Routines.Get(c.ID)
	if err != nil {
		return err
	}

	ctx.printf("%s (%s on %s)\n\n", r.Title, r.Time, formatWeekdays(r.Days))
	for _, week := range routines.Weeks(routines.Heatmap(r, ctx.now())) {
		var row strings.Builder
		fmt.Fprintf(&row, "%s ", week[0].Date.Format("Jan 02"))
		for _, cell := range week {
			row.WriteString(heatmapGlyph(cell))
		}
		ctx.println(row.String())
	}
	ctx.println("\n■ done  □ missed  · upcoming  (blank) not scheduled")
	return nil
}

func heatmapGlyph(cell routines.Cell) string {
	switch {
	case !cell.Scheduled:
		return "  "
	case cell.Completed:
		return "■ "
	case cell.Past:
		return "□ "
	default:
		return "· "
	}
}
