package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/utils"
)

func parseMood(s string) (models.MoodID, error) {
	id := models.MoodID(strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-")))
	if !id.Valid() {
		var ids []string
		for _, level := range models.MoodLevels {
			ids = append(ids, string(level.ID))
		}
		return "", fmt.Errorf("unknown mood %q (one of %s)", s, strings.Join(ids, ", "))
	}
	return id, nil
}

type MoodSetCmd struct {
	Level string `arg:"" help:"Mood level (very-happy|happy|neutral|sad|very-sad)."`
	Date  string `short:"d" help:"Day (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (c *MoodSetCmd) Run(ctx *Context) error {
	id, err := parseMood(c.Level)
	if err != nil {
		return err
	}
	day, err := ctx.parseDay(c.Date)
	if err != nil {
		return err
	}
	a, err := ctx.App()
	if err != nil {
		return err
	}
	if err := a.Mood.Set(utils.DayKey(day), id); err != nil {
		return err
	}
	level, _ := models.LookupMood(id)
	ctx.printf("Mood for %s: %s %s\n", utils.DayKey(day), a.Themes.Emoji(id), level.Label)
	return nil
}

type MoodShowCmd struct {
	Month string `short:"m" help:"Month to show (YYYY-MM); defaults to the current month."`
}

func (c *MoodShowCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	first := utils.FirstOfMonth(ctx.now(), 0)
	if c.Month != "" {
		first, err = time.ParseInLocation("2006-01", c.Month, ctx.location())
		if err != nil {
			return fmt.Errorf("invalid month %q (expected YYYY-MM)", c.Month)
		}
	}

	ctx.printf("%s\n", first.Format("January 2006"))
	ctx.println(" Su  Mo  Tu  We  Th  Fr  Sa")

	days := a.Mood.Month(first.Year(), first.Month(), ctx.location())
	var row strings.Builder
	for i, d := range days {
		switch {
		case d.Blank:
			row.WriteString("    ")
		case d.Mood != "":
			fmt.Fprintf(&row, " %s ", a.Themes.Emoji(d.Mood))
		default:
			fmt.Fprintf(&row, " %2d ", d.Date.Day())
		}
		if (i+1)%7 == 0 || i == len(days)-1 {
			ctx.println(strings.TrimRight(row.String(), " "))
			row.Reset()
		}
	}
	return nil
}

type MoodStatsCmd struct {
	Days int `help:"Number of days to include, ending today." default:"30"`
}

func (c *MoodStatsCmd) Validate() error {
	if c.Days < 1 {
		return fmt.Errorf("days must be at least 1")
	}
	return nil
}

func (c *MoodStatsCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	to := ctx.now()
	from := to.AddDate(0, 0, -(c.Days - 1))
	counts := a.Mood.Stats(from, to)

	ctx.printf("Moods from %s to %s:\n", utils.DayKey(from), utils.DayKey(to))
	total := 0
	for _, level := range models.MoodLevels {
		n := counts[level.ID]
		total += n
		ctx.printf("  %s %-10s %s %d\n", a.Themes.Emoji(level.ID), level.Label, strings.Repeat("█", n), n)
	}
	ctx.printf("Recorded %d of %d days\n", total, c.Days)
	return nil
}
