package cli

import (
	"github.com/julianstephens/daybook/internal/models"
)

type DashboardCmd struct{}

func (c *DashboardCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	s := a.Dashboard(ctx.now())

	ctx.printf("%s\n\n", s.Date.Format("Monday, January 2, 2006"))
	ctx.printf("Today's mood:  %s\n", s.MoodLabel())
	ctx.printf("Routines:      %d%% this week (%d/%d scheduled days, %d routines)\n",
		s.Progress.Percent(), s.Progress.Completed, s.Progress.Scheduled, s.RoutineCount)

	ctx.println("\nUpcoming reminders:")
	if len(s.Upcoming) == 0 {
		ctx.println("  No upcoming reminders")
	}
	for _, r := range s.Upcoming {
		ctx.printf("  %s  %s  [%s]\n", r.DateTime, r.Title, label(string(r.Priority)))
	}

	ctx.println("\nRecent journal entries:")
	if len(s.RecentEntries) == 0 {
		ctx.println("  No journal entries yet")
	}
	for _, e := range s.RecentEntries {
		ctx.printf("  %s  %s%s\n", e.CreatedAt.In(ctx.location()).Format("Jan 2"), e.Title, moodSuffix(a.Themes.Emoji, e.Mood))
	}
	return nil
}

func moodSuffix(emoji func(models.MoodID) string, id models.MoodID) string {
	if id == "" {
		return ""
	}
	return " " + emoji(id)
}
