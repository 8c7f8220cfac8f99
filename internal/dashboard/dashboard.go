// Package dashboard aggregates a read-only summary across every controller.
package dashboard

import (
	"time"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/journal"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/mood"
	"github.com/julianstephens/daybook/internal/reminders"
	"github.com/julianstephens/daybook/internal/routines"
	"github.com/julianstephens/daybook/internal/themes"
)

// Sources are the controllers the summary reads from.
type Sources struct {
	Mood      *mood.Controller
	Reminders *reminders.Controller
	Routines  *routines.Controller
	Journal   *journal.Controller
	Themes    *themes.Controller
}

type Summary struct {
	Date          time.Time
	TodayMood     models.MoodID
	TodayMoodSet  bool
	TodayEmoji    string
	Upcoming      []models.Reminder
	RecentEntries []models.JournalEntry
	Progress      routines.Progress
	RoutineCount  int
}

// MoodLabel renders today's mood as "emoji label" or "Not set".
func (s Summary) MoodLabel() string {
	if !s.TodayMoodSet {
		return "Not set"
	}
	level, ok := models.LookupMood(s.TodayMood)
	if !ok {
		return "Not set"
	}
	return s.TodayEmoji + " " + level.Label
}

// Build computes the summary as of now.
func Build(src Sources, now time.Time) Summary {
	s := Summary{Date: now}

	if src.Mood != nil {
		s.TodayMood, s.TodayMoodSet = src.Mood.Today(now)
		if s.TodayMoodSet {
			if src.Themes != nil {
				s.TodayEmoji = src.Themes.Emoji(s.TodayMood)
			} else {
				s.TodayEmoji = models.StickerPacks[0].EmojiFor(s.TodayMood)
			}
		}
	}
	if src.Reminders != nil {
		s.Upcoming = src.Reminders.Upcoming(now, constants.DashboardUpcomingLimit)
	}
	if src.Journal != nil {
		s.RecentEntries = src.Journal.Recent(constants.DashboardRecentLimit)
	}
	if src.Routines != nil {
		s.Progress = src.Routines.WeeklyProgress(now, constants.DashboardProgressDays)
		s.RoutineCount = len(src.Routines.List())
	}
	return s
}
