package dashboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/daybook/internal/events"
	"github.com/julianstephens/daybook/internal/journal"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/mood"
	"github.com/julianstephens/daybook/internal/reminders"
	"github.com/julianstephens/daybook/internal/routines"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/storage/memory"
	"github.com/julianstephens/daybook/internal/themes"
)

func sources(t *testing.T) Sources {
	t.Helper()
	repos := storage.NewRepositories(memory.New())
	bus := events.NewBus()

	m, err := mood.New(repos.Moods, bus)
	require.NoError(t, err)
	r, err := reminders.New(repos.Reminders, bus, time.UTC)
	require.NoError(t, err)
	rt, err := routines.New(repos.Routines, bus)
	require.NoError(t, err)
	j, err := journal.New(repos.Journal, bus)
	require.NoError(t, err)
	th, err := themes.New(repos, bus)
	require.NoError(t, err)

	return Sources{Mood: m, Reminders: r, Routines: rt, Journal: j, Themes: th}
}

func TestEmptySummary(t *testing.T) {
	s := Build(sources(t), time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC))

	assert.False(t, s.TodayMoodSet)
	assert.Equal(t, "Not set", s.MoodLabel())
	assert.Empty(t, s.Upcoming)
	assert.Empty(t, s.RecentEntries)
	assert.Equal(t, 0, s.Progress.Percent())
}

func TestSummary(t *testing.T) {
	src := sources(t)
	now := time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)

	require.NoError(t, src.Mood.Set("2024-03-11", models.MoodHappy))
	require.NoError(t, src.Themes.PurchaseStickerPack("nature"))
	require.NoError(t, src.Themes.SelectStickerPack("nature"))

	for i := 0; i < 5; i++ {
		_, err := src.Reminders.Add(reminders.Input{
			Title:    fmt.Sprintf("r%d", i),
			DateTime: now.Add(time.Duration(i-1) * time.Hour).Format("2006-01-02T15:04"),
		})
		require.NoError(t, err)
	}
	for i := 0; i < 4; i++ {
		_, err := src.Journal.Add(journal.Input{Title: fmt.Sprintf("j%d", i), Content: "x"})
		require.NoError(t, err)
	}
	rt, err := src.Routines.Add(routines.Input{Title: "Walk", Time: "08:00", Days: []models.Weekday{models.Monday, models.Sunday}})
	require.NoError(t, err)
	_, err = src.Routines.ToggleCompletion(rt.ID, now)
	require.NoError(t, err)

	s := Build(src, now)

	assert.Equal(t, "🌸 Happy", s.MoodLabel())
	require.Len(t, s.Upcoming, 3)
	assert.Equal(t, []string{"r2", "r3", "r4"}, []string{s.Upcoming[0].Title, s.Upcoming[1].Title, s.Upcoming[2].Title})
	require.Len(t, s.RecentEntries, 3)
	assert.Equal(t, "j3", s.RecentEntries[0].Title)
	assert.Equal(t, routines.Progress{Completed: 1, Scheduled: 2}, s.Progress)
	assert.Equal(t, 1, s.RoutineCount)
}
