package routines

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/events"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/storage/memory"
)

func setup(t *testing.T) (*Controller, *storage.Repositories) {
	t.Helper()
	repos := storage.NewRepositories(memory.New())
	c, err := New(repos.Routines, events.NewBus())
	require.NoError(t, err)
	return c, repos
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddValidation(t *testing.T) {
	c, _ := setup(t)

	tests := []struct {
		name    string
		in      Input
		wantErr error
	}{
		{"missing title", Input{Time: "07:00", Days: []models.Weekday{models.Monday}}, apperrors.ErrIncomplete},
		{"missing time", Input{Title: "Run", Days: []models.Weekday{models.Monday}}, apperrors.ErrIncomplete},
		{"no days", Input{Title: "Run", Time: "07:00"}, apperrors.ErrIncomplete},
		{"bad weekday", Input{Title: "Run", Time: "07:00", Days: []models.Weekday{"funday"}}, apperrors.ErrUnknownKey},
		{"bad category", Input{Title: "Run", Time: "07:00", Days: []models.Weekday{models.Monday}, Category: "chores"}, apperrors.ErrUnknownKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Add(tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := c.Add(Input{Title: "Run", Time: "7am", Days: []models.Weekday{models.Monday}})
	assert.Error(t, err)
	assert.Empty(t, c.List())
}

func TestAddNormalisesDays(t *testing.T) {
	c, repos := setup(t)

	r, err := c.Add(Input{
		Title: "Stretch", Time: "07:00", Notifications: true,
		Days: []models.Weekday{models.Friday, models.Monday, models.Friday},
	})
	require.NoError(t, err)

	assert.Equal(t, []models.Weekday{models.Monday, models.Friday}, r.Days)
	assert.Equal(t, models.CategoryPersonal, r.Category)

	stored, err := repos.Routines.Load()
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, r.ID, stored[0].ID)
}

func TestMondayOnlyHeatmap(t *testing.T) {
	c, repos := setup(t)
	r, err := c.Add(Input{Title: "Weekly review", Time: "09:00", Days: []models.Weekday{models.Monday}})
	require.NoError(t, err)

	today := time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)
	for cell := range Heatmap(r, today) {
		want := cell.Date.Weekday() == time.Monday
		assert.Equal(t, want, cell.Scheduled, cell.Key)
	}

	// A Tuesday cannot be toggled and the map stays untouched
	_, err = c.ToggleCompletion(r.ID, date(2024, 3, 12))
	assert.ErrorIs(t, err, apperrors.ErrNotScheduled)

	stored, _ := repos.Routines.Load()
	assert.Empty(t, stored[0].Completions)

	// A Monday can
	done, err := c.ToggleCompletion(r.ID, date(2024, 3, 11))
	require.NoError(t, err)
	assert.True(t, done)

	stored, _ = repos.Routines.Load()
	assert.Equal(t, map[string]bool{"2024-03-11": true}, stored[0].Completions)

	done, err = c.ToggleCompletion(r.ID, date(2024, 3, 11))
	require.NoError(t, err)
	assert.False(t, done)
}

func TestHeatmapRange(t *testing.T) {
	r := models.Routine{Days: []models.Weekday{models.Monday}, Completions: map[string]bool{"2024-03-11": true}}
	today := time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)

	var cells []Cell
	for c := range Heatmap(r, today) {
		cells = append(cells, c)
	}

	// Jan (31) + Feb (29, leap) + Mar (31)
	require.Len(t, cells, 91)
	assert.Equal(t, "2024-01-01", cells[0].Key)
	assert.Equal(t, "2024-03-31", cells[len(cells)-1].Key)

	for i := 1; i < len(cells); i++ {
		assert.True(t, cells[i].Date.After(cells[i-1].Date), "cells must be chronological")
	}

	byKey := map[string]Cell{}
	for _, c := range cells {
		byKey[c.Key] = c
	}
	assert.True(t, byKey["2024-03-14"].Past)
	assert.False(t, byKey["2024-03-15"].Past, "today is not past")
	assert.False(t, byKey["2024-03-16"].Past)
	assert.True(t, byKey["2024-03-11"].Completed)
}

func TestHeatmapYearBoundary(t *testing.T) {
	r := models.Routine{Days: models.Weekdays}
	today := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	var first, last Cell
	n := 0
	for c := range Heatmap(r, today) {
		if n == 0 {
			first = c
		}
		last = c
		n++
	}
	assert.Equal(t, "2023-11-01", first.Key)
	assert.Equal(t, "2024-01-31", last.Key)
	assert.Equal(t, 30+31+31, n)
}

func TestHeatmapStopsEarly(t *testing.T) {
	r := models.Routine{Days: models.Weekdays}
	n := 0
	for range Heatmap(r, date(2024, 3, 15)) {
		n++
		if n == 5 {
			break
		}
	}
	assert.Equal(t, 5, n)
}

func TestWeeks(t *testing.T) {
	r := models.Routine{Days: models.Weekdays}
	rows := Weeks(Heatmap(r, date(2024, 3, 15)))

	require.Len(t, rows, 13)
	for _, row := range rows[:12] {
		assert.Len(t, row, 7)
	}
	assert.Len(t, rows[12], 91-84)
	assert.Equal(t, "2024-01-01", rows[0][0].Key)
	assert.Equal(t, "2024-01-08", rows[1][0].Key)
}

func TestUpdateKeepsCompletions(t *testing.T) {
	c, _ := setup(t)
	r, err := c.Add(Input{Title: "Run", Time: "07:00", Days: []models.Weekday{models.Monday}})
	require.NoError(t, err)
	_, err = c.ToggleCompletion(r.ID, date(2024, 3, 11))
	require.NoError(t, err)

	updated, err := c.Update(r.ID, Input{Title: "Long run", Time: "06:30", Days: []models.Weekday{models.Sunday}, Category: models.CategoryHealth})
	require.NoError(t, err)

	assert.Equal(t, "Long run", updated.Title)
	assert.Equal(t, map[string]bool{"2024-03-11": true}, updated.Completions)
	assert.Equal(t, []string{"2024-03-11"}, UnscheduledCompletions(updated, time.UTC))
}

func TestDeleteAndUnknown(t *testing.T) {
	c, _ := setup(t)
	r, _ := c.Add(Input{Title: "Run", Time: "07:00", Days: []models.Weekday{models.Monday}})

	require.NoError(t, c.Delete(r.ID))
	assert.Empty(t, c.List())
	assert.ErrorIs(t, c.Delete(r.ID), apperrors.ErrNotFound)
	_, err := c.ToggleCompletion(r.ID, date(2024, 3, 11))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWeeklyProgress(t *testing.T) {
	c, _ := setup(t)
	daily, _ := c.Add(Input{Title: "Meditate", Time: "07:00", Days: models.Weekdays})
	monday, _ := c.Add(Input{Title: "Review", Time: "09:00", Days: []models.Weekday{models.Monday}})

	// Week ending Sunday 2024-03-17: 7 daily + 1 Monday = 8 scheduled
	for _, d := range []int{11, 12, 13} {
		_, err := c.ToggleCompletion(daily.ID, date(2024, 3, d))
		require.NoError(t, err)
	}
	_, err := c.ToggleCompletion(monday.ID, date(2024, 3, 11))
	require.NoError(t, err)
	// Outside the window
	_, err = c.ToggleCompletion(daily.ID, date(2024, 3, 10))
	require.NoError(t, err)

	p := c.WeeklyProgress(time.Date(2024, 3, 17, 20, 0, 0, 0, time.UTC), 7)
	assert.Equal(t, Progress{Completed: 4, Scheduled: 8}, p)
	assert.Equal(t, 50, p.Percent())
	assert.Equal(t, 0, Progress{}.Percent())
}

func TestDueAt(t *testing.T) {
	c, _ := setup(t)
	on, _ := c.Add(Input{Title: "Stretch", Time: "07:00", Days: []models.Weekday{models.Monday}, Notifications: true})
	_, _ = c.Add(Input{Title: "Muted", Time: "07:00", Days: []models.Weekday{models.Monday}})
	_, _ = c.Add(Input{Title: "Other day", Time: "07:00", Days: []models.Weekday{models.Tuesday}, Notifications: true})

	got := c.DueAt(time.Date(2024, 3, 11, 7, 0, 42, 0, time.UTC))
	require.Len(t, got, 1)
	assert.Equal(t, on.ID, got[0].ID)

	assert.Empty(t, c.DueAt(time.Date(2024, 3, 11, 7, 1, 0, 0, time.UTC)))
}
