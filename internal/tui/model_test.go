package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/daybook/internal/app"
	"github.com/julianstephens/daybook/internal/constants"
	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/events"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/reminders"
	"github.com/julianstephens/daybook/internal/routines"
	"github.com/julianstephens/daybook/internal/storage/memory"
	"github.com/julianstephens/daybook/internal/tui/components/heatmap"
	"github.com/julianstephens/daybook/internal/tui/components/itemlist"
)

// Monday, so routines scheduled on Mondays are due "today".
var fixedNow = time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)

type recordingSender struct {
	titles []string
}

func (r *recordingSender) Notify(title, _ string) error {
	r.titles = append(r.titles, title)
	return nil
}

func setup(t *testing.T) (Model, *memory.Store, *recordingSender) {
	t.Helper()
	medium := memory.New()
	a, err := app.New(medium, events.NewBus(), time.UTC)
	require.NoError(t, err)

	sender := &recordingSender{}
	m := NewModel(a, Options{
		Now:      func() time.Time { return fixedNow },
		Notifier: sender,
	})
	t.Cleanup(m.Close)
	return m, medium, sender
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "shift+tab":
			msg = tea.KeyMsg{Type: tea.KeyShiftTab}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m = send(t, m, msg)
	}
	return m
}

// drain delivers queued bus events the way the program loop would.
func drain(t *testing.T, m Model) Model {
	t.Helper()
	for len(m.events) > 0 {
		m = send(t, m, eventMsg(<-m.events))
	}
	return m
}

func goTo(t *testing.T, m Model, state constants.SessionState) Model {
	t.Helper()
	for i := 0; m.state != state && i < constants.TabCount; i++ {
		m = press(t, m, "tab")
	}
	require.Equal(t, state, m.state)
	return m
}

func TestTabsCycle(t *testing.T) {
	m, _, _ := setup(t)
	assert.Equal(t, constants.StateDashboard, m.state)

	for i := 0; i < constants.TabCount; i++ {
		m = press(t, m, "tab")
	}
	assert.Equal(t, constants.StateDashboard, m.state)

	m = press(t, m, "shift+tab")
	assert.Equal(t, constants.StateThemes, m.state)
}

func TestViewShowsTabsAndDashboard(t *testing.T) {
	m, _, _ := setup(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	out := m.View()
	for _, title := range tabTitles {
		assert.Contains(t, out, title)
	}
	assert.Contains(t, out, "Not set")
	assert.Contains(t, out, "No upcoming reminders")
}

func TestMoodKeys(t *testing.T) {
	m, _, _ := setup(t)
	m = goTo(t, m, constants.StateMood)

	m = press(t, m, "2")
	got, ok := m.app.Mood.Get("2024-03-04")
	require.True(t, ok)
	assert.Equal(t, models.MoodHappy, got)

	m = press(t, m, "4")
	got, ok = m.app.Mood.Get("2024-03-04")
	require.True(t, ok)
	assert.Equal(t, models.MoodSad, got)
	assert.Len(t, m.app.Mood.All(), 1)

	m = press(t, m, "x")
	_, ok = m.app.Mood.Get("2024-03-04")
	assert.True(t, ok, "a recorded mood is never removed")

	m = press(t, m, "left", "1")
	got, ok = m.app.Mood.Get("2024-03-03")
	require.True(t, ok)
	assert.Equal(t, models.MoodVeryHappy, got)

	m = press(t, m, "[")
	assert.Equal(t, time.February, m.moodCursor.Month())
	assert.Equal(t, 1, m.moodCursor.Day())
	assert.Contains(t, m.View(), "February 2024")
}

func TestReminderListFollowsController(t *testing.T) {
	m, _, _ := setup(t)
	m = goTo(t, m, constants.StateReminders)

	r, err := m.app.Reminders.Add(reminders.Input{Title: "Pay rent", DateTime: "2024-03-05T09:00"})
	require.NoError(t, err)
	m = drain(t, m)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Contains(t, m.View(), "Pay rent")

	m = send(t, m, itemlist.ToggleMsg{List: listReminders, ID: r.ID})
	got, err := m.app.Reminders.Get(r.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
}

func TestReminderFormSubmit(t *testing.T) {
	m, _, _ := setup(t)
	m = goTo(t, m, constants.StateReminders)

	m = send(t, m, itemlist.AddMsg{List: listReminders})
	require.Equal(t, constants.StateReminderForm, m.state)
	require.NotNil(t, m.form)

	err := m.submitForm()
	assert.ErrorIs(t, err, apperrors.ErrIncomplete)
	assert.Empty(t, m.app.Reminders.List())

	m.reminderForm.Title = "Dentist"
	m.reminderForm.DateTime = "2024-03-06 14:30"
	require.NoError(t, m.submitForm())

	rs := m.app.Reminders.List()
	require.Len(t, rs, 1)
	assert.Equal(t, "2024-03-06T14:30", rs[0].DateTime)
	assert.Equal(t, models.PriorityMedium, rs[0].Priority)

	m = press(t, m, "esc")
	assert.Equal(t, constants.StateReminders, m.state)
}

func TestEditFormPrefills(t *testing.T) {
	m, _, _ := setup(t)
	r, err := m.app.Routines.Add(routines.Input{
		Title:    "Run",
		Time:     "07:00",
		Days:     []models.Weekday{models.Monday},
		Category: models.CategoryHealth,
	})
	require.NoError(t, err)
	m = goTo(t, m, constants.StateRoutines)

	m = send(t, m, itemlist.EditMsg{List: listRoutines, ID: r.ID})
	require.Equal(t, constants.StateRoutineForm, m.state)
	assert.Equal(t, "Run", m.routineForm.Title)
	assert.Equal(t, models.CategoryHealth, m.routineForm.Category)

	m.routineForm.Title = "Morning run"
	require.NoError(t, m.submitForm())
	got, err := m.app.Routines.Get(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Morning run", got.Title)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m, _, _ := setup(t)
	m = goTo(t, m, constants.StateReminders)
	r, err := m.app.Reminders.Add(reminders.Input{Title: "Call mom", DateTime: "2024-03-05T18:00"})
	require.NoError(t, err)

	m = send(t, m, itemlist.DeleteMsg{List: listReminders, ID: r.ID})
	require.Equal(t, constants.StateConfirmDelete, m.state)
	assert.Contains(t, m.View(), "Call mom")

	m = press(t, m, "n")
	assert.Equal(t, constants.StateReminders, m.state)
	assert.Len(t, m.app.Reminders.List(), 1)

	m = send(t, m, itemlist.DeleteMsg{List: listReminders, ID: r.ID})
	m = press(t, m, "y")
	assert.Equal(t, constants.StateReminders, m.state)
	assert.Empty(t, m.app.Reminders.List())
}

func TestRoutineToggleToday(t *testing.T) {
	m, _, _ := setup(t)
	monday, err := m.app.Routines.Add(routines.Input{
		Title: "Stretch", Time: "08:00", Days: []models.Weekday{models.Monday}, Category: models.CategoryHealth,
	})
	require.NoError(t, err)
	friday, err := m.app.Routines.Add(routines.Input{
		Title: "Review", Time: "16:00", Days: []models.Weekday{models.Friday}, Category: models.CategoryWork,
	})
	require.NoError(t, err)
	m = goTo(t, m, constants.StateRoutines)

	m = send(t, m, itemlist.ToggleMsg{List: listRoutines, ID: monday.ID})
	assert.Equal(t, "Marked done for today", m.status)
	got, _ := m.app.Routines.Get(monday.ID)
	assert.True(t, got.CompletedOn("2024-03-04"))

	m = send(t, m, itemlist.ToggleMsg{List: listRoutines, ID: friday.ID})
	assert.Equal(t, "Not scheduled today", m.status)
	got, _ = m.app.Routines.Get(friday.ID)
	assert.Empty(t, got.Completions)
}

func TestHeatmapToggle(t *testing.T) {
	m, _, _ := setup(t)
	r, err := m.app.Routines.Add(routines.Input{
		Title: "Read", Time: "21:00", Days: []models.Weekday{models.Monday}, Category: models.CategoryHobby,
	})
	require.NoError(t, err)
	m = goTo(t, m, constants.StateRoutines)

	m = send(t, m, itemlist.OpenMsg{List: listRoutines, ID: r.ID})
	require.Equal(t, constants.StateHeatmap, m.state)
	cell, ok := m.heatmap.Focused()
	require.True(t, ok)
	assert.Equal(t, "2024-03-04", cell.Key)

	m = send(t, m, heatmap.ToggleMsg{RoutineID: r.ID, Day: cell.Date})
	m = drain(t, m)
	cell, _ = m.heatmap.Focused()
	assert.True(t, cell.Completed)

	m = send(t, m, heatmap.UnscheduledMsg{Day: fixedNow.AddDate(0, 0, 1)})
	assert.Contains(t, m.status, "not scheduled")

	m = press(t, m, "esc")
	assert.Equal(t, constants.StateRoutines, m.state)
}

func TestJournalReader(t *testing.T) {
	m, _, _ := setup(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = goTo(t, m, constants.StateJournal)

	m = send(t, m, itemlist.AddMsg{List: listJournal})
	require.Equal(t, constants.StateJournalForm, m.state)
	m.journalForm.Title = "Sunday"
	m.journalForm.Content = "A **quiet** day"
	m.journalForm.Tags = "rest, home"
	m.journalForm.Mood = models.MoodNeutral
	require.NoError(t, m.submitForm())
	m = drain(t, m)

	es := m.app.Journal.List()
	require.Len(t, es, 1)
	assert.Equal(t, []string{"rest", "home"}, es[0].Tags)

	m.state = constants.StateJournal
	m = send(t, m, itemlist.OpenMsg{List: listJournal, ID: es[0].ID})
	require.Equal(t, constants.StateReadJournal, m.state)
	assert.Contains(t, m.View(), "Sunday")

	m = press(t, m, "esc")
	assert.Equal(t, constants.StateJournal, m.state)
}

func TestPomodoroCountdown(t *testing.T) {
	m, medium, sender := setup(t)
	m = goTo(t, m, constants.StatePomodoro)

	m = press(t, m, "3")
	assert.Equal(t, 5, m.app.Pomodoro.Timer.Minutes())
	raw, ok, err := medium.Get(constants.SlotPomodoroSettings)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, "5")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m = next.(Model)
	require.NotNil(t, cmd)
	require.True(t, m.app.Pomodoro.Timer.Running())

	stale := m.timerGen - 1
	m = send(t, m, timerTickMsg{gen: stale})
	assert.Equal(t, "05:00", m.app.Pomodoro.Timer.Remaining())

	for i := 0; i < 5*60; i++ {
		m = send(t, m, timerTickMsg{gen: m.timerGen})
	}
	assert.False(t, m.app.Pomodoro.Timer.Running())
	assert.Equal(t, "00:00", m.app.Pomodoro.Timer.Remaining())
	assert.Equal(t, []string{"Pomodoro"}, sender.titles)
	assert.Contains(t, m.View(), "Done")

	m = press(t, m, "r")
	assert.Equal(t, "05:00", m.app.Pomodoro.Timer.Remaining())
}

func TestPremiumThemePurchase(t *testing.T) {
	m, _, _ := setup(t)
	m = goTo(t, m, constants.StateThemes)

	idx := -1
	for i, theme := range models.Themes {
		if theme.Premium {
			idx = i
			break
		}
	}
	require.GreaterOrEqual(t, idx, 0)
	premium := models.Themes[idx]
	m.shopCursor = idx

	m = press(t, m, "enter")
	require.Equal(t, constants.StateConfirmPurchase, m.state)
	assert.Contains(t, m.View(), "$0.99")

	m = press(t, m, "n")
	assert.Equal(t, constants.StateThemes, m.state)
	assert.False(t, m.app.Themes.ThemeAvailable(premium.Key))

	m = press(t, m, "b", "y")
	m = drain(t, m)
	assert.Equal(t, constants.StateThemes, m.state)
	assert.True(t, m.app.Themes.ThemeAvailable(premium.Key))
	assert.Equal(t, premium.Key, m.app.Themes.ActiveTheme().Key)
	assert.Equal(t, lipgloss.Color(premium.Accent), m.styles.Accent)
	assert.Equal(t, "0.99", m.app.Themes.Spent().StringFixed(2))

	m = press(t, m, "b")
	assert.Equal(t, constants.StateThemes, m.state)
	assert.Contains(t, m.status, "already available")
}

func TestExternalChangeReloads(t *testing.T) {
	m, medium, _ := setup(t)

	other, err := app.New(medium, nil, time.UTC)
	require.NoError(t, err)
	_, err = other.Reminders.Add(reminders.Input{Title: "From elsewhere", DateTime: "2024-03-04T12:00"})
	require.NoError(t, err)
	assert.Empty(t, m.app.Reminders.List())

	m.app.Bus.Publish(events.Event{Kind: events.KindExternal})
	m = drain(t, m)
	require.Len(t, m.app.Reminders.List(), 1)
	assert.Contains(t, m.View(), "From elsewhere")
}

func TestQuitDetachesFromBus(t *testing.T) {
	m, _, _ := setup(t)
	m.app.Pomodoro.Timer.Toggle()

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
	assert.False(t, m.app.Pomodoro.Timer.Running())

	m.app.Bus.Publish(events.Event{Kind: events.KindMood})
	assert.Zero(t, len(m.events))
}

func TestNewRoutineFormNotifiesByDefault(t *testing.T) {
	m, _, _ := setup(t)
	m = goTo(t, m, constants.StateRoutines)
	m = send(t, m, itemlist.AddMsg{List: listRoutines})
	require.Equal(t, constants.StateRoutineForm, m.state)
	assert.True(t, m.routineForm.Notifications)

	m.routineForm.Title = "Stretch"
	m.routineForm.Days = []models.Weekday{models.Monday}
	require.NoError(t, m.submitForm())
	rs := m.app.Routines.List()
	require.Len(t, rs, 1)
	assert.True(t, rs[0].Notifications)
}

func TestFailedSubmitKeepsFormOpen(t *testing.T) {
	m, _, _ := setup(t)
	m = goTo(t, m, constants.StateRoutines)
	m = send(t, m, itemlist.AddMsg{List: listRoutines})
	m.routineForm.Title = "   "
	m.routineForm.Days = []models.Weekday{models.Monday}

	m.form.State = huh.StateCompleted
	m = send(t, m, struct{}{})
	assert.Equal(t, constants.StateRoutineForm, m.state)
	assert.Equal(t, huh.StateNormal, m.form.State)
	assert.Equal(t, apperrors.ErrIncomplete.Error(), m.formError)
	assert.Empty(t, m.app.Routines.List())

	m.routineForm.Title = "Journal"
	m.form.State = huh.StateCompleted
	m = send(t, m, struct{}{})
	assert.Equal(t, constants.StateRoutines, m.state)
	assert.Empty(t, m.formError)
	assert.Len(t, m.app.Routines.List(), 1)
}
