package pomodoro

import (
	"fmt"
	"slices"

	"github.com/julianstephens/daybook/internal/constants"
	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/events"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
)

// Controller owns the timer and persists the chosen duration.
// Session progress itself is never stored.
type Controller struct {
	repo     *storage.Slot[models.PomodoroSettings]
	bus      *events.Bus
	settings models.PomodoroSettings
	Timer    *Timer
}

func New(repo *storage.Slot[models.PomodoroSettings], bus *events.Bus) (*Controller, error) {
	settings, err := load(repo)
	if err != nil {
		return nil, err
	}
	return &Controller{
		repo:     repo,
		bus:      bus,
		settings: settings,
		Timer:    NewTimer(settings.DurationMin),
	}, nil
}

func load(repo *storage.Slot[models.PomodoroSettings]) (models.PomodoroSettings, error) {
	settings, err := repo.Load()
	if err != nil {
		return settings, err
	}
	if !slices.Contains(constants.TimerOptions, settings.DurationMin) {
		settings.DurationMin = constants.DefaultTimerMinutes
	}
	return settings, nil
}

// Reload picks up a duration chosen by another process. A running
// countdown is left alone; the change applies on a later Reload.
func (c *Controller) Reload() error {
	settings, err := load(c.repo)
	if err != nil {
		return err
	}
	if settings == c.settings || c.Timer.Running() {
		return nil
	}
	c.settings = settings
	c.Timer.SelectDuration(settings.DurationMin)
	return nil
}

func (c *Controller) Settings() models.PomodoroSettings {
	return c.settings
}

// SelectDuration resets the timer to minutes and remembers the choice.
// Only the offered durations are accepted.
func (c *Controller) SelectDuration(minutes int) error {
	if !slices.Contains(constants.TimerOptions, minutes) {
		return fmt.Errorf("%d minutes: %w", minutes, apperrors.ErrUnknownKey)
	}
	c.Timer.SelectDuration(minutes)

	next := models.PomodoroSettings{DurationMin: minutes}
	if next == c.settings {
		return nil
	}
	if err := c.repo.Save(next); err != nil {
		return err
	}
	c.settings = next
	c.bus.Publish(events.Event{Kind: events.KindTimer, Slot: c.repo.Key()})
	return nil
}
