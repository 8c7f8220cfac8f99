// Package app wires a loaded storage medium to every controller.
package app

import (
	"fmt"
	"time"

	"github.com/julianstephens/daybook/internal/dashboard"
	"github.com/julianstephens/daybook/internal/events"
	"github.com/julianstephens/daybook/internal/journal"
	"github.com/julianstephens/daybook/internal/mood"
	"github.com/julianstephens/daybook/internal/pomodoro"
	"github.com/julianstephens/daybook/internal/reminders"
	"github.com/julianstephens/daybook/internal/routines"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/themes"
)

// App holds one controller per entity kind, all sharing a medium and bus.
type App struct {
	Repos *storage.Repositories
	Bus   *events.Bus
	Loc   *time.Location

	Mood      *mood.Controller
	Reminders *reminders.Controller
	Routines  *routines.Controller
	Journal   *journal.Controller
	Themes    *themes.Controller
	Pomodoro  *pomodoro.Controller
}

// New reads every slot from m, which must already be loaded.
func New(m storage.Medium, bus *events.Bus, loc *time.Location) (*App, error) {
	repos := storage.NewRepositories(m)
	a := &App{Repos: repos, Bus: bus, Loc: loc}

	var err error
	if a.Mood, err = mood.New(repos.Moods, bus); err != nil {
		return nil, fmt.Errorf("failed to load moods: %w", err)
	}
	if a.Reminders, err = reminders.New(repos.Reminders, bus, loc); err != nil {
		return nil, fmt.Errorf("failed to load reminders: %w", err)
	}
	if a.Routines, err = routines.New(repos.Routines, bus); err != nil {
		return nil, fmt.Errorf("failed to load routines: %w", err)
	}
	if a.Journal, err = journal.New(repos.Journal, bus); err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}
	if a.Themes, err = themes.New(repos, bus); err != nil {
		return nil, fmt.Errorf("failed to load themes: %w", err)
	}
	if a.Pomodoro, err = pomodoro.New(repos.Pomodoro, bus); err != nil {
		return nil, fmt.Errorf("failed to load pomodoro settings: %w", err)
	}
	return a, nil
}

// Reload re-reads every slot, picking up changes written by another process.
func (a *App) Reload() error {
	reloaders := []struct {
		name   string
		reload func() error
	}{
		{"moods", a.Mood.Reload},
		{"reminders", a.Reminders.Reload},
		{"routines", a.Routines.Reload},
		{"journal", a.Journal.Reload},
		{"themes", a.Themes.Reload},
		{"pomodoro", a.Pomodoro.Reload},
	}
	for _, r := range reloaders {
		if err := r.reload(); err != nil {
			return fmt.Errorf("failed to reload %s: %w", r.name, err)
		}
	}
	return nil
}

// Dashboard summarises the current state as of now.
func (a *App) Dashboard(now time.Time) dashboard.Summary {
	return dashboard.Build(dashboard.Sources{
		Mood:      a.Mood,
		Reminders: a.Reminders,
		Routines:  a.Routines,
		Journal:   a.Journal,
		Themes:    a.Themes,
	}, now)
}
