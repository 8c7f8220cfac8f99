// Package routines schedules recurring activities on weekdays and tracks
// their per-day completions.
package routines

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/daybook/internal/constants"
	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/events"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/utils"
)

// Input is the editable part of a routine.
type Input struct {
	Title         string
	Time          string
	Days          []models.Weekday
	Notifications bool
	Category      models.Category
}

type Controller struct {
	repo     *storage.Slot[[]models.Routine]
	bus      *events.Bus
	routines []models.Routine
}

func New(repo *storage.Slot[[]models.Routine], bus *events.Bus) (*Controller, error) {
	c := &Controller{repo: repo, bus: bus}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) Reload() error {
	routines, err := c.repo.Load()
	if err != nil {
		return err
	}
	c.routines = routines
	return nil
}

func validate(in Input) (Input, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Time = strings.TrimSpace(in.Time)
	if in.Title == "" || in.Time == "" || len(in.Days) == 0 {
		return in, apperrors.ErrIncomplete
	}
	if _, err := time.Parse(constants.TimeFormat, in.Time); err != nil {
		return in, fmt.Errorf("invalid time %q: expected HH:MM", in.Time)
	}

	for _, d := range in.Days {
		if !d.Valid() {
			return in, fmt.Errorf("weekday %q: %w", d, apperrors.ErrUnknownKey)
		}
	}
	// Deduplicate and keep Monday-first order
	days := make([]models.Weekday, 0, len(in.Days))
	for _, d := range models.Weekdays {
		if slices.Contains(in.Days, d) {
			days = append(days, d)
		}
	}
	in.Days = days

	if in.Category == "" {
		in.Category = models.CategoryPersonal
	}
	if !in.Category.Valid() {
		return in, fmt.Errorf("category %q: %w", in.Category, apperrors.ErrUnknownKey)
	}
	return in, nil
}

// Add creates a routine. Title, time and at least one weekday are required.
func (c *Controller) Add(in Input) (models.Routine, error) {
	in, err := validate(in)
	if err != nil {
		return models.Routine{}, err
	}

	r := models.Routine{
		ID:            uuid.NewString(),
		Title:         in.Title,
		Time:          in.Time,
		Days:          in.Days,
		Notifications: in.Notifications,
		Category:      in.Category,
		Completions:   map[string]bool{},
	}
	if err := c.commit(append(slices.Clone(c.routines), r)); err != nil {
		return models.Routine{}, err
	}
	return r, nil
}

// Update replaces the editable fields of id; completions are kept.
func (c *Controller) Update(id string, in Input) (models.Routine, error) {
	i, err := c.index(id)
	if err != nil {
		return models.Routine{}, err
	}
	in, err = validate(in)
	if err != nil {
		return models.Routine{}, err
	}

	next := slices.Clone(c.routines)
	next[i].Title = in.Title
	next[i].Time = in.Time
	next[i].Days = in.Days
	next[i].Notifications = in.Notifications
	next[i].Category = in.Category
	if err := c.commit(next); err != nil {
		return models.Routine{}, err
	}
	return next[i], nil
}

func (c *Controller) Delete(id string) error {
	i, err := c.index(id)
	if err != nil {
		return err
	}
	return c.commit(slices.Delete(slices.Clone(c.routines), i, i+1))
}

// ToggleCompletion flips the completion of id on day. Days whose weekday
// is not scheduled are rejected with ErrNotScheduled and nothing changes.
func (c *Controller) ToggleCompletion(id string, day time.Time) (bool, error) {
	i, err := c.index(id)
	if err != nil {
		return false, err
	}
	r := c.routines[i]
	if !r.ScheduledOn(models.WeekdayOf(day)) {
		return false, fmt.Errorf("%s on %s: %w", r.Title, utils.DayKey(day), apperrors.ErrNotScheduled)
	}

	key := utils.DayKey(day)
	completions := maps.Clone(r.Completions)
	if completions == nil {
		completions = map[string]bool{}
	}
	completions[key] = !completions[key]

	next := slices.Clone(c.routines)
	next[i].Completions = completions
	if err := c.commit(next); err != nil {
		return false, err
	}
	return completions[key], nil
}

func (c *Controller) Get(id string) (models.Routine, error) {
	i, err := c.index(id)
	if err != nil {
		return models.Routine{}, err
	}
	return c.routines[i], nil
}

// List returns routines in stored order.
func (c *Controller) List() []models.Routine {
	return slices.Clone(c.routines)
}

func (c *Controller) index(id string) (int, error) {
	i := slices.IndexFunc(c.routines, func(r models.Routine) bool { return r.ID == id })
	if i < 0 {
		return -1, fmt.Errorf("routine %s: %w", id, apperrors.ErrNotFound)
	}
	return i, nil
}

func (c *Controller) commit(next []models.Routine) error {
	if err := c.repo.Save(next); err != nil {
		return err
	}
	c.routines = next
	c.bus.Publish(events.Event{Kind: events.KindRoutines, Slot: c.repo.Key()})
	return nil
}

// Progress is completed scheduled days over scheduled days.
type Progress struct {
	Completed int
	Scheduled int
}

// Percent returns the rounded completion percentage, 0 when nothing was scheduled.
func (p Progress) Percent() int {
	if p.Scheduled == 0 {
		return 0
	}
	return (p.Completed*100 + p.Scheduled/2) / p.Scheduled
}

// WeeklyProgress tallies every routine over the days days ending with now.
func (c *Controller) WeeklyProgress(now time.Time, days int) Progress {
	var p Progress
	today := utils.StartOfDay(now)
	for offset := 0; offset < days; offset++ {
		day := today.AddDate(0, 0, -offset)
		wd := models.WeekdayOf(day)
		key := utils.DayKey(day)
		for _, r := range c.routines {
			if !r.ScheduledOn(wd) {
				continue
			}
			p.Scheduled++
			if r.CompletedOn(key) {
				p.Completed++
			}
		}
	}
	return p
}

// DueAt returns routines with notifications on that are scheduled for
// now's weekday at now's HH:MM.
func (c *Controller) DueAt(now time.Time) []models.Routine {
	hhmm := now.Format(constants.TimeFormat)
	wd := models.WeekdayOf(now)
	var out []models.Routine
	for _, r := range c.routines {
		if r.Notifications && r.Time == hhmm && r.ScheduledOn(wd) {
			out = append(out, r)
		}
	}
	return out
}

// UnscheduledCompletions lists completion keys of r that fall on weekdays
// r is not scheduled for, sorted. Such keys are kept but never toggleable.
func UnscheduledCompletions(r models.Routine, loc *time.Location) []string {
	var out []string
	for key, done := range r.Completions {
		if !done {
			continue
		}
		day, err := utils.ParseDateInLocation(key, loc)
		if err != nil || !r.ScheduledOn(models.WeekdayOf(day)) {
			out = append(out, key)
		}
	}
	slices.Sort(out)
	return out
}
