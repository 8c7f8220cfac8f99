// Package reminders manages dated, prioritised to-dos.
package reminders

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/events"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
)

// Input is the editable part of a reminder.
type Input struct {
	Title       string
	Description string
	DateTime    string
	Priority    models.Priority
}

type Controller struct {
	repo      *storage.Slot[[]models.Reminder]
	bus       *events.Bus
	loc       *time.Location
	reminders []models.Reminder
}

func New(repo *storage.Slot[[]models.Reminder], bus *events.Bus, loc *time.Location) (*Controller, error) {
	if loc == nil {
		loc = time.Local
	}
	c := &Controller{repo: repo, bus: bus, loc: loc}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) Reload() error {
	reminders, err := c.repo.Load()
	if err != nil {
		return err
	}
	c.reminders = reminders
	return nil
}

func (c *Controller) validate(in Input) (Input, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.DateTime = strings.TrimSpace(in.DateTime)
	if in.Title == "" || in.DateTime == "" {
		return in, apperrors.ErrIncomplete
	}

	dt, err := models.NormalizeDateTime(in.DateTime, c.loc)
	if err != nil {
		return in, err
	}
	in.DateTime = dt

	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if !in.Priority.Valid() {
		return in, fmt.Errorf("priority %q: %w", in.Priority, apperrors.ErrUnknownKey)
	}
	return in, nil
}

// Add creates a reminder. Title and datetime are required.
func (c *Controller) Add(in Input) (models.Reminder, error) {
	in, err := c.validate(in)
	if err != nil {
		return models.Reminder{}, err
	}

	r := models.Reminder{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		DateTime:    in.DateTime,
		Priority:    in.Priority,
	}

	next := append(slices.Clone(c.reminders), r)
	if err := c.commit(next); err != nil {
		return models.Reminder{}, err
	}
	return r, nil
}

// Update replaces the editable fields of id. An edited reminder is
// considered open again, so completed is cleared.
func (c *Controller) Update(id string, in Input) (models.Reminder, error) {
	i, err := c.index(id)
	if err != nil {
		return models.Reminder{}, err
	}
	in, err = c.validate(in)
	if err != nil {
		return models.Reminder{}, err
	}

	next := slices.Clone(c.reminders)
	next[i] = models.Reminder{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		DateTime:    in.DateTime,
		Priority:    in.Priority,
	}
	if err := c.commit(next); err != nil {
		return models.Reminder{}, err
	}
	return next[i], nil
}

// Toggle flips the completed flag of id.
func (c *Controller) Toggle(id string) (models.Reminder, error) {
	i, err := c.index(id)
	if err != nil {
		return models.Reminder{}, err
	}
	next := slices.Clone(c.reminders)
	next[i].Completed = !next[i].Completed
	if err := c.commit(next); err != nil {
		return models.Reminder{}, err
	}
	return next[i], nil
}

func (c *Controller) Delete(id string) error {
	i, err := c.index(id)
	if err != nil {
		return err
	}
	next := slices.Delete(slices.Clone(c.reminders), i, i+1)
	return c.commit(next)
}

func (c *Controller) Get(id string) (models.Reminder, error) {
	i, err := c.index(id)
	if err != nil {
		return models.Reminder{}, err
	}
	return c.reminders[i], nil
}

func (c *Controller) index(id string) (int, error) {
	i := slices.IndexFunc(c.reminders, func(r models.Reminder) bool { return r.ID == id })
	if i < 0 {
		return -1, fmt.Errorf("reminder %s: %w", id, apperrors.ErrNotFound)
	}
	return i, nil
}

func (c *Controller) commit(next []models.Reminder) error {
	if err := c.repo.Save(next); err != nil {
		return err
	}
	c.reminders = next
	c.bus.Publish(events.Event{Kind: events.KindReminders, Slot: c.repo.Key()})
	return nil
}

// List returns reminders with incomplete ones first, each group in
// ascending datetime order.
func (c *Controller) List() []models.Reminder {
	out := slices.Clone(c.reminders)
	Sort(out, c.loc)
	return out
}

// Sort orders reminders in place: incomplete before complete, then by
// ascending datetime. Unparseable datetimes sort by their raw text.
func Sort(reminders []models.Reminder, loc *time.Location) {
	slices.SortStableFunc(reminders, func(a, b models.Reminder) int {
		if a.Completed != b.Completed {
			if a.Completed {
				return 1
			}
			return -1
		}
		at, aErr := a.At(loc)
		bt, bErr := b.At(loc)
		if aErr == nil && bErr == nil {
			return at.Compare(bt)
		}
		return cmp.Compare(a.DateTime, b.DateTime)
	})
}

// Upcoming returns up to limit reminders due strictly after now, in
// stored order.
func (c *Controller) Upcoming(now time.Time, limit int) []models.Reminder {
	var out []models.Reminder
	for _, r := range c.reminders {
		if limit > 0 && len(out) == limit {
			break
		}
		at, err := r.At(c.loc)
		if err != nil || !at.After(now) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Due returns incomplete reminders whose datetime lies in (now-window, now].
func (c *Controller) Due(now time.Time, window time.Duration) []models.Reminder {
	var out []models.Reminder
	from := now.Add(-window)
	for _, r := range c.reminders {
		if r.Completed {
			continue
		}
		at, err := r.At(c.loc)
		if err != nil {
			continue
		}
		if at.After(from) && !at.After(now) {
			out = append(out, r)
		}
	}
	return out
}
