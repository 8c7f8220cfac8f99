// Package mood records at most one mood per calendar day.
package mood

import (
	"fmt"
	"maps"
	"time"

	"github.com/julianstephens/daybook/internal/constants"
	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/events"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/utils"
)

type Controller struct {
	repo  *storage.Slot[models.MoodMap]
	bus   *events.Bus
	moods models.MoodMap
}

// New loads the mood slot. bus may be nil.
func New(repo *storage.Slot[models.MoodMap], bus *events.Bus) (*Controller, error) {
	c := &Controller{repo: repo, bus: bus}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload replaces the in-memory map with the persisted one.
func (c *Controller) Reload() error {
	moods, err := c.repo.Load()
	if err != nil {
		return err
	}
	c.moods = moods
	return nil
}

// Set records id for dayKey, replacing any earlier mood that day.
func (c *Controller) Set(dayKey string, id models.MoodID) error {
	if !id.Valid() {
		return fmt.Errorf("mood %q: %w", id, apperrors.ErrUnknownKey)
	}
	if _, err := time.Parse(constants.DateFormat, dayKey); err != nil {
		return fmt.Errorf("invalid day %q: %w", dayKey, err)
	}

	next := maps.Clone(c.moods)
	if next == nil {
		next = models.MoodMap{}
	}
	next[dayKey] = id
	if err := c.repo.Save(next); err != nil {
		return err
	}
	c.moods = next
	c.bus.Publish(events.Event{Kind: events.KindMood, Slot: c.repo.Key()})
	return nil
}

func (c *Controller) Get(dayKey string) (models.MoodID, bool) {
	id, ok := c.moods[dayKey]
	return id, ok
}

// Today returns the mood recorded on now's calendar day.
func (c *Controller) Today(now time.Time) (models.MoodID, bool) {
	return c.Get(utils.DayKey(now))
}

// All returns a copy of every recorded mood.
func (c *Controller) All() models.MoodMap {
	return maps.Clone(c.moods)
}

// Day is one square of the month calendar. Blank cells pad the first week.
type Day struct {
	Blank bool
	Date  time.Time
	Key   string
	Mood  models.MoodID
}

// Month lays out a Sunday-first calendar grid for the given month.
func (c *Controller) Month(year int, month time.Month, loc *time.Location) []Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := utils.LastOfMonth(first)

	days := make([]Day, 0, int(first.Weekday())+last.Day())
	for i := 0; i < int(first.Weekday()); i++ {
		days = append(days, Day{Blank: true})
	}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := utils.DayKey(d)
		days = append(days, Day{Date: d, Key: key, Mood: c.moods[key]})
	}
	return days
}

// Stats counts recorded moods on days in [from, to], inclusive.
func (c *Controller) Stats(from, to time.Time) map[models.MoodID]int {
	lo, hi := utils.DayKey(from), utils.DayKey(to)
	counts := make(map[models.MoodID]int, len(models.MoodLevels))
	for key, id := range c.moods {
		if key >= lo && key <= hi {
			counts[id]++
		}
	}
	return counts
}
