// Package journal keeps bullet-journal entries, newest first.
package journal

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"

	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/events"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
)

// Input is the editable part of an entry. Tags is the raw comma-separated text.
type Input struct {
	Title   string
	Content string
	Tags    string
	Mood    models.MoodID
}

type Controller struct {
	repo    *storage.Slot[[]models.JournalEntry]
	bus     *events.Bus
	now     func() time.Time
	entries []models.JournalEntry
}

func New(repo *storage.Slot[[]models.JournalEntry], bus *events.Bus) (*Controller, error) {
	c := &Controller{repo: repo, bus: bus, now: time.Now}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) Reload() error {
	entries, err := c.repo.Load()
	if err != nil {
		return err
	}
	c.entries = entries
	return nil
}

// ParseTags splits comma-separated text, trimming whitespace and dropping empties.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func validate(in Input) (Input, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || strings.TrimSpace(in.Content) == "" {
		return in, apperrors.ErrIncomplete
	}
	if in.Mood != "" && !in.Mood.Valid() {
		return in, fmt.Errorf("mood %q: %w", in.Mood, apperrors.ErrUnknownKey)
	}
	return in, nil
}

// Add prepends a new entry stamped with the current time.
func (c *Controller) Add(in Input) (models.JournalEntry, error) {
	in, err := validate(in)
	if err != nil {
		return models.JournalEntry{}, err
	}

	e := models.JournalEntry{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: c.now().UTC().Truncate(time.Millisecond),
		Tags:      ParseTags(in.Tags),
		Mood:      in.Mood,
	}

	next := make([]models.JournalEntry, 0, len(c.entries)+1)
	next = append(next, e)
	next = append(next, c.entries...)
	if err := c.commit(next); err != nil {
		return models.JournalEntry{}, err
	}
	return e, nil
}

// Update edits id in place; its creation time never changes.
func (c *Controller) Update(id string, in Input) (models.JournalEntry, error) {
	i, err := c.index(id)
	if err != nil {
		return models.JournalEntry{}, err
	}
	in, err = validate(in)
	if err != nil {
		return models.JournalEntry{}, err
	}

	next := slices.Clone(c.entries)
	next[i].Title = in.Title
	next[i].Content = in.Content
	next[i].Tags = ParseTags(in.Tags)
	next[i].Mood = in.Mood
	if err := c.commit(next); err != nil {
		return models.JournalEntry{}, err
	}
	return next[i], nil
}

func (c *Controller) Delete(id string) error {
	i, err := c.index(id)
	if err != nil {
		return err
	}
	return c.commit(slices.Delete(slices.Clone(c.entries), i, i+1))
}

func (c *Controller) Get(id string) (models.JournalEntry, error) {
	i, err := c.index(id)
	if err != nil {
		return models.JournalEntry{}, err
	}
	return c.entries[i], nil
}

// List returns entries in stored order, newest first.
func (c *Controller) List() []models.JournalEntry {
	return slices.Clone(c.entries)
}

// Recent returns the first n entries.
func (c *Controller) Recent(n int) []models.JournalEntry {
	if n > len(c.entries) {
		n = len(c.entries)
	}
	return slices.Clone(c.entries[:n])
}

// Search matches term case-insensitively against title, content and tags.
// An empty term matches everything.
func (c *Controller) Search(term string) []models.JournalEntry {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return c.List()
	}
	var out []models.JournalEntry
	for _, e := range c.entries {
		if matches(e, term) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e models.JournalEntry, term string) bool {
	if strings.Contains(strings.ToLower(e.Title), term) || strings.Contains(strings.ToLower(e.Content), term) {
		return true
	}
	for _, t := range e.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

func (c *Controller) index(id string) (int, error) {
	i := slices.IndexFunc(c.entries, func(e models.JournalEntry) bool { return e.ID == id })
	if i < 0 {
		return -1, fmt.Errorf("journal entry %s: %w", id, apperrors.ErrNotFound)
	}
	return i, nil
}

func (c *Controller) commit(next []models.JournalEntry) error {
	if err := c.repo.Save(next); err != nil {
		return err
	}
	c.entries = next
	c.bus.Publish(events.Event{Kind: events.KindJournal, Slot: c.repo.Key()})
	return nil
}

// Render formats an entry's content as terminal markdown at the given width.
func Render(e models.JournalEntry, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(e.Content)
	if err != nil {
		return "", fmt.Errorf("failed to render entry: %w", err)
	}
	return out, nil
}
