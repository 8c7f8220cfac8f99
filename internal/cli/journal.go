package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/julianstephens/daybook/internal/journal"
	"github.com/julianstephens/daybook/internal/models"
)

// readContent returns s, or stdin when s is "-".
func (c *Context) readContent(s string) (string, error) {
	if s != "-" {
		return s, nil
	}
	b, err := io.ReadAll(c.in())
	if err != nil {
		return "", fmt.Errorf("failed to read content from stdin: %w", err)
	}
	return string(b), nil
}

func optionalMood(s string) (models.MoodID, error) {
	if s == "" {
		return "", nil
	}
	return parseMood(s)
}

type JournalAddCmd struct {
	Title   string `arg:"" help:"Entry title."`
	Content string `short:"c" help:"Entry body in markdown; '-' reads stdin." required:""`
	Tags    string `short:"t" help:"Comma-separated tags."`
	Mood    string `short:"m" help:"Mood to attach."`
}

func (c *JournalAddCmd) Run(ctx *Context) error {
	content, err := ctx.readContent(c.Content)
	if err != nil {
		return err
	}
	mood, err := optionalMood(c.Mood)
	if err != nil {
		return err
	}
	a, err := ctx.App()
	if err != nil {
		return err
	}
	e, err := a.Journal.Add(journal.Input{Title: c.Title, Content: content, Tags: c.Tags, Mood: mood})
	if err != nil {
		return err
	}
	ctx.printf("Added journal entry: %s (ID: %s)\n", e.Title, e.ID)
	return nil
}

type JournalEditCmd struct {
	ID      string  `arg:"" help:"Entry ID."`
	Title   *string `help:"New title."`
	Content *string `short:"c" help:"New body; '-' reads stdin."`
	Tags    *string `short:"t" help:"New comma-separated tags."`
	Mood    *string `short:"m" help:"New mood; empty clears it."`
}

func (c *JournalEditCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	existing, err := a.Journal.Get(c.ID)
	if err != nil {
		return err
	}

	in := journal.Input{
		Title:   existing.Title,
		Content: existing.Content,
		Tags:    strings.Join(existing.Tags, ", "),
		Mood:    existing.Mood,
	}
	if c.Title != nil {
		in.Title = *c.Title
	}
	if c.Content != nil {
		if in.Content, err = ctx.readContent(*c.Content); err != nil {
			return err
		}
	}
	if c.Tags != nil {
		in.Tags = *c.Tags
	}
	if c.Mood != nil {
		if in.Mood, err = optionalMood(*c.Mood); err != nil {
			return err
		}
	}

	e, err := a.Journal.Update(c.ID, in)
	if err != nil {
		return err
	}
	ctx.printf("Updated journal entry: %s\n", e.Title)
	return nil
}

type JournalDeleteCmd struct {
	ID string `arg:"" help:"Entry ID."`
}

func (c *JournalDeleteCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	if err := a.Journal.Delete(c.ID); err != nil {
		return err
	}
	ctx.printf("Deleted journal entry %s\n", c.ID)
	return nil
}

type JournalListCmd struct {
	Search string `short:"s" help:"Only entries whose title, content or tags contain this text."`
}

func (c *JournalListCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	entries := a.Journal.List()
	if c.Search != "" {
		entries = a.Journal.Search(c.Search)
	}
	if len(entries) == 0 {
		ctx.println("No journal entries found.")
		return nil
	}

	for _, e := range entries {
		tags := ""
		if len(e.Tags) > 0 {
			tags = "  #" + strings.Join(e.Tags, " #")
		}
		ctx.printf("%s  %s%s%s  (%s)\n",
			e.CreatedAt.In(ctx.location()).Format("2006-01-02 15:04"), e.Title, moodSuffix(a.Themes.Emoji, e.Mood), tags, e.ID)
	}
	return nil
}

type JournalShowCmd struct {
	ID    string `arg:"" help:"Entry ID."`
	Width int    `help:"Wrap width for rendered markdown." default:"80"`
	Raw   bool   `help:"Print the markdown source instead of rendering it."`
}

func (c *JournalShowCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	e, err := a.Journal.Get(c.ID)
	if err != nil {
		return err
	}

	ctx.printf("# %s%s\n", e.Title, moodSuffix(a.Themes.Emoji, e.Mood))
	ctx.printf("%s", e.CreatedAt.In(ctx.location()).Format("Monday, January 2, 2006 15:04"))
	if len(e.Tags) > 0 {
		ctx.printf("  #%s", strings.Join(e.Tags, " #"))
	}
	ctx.println()

	if c.Raw {
		ctx.println()
		ctx.println(e.Content)
		return nil
	}
	rendered, err := journal.Render(e, c.Width)
	if err != nil {
		return err
	}
	ctx.printf("%s", rendered)
	return nil
}
