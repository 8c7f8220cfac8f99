package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/julianstephens/daybook/internal/app"
	"github.com/julianstephens/daybook/internal/backup"
	"github.com/julianstephens/daybook/internal/config"
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/events"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/notifier"
	"github.com/julianstephens/daybook/internal/storage"
)

// Context is shared by every command.
type Context struct {
	Config    config.Config
	ConfigDir string
	Medium    storage.Medium
	Kind      storage.Kind
	Loc       *time.Location
	Bus       *events.Bus
	Notifier  notifier.Sender

	Out io.Writer
	In  io.Reader
	Now func() time.Time

	// TickInterval drives the foreground timer; zero means one second.
	TickInterval time.Duration

	app *app.App
}

// App loads the medium on first use and builds the controllers.
func (c *Context) App() (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	if err := c.Medium.Load(); err != nil {
		return nil, err
	}
	a, err := app.New(c.Medium, c.Bus, c.location())
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}

func (c *Context) location() *time.Location {
	if c.Loc == nil {
		return time.Local
	}
	return c.Loc
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now().In(c.location())
	}
	return c.Now().In(c.location())
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) in() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) backups() *backup.Manager {
	return backup.NewManager(c.Medium, c.ConfigDir)
}

// PerformAutomaticBackup snapshots the medium and logs, rather than
// returns, any failure.
func (c *Context) PerformAutomaticBackup() {
	path, err := c.backups().CreateBackup(backup.FormatJSON)
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
		return
	}
	logger.Debug("Automatic backup created", "path", path)
}

var titleCaser = cases.Title(language.English)

// label renders a stored tag such as "very-happy" or "monday" for display.
func label(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "-", " "))
}

// parseWeekdays accepts full or three-letter names, comma separated.
func parseWeekdays(s string) ([]models.Weekday, error) {
	var days []models.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		found := false
		for _, wd := range models.Weekdays {
			if part == string(wd) || part == strings.ToLower(wd.Short()) {
				days = append(days, wd)
				found = true
				break
			}
		}
		if !found {
			switch part {
			case "daily", "everyday":
				days = append(days, models.Weekdays...)
			case "weekdays":
				days = append(days, models.Weekdays[:5]...)
			case "weekends":
				days = append(days, models.Weekdays[5:]...)
			default:
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}
	return days, nil
}

func formatWeekdays(days []models.Weekday) string {
	if len(days) == len(models.Weekdays) {
		return "Daily"
	}
	short := make([]string, 0, len(days))
	for _, d := range days {
		short = append(short, d.Short())
	}
	return strings.Join(short, ",")
}

// parseDay resolves "today", "yesterday" or YYYY-MM-DD.
func (c *Context) parseDay(s string) (time.Time, error) {
	today := time.Date(c.now().Year(), c.now().Month(), c.now().Day(), 0, 0, 0, 0, c.location())
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	t, err := time.ParseInLocation(constants.DateFormat, s, c.location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD, 'today' or 'yesterday')", s)
	}
	return t, nil
}
