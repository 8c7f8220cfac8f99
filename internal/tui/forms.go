package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/utils"
)

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

// NewReminderForm creates a form for adding or editing a reminder
func NewReminderForm(fm *ReminderFormModel, loc *time.Location) *huh.Form {
	priorities := make([]huh.Option[models.Priority], len(models.Priorities))
	for i, p := range models.Priorities {
		priorities[i] = huh.NewOption(label(string(p)), p)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(required("title")),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewInput().
				Title("Date & time (YYYY-MM-DD HH:MM)").
				Value(&fm.DateTime).
				Validate(func(s string) error {
					if _, err := models.NormalizeDateTime(s, loc); err != nil {
						return fmt.Errorf("invalid date, use YYYY-MM-DD HH:MM")
					}
					return nil
				}),
			huh.NewSelect[models.Priority]().
				Title("Priority").
				Options(priorities...).
				Value(&fm.Priority),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewRoutineForm creates a form for adding or editing a routine
func NewRoutineForm(fm *RoutineFormModel) *huh.Form {
	days := make([]huh.Option[models.Weekday], len(models.Weekdays))
	for i, d := range models.Weekdays {
		days[i] = huh.NewOption(label(string(d)), d)
	}
	categories := make([]huh.Option[models.Category], len(models.Categories))
	for i, c := range models.Categories {
		categories[i] = huh.NewOption(label(string(c)), c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(required("title")),
			huh.NewInput().
				Title("Time (HH:MM)").
				Value(&fm.Time).
				Validate(func(s string) error {
					if _, err := utils.ParseTimeToMinutes(s); err != nil {
						return fmt.Errorf("invalid time format, use HH:MM")
					}
					return nil
				}),
			huh.NewMultiSelect[models.Weekday]().
				Title("Days").
				Options(days...).
				Value(&fm.Days).
				Validate(func(ds []models.Weekday) error {
					if len(ds) == 0 {
						return fmt.Errorf("pick at least one day")
					}
					return nil
				}),
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(categories...).
				Value(&fm.Category),
			huh.NewConfirm().
				Title("Notifications").
				Value(&fm.Notifications),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewJournalForm creates a form for writing or editing a journal entry
func NewJournalForm(fm *JournalFormModel, stickers models.StickerPack) *huh.Form {
	moods := []huh.Option[models.MoodID]{huh.NewOption("None", models.MoodID(""))}
	for _, level := range models.MoodLevels {
		moods = append(moods, huh.NewOption(stickers.EmojiFor(level.ID)+" "+level.Label, level.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(required("title")),
			huh.NewText().
				Title("Content").
				Description("Markdown is rendered when reading").
				Value(&fm.Content).
				Validate(required("content")),
			huh.NewInput().
				Title("Tags").
				Description("Comma separated").
				Value(&fm.Tags),
			huh.NewSelect[models.MoodID]().
				Title("Mood").
				Options(moods...).
				Value(&fm.Mood),
		),
	).WithTheme(huh.ThemeDracula())
}
