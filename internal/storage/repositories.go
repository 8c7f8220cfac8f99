package storage

import (
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/models"
)

// Repositories holds one typed slot per entity kind.
type Repositories struct {
	Medium Medium

	Moods             *Slot[models.MoodMap]
	Reminders         *Slot[[]models.Reminder]
	Routines          *Slot[[]models.Routine]
	Journal           *Slot[[]models.JournalEntry]
	PurchasedThemes   *Slot[[]string]
	PurchasedStickers *Slot[[]string]
	SelectedTheme     *Slot[string]
	SelectedStickers  *Slot[string]
	Pomodoro          *Slot[models.PomodoroSettings]
}

func NewRepositories(m Medium) *Repositories {
	return &Repositories{
		Medium: m,
		Moods: NewSlot(m, constants.SlotMoods, func() models.MoodMap {
			return models.MoodMap{}
		}),
		Reminders: NewSlot(m, constants.SlotReminders, func() []models.Reminder {
			return []models.Reminder{}
		}),
		Routines: NewSlot(m, constants.SlotRoutines, func() []models.Routine {
			return []models.Routine{}
		}),
		Journal: NewSlot(m, constants.SlotJournalEntries, func() []models.JournalEntry {
			return []models.JournalEntry{}
		}),
		PurchasedThemes: NewSlot(m, constants.SlotPurchasedThemes, func() []string {
			return []string{}
		}),
		PurchasedStickers: NewSlot(m, constants.SlotPurchasedStickers, func() []string {
			return []string{}
		}),
		SelectedTheme: NewSlot(m, constants.SlotSelectedTheme, func() string {
			return models.DefaultThemeKey
		}),
		SelectedStickers: NewSlot(m, constants.SlotSelectedStickers, func() string {
			return models.DefaultStickerPackKey
		}),
		Pomodoro: NewSlot(m, constants.SlotPomodoroSettings, func() models.PomodoroSettings {
			return models.PomodoroSettings{DurationMin: constants.DefaultTimerMinutes}
		}),
	}
}
