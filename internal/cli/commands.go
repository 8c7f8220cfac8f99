package cli

import "github.com/alecthomas/kong"

// CLI is the kong command tree.
type CLI struct {
	Version  kong.VersionFlag `help:"Show version."`
	Store    string           `help:"Store locator: file path (.db or .json), postgres:// or redis:// URL, 'postgres', 'redis' or 'memory:'."`
	Timezone string           `help:"IANA timezone for dates."`
	Debug    bool             `help:"Enable debug logging to stderr."`

	Init      InitCmd      `cmd:"" help:"Initialize daybook storage."`
	Tui       TuiCmd       `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Dashboard DashboardCmd `cmd:"" help:"Show today's summary."`
	Doctor    DoctorCmd    `cmd:"" help:"Run health checks on storage and data."`
	Validate  ValidateCmd  `cmd:"" help:"Check stored data for conflicts."`
	Notify    NotifyCmd    `cmd:"" hidden:"" help:"Send notifications for due reminders and routines."`
	Timer     TimerCmd     `cmd:"" help:"Run a Pomodoro countdown in the foreground."`

	Mood struct {
		Set   MoodSetCmd   `cmd:"" help:"Record a mood for a day."`
		Show  MoodShowCmd  `cmd:"" help:"Show a month calendar of moods."`
		Stats MoodStatsCmd `cmd:"" help:"Count moods over recent days."`
	} `cmd:"" help:"Track daily mood."`

	Reminder struct {
		Add    ReminderAddCmd    `cmd:"" help:"Add a reminder."`
		Edit   ReminderEditCmd   `cmd:"" help:"Edit a reminder."`
		Toggle ReminderToggleCmd `cmd:"" help:"Toggle a reminder's completion."`
		Delete ReminderDeleteCmd `cmd:"" help:"Delete a reminder."`
		List   ReminderListCmd   `cmd:"" help:"List reminders."`
	} `cmd:"" help:"Manage reminders."`

	Routine struct {
		Add     RoutineAddCmd     `cmd:"" help:"Add a routine."`
		Edit    RoutineEditCmd    `cmd:"" help:"Edit a routine."`
		Delete  RoutineDeleteCmd  `cmd:"" help:"Delete a routine."`
		List    RoutineListCmd    `cmd:"" help:"List routines."`
		Toggle  RoutineToggleCmd  `cmd:"" help:"Toggle a routine's completion for a day."`
		Heatmap RoutineHeatmapCmd `cmd:"" help:"Show a routine's completion heatmap."`
	} `cmd:"" help:"Manage routines."`

	Journal struct {
		Add    JournalAddCmd    `cmd:"" help:"Write a journal entry."`
		Edit   JournalEditCmd   `cmd:"" help:"Edit a journal entry."`
		Delete JournalDeleteCmd `cmd:"" help:"Delete a journal entry."`
		List   JournalListCmd   `cmd:"" help:"List journal entries."`
		Show   JournalShowCmd   `cmd:"" help:"Render a journal entry."`
	} `cmd:"" help:"Manage the journal."`

	Theme struct {
		List ThemeListCmd `cmd:"" help:"List themes."`
		Use  ThemeUseCmd  `cmd:"" help:"Select a theme."`
		Buy  ThemeBuyCmd  `cmd:"" help:"Purchase a premium theme."`
	} `cmd:"" help:"Manage colour themes."`

	Sticker struct {
		List StickerListCmd `cmd:"" help:"List sticker packs."`
		Use  StickerUseCmd  `cmd:"" help:"Select a sticker pack."`
		Buy  StickerBuyCmd  `cmd:"" help:"Purchase a premium sticker pack."`
	} `cmd:"" help:"Manage mood sticker packs."`

	Backup struct {
		Create  BackupCreateCmd  `cmd:"" help:"Create a backup."`
		List    BackupListCmd    `cmd:"" help:"List backups."`
		Restore BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage backups."`

	Config struct {
		Set    ConfigSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
		Delete ConfigDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
		Show   ConfigShowCmd   `cmd:"" help:"Show resolved settings."`
	} `cmd:"" help:"Manage configuration."`

	DebugTools DebugCmd `cmd:"" name:"debug" hidden:"" help:"Debugging helpers."`
}
