package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "daybook"
	DefaultKeyringUser = "database-connection"
	RedisKeyringUser   = "redis-password"
	DefaultConfigPath  = "~/.config/daybook/daybook.db"
	DefaultRedisPrefix = "daybook:"
	EnvFileName        = ".env"
	Version            = "v0.1.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "daybook-"

	// Log file rotation
	LogDirName    = "logs"
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28

	// Notify constants
	NotifierLockfileName   = "daybook-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.daybook"
	DefaultNotifyWindowMin = 1

	// Pomodoro
	DefaultTimerMinutes = 25
	TimerTickInterval   = time.Second

	// WatchDebounce coalesces bursts of writes to a file-backed store
	WatchDebounce = 250 * time.Millisecond

	// Dashboard
	DashboardUpcomingLimit = 3
	DashboardRecentLimit   = 3
	DashboardProgressDays  = 7

	// Heatmap
	HeatmapMonthsBack = 2
	HeatmapRowSize    = 7
)

// Session States
const (
	StateDashboard SessionState = iota
	StateMood
	StateRoutines
	StateReminders
	StateJournal
	StatePomodoro
	StateThemes
	StateHeatmap
	StateReminderForm
	StateRoutineForm
	StateJournalForm
	StateReadJournal
	StateConfirmDelete
	StateConfirmPurchase
)

// TabCount is the number of top-level tabs; tab states come first.
const TabCount = int(StateThemes) + 1

// TimerOptions are the countdown lengths offered by the Pomodoro timer, in minutes.
var TimerOptions = []int{25, 15, 5}
