package constants

const (
	// DateFormat is the calendar-day key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time-of-day format (HH:MM)
	TimeFormat = "15:04"

	// DateTimeFormat is the local datetime format used by reminders (YYYY-MM-DDTHH:MM)
	DateTimeFormat = "2006-01-02T15:04"
)
