package models

// PomodoroSettings holds the persisted countdown preferences
type PomodoroSettings struct {
	DurationMin int `json:"duration_min"`
}
