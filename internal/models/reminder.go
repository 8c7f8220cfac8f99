package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/daybook/internal/constants"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities in ascending order of urgency
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Color returns the display colour for the priority
func (p Priority) Color() string {
	switch p {
	case PriorityLow:
		return "#10b981"
	case PriorityHigh:
		return "#ef4444"
	default:
		return "#f59e0b"
	}
}

// Reminder is a dated, prioritised to-do
type Reminder struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DateTime    string   `json:"datetime"` // YYYY-MM-DDTHH:MM, local
	Priority    Priority `json:"priority"`
	Completed   bool     `json:"completed"`
}

// At parses the reminder's datetime in loc
func (r Reminder) At(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(constants.DateTimeFormat, r.DateTime, loc)
}

// NormalizeDateTime accepts a local datetime or an RFC3339 timestamp and
// returns it in the stored YYYY-MM-DDTHH:MM form.
func NormalizeDateTime(s string, loc *time.Location) (string, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(constants.DateTimeFormat, s, loc); err == nil {
		return t.Format(constants.DateTimeFormat), nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, loc); err == nil {
		return t.Format(constants.DateTimeFormat), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc).Format(constants.DateTimeFormat), nil
	}
	return "", fmt.Errorf("invalid datetime %q: expected YYYY-MM-DDTHH:MM", s)
}
