package models

import "time"

// Weekday is the lowercase English weekday name used as a routine schedule tag
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays in display order, Monday first
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf returns the schedule tag for t's day of the week
func WeekdayOf(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

func (d Weekday) Valid() bool {
	for _, w := range Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

// Short returns the three-letter label, e.g. "Mon"
func (d Weekday) Short() string {
	if len(d) < 3 {
		return string(d)
	}
	return string(d[0]-'a'+'A') + string(d[1:3])
}

type Category string

const (
	CategoryPersonal Category = "personal"
	CategoryWork     Category = "work"
	CategoryHealth   Category = "health"
	CategoryHobby    Category = "hobby"
)

var Categories = []Category{CategoryPersonal, CategoryWork, CategoryHealth, CategoryHobby}

func (c Category) Valid() bool {
	switch c {
	case CategoryPersonal, CategoryWork, CategoryHealth, CategoryHobby:
		return true
	}
	return false
}

func (c Category) Color() string {
	switch c {
	case CategoryWork:
		return "#10b981"
	case CategoryHealth:
		return "#f59e0b"
	case CategoryHobby:
		return "#8b5cf6"
	default:
		return "#3b82f6"
	}
}

// Routine is a recurring activity scheduled on a set of weekdays
type Routine struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Time          string          `json:"time"` // HH:MM
	Days          []Weekday       `json:"days"`
	Notifications bool            `json:"notifications"`
	Category      Category        `json:"category"`
	Completions   map[string]bool `json:"completions"` // day key -> done
}

// ScheduledOn reports whether the routine runs on the given weekday
func (r Routine) ScheduledOn(d Weekday) bool {
	for _, day := range r.Days {
		if day == d {
			return true
		}
	}
	return false
}

// CompletedOn reports whether the routine was marked done on dayKey
func (r Routine) CompletedOn(dayKey string) bool {
	return r.Completions[dayKey]
}
