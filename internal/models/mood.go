package models

// MoodID identifies one of the five mood levels
type MoodID string

const (
	MoodVeryHappy MoodID = "very-happy"
	MoodHappy     MoodID = "happy"
	MoodNeutral   MoodID = "neutral"
	MoodSad       MoodID = "sad"
	MoodVerySad   MoodID = "very-sad"
)

// MoodLevel describes a mood independently of the sticker pack that draws it
type MoodLevel struct {
	ID    MoodID
	Label string
	Color string
}

// MoodLevels lists every level, happiest first
var MoodLevels = []MoodLevel{
	{ID: MoodVeryHappy, Label: "Very Happy", Color: "#10b981"},
	{ID: MoodHappy, Label: "Happy", Color: "#84cc16"},
	{ID: MoodNeutral, Label: "Neutral", Color: "#f59e0b"},
	{ID: MoodSad, Label: "Sad", Color: "#f97316"},
	{ID: MoodVerySad, Label: "Very Sad", Color: "#ef4444"},
}

// Valid reports whether id names a known mood level
func (id MoodID) Valid() bool {
	_, ok := LookupMood(id)
	return ok
}

// LookupMood returns the level for id
func LookupMood(id MoodID) (MoodLevel, bool) {
	for _, level := range MoodLevels {
		if level.ID == id {
			return level, true
		}
	}
	return MoodLevel{}, false
}

// MoodMap maps a calendar-day key (YYYY-MM-DD) to the mood recorded that day
type MoodMap map[string]MoodID
