package models

import "time"

// JournalEntry is one bullet journal page
type JournalEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"date"`
	Tags      []string  `json:"tags"`
	Mood      MoodID    `json:"mood,omitempty"`
}
