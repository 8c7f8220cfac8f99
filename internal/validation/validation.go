// Package validation checks stored entities for data that the controllers
// would never have written themselves.
package validation

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/routines"
	"github.com/julianstephens/daybook/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateID           ConflictType = "duplicate_id"
	ConflictMissingField          ConflictType = "missing_field"
	ConflictInvalidDateTime       ConflictType = "invalid_datetime"
	ConflictInvalidPriority       ConflictType = "invalid_priority"
	ConflictInvalidWeekday        ConflictType = "invalid_weekday"
	ConflictInvalidCategory       ConflictType = "invalid_category"
	ConflictUnknownMood           ConflictType = "unknown_mood"
	ConflictOverlappingRoutines   ConflictType = "overlapping_routines"
	ConflictUnscheduledCompletion ConflictType = "unscheduled_completion"
)

// Severity distinguishes data errors from informational findings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Conflict represents a detected problem in stored data
type Conflict struct {
	Type        ConflictType
	Severity    Severity
	Description string
	Items       []string // titles involved
	IDs         []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors reports whether any conflict is an error rather than a warning.
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Merge appends other's conflicts.
func (vr *ValidationResult) Merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		marker := "-"
		if conflict.Severity == SeverityWarning {
			marker = "~"
		}
		fmt.Fprintf(&b, "%s %s\n", marker, conflict.Description)
	}
	return b.String()
}

// Validator validates stored entities
type Validator struct {
	loc *time.Location
}

// New creates a Validator that interprets dates in loc.
func New(loc *time.Location) *Validator {
	if loc == nil {
		loc = time.Local
	}
	return &Validator{loc: loc}
}

func (vr *ValidationResult) add(t ConflictType, sev Severity, desc string, items, ids []string) {
	vr.Conflicts = append(vr.Conflicts, Conflict{Type: t, Severity: sev, Description: desc, Items: items, IDs: ids})
}

func (vr *ValidationResult) errorf(t ConflictType, items, ids []string, format string, args ...any) {
	vr.add(t, SeverityError, fmt.Sprintf(format, args...), items, ids)
}

func duplicateIDs(result *ValidationResult, kind string, ids []string) {
	count := make(map[string]int, len(ids))
	for _, id := range ids {
		count[id]++
	}
	var dups []string
	for id, n := range count {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	sort.Strings(dups)
	for _, id := range dups {
		result.errorf(ConflictDuplicateID, nil, []string{id}, "Duplicate %s ID: %s (%d copies)", kind, id, count[id])
	}
}

// ValidateMoods checks day keys and mood levels.
func (v *Validator) ValidateMoods(moods models.MoodMap) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	keys := make([]string, 0, len(moods))
	for key := range moods {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, err := time.ParseInLocation(constants.DateFormat, key, v.loc); err != nil {
			result.errorf(ConflictInvalidDateTime, nil, nil, "Mood recorded under invalid date: %s", key)
		}
		if !moods[key].Valid() {
			result.errorf(ConflictUnknownMood, nil, nil, "%s: unknown mood %q", key, moods[key])
		}
	}
	return result
}

// ValidateReminders checks ids, datetimes and priorities.
func (v *Validator) ValidateReminders(reminders []models.Reminder) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	ids := make([]string, 0, len(reminders))
	for _, r := range reminders {
		ids = append(ids, r.ID)
		if r.Title == "" {
			result.errorf(ConflictMissingField, nil, []string{r.ID}, "Reminder %s has no title", r.ID)
		}
		if _, err := r.At(v.loc); err != nil {
			result.errorf(ConflictInvalidDateTime, []string{r.Title}, []string{r.ID},
				"Reminder \"%s\" has invalid datetime: %s", r.Title, r.DateTime)
		}
		if !r.Priority.Valid() {
			result.errorf(ConflictInvalidPriority, []string{r.Title}, []string{r.ID},
				"Reminder \"%s\" has invalid priority: %s", r.Title, r.Priority)
		}
	}
	duplicateIDs(&result, "reminder", ids)
	return result
}

// ValidateRoutines checks times, weekdays and categories, flags routines
// sharing a time on a common weekday, and reports completions recorded on
// unscheduled days as warnings.
func (v *Validator) ValidateRoutines(rs []models.Routine) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	ids := make([]string, 0, len(rs))
	for _, r := range rs {
		ids = append(ids, r.ID)
		if r.Title == "" {
			result.errorf(ConflictMissingField, nil, []string{r.ID}, "Routine %s has no title", r.ID)
		}
		if _, err := utils.ParseTimeToMinutes(r.Time); err != nil {
			result.errorf(ConflictInvalidDateTime, []string{r.Title}, []string{r.ID},
				"Routine \"%s\" has invalid time: %s", r.Title, r.Time)
		}
		if len(r.Days) == 0 {
			result.errorf(ConflictMissingField, []string{r.Title}, []string{r.ID},
				"Routine \"%s\" is not scheduled on any day", r.Title)
		}
		for _, d := range r.Days {
			if !d.Valid() {
				result.errorf(ConflictInvalidWeekday, []string{r.Title}, []string{r.ID},
					"Routine \"%s\" has invalid weekday: %s", r.Title, d)
			}
		}
		if !r.Category.Valid() {
			result.errorf(ConflictInvalidCategory, []string{r.Title}, []string{r.ID},
				"Routine \"%s\" has invalid category: %s", r.Title, r.Category)
		}
		if stray := routines.UnscheduledCompletions(r, v.loc); len(stray) > 0 {
			result.add(ConflictUnscheduledCompletion, SeverityWarning,
				fmt.Sprintf("Routine \"%s\" has completions on unscheduled days: %s", r.Title, strings.Join(stray, ", ")),
				[]string{r.Title}, []string{r.ID})
		}
	}
	duplicateIDs(&result, "routine", ids)

	// O(n²) over routines; lists are small
	for i := 0; i < len(rs); i++ {
		for j := i + 1; j < len(rs); j++ {
			a, b := rs[i], rs[j]
			if a.Time == "" || a.Time != b.Time {
				continue
			}
			var shared []string
			for _, d := range a.Days {
				if slices.Contains(b.Days, d) {
					shared = append(shared, d.Short())
				}
			}
			if len(shared) > 0 {
				result.add(ConflictOverlappingRoutines, SeverityWarning,
					fmt.Sprintf("Routines \"%s\" and \"%s\" both run at %s on %s", a.Title, b.Title, a.Time, strings.Join(shared, ",")),
					[]string{a.Title, b.Title}, []string{a.ID, b.ID})
			}
		}
	}
	return result
}

// ValidateJournal checks ids, titles and attached moods.
func (v *Validator) ValidateJournal(entries []models.JournalEntry) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
		if e.Title == "" {
			result.errorf(ConflictMissingField, nil, []string{e.ID}, "Journal entry %s has no title", e.ID)
		}
		if e.Mood != "" && !e.Mood.Valid() {
			result.errorf(ConflictUnknownMood, []string{e.Title}, []string{e.ID},
				"Journal entry \"%s\" has unknown mood: %s", e.Title, e.Mood)
		}
	}
	duplicateIDs(&result, "journal entry", ids)
	return result
}
