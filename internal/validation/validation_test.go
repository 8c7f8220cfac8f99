package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/daybook/internal/models"
)

func countType(result ValidationResult, t ConflictType) int {
	n := 0
	for _, c := range result.Conflicts {
		if c.Type == t {
			n++
		}
	}
	return n
}

func TestValidateReminders_Valid(t *testing.T) {
	validator := New(time.UTC)

	result := validator.ValidateReminders([]models.Reminder{
		{ID: "1", Title: "Pay rent", DateTime: "2024-01-01T09:00", Priority: models.PriorityHigh},
		{ID: "2", Title: "Call mom", DateTime: "2024-01-02T18:30", Priority: models.PriorityLow},
	})

	if result.HasConflicts() {
		t.Errorf("expected no conflicts, got: %s", result.FormatReport())
	}
}

func TestValidateReminders_InvalidFields(t *testing.T) {
	validator := New(time.UTC)

	result := validator.ValidateReminders([]models.Reminder{
		{ID: "1", Title: "Bad date", DateTime: "tomorrow", Priority: models.PriorityHigh},
		{ID: "2", Title: "Bad priority", DateTime: "2024-01-02T18:30", Priority: "urgent"},
		{ID: "2", Title: "", DateTime: "2024-01-02T18:30", Priority: models.PriorityLow},
	})

	if got := countType(result, ConflictInvalidDateTime); got != 1 {
		t.Errorf("expected 1 invalid datetime conflict, got %d", got)
	}
	if got := countType(result, ConflictInvalidPriority); got != 1 {
		t.Errorf("expected 1 invalid priority conflict, got %d", got)
	}
	if got := countType(result, ConflictMissingField); got != 1 {
		t.Errorf("expected 1 missing field conflict, got %d", got)
	}
	if got := countType(result, ConflictDuplicateID); got != 1 {
		t.Errorf("expected 1 duplicate id conflict, got %d", got)
	}
	if !result.HasErrors() {
		t.Error("expected errors")
	}
}

func TestValidateRoutines_InvalidTimeFormat(t *testing.T) {
	validator := New(time.UTC)

	result := validator.ValidateRoutines([]models.Routine{
		{ID: "1", Title: "A", Time: "25:00", Days: []models.Weekday{models.Monday}, Category: models.CategoryWork},
		{ID: "2", Title: "B", Time: "12:70", Days: []models.Weekday{models.Monday}, Category: models.CategoryWork},
		{ID: "3", Title: "C", Time: "not-a-time", Days: []models.Weekday{models.Monday}, Category: models.CategoryWork},
	})

	if got := countType(result, ConflictInvalidDateTime); got != 3 {
		t.Errorf("expected 3 invalid time conflicts, got %d", got)
	}
}

func TestValidateRoutines_InvalidWeekdayAndCategory(t *testing.T) {
	validator := New(time.UTC)

	result := validator.ValidateRoutines([]models.Routine{
		{ID: "1", Title: "Gym", Time: "07:00", Days: []models.Weekday{"funday"}, Category: "chores"},
		{ID: "2", Title: "Nothing", Time: "08:00", Category: models.CategoryHealth},
	})

	if got := countType(result, ConflictInvalidWeekday); got != 1 {
		t.Errorf("expected 1 invalid weekday conflict, got %d", got)
	}
	if got := countType(result, ConflictInvalidCategory); got != 1 {
		t.Errorf("expected 1 invalid category conflict, got %d", got)
	}
	if got := countType(result, ConflictMissingField); got != 1 {
		t.Errorf("expected 1 missing-days conflict, got %d", got)
	}
}

func TestValidateRoutines_RespectsWeekdays(t *testing.T) {
	validator := New(time.UTC)

	result := validator.ValidateRoutines([]models.Routine{
		{ID: "mon", Title: "Monday", Time: "09:00", Days: []models.Weekday{models.Monday}, Category: models.CategoryWork},
		{ID: "tue", Title: "Tuesday", Time: "09:00", Days: []models.Weekday{models.Tuesday}, Category: models.CategoryWork},
	})

	if result.HasConflicts() {
		t.Errorf("expected no conflicts for disjoint weekdays, got: %s", result.FormatReport())
	}
}

func TestValidateRoutines_DetectsOverlappingWeekdays(t *testing.T) {
	validator := New(time.UTC)

	result := validator.ValidateRoutines([]models.Routine{
		{ID: "mw", Title: "MW", Time: "09:00", Days: []models.Weekday{models.Monday, models.Wednesday}, Category: models.CategoryWork},
		{ID: "wf", Title: "WF", Time: "09:00", Days: []models.Weekday{models.Wednesday, models.Friday}, Category: models.CategoryWork},
	})

	if got := countType(result, ConflictOverlappingRoutines); got != 1 {
		t.Fatalf("expected 1 overlap, got %d", got)
	}
	for _, c := range result.Conflicts {
		if c.Type == ConflictOverlappingRoutines {
			if len(c.Items) != 2 {
				t.Errorf("expected 2 items in conflict, got %d", len(c.Items))
			}
			if !strings.Contains(c.Description, "Wed") {
				t.Errorf("expected shared weekday in description: %s", c.Description)
			}
		}
	}
	if result.HasErrors() {
		t.Error("overlapping routines should only warn")
	}
}

func TestValidateRoutines_UnscheduledCompletions(t *testing.T) {
	validator := New(time.UTC)

	// 2024-03-05 is a Tuesday
	result := validator.ValidateRoutines([]models.Routine{
		{
			ID: "1", Title: "Mondays", Time: "07:00",
			Days:        []models.Weekday{models.Monday},
			Category:    models.CategoryHealth,
			Completions: map[string]bool{"2024-03-04": true, "2024-03-05": true},
		},
	})

	if got := countType(result, ConflictUnscheduledCompletion); got != 1 {
		t.Fatalf("expected 1 unscheduled completion warning, got %d", got)
	}
	if result.HasErrors() {
		t.Error("unscheduled completions should only warn")
	}
	if !strings.Contains(result.FormatReport(), "2024-03-05") {
		t.Errorf("expected report to name the stray day, got: %s", result.FormatReport())
	}
}

func TestValidateMoods(t *testing.T) {
	validator := New(time.UTC)

	result := validator.ValidateMoods(models.MoodMap{
		"2024-03-01": models.MoodHappy,
		"2024-13-01": models.MoodSad,
		"2024-03-02": "ecstatic",
	})

	if got := countType(result, ConflictInvalidDateTime); got != 1 {
		t.Errorf("expected 1 invalid date, got %d", got)
	}
	if got := countType(result, ConflictUnknownMood); got != 1 {
		t.Errorf("expected 1 unknown mood, got %d", got)
	}
}

func TestValidateJournal(t *testing.T) {
	validator := New(time.UTC)

	result := validator.ValidateJournal([]models.JournalEntry{
		{ID: "1", Title: "Ok", Mood: models.MoodHappy},
		{ID: "2", Title: "No mood"},
		{ID: "3", Title: "Bad mood", Mood: "grumpy"},
	})

	if got := countType(result, ConflictUnknownMood); got != 1 {
		t.Errorf("expected 1 unknown mood, got %d", got)
	}
	if len(result.Conflicts) != 1 {
		t.Errorf("expected exactly 1 conflict, got: %s", result.FormatReport())
	}
}

func TestFormatReport_NoConflicts(t *testing.T) {
	result := ValidationResult{}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("unexpected report: %q", result.FormatReport())
	}
}

func TestMerge(t *testing.T) {
	validator := New(time.UTC)
	var all ValidationResult
	all.Merge(validator.ValidateMoods(models.MoodMap{"bad": models.MoodHappy}))
	all.Merge(validator.ValidateJournal([]models.JournalEntry{{ID: "1"}}))

	if len(all.Conflicts) != 2 {
		t.Errorf("expected 2 merged conflicts, got %d", len(all.Conflicts))
	}
}
