package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/utils"
	"github.com/julianstephens/daybook/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	hasError := false
	reachable := false

	pass := func(name string) { ctx.printf("✓ %s: OK\n", name) }
	fail := func(name string, err error) {
		ctx.printf("❌ %s: FAIL\n", name)
		ctx.printf("   Error: %v\n", err)
		hasError = true
	}
	warn := func(name string, err error) {
		ctx.printf("⚠ %s: WARNING\n", name)
		ctx.printf("   %v\n", err)
	}

	// Check 1: store reachable
	if err := ctx.Medium.Load(); err != nil {
		fail("Store reachable", fmt.Errorf("failed to load store: %w", err))
	} else {
		pass("Store reachable")
		reachable = true
	}

	if reachable {
		// Check 2: schema version (SQL media only)
		if err := checkSchemaVersion(ctx.Medium); err != nil {
			fail("Schema version", err)
		} else {
			pass("Schema version")
		}

		// Check 3: every slot parses
		if err := checkSlotsParse(ctx.Medium); err != nil {
			fail("Slots parse", err)
		} else {
			pass("Slots parse")
		}

		// Check 4: data validation, warnings reported separately
		if err := checkValidation(ctx); err != nil {
			fail("Data validation", err)
		} else if w := validationWarnings(ctx); w != nil {
			warn("Data validation", w)
		} else {
			pass("Data validation")
		}
	} else {
		ctx.printf("⊘ Schema version: SKIPPED (store not reachable)\n")
		ctx.printf("⊘ Slots parse: SKIPPED (store not reachable)\n")
		ctx.printf("⊘ Data validation: SKIPPED (store not reachable)\n")
	}

	// Check 5: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		warn("Backups present", err)
	} else {
		pass("Backups present")
	}

	// Check 6: timezone
	if err := checkTimezone(ctx); err != nil {
		fail("Clock/timezone", err)
	} else {
		pass("Clock/timezone")
	}

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.println("All diagnostics passed!")
	return nil
}

func checkSchemaVersion(m storage.Medium) error {
	reporter, ok := m.(storage.SchemaReporter)
	if !ok {
		// key-value media have no schema
		return nil
	}

	current, latest, err := reporter.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

// slotTargets decodes each known slot into its stored type.
var slotTargets = map[string]func() any{
	constants.SlotMoods:             func() any { return &models.MoodMap{} },
	constants.SlotReminders:         func() any { return &[]models.Reminder{} },
	constants.SlotRoutines:          func() any { return &[]models.Routine{} },
	constants.SlotJournalEntries:    func() any { return &[]models.JournalEntry{} },
	constants.SlotPurchasedThemes:   func() any { return &[]string{} },
	constants.SlotPurchasedStickers: func() any { return &[]string{} },
	constants.SlotSelectedTheme:     func() any { return new(string) },
	constants.SlotSelectedStickers:  func() any { return new(string) },
	constants.SlotPomodoroSettings:  func() any { return &models.PomodoroSettings{} },
}

func checkSlotsParse(m storage.Medium) error {
	var bad []string
	for _, key := range constants.AllSlots {
		raw, ok, err := m.Get(key)
		if err != nil {
			return fmt.Errorf("failed to read slot %s: %w", key, err)
		}
		if !ok {
			continue
		}
		target, known := slotTargets[key]
		if !known {
			continue
		}
		if err := json.Unmarshal([]byte(raw), target()); err != nil {
			bad = append(bad, key)
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("malformed slot(s) will load as empty: %s", strings.Join(bad, ", "))
	}
	return nil
}

func checkValidation(ctx *Context) error {
	result, err := validateQuiet(ctx)
	if err != nil {
		return err
	}
	var errs []string
	for _, c := range result.Conflicts {
		if c.Severity == validation.SeverityError {
			errs = append(errs, c.Description)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "\n   "))
	}
	return nil
}

func validationWarnings(ctx *Context) error {
	result, err := validateQuiet(ctx)
	if err != nil {
		return err
	}
	var warns []string
	for _, c := range result.Conflicts {
		if c.Severity == validation.SeverityWarning {
			warns = append(warns, c.Description)
		}
	}
	if len(warns) > 0 {
		return fmt.Errorf("%s", strings.Join(warns, "\n   "))
	}
	return nil
}

func validateQuiet(ctx *Context) (validation.ValidationResult, error) {
	a, err := ctx.App()
	if err != nil {
		return validation.ValidationResult{}, err
	}
	validator := validation.New(ctx.location())
	var result validation.ValidationResult
	result.Merge(validator.ValidateMoods(a.Mood.All()))
	result.Merge(validator.ValidateReminders(a.Reminders.List()))
	result.Merge(validator.ValidateRoutines(a.Routines.List()))
	result.Merge(validator.ValidateJournal(a.Journal.List()))
	return result, nil
}

func checkBackupsPresent(ctx *Context) error {
	backups, err := ctx.backups().ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'daybook backup create'")
	}

	return nil
}

func checkTimezone(ctx *Context) error {
	if _, err := utils.LoadLocation(ctx.Config.Timezone); err != nil {
		return err
	}

	// Check if time is in a reasonable range (after 2020 and before 2100)
	now := ctx.now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	if ctx.location() == time.UTC {
		ctx.printf("   Note: timezone is UTC\n")
	}
	return nil
}
