package cli

import (
	"fmt"

	"github.com/julianstephens/daybook/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	result, err := validateAll(ctx)
	if err != nil {
		return err
	}

	ctx.println()
	ctx.println(result.FormatReport())

	if result.HasErrors() {
		return fmt.Errorf("stored data has %d conflict(s)", len(result.Conflicts))
	}
	return nil
}

func validateAll(ctx *Context) (validation.ValidationResult, error) {
	a, err := ctx.App()
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to load storage: %w", err)
	}

	validator := validation.New(ctx.location())
	result := validation.ValidationResult{Conflicts: []validation.Conflict{}}

	ctx.println("Validating moods...")
	result.Merge(validator.ValidateMoods(a.Mood.All()))
	ctx.println("Validating reminders...")
	result.Merge(validator.ValidateReminders(a.Reminders.List()))
	ctx.println("Validating routines...")
	result.Merge(validator.ValidateRoutines(a.Routines.List()))
	ctx.println("Validating journal...")
	result.Merge(validator.ValidateJournal(a.Journal.List()))
	return result, nil
}
