package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/daybook/internal/logger"
)

var (
	// ErrNotFound is returned when an entity id does not exist in its collection.
	ErrNotFound = errors.New("not found")
	// ErrIncomplete is returned when a submission is missing a required field.
	// Presentation layers treat it as an inert no-op.
	ErrIncomplete = errors.New("incomplete submission")
	// ErrNotPurchased is returned when a premium theme or sticker pack is selected before purchase.
	ErrNotPurchased = errors.New("premium item not purchased")
	// ErrUnknownKey is returned for theme, sticker pack or mood keys outside the catalogue.
	ErrUnknownKey = errors.New("unknown key")
	// ErrNotScheduled is returned when toggling a routine completion on an unscheduled day.
	ErrNotScheduled = errors.New("day is not scheduled for this routine")
	// ErrNotInitialized is returned when a storage medium is loaded before `daybook init`.
	ErrNotInitialized = errors.New("storage not initialized, run 'daybook init' first")
)

// Format renders err for the terminal.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// ExitCode maps err to a process status: 0 for nil, 3 when storage needs
// `daybook init`, 2 for rejected input and 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNotInitialized):
		return 3
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrIncomplete), errors.Is(err, ErrNotPurchased),
		errors.Is(err, ErrUnknownKey), errors.Is(err, ErrNotScheduled):
		return 2
	default:
		return 1
	}
}

var exit = os.Exit

// Fatal logs err, closes the log file, prints err and exits with
// ExitCode(err). A nil err is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	_ = logger.Close()
	fmt.Fprintln(os.Stderr, Format(err))
	exit(ExitCode(err))
}
