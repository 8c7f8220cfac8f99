package errors

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/daybook/internal/logger"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "wrapped sentinel",
			err:      fmt.Errorf("reminder abc: %w", ErrNotFound),
			expected: "Error: reminder abc: not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{fmt.Errorf("load: %w", ErrNotInitialized), 3},
		{fmt.Errorf("reminder x: %w", ErrNotFound), 2},
		{fmt.Errorf("theme %q: %w", "argyle", ErrNotPurchased), 2},
		{ErrIncomplete, 2},
		{errors.New("disk full"), 1},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrIncomplete, ErrNotPurchased, ErrUnknownKey, ErrNotScheduled, ErrNotInitialized}
	for _, s := range sentinels {
		wrapped := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", s))
		if !errors.Is(wrapped, s) {
			t.Errorf("errors.Is(%v, %v) = false, want true", wrapped, s)
		}
	}
	if errors.Is(ErrNotFound, ErrIncomplete) {
		t.Error("distinct sentinels must not match")
	}
}

func TestFatalClosesLogBeforeExit(t *testing.T) {
	if err := logger.Init(logger.Config{ConfigDir: t.TempDir()}); err != nil {
		t.Fatalf("logger.Init failed: %v", err)
	}
	t.Cleanup(func() { logger.Close() })
	logPath := logger.Path()

	code := -1
	logOpenAtExit := true
	old := exit
	t.Cleanup(func() { exit = old })
	exit = func(c int) {
		code = c
		logOpenAtExit = logger.Path() != ""
	}

	Fatal(fmt.Errorf("reminder abc: %w", ErrNotFound))

	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if logOpenAtExit {
		t.Error("log file should be closed before exiting")
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "Command execution failed") {
		t.Errorf("expected the failure in the log file, got %q", data)
	}
	if filepath.Base(logPath) != "daybook.log" {
		t.Errorf("unexpected log file %s", logPath)
	}
}

func TestFatalNilDoesNotExit(t *testing.T) {
	old := exit
	t.Cleanup(func() { exit = old })
	exit = func(c int) { t.Errorf("unexpected exit(%d)", c) }

	Fatal(nil)
}
