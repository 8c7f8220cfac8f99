// Package pomodoro implements the countdown timer and its persisted settings.
package pomodoro

import (
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/utils"
)

// State is a snapshot of a Timer.
type State struct {
	DurationSeconds  int
	RemainingSeconds int
	Running          bool
	Completed        bool
}

// Timer is a pure countdown engine advanced one second per Tick.
// It is not safe for concurrent use; Runner serialises access.
type Timer struct {
	duration  int
	remaining int
	running   bool
	completed bool
}

// NewTimer returns a stopped timer of the given length; non-positive
// lengths fall back to the default.
func NewTimer(minutes int) *Timer {
	t := &Timer{}
	t.SelectDuration(minutes)
	return t
}

// SelectDuration resets the timer to a fresh countdown of minutes.
func (t *Timer) SelectDuration(minutes int) {
	if minutes <= 0 {
		minutes = constants.DefaultTimerMinutes
	}
	t.duration = minutes * 60
	t.remaining = t.duration
	t.running = false
	t.completed = false
}

// Toggle starts or pauses the countdown. A finished timer is reset instead.
func (t *Timer) Toggle() {
	if t.remaining == 0 {
		t.Reset()
		return
	}
	t.running = !t.running
}

// Pause stops the countdown without resetting it.
func (t *Timer) Pause() {
	t.running = false
}

// Tick advances a running timer by one second. It reports true exactly
// once, on the tick that reaches zero.
func (t *Timer) Tick() bool {
	if !t.running || t.remaining == 0 {
		return false
	}
	t.remaining--
	if t.remaining == 0 {
		t.running = false
		t.completed = true
		return true
	}
	return false
}

func (t *Timer) Reset() {
	t.running = false
	t.completed = false
	t.remaining = t.duration
}

// Progress is the elapsed fraction in [0, 1].
func (t *Timer) Progress() float64 {
	if t.duration == 0 {
		return 0
	}
	return float64(t.duration-t.remaining) / float64(t.duration)
}

// Remaining formats the time left as MM:SS.
func (t *Timer) Remaining() string {
	return utils.FormatCountdown(t.remaining)
}

func (t *Timer) Running() bool {
	return t.running
}

func (t *Timer) Minutes() int {
	return t.duration / 60
}

func (t *Timer) State() State {
	return State{
		DurationSeconds:  t.duration,
		RemainingSeconds: t.remaining,
		Running:          t.running,
		Completed:        t.completed,
	}
}
