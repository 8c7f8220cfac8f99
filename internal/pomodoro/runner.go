package pomodoro

import (
	"context"
	"sync"
	"time"
)

// Runner drives a Timer from a wall-clock ticker on its own goroutine.
// The ticker only exists while the timer is running.
type Runner struct {
	mu         sync.Mutex
	timer      *Timer
	interval   time.Duration
	onTick     func(State)
	onComplete func()

	cancel context.CancelFunc
	done   chan struct{}
}

// NewRunner wraps t. onTick and onComplete may be nil; they are called
// from the runner goroutine.
func NewRunner(t *Timer, interval time.Duration, onTick func(State), onComplete func()) *Runner {
	return &Runner{
		timer:      t,
		interval:   interval,
		onTick:     onTick,
		onComplete: onComplete,
	}
}

// Start begins counting down. Starting an already running runner is a no-op.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done != nil {
		return
	}
	if !r.timer.Running() {
		r.timer.Toggle()
	}
	if !r.timer.Running() {
		// Toggle on a finished timer resets it; start the fresh countdown
		r.timer.Toggle()
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done
	go r.loop(ctx, done)
}

// Pause stops the countdown and waits for the goroutine to exit.
func (r *Runner) Pause() {
	r.mu.Lock()
	r.timer.Pause()
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Reset pauses and rewinds the timer.
func (r *Runner) Reset() {
	r.Pause()
	r.mu.Lock()
	r.timer.Reset()
	r.mu.Unlock()
}

// Wait blocks until the goroutine exits, either because the countdown
// finished, it was paused, or its context was cancelled.
func (r *Runner) Wait() {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer.State()
}

func (r *Runner) loop(ctx context.Context, done chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer func() {
		ticker.Stop()
		r.mu.Lock()
		if r.done == done {
			r.done = nil
			r.cancel = nil
		}
		r.mu.Unlock()
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			r.mu.Lock()
			r.timer.Pause()
			r.mu.Unlock()
			return
		case <-ticker.C:
			r.mu.Lock()
			finished := r.timer.Tick()
			st := r.timer.State()
			r.mu.Unlock()

			if r.onTick != nil {
				r.onTick(st)
			}
			if finished && r.onComplete != nil {
				r.onComplete()
			}
			if !st.Running {
				return
			}
		}
	}
}
