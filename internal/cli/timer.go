package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/notifier"
	"github.com/julianstephens/daybook/internal/pomodoro"
	"github.com/julianstephens/daybook/internal/utils"
)

type TimerCmd struct {
	Minutes int `short:"m" help:"Session length in minutes (25, 15 or 5); defaults to the saved choice."`
}

func (c *TimerCmd) Validate() error {
	if c.Minutes != 0 && !slices.Contains(constants.TimerOptions, c.Minutes) {
		return fmt.Errorf("minutes must be one of %v", constants.TimerOptions)
	}
	return nil
}

func (c *TimerCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	if c.Minutes != 0 {
		if err := a.Pomodoro.SelectDuration(c.Minutes); err != nil {
			return err
		}
	}

	interval := ctx.TickInterval
	if interval == 0 {
		interval = constants.TimerTickInterval
	}

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(40))
	draw := func(s pomodoro.State) {
		done := 1.0
		if s.DurationSeconds > 0 {
			done = 1 - float64(s.RemainingSeconds)/float64(s.DurationSeconds)
		}
		ctx.printf("\r%s %s ", bar.ViewAs(done), utils.FormatCountdown(s.RemainingSeconds))
	}

	completed := false
	runner := pomodoro.NewRunner(a.Pomodoro.Timer, interval, draw, func() {
		completed = true
		notifier.Dispatch(ctx.Notifier, "Pomodoro", "Time's up! Take a break.")
	})

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctx.printf("Focus for %d minutes. Ctrl+C to stop.\n", a.Pomodoro.Timer.Minutes())
	draw(a.Pomodoro.Timer.State())
	runner.Start(sigCtx)
	runner.Wait()
	ctx.println()

	if completed {
		ctx.println("Time's up! Take a break.")
		return nil
	}
	ctx.printf("Timer stopped with %s remaining.\n", a.Pomodoro.Timer.Remaining())
	return nil
}
