package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/events"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/tui"
	"github.com/julianstephens/daybook/internal/watch"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// File-backed media can be edited by a second daybook process; reload on change.
	if fb, ok := ctx.Medium.(storage.FileBacked); ok && ctx.Bus != nil {
		w, err := watch.New(fb.FilePath(), constants.WatchDebounce, func() {
			ctx.Bus.Publish(events.Event{Kind: events.KindExternal})
		})
		if err != nil {
			logger.Warn("File watcher unavailable", "error", err)
		} else if err := w.Start(runCtx); err != nil {
			logger.Warn("File watcher failed to start", "error", err)
			w.Stop()
		} else {
			defer w.Stop()
		}
	}

	model := tui.NewModel(a, tui.Options{Now: ctx.Now, Notifier: ctx.Notifier})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited: %w", err)
	}
	return nil
}
