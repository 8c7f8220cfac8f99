package main

import (
	"github.com/alecthomas/kong"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/config"
	"github.com/julianstephens/daybook/internal/constants"
	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/events"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/notifier"
	"github.com/julianstephens/daybook/internal/storage"
)

func main() {
	var root cli.CLI
	ctx := kong.Parse(&root,
		kong.Name(constants.AppName),
		kong.Description("Mood, routines, reminders and a bullet journal in your terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(constants.EnvFileName)
	if err != nil {
		apperrors.Fatal(err)
	}
	cfg = cfg.With(config.Overrides{
		Store:    root.Store,
		Timezone: root.Timezone,
		Debug:    root.Debug,
	})

	configDir, err := cfg.Dir()
	if err != nil {
		apperrors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: configDir}); err != nil {
		apperrors.Fatal(err)
	}

	loc, err := cfg.Location()
	if err != nil {
		apperrors.Fatal(err)
	}

	opts, err := cfg.StoreOptions()
	if err != nil {
		apperrors.Fatal(err)
	}
	medium, err := storage.Open(opts)
	if err != nil {
		apperrors.Fatal(err)
	}
	logger.Debug("Opened store", "kind", storage.KindOf(opts.Locator))

	appCtx := &cli.Context{
		Config:    cfg,
		ConfigDir: configDir,
		Medium:    medium,
		Kind:      storage.KindOf(opts.Locator),
		Loc:       loc,
		Bus:       events.NewBus(),
		Notifier:  notifier.New(),
	}

	err = ctx.Run(appCtx)
	if closeErr := medium.Close(); closeErr != nil {
		logger.Warn("Failed to close store", "error", closeErr)
	}
	apperrors.Fatal(err)
	_ = logger.Close()
}
