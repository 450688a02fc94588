package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/ShayCichocki/jrny/internal/config"
	"github.com/ShayCichocki/jrny/internal/journey"
	"github.com/ShayCichocki/jrny/internal/logging"
	"github.com/ShayCichocki/jrny/internal/planner"
	"github.com/ShayCichocki/jrny/internal/state"
	"github.com/ShayCichocki/jrny/internal/stories"
	"github.com/ShayCichocki/jrny/internal/streak"
)

// app bundles what every command needs: config, log, and the open store.
type app struct {
	cfg    *config.Config
	logger *logging.Logger
	db     *state.DB
}

// openApp loads config, opens the log and the database, and applies
// migrations. The caller must Close it.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dbPathFlag != "" {
		cfg.Storage.Path = dbPathFlag
	}
	if userFlag != "" {
		cfg.User.ID = userFlag
	}
	return openAppWithConfig(cfg)
}

func openAppWithConfig(cfg *config.Config) (*app, error) {
	logger, err := logging.New(cfg.Log.Path)
	if err != nil {
		// The log is a debugging aid; commands still work without it.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logger = logging.Nop()
	}

	path := cfg.Storage.Path
	if path == "" {
		path = state.DefaultDBPath()
	}
	db, err := state.OpenWithDriver(path, cfg.Storage.Driver)
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		logger.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	logger.Log("opened %s (driver %s) for user %s", path, db.Driver(), cfg.User.ID)
	return &app{cfg: cfg, logger: logger, db: db}, nil
}

func (a *app) Close() error {
	err := a.db.Close()
	a.logger.Close()
	return err
}

// creator builds a journey creator. When no generator can be built the
// creator still works and journeys keep an empty plan.
func (a *app) creator(ctx context.Context, withPlan bool) *journey.Creator {
	cfg := journey.CreatorConfig{
		Store:   a.db,
		Logger:  a.logger,
		UserID:  a.cfg.User.ID,
		Timeout: a.cfg.AI.Timeout,
	}
	if withPlan {
		gen, err := planner.New(ctx, a.cfg, a.logger)
		switch {
		case errors.Is(err, config.ErrNoAPIKey):
			printStatus("!", "No API key configured, skipping plan generation", color.FgYellow)
		case err != nil:
			printStatus("!", fmt.Sprintf("Plan generation unavailable: %v", err), color.FgYellow)
		case gen != nil:
			cfg.Generator = gen
		}
	}
	return journey.NewCreator(cfg)
}

func (a *app) coordinator(n journey.Notifier) *journey.Coordinator {
	return journey.NewCoordinator(a.db,
		journey.WithNotifier(n),
		journey.WithLogger(a.logger),
	)
}

func (a *app) streak() *streak.Tracker {
	return streak.NewTracker(a.db.KV(), streak.WithLogger(a.logger))
}

func (a *app) stories() *stories.Tracker {
	return stories.NewTracker(a.db.KV(), nil, nil)
}
