package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-planner/internal/config"
	"github.com/phrazzld/scry-planner/internal/domain"
	"github.com/phrazzld/scry-planner/internal/domain/srs"
	"github.com/phrazzld/scry-planner/internal/platform/filestore"
	"github.com/phrazzld/scry-planner/internal/platform/postgres"
	"github.com/phrazzld/scry-planner/internal/service"
	"github.com/phrazzld/scry-planner/internal/store"
	"github.com/spf13/afero"
)

// plannerStore is what the planner needs from a storage backend.
type plannerStore interface {
	store.TaskStore
	store.SettingsStore
}

// application holds the shared dependencies of a command run so they can be
// released together.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	db      *sql.DB
	store   plannerStore
	planner service.PlannerService
}

// newApplication opens the configured store and builds the planner on it.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	fs afero.Fs,
) (*application, error) {
	loc, err := cfg.Calendar.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar time zone: %w", err)
	}

	app := &application{config: cfg, logger: logger}
	if err := app.openStore(ctx, fs); err != nil {
		return nil, err
	}

	app.planner = service.NewPlannerService(
		app.store,
		app.store,
		srs.NewDefaultService(),
		nil,
		loc,
		logger,
	)
	return app, nil
}

// openStore selects the storage backend. Configured review intervals become
// the settings reported before any are saved.
func (app *application) openStore(ctx context.Context, fs afero.Fs) error {
	defaults := domain.DefaultSettings()
	defaults.ReviewIntervals = app.config.Reviews

	switch app.config.Storage.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, app.config.Storage.DatabaseURL)
		if err != nil {
			return err
		}
		app.db = db
		app.store = postgres.NewStore(db, app.logger, postgres.WithDefaultSettings(defaults))
		app.logger.Info("using postgres storage")

	case config.DriverFile:
		app.store = filestore.New(fs, app.config.Storage.DataDir, app.logger,
			filestore.WithDefaultSettings(defaults))
		app.logger.Info("using file storage", slog.String("data_dir", app.config.Storage.DataDir))

	default:
		return fmt.Errorf("unsupported storage driver %q", app.config.Storage.Driver)
	}
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", slog.String("error", err.Error()))
		}
	}
}
