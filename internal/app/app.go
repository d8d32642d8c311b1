package app

import (
	"context"
	"log/slog"

	"mini-time-tracker/internal/adapter/sqlstore"
	"mini-time-tracker/internal/config"
	"mini-time-tracker/internal/migrate"
	"mini-time-tracker/internal/usecase"
)

// App wires the store and the entry use case.
type App struct {
	log   *slog.Logger
	store *sqlstore.Store
	uc    *usecase.EntryUseCase
}

// New opens storage, applies pending migrations and builds the use case. A
// missing or unusable DATABASE_URL is returned as an error; callers treat it
// as fatal.
func New(ctx context.Context, log *slog.Logger, cfg config.Config) (*App, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}
	store, err := sqlstore.Open(ctx, cfg.Database.URL, log)
	if err != nil {
		return nil, err
	}
	// Run migrations before the store is used
	if err := migrate.Run(ctx, store.DB(), string(store.Dialect()), log); err != nil {
		store.Close()
		return nil, err
	}

	uc := &usecase.EntryUseCase{
		Log:       log,
		Store:     store,
		StrictCap: cfg.Entries.StrictDailyCap,
	}
	if uc.StrictCap {
		log.Info("strict daily cap enabled: creates are serialised per date")
	}
	return &App{log: log, store: store, uc: uc}, nil
}

// Entries exposes the use case for in-process callers.
func (a *App) Entries() *usecase.EntryUseCase { return a.uc }

// Close releases the storage handle.
func (a *App) Close() error { return a.store.Close() }
