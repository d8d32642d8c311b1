package usecase

import (
	"context"
	"errors"
	"log/slog"

	"mini-time-tracker/internal/domain"
	"mini-time-tracker/internal/ports"
)

// EntryUseCase lists and creates time entries, enforcing the daily cap.
//
// By default the cap check and the insert are two separate store calls, so
// concurrent creates for the same date can jointly exceed the cap. StrictCap
// serialises creates per date within this process; it does not coordinate
// several processes sharing one database.
type EntryUseCase struct {
	Log       *slog.Logger
	Store     ports.EntryStore
	StrictCap bool

	locks dateLocks
}

var errNotInitialized = errors.New("usecase not initialized: missing dependencies")

// List returns all entries in store order.
func (uc *EntryUseCase) List(ctx context.Context) ([]domain.TimeEntry, error) {
	if uc.Store == nil {
		return nil, errNotInitialized
	}
	entries, err := uc.Store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	uc.Log.Debug("listed entries", slog.Int("count", len(entries)))
	return entries, nil
}

// Ping reports whether the store is reachable, when the store supports it.
func (uc *EntryUseCase) Ping(ctx context.Context) error {
	if uc.Store == nil {
		return errNotInitialized
	}
	if p, ok := uc.Store.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Summary returns the entries grouped by date with per-day and grand totals.
func (uc *EntryUseCase) Summary(ctx context.Context) (domain.Summary, error) {
	entries, err := uc.List(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(entries), nil
}

// Create validates c and, if the day still has room, stores it. Rejections
// are *domain.Error values and leave the store untouched.
func (uc *EntryUseCase) Create(ctx context.Context, c domain.Candidate) (domain.TimeEntry, error) {
	if uc.Store == nil {
		return domain.TimeEntry{}, errNotInitialized
	}
	e, err := domain.ParseCandidate(c)
	if err != nil {
		uc.Log.Info("entry rejected", slog.String("reason", string(domain.KindOf(err))))
		return domain.TimeEntry{}, err
	}

	if uc.StrictCap {
		unlock := uc.locks.lock(e.Date)
		defer unlock()
	}

	current, err := uc.Store.SumHours(ctx, e.Date)
	if err != nil {
		return domain.TimeEntry{}, err
	}
	if err := domain.CheckDailyCap(current, e.Hours); err != nil {
		uc.Log.Info("entry rejected",
			slog.String("reason", string(domain.KindDailyLimit)),
			slog.String("date", e.Date),
			slog.Float64("current", current),
			slog.Float64("hours", e.Hours),
		)
		return domain.TimeEntry{}, err
	}

	created, err := uc.Store.Insert(ctx, e)
	if err != nil {
		return domain.TimeEntry{}, err
	}
	uc.Log.Info("entry created",
		slog.Int64("id", created.ID),
		slog.String("date", created.Date),
		slog.String("project", created.Project),
		slog.Float64("hours", created.Hours),
	)
	return created, nil
}
