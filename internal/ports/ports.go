package ports

import (
	"context"
	"errors"

	"mini-time-tracker/internal/domain"
)

// ErrStorage wraps every failure coming out of an EntryStore implementation.
// Callers match it with errors.Is and never show the wrapped detail to users.
var ErrStorage = errors.New("storage failure")

// EntryStore is the durable, append-only collection of time entries.
type EntryStore interface {
	// ListAll returns every entry ordered by date descending, then
	// creation time descending.
	ListAll(ctx context.Context) ([]domain.TimeEntry, error)
	// SumHours returns the total hours recorded for date, 0 if none.
	SumHours(ctx context.Context, date string) (float64, error)
	// Insert persists e and returns it with ID and CreatedAt assigned.
	Insert(ctx context.Context, e domain.NewEntry) (domain.TimeEntry, error)
}

// EntriesAPI is the client-side view of the entry service.
type EntriesAPI interface {
	ListEntries(ctx context.Context) ([]domain.TimeEntry, error)
	CreateEntry(ctx context.Context, e domain.NewEntry) (domain.TimeEntry, error)
}
