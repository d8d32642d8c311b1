package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"mini-time-tracker/internal/domain"
	"mini-time-tracker/internal/ports"
)

// Store implements ports.EntryStore on top of database/sql.
type Store struct {
	db      *sql.DB
	dialect Dialect
	log     *slog.Logger
	now     func() time.Time
}

// Open connects to the backend identified by dsn (see ParseDSN) and pings it.
func Open(ctx context.Context, dsn string, log *slog.Logger) (*Store, error) {
	dialect, driverDSN, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	if dialect == DialectSQLite {
		driverDSN = withBusyTimeout(driverDSN)
	}
	db, err := sql.Open(string(dialect), driverDSN)
	if err != nil {
		return nil, err
	}
	switch dialect {
	case DialectSQLite:
		// One connection: SQLite has a single writer, and :memory: databases
		// live only as long as their connection.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	default:
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: ping %s: %w", dialect, err)
	}
	log.Info("storage connected", slog.String("dialect", string(dialect)))
	return New(db, dialect, log), nil
}

// sqliteBusyTimeout is applied through the DSN so that every connection the
// pool opens waits for locks instead of failing with SQLITE_BUSY.
const sqliteBusyTimeout = "_pragma=busy_timeout(5000)"

func withBusyTimeout(dsn string) string {
	if strings.Contains(dsn, "busy_timeout") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqliteBusyTimeout
	}
	return dsn + "?" + sqliteBusyTimeout
}

// New wraps an already opened database handle.
func New(db *sql.DB, dialect Dialect, log *slog.Logger) *Store {
	return &Store{db: db, dialect: dialect, log: log, now: time.Now}
}

// DB exposes the underlying handle for migrations.
func (s *Store) DB() *sql.DB { return s.db }

// Dialect reports which backend the store talks to.
func (s *Store) Dialect() Dialect { return s.dialect }

// Ping checks that the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return storageErr("ping", err)
	}
	return nil
}

const listQuery = `
SELECT id, entry_date, project, hours, description, created_at
FROM time_entries
ORDER BY entry_date DESC, created_at DESC, id DESC`

// ListAll returns all entries, newest date first and, within a date, most
// recently created first.
func (s *Store) ListAll(ctx context.Context) ([]domain.TimeEntry, error) {
	rows, err := s.db.QueryContext(ctx, listQuery)
	if err != nil {
		return nil, storageErr("list entries", err)
	}
	defer rows.Close()

	out := make([]domain.TimeEntry, 0)
	for rows.Next() {
		var (
			e       domain.TimeEntry
			created int64
		)
		if err := rows.Scan(&e.ID, &e.Date, &e.Project, &e.Hours, &e.Description, &created); err != nil {
			return nil, storageErr("scan entry", err)
		}
		e.CreatedAt = time.UnixMicro(created).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list entries", err)
	}
	return out, nil
}

// SumHours returns the total hours recorded for date.
func (s *Store) SumHours(ctx context.Context, date string) (float64, error) {
	const q = `SELECT COALESCE(SUM(hours), 0) FROM time_entries WHERE entry_date = ?`
	var sum float64
	if err := s.db.QueryRowContext(ctx, q, date).Scan(&sum); err != nil {
		return 0, storageErr("sum hours", err)
	}
	return sum, nil
}

// Insert appends a new entry, assigning its ID and creation time.
func (s *Store) Insert(ctx context.Context, e domain.NewEntry) (domain.TimeEntry, error) {
	const q = `
INSERT INTO time_entries
  (entry_date, project, hours, description, created_at)
VALUES
  (?, ?, ?, ?, ?)`
	created := s.now().UTC().Truncate(time.Microsecond)
	res, err := s.db.ExecContext(ctx, q, e.Date, e.Project, e.Hours, e.Description, created.UnixMicro())
	if err != nil {
		return domain.TimeEntry{}, storageErr("insert entry", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.TimeEntry{}, storageErr("insert entry id", err)
	}
	s.log.Debug("entry stored", slog.Int64("id", id), slog.String("date", e.Date), slog.Float64("hours", e.Hours))
	return domain.TimeEntry{
		ID:          id,
		Date:        e.Date,
		Project:     e.Project,
		Hours:       e.Hours,
		Description: e.Description,
		CreatedAt:   created,
	}, nil
}

// Close closes the underlying DB.
func (s *Store) Close() error { return s.db.Close() }

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ports.ErrStorage, op, err)
}

var _ ports.EntryStore = (*Store)(nil)
