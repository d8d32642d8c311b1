package presenter

import (
	"context"
	"errors"
	"time"

	"mini-time-tracker/internal/domain"
	"mini-time-tracker/internal/ports"
)

// ErrSubmitInFlight is returned when a create is requested while a previous
// one has not finished.
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// Session is the client state: the loaded entries, the form and a single
// error message. It is not safe for concurrent use; interactive front ends
// drive it from one goroutine through the Begin/Finish pairs.
type Session struct {
	api      ports.EntriesAPI
	Projects []string

	Form    Form
	Entries []domain.TimeEntry
	Loading bool
	Saving  bool
	Err     string
}

func NewSession(api ports.EntriesAPI, today time.Time, projects []string) *Session {
	return &Session{
		api:      api,
		Projects: projects,
		Form:     NewForm(today, projects),
	}
}

// Load re-fetches the full entry list.
func (s *Session) Load(ctx context.Context) error {
	s.BeginLoad()
	entries, err := s.api.ListEntries(ctx)
	s.FinishLoad(entries, err)
	return err
}

// BeginLoad clears the error and marks the list as loading.
func (s *Session) BeginLoad() {
	s.Err = ""
	s.Loading = true
}

// FinishLoad stores the result of a list call.
func (s *Session) FinishLoad(entries []domain.TimeEntry, err error) {
	s.Loading = false
	if err != nil {
		s.Err = err.Error()
		return
	}
	s.Entries = entries
}

// Submit validates the form, creates the entry and reloads the list.
func (s *Session) Submit(ctx context.Context) error {
	e, err := s.BeginSubmit()
	if err != nil {
		return err
	}
	_, err = s.api.CreateEntry(ctx, e)
	if !s.FinishSubmit(err) {
		return err
	}
	return s.Load(ctx)
}

// BeginSubmit clears the previous error and prevalidates the form. On
// success the session is marked as saving and the entry to send is returned.
func (s *Session) BeginSubmit() (domain.NewEntry, error) {
	if s.Saving {
		return domain.NewEntry{}, ErrSubmitInFlight
	}
	s.Err = ""
	e, err := Prevalidate(s.Form)
	if err != nil {
		s.Err = err.Error()
		return domain.NewEntry{}, err
	}
	s.Saving = true
	return e, nil
}

// FinishSubmit records the outcome of a create call and reports whether it
// succeeded, in which case the caller should reload the list.
func (s *Session) FinishSubmit(err error) bool {
	s.Saving = false
	if err != nil {
		s.Err = err.Error()
		return false
	}
	s.Form = s.Form.afterSubmit()
	return true
}

// Groups returns the loaded entries bucketed by date.
func (s *Session) Groups() map[string][]domain.TimeEntry {
	return domain.GroupByDate(s.Entries)
}

// Dates returns the dates present in the loaded entries, newest first.
func (s *Session) Dates() []string {
	return domain.SortedDates(s.Groups())
}

// DayTotal returns the hours recorded on date among the loaded entries.
func (s *Session) DayTotal(date string) float64 {
	return domain.SumHours(s.Groups()[date])
}

// GrandTotal returns the hours across all loaded entries.
func (s *Session) GrandTotal() float64 {
	return domain.SumHours(s.Entries)
}
