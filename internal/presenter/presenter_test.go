package presenter

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mini-time-tracker/internal/domain"
)

type fakeAPI struct {
	entries   []domain.TimeEntry
	listErr   error
	createErr error
	created   []domain.NewEntry
	lists     int
}

func (f *fakeAPI) ListEntries(context.Context) ([]domain.TimeEntry, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.TimeEntry(nil), f.entries...), nil
}

func (f *fakeAPI) CreateEntry(_ context.Context, e domain.NewEntry) (domain.TimeEntry, error) {
	if f.createErr != nil {
		return domain.TimeEntry{}, f.createErr
	}
	f.created = append(f.created, e)
	te := domain.TimeEntry{ID: int64(len(f.entries) + 1), Date: e.Date, Project: e.Project, Hours: e.Hours, Description: e.Description}
	f.entries = append([]domain.TimeEntry{te}, f.entries...)
	return te, nil
}

var today = time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)

func TestNewForm(t *testing.T) {
	f := NewForm(today, []string{"Internal", "Client A"})
	assert.Equal(t, Form{Date: "2024-01-02", Project: "Internal"}, f)
	assert.Equal(t, "", NewForm(today, nil).Project)
}

func TestPrevalidate(t *testing.T) {
	ok := Form{Date: "2024-01-01", Project: "P", Hours: "1.5", Description: "x"}
	e, err := Prevalidate(ok)
	require.NoError(t, err)
	assert.Equal(t, 1.5, e.Hours)

	tests := []struct {
		name string
		mod  func(*Form)
		want error
	}{
		{"no date", func(f *Form) { f.Date = "" }, domain.ErrMissingField},
		{"no project", func(f *Form) { f.Project = " " }, domain.ErrMissingField},
		{"no hours", func(f *Form) { f.Hours = "" }, domain.ErrMissingField},
		{"no description", func(f *Form) { f.Description = "" }, domain.ErrMissingField},
		{"zero", func(f *Form) { f.Hours = "0" }, domain.ErrInvalidHours},
		{"negative", func(f *Form) { f.Hours = "-1" }, domain.ErrInvalidHours},
		{"text", func(f *Form) { f.Hours = "abc" }, domain.ErrInvalidHours},
		{"infinite", func(f *Form) { f.Hours = "Inf" }, domain.ErrInvalidHours},
		{"bad date", func(f *Form) { f.Date = "2024/01/01" }, domain.ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ok
			tt.mod(&f)
			_, err := Prevalidate(f)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSession_LoadAndDerivedViews(t *testing.T) {
	api := &fakeAPI{entries: []domain.TimeEntry{
		{ID: 3, Date: "2024-01-02", Hours: 3},
		{ID: 2, Date: "2024-01-01", Hours: 2},
		{ID: 1, Date: "2024-01-01", Hours: 1},
	}}
	s := NewSession(api, today, []string{"P"})

	require.NoError(t, s.Load(context.Background()))
	assert.False(t, s.Loading)
	assert.Equal(t, []string{"2024-01-02", "2024-01-01"}, s.Dates())
	assert.Equal(t, 3.0, s.DayTotal("2024-01-01"))
	assert.Equal(t, 6.0, s.GrandTotal())
	assert.Equal(t, []int64{2, 1}, []int64{s.Groups()["2024-01-01"][0].ID, s.Groups()["2024-01-01"][1].ID})
}

func TestSession_LoadFailureSetsError(t *testing.T) {
	s := NewSession(&fakeAPI{listErr: errors.New("Failed to load entries")}, today, nil)
	assert.Error(t, s.Load(context.Background()))
	assert.Equal(t, "Failed to load entries", s.Err)
	assert.False(t, s.Loading)
}

func TestSession_SubmitResetsFormAndReloads(t *testing.T) {
	api := &fakeAPI{}
	s := NewSession(api, today, []string{"Client A", "Internal"})
	s.Form.Hours = "2"
	s.Form.Description = "reviews"
	s.Err = "stale error"

	require.NoError(t, s.Submit(context.Background()))

	assert.Equal(t, Form{Date: "2024-01-02", Project: "Client A"}, s.Form)
	assert.Empty(t, s.Err)
	assert.False(t, s.Saving)
	assert.Equal(t, 1, api.lists)
	require.Len(t, s.Entries, 1)
	assert.Equal(t, "reviews", s.Entries[0].Description)
}

func TestSession_SubmitPrevalidationFailure(t *testing.T) {
	api := &fakeAPI{}
	s := NewSession(api, today, []string{"P"})
	s.Form.Hours = "abc"
	s.Form.Description = "x"

	err := s.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidHours)
	assert.Equal(t, domain.ErrInvalidHours.Message, s.Err)
	assert.Empty(t, api.created, "invalid input never reaches the server")
	assert.Equal(t, "abc", s.Form.Hours, "form kept for correction")
}

func TestSession_SubmitServerRejection(t *testing.T) {
	api := &fakeAPI{createErr: errors.New(domain.ErrDailyLimit.Message)}
	s := NewSession(api, today, []string{"P"})
	s.Form.Hours = "5"
	s.Form.Description = "x"

	assert.Error(t, s.Submit(context.Background()))
	assert.Equal(t, domain.ErrDailyLimit.Message, s.Err)
	assert.Equal(t, "5", s.Form.Hours)
	assert.False(t, s.Saving)
	assert.Zero(t, api.lists)
}

func TestSession_SingleSubmissionInFlight(t *testing.T) {
	s := NewSession(&fakeAPI{}, today, []string{"P"})
	s.Form.Hours = "1"
	s.Form.Description = "x"

	_, err := s.BeginSubmit()
	require.NoError(t, err)
	assert.True(t, s.Saving)

	_, err = s.BeginSubmit()
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	assert.True(t, s.FinishSubmit(nil))
	_, err = s.BeginSubmit()
	assert.ErrorIs(t, err, domain.ErrMissingField, "hours and description were reset")
}

func TestHistory(t *testing.T) {
	out := History([]domain.TimeEntry{
		{Date: "2024-01-02", Project: "Client A", Hours: 3, Description: "feature"},
		{Date: "2024-01-01", Project: "Internal", Hours: 2, Description: "standup"},
		{Date: "2024-01-01", Project: "R&D", Hours: 1.25, Description: "spike"},
	})

	assert.Contains(t, out, "Grand total: 6.25")
	assert.Contains(t, out, "2024-01-02  total: 3")
	assert.Contains(t, out, "2024-01-01  total: 3.25")
	assert.Contains(t, out, "spike")
	assert.Less(t, bytes.Index([]byte(out), []byte("2024-01-02")), bytes.Index([]byte(out), []byte("2024-01-01")))
	assert.Less(t, bytes.Index([]byte(out), []byte("standup")), bytes.Index([]byte(out), []byte("spike")))
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil))
	assert.Contains(t, buf.String(), "Grand total: 0")
	assert.Contains(t, buf.String(), "No entries yet.")
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "3", FormatHours(3))
	assert.Equal(t, "2.5", FormatHours(2.5))
	assert.Equal(t, "0.25", FormatHours(0.25))
}
