package presenter

import (
	"strings"
	"time"

	"mini-time-tracker/internal/domain"
)

// Form holds the raw text of the entry form, exactly as typed.
type Form struct {
	Date        string
	Project     string
	Hours       string
	Description string
}

// NewForm returns a form preset to today and the first known project.
func NewForm(today time.Time, projects []string) Form {
	f := Form{Date: today.Format(domain.DateLayout)}
	if len(projects) > 0 {
		f.Project = projects[0]
	}
	return f
}

// Prevalidate mirrors the server rule so obvious mistakes are reported
// without a round trip. The server checks again regardless.
func Prevalidate(f Form) (domain.NewEntry, error) {
	e := domain.NewEntry{
		Date:        strings.TrimSpace(f.Date),
		Project:     strings.TrimSpace(f.Project),
		Description: strings.TrimSpace(f.Description),
	}
	if e.Date == "" || e.Project == "" || e.Description == "" || strings.TrimSpace(f.Hours) == "" {
		return domain.NewEntry{}, domain.ErrMissingField
	}
	hours, err := domain.ParseHours(f.Hours)
	if err != nil {
		return domain.NewEntry{}, err
	}
	e.Hours = hours
	if err := e.Validate(); err != nil {
		return domain.NewEntry{}, err
	}
	return e, nil
}

// afterSubmit clears the per-entry fields and keeps date and project for
// rapid consecutive entry.
func (f Form) afterSubmit() Form {
	f.Hours = ""
	f.Description = ""
	return f
}
