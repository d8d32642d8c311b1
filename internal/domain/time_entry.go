package domain

import "time"

// DateLayout is the calendar date format used for TimeEntry.Date.
const DateLayout = "2006-01-02"

// TimeEntry represents one record of hours worked on a project on a date.
type TimeEntry struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`
	Project     string    `json:"project"`
	Hours       float64   `json:"hours"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewEntry is a validated candidate ready to be inserted. The store assigns
// ID and CreatedAt.
type NewEntry struct {
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Project     string  `json:"project" validate:"required"`
	Hours       float64 `json:"hours" validate:"gt=0"`
	Description string  `json:"description" validate:"required"`
}

// Candidate is an entry as it arrives on the wire: a decoded JSON object
// whose fields have not been checked for presence or type.
type Candidate map[string]any
