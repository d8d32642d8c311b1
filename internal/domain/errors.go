package domain

import "errors"

// Kind classifies a rejected candidate.
type Kind string

const (
	KindMissingField Kind = "missing_field"
	KindInvalidHours Kind = "invalid_hours"
	KindInvalidDate  Kind = "invalid_date"
	KindDailyLimit   Kind = "daily_limit"
)

// Error is a user-correctable rejection. Message is safe to show to clients.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

var (
	ErrMissingField = &Error{Kind: KindMissingField, Message: "All fields are required"}
	ErrInvalidHours = &Error{Kind: KindInvalidHours, Message: "Hours must be a positive number"}
	ErrInvalidDate  = &Error{Kind: KindInvalidDate, Message: "Date must be in YYYY-MM-DD format"}
	ErrDailyLimit   = &Error{Kind: KindDailyLimit, Message: "Total hours per day cannot exceed 24"}
)

// IsInputError reports whether err is a rejection the user can fix by
// changing the input, as opposed to a storage or transport failure.
func IsInputError(err error) bool {
	var de *Error
	return errors.As(err, &de)
}

// KindOf returns the Kind of err, or "" if err is not a domain error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
