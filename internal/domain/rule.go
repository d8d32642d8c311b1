package domain

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DailyCapHours is the maximum number of hours that may be recorded for a
// single date.
const DailyCapHours = 24

// capPrecision is the number of fractional digits kept when comparing a day
// total against the cap, so that float noise from SUM() does not reject an
// exact 24.
const capPrecision = 6

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseCandidate coerces untyped wire data into a NewEntry. Text fields must
// be non-blank strings, hours may be a JSON number or a numeric string.
func ParseCandidate(c Candidate) (NewEntry, error) {
	date, okDate := textField(c, "date")
	project, okProject := textField(c, "project")
	description, okDesc := textField(c, "description")
	rawHours, okHours := c["hours"]
	if !okDate || !okProject || !okDesc || !okHours {
		return NewEntry{}, ErrMissingField
	}

	hours, err := ParseHours(rawHours)
	if err != nil {
		return NewEntry{}, err
	}

	e := NewEntry{
		Date:        date,
		Project:     project,
		Hours:       hours,
		Description: description,
	}
	if err := e.Validate(); err != nil {
		return NewEntry{}, err
	}
	return e, nil
}

// Validate checks an already typed entry. It is used directly by clients that
// build a NewEntry themselves and by ParseCandidate after coercion.
func (e NewEntry) Validate() error {
	if math.IsNaN(e.Hours) || math.IsInf(e.Hours, 0) {
		return ErrInvalidHours
	}
	err := validate.Struct(e)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	var hoursBad, dateBad bool
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return ErrMissingField
		}
		switch fe.Field() {
		case "Hours":
			hoursBad = true
		case "Date":
			dateBad = true
		}
	}
	switch {
	case hoursBad:
		return ErrInvalidHours
	case dateBad:
		return ErrInvalidDate
	}
	return err
}

// ParseHours converts a wire value into a finite, positive number of hours.
func ParseHours(v any) (float64, error) {
	var (
		f   float64
		err error
	)
	switch h := v.(type) {
	case json.Number:
		f, err = strconv.ParseFloat(strings.TrimSpace(h.String()), 64)
	case float64:
		f = h
	case float32:
		f = float64(h)
	case int:
		f = float64(h)
	case int64:
		f = float64(h)
	case string:
		s := strings.TrimSpace(h)
		if s == "" {
			return 0, ErrInvalidHours
		}
		f, err = strconv.ParseFloat(s, 64)
	default:
		return 0, ErrInvalidHours
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, ErrInvalidHours
	}
	return f, nil
}

// CheckDailyCap rejects hours that would push the day total for a date
// above DailyCapHours, given the current total already recorded. Only the
// stored sum is rounded: it carries float noise from SUM(), the new hours
// are compared exactly.
func CheckDailyCap(current, hours float64) error {
	total := decimal.NewFromFloat(current).
		Round(capPrecision).
		Add(decimal.NewFromFloat(hours))
	if total.GreaterThan(decimal.NewFromInt(DailyCapHours)) {
		return ErrDailyLimit
	}
	return nil
}

func textField(c Candidate, key string) (string, bool) {
	v, ok := c[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}
