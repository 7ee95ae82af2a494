package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidDate the date is not in YYYY-MM-DD form
	ErrInvalidDate = errors.New("domain: invalid date")
	// ErrDateInPast the date is before today
	ErrDateInPast = errors.New("domain: date is in the past")
)

// ParseDate parses a calendar date in DateFormat
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateFormat, date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// CheckBookableDate accepts today and later dates relative to now's calendar day.
// Hours of today that have already passed are still listed.
func CheckBookableDate(date string, now time.Time) error {
	if _, err := ParseDate(date); err != nil {
		return err
	}
	if date < now.Format(DateFormat) {
		return ErrDateInPast
	}
	return nil
}

// Today returns now's calendar day in DateFormat
func Today(now time.Time) string {
	return now.Format(DateFormat)
}
