package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical stored and rendered form of a calendar date.
const DateLayout = "2006-01-02"

// NormalizeDate converts a human DD/MM/YYYY date, an ISO YYYY-MM-DD date or an
// RFC 3339 timestamp into midnight UTC of that calendar day. The same day
// always normalizes to the same instant regardless of the input shape.
func NormalizeDate(input string) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrInvalidDateFormat)
	}

	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) != 3 || len(parts[2]) != 4 || len(parts[0]) > 2 || len(parts[1]) > 2 {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, input)
		}
		return civilDate(parts[2], parts[1], parts[0], input)
	}

	if len(s) == len(DateLayout) {
		parts := strings.Split(s, "-")
		if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, input)
		}
		return civilDate(parts[0], parts[1], parts[2], input)
	}

	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, input)
	}
	// The calendar day is the UTC one, not the one in the input's offset.
	return TruncateDate(ts), nil
}

// FormatDate renders t as YYYY-MM-DD in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// TruncateDate drops the time-of-day of t after converting it to UTC.
func TruncateDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// civilDate builds a UTC date and rejects components that time.Date would
// silently roll over (Feb 30 becomes Mar 1 otherwise).
func civilDate(year, month, day, input string) (time.Time, error) {
	if !digits(year) || !digits(month) || !digits(day) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, input)
	}

	y, errY := strconv.Atoi(year)
	m, errM := strconv.Atoi(month)
	d, errD := strconv.Atoi(day)
	if errY != nil || errM != nil || errD != nil || y < 1 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, input)
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, fmt.Errorf("%w: %q is not a calendar date", ErrInvalidDateFormat, input)
	}
	return t, nil
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
