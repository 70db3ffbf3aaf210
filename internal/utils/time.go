package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/puffless/internal/constants"
)

// DayKey returns the local calendar day of t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// StartOfDay returns local midnight of the calendar day containing t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	// Return the date at midnight in the specified timezone
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ParseDay parses a YYYY-MM-DD day key as local midnight.
func ParseDay(day string) (time.Time, error) {
	t, err := ParseDateInLocation(day, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
	}
	return t, nil
}

// DaysBetween returns the number of whole calendar days elapsed from `from` to `to`.
// A day counts once the wall clock of `to` reaches the wall clock of `from`, so the
// result is truncated toward zero and is negative when `to` is before `from`.
func DaysBetween(from, to time.Time) int {
	to = to.In(from.Location())

	days := civilDay(to) - civilDay(from)

	fromClock := from.Sub(StartOfDay(from))
	toClock := to.Sub(StartOfDay(to))
	switch {
	case days > 0 && toClock < fromClock:
		days--
	case days < 0 && toClock > fromClock:
		days++
	}
	return days
}

// civilDay numbers the calendar day of t in its own location. Unix seconds
// do not overflow where time.Duration would, past about 292 years.
func civilDay(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// HoursBetween returns the whole hours elapsed from `from` to `to`, truncated toward zero.
func HoursBetween(from, to time.Time) int {
	return int(to.Sub(from) / time.Hour)
}

// AddDays returns t moved by n calendar days, keeping the wall clock.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// ValidateHour checks that h is a valid hour of day (0-23).
func ValidateHour(h int) bool {
	return h >= 0 && h <= 23
}
