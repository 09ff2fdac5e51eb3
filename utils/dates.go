package utils

import (
	"fmt"
	"time"
)

// DayLayout is the wire and map-key format for calendar days.
const DayLayout = "2006-01-02"

// Days are UTC calendar days throughout the service.

// DayStart truncates t to midnight UTC of its calendar day.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func AddDays(day time.Time, n int) time.Time {
	return DayStart(day).AddDate(0, 0, n)
}

func DayKey(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// DaysBetween counts whole days from a to b (negative when b is earlier).
func DaysBetween(a, b time.Time) int {
	return int(DayStart(b).Sub(DayStart(a)).Hours() / 24)
}

// WeekStart returns the Sunday that starts day's week.
func WeekStart(day time.Time) time.Time {
	day = DayStart(day)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func MonthStart(day time.Time) time.Time {
	day = day.UTC()
	return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// ParseDay accepts "2006-01-02" or an RFC3339 timestamp.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse(DayLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return DayStart(t), nil
}
