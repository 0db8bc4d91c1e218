package domain

import "time"

// DateOnly truncates t to a calendar date in UTC. All due-date math in the
// engine operates on date-only values; time-of-day must never influence
// day differences.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date days calendar days after t.
func AddDays(t time.Time, days int) time.Time {
	return DateOnly(t).AddDate(0, 0, days)
}

// DaysBetween returns the whole number of days from 'from' to 'to'.
// Negative when 'to' is before 'from'.
func DaysBetween(from, to time.Time) int {
	f := DateOnly(from)
	t := DateOnly(to)
	return int(t.Sub(f).Hours() / 24)
}
