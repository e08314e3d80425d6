// Package dateutil holds the calendar arithmetic shared by the scheduler,
// the streak calculator and the aggregators. All functions work in the
// location of the time they are given.
package dateutil

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// StartOfDay returns midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// AddDays moves t by n calendar days keeping the wall clock time.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DaysBetween returns the number of calendar days from a's day to b's day.
// It is negative when b is before a.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from) / day)
}

// DaysUntil returns the number of started 24h periods between now and target,
// rounded up. Past targets give zero or negative values.
func DaysUntil(target, now time.Time) int {
	return int(math.Ceil(float64(target.Sub(now)) / float64(day)))
}

// StartOfWeek returns midnight of the Sunday starting t's week.
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

// StartOfMonth returns midnight of the first day of the given month.
func StartOfMonth(year int, month time.Month, loc *time.Location) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, loc)
}

// DayOfYear returns the 1-based ordinal day of t's year.
func DayOfYear(t time.Time) int {
	return t.YearDay()
}

// DayKey formats t's calendar day as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
