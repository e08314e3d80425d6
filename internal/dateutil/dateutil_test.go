package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartAndEndOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2026, 3, 14, 9, 26, 53, 589, loc)

	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, loc), StartOfDay(ts))

	end := EndOfDay(ts)
	assert.Equal(t, time.Date(2026, 3, 14, 23, 59, 59, 999999999, loc), end)
	assert.True(t, end.Add(time.Nanosecond).Equal(time.Date(2026, 3, 15, 0, 0, 0, 0, loc)))
}

func TestAddDaysKeepsWallClock(t *testing.T) {
	ts := time.Date(2026, 1, 31, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 2, 1, 18, 30, 0, 0, time.UTC), AddDays(ts, 1))
	assert.Equal(t, time.Date(2026, 3, 30, 18, 30, 0, 0, time.UTC), AddDays(ts, 58))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 5, 1, 23, 0, 0, 0, time.UTC)
	b := time.Date(2026, 5, 2, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, DaysBetween(a, b))
	assert.Equal(t, -1, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a.Add(30*time.Minute)))
	assert.Equal(t, 365, DaysBetween(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, DaysUntil(now.Add(time.Hour), now))
	assert.Equal(t, 1, DaysUntil(now.Add(24*time.Hour), now))
	assert.Equal(t, 2, DaysUntil(now.Add(25*time.Hour), now))
	assert.Equal(t, 0, DaysUntil(now, now))
	assert.Equal(t, 0, DaysUntil(now.Add(-time.Hour), now))
}

func TestStartOfWeek(t *testing.T) {
	wed := time.Date(2026, 10, 21, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), StartOfWeek(wed))

	sun := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), StartOfWeek(sun))
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "2026-02-03", DayKey(time.Date(2026, 2, 3, 22, 0, 0, 0, time.UTC)))
	assert.Equal(t, 34, DayOfYear(time.Date(2026, 2, 3, 22, 0, 0, 0, time.UTC)))
}
