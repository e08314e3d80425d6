// Package streak computes consecutive-day activity streaks.
package streak

import (
	"sort"
	"time"

	"github.com/example/studytrack/internal/dateutil"
)

// Result is the outcome of a streak computation
type Result struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Days normalizes dates to midnight in loc and collapses same-day entries.
// The result is sorted most recent first.
func Days(dates []time.Time, loc *time.Location) []time.Time {
	seen := make(map[string]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := dateutil.StartOfDay(d.In(loc))
		key := dateutil.DayKey(day)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}

// Compute returns the current and longest streak over the given activity dates.
//
// The current streak is the length of the most recent run of consecutive days,
// credited only when that run reaches today or yesterday. Dates are compared in
// today's location.
func Compute(dates []time.Time, today time.Time) Result {
	days := Days(dates, today.Location())
	if len(days) == 0 {
		return Result{}
	}

	// A run that starts today or yesterday is still alive.
	credited := dateutil.DaysBetween(days[0], today)
	alive := credited == 0 || credited == 1

	var current, longest int
	temp := 1
	inFirstRun := true
	for i := 1; i < len(days); i++ {
		if dateutil.DaysBetween(days[i], days[i-1]) == 1 {
			temp++
			continue
		}
		if inFirstRun && alive {
			current = temp
		}
		inFirstRun = false
		longest = max(longest, temp)
		temp = 1
	}
	if inFirstRun && alive {
		current = temp
	}

	return Result{Current: current, Longest: max(longest, temp, current)}
}

// Unified returns the largest of the named streaks.
func Unified(streaks map[string]int) int {
	var best int
	for _, s := range streaks {
		best = max(best, s)
	}
	return best
}
