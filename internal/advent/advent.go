// Package advent maps calendar days to their unlock dates and answers the
// schedule questions of the gift calendar: whether a day is unlocked, whether
// voting is still open, and how long until the next event.
//
// Day d (1..Days) unlocks on December 15+d at midnight. Voting closes one
// second before midnight on December 15. All dates are evaluated in the
// location and year of the supplied time.
package advent

import (
	"fmt"
	"math"
	"time"
)

// Days is the number of calendar days, one per category.
const Days = 9

// firstUnlock is the day of December on which day 1 unlocks.
const firstUnlock = 16

// ValidDay reports whether day is within 1..Days.
func ValidDay(day int) bool { return day >= 1 && day <= Days }

// UnlockDate returns midnight of the date on which day unlocks in year.
// ok is false when day is out of range.
func UnlockDate(year, day int, loc *time.Location) (t time.Time, ok bool) {
	if !ValidDay(day) {
		return time.Time{}, false
	}
	return time.Date(year, time.December, firstUnlock+day-1, 0, 0, 0, 0, loc), true
}

// VotingDeadline returns December 15, 23:59:59 of year in loc.
func VotingDeadline(year int, loc *time.Location) time.Time {
	return time.Date(year, time.December, firstUnlock-1, 23, 59, 59, 0, loc)
}

// IsUnlocked reports whether day may be revealed at now. testMode bypasses
// the schedule entirely.
func IsUnlocked(day int, now time.Time, testMode bool) bool {
	if testMode {
		return true
	}
	at, ok := UnlockDate(now.Year(), day, now.Location())
	if !ok {
		return false
	}
	return !now.Before(at)
}

// IsVotingOpen reports whether now is strictly before the global voting
// deadline of now's year.
func IsVotingOpen(now time.Time) bool {
	return now.Before(VotingDeadline(now.Year(), now.Location()))
}

// NextUnlockDay returns the first day that is still locked at now, or
// ok=false once every day has unlocked.
func NextUnlockDay(now time.Time) (day int, ok bool) {
	for d := 1; d <= Days; d++ {
		if !IsUnlocked(d, now, false) {
			return d, true
		}
	}
	return 0, false
}

// DaysUntilChristmas returns the whole days, rounded up, until December 25
// midnight. After Christmas Day it counts towards next year's.
func DaysUntilChristmas(now time.Time) int {
	year := now.Year()
	if now.Month() == time.December && now.Day() > 25 {
		year++
	}
	xmas := time.Date(year, time.December, 25, 0, 0, 0, 0, now.Location())
	d := int(math.Ceil(xmas.Sub(now).Hours() / 24))
	if d < 0 {
		return 0
	}
	return d
}

// FormatCountdown renders the time left until target as "3d 4h", "4h 12m",
// "12m", or "Now!" once target has passed.
func FormatCountdown(target, now time.Time) string {
	diff := target.Sub(now)
	if diff <= 0 {
		return "Now!"
	}
	days := int(diff / (24 * time.Hour))
	hours := int(diff%(24*time.Hour)) / int(time.Hour)
	minutes := int(diff%time.Hour) / int(time.Minute)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
