// Package season resolves NFL season years from calendar dates.
package season

import "time"

// LaborDay returns the first Monday of September for the given year.
func LaborDay(year int) time.Time {
	d := time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(time.Monday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset)
}

// Opener returns the season's opening Thursday, three days after Labor
// Day.
func Opener(year int) time.Time {
	return LaborDay(year).AddDate(0, 0, 3)
}

// MostRecent returns the most recent season as of now. Before the
// opener the previous season is still the most recent one. With roster
// true the cutoff moves to March 15th, the approximate start of free
// agency, since roster data for the new season exists well before any
// game is played.
func MostRecent(now time.Time, roster bool) int {
	year := now.Year()
	if roster {
		cutoff := time.Date(year, time.March, 15, 0, 0, 0, 0, now.Location())
		if !now.Before(cutoff) {
			return year
		}
		return year - 1
	}
	if !now.Before(Opener(year)) {
		return year
	}
	return year - 1
}
