package view

import (
	"fmt"
	"math"
	"time"
)

const (
	minutesInDay           = 1440
	minutesInAlmostTwoDays = 2520
	minutesInMonth         = 43200
	minutesInTwoMonths     = 86400
)

// FormatDistance describes the gap between two instants in words, e.g. "about 3 hours".
// The order of the arguments does not matter.
func FormatDistance(a, b time.Time) string {
	earlier, later := a, b
	if later.Before(earlier) {
		earlier, later = later, earlier
	}

	seconds := later.Sub(earlier).Seconds()
	minutes := int(math.Round(seconds / 60))

	switch {
	case minutes < 1:
		return "less than a minute"
	case minutes < 2:
		return "1 minute"
	case minutes < 45:
		return fmt.Sprintf("%d minutes", minutes)
	case minutes < 90:
		return "about 1 hour"
	case minutes < minutesInDay:
		return plural("about %d hour", int(math.Round(float64(minutes)/60)))
	case minutes < minutesInAlmostTwoDays:
		return "1 day"
	case minutes < minutesInMonth:
		return plural("%d day", int(math.Round(float64(minutes)/minutesInDay)))
	case minutes < minutesInTwoMonths:
		return plural("about %d month", int(math.Round(float64(minutes)/minutesInMonth)))
	}

	months := monthsBetween(earlier, later)
	if months < 12 {
		return plural("%d month", int(math.Round(float64(minutes)/minutesInMonth)))
	}

	years := months / 12
	switch rem := months % 12; {
	case rem < 3:
		return plural("about %d year", years)
	case rem < 9:
		return plural("over %d year", years)
	default:
		return plural("almost %d year", years+1)
	}
}

// monthsBetween counts whole calendar months from earlier to later.
func monthsBetween(earlier, later time.Time) int {
	months := (later.Year()-earlier.Year())*12 + int(later.Month()) - int(earlier.Month())

	shifted := earlier.AddDate(0, months, 0)
	if shifted.After(later) {
		months--
	}
	return months
}

func plural(format string, n int) string {
	s := fmt.Sprintf(format, n)
	if n != 1 {
		s += "s"
	}
	return s
}
