package schedule

import (
	"fmt"
	"math"
	"strings"
)

// UnitHour marks extras billed per hour of court time; every other unit
// (day, month, pcs, service) is flat per booking.
const UnitHour = "hour"

// SplitTimeRange splits a "HH:MM-HH:MM" booking time into its endpoints.
func SplitTimeRange(r string) (start, end string, err error) {
	start, end, ok := strings.Cut(r, "-")
	if !ok {
		return "", "", fmt.Errorf("invalid time range %q", r)
	}
	return start, end, nil
}

// Duration returns the session length in hours between two clock times.
// The result is negative when end precedes start; callers enforce the
// one-hour minimum before accepting input.
func Duration(startClock, endClock string) (float64, error) {
	startMinutes, err := MinutesOfDay(startClock)
	if err != nil {
		return 0, err
	}
	endMinutes, err := MinutesOfDay(endClock)
	if err != nil {
		return 0, err
	}
	return float64(endMinutes-startMinutes) / 60, nil
}

// ExtraCost prices one extra line for a single session: hourly extras scale
// with session duration, everything else costs quantity * price flat.
func ExtraCost(unit string, price, quantity int, duration float64) float64 {
	if unit == UnitHour {
		return float64(quantity) * float64(price) * duration
	}
	return float64(quantity) * float64(price)
}

// TotalForOccurrences multiplies a per-occurrence amount across a recurring
// booking's sessions.
func TotalForOccurrences(perOccurrence float64, occurrences int) float64 {
	return perOccurrence * float64(occurrences)
}

// RoundPrice rounds a computed amount to whole currency units. Applied once,
// when a booking is persisted; display aggregates stay unrounded.
func RoundPrice(v float64) int {
	return int(math.Round(v))
}
