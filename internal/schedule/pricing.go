package schedule

import "time"

// DayGroup selects which of a court's two price tables applies.
type DayGroup string

const (
	Weekdays DayGroup = "weekdays"
	Weekends DayGroup = "weekends"
)

// ValidDayGroup reports whether s names one of the two price tables.
func ValidDayGroup(s string) bool {
	return DayGroup(s) == Weekdays || DayGroup(s) == Weekends
}

// DayGroupFor buckets a calendar day: Saturday and Sunday hit the weekend
// table, everything else the weekday table.
func DayGroupFor(t time.Time) DayGroup {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return Weekends
	}
	return Weekdays
}

// Slot is one priced interval within a day group's table.
type Slot struct {
	From  string
	To    string
	Price int
}

// ResolvePrice finds the first slot whose [from, to) interval contains the
// given clock time and returns its price. The lower bound is inclusive and
// the upper exclusive, so back-to-back slots never double-match at the
// boundary. ok=false means no slot covers the time (or the time is
// malformed); callers historically treated that as price 0.
func ResolvePrice(slots []Slot, clock string) (int, bool) {
	at, err := MinutesOfDay(clock)
	if err != nil {
		return 0, false
	}

	for _, s := range slots {
		from, err := MinutesOfDay(s.From)
		if err != nil {
			continue
		}
		to, err := MinutesOfDay(s.To)
		if err != nil {
			continue
		}
		if from <= at && at < to {
			return s.Price, true
		}
	}
	return 0, false
}
