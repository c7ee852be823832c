// Package schedule holds the pure calendar and pricing arithmetic behind
// recurring bookings: expanding a recurrence rule into concrete dates,
// counting total and refund-eligible sessions, resolving the applicable
// price slot for a moment in time, and deriving session costs. Everything
// here is stateless; callers (handlers) compose these at booking time.
package schedule

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Weekday is the short weekday code used in recurrence rules.
type Weekday string

const (
	Mon Weekday = "Mon"
	Tue Weekday = "Tue"
	Wed Weekday = "Wed"
	Thu Weekday = "Thu"
	Fri Weekday = "Fri"
	Sat Weekday = "Sat"
	Sun Weekday = "Sun"
)

var weekdayCodes = map[time.Weekday]Weekday{
	time.Monday:    Mon,
	time.Tuesday:   Tue,
	time.Wednesday: Wed,
	time.Thursday:  Thu,
	time.Friday:    Fri,
	time.Saturday:  Sat,
	time.Sunday:    Sun,
}

// WeekdayCode returns the short code for t's weekday.
func WeekdayCode(t time.Time) Weekday {
	return weekdayCodes[t.Weekday()]
}

// ValidWeekday reports whether s is one of the seven short codes.
func ValidWeekday(s string) bool {
	switch Weekday(s) {
	case Mon, Tue, Wed, Thu, Fri, Sat, Sun:
		return true
	}
	return false
}

// ParseDate parses "YYYY-MM-DD" as local midnight. Parsing in the local
// zone keeps day-of-week lookups stable; going through UTC shifts dates
// for anyone east of Greenwich.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

func weekdaySet(days []Weekday) map[Weekday]bool {
	set := make(map[Weekday]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	return set
}

// GenerateRecurringDates expands a (start, end, weekday set) rule into the
// concrete list of dates the booking occurs on, inclusive on both ends and
// in ascending order. Unparseable bounds yield [fallback]; an empty weekday
// set, or a range containing none of the selected weekdays, yields the
// start date alone.
func GenerateRecurringDates(startDate, endDate string, days []Weekday, fallback string) []string {
	start, err := ParseDate(startDate)
	if err != nil {
		return []string{fallback}
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return []string{fallback}
	}

	if len(days) == 0 {
		return []string{start.Format(DateLayout)}
	}

	set := weekdaySet(days)
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if set[WeekdayCode(d)] {
			dates = append(dates, d.Format(DateLayout))
		}
	}

	if len(dates) == 0 {
		return []string{start.Format(DateLayout)}
	}
	return dates
}

// CountOccurrences counts the days in [startDate, endDate] that fall on one
// of the selected weekdays. This is the canonical "total sessions" figure;
// a stored weeks*len(days) product drifts whenever the range is not a whole
// number of weeks, so it is never trusted here.
func CountOccurrences(startDate, endDate string, days []Weekday) int {
	start, err := ParseDate(startDate)
	if err != nil {
		return 0
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return 0
	}

	set := weekdaySet(days)
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if set[WeekdayCode(d)] {
			count++
		}
	}
	return count
}

// Weeks returns the calendar-week ceiling of the date span, counting both
// endpoints. Display-only: occurrence math always iterates.
func Weeks(startDate, endDate string) int {
	start, err := ParseDate(startDate)
	if err != nil {
		return 0
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return 0
	}
	if end.Before(start) {
		return 0
	}
	spanDays := int(end.Sub(start).Hours()/24) + 1
	return (spanDays + 6) / 7
}

// RemainingSessions counts the occurrences of a recurring booking that are
// still refundable as of now: on or after the later of the recurrence
// start, the occurrence date under inspection and today, and starting at
// least refundHours ahead of now. An occurrence starting exactly at the
// cutoff still counts. Returns ok=false when the rule or clock time cannot
// be parsed.
func RemainingSessions(startDate, endDate string, days []Weekday, startClock, currentDate string, now time.Time, refundHours int) (int, bool) {
	if len(days) == 0 {
		return 0, false
	}

	start, err := ParseDate(startDate)
	if err != nil {
		return 0, false
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return 0, false
	}
	current, err := ParseDate(currentDate)
	if err != nil {
		return 0, false
	}

	startMinutes, err := MinutesOfDay(startClock)
	if err != nil {
		return 0, false
	}

	loopStart := start
	if current.After(loopStart) {
		loopStart = current
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, start.Location())
	if today.After(loopStart) {
		loopStart = today
	}

	if loopStart.After(end) {
		return 0, true
	}

	set := weekdaySet(days)
	cutoff := time.Duration(refundHours) * time.Hour

	remaining := 0
	for d := loopStart; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !set[WeekdayCode(d)] {
			continue
		}
		sessionStart := d.Add(time.Duration(startMinutes) * time.Minute)
		if sessionStart.Sub(now) >= cutoff {
			remaining++
		}
	}
	return remaining, true
}

// MinutesOfDay converts an "HH:MM" clock string to minutes since midnight.
func MinutesOfDay(clock string) (int, error) {
	h, m, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, &ClockError{clock}
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return 0, &ClockError{clock}
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return 0, &ClockError{clock}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, &ClockError{clock}
	}
	return hour*60 + minute, nil
}

// ClockError reports a malformed "HH:MM" value.
type ClockError struct {
	Value string
}

func (e *ClockError) Error() string {
	return "invalid clock time " + strconv.Quote(e.Value)
}
