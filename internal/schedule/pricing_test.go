package schedule

import (
	"testing"
	"time"
)

func TestDayGroupFor(t *testing.T) {
	tests := []struct {
		date string
		want DayGroup
	}{
		{"2025-01-06", Weekdays}, // Monday
		{"2025-01-10", Weekdays}, // Friday
		{"2025-01-11", Weekends}, // Saturday
		{"2025-01-12", Weekends}, // Sunday
	}

	for _, tt := range tests {
		d, err := ParseDate(tt.date)
		if err != nil {
			t.Fatal(err)
		}
		if got := DayGroupFor(d); got != tt.want {
			t.Errorf("DayGroupFor(%s) = %s, want %s", tt.date, got, tt.want)
		}
	}
}

func TestResolvePrice(t *testing.T) {
	slots := []Slot{
		{From: "08:00", To: "16:00", Price: 1700},
		{From: "16:00", To: "21:00", Price: 2000},
		{From: "21:00", To: "23:00", Price: 1700},
	}

	tests := []struct {
		clock  string
		want   int
		wantOK bool
	}{
		{"08:00", 1700, true}, // lower bound inclusive
		{"15:59", 1700, true},
		{"16:00", 2000, true}, // boundary belongs to the next slot
		{"20:59", 2000, true},
		{"22:30", 1700, true},
		{"23:00", 0, false}, // upper bound exclusive
		{"07:59", 0, false},
		{"bad", 0, false},
	}

	for _, tt := range tests {
		got, ok := ResolvePrice(slots, tt.clock)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ResolvePrice(%q) = (%d, %v), want (%d, %v)", tt.clock, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestResolvePriceHalfOpenInterval(t *testing.T) {
	slots := []Slot{{From: "10:00", To: "12:00", Price: 2500}}

	if p, ok := ResolvePrice(slots, "10:00"); !ok || p != 2500 {
		t.Errorf("10:00 should match: got (%d, %v)", p, ok)
	}
	if p, ok := ResolvePrice(slots, "11:59"); !ok || p != 2500 {
		t.Errorf("11:59 should match: got (%d, %v)", p, ok)
	}
	if _, ok := ResolvePrice(slots, "12:00"); ok {
		t.Error("12:00 must not match a slot ending at 12:00")
	}
}

func TestResolvePriceFirstMatchWins(t *testing.T) {
	slots := []Slot{
		{From: "08:00", To: "23:00", Price: 1500},
		{From: "10:00", To: "12:00", Price: 9999},
	}
	if p, _ := ResolvePrice(slots, "11:00"); p != 1500 {
		t.Errorf("expected the first covering slot's price, got %d", p)
	}
}

func TestResolvePriceSkipsMalformedSlots(t *testing.T) {
	slots := []Slot{
		{From: "start", To: "12:00", Price: 100},
		{From: "10:00", To: "12:00", Price: 2500},
	}
	if p, ok := ResolvePrice(slots, "10:30"); !ok || p != 2500 {
		t.Errorf("got (%d, %v), want (2500, true)", p, ok)
	}
}

func TestResolvePriceIsPure(t *testing.T) {
	slots := []Slot{{From: "08:00", To: "23:00", Price: 3200}}
	first, _ := ResolvePrice(slots, "09:30")
	second, _ := ResolvePrice(slots, "09:30")
	if first != second {
		t.Errorf("identical calls diverged: %d vs %d", first, second)
	}
	if slots[0] != (Slot{From: "08:00", To: "23:00", Price: 3200}) {
		t.Error("resolver mutated its input")
	}
}

func TestWeekendLookupUsesWeekendTable(t *testing.T) {
	weekdays := []Slot{{From: "08:00", To: "23:00", Price: 1700}}
	weekends := []Slot{{From: "08:00", To: "23:00", Price: 2500}}

	saturday, err := ParseDate("2025-01-11")
	if err != nil {
		t.Fatal(err)
	}

	table := weekdays
	if DayGroupFor(saturday) == Weekends {
		table = weekends
	}
	if p, _ := ResolvePrice(table, "10:00"); p != 2500 {
		t.Errorf("Saturday resolved against the weekday table: got %d", p)
	}
}

func TestDayGroupForIsConsistentAcrossAWeek(t *testing.T) {
	start, _ := ParseDate("2025-01-06")
	weekendDays := 0
	for i := 0; i < 7; i++ {
		if DayGroupFor(start.Add(time.Duration(i)*24*time.Hour)) == Weekends {
			weekendDays++
		}
	}
	if weekendDays != 2 {
		t.Errorf("one week should contain exactly 2 weekend days, got %d", weekendDays)
	}
}
