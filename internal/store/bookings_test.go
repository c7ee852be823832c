package store

import "testing"

func TestBookingStatusValid(t *testing.T) {
	for _, s := range []BookingStatus{StatusPendingPayment, StatusPending, StatusConfirmed, StatusRejected} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if BookingStatus("cancelled").Valid() {
		t.Error("unknown status should not be valid")
	}
}

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{StatusPendingPayment, StatusPending, true},
		{StatusPendingPayment, StatusConfirmed, true},
		{StatusPendingPayment, StatusRejected, true},
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusPendingPayment, false},
		{StatusConfirmed, StatusRejected, false},
		{StatusConfirmed, StatusPending, false},
		{StatusRejected, StatusConfirmed, false},
		{StatusRejected, StatusPending, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestBookingStartClock(t *testing.T) {
	b := Booking{Time: "09:00-11:00"}
	if got := b.StartClock(); got != "09:00" {
		t.Errorf("StartClock() = %q, want %q", got, "09:00")
	}

	b.Time = "07:30"
	if got := b.StartClock(); got != "07:30" {
		t.Errorf("StartClock() = %q, want %q", got, "07:30")
	}
}

func TestPriceTableForDayGroup(t *testing.T) {
	table := PriceTable{
		Weekdays: []PriceSlot{{ID: "wd"}},
		Weekends: []PriceSlot{{ID: "we"}},
	}

	if slots := table.ForDayGroup("weekends"); len(slots) != 1 || slots[0].ID != "we" {
		t.Errorf("weekends group = %+v", slots)
	}
	if slots := table.ForDayGroup("weekdays"); len(slots) != 1 || slots[0].ID != "wd" {
		t.Errorf("weekdays group = %+v", slots)
	}
}
