package store

import (
	"context"
	"errors"
	"testing"
)

func TestMemorySeed(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	courts, err := s.Courts.List(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(courts) != 3 {
		t.Errorf("seeded courts = %d, want 3", len(courts))
	}

	tariffs, err := s.Tariffs.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tariffs) != 4 {
		t.Errorf("seeded tariffs = %d, want 4", len(tariffs))
	}

	extras, err := s.Extras.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(extras) != 5 {
		t.Errorf("seeded extras = %d, want 5", len(extras))
	}

	org, err := s.Organization.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if org.RefundHours != 24 {
		t.Errorf("refund hours = %d, want 24", org.RefundHours)
	}

	admin, err := s.Staff.GetByEmail(ctx, "admin@court-center.example.com")
	if err != nil {
		t.Fatal(err)
	}
	if err := admin.Password.Compare("admin123"); err != nil {
		t.Error("seeded admin password should match")
	}
}

func TestMemoryBookingLifecycle(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	booking := &Booking{
		ID:        "booking-test",
		Reference: "BK-TEST1234",
		FirstName: "Test",
		CourtID:   "court-1",
		Dates:     []string{"2025-12-01", "2025-12-03"},
		Time:      "10:00-11:00",
		Duration:  1,
		Price:     1700,
		Status:    StatusPending,
	}
	if err := s.Bookings.Create(ctx, booking); err != nil {
		t.Fatal(err)
	}
	if err := s.Bookings.Create(ctx, booking); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate create error = %v, want ErrConflict", err)
	}

	got, err := s.Bookings.GetByID(ctx, "booking-test")
	if err != nil {
		t.Fatal(err)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set on create")
	}

	if err := s.Bookings.UpdateStatus(ctx, "booking-test", StatusConfirmed); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Bookings.GetByID(ctx, "booking-test")
	if got.Status != StatusConfirmed {
		t.Errorf("status = %s, want confirmed", got.Status)
	}

	if err := s.Bookings.RemoveDate(ctx, "booking-test", "2025-12-01"); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Bookings.GetByID(ctx, "booking-test")
	if len(got.Dates) != 1 || got.Dates[0] != "2025-12-03" {
		t.Errorf("dates after removal = %v", got.Dates)
	}
	if err := s.Bookings.RemoveDate(ctx, "booking-test", "2025-12-01"); !errors.Is(err, ErrNotFound) {
		t.Errorf("removing absent date error = %v, want ErrNotFound", err)
	}
}

func TestMemoryBookingListFilter(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	status := StatusConfirmed
	confirmed, err := s.Bookings.List(ctx, BookingFilter{Status: &status})
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range confirmed {
		if b.Status != StatusConfirmed {
			t.Errorf("booking %s has status %s", b.ID, b.Status)
		}
	}
	if len(confirmed) != 2 {
		t.Errorf("confirmed bookings = %d, want 2", len(confirmed))
	}

	date := "2025-12-03"
	onDate, err := s.Bookings.List(ctx, BookingFilter{Date: &date})
	if err != nil {
		t.Fatal(err)
	}
	if len(onDate) != 1 || onDate[0].ID != "booking-3" {
		t.Errorf("bookings on %s = %+v", date, onDate)
	}

	court := "court-2"
	byCourt, err := s.Bookings.List(ctx, BookingFilter{CourtID: &court})
	if err != nil {
		t.Fatal(err)
	}
	if len(byCourt) != 1 || byCourt[0].ID != "booking-2" {
		t.Errorf("bookings for %s = %+v", court, byCourt)
	}

	paged, err := s.Bookings.List(ctx, BookingFilter{Page: 1, Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(paged) != 2 {
		t.Errorf("page size = %d, want 2", len(paged))
	}
	// Newest first.
	if paged[0].ID != "booking-3" {
		t.Errorf("first listed = %s, want booking-3", paged[0].ID)
	}
}

func TestMemoryCourtVisibility(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	visible, err := s.Courts.ToggleVisibility(ctx, "court-1")
	if err != nil {
		t.Fatal(err)
	}
	if visible {
		t.Error("court-1 should be hidden after toggle")
	}

	listed, err := s.Courts.List(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range listed {
		if c.ID == "court-1" {
			t.Error("hidden court should not be listed")
		}
	}

	all, err := s.Courts.List(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("includeHidden list = %d courts, want 3", len(all))
	}

	if _, err := s.Courts.ToggleVisibility(ctx, "court-missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("toggle missing court error = %v, want ErrNotFound", err)
	}
}

func TestMemoryCourtPriceSlots(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	slot := &PriceSlot{ID: "court-1-we-late", DayGroup: "weekends", From: "20:00", To: "23:00", Price: 1500}
	if err := s.Courts.AddPriceSlot(ctx, "court-1", slot); err != nil {
		t.Fatal(err)
	}

	c, err := s.Courts.GetByID(ctx, "court-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Prices.Weekends) != 2 {
		t.Fatalf("weekend slots = %d, want 2", len(c.Prices.Weekends))
	}

	slot.Price = 1600
	if err := s.Courts.UpdatePriceSlot(ctx, "court-1", slot); err != nil {
		t.Fatal(err)
	}
	c, _ = s.Courts.GetByID(ctx, "court-1")
	found := false
	for _, got := range c.Prices.Weekends {
		if got.ID == slot.ID && got.Price == 1600 {
			found = true
		}
	}
	if !found {
		t.Error("updated slot not found")
	}

	if err := s.Courts.DeletePriceSlot(ctx, "court-1", slot.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.Courts.DeletePriceSlot(ctx, "court-1", slot.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete error = %v, want ErrNotFound", err)
	}
}

func TestMemoryTariffToggle(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	active, err := s.Tariffs.ToggleActive(ctx, "tariff-student")
	if err != nil {
		t.Fatal(err)
	}
	if active {
		t.Error("tariff should be inactive after toggle")
	}

	tariff, err := s.Tariffs.GetByID(ctx, "tariff-student")
	if err != nil {
		t.Fatal(err)
	}
	if tariff.IsActive {
		t.Error("GetByID should reflect the toggle")
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	c1, err := s.Courts.GetByID(ctx, "court-1")
	if err != nil {
		t.Fatal(err)
	}
	c1.Prices.Weekdays[0].Price = 1

	c2, _ := s.Courts.GetByID(ctx, "court-1")
	if c2.Prices.Weekdays[0].Price == 1 {
		t.Error("mutating a returned court should not affect the store")
	}
}
