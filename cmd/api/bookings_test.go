package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"courtdesk/internal/refcode"
	"courtdesk/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *application {
	t.Helper()

	refcodes, err := refcode.NewGenerator("test-secret")
	if err != nil {
		t.Fatalf("refcode generator: %v", err)
	}

	return &application{
		config:   config{},
		store:    store.NewMemoryStorage(),
		logger:   zap.NewNop().Sugar(),
		refcodes: refcodes,
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decodeBooking(t *testing.T, rr *httptest.ResponseRecorder) store.Booking {
	t.Helper()

	var env struct {
		Data store.Booking `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env.Data
}

func TestCreateBookingOneOff(t *testing.T) {
	app := newTestApp(t)

	// 2026-10-10 is a Saturday, court-1 weekend slot is 08:00-23:00 at 1700.
	rr := postJSON(t, app.createBookingHandler, `{
		"first_name": "Анна",
		"last_name": "Петрова",
		"phone": "+7 900 000-00-00",
		"email": "anna@example.com",
		"court_id": "court-1",
		"date": "2026-10-10",
		"time": "10:00-12:00"
	}`)

	if rr.Code != http.StatusCreated {
		t.Fatalf("got status %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	booking := decodeBooking(t, rr)
	if booking.Price != 3400 {
		t.Errorf("price = %d, want 3400", booking.Price)
	}
	if booking.Status != store.StatusPending {
		t.Errorf("status = %s, want %s", booking.Status, store.StatusPending)
	}
	if len(booking.Dates) != 1 || booking.Dates[0] != "2026-10-10" {
		t.Errorf("dates = %v, want [2026-10-10]", booking.Dates)
	}
	if !strings.HasPrefix(booking.Reference, "BK-") {
		t.Errorf("reference = %q, want BK- prefix", booking.Reference)
	}
	if booking.Recurring != nil {
		t.Error("one-off booking should not carry recurring details")
	}
}

func TestCreateBookingRecurring(t *testing.T) {
	app := newTestApp(t)

	// Mondays and Wednesdays between 2026-10-05 and 2026-10-18: four dates.
	rr := postJSON(t, app.createBookingHandler, `{
		"first_name": "Иван",
		"last_name": "Сидоров",
		"phone": "+7 900 111-22-33",
		"email": "ivan@example.com",
		"court_id": "court-1",
		"time": "09:00-11:00",
		"recurring_details": {
			"start_date": "2026-10-05",
			"end_date": "2026-10-18",
			"days": ["Mon", "Wed"]
		}
	}`)

	if rr.Code != http.StatusCreated {
		t.Fatalf("got status %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	booking := decodeBooking(t, rr)

	want := []string{"2026-10-05", "2026-10-07", "2026-10-12", "2026-10-14"}
	if len(booking.Dates) != len(want) {
		t.Fatalf("dates = %v, want %v", booking.Dates, want)
	}
	for i, d := range want {
		if booking.Dates[i] != d {
			t.Errorf("dates[%d] = %s, want %s", i, booking.Dates[i], d)
		}
	}

	// Weekday slot 08:00-16:00 at 1700, two hours.
	if booking.Price != 3400 {
		t.Errorf("price = %d, want 3400", booking.Price)
	}
	if booking.Recurring == nil {
		t.Fatal("recurring details missing")
	}
	if booking.Recurring.Weeks != 2 {
		t.Errorf("weeks = %d, want 2", booking.Recurring.Weeks)
	}
}

func TestCreateBookingRejectsMissingDate(t *testing.T) {
	app := newTestApp(t)

	rr := postJSON(t, app.createBookingHandler, `{
		"first_name": "Анна",
		"last_name": "Петрова",
		"phone": "+7 900 000-00-00",
		"email": "anna@example.com",
		"court_id": "court-1",
		"time": "10:00-12:00"
	}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestCreateBookingRejectsShortDuration(t *testing.T) {
	app := newTestApp(t)

	rr := postJSON(t, app.createBookingHandler, `{
		"first_name": "Анна",
		"last_name": "Петрова",
		"phone": "+7 900 000-00-00",
		"email": "anna@example.com",
		"court_id": "court-1",
		"date": "2026-10-10",
		"time": "10:00-10:30"
	}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestCreateBookingRejectsInactiveTariff(t *testing.T) {
	app := newTestApp(t)

	if _, err := app.store.Tariffs.ToggleActive(context.Background(), "tariff-subscription"); err != nil {
		t.Fatalf("toggle tariff: %v", err)
	}

	rr := postJSON(t, app.createBookingHandler, `{
		"first_name": "Анна",
		"last_name": "Петрова",
		"phone": "+7 900 000-00-00",
		"email": "anna@example.com",
		"court_id": "court-1",
		"tariff_id": "tariff-subscription",
		"date": "2026-10-10",
		"time": "10:00-12:00"
	}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d: %s", rr.Code, http.StatusBadRequest, rr.Body.String())
	}
}

func TestBookingSummarySeededRecurring(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("bookingID", "booking-3")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	app.getBookingSummaryHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var env struct {
		Data BookingSummary `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	summary := env.Data

	if summary.TotalSessions != 13 {
		t.Errorf("total sessions = %d, want 13", summary.TotalSessions)
	}
	if summary.PricePerSession != 3200 {
		t.Errorf("price per session = %d, want 3200", summary.PricePerSession)
	}
	if summary.BookingTotal != 13*3200 {
		t.Errorf("booking total = %v, want %d", summary.BookingTotal, 13*3200)
	}
	// The seeded schedule ended in December 2025; nothing is left to refund.
	if summary.RemainingSessions == nil || *summary.RemainingSessions != 0 {
		t.Errorf("remaining sessions = %v, want 0", summary.RemainingSessions)
	}
	if summary.RefundableAmount != 0 {
		t.Errorf("refundable amount = %d, want 0", summary.RefundableAmount)
	}
}
