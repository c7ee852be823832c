package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"courtdesk/internal/mailer"
	"courtdesk/internal/schedule"
	"courtdesk/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type RecurringPayload struct {
	StartDate string   `json:"start_date" validate:"required"`
	EndDate   string   `json:"end_date" validate:"required"`
	Days      []string `json:"days" validate:"required,min=1,dive,shortday"`
}

type ExtraSelectionPayload struct {
	ExtraID  string `json:"extra_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type CreateBookingPayload struct {
	FirstName string                  `json:"first_name" validate:"required,max=50"`
	LastName  string                  `json:"last_name" validate:"required,max=50"`
	Phone     string                  `json:"phone" validate:"required,max=25"`
	Email     string                  `json:"email" validate:"required,email,max=255"`
	CourtID   string                  `json:"court_id" validate:"required"`
	TariffID  *string                 `json:"tariff_id"`
	Date      string                  `json:"date"`
	Time      string                  `json:"time" validate:"required,timerange"`
	Recurring *RecurringPayload       `json:"recurring_details"`
	Extras    []ExtraSelectionPayload `json:"extras" validate:"dive"`
	Status    string                  `json:"status" validate:"omitempty,oneof=pending pending-payment"`
}

// createBookingHandler godoc
//
//	@Summary		Create a booking
//	@Description	Creates a one-off or recurring booking: expands the recurrence rule into dates, resolves the per-occurrence price from the tariff (when given) or the court price table, and assigns a reference code.
//	@Tags			bookings
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateBookingPayload	true	"Booking payload"
//	@Success		201		{object}	store.Booking
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/bookings [post]
func (app *application) createBookingHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateBookingPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	startClock, endClock, err := schedule.SplitTimeRange(payload.Time)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	duration, err := schedule.Duration(startClock, endClock)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if duration < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("minimum booking duration is 1 hour"))
		return
	}

	ctx := r.Context()

	court, err := app.store.Courts.GetByID(ctx, payload.CourtID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	// The price table to resolve against: the tariff's when a tariff is
	// selected, the court's own otherwise.
	prices := court.Prices
	if payload.TariffID != nil {
		tariff, err := app.store.Tariffs.GetByID(ctx, *payload.TariffID)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				app.notFoundResponse(w, r, err)
			default:
				app.internalServerError(w, r, err)
			}
			return
		}
		if !tariff.IsActive {
			app.badRequestResponse(w, r, fmt.Errorf("tariff %s is not active", tariff.ID))
			return
		}
		prices = tariff.Prices
	}

	var dates []string
	var recurring *store.RecurringDetails
	if payload.Recurring != nil {
		rec := payload.Recurring
		dates = schedule.GenerateRecurringDates(rec.StartDate, rec.EndDate, toWeekdays(rec.Days), rec.StartDate)
		recurring = &store.RecurringDetails{
			StartDate: rec.StartDate,
			EndDate:   rec.EndDate,
			Weeks:     schedule.Weeks(rec.StartDate, rec.EndDate),
			Days:      rec.Days,
		}
	} else {
		if payload.Date == "" {
			app.badRequestResponse(w, r, fmt.Errorf("date is required for a one-off booking"))
			return
		}
		dates = []string{payload.Date}
	}

	firstDate, err := schedule.ParseDate(dates[0])
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	group := schedule.DayGroupFor(firstDate)
	hourly, _ := schedule.ResolvePrice(toSlots(prices.ForDayGroup(string(group))), startClock)
	price := schedule.RoundPrice(float64(hourly) * duration)

	reference, err := app.refcodes.Generate()
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	status := store.BookingStatus(payload.Status)
	if status == "" {
		status = store.StatusPending
	}

	booking := &store.Booking{
		ID:        uuid.New().String(),
		Reference: reference,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Phone:     payload.Phone,
		Email:     payload.Email,
		CourtID:   payload.CourtID,
		TariffID:  payload.TariffID,
		Dates:     dates,
		Time:      payload.Time,
		Duration:  duration,
		Price:     price,
		Status:    status,
		Recurring: recurring,
		Extras:    toExtraSelections(payload.Extras),
	}

	if err := app.store.Bookings.Create(ctx, booking); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, booking); err != nil {
		app.internalServerError(w, r, err)
	}
}

func toWeekdays(days []string) []schedule.Weekday {
	out := make([]schedule.Weekday, 0, len(days))
	for _, d := range days {
		out = append(out, schedule.Weekday(d))
	}
	return out
}

func toSlots(slots []store.PriceSlot) []schedule.Slot {
	out := make([]schedule.Slot, 0, len(slots))
	for _, s := range slots {
		out = append(out, schedule.Slot{From: s.From, To: s.To, Price: s.Price})
	}
	return out
}

func toExtraSelections(extras []ExtraSelectionPayload) []store.ExtraSelection {
	out := make([]store.ExtraSelection, 0, len(extras))
	for _, e := range extras {
		out = append(out, store.ExtraSelection{ExtraID: e.ExtraID, Quantity: e.Quantity})
	}
	return out
}

// listBookingsHandler godoc
//
//	@Summary		List bookings
//	@Description	Lists bookings, newest first, with optional status, court and date filters.
//	@Tags			bookings
//	@Produce		json
//	@Param			status		query		string	false	"Filter by status"	Enums(pending-payment,pending,confirmed,rejected)
//	@Param			court_id	query		string	false	"Filter by court"
//	@Param			date		query		string	false	"Filter by occurrence date (YYYY-MM-DD)"
//	@Param			page		query		int		false	"Page number (default: 1)"
//	@Param			limit		query		int		false	"Items per page (default: 20)"
//	@Success		200			{array}		store.Booking
//	@Failure		400			{object}	error
//	@Failure		500			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/bookings [get]
func (app *application) listBookingsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.BookingFilter{Page: 1, Limit: 20}
	if v := q.Get("page"); v != "" {
		fmt.Sscanf(v, "%d", &filter.Page)
	}
	if v := q.Get("limit"); v != "" {
		fmt.Sscanf(v, "%d", &filter.Limit)
	}
	if filter.Page < 1 || filter.Limit < 1 || filter.Limit > 100 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid pagination"))
		return
	}

	if v := q.Get("status"); v != "" {
		status := store.BookingStatus(v)
		if !status.Valid() {
			app.badRequestResponse(w, r, fmt.Errorf("invalid status %q", v))
			return
		}
		filter.Status = &status
	}
	if v := q.Get("court_id"); v != "" {
		filter.CourtID = &v
	}
	if v := q.Get("date"); v != "" {
		if _, err := schedule.ParseDate(v); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		filter.Date = &v
	}

	bookings, err := app.store.Bookings.List(r.Context(), filter)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, bookings); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getBookingHandler godoc
//
//	@Summary		Get a booking
//	@Tags			bookings
//	@Produce		json
//	@Param			bookingID	path		string	true	"Booking ID"
//	@Success		200			{object}	store.Booking
//	@Failure		404			{object}	error
//	@Failure		500			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/bookings/{bookingID} [get]
func (app *application) getBookingHandler(w http.ResponseWriter, r *http.Request) {
	booking, err := app.store.Bookings.GetByID(r.Context(), chi.URLParam(r, "bookingID"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, booking); err != nil {
		app.internalServerError(w, r, err)
	}
}

// BookingSummary is the derived cost and session breakdown of a booking.
// RemainingSessions is null when the recurrence rule cannot be evaluated.
type BookingSummary struct {
	Reference         string  `json:"reference"`
	TotalSessions     int     `json:"total_sessions"`
	RemainingSessions *int    `json:"remaining_sessions"`
	PricePerSession   int     `json:"price_per_session"`
	ExtrasPerSession  float64 `json:"extras_per_session"`
	BookingTotal      float64 `json:"booking_total"`
	ExtrasTotal       float64 `json:"extras_total"`
	GrandTotal        float64 `json:"grand_total"`
	RefundableAmount  int     `json:"refundable_amount"`
}

// getBookingSummaryHandler godoc
//
//	@Summary		Booking cost summary
//	@Description	Returns total and refund-eligible session counts plus booking, extras and grand totals. The refund cutoff comes from the organization profile.
//	@Tags			bookings
//	@Produce		json
//	@Param			bookingID	path		string	true	"Booking ID"
//	@Success		200			{object}	BookingSummary
//	@Failure		404			{object}	error
//	@Failure		500			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/bookings/{bookingID}/summary [get]
func (app *application) getBookingSummaryHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	booking, err := app.store.Bookings.GetByID(ctx, chi.URLParam(r, "bookingID"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	org, err := app.store.Organization.Get(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	now := time.Now()
	startClock := booking.StartClock()

	var total int
	var remaining *int
	if booking.IsRecurring() {
		rec := booking.Recurring
		total = schedule.CountOccurrences(rec.StartDate, rec.EndDate, toWeekdays(rec.Days))
		if n, ok := schedule.RemainingSessions(
			rec.StartDate, rec.EndDate, toWeekdays(rec.Days),
			startClock, now.Format(schedule.DateLayout), now, org.RefundHours,
		); ok {
			remaining = &n
		}
	} else {
		total = len(booking.Dates)
		n := 0
		for _, date := range booking.Dates {
			d, err := schedule.ParseDate(date)
			if err != nil {
				continue
			}
			minutes, err := schedule.MinutesOfDay(startClock)
			if err != nil {
				continue
			}
			sessionStart := d.Add(time.Duration(minutes) * time.Minute)
			if sessionStart.Sub(now) >= time.Duration(org.RefundHours)*time.Hour {
				n++
			}
		}
		remaining = &n
	}

	extrasPerSession := 0.0
	for _, sel := range booking.Extras {
		extra, err := app.store.Extras.GetByID(ctx, sel.ExtraID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			app.internalServerError(w, r, err)
			return
		}
		extrasPerSession += schedule.ExtraCost(extra.Unit, extra.Price, sel.Quantity, booking.Duration)
	}

	bookingTotal := schedule.TotalForOccurrences(float64(booking.Price), total)
	extrasTotal := schedule.TotalForOccurrences(extrasPerSession, total)

	refundable := 0
	if remaining != nil {
		refundable = schedule.RoundPrice(schedule.TotalForOccurrences(float64(booking.Price)+extrasPerSession, *remaining))
	}

	summary := BookingSummary{
		Reference:         booking.Reference,
		TotalSessions:     total,
		RemainingSessions: remaining,
		PricePerSession:   booking.Price,
		ExtrasPerSession:  extrasPerSession,
		BookingTotal:      bookingTotal,
		ExtrasTotal:       extrasTotal,
		GrandTotal:        bookingTotal + extrasTotal,
		RefundableAmount:  refundable,
	}

	if err := app.jsonResponse(w, http.StatusOK, summary); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateBookingStatusPayload struct {
	Status string `json:"status" validate:"required"`
}

// updateBookingStatusHandler godoc
//
//	@Summary		Update booking status
//	@Description	Moves a booking through its lifecycle. pending-payment may go to pending, confirmed or rejected; pending only to confirmed or rejected; confirmed and rejected are final. Confirmation and rejection notify the client by email.
//	@Tags			bookings
//	@Accept			json
//	@Produce		json
//	@Param			bookingID	path		string						true	"Booking ID"
//	@Param			payload		body		UpdateBookingStatusPayload	true	"New status"
//	@Success		200			{object}	map[string]string
//	@Failure		400			{object}	error
//	@Failure		404			{object}	error
//	@Failure		409			{object}	error
//	@Failure		500			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/bookings/{bookingID}/status [patch]
func (app *application) updateBookingStatusHandler(w http.ResponseWriter, r *http.Request) {
	var payload UpdateBookingStatusPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	next := store.BookingStatus(payload.Status)
	if !next.Valid() {
		app.badRequestResponse(w, r, fmt.Errorf("invalid status %q", payload.Status))
		return
	}

	ctx := r.Context()

	booking, err := app.store.Bookings.GetByID(ctx, chi.URLParam(r, "bookingID"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if !booking.Status.CanTransitionTo(next) {
		app.conflictResponse(w, r, fmt.Errorf("cannot move booking from %s to %s", booking.Status, next))
		return
	}

	if err := app.store.Bookings.UpdateStatus(ctx, booking.ID, next); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if next == store.StatusConfirmed || next == store.StatusRejected {
		app.notifyBookingStatus(booking, next)
	}

	response := map[string]string{
		"message": "status updated",
		"status":  string(next),
	}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// notifyBookingStatus emails the client about a confirmation or rejection.
// Sent in the background; a delivery failure never fails the status change.
func (app *application) notifyBookingStatus(booking *store.Booking, status store.BookingStatus) {
	template := mailer.BookingConfirmedTemplate
	if status == store.StatusRejected {
		template = mailer.BookingRejectedTemplate
	}

	courtName := booking.CourtID
	if court, err := app.store.Courts.GetByID(context.Background(), booking.CourtID); err == nil {
		courtName = court.Name
	}

	firstDate := ""
	if len(booking.Dates) > 0 {
		firstDate = booking.Dates[0]
	}

	totalSessions := len(booking.Dates)
	if booking.IsRecurring() {
		totalSessions = schedule.CountOccurrences(
			booking.Recurring.StartDate, booking.Recurring.EndDate, toWeekdays(booking.Recurring.Days))
	}

	vars := struct {
		FirstName     string
		Reference     string
		CourtName     string
		FirstDate     string
		Time          string
		IsRecurring   bool
		TotalSessions int
	}{
		FirstName:     booking.FirstName,
		Reference:     booking.Reference,
		CourtName:     courtName,
		FirstDate:     firstDate,
		Time:          booking.Time,
		IsRecurring:   booking.IsRecurring(),
		TotalSessions: totalSessions,
	}

	go func() {
		statusCode, err := app.mailer.Send(template, booking.FirstName, booking.Email, vars)
		if err != nil {
			app.logger.Errorw("error sending booking status email", "booking", booking.ID, "error", err)
			return
		}
		app.logger.Infow("booking status email sent", "booking", booking.ID, "status code", statusCode)
	}()
}

// removeBookingDateHandler godoc
//
//	@Summary		Cancel one occurrence
//	@Description	Strikes a single date from a recurring booking without changing the booking status.
//	@Tags			bookings
//	@Produce		json
//	@Param			bookingID	path		string	true	"Booking ID"
//	@Param			date		path		string	true	"Occurrence date (YYYY-MM-DD)"
//	@Success		204			{string}	string	"No Content"
//	@Failure		400			{object}	error
//	@Failure		404			{object}	error
//	@Failure		500			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/bookings/{bookingID}/dates/{date} [delete]
func (app *application) removeBookingDateHandler(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := schedule.ParseDate(date); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err := app.store.Bookings.RemoveDate(r.Context(), chi.URLParam(r, "bookingID"), date)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
