package main

import (
	"fmt"
	"net/http"

	"courtdesk/internal/schedule"
	"courtdesk/internal/store"
)

// ScheduleSlot is one 30-minute cell in the day grid.
type ScheduleSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	BookingID string `json:"booking_id,omitempty"`
	Reference string `json:"reference,omitempty"`
}

type CourtSchedule struct {
	CourtID string         `json:"court_id"`
	Name    string         `json:"name"`
	Slots   []ScheduleSlot `json:"slots"`
}

type ScheduleResponse struct {
	Date     string          `json:"date"`
	DayGroup string          `json:"day_group"`
	Courts   []CourtSchedule `json:"courts"`
}

// getScheduleHandler godoc
//
//	@Summary		Day schedule
//	@Description	Renders the occupancy grid for one day: every visible court with 30-minute cells between the organization's opening and closing times. Rejected bookings do not occupy cells.
//	@Tags			schedule
//	@Produce		json
//	@Param			date	query		string	true	"Day to render (YYYY-MM-DD)"
//	@Success		200		{object}	ScheduleResponse
//	@Failure		400		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/schedule [get]
func (app *application) getScheduleHandler(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	day, err := schedule.ParseDate(date)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid date %q", date))
		return
	}

	ctx := r.Context()

	courts, err := app.store.Courts.List(ctx, false)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	bookings, err := app.store.Bookings.GetByDate(ctx, date)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	openMin, closeMin := 8*60, 23*60
	if org, err := app.store.Organization.Get(ctx); err == nil {
		if m, err := schedule.MinutesOfDay(org.OpenTime); err == nil {
			openMin = m
		}
		if m, err := schedule.MinutesOfDay(org.CloseTime); err == nil {
			closeMin = m
		}
	}

	response := ScheduleResponse{
		Date:     date,
		DayGroup: string(schedule.DayGroupFor(day)),
	}

	for _, court := range courts {
		cs := CourtSchedule{CourtID: court.ID, Name: court.Name}
		for m := openMin; m < closeMin; m += 30 {
			slot := ScheduleSlot{
				Time:      fmt.Sprintf("%02d:%02d", m/60, m%60),
				Available: true,
			}
			for i := range bookings {
				b := &bookings[i]
				if b.CourtID != court.ID || b.Status == store.StatusRejected {
					continue
				}
				if bookingCovers(b, m) {
					slot.Available = false
					slot.BookingID = b.ID
					slot.Reference = b.Reference
					break
				}
			}
			cs.Slots = append(cs.Slots, slot)
		}
		response.Courts = append(response.Courts, cs)
	}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// bookingCovers reports whether the booking's time range contains the cell
// starting at the given minute of day, half-open like price slots.
func bookingCovers(b *store.Booking, minute int) bool {
	startClock, endClock, err := schedule.SplitTimeRange(b.Time)
	if err != nil {
		return false
	}
	start, err := schedule.MinutesOfDay(startClock)
	if err != nil {
		return false
	}
	end, err := schedule.MinutesOfDay(endClock)
	if err != nil {
		return false
	}
	return start <= minute && minute < end
}
