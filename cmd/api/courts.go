package main

import (
	"errors"
	"fmt"
	"net/http"

	"courtdesk/internal/schedule"
	"courtdesk/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type PriceSlotPayload struct {
	DayGroup string `json:"day_group" validate:"required,daygroup"`
	From     string `json:"from" validate:"required,clock"`
	To       string `json:"to" validate:"required,clock"`
	Price    int    `json:"price" validate:"required,min=1"`
}

type PriceTablePayload struct {
	Weekdays []PriceSlotPayload `json:"weekdays" validate:"dive"`
	Weekends []PriceSlotPayload `json:"weekends" validate:"dive"`
}

type CourtPayload struct {
	Name      string            `json:"name" validate:"required,max=100"`
	CoverType string            `json:"cover_type" validate:"required,oneof=hard ground grass terraflex"`
	SportType string            `json:"sport_type" validate:"required,oneof=tennis padel squash"`
	IsIndoor  bool              `json:"is_indoor"`
	IsVisible bool              `json:"is_visible"`
	Street    string            `json:"street" validate:"required,max=255"`
	Prices    PriceTablePayload `json:"prices"`
}

func slotFromPayload(p PriceSlotPayload) (store.PriceSlot, error) {
	from, err := schedule.MinutesOfDay(p.From)
	if err != nil {
		return store.PriceSlot{}, err
	}
	to, err := schedule.MinutesOfDay(p.To)
	if err != nil {
		return store.PriceSlot{}, err
	}
	if from >= to {
		return store.PriceSlot{}, fmt.Errorf("price slot %s-%s is empty or inverted", p.From, p.To)
	}
	return store.PriceSlot{
		ID:       uuid.New().String(),
		DayGroup: p.DayGroup,
		From:     p.From,
		To:       p.To,
		Price:    p.Price,
	}, nil
}

func tableFromPayload(p PriceTablePayload) (store.PriceTable, error) {
	var table store.PriceTable
	for _, sp := range p.Weekdays {
		slot, err := slotFromPayload(sp)
		if err != nil {
			return store.PriceTable{}, err
		}
		slot.DayGroup = "weekdays"
		table.Weekdays = append(table.Weekdays, slot)
	}
	for _, sp := range p.Weekends {
		slot, err := slotFromPayload(sp)
		if err != nil {
			return store.PriceTable{}, err
		}
		slot.DayGroup = "weekends"
		table.Weekends = append(table.Weekends, slot)
	}
	return table, nil
}

// createCourtHandler godoc
//
//	@Summary		Create a court
//	@Tags			courts
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CourtPayload	true	"Court payload"
//	@Success		201		{object}	store.Court
//	@Failure		400		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/courts [post]
func (app *application) createCourtHandler(w http.ResponseWriter, r *http.Request) {
	var payload CourtPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	prices, err := tableFromPayload(payload.Prices)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	court := &store.Court{
		ID:        uuid.New().String(),
		Name:      payload.Name,
		CoverType: payload.CoverType,
		SportType: payload.SportType,
		IsIndoor:  payload.IsIndoor,
		IsVisible: payload.IsVisible,
		Street:    payload.Street,
		Prices:    prices,
	}

	if err := app.store.Courts.Create(r.Context(), court); err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, court); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listCourtsHandler godoc
//
//	@Summary		List courts
//	@Description	Lists courts with their price tables. Hidden courts are included only with include_hidden=true.
//	@Tags			courts
//	@Produce		json
//	@Param			include_hidden	query		bool	false	"Include hidden courts"
//	@Success		200				{array}		store.Court
//	@Failure		500				{object}	error
//	@Security		ApiKeyAuth
//	@Router			/courts [get]
func (app *application) listCourtsHandler(w http.ResponseWriter, r *http.Request) {
	includeHidden := r.URL.Query().Get("include_hidden") == "true"

	courts, err := app.store.Courts.List(r.Context(), includeHidden)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, courts); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getCourtHandler godoc
//
//	@Summary		Get a court
//	@Tags			courts
//	@Produce		json
//	@Param			courtID	path		string	true	"Court ID"
//	@Success		200		{object}	store.Court
//	@Failure		404		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/courts/{courtID} [get]
func (app *application) getCourtHandler(w http.ResponseWriter, r *http.Request) {
	court, err := app.store.Courts.GetByID(r.Context(), chi.URLParam(r, "courtID"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, court); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateCourtHandler godoc
//
//	@Summary		Update a court
//	@Description	Whole-object replace of the court and its price tables, mirroring the management form.
//	@Tags			courts
//	@Accept			json
//	@Produce		json
//	@Param			courtID	path		string			true	"Court ID"
//	@Param			payload	body		CourtPayload	true	"Court payload"
//	@Success		200		{object}	store.Court
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/courts/{courtID} [put]
func (app *application) updateCourtHandler(w http.ResponseWriter, r *http.Request) {
	courtID := chi.URLParam(r, "courtID")

	var payload CourtPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	existing, err := app.store.Courts.GetByID(r.Context(), courtID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	prices, err := tableFromPayload(payload.Prices)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	court := &store.Court{
		ID:        courtID,
		Name:      payload.Name,
		CoverType: payload.CoverType,
		SportType: payload.SportType,
		IsIndoor:  payload.IsIndoor,
		IsVisible: payload.IsVisible,
		Street:    payload.Street,
		ImageURL:  existing.ImageURL,
		Prices:    prices,
	}

	if err := app.store.Courts.Update(r.Context(), court); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, court); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteCourtHandler godoc
//
//	@Summary		Delete a court
//	@Tags			courts
//	@Param			courtID	path		string	true	"Court ID"
//	@Success		204		{string}	string	"No Content"
//	@Failure		404		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/courts/{courtID} [delete]
func (app *application) deleteCourtHandler(w http.ResponseWriter, r *http.Request) {
	err := app.store.Courts.Delete(r.Context(), chi.URLParam(r, "courtID"))
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

// toggleCourtVisibilityHandler godoc
//
//	@Summary		Toggle court visibility
//	@Tags			courts
//	@Produce		json
//	@Param			courtID	path		string	true	"Court ID"
//	@Success		200		{object}	map[string]bool
//	@Failure		404		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/courts/{courtID}/visibility [patch]
func (app *application) toggleCourtVisibilityHandler(w http.ResponseWriter, r *http.Request) {
	visible, err := app.store.Courts.ToggleVisibility(r.Context(), chi.URLParam(r, "courtID"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]bool{"is_visible": visible}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// addPriceSlotHandler godoc
//
//	@Summary		Add a price slot
//	@Tags			courts
//	@Accept			json
//	@Produce		json
//	@Param			courtID	path		string				true	"Court ID"
//	@Param			payload	body		PriceSlotPayload	true	"Slot payload"
//	@Success		201		{object}	store.PriceSlot
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/courts/{courtID}/price-slots [post]
func (app *application) addPriceSlotHandler(w http.ResponseWriter, r *http.Request) {
	var payload PriceSlotPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	slot, err := slotFromPayload(payload)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Courts.AddPriceSlot(r.Context(), chi.URLParam(r, "courtID"), &slot); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, slot); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updatePriceSlotHandler godoc
//
//	@Summary		Update a price slot
//	@Tags			courts
//	@Accept			json
//	@Produce		json
//	@Param			courtID	path		string				true	"Court ID"
//	@Param			slotID	path		string				true	"Slot ID"
//	@Param			payload	body		PriceSlotPayload	true	"Slot payload"
//	@Success		200		{object}	store.PriceSlot
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/courts/{courtID}/price-slots/{slotID} [put]
func (app *application) updatePriceSlotHandler(w http.ResponseWriter, r *http.Request) {
	var payload PriceSlotPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	slot, err := slotFromPayload(payload)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	slot.ID = chi.URLParam(r, "slotID")

	if err := app.store.Courts.UpdatePriceSlot(r.Context(), chi.URLParam(r, "courtID"), &slot); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, slot); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deletePriceSlotHandler godoc
//
//	@Summary		Delete a price slot
//	@Tags			courts
//	@Param			courtID	path		string	true	"Court ID"
//	@Param			slotID	path		string	true	"Slot ID"
//	@Success		204		{string}	string	"No Content"
//	@Failure		404		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/courts/{courtID}/price-slots/{slotID} [delete]
func (app *application) deletePriceSlotHandler(w http.ResponseWriter, r *http.Request) {
	err := app.store.Courts.DeletePriceSlot(r.Context(), chi.URLParam(r, "courtID"), chi.URLParam(r, "slotID"))
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
