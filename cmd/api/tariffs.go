package main

import (
	"errors"
	"net/http"

	"courtdesk/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type TariffPayload struct {
	Title    string            `json:"title" validate:"required,max=100"`
	CourtIDs []string          `json:"court_ids" validate:"dive,required"`
	IsActive bool              `json:"is_active"`
	Prices   PriceTablePayload `json:"prices"`
}

// createTariffHandler godoc
//
//	@Summary		Create a tariff
//	@Tags			tariffs
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		TariffPayload	true	"Tariff payload"
//	@Success		201		{object}	store.Tariff
//	@Failure		400		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/tariffs [post]
func (app *application) createTariffHandler(w http.ResponseWriter, r *http.Request) {
	var payload TariffPayload
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

	tariff := &store.Tariff{
		ID:       uuid.New().String(),
		Title:    payload.Title,
		CourtIDs: payload.CourtIDs,
		IsActive: payload.IsActive,
		Prices:   prices,
	}

	if err := app.store.Tariffs.Create(r.Context(), tariff); err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, tariff); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listTariffsHandler godoc
//
//	@Summary		List tariffs
//	@Tags			tariffs
//	@Produce		json
//	@Success		200	{array}		store.Tariff
//	@Failure		500	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/tariffs [get]
func (app *application) listTariffsHandler(w http.ResponseWriter, r *http.Request) {
	tariffs, err := app.store.Tariffs.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, tariffs); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getTariffHandler godoc
//
//	@Summary		Get a tariff
//	@Tags			tariffs
//	@Produce		json
//	@Param			tariffID	path		string	true	"Tariff ID"
//	@Success		200			{object}	store.Tariff
//	@Failure		404			{object}	error
//	@Failure		500			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/tariffs/{tariffID} [get]
func (app *application) getTariffHandler(w http.ResponseWriter, r *http.Request) {
	tariff, err := app.store.Tariffs.GetByID(r.Context(), chi.URLParam(r, "tariffID"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, tariff); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateTariffHandler godoc
//
//	@Summary		Update a tariff
//	@Description	Whole-object replace of the tariff and its price tables.
//	@Tags			tariffs
//	@Accept			json
//	@Produce		json
//	@Param			tariffID	path		string			true	"Tariff ID"
//	@Param			payload		body		TariffPayload	true	"Tariff payload"
//	@Success		200			{object}	store.Tariff
//	@Failure		400			{object}	error
//	@Failure		404			{object}	error
//	@Failure		500			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/tariffs/{tariffID} [put]
func (app *application) updateTariffHandler(w http.ResponseWriter, r *http.Request) {
	var payload TariffPayload
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

	tariff := &store.Tariff{
		ID:       chi.URLParam(r, "tariffID"),
		Title:    payload.Title,
		CourtIDs: payload.CourtIDs,
		IsActive: payload.IsActive,
		Prices:   prices,
	}

	if err := app.store.Tariffs.Update(r.Context(), tariff); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, tariff); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteTariffHandler godoc
//
//	@Summary		Delete a tariff
//	@Tags			tariffs
//	@Param			tariffID	path		string	true	"Tariff ID"
//	@Success		204			{string}	string	"No Content"
//	@Failure		404			{object}	error
//	@Failure		500			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/tariffs/{tariffID} [delete]
func (app *application) deleteTariffHandler(w http.ResponseWriter, r *http.Request) {
	err := app.store.Tariffs.Delete(r.Context(), chi.URLParam(r, "tariffID"))
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

// toggleTariffActiveHandler godoc
//
//	@Summary		Toggle tariff active state
//	@Tags			tariffs
//	@Produce		json
//	@Param			tariffID	path		string	true	"Tariff ID"
//	@Success		200			{object}	map[string]bool
//	@Failure		404			{object}	error
//	@Failure		500			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/tariffs/{tariffID}/active [patch]
func (app *application) toggleTariffActiveHandler(w http.ResponseWriter, r *http.Request) {
	active, err := app.store.Tariffs.ToggleActive(r.Context(), chi.URLParam(r, "tariffID"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]bool{"is_active": active}); err != nil {
		app.internalServerError(w, r, err)
	}
}
