package main

import (
	"errors"
	"net/http"

	"courtdesk/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ExtraPayload struct {
	Title  string `json:"title" validate:"required,max=100"`
	Price  int    `json:"price" validate:"required,min=1"`
	Unit   string `json:"unit" validate:"required,oneof=hour day month pcs service"`
	Amount int    `json:"amount" validate:"required,min=1"`
}

// createExtraHandler godoc
//
//	@Summary		Create an extra
//	@Description	Adds a bookable add-on to the catalog. Extras with unit "hour" are priced per session hour, all other units flat per quantity.
//	@Tags			extras
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		ExtraPayload	true	"Extra payload"
//	@Success		201		{object}	store.Extra
//	@Failure		400		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/extras [post]
func (app *application) createExtraHandler(w http.ResponseWriter, r *http.Request) {
	var payload ExtraPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	extra := &store.Extra{
		ID:     uuid.New().String(),
		Title:  payload.Title,
		Price:  payload.Price,
		Unit:   payload.Unit,
		Amount: payload.Amount,
	}

	if err := app.store.Extras.Create(r.Context(), extra); err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, extra); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listExtrasHandler godoc
//
//	@Summary		List extras
//	@Tags			extras
//	@Produce		json
//	@Success		200	{array}		store.Extra
//	@Failure		500	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/extras [get]
func (app *application) listExtrasHandler(w http.ResponseWriter, r *http.Request) {
	extras, err := app.store.Extras.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, extras); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getExtraHandler godoc
//
//	@Summary		Get an extra
//	@Tags			extras
//	@Produce		json
//	@Param			extraID	path		string	true	"Extra ID"
//	@Success		200		{object}	store.Extra
//	@Failure		404		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/extras/{extraID} [get]
func (app *application) getExtraHandler(w http.ResponseWriter, r *http.Request) {
	extra, err := app.store.Extras.GetByID(r.Context(), chi.URLParam(r, "extraID"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, extra); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateExtraHandler godoc
//
//	@Summary		Update an extra
//	@Tags			extras
//	@Accept			json
//	@Produce		json
//	@Param			extraID	path		string			true	"Extra ID"
//	@Param			payload	body		ExtraPayload	true	"Extra payload"
//	@Success		200		{object}	store.Extra
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/extras/{extraID} [put]
func (app *application) updateExtraHandler(w http.ResponseWriter, r *http.Request) {
	var payload ExtraPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	extra := &store.Extra{
		ID:     chi.URLParam(r, "extraID"),
		Title:  payload.Title,
		Price:  payload.Price,
		Unit:   payload.Unit,
		Amount: payload.Amount,
	}

	if err := app.store.Extras.Update(r.Context(), extra); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, extra); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteExtraHandler godoc
//
//	@Summary		Delete an extra
//	@Tags			extras
//	@Param			extraID	path		string	true	"Extra ID"
//	@Success		204		{string}	string	"No Content"
//	@Failure		404		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/extras/{extraID} [delete]
func (app *application) deleteExtraHandler(w http.ResponseWriter, r *http.Request) {
	err := app.store.Extras.Delete(r.Context(), chi.URLParam(r, "extraID"))
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
