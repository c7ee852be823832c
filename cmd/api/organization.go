package main

import (
	"fmt"
	"net/http"

	"courtdesk/internal/schedule"
	"courtdesk/internal/store"
)

type OrganizationPayload struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Street      string `json:"street" validate:"required,max=255"`
	Phone       string `json:"phone" validate:"required,max=25"`
	Email       string `json:"email" validate:"required,email,max=255"`
	OpenTime    string `json:"open_time" validate:"required,clock"`
	CloseTime   string `json:"close_time" validate:"required,clock"`
	RefundHours int    `json:"refund_hours" validate:"min=0,max=720"`
}

// getOrganizationHandler godoc
//
//	@Summary		Get the organization profile
//	@Tags			organization
//	@Produce		json
//	@Success		200	{object}	store.Organization
//	@Failure		500	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/organization [get]
func (app *application) getOrganizationHandler(w http.ResponseWriter, r *http.Request) {
	org, err := app.store.Organization.Get(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, org); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateOrganizationHandler godoc
//
//	@Summary		Update the organization profile
//	@Description	Whole-object replace. refund_hours is the cutoff used when counting refund-eligible sessions of a booking.
//	@Tags			organization
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		OrganizationPayload	true	"Organization payload"
//	@Success		200		{object}	store.Organization
//	@Failure		400		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/organization [put]
func (app *application) updateOrganizationHandler(w http.ResponseWriter, r *http.Request) {
	var payload OrganizationPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	open, err := schedule.MinutesOfDay(payload.OpenTime)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	closeAt, err := schedule.MinutesOfDay(payload.CloseTime)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if open >= closeAt {
		app.badRequestResponse(w, r, fmt.Errorf("open_time must be before close_time"))
		return
	}

	org := &store.Organization{
		Name:        payload.Name,
		Description: payload.Description,
		Street:      payload.Street,
		Phone:       payload.Phone,
		Email:       payload.Email,
		OpenTime:    payload.OpenTime,
		CloseTime:   payload.CloseTime,
		RefundHours: payload.RefundHours,
	}

	if err := app.store.Organization.Update(r.Context(), org); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, org); err != nil {
		app.internalServerError(w, r, err)
	}
}
