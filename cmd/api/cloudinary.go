package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"courtdesk/internal/store"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/go-chi/chi/v5"
)

func (app *application) uploadToCloudinary(file io.Reader, publicID string) (string, error) {
	resp, err := app.cld.Upload.Upload(
		context.Background(),
		file,
		uploader.UploadParams{
			Folder:    "courts",
			PublicID:  publicID,
			Overwrite: api.Bool(false),
		},
	)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return resp.SecureURL, nil
}

func (app *application) deletePhotoFromCloudinary(photoURL string) error {
	publicID, err := extractPublicIDFromURL(photoURL)
	if err != nil {
		return fmt.Errorf("failed to extract public ID: %w", err)
	}

	_, err = app.cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete photo from Cloudinary: %w", err)
	}
	return nil
}

func extractPublicIDFromURL(photoURL string) (string, error) {
	parsedURL, err := url.Parse(photoURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}

	pathParts := strings.Split(parsedURL.Path, "/")
	for i, part := range pathParts {
		if part == "upload" && i+1 < len(pathParts) {
			return strings.Join(pathParts[i+1:], "/"), nil
		}
	}
	return "", errors.New("failed to extract public ID from URL")
}

// uploadCourtPhotoHandler godoc
//
//	@Summary		Upload a court photo
//	@Description	Accepts a multipart "photo" file, stores it on Cloudinary and sets the court's image URL. Replaces the previous photo when one exists.
//	@Tags			courts
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			courtID	path		string	true	"Court ID"
//	@Param			photo	formData	file	true	"Photo file"
//	@Success		200		{object}	map[string]string
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/courts/{courtID}/photo [post]
func (app *application) uploadCourtPhotoHandler(w http.ResponseWriter, r *http.Request) {
	if app.cld == nil {
		app.badRequestResponse(w, r, fmt.Errorf("photo storage is not configured"))
		return
	}

	courtID := chi.URLParam(r, "courtID")

	court, err := app.store.Courts.GetByID(r.Context(), courtID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil { //10mb
		app.badRequestResponse(w, r, err)
		return
	}
	file, _, err := r.FormFile("photo")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	publicID := fmt.Sprintf("court_%s_%d", courtID, time.Now().UnixNano())
	imageURL, err := app.uploadToCloudinary(file, publicID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if court.ImageURL != "" {
		if err := app.deletePhotoFromCloudinary(court.ImageURL); err != nil {
			app.logger.Errorw("error deleting previous court photo", "court", courtID, "error", err)
		}
	}

	if err := app.store.Courts.SetImageURL(r.Context(), courtID, imageURL); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"image_url": imageURL}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteCourtPhotoHandler godoc
//
//	@Summary		Delete a court photo
//	@Tags			courts
//	@Param			courtID	path		string	true	"Court ID"
//	@Success		204		{string}	string	"No Content"
//	@Failure		404		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/courts/{courtID}/photo [delete]
func (app *application) deleteCourtPhotoHandler(w http.ResponseWriter, r *http.Request) {
	courtID := chi.URLParam(r, "courtID")

	court, err := app.store.Courts.GetByID(r.Context(), courtID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if court.ImageURL != "" && app.cld != nil {
		if err := app.deletePhotoFromCloudinary(court.ImageURL); err != nil {
			app.logger.Errorw("error deleting court photo", "court", courtID, "error", err)
		}
	}

	if err := app.store.Courts.SetImageURL(r.Context(), courtID, ""); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
