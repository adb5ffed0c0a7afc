package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"skyfleet/registry/internal/models/dtos"
)

// RegisterVertiportHandler handles POST /api/v1/vertiports
func RegisterVertiportHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload dtos.RegisterVertiportPayload
		if err := decodeBody(r, &payload); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		id, err := deps.Services.Vertiports.Register(r.Context(), &payload)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusCreated, &dtos.RegisterResponse{ID: id.String()})
	}
}

// GetVertiportHandler handles GET /api/v1/vertiports/{id}
func GetVertiportHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vertiport, err := deps.Services.Vertiports.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, vertiport)
	}
}

// UpdateVertiportHandler handles PUT /api/v1/vertiports/{id}
func UpdateVertiportHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload dtos.UpdateVertiportPayload
		if err := decodeBody(r, &payload); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		vertiport, err := deps.Services.Vertiports.Update(r.Context(), chi.URLParam(r, "id"), &payload)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, vertiport)
	}
}

// RemoveVertiportHandler handles DELETE /api/v1/vertiports/{id}
func RemoveVertiportHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Services.Vertiports.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess[struct{}](w, http.StatusOK, nil)
	}
}
