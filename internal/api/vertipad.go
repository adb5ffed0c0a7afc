package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"skyfleet/registry/internal/models/dtos"
)

// RegisterVertipadHandler handles POST /api/v1/vertipads
func RegisterVertipadHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload dtos.RegisterVertipadPayload
		if err := decodeBody(r, &payload); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		id, err := deps.Services.Vertipads.Register(r.Context(), &payload)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusCreated, &dtos.RegisterResponse{ID: id.String()})
	}
}

// GetVertipadHandler handles GET /api/v1/vertipads/{id}
func GetVertipadHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vertipad, err := deps.Services.Vertipads.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, vertipad)
	}
}

// UpdateVertipadHandler handles PUT /api/v1/vertipads/{id}
func UpdateVertipadHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload dtos.UpdateVertipadPayload
		if err := decodeBody(r, &payload); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		vertipad, err := deps.Services.Vertipads.Update(r.Context(), chi.URLParam(r, "id"), &payload)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, vertipad)
	}
}

// RemoveVertipadHandler handles DELETE /api/v1/vertipads/{id}
func RemoveVertipadHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Services.Vertipads.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess[struct{}](w, http.StatusOK, nil)
	}
}
