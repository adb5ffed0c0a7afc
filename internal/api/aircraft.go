package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"skyfleet/registry/internal/models/dtos"
)

// RegisterAircraftHandler handles POST /api/v1/aircraft
func RegisterAircraftHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload dtos.RegisterAircraftPayload
		if err := decodeBody(r, &payload); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		id, err := deps.Services.Aircraft.Register(r.Context(), &payload)
		if err != nil {
			respondWithAppError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusCreated, &dtos.RegisterResponse{ID: id.String()})
	}
}

// GetAircraftHandler handles GET /api/v1/aircraft/{id}
func GetAircraftHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		aircraft, err := deps.Services.Aircraft.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, aircraft)
	}
}

// UpdateAircraftHandler handles PUT /api/v1/aircraft/{id}
func UpdateAircraftHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload dtos.UpdateAircraftPayload
		if err := decodeBody(r, &payload); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		aircraft, err := deps.Services.Aircraft.Update(r.Context(), chi.URLParam(r, "id"), &payload)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, aircraft)
	}
}

// RemoveAircraftHandler handles DELETE /api/v1/aircraft/{id}
func RemoveAircraftHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Services.Aircraft.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess[struct{}](w, http.StatusOK, nil)
	}
}
