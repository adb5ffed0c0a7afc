package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"skyfleet/registry/internal/auth"
	"skyfleet/registry/internal/models/dtos"
)

// RegisterGroupHandler handles POST /api/v1/assets/groups
func RegisterGroupHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload dtos.RegisterAssetGroupPayload
		if err := decodeBody(r, &payload); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		id, err := deps.Services.Groups.Register(r.Context(), &payload)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusCreated, &dtos.RegisterResponse{ID: id.String()})
	}
}

// GetGroupHandler handles GET /api/v1/assets/groups/{id}
func GetGroupHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		group, err := deps.Services.Groups.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, group)
	}
}

// UpdateGroupHandler handles PUT /api/v1/assets/groups/{id}
func UpdateGroupHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload dtos.UpdateAssetGroupPayload
		if err := decodeBody(r, &payload); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		group, err := deps.Services.Groups.Update(r.Context(), chi.URLParam(r, "id"), &payload)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, group)
	}
}

// RemoveGroupHandler handles DELETE /api/v1/assets/groups/{id}
func RemoveGroupHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Services.Groups.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess[struct{}](w, http.StatusOK, nil)
	}
}

// ExpandGroupHandler handles GET /api/v1/assets/groups/{id}/assets
func ExpandGroupHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := deps.Services.Groups.ExpandGroup(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		ids := make([]string, 0, len(members))
		for _, m := range members {
			ids = append(ids, m.String())
		}
		respondWithSuccess(w, http.StatusOK, &ids)
	}
}

// SetDelegateeHandler handles PUT /api/v1/assets/groups/{id}/delegatee.
// The requesting operator comes from the bearer token, never the body.
func SetDelegateeHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester := auth.CallerID(r.Context())
		if requester == uuid.Nil {
			respondWithError(w, http.StatusUnauthorized, "missing operator claims")
			return
		}

		var payload dtos.SetDelegateePayload
		if err := decodeBody(r, &payload); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		group, err := deps.Services.Groups.SetDelegatee(r.Context(), chi.URLParam(r, "id"), &payload, requester)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, group)
	}
}
