package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"skyfleet/registry/internal/ident"
	"skyfleet/registry/internal/models/dtos"
	"skyfleet/registry/internal/services"
)

// GetOperatorHandler handles GET /api/v1/operators/{id}
func GetOperatorHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		operator, err := deps.Services.Operators.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, operator)
	}
}

// RegisterOperatorHandler handles POST /api/v1/operators
func RegisterOperatorHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload dtos.RegisterOperatorPayload
		if err := decodeBody(r, &payload); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		id, err := deps.Services.Operators.Register(r.Context(), &payload)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusCreated, &dtos.RegisterResponse{ID: id.String()})
	}
}

// ResolveOperatorAssetsHandler handles the operator asset queries:
//
//	GET /api/v1/operators/{id}/assets                 (mode from ?mode=, default ALL)
//	GET /api/v1/operators/{id}/assets/owned
//	GET /api/v1/operators/{id}/assets/delegated-to
//	GET /api/v1/operators/{id}/assets/delegated-from
//
// mode overrides the query parameter when non-empty.
func ResolveOperatorAssetsHandler(deps *Dependencies, mode services.ResolveMode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		operatorID, err := ident.Parse(chi.URLParam(r, "id"))
		if err != nil {
			respondWithAppError(w, err)
			return
		}

		resolved := mode
		if resolved == "" {
			resolved, err = services.ParseResolveMode(r.URL.Query().Get("mode"))
			if err != nil {
				respondWithAppError(w, err)
				return
			}
		}

		refs, err := deps.Services.Delegation.ResolveOperatorAssets(r.Context(), operatorID, resolved)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &refs)
	}
}
