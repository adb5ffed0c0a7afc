package routes

import (
	"github.com/go-chi/chi/v5"

	"skyfleet/registry/internal/api"
	"skyfleet/registry/internal/config"
	"skyfleet/registry/internal/middleware"
	"skyfleet/registry/internal/services"
)

// RegisterAPIRoutes registers all API v1 routes and handlers.
// This keeps API route registration separate from the main router setup.
func RegisterAPIRoutes(r chi.Router, cfg *config.Config, deps *api.Dependencies) {
	r.Route("/api/v1", func(v1 chi.Router) {
		// global: all registry routes must carry a valid bearer token
		v1.Use(middleware.AuthMiddleware(cfg.AuthSecret))

		v1.Route("/operators", func(ops chi.Router) {
			ops.Post("/", api.RegisterOperatorHandler(deps))
			ops.Get("/{id}", api.GetOperatorHandler(deps))
			ops.Get("/{id}/assets", api.ResolveOperatorAssetsHandler(deps, ""))
			ops.Get("/{id}/assets/owned", api.ResolveOperatorAssetsHandler(deps, services.ModeOwned))
			ops.Get("/{id}/assets/delegated-to", api.ResolveOperatorAssetsHandler(deps, services.ModeDelegatedTo))
			ops.Get("/{id}/assets/delegated-from", api.ResolveOperatorAssetsHandler(deps, services.ModeDelegatedFrom))
		})

		v1.Route("/aircraft", func(ac chi.Router) {
			ac.Post("/", api.RegisterAircraftHandler(deps))
			ac.Get("/{id}", api.GetAircraftHandler(deps))
			ac.Put("/{id}", api.UpdateAircraftHandler(deps))
			ac.Delete("/{id}", api.RemoveAircraftHandler(deps))
		})

		v1.Route("/vertiports", func(vp chi.Router) {
			vp.Post("/", api.RegisterVertiportHandler(deps))
			vp.Get("/{id}", api.GetVertiportHandler(deps))
			vp.Put("/{id}", api.UpdateVertiportHandler(deps))
			vp.Delete("/{id}", api.RemoveVertiportHandler(deps))
		})

		v1.Route("/vertipads", func(pad chi.Router) {
			pad.Post("/", api.RegisterVertipadHandler(deps))
			pad.Get("/{id}", api.GetVertipadHandler(deps))
			pad.Put("/{id}", api.UpdateVertipadHandler(deps))
			pad.Delete("/{id}", api.RemoveVertipadHandler(deps))
		})

		v1.Route("/assets/groups", func(g chi.Router) {
			g.Post("/", api.RegisterGroupHandler(deps))
			g.Get("/{id}", api.GetGroupHandler(deps))
			g.Put("/{id}", api.UpdateGroupHandler(deps))
			g.Delete("/{id}", api.RemoveGroupHandler(deps))
			g.Get("/{id}/assets", api.ExpandGroupHandler(deps))
			g.Put("/{id}/delegatee", api.SetDelegateeHandler(deps))
		})
	})
}
