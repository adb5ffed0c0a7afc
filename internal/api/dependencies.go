package api

import (
	"skyfleet/registry/internal/common"
	"skyfleet/registry/internal/config"
	"skyfleet/registry/internal/logging"
	"skyfleet/registry/internal/metrics"
	"skyfleet/registry/internal/services"
	"skyfleet/registry/internal/storage"
)

type Services struct {
	Aircraft   *services.AircraftService
	Vertiports *services.VertiportService
	Vertipads  *services.VertipadService
	Groups     *services.GroupService
	Delegation *services.DelegationService
	Operators  *services.OperatorService
}

type Dependencies struct {
	Store    storage.Store
	Cache    common.CacheInterface
	Metrics  *metrics.Registry
	Services *Services
}

// InitDependencies wires the service graph over one Store. The cache is
// Redis when an address is configured, in-memory otherwise.
func InitDependencies(cfg *config.Config, store storage.Store, reg *metrics.Registry) (*Dependencies, error) {
	var cache common.CacheInterface
	if cfg.RedisAddr != "" {
		redisCache, err := common.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		cache = redisCache
		logging.Info("cache backend: redis", "addr", cfg.RedisAddr)
	} else {
		cache = common.NewCacheService(60, 600)
		logging.Info("cache backend: in-memory")
	}

	svcs := &Services{
		Aircraft:   services.NewAircraftService(store, cache, reg),
		Vertiports: services.NewVertiportService(store, cache, reg, cfg.VertiportRemoval),
		Vertipads:  services.NewVertipadService(store, cache, reg),
		Groups:     services.NewGroupService(store, cache, reg),
		Delegation: services.NewDelegationService(store),
		Operators:  services.NewOperatorService(store),
	}

	return &Dependencies{
		Store:    store,
		Cache:    cache,
		Metrics:  reg,
		Services: svcs,
	}, nil
}
