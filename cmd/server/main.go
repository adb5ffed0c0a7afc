package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/jmoiron/sqlx"

	"skyfleet/registry/internal/api"
	"skyfleet/registry/internal/config"
	"skyfleet/registry/internal/db"
	"skyfleet/registry/internal/logging"
	"skyfleet/registry/internal/metrics"
	"skyfleet/registry/internal/routes"
	"skyfleet/registry/internal/storage"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("registry starting up",
		"environment", cfg.AppEnv,
		"backend", cfg.Backend,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	var (
		store  storage.Store
		sqlxDB *sqlx.DB
	)
	switch cfg.Backend {
	case "gorm":
		orm, err := db.InitPostgresORM(cfg.DatabaseURL)
		if err != nil {
			logging.Error("failed to connect to Postgres (GORM)", "error", err.Error())
			log.Fatalf("failed to connect to Postgres (GORM): %v", err)
		}
		store = storage.NewGorm(orm)
		logging.Info("connected to Postgres (GORM)")

		// Migrations run through sqlx regardless of the serving backend.
		sqlxDB, err = db.InitPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to Postgres for migrations: %v", err)
		}
	default:
		conn, err := db.InitPostgres(cfg.DatabaseURL)
		if err != nil {
			logging.Error("failed to connect to Postgres (sqlx)", "error", err.Error())
			log.Fatalf("failed to connect to Postgres (sqlx): %v", err)
		}
		sqlxDB = conn
		logging.Info("connected to Postgres (sqlx)")
	}

	if err := db.RunMigrations(sqlxDB); err != nil {
		logging.Error("failed to apply migrations", "error", err.Error())
		log.Fatalf("failed to apply migrations: %v", err)
	}
	logging.Info("schema migrations applied")

	metricsReg := metrics.NewRegistry()
	if store == nil {
		store = storage.NewPostgres(sqlxDB, metricsReg)
	}

	deps, err := api.InitDependencies(cfg, store, metricsReg)
	if err != nil {
		logging.Error("failed to initialize dependencies", "error", err.Error())
		log.Fatalf("failed to initialize dependencies: %v", err)
	}

	upSince := time.Now()
	router := routes.RegisterRoutes(cfg, deps, sqlxDB, upSince)

	logging.Info("server starting", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		logging.Error("server stopped", "error", err.Error())
		log.Fatalf("server stopped: %v", err)
	}
}
