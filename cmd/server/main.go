package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"fuel-route-service/internal/adapters/cache"
	"fuel-route-service/internal/adapters/ors"
	"fuel-route-service/internal/adapters/repositories"
	"fuel-route-service/internal/api"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres, ORS) behind ports and starts
// the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal(err)
	}

	logger, err := obs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	sqliteDB, err := openSqlite(cfg.DBPath)
	if err != nil {
		logger.Fatal("open sqlite database", zap.Error(err))
	}
	defer sqliteDB.Close()

	if err := repositories.InitSchema(sqliteDB); err != nil {
		logger.Fatal("init sqlite schema", zap.Error(err))
	}

	// Trip history goes to Postgres when DATABASE_URL is set; the local
	// SQLite file otherwise. The geocode cache always stays local.
	var repo ports.TripRepository = repositories.NewSqliteTripRepository(sqliteDB)
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		pgDB, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("open postgres database", zap.Error(err))
		}
		defer pgDB.Close()
		repo = repositories.NewSQLTripRepository(pgDB)
		logger.Info("trip history backed by postgres")
	}

	orsClient, err := ors.NewClient(cfg.ORSAPIKey, cfg.ORSBaseURL, cfg.CountryCode, cfg.DefaultProfileKey, logger)
	if err != nil {
		logger.Fatal("build ors client", zap.Error(err))
	}

	geocodeCache := cache.NewSqliteGeocodeCache(sqliteDB)
	validator := services.NewGeocodeValidator(logger, orsClient, geocodeCache)
	assembler := services.NewRouteAssembler(logger, orsClient)
	optimizer := services.NewSpeedCostOptimizer(logger, domain.NewRouteFactors())
	pipeline := services.NewTripPipeline(logger, validator, assembler, optimizer, domain.NewVehicleCatalog(), repo)

	router := api.NewRouter(logger, pipeline)

	// Timeouts are tuned for cold-cache optimization (two external API calls).
	logger.Info("server listening", zap.String("addr", ":"+cfg.ServerPort))
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logger.Fatal("server stopped", zap.Error(srv.ListenAndServe()))
}

func openSqlite(dbPath string) (*sql.DB, error) {
	sqliteDB, err := sql.Open("sqlite", filepath.Clean(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", dbPath, err)
	}

	if err := sqliteDB.Ping(); err != nil {
		return nil, fmt.Errorf("verify sqlite connection to %q: %w", dbPath, err)
	}

	return sqliteDB, nil
}
