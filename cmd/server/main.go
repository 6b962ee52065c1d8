package main

import (
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/api"
	"route-optimizer-service/internal/app"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"time"
)

// main is the application composition root.
// It wires concrete adapters (ORS, Nominatim, SQL) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := obs.NewLogger(os.Stdout, obs.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	if cfg.ORSAPIKey == "" {
		log.Fatal("ORS_API_KEY is required")
	}

	repo, conn, err := openRepository(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if conn != nil {
		defer conn.Close()
	}

	planner, err := app.NewPlanner(cfg, repo)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(planner, repo, logger)

	// Geocoding is paced at one call per interval, so large tables take a
	// while; the write timeout leaves room for that.
	logger.Info("server listening",
		slog.String("addr", ":"+cfg.Port),
		slog.String("geocoder", cfg.Geocoder),
		slog.Bool("persistence", repo != nil),
	)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openRepository returns a nil repository when no database is configured.
func openRepository(cfg *config.Config) (ports.ItineraryRepository, *sql.DB, error) {
	if cfg.DatabaseURL == "" && cfg.DBPath == "" {
		return nil, nil, nil
	}

	conn, dialect, err := db.Open(cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}

	if err := repositories.InitSchema(conn); err != nil {
		conn.Close()
		return nil, nil, err
	}

	return repositories.NewItineraryRepository(conn, dialect), conn, nil
}
