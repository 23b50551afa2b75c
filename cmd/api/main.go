package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/therapy-report-api/internal/config"
	"github.com/jwalitptl/therapy-report-api/internal/dataset"
	datasetHandler "github.com/jwalitptl/therapy-report-api/internal/handler/dataset"
	reportHandler "github.com/jwalitptl/therapy-report-api/internal/handler/report"
	sessionHandler "github.com/jwalitptl/therapy-report-api/internal/handler/session"
	"github.com/jwalitptl/therapy-report-api/internal/router"
	"github.com/jwalitptl/therapy-report-api/pkg/logger"
	"github.com/jwalitptl/therapy-report-api/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Dataset.CSVPath), 0o755); err != nil {
		log.Fatal().Err(err).Msg("failed to create dataset directory")
	}

	// Initialize shared infrastructure
	level, err := logger.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.Logging.Level).Msg("invalid log level")
	}
	appLogger := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})
	m := metrics.NewMetrics("therapy_report")
	store := dataset.NewStore(cfg.Dataset.CacheTTL, m)
	source := dataset.NewSource(store, cfg.Dataset.CSVPath)

	// Initialize handlers
	reportH := reportHandler.NewHandler(source)
	sessionH := sessionHandler.NewHandler(source, m, appLogger)
	datasetH := datasetHandler.NewHandler(store, cfg.Dataset, cfg.Generator, m, appLogger)

	r := router.NewRouter(router.Config{
		RateLimit: rate.Limit(cfg.Server.RateLimit),
		RateBurst: cfg.Server.RateBurst,
		Timeout:   time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}, m, reportH, sessionH, datasetH)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server stopped")
}
