package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/openclaw/libresync/internal/config"
	"github.com/openclaw/libresync/internal/database"
	"github.com/openclaw/libresync/internal/handler"
	"github.com/openclaw/libresync/internal/jobs"
	"github.com/openclaw/libresync/internal/linkup"
	"github.com/openclaw/libresync/internal/middleware"
	"github.com/openclaw/libresync/internal/model"
	"github.com/openclaw/libresync/internal/redis"
	"github.com/openclaw/libresync/internal/repository"
	"github.com/openclaw/libresync/internal/service"
	"github.com/openclaw/libresync/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	setLogLevel(cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()

	if err := db.EnsureSchema(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure schema")
	}
	log.Info().Msg("database connected")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	readingRepo := repository.NewReadingRepository(db.DB)
	alarmRepo := repository.NewAlarmRepository(db.DB)
	sensorRepo := repository.NewSensorRepository(db.DB)

	linkUpClient := linkup.New(linkup.Options{
		Site:          cfg.SiteURL(),
		ScrapeLogbook: cfg.ScrapeLogbook,
		HTTPClient:    &http.Client{Timeout: config.LinkUpHTTPTimeout},
	})

	settings := store.NewRedisSettings(redisClient)
	creds := model.Credentials{Email: cfg.LinkUpEmail, Password: cfg.LinkUpPassword}

	syncService := service.NewSyncService(
		linkUpClient, creds, settings, readingRepo, alarmRepo, sensorRepo, redisClient,
	)

	pollJob := jobs.NewPollJob(syncService, cfg.PollInterval())
	pollJob.Start()
	defer pollJob.Stop()

	apiAuth := middleware.NewAPIAuthMiddleware(cfg.APIToken)
	readingsHandler := handler.NewReadingsHandler(readingRepo, alarmRepo, sensorRepo, syncService)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(apiAuth.Handler)
		r.Mount("/", readingsHandler.Routes())
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
