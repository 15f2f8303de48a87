package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minyoungbaek/eventory/internal/application/club"
	"github.com/minyoungbaek/eventory/internal/application/event"
	"github.com/minyoungbaek/eventory/internal/application/review"
	"github.com/minyoungbaek/eventory/internal/config"
	"github.com/minyoungbaek/eventory/internal/infrastructure/postgres"
	"github.com/minyoungbaek/eventory/internal/infrastructure/redis"
	"github.com/minyoungbaek/eventory/internal/pkg/logger"
	"github.com/minyoungbaek/eventory/internal/transport/http/handlers"
	"github.com/minyoungbaek/eventory/internal/transport/http/middleware"
	"github.com/minyoungbaek/eventory/internal/transport/http/router"
)

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	if cfg.LogLevel != "" {
		_ = os.Setenv("LOG_LEVEL", cfg.LogLevel)
	}

	logger.Init()
	log := logger.Logger.With().
		Str("service", "eventory-api").
		Str("env", cfg.AppEnv).
		Logger()

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---- Postgres ----
	dbPool, err := pgxpool.New(rootCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres pool create failed")
	}
	defer dbPool.Close()

	{
		pingCtx, cancel := context.WithTimeout(rootCtx, 5*time.Second)
		defer cancel()

		if err := dbPool.Ping(pingCtx); err != nil {
			log.Fatal().Err(err).Msg("postgres ping failed")
		}
		log.Info().Msg("postgres connected")
	}

	clubRepo := postgres.NewClubRepository(dbPool)
	eventRepo := postgres.NewEventRepository(dbPool)
	reviewRepo := postgres.NewReviewRepository(dbPool)
	refdataRepo := postgres.NewRefDataRepository(dbPool)

	// ---- Redis ----
	cache := redis.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	{
		pingCtx, cancel := context.WithTimeout(rootCtx, 2*time.Second)
		defer cancel()

		// Best-effort, the service degrades to uncached refdata lookups.
		if err := cache.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Msg("redis ping failed (continuing)")
		} else {
			log.Info().Msg("redis connected")
		}
	}
	refdata := redis.NewRefDataCache(cache, refdataRepo)

	// ---- Application services ----
	clock := systemClock{}
	clubSvc := club.New(clubRepo, clock)
	eventSvc := event.New(eventRepo, clubRepo, refdata, clock)
	reviewSvc := review.New(reviewRepo, eventRepo, clubRepo, clock)

	// ---- HTTP ----
	auth := middleware.NewAuth(cfg.JWTSecret, cfg.JWTIssuer)
	httpHandler := router.New(
		handlers.NewClubsHandler(clubSvc),
		handlers.NewEventsHandler(eventSvc),
		handlers.NewReviewsHandler(reviewSvc),
		handlers.NewHealthHandler(),
		auth,
		cfg,
	)

	// ---- Outbox worker ----
	if cfg.OutboxEnabled && cfg.RabbitURL != "" {
		postgres.NewOutboxWorker(dbPool, cfg.RabbitURL, cfg.RabbitExchange).Start(rootCtx)
		log.Info().Msg("outbox worker started")
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-rootCtx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("http server crashed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info().Msg("shutdown complete")
}
