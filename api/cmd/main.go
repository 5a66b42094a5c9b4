package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"

	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/application/event"
	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/config"
	rediscache "github.com/baechuer/real-time-ressys/services/volunteer-service/internal/infrastructure/caching/redis"
	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/infrastructure/db/postgres"
	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/infrastructure/db/volunteers"
	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/logger"
	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/metrics"
	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/transport/http/handlers"
	authmw "github.com/baechuer/real-time-ressys/services/volunteer-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/transport/http/router"
	zlog "github.com/rs/zerolog/log"
)

// sysClock implements event.Clock interface using system time
type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

// App holds all dependencies for the service
type App struct {
	Config  *config.Config
	Server  *http.Server
	Service *event.Service
	DB      *sql.DB
	Pool    *pgxpool.Pool
	Cache   *rediscache.Client
}

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if u, err := url.Parse(cfg.DatabaseURL); err == nil {
		zlog.Info().
			Str("db_user", u.User.Username()).
			Str("db_host", u.Host).
			Str("db_db", u.Path).
			Msg("db config loaded")
	}

	// 1) Event graph DB (lib/pq)
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("db open failed")
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)

	{
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			zlog.Fatal().Err(err).Msg("db ping failed")
		}
	}

	// 2) Users & signups DB (pgx)
	pool, err := pgxpool.New(ctx, cfg.SignupsDatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("pgx pool init failed")
	}
	defer pool.Close()

	// 3) Redis (optional)
	var cache *rediscache.Client
	if c, err := rediscache.New(cfg.RedisURL); err != nil {
		zlog.Warn().Err(err).Msg("redis unavailable: caching and token revocation disabled")
	} else {
		cache = c
		defer cache.Close()
	}

	app := NewApp(cfg, db, pool, cache)

	// 4) Cache invalidation consumer
	if serviceCache(cfg, cache) != nil {
		consumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, cfg.RabbitExchange, app.Service)
		if err != nil {
			zlog.Fatal().Err(err).Msg("rabbit consumer init failed")
		}
		defer consumer.Close()
		consumer.WithObserver(metrics.Recorder{}).Start(ctx)
	} else {
		zlog.Warn().Msg("RABBIT_URL or redis missing: event cache and invalidation consumer disabled")
	}

	go func() {
		zlog.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("server crashed")
		}
	}()

	<-ctx.Done()
	zlog.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// NewApp wires the service. cache may be nil.
func NewApp(cfg *config.Config, db *sql.DB, pool *pgxpool.Pool, cache *rediscache.Client) *App {
	// 1) Infrastructure
	repo := postgres.New(db)
	users := volunteers.New(pool)

	var (
		svcCache event.Cache
		versions authmw.TokenVersionChecker
	)
	checks := map[string]handlers.Pinger{
		"postgres": db.PingContext,
	}
	if pool != nil {
		checks["signups_db"] = pool.Ping
	}
	if cache != nil {
		versions = cache
		checks["redis"] = cache.Ping
	}
	svcCache = serviceCache(cfg, cache)

	// 2) Application
	svc := event.New(repo, users, sysClock{}, svcCache, cfg.CacheTTLDetails).
		WithCacheObserver(metrics.Recorder{})

	// 3) Transport
	h := handlers.NewEventsHandler(svc)
	auth := authmw.NewAuth(cfg.JWTSecret, cfg.JWTIssuer, versions)
	z := handlers.NewHealthHandler(checks)

	// 4) Router
	httpHandler := router.New(h, auth, z, cfg)

	// 5) Server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpHandler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &App{
		Config:  cfg,
		Server:  srv,
		Service: svc,
		DB:      db,
		Pool:    pool,
		Cache:   cache,
	}
}

// serviceCache returns the event cache only when the consumer that
// invalidates it runs too; otherwise graphs are read straight from Postgres.
func serviceCache(cfg *config.Config, cache *rediscache.Client) event.Cache {
	if cache == nil || cfg.RabbitURL == "" {
		return nil
	}
	return cache
}
