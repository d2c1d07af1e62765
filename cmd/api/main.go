package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/seunegocio/marketplace/internal/api"
	"github.com/seunegocio/marketplace/internal/api/handler"
	"github.com/seunegocio/marketplace/internal/core/service"
	"github.com/seunegocio/marketplace/internal/infrastructure/config"
	"github.com/seunegocio/marketplace/internal/infrastructure/db/mongo"
	"github.com/seunegocio/marketplace/internal/infrastructure/db/redis"
	"github.com/seunegocio/marketplace/pkg/logger"
)

const (
	indexTimeout    = 30 * time.Second
	shutdownTimeout = 15 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("application error")
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	lg := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment()})
	lg.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting marketplace api")

	// --- Storage ---
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			lg.Error().Err(err).Msg("mongo disconnect")
		}
	}()
	lg.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			lg.Error().Err(err).Msg("redis close")
		}
	}()
	lg.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	users := mongo.NewUserRepository(db)
	businesses := mongo.NewBusinessRepository(db)
	items := mongo.NewItemRepository(db)
	cart := mongo.NewCartRepository(db)

	indexCtx, cancel := context.WithTimeout(ctx, indexTimeout)
	err = mongo.EnsureIndexes(indexCtx, users, businesses, items, cart)
	cancel()
	if err != nil {
		return err
	}

	// --- Auth core ---
	tokens := service.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	hasher := service.NewBcryptHasher(cfg.Auth.BcryptCost)
	identities := service.NewIdentityResolver(users)

	// --- Services ---
	idem := redis.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)

	e := api.NewRouter(api.Dependencies{
		Users:      service.NewUserService(users, businesses, items, cart, hasher, tokens, logger.Component("users")),
		Businesses: service.NewBusinessService(users, businesses, items, cart, logger.Component("businesses")),
		Items:      service.NewItemService(businesses, items, cart, logger.Component("items")),
		Cart:       service.NewCartService(cart, items, idem, logger.Component("cart")),
		Tokens:     tokens,
		Identities: identities,
		ReadinessChecks: []handler.DependencyCheck{
			{Name: "mongo", Ping: func(ctx context.Context) error { return client.Ping(ctx, nil) }},
			{Name: "redis", Ping: redis.Ping(rdb)},
		},
		Logger: logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	lg.Info().Str("addr", ":"+cfg.Port).Msg("http server listening")

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		lg.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := e.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("http server shutdown")
	}

	lg.Info().Msg("http server stopped")
	return nil
}
