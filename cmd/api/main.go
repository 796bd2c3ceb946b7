package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rentguard/rentguard-api/internal/api"
	"github.com/rentguard/rentguard-api/internal/infrastructure/config"
	mongodb "github.com/rentguard/rentguard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/rentguard/rentguard-api/internal/infrastructure/db/redis"
	"github.com/rentguard/rentguard-api/internal/infrastructure/storage"
	"github.com/rentguard/rentguard-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	// Unique indexes carry the Conflict invariants; refusing to start
	// without them is safer than running with best-effort uniqueness.
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := mongodb.NewTenantRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("tenant indexes failed")
	}
	if err := mongodb.NewRatingRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("rating indexes failed")
	}
	if err := mongodb.NewListingRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("listing indexes failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Object storage ---
	store, err := storage.New(storage.Config{
		Endpoint:       cfg.Minio.Endpoint,
		PublicEndpoint: cfg.Minio.PublicEndpoint,
		Bucket:         cfg.Minio.Bucket,
		AccessKey:      cfg.Minio.AccessKey,
		SecretKey:      cfg.Minio.SecretKey,
		UseSSL:         cfg.Minio.UseSSL,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("storage client failed")
	}

	// Bucket provisioning failures are logged, not fatal: uploads issued
	// before the bucket exists fail individually instead of blocking the
	// rest of the API.
	if err := store.EnsureBucket(ctx); err != nil {
		log.Error().Err(err).Str("bucket", cfg.Minio.Bucket).Msg("bucket provisioning failed")
	}

	e := api.NewRouter(cfg, db, rdb, store, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
