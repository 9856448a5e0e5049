package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"boardcam/api/internal/cache"
	"boardcam/api/internal/config"
	"boardcam/api/internal/gallery"
	"boardcam/api/internal/handlers"
	"boardcam/api/internal/jobs"
	"boardcam/api/internal/log"
	"boardcam/api/internal/repository"
	"boardcam/api/internal/server"
	"boardcam/api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	objectStore, err := storage.NewObjectStore(cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init object store")
	}
	if err := objectStore.EnsureBucket(ctx); err != nil {
		logger.Warn().Err(err).Msg("ensure bucket failed")
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, ingest events disabled")
			redisClient = nil
		}
	}

	exclusions := gallery.NewExclusionStore()
	assetRepo := repository.NewMinioAssetRepository(objectStore, logger)

	handlerSet := handlers.NewHandlerSet(logger, cfg, exclusions, assetRepo, redisClient, objectStore)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	janitor := jobs.NewJanitor(exclusions, cfg.Gallery.VisitorIdleTTL, logger)
	if err := janitor.Start(); err != nil {
		logger.Error().Err(err).Msg("janitor start failed")
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, janitor, redisClient)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, janitor *jobs.Janitor, redisClient *redis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("forced shutdown failed")
		}
	}

	if janitor != nil {
		janitor.Stop()
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("redis close error")
		}
	}

	logger.Info().Msg("server exited cleanly")
}
