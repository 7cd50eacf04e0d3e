package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/union-tracker/internal/config"
	"github.com/union-tracker/internal/infrastructure/mapbox"
	"github.com/union-tracker/internal/pkg/logger"
	"github.com/union-tracker/internal/repository/cache"
	redisRepo "github.com/union-tracker/internal/repository/redis"
	"github.com/union-tracker/internal/usecase"
	"github.com/union-tracker/internal/worker"
	"github.com/union-tracker/internal/worker/events"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Union Tracker worker")
	log.Info("Configuration loaded",
		zap.String("stream", cfg.Events.Stream),
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("batch_size", cfg.Worker.BatchSize))

	// 3. Redis is required here: it is both the event source and the cache
	// being warmed.
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	if backlog, err := redisClient.StreamLength(context.Background(), cfg.Events.Stream); err != nil {
		log.Warn("Failed to read union events stream length", zap.Error(err))
	} else {
		log.Info("Union events retained in stream", zap.Int64("events", backlog))
	}

	// 4. Repositories and use cases
	consumer := redisRepo.NewStreamConsumer(redisClient.Client(), log)
	geocodeUC := usecase.NewGeocodeUseCase(
		mapbox.NewMapboxClient(&cfg.Mapbox, log),
		cache.NewCacheRepository(redisClient),
		log,
		cfg.Cache.GeocodeCacheTTL,
	)

	// 5. Workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(events.NewGeocodeWarmer(
		consumer,
		geocodeUC,
		cfg.Events.Stream,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.BatchSize,
		log,
	))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 6. Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	log.Info("Worker shutdown complete")
}
