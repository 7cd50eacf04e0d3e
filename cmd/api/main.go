package main

// @title Union Tracker API
// @version 1.0.0
// @description REST backend recording labour actions against companies.
// @description Unions can be filtered on any field, sorted, paginated and searched by distance from a postal code.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/union-tracker/docs"
	"github.com/union-tracker/internal/config"
	httpDelivery "github.com/union-tracker/internal/delivery/http"
	"github.com/union-tracker/internal/delivery/http/handler"
	"github.com/union-tracker/internal/domain/repository"
	"github.com/union-tracker/internal/infrastructure/mapbox"
	"github.com/union-tracker/internal/pkg/auth"
	"github.com/union-tracker/internal/pkg/logger"
	"github.com/union-tracker/internal/repository/cache"
	"github.com/union-tracker/internal/repository/memory"
	"github.com/union-tracker/internal/repository/mongo"
	redisRepo "github.com/union-tracker/internal/repository/redis"
	"github.com/union-tracker/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Union Tracker")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("store", cfg.Store.Driver),
	)

	checks := map[string]httpDelivery.HealthChecker{}

	// 3. Record store
	var unionRepo repository.UnionRepository
	var mongoDB *mongo.DB
	switch cfg.Store.Driver {
	case config.StoreMemory:
		unionRepo = memory.NewUnionRepository(log)
		log.Warn("Using in-memory store, data is lost on restart")
	default:
		mongoDB, err = mongo.New(&cfg.Mongo, log)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
		if err := mongoDB.EnsureIndexes(ctx, cfg.Mongo.Collection); err != nil {
			cancel()
			log.Fatal("Failed to ensure MongoDB indexes", zap.Error(err))
		}
		cancel()

		unionRepo = mongo.NewUnionRepository(mongoDB, cfg.Mongo.Collection)
		checks["mongo"] = mongoDB
	}

	// 4. Redis backs the geocode cache and the events stream. Both are
	// optional, so an unreachable Redis only degrades the service.
	var cacheRepo repository.CacheRepository
	var streamRepo repository.StreamRepository
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, geocode cache and events disabled", zap.Error(err))
	} else {
		cacheRepo = cache.NewCacheRepository(redisClient)
		streamRepo = redisRepo.NewStreamRepository(redisClient.Client(), log)
		checks["redis"] = redisClient
	}

	log.Info("Repositories initialized")

	// 5. Use cases
	geocoder := mapbox.NewMapboxClient(&cfg.Mapbox, log)
	geocodeUC := usecase.NewGeocodeUseCase(geocoder, cacheRepo, log, cfg.Cache.GeocodeCacheTTL)
	unionUC := usecase.NewUnionUseCase(unionRepo, geocodeUC, streamRepo, log, usecase.UnionOptions{
		DefaultLimit: cfg.Query.DefaultLimit,
		CountScope:   cfg.Query.CountScope,
		EventsStream: cfg.Events.Stream,
	})

	log.Info("Use cases initialized")

	// 6. Handlers and server
	tokens := auth.NewTokenService()
	server := httpDelivery.NewServer(
		cfg,
		log,
		tokens,
		checks,
		handler.NewUnionHandler(unionUC, log),
		handler.NewAuthHandler(tokens, cfg.Auth.Secret, cfg.Auth.TokenTTL, log),
	)

	// 7. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if mongoDB != nil {
		if err := mongoDB.Close(ctx); err != nil {
			log.Error("Failed to close MongoDB", zap.Error(err))
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
