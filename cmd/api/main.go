package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/JHanslik/restaurants-back/internal/api"
	"github.com/JHanslik/restaurants-back/internal/infrastructure/config"
	mongodb "github.com/JHanslik/restaurants-back/internal/infrastructure/db/mongo"
	redisdb "github.com/JHanslik/restaurants-back/internal/infrastructure/db/redis"
	"github.com/JHanslik/restaurants-back/internal/infrastructure/media"
	"github.com/JHanslik/restaurants-back/internal/infrastructure/queue"
	"github.com/JHanslik/restaurants-back/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title Restaurants API
// @version 1.0
// @description CRUD backend for restaurant listings, reviews and images.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			log.Fatal().Msg("JWT_SECRET must be set in production")
		}
		log.Warn().Msg("JWT_SECRET is empty, using an insecure development secret")
		cfg.JWTSecret = "dev-secret-do-not-use"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	userRepo := mongodb.NewUserRepository(db)
	restaurantRepo := mongodb.NewRestaurantRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}
	if err := restaurantRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure restaurant indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")

	mediaStore := media.NewCloudinary(media.Config{
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
		Folder:    cfg.Cloudinary.Folder,
		Timeout:   cfg.Cloudinary.Timeout,
	})
	cleanupQueue := redisdb.NewCleanupQueue(rdb)

	cleaner := queue.NewCleaner(cleanupQueue, mediaStore, 0, log)
	cleaner.Start(ctx)

	e := api.NewRouter(db, rdb, mediaStore, cleanupQueue, cfg.JWTSecret, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting HTTP server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	cleaner.Wait()
	log.Info().Msg("shutdown complete")
}
