package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	redisAdapter "github.com/renohome/listing-service/internal/adapter/cache/redis"
	"github.com/renohome/listing-service/internal/adapter/httpapi"
	mongoAdapter "github.com/renohome/listing-service/internal/adapter/mongo"
	natsAdapter "github.com/renohome/listing-service/internal/adapter/nats"
	regionAdapter "github.com/renohome/listing-service/internal/adapter/region"
	minioAdapter "github.com/renohome/listing-service/internal/adapter/storage/minio"
	"github.com/renohome/listing-service/internal/config"
	"github.com/renohome/listing-service/internal/mailer"
	"github.com/renohome/listing-service/internal/platform/logger"
	"github.com/renohome/listing-service/internal/platform/tracer"
	"github.com/renohome/listing-service/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	configPath := "config.yaml"
	if cp := os.Getenv("CONFIG_PATH"); cp != "" {
		configPath = cp
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		tp, err := tracer.InitTracer()
		if err != nil {
			zapLogger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				zapLogger.Error("Failed to shut down tracer provider", zap.Error(err))
			}
		}()
	}

	mongoClient, err := mongoAdapter.NewMongoDBConnection(&cfg.Mongo)
	if err != nil {
		zapLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			zapLogger.Error("Failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	zapLogger.Info("Successfully connected to MongoDB")

	listingRepo := mongoAdapter.NewListingMongoRepository(mongoClient, cfg.Mongo.Database)

	redisClient, err := redisAdapter.NewRedisClient(&cfg.Redis, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	cacheRepo := redisAdapter.NewRedisCacheRepository(redisClient, zapLogger)

	publisher, err := natsAdapter.NewNATSPublisher(&cfg.NATS, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer publisher.Close()

	photoStorage, err := minioAdapter.NewPhotoStorage(&cfg.MinIO, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize photo storage", zap.Error(err))
	}

	regionRepo := regionAdapter.NewDatasetRepository(cfg.Region, zapLogger)
	enquiryMailer := mailer.New(cfg.SMTP)

	listingUC := usecase.NewListingUseCase(listingRepo, publisher, enquiryMailer, photoStorage, zapLogger)
	searchUC := usecase.NewSearchUseCase(listingRepo, regionRepo, cacheRepo, zapLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Keep the cached snapshot fresh while listings change underneath us.
	go func() {
		if err := searchUC.WatchListings(ctx); err != nil {
			zapLogger.Warn("Listings change watcher stopped", zap.Error(err))
		}
	}()

	handler := httpapi.NewHandler(listingUC, searchUC, zapLogger)
	router := httpapi.NewRouter(handler, cfg.Auth.JWTSecret, zapLogger)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
}
