package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/porto-anggi/porto-backend/config"
	"github.com/porto-anggi/porto-backend/internal/bootstrap"
	"github.com/porto-anggi/porto-backend/internal/cache"
	projrepo "github.com/porto-anggi/porto-backend/internal/projects/repository"
	projservice "github.com/porto-anggi/porto-backend/internal/projects/service"
	"github.com/porto-anggi/porto-backend/internal/storage/postgres"
	"github.com/porto-anggi/porto-backend/internal/uploads"
)

const serviceName = "porto-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := bootstrap.NewLogger(cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := postgres.Bootstrap(ctx, db); err != nil {
		logger.WithError(err).Fatal("failed to bootstrap schema")
	}
	if cfg.App.SeedData {
		if err := postgres.Seed(ctx, db); err != nil {
			logger.WithError(err).Warn("failed to seed sample data")
		}
	}

	var store uploads.Store
	switch cfg.Upload.Backend {
	case "s3":
		store, err = uploads.NewS3Store(ctx, cfg.Upload.S3Bucket, cfg.Upload.S3Prefix)
	default:
		store, err = uploads.NewDiskStore(cfg.Upload.Dir)
	}
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize upload store")
	}

	var projectCache projservice.Cache
	if cfg.Redis.Addr != "" {
		rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
		if err != nil {
			logger.WithError(err).Warn("redis unavailable, project cache disabled")
		} else {
			defer rdb.Close()
			projectCache = cache.NewProjectCache(rdb, logger)
		}
	}

	if cfg.Upload.SweepSchedule != "" {
		sweeper := uploads.NewSweeper(store, projrepo.NewProjectRepository(db), logger)
		cr, err := sweeper.Schedule(cfg.Upload.SweepSchedule)
		if err != nil {
			logger.WithError(err).Warn("invalid sweep schedule, sweep disabled")
		} else {
			defer cr.Stop()
		}
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		DB:          db,
		Log:         logger,
		Uploads:     store,
		Cache:       projectCache,
		AdminAPIKey: cfg.Admin.APIKey,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
}
