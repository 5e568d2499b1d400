package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	_ "tienda/docs" // swagger docs

	"tienda/internal/app"
	"tienda/internal/cache"
	"tienda/internal/config"
	"tienda/internal/db"
	"tienda/internal/logging"
	"tienda/internal/storage"
)

// @title Tienda API
// @version 1.0
// @description Catalog, account and sales backend with JWT authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat, nil)
	log.WithField("config", cfg.String()).Info("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, log)
	if err != nil {
		log.WithError(err).Fatal("database init")
	}

	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.WithError(err).Fatal("reset database")
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		log.WithError(err).Fatal("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		log.WithError(err).Warn("redis unreachable, running without cache")
	}

	deps := app.Deps{Config: cfg, Log: log, DB: gormDB, Cache: cacheClient}
	if cfg.S3.Enabled() {
		store, err := storage.NewS3Store(ctx, cfg.S3)
		if err != nil {
			log.WithError(err).Fatal("object storage init")
		}
		deps.Images = store
	} else {
		log.Warn("S3_BUCKET not set, image upload disabled")
	}

	e := app.New(deps)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.ServerPort
		log.WithField("addr", addr).Info("server listening")
		log.Infof("Swagger documentation available at: http://localhost%s/swagger/index.html", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped")
}
