package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vsinha/factoryops/pkg/infrastructure/blobstore"
	"github.com/vsinha/factoryops/pkg/infrastructure/config"
	"github.com/vsinha/factoryops/pkg/infrastructure/logging"
	"github.com/vsinha/factoryops/pkg/interfaces/api"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create logger")
	}
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	var store blobstore.Store
	if cfg.RedisAddress != "" {
		connectCtx, cancel := context.WithTimeout(sigCtx, 10*time.Second)
		rdb, err := blobstore.Connect(connectCtx, cfg.RedisAddress)
		cancel()
		if err != nil {
			logging.LogError(logger, "syncd", "main", cfg.RedisAddress, err)
			os.Exit(1)
		}
		defer rdb.Close()
		store = blobstore.NewRedisStore(rdb, 0)
		logger.WithField("addr", cfg.RedisAddress).Info("using redis blob store")
	} else {
		store = blobstore.NewMemoryStore()
		logger.Warn("REDIS_ADDRESS not set; datasets are kept in memory only")
	}

	router := api.NewRouter(store, api.RouterConfig{
		Production:     cfg.Production,
		AllowedOrigins: cfg.AllowedOrigins,
	}, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.SyncdPort,
		Handler: router,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()
	logger.WithField("port", cfg.SyncdPort).Info("sync server listening")

	select {
	case <-sigCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	case err := <-serverErrCh:
		if err != nil && err != http.ErrServerClosed {
			logging.LogError(logger, "syncd", "ListenAndServe", nil, err)
		}
	}
}
