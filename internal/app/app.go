package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assetrates/internal/adapters"
	"assetrates/internal/adapters/cache"
	"assetrates/internal/adapters/ledger"
	"assetrates/internal/adapters/memory"
	"assetrates/internal/adapters/postgres"
	"assetrates/internal/api"
	apimiddleware "assetrates/internal/api/middleware"
	"assetrates/internal/config"
	"assetrates/internal/platform/db"
	httpserver "assetrates/internal/platform/http"
	"assetrates/internal/rate"
	"assetrates/internal/rate/handler"

	"github.com/sirupsen/logrus"
)

// Run wires the application components and starts the HTTP server.
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The storage backend is selected by config; the service logic is the same
	// for all three.
	var storage adapters.RateStorage
	switch appCfg.Storage.Backend {
	case config.BackendMemory:
		storage = memory.NewRateStorage()
		logrus.Info("✅ Using in-memory rate storage")

	case config.BackendPostgres:
		startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		pool, poolErr := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
		if poolErr != nil {
			logrus.WithError(poolErr).Error("Error connecting to db")
			return poolErr
		}
		defer pool.Close()
		storage = postgres.NewRateStorage(pool)
		logrus.Info("✅ Postgres connection successful")

	case config.BackendLedger:
		if appCfg.Ledger.NodeURL == "" {
			return fmt.Errorf("ledger node url is required for the ledger backend")
		}
		ledgerTimeout := time.Duration(appCfg.Ledger.TimeoutSeconds) * time.Second
		if ledgerTimeout <= 0 {
			ledgerTimeout = 10 * time.Second
		}
		client := ledger.NewClient(&http.Client{Timeout: ledgerTimeout}, appCfg.Ledger.NodeURL, appCfg.Ledger.AccessKey)
		storage = ledger.NewStorage(client)
		logrus.Infof("✅ Using ledger rate storage at %s", appCfg.Ledger.NodeURL)
	}

	rateCache, err := cache.NewRateCache(appCfg.Cache.MaxItems)
	if err != nil {
		logrus.WithError(err).Error("Failed to create rate cache")
		return err
	}
	defer rateCache.Close()

	// Service, handlers, router
	rateService := rate.NewService(storage, rateCache)
	rateHandler := handler.NewRateHandler(rateService)
	router := api.NewRouter(rateHandler, apimiddleware.APIKeyAuth(appCfg.Auth.HeaderName, appCfg.Auth.APIKey))

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
