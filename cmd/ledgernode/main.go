package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"assetrates/internal/config"
	"assetrates/internal/ledgernode"
	httpserver "assetrates/internal/platform/http"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Runs the single-value ledger node: a contract analogue holding one
// (rate, timestamp) pair behind an owner-only write guard.
func main() {
	_ = godotenv.Load()
	logrus.SetOutput(os.Stdout)

	port := os.Getenv("LEDGER_PORT")
	if port == "" {
		port = "8545"
	}
	ownerKey := os.Getenv("LEDGER_OWNER_KEY")
	if ownerKey == "" {
		logrus.Error("LEDGER_OWNER_KEY is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	contract := ledgernode.NewContract(ownerKey)
	router := ledgernode.NewRouter(contract)

	logrus.Info("Starting ledger node")
	if err := httpserver.Start(ctx, config.HTTPServer{Port: port}, router); err != nil {
		logrus.Errorf("Ledger node error: %v", err)
		os.Exit(1)
	}
}
