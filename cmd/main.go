package main

import (
	"os"

	"assetrates/internal/app"
)

// @title           Interest Rate Service API
// @version         1.0
// @description     Accepts asset batches and serves their average interest rate.
// @BasePath        /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name api_key
func main() {
	if err := app.Run(); err != nil {
		os.Exit(1)
	}
}
