package main

import (
	"os"

	"creativeflow/internal/util/logger"
)

// @title CreativeFlow API
// @version 1.0
// @description Project management API for creative agencies
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.GetLogger().Error("command failed", "error", err)
		os.Exit(1)
	}
}
