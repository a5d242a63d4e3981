package main

import (
	"naturekids/config"
	"naturekids/di"
	"naturekids/helper"
	"naturekids/infras/postgres"
	"naturekids/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title NatureKids API
// @version 1.0
// @description Children's nature activity discovery, booking and reviews.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate && postgres.Required(cfg) {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
