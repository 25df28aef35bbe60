package main

import (
	"folio/config"
	"folio/di"
	"folio/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title folio API
// @version 1.0
// @description Backend for a photography studio site: public portfolio pages and the admin dashboard.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	http, cleanup, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}
	defer cleanup()

	http.Serve()
}
