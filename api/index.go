package handler

import (
	"net/http"
	"sync"

	"folio/config"
	"folio/di"
	"folio/shared/logger"
	"folio/transport/http/response"

	"github.com/rs/zerolog/log"
)

var (
	once    sync.Once
	routed  http.Handler
	initErr error
)

// Handler serves the API from a serverless function. The dependency graph is built once per
// instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		server, _, err := di.InitializeService()
		if err != nil {
			initErr = err

			return
		}

		routed = server.Handler()
	})

	if initErr != nil {
		log.Error().Err(initErr).Msg("failed to initialize service")
		response.WithUnhealthy(w)

		return
	}

	routed.ServeHTTP(w, r)
}
