package home

import (
	"net/http"

	"folio/infras/otel"
	"folio/internal/domains/home/model/dto"
	"folio/internal/domains/home/service"
	"folio/shared/constant"
	"folio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Home
	otel    otel.Otel
}

func New(service service.Home, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/home", handler.GetHome)
}

// GetHome returns the landing page payload.
// @Summary Homepage
// @Description Counters, featured projects, latest published reviews, about images and content sections.
// @Tags Home
// @Produce json
// @Success 200 {object} response.Data[dto.HomeResponse]
// @Failure 500 {object} response.Error
// @Router /v1/home [get]
func (handler *Handler) GetHome(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHome")
	defer scope.End()

	var (
		res dto.HomeResponse
		err error
	)

	if res, err = handler.service.Get(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get homepage")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
