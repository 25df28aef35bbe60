package counter

import (
	"net/http"

	"folio/infras/otel"
	"folio/internal/domains/counter/model/dto"
	"folio/internal/domains/counter/service"
	"folio/shared/constant"
	"folio/shared/validator"
	"folio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Counter
	otel    otel.Otel
}

func New(service service.Counter, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/counters", handler.GetCounters)
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/counters", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetCounters)
		routerGroup.Post("/", handler.CreateCounter)
		routerGroup.Patch("/{id}", handler.UpdateCounter)
		routerGroup.Delete("/{id}", handler.DeleteCounter)
	})
}

// GetCounters lists homepage counters in display order.
// @Summary List counters
// @Tags Counters
// @Produce json
// @Success 200 {object} response.Data[[]dto.CounterResponse]
// @Failure 500 {object} response.Error
// @Router /v1/counters [get]
func (handler *Handler) GetCounters(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCounters")
	defer scope.End()

	counters, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get counters")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, counters)
}

// CreateCounter appends a counter.
// @Summary Create a counter
// @Tags Counters
// @Accept json
// @Produce json
// @Param request body dto.CreateCounterRequest true "Create Counter Request"
// @Success 201 {object} response.Data[dto.CounterResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/counters [post]
// @Security BearerAuth
func (handler *Handler) CreateCounter(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCounter")
	defer scope.End()

	req := dto.CreateCounterRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create counter")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// UpdateCounter updates a counter.
// @Summary Update a counter
// @Tags Counters
// @Accept json
// @Produce json
// @Param id path string true "Counter ID"
// @Param request body dto.UpdateCounterRequest true "Update Counter Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/counters/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCounter(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCounter")
	defer scope.End()

	req := dto.UpdateCounterRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update counter")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Counter updated successfully")
}

// DeleteCounter removes a counter.
// @Summary Delete a counter
// @Tags Counters
// @Produce json
// @Param id path string true "Counter ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/counters/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCounter(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCounter")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete counter")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Counter deleted successfully")
}
