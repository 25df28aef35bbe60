package pricing

import (
	"net/http"

	"folio/infras/otel"
	"folio/internal/domains/pricing/model/dto"
	"folio/internal/domains/pricing/service"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/validator"
	"folio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Pricing
	otel    otel.Otel
}

func New(service service.Pricing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/pricing", handler.GetPricingCards)
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/pricing", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPricingCards)
		routerGroup.Post("/", handler.CreatePricingCard)
		routerGroup.Patch("/{id}", handler.UpdatePricingCard)
		routerGroup.Delete("/{id}", handler.DeletePricingCard)
		routerGroup.Post("/{id}/move", handler.MovePricingCard)
	})
}

func fail(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)
	log.Error().Err(err).Msg(msg)

	response.WithError(w, err)
}

// GetPricingCards lists pricing cards in display order.
// @Summary List pricing cards
// @Tags Pricing
// @Produce json
// @Success 200 {object} response.Data[[]dto.PricingCardResponse]
// @Failure 500 {object} response.Error
// @Router /v1/pricing [get]
func (handler *Handler) GetPricingCards(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPricingCards")
	defer scope.End()

	cards, err := handler.service.GetAll(ctx)
	if err != nil {
		fail(w, scope, err, "failed to get pricing cards")

		return
	}

	response.WithJSON(w, http.StatusOK, cards)
}

// CreatePricingCard appends a pricing card.
// @Summary Create a pricing card
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body dto.CreatePricingCardRequest true "Create Pricing Card Request"
// @Success 201 {object} response.Data[dto.PricingCardResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/pricing [post]
// @Security BearerAuth
func (handler *Handler) CreatePricingCard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePricingCard")
	defer scope.End()

	req := dto.CreatePricingCardRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		fail(w, scope, err, "failed to create pricing card")

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// UpdatePricingCard updates a pricing card.
// @Summary Update a pricing card
// @Tags Pricing
// @Accept json
// @Produce json
// @Param id path string true "Pricing card ID"
// @Param request body dto.UpdatePricingCardRequest true "Update Pricing Card Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/pricing/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePricingCard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePricingCard")
	defer scope.End()

	req := dto.UpdatePricingCardRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "failed to validate request body")

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to update pricing card")

		return
	}

	response.WithMessage(w, http.StatusOK, "Pricing card updated successfully")
}

// DeletePricingCard removes a pricing card.
// @Summary Delete a pricing card
// @Tags Pricing
// @Produce json
// @Param id path string true "Pricing card ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/pricing/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePricingCard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePricingCard")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to delete pricing card")

		return
	}

	response.WithMessage(w, http.StatusOK, "Pricing card deleted successfully")
}

// MovePricingCard moves a pricing card one place up or down.
// @Summary Move a pricing card
// @Tags Pricing
// @Accept json
// @Produce json
// @Param id path string true "Pricing card ID"
// @Param request body gDto.MoveRequest true "Move Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/pricing/{id}/move [post]
// @Security BearerAuth
func (handler *Handler) MovePricingCard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MovePricingCard")
	defer scope.End()

	req := gDto.MoveRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "failed to validate request body")

		return
	}

	if err := handler.service.Move(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to move pricing card")

		return
	}

	response.WithMessage(w, http.StatusOK, "Pricing card moved successfully")
}
