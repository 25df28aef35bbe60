package invite

import (
	"net/http"

	"folio/infras/otel"
	"folio/internal/domains/invite/model/dto"
	"folio/internal/domains/invite/service"
	"folio/shared/constant"
	"folio/shared/validator"
	"folio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Invite
	otel    otel.Otel
}

func New(service service.Invite, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/invites/{token}", handler.ValidateInvite)
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/invites", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetInvites)
		routerGroup.Post("/", handler.CreateInvite)
		routerGroup.Post("/prune", handler.PruneInvites)
		routerGroup.Delete("/{id}", handler.RevokeInvite)
	})
}

func fail(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)
	log.Error().Err(err).Msg(msg)

	response.WithError(w, err)
}

// ValidateInvite checks an invite token before signup.
// @Summary Validate an invite token
// @Tags Invites
// @Produce json
// @Param token path string true "Invite token"
// @Success 200 {object} response.Data[dto.ValidInviteResponse]
// @Failure 404 {object} response.Error
// @Failure 410 {object} response.Error
// @Router /v1/invites/{token} [get]
func (handler *Handler) ValidateInvite(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ValidateInvite")
	defer scope.End()

	res, err := handler.service.Validate(ctx, chi.URLParam(r, constant.RequestParamToken))
	if err != nil {
		fail(w, scope, err, "failed to validate invite")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetInvites lists every invite with its status.
// @Summary List invites
// @Tags Invites
// @Produce json
// @Success 200 {object} response.Data[[]dto.InviteResponse]
// @Failure 500 {object} response.Error
// @Router /v1/admin/invites [get]
// @Security BearerAuth
func (handler *Handler) GetInvites(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvites")
	defer scope.End()

	res, err := handler.service.GetAll(ctx)
	if err != nil {
		fail(w, scope, err, "failed to get invites")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CreateInvite issues a new invite token.
// @Summary Create an invite
// @Tags Invites
// @Accept json
// @Produce json
// @Param request body dto.CreateInviteRequest true "Create Invite Request"
// @Success 201 {object} response.Data[dto.InviteResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/invites [post]
// @Security BearerAuth
func (handler *Handler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateInvite")
	defer scope.End()

	req := dto.CreateInviteRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "failed to validate request body")

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.Create(ctx, req, user)
	if err != nil {
		fail(w, scope, err, "failed to create invite")

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// PruneInvites deletes invites that expired without being used.
// @Summary Prune expired invites
// @Tags Invites
// @Produce json
// @Success 200 {object} response.Data[dto.PruneResponse]
// @Failure 500 {object} response.Error
// @Router /v1/admin/invites/prune [post]
// @Security BearerAuth
func (handler *Handler) PruneInvites(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PruneInvites")
	defer scope.End()

	res, err := handler.service.Prune(ctx)
	if err != nil {
		fail(w, scope, err, "failed to prune invites")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// RevokeInvite deletes an invite.
// @Summary Revoke an invite
// @Tags Invites
// @Produce json
// @Param id path string true "Invite ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/invites/{id} [delete]
// @Security BearerAuth
func (handler *Handler) RevokeInvite(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RevokeInvite")
	defer scope.End()

	if err := handler.service.Revoke(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to revoke invite")

		return
	}

	response.WithMessage(w, http.StatusOK, "Invite revoked successfully")
}
