package content

import (
	"net/http"

	"folio/infras/otel"
	"folio/internal/domains/content/model/dto"
	"folio/internal/domains/content/service"
	"folio/shared/constant"
	"folio/shared/validator"
	"folio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Content
	otel    otel.Otel
}

func New(service service.Content, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/content", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetContentSections)
		routerGroup.Get("/{name}", handler.GetContentSection)
	})
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/content", func(routerGroup chi.Router) {
		routerGroup.Put("/{name}", handler.UpsertContentSection)
		routerGroup.Delete("/{name}", handler.DeleteContentSection)
	})
}

// GetContentSections lists every content section.
// @Summary List content sections
// @Tags Content
// @Produce json
// @Success 200 {object} response.Data[[]dto.ContentResponse]
// @Failure 500 {object} response.Error
// @Router /v1/content [get]
func (handler *Handler) GetContentSections(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContentSections")
	defer scope.End()

	sections, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get content sections")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, sections)
}

// GetContentSection returns the content section with the given name.
// @Summary Get a content section
// @Tags Content
// @Produce json
// @Param name path string true "Section name"
// @Success 200 {object} response.Data[dto.ContentResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/content/{name} [get]
func (handler *Handler) GetContentSection(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContentSection")
	defer scope.End()

	section, err := handler.service.GetByName(ctx, chi.URLParam(r, constant.RequestParamName))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get content section")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, section)
}

// UpsertContentSection creates or replaces a content section.
// @Summary Create or replace a content section
// @Tags Content
// @Accept json
// @Produce json
// @Param name path string true "Section name"
// @Param request body dto.UpsertContentRequest true "Upsert Content Request"
// @Success 200 {object} response.Data[dto.ContentResponse]
// @Success 201 {object} response.Data[dto.ContentResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/content/{name} [put]
// @Security BearerAuth
func (handler *Handler) UpsertContentSection(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertContentSection")
	defer scope.End()

	req := dto.UpsertContentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	section, created, err := handler.service.Upsert(ctx, chi.URLParam(r, constant.RequestParamName), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save content section")

		response.WithError(w, err)

		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	response.WithJSON(w, status, section)
}

// DeleteContentSection removes a content section.
// @Summary Delete a content section
// @Tags Content
// @Produce json
// @Param name path string true "Section name"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/content/{name} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteContentSection(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteContentSection")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamName)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete content section")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Content section deleted successfully")
}
