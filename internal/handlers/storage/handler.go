package storage

import (
	"net/http"

	"folio/infras/otel"
	objectStorage "folio/infras/storage"
	"folio/internal/domains/storage/model/dto"
	"folio/internal/domains/storage/service"
	"folio/shared"
	"folio/shared/constant"
	"folio/shared/validator"
	"folio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Storage
	otel    otel.Otel
}

func New(service service.Storage, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/storage", func(routerGroup chi.Router) {
		routerGroup.Get("/objects", handler.ListObjects)
		routerGroup.Post("/objects/delete", handler.DeleteObjects)
		routerGroup.Get("/usage", handler.GetUsage)
		routerGroup.Get("/orphans", handler.GetOrphans)
		routerGroup.Delete("/orphans", handler.DeleteOrphans)
	})
}

func fail(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)
	log.Error().Err(err).Msg(msg)

	response.WithError(w, err)
}

// ListObjects lists stored objects.
// @Summary List stored objects
// @Tags Storage
// @Produce json
// @Param directory query string false "Directory" Enums(gallery, events, projects, about)
// @Success 200 {object} response.Data[dto.ListObjectsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/storage/objects [get]
// @Security BearerAuth
func (handler *Handler) ListObjects(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListObjects")
	defer scope.End()

	res, err := handler.service.List(ctx, r.URL.Query().Get(constant.RequestParamDir))
	if err != nil {
		fail(w, scope, err, "failed to list objects")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteObjects removes stored objects.
// @Summary Delete stored objects
// @Tags Storage
// @Accept json
// @Produce json
// @Param request body dto.DeleteObjectsRequest true "Delete Objects Request"
// @Success 200 {object} response.Data[dto.DeleteObjectsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/storage/objects/delete [post]
// @Security BearerAuth
func (handler *Handler) DeleteObjects(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteObjects")
	defer scope.End()

	req := dto.DeleteObjectsRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.Delete(ctx, req)
	if err != nil {
		fail(w, scope, err, "failed to delete objects")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetUsage reports stored bytes per directory.
// @Summary Storage usage
// @Tags Storage
// @Produce json
// @Success 200 {object} response.Data[objectStorage.Usage]
// @Failure 500 {object} response.Error
// @Router /v1/admin/storage/usage [get]
// @Security BearerAuth
func (handler *Handler) GetUsage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsage")
	defer scope.End()

	var (
		res objectStorage.Usage
		err error
	)

	if res, err = handler.service.Usage(ctx); err != nil {
		fail(w, scope, err, "failed to get storage usage")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetOrphans lists objects nothing refers to.
// @Summary List orphaned objects
// @Tags Storage
// @Produce json
// @Success 200 {object} response.Data[dto.OrphansResponse]
// @Failure 500 {object} response.Error
// @Router /v1/admin/storage/orphans [get]
// @Security BearerAuth
func (handler *Handler) GetOrphans(w http.ResponseWriter, r *http.Request) {
	handler.orphans(w, r, false)
}

// DeleteOrphans removes objects nothing refers to.
// @Summary Delete orphaned objects
// @Tags Storage
// @Produce json
// @Success 200 {object} response.Data[dto.OrphansResponse]
// @Failure 500 {object} response.Error
// @Router /v1/admin/storage/orphans [delete]
// @Security BearerAuth
func (handler *Handler) DeleteOrphans(w http.ResponseWriter, r *http.Request) {
	handler.orphans(w, r, true)
}

func (handler *Handler) orphans(w http.ResponseWriter, r *http.Request, remove bool) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Orphans")
	defer scope.End()

	if dryRun := shared.OptionalBool(r.URL.Query().Get("dry_run")); dryRun != nil && *dryRun {
		remove = false
	}

	res, err := handler.service.Orphans(ctx, remove)
	if err != nil {
		fail(w, scope, err, "failed to scan orphaned objects")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
