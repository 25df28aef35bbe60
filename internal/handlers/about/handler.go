package about

import (
	"net/http"

	"folio/infras/otel"
	"folio/internal/domains/about/model"
	"folio/internal/domains/about/model/dto"
	"folio/internal/domains/about/service"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/validator"
	"folio/transport/http/request"
	"folio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.About
	otel    otel.Otel
}

func New(service service.About, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/about-images", handler.GetPublicAboutImages)
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/about-images", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetAboutImages)
		routerGroup.Post("/", handler.CreateAboutImage)
		routerGroup.Patch("/{id}", handler.UpdateAboutImage)
		routerGroup.Delete("/{id}", handler.DeleteAboutImage)
		routerGroup.Post("/{id}/move", handler.MoveAboutImage)
	})
}

// GetPublicAboutImages lists the about images shown on the public site.
// @Summary List public about images
// @Tags About
// @Produce json
// @Success 200 {object} response.Data[[]dto.AboutImageResponse]
// @Failure 500 {object} response.Error
// @Router /v1/about-images [get]
func (handler *Handler) GetPublicAboutImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPublicAboutImages")
	defer scope.End()

	images, err := handler.service.GetPublic(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get about images")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, images)
}

// GetAboutImages lists every about image.
// @Summary List all about images
// @Tags About
// @Produce json
// @Success 200 {object} response.Data[[]dto.AboutImageResponse]
// @Failure 500 {object} response.Error
// @Router /v1/admin/about-images [get]
// @Security BearerAuth
func (handler *Handler) GetAboutImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAboutImages")
	defer scope.End()

	images, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get about images")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, images)
}

// CreateAboutImage appends an about image.
// @Summary Add an about image
// @Description Upload an image file (multipart field "file") or register an existing url (JSON).
// @Tags About
// @Accept json,mpfd
// @Produce json
// @Param request body dto.CreateAboutImageRequest false "Create About Image Request"
// @Param file formData file false "Image file"
// @Success 201 {object} response.Data[dto.AboutImageResponse]
// @Failure 400 {object} response.Error
// @Failure 413 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/about-images [post]
// @Security BearerAuth
func (handler *Handler) CreateAboutImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAboutImage")
	defer scope.End()

	req := dto.CreateAboutImageRequest{}

	if err := decodeCreate(w, r, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create about image")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

func decodeCreate(w http.ResponseWriter, r *http.Request, req *dto.CreateAboutImageRequest) (err error) {
	if !request.IsMultipart(r) {
		return validator.Validate(r.Body, req)
	}

	if err = request.ParseMultipart(w, r); err != nil {
		return err
	}

	if req.File, err = request.File(r, constant.FormFile); err != nil {
		return err
	}

	req.AltText = r.FormValue(model.FieldAltText)
	req.URL = r.FormValue(model.FieldURL)

	return validator.ValidateStruct(req)
}

// UpdateAboutImage updates the alt text of an about image.
// @Summary Update an about image
// @Tags About
// @Accept json
// @Produce json
// @Param id path string true "About image ID"
// @Param request body dto.UpdateAboutImageRequest true "Update About Image Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/about-images/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAboutImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAboutImage")
	defer scope.End()

	req := dto.UpdateAboutImageRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update about image")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "About image updated successfully")
}

// DeleteAboutImage removes an about image and its stored object.
// @Summary Delete an about image
// @Tags About
// @Produce json
// @Param id path string true "About image ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/about-images/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAboutImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAboutImage")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete about image")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "About image deleted successfully")
}

// MoveAboutImage moves an about image one place up or down.
// @Summary Move an about image
// @Tags About
// @Accept json
// @Produce json
// @Param id path string true "About image ID"
// @Param request body gDto.MoveRequest true "Move Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/about-images/{id}/move [post]
// @Security BearerAuth
func (handler *Handler) MoveAboutImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MoveAboutImage")
	defer scope.End()

	req := gDto.MoveRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Move(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to move about image")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "About image moved successfully")
}
