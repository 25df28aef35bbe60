package gallery

import (
	"net/http"
	"strings"

	"folio/infras/otel"
	"folio/internal/domains/gallery/model"
	"folio/internal/domains/gallery/model/dto"
	"folio/internal/domains/gallery/service"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/validator"
	"folio/transport/http/request"
	"folio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Gallery
	otel    otel.Otel
}

func New(service service.Gallery, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/gallery", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetGalleryImages)
		routerGroup.Get("/{id}", handler.GetGalleryImageByID)
	})
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/gallery", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateGalleryImage)
		routerGroup.Patch("/{id}", handler.UpdateGalleryImage)
		routerGroup.Delete("/{id}", handler.DeleteGalleryImage)
	})
}

// CreateGalleryImage adds an image to the gallery.
// @Summary Add a gallery image
// @Description Upload an image file (multipart field "file") or register an existing url (JSON).
// @Tags Gallery
// @Accept json,mpfd
// @Produce json
// @Param request body dto.CreateGalleryImageRequest false "Create Gallery Image Request"
// @Param file formData file false "Image file"
// @Param title formData string false "Image title"
// @Success 201 {object} response.Data[dto.GalleryImageResponse]
// @Failure 400 {object} response.Error
// @Failure 413 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/gallery [post]
// @Security BearerAuth
func (handler *Handler) CreateGalleryImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGalleryImage")
	defer scope.End()

	req := dto.CreateGalleryImageRequest{}

	if err := decodeCreate(w, r, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create gallery image")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Gallery image created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

func decodeCreate(w http.ResponseWriter, r *http.Request, req *dto.CreateGalleryImageRequest) error {
	if !request.IsMultipart(r) {
		return validator.Validate(r.Body, req)
	}

	if err := request.ParseMultipart(w, r); err != nil {
		return err
	}

	file, err := request.File(r, constant.FormFile)
	if err != nil {
		return err
	}

	req.Title = r.FormValue(model.FieldTitle)
	req.URL = r.FormValue(model.FieldURL)
	req.File = file

	return validator.ValidateStruct(req)
}

// GetGalleryImages lists gallery images, newest first.
// @Summary List gallery images
// @Description List gallery images with pagination and an optional title search.
// @Tags Gallery
// @Produce json
// @Param title query string false "Search by title"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param sort_by query string false "Sort column"
// @Param sort_dir query string false "ASC or DESC"
// @Success 200 {object} response.Data[dto.GetGalleryImagesResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery [get]
func (handler *Handler) GetGalleryImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGalleryImages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.And()

	if title := strings.TrimSpace(r.URL.Query().Get(model.FieldTitle)); title != "" {
		search := gDto.Like(model.FieldTitle, title)
		search.Table = model.TableName
		filterGroup.Filters = append(filterGroup.Filters, search)
	}

	images, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get gallery images")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, images)
}

// GetGalleryImageByID returns one gallery image.
// @Summary Get a gallery image
// @Tags Gallery
// @Produce json
// @Param id path string true "Gallery image ID"
// @Success 200 {object} response.Data[dto.GalleryImageResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery/{id} [get]
func (handler *Handler) GetGalleryImageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGalleryImageByID")
	defer scope.End()

	image, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get gallery image by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, image)
}

// UpdateGalleryImage updates the title of a gallery image.
// @Summary Update a gallery image
// @Tags Gallery
// @Accept json
// @Produce json
// @Param id path string true "Gallery image ID"
// @Param request body dto.UpdateGalleryImageRequest true "Update Gallery Image Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/gallery/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateGalleryImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateGalleryImage")
	defer scope.End()

	req := dto.UpdateGalleryImageRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update gallery image")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Gallery image updated successfully")
}

// DeleteGalleryImage removes a gallery image and its stored object.
// @Summary Delete a gallery image
// @Tags Gallery
// @Produce json
// @Param id path string true "Gallery image ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/gallery/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteGalleryImage")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete gallery image")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Gallery image deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Gallery image deleted successfully")
}
