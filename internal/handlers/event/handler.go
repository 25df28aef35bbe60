package event

import (
	"net/http"
	"strings"

	"folio/infras/otel"
	"folio/internal/domains/event/model"
	"folio/internal/domains/event/model/dto"
	"folio/internal/domains/event/service"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/validator"
	"folio/transport/http/request"
	"folio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const formImageURLs = "image_urls"

type Handler struct {
	service service.Event
	otel    otel.Otel
}

func New(service service.Event, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/events", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetEvents)
		routerGroup.Get("/{id}", handler.GetEventByID)
		routerGroup.Get("/{id}/images", handler.GetEventImages)
	})
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/events", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateEvent)
		routerGroup.Patch("/{id}", handler.UpdateEvent)
		routerGroup.Delete("/{id}", handler.DeleteEvent)
		routerGroup.Post("/{id}/images", handler.AddEventImages)
		routerGroup.Delete("/{id}/images/{imageId}", handler.DeleteEventImage)
	})
}

func fail(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)
	log.Error().Err(err).Msg(msg)

	response.WithError(w, err)
}

// CreateEvent creates an event with an optional cover and images.
// @Summary Create an event
// @Description JSON body, or multipart with fields title, description, date, cover (file) and images (files).
// @Tags Events
// @Accept json,mpfd
// @Produce json
// @Param request body dto.CreateEventRequest false "Create Event Request"
// @Param cover formData file false "Cover image"
// @Param images formData file false "Event images"
// @Success 201 {object} response.Data[dto.EventResponse]
// @Failure 400 {object} response.Error
// @Failure 413 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/events [post]
// @Security BearerAuth
func (handler *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateEvent")
	defer scope.End()

	req := dto.CreateEventRequest{}

	if err := decodeCreate(w, r, &req); err != nil {
		fail(w, scope, err, "failed to validate request")

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		fail(w, scope, err, "failed to create event")

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Event created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

func decodeCreate(w http.ResponseWriter, r *http.Request, req *dto.CreateEventRequest) error {
	if !request.IsMultipart(r) {
		return validator.Validate(r.Body, req)
	}

	if err := request.ParseMultipart(w, r); err != nil {
		return err
	}

	date, err := request.OptionalTime(r, model.FieldDate)
	if err != nil {
		return err
	}

	if date != nil {
		req.Date = *date
	}

	if req.Cover, err = request.File(r, constant.FormCover); err != nil {
		return err
	}

	if req.Images, err = request.Files(r, constant.FormFiles); err != nil {
		return err
	}

	req.Title = r.FormValue(model.FieldTitle)
	req.Description = r.FormValue(model.FieldDescription)
	req.CoverImage = r.FormValue(model.FieldCoverImage)
	req.ImageURLs = r.MultipartForm.Value[formImageURLs]

	return validator.ValidateStruct(req)
}

// GetEvents lists events, most recent date first.
// @Summary List events
// @Tags Events
// @Produce json
// @Param title query string false "Search by title"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Data[dto.GetEventsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events [get]
func (handler *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEvents")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.And()

	if title := strings.TrimSpace(r.URL.Query().Get(model.FieldTitle)); title != "" {
		search := gDto.Like(model.FieldTitle, title)
		search.Table = model.TableName
		filterGroup.Filters = append(filterGroup.Filters, search)
	}

	events, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		fail(w, scope, err, "failed to get events")

		return
	}

	response.WithJSON(w, http.StatusOK, events)
}

// GetEventByID returns one event.
// @Summary Get an event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Data[dto.EventResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/{id} [get]
func (handler *Handler) GetEventByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEventByID")
	defer scope.End()

	event, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		fail(w, scope, err, "failed to get event by ID")

		return
	}

	response.WithJSON(w, http.StatusOK, event)
}

// GetEventImages lists the images of an event in upload order.
// @Summary List event images
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Data[[]dto.EventImageResponse]
// @Failure 500 {object} response.Error
// @Router /v1/events/{id}/images [get]
func (handler *Handler) GetEventImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEventImages")
	defer scope.End()

	images, err := handler.service.GetImages(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		fail(w, scope, err, "failed to get event images")

		return
	}

	response.WithJSON(w, http.StatusOK, images)
}

// UpdateEvent updates an event; a multipart "cover" file replaces the cover image.
// @Summary Update an event
// @Tags Events
// @Accept json,mpfd
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest false "Update Event Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/events/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateEvent")
	defer scope.End()

	req := dto.UpdateEventRequest{}

	if err := decodeUpdate(w, r, &req); err != nil {
		fail(w, scope, err, "failed to validate request")

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to update event")

		return
	}

	response.WithMessage(w, http.StatusOK, "Event updated successfully")
}

func decodeUpdate(w http.ResponseWriter, r *http.Request, req *dto.UpdateEventRequest) (err error) {
	if !request.IsMultipart(r) {
		return validator.Validate(r.Body, req)
	}

	if err = request.ParseMultipart(w, r); err != nil {
		return err
	}

	if req.Date, err = request.OptionalTime(r, model.FieldDate); err != nil {
		return err
	}

	if req.Cover, err = request.File(r, constant.FormCover); err != nil {
		return err
	}

	req.Title = request.OptionalString(r, model.FieldTitle)
	req.Description = request.OptionalString(r, model.FieldDescription)
	req.CoverImage = request.OptionalString(r, model.FieldCoverImage)

	return validator.ValidateStruct(req)
}

// DeleteEvent removes an event with its images and stored objects.
// @Summary Delete an event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/events/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteEvent")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to delete event")

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Event deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Event deleted successfully")
}

// AddEventImages uploads images to an event.
// @Summary Add event images
// @Tags Events
// @Accept json,mpfd
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.AddEventImagesRequest false "Image urls"
// @Param images formData file false "Event images"
// @Success 201 {object} response.Data[[]dto.EventImageResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 413 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/events/{id}/images [post]
// @Security BearerAuth
func (handler *Handler) AddEventImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddEventImages")
	defer scope.End()

	req := dto.AddEventImagesRequest{}

	if err := decodeImages(w, r, &req); err != nil {
		fail(w, scope, err, "failed to validate request")

		return
	}

	images, err := handler.service.AddImages(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		fail(w, scope, err, "failed to add event images")

		return
	}

	response.WithJSON(w, http.StatusCreated, images)
}

func decodeImages(w http.ResponseWriter, r *http.Request, req *dto.AddEventImagesRequest) (err error) {
	if !request.IsMultipart(r) {
		return validator.Validate(r.Body, req)
	}

	if err = request.ParseMultipart(w, r); err != nil {
		return err
	}

	if req.Images, err = request.Files(r, constant.FormFiles); err != nil {
		return err
	}

	req.Title = r.FormValue(model.FieldImageTitle)
	req.URLs = r.MultipartForm.Value[formImageURLs]

	return validator.ValidateStruct(req)
}

// DeleteEventImage removes one image from an event.
// @Summary Delete an event image
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Param imageId path string true "Image ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/events/{id}/images/{imageId} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteEventImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteEventImage")
	defer scope.End()

	eventID := chi.URLParam(r, constant.RequestParamID)
	imageID := chi.URLParam(r, constant.RequestParamImageID)

	if err := handler.service.DeleteImage(ctx, eventID, imageID); err != nil {
		fail(w, scope, err, "failed to delete event image")

		return
	}

	response.WithMessage(w, http.StatusOK, "Event image deleted successfully")
}
