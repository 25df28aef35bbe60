package project

import (
	"net/http"

	"folio/infras/otel"
	"folio/internal/domains/project/model"
	"folio/internal/domains/project/model/dto"
	"folio/internal/domains/project/service"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/validator"
	"folio/transport/http/request"
	"folio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	formImageURLs = "image_urls"
	formCaption   = "caption"
)

type Handler struct {
	service service.Project
	otel    otel.Otel
}

func New(service service.Project, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/projects", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetProjects)
		routerGroup.Get("/{id}", handler.GetProjectByID)
		routerGroup.Get("/{id}/images", handler.GetProjectImages)
	})
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/projects", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateProject)
		routerGroup.Patch("/{id}", handler.UpdateProject)
		routerGroup.Delete("/{id}", handler.DeleteProject)
		routerGroup.Post("/{id}/move", handler.MoveProject)
		routerGroup.Post("/{id}/images", handler.AddProjectImages)
		routerGroup.Delete("/{id}/images/{imageId}", handler.DeleteProjectImage)
		routerGroup.Post("/{id}/images/{imageId}/move", handler.MoveProjectImage)
	})
}

func fail(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)
	log.Error().Err(err).Msg(msg)

	response.WithError(w, err)
}

// GetProjects lists featured projects in display order.
// @Summary List featured projects
// @Tags Projects
// @Produce json
// @Success 200 {object} response.Data[[]dto.ProjectResponse]
// @Failure 500 {object} response.Error
// @Router /v1/projects [get]
func (handler *Handler) GetProjects(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProjects")
	defer scope.End()

	projects, err := handler.service.GetAll(ctx)
	if err != nil {
		fail(w, scope, err, "failed to get projects")

		return
	}

	response.WithJSON(w, http.StatusOK, projects)
}

// GetProjectByID returns one featured project.
// @Summary Get a featured project
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} response.Data[dto.ProjectResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/projects/{id} [get]
func (handler *Handler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProjectByID")
	defer scope.End()

	project, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		fail(w, scope, err, "failed to get project")

		return
	}

	response.WithJSON(w, http.StatusOK, project)
}

// GetProjectImages lists the images of a featured project.
// @Summary List project images
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} response.Data[[]dto.ProjectImageResponse]
// @Failure 500 {object} response.Error
// @Router /v1/projects/{id}/images [get]
func (handler *Handler) GetProjectImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProjectImages")
	defer scope.End()

	images, err := handler.service.GetImages(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		fail(w, scope, err, "failed to get project images")

		return
	}

	response.WithJSON(w, http.StatusOK, images)
}

// CreateProject creates a featured project.
// @Summary Create a featured project
// @Description JSON body, or multipart with fields title, description, category and cover (file).
// @Tags Projects
// @Accept json,mpfd
// @Produce json
// @Param request body dto.CreateProjectRequest false "Create Project Request"
// @Param cover formData file false "Cover image"
// @Success 201 {object} response.Data[dto.ProjectResponse]
// @Failure 400 {object} response.Error
// @Failure 413 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/projects [post]
// @Security BearerAuth
func (handler *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateProject")
	defer scope.End()

	req := dto.CreateProjectRequest{}

	if err := decodeCreate(w, r, &req); err != nil {
		fail(w, scope, err, "failed to validate request")

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		fail(w, scope, err, "failed to create project")

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

func decodeCreate(w http.ResponseWriter, r *http.Request, req *dto.CreateProjectRequest) (err error) {
	if !request.IsMultipart(r) {
		return validator.Validate(r.Body, req)
	}

	if err = request.ParseMultipart(w, r); err != nil {
		return err
	}

	if req.Cover, err = request.File(r, constant.FormCover); err != nil {
		return err
	}

	req.Title = r.FormValue(model.FieldTitle)
	req.Description = r.FormValue(model.FieldDescription)
	req.Category = r.FormValue(model.FieldCategory)
	req.CoverImage = r.FormValue(model.FieldCoverImage)

	return validator.ValidateStruct(req)
}

// UpdateProject updates a featured project.
// @Summary Update a featured project
// @Tags Projects
// @Accept json,mpfd
// @Produce json
// @Param id path string true "Project ID"
// @Param request body dto.UpdateProjectRequest false "Update Project Request"
// @Param cover formData file false "Replacement cover image"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/projects/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProject")
	defer scope.End()

	req := dto.UpdateProjectRequest{}

	if err := decodeUpdate(w, r, &req); err != nil {
		fail(w, scope, err, "failed to validate request")

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to update project")

		return
	}

	response.WithMessage(w, http.StatusOK, "Project updated successfully")
}

func decodeUpdate(w http.ResponseWriter, r *http.Request, req *dto.UpdateProjectRequest) (err error) {
	if !request.IsMultipart(r) {
		return validator.Validate(r.Body, req)
	}

	if err = request.ParseMultipart(w, r); err != nil {
		return err
	}

	if req.Cover, err = request.File(r, constant.FormCover); err != nil {
		return err
	}

	req.Title = request.OptionalString(r, model.FieldTitle)
	req.Description = request.OptionalString(r, model.FieldDescription)
	req.Category = request.OptionalString(r, model.FieldCategory)
	req.CoverImage = request.OptionalString(r, model.FieldCoverImage)

	return validator.ValidateStruct(req)
}

// DeleteProject removes a featured project with its images.
// @Summary Delete a featured project
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/projects/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteProject")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to delete project")

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Project deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Project deleted successfully")
}

// MoveProject moves a featured project one place up or down.
// @Summary Move a featured project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body gDto.MoveRequest true "Move Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/projects/{id}/move [post]
// @Security BearerAuth
func (handler *Handler) MoveProject(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MoveProject")
	defer scope.End()

	req := gDto.MoveRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "failed to validate request body")

		return
	}

	if err := handler.service.Move(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to move project")

		return
	}

	response.WithMessage(w, http.StatusOK, "Project moved successfully")
}

// AddProjectImages appends images to a featured project.
// @Summary Add project images
// @Tags Projects
// @Accept json,mpfd
// @Produce json
// @Param id path string true "Project ID"
// @Param request body dto.AddProjectImagesRequest false "Image urls"
// @Param images formData file false "Project images"
// @Success 201 {object} response.Data[[]dto.ProjectImageResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 413 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/projects/{id}/images [post]
// @Security BearerAuth
func (handler *Handler) AddProjectImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddProjectImages")
	defer scope.End()

	req := dto.AddProjectImagesRequest{}

	if err := decodeImages(w, r, &req); err != nil {
		fail(w, scope, err, "failed to validate request")

		return
	}

	images, err := handler.service.AddImages(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		fail(w, scope, err, "failed to add project images")

		return
	}

	response.WithJSON(w, http.StatusCreated, images)
}

func decodeImages(w http.ResponseWriter, r *http.Request, req *dto.AddProjectImagesRequest) (err error) {
	if !request.IsMultipart(r) {
		return validator.Validate(r.Body, req)
	}

	if err = request.ParseMultipart(w, r); err != nil {
		return err
	}

	if req.Images, err = request.Files(r, constant.FormFiles); err != nil {
		return err
	}

	req.Caption = r.FormValue(formCaption)
	req.URLs = r.MultipartForm.Value[formImageURLs]

	return validator.ValidateStruct(req)
}

// DeleteProjectImage removes one image from a featured project.
// @Summary Delete a project image
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Param imageId path string true "Image ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/projects/{id}/images/{imageId} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteProjectImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteProjectImage")
	defer scope.End()

	err := handler.service.DeleteImage(ctx, chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, constant.RequestParamImageID))
	if err != nil {
		fail(w, scope, err, "failed to delete project image")

		return
	}

	response.WithMessage(w, http.StatusOK, "Project image deleted successfully")
}

// MoveProjectImage moves a project image one place up or down.
// @Summary Move a project image
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param imageId path string true "Image ID"
// @Param request body gDto.MoveRequest true "Move Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/projects/{id}/images/{imageId}/move [post]
// @Security BearerAuth
func (handler *Handler) MoveProjectImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MoveProjectImage")
	defer scope.End()

	req := gDto.MoveRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "failed to validate request body")

		return
	}

	err := handler.service.MoveImage(ctx, req, chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, constant.RequestParamImageID))
	if err != nil {
		fail(w, scope, err, "failed to move project image")

		return
	}

	response.WithMessage(w, http.StatusOK, "Project image moved successfully")
}
