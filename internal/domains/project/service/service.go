package service

import (
	"context"
	"fmt"

	"folio/config"
	"folio/infras/otel"
	"folio/infras/storage"
	"folio/internal/domains/project/model"
	"folio/internal/domains/project/model/dto"
	"folio/internal/domains/project/repository"
	"folio/shared"
	"folio/shared/cache"
	"folio/shared/compensate"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"
	"folio/shared/ordering"
	"folio/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllProject    = "project:get_all"
	cacheGetProject       = "project:get"
	cacheGetProjectImages = "project:images"
)

type Project interface {
	GetAll(ctx context.Context) ([]dto.ProjectResponse, error)
	Get(ctx context.Context, id string) (dto.ProjectResponse, error)
	Create(ctx context.Context, req dto.CreateProjectRequest) (dto.ProjectResponse, error)
	Update(ctx context.Context, req dto.UpdateProjectRequest, id string) error
	Delete(ctx context.Context, id string) error
	Move(ctx context.Context, req gDto.MoveRequest, id string) error
	GetImages(ctx context.Context, projectID string) ([]dto.ProjectImageResponse, error)
	AddImages(ctx context.Context, projectID string, req dto.AddProjectImagesRequest) ([]dto.ProjectImageResponse, error)
	DeleteImage(ctx context.Context, projectID, imageID string) error
	MoveImage(ctx context.Context, req gDto.MoveRequest, projectID, imageID string) error
	URLs(ctx context.Context) ([]string, error)
}

type serviceImpl struct {
	repo      repository.Project
	imageRepo repository.ProjectImage
	cfg       *config.Config
	cache     cache.Cache
	otel      otel.Otel
	storage   storage.Storage
}

func New(repo repository.Project, imageRepo repository.ProjectImage, cfg *config.Config, cache cache.Cache, otel otel.Otel, storage storage.Storage) Project {
	return &serviceImpl{
		repo:      repo,
		imageRepo: imageRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		storage:   storage,
	}
}

func bySortOrder() gDto.QueryParams {
	return gDto.QueryParams{SortBy: constant.FieldSortOrder, SortDir: gDto.SortDirAsc}
}

func imagesFilter(projectID string) gDto.FilterGroup {
	return shared.FilterByField(model.FieldImageProjectID, projectID, model.ImageTableName)
}

func setSortOrder(order int) map[string]any {
	return map[string]any{
		constant.FieldSortOrder: order,
		constant.FieldUpdatedAt: timezone.Now(),
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			for _, prefix := range []string{cacheGetProject, cacheGetProjectImages} {
				if err := s.cache.Delete(c, shared.BuildCacheKey(prefix, id)); err != nil {
					log.Error().Err(err).Str("prefix", prefix).Msg("failed to delete project cache")
				}
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllProject)
	}()
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.ProjectResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".project.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	err = s.cache.Get(ctx, cacheGetAllProject, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheGetAllProject).Msg("cache hit for projects")

		return res, nil
	}

	projects, err := s.repo.GetAll(ctx, bySortOrder(), gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get projects")

		return nil, err
	}

	res = dto.ProjectsFromModels(projects)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetAllProject, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save projects to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.FeaturedProject, error) {
	project, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get project")

		return project, fmt.Errorf("failed to get project: %w", err)
	}

	if project.ID == constant.Empty {
		return project, failure.NotFound("project not found")
	}

	return project, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ProjectResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".project.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetProject, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	project, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(project)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save project to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) projectItems(ctx context.Context) ([]ordering.Item, error) {
	projects, err := s.repo.GetAll(ctx, bySortOrder(), gDto.FilterGroup{}, model.FieldID, model.FieldSortOrder)
	if err != nil {
		return nil, err
	}

	items := make([]ordering.Item, len(projects))
	for i, project := range projects {
		items[i] = ordering.Item{ID: project.ID, SortOrder: project.SortOrder}
	}

	return items, nil
}

func (s *serviceImpl) imageItems(ctx context.Context, projectID string) ([]ordering.Item, error) {
	images, err := s.imageRepo.GetAll(ctx, bySortOrder(), imagesFilter(projectID), model.FieldImageID, model.FieldImageSortOrder)
	if err != nil {
		return nil, err
	}

	items := make([]ordering.Item, len(images))
	for i, image := range images {
		items[i] = ordering.Item{ID: image.ID, SortOrder: image.SortOrder}
	}

	return items, nil
}

// Create appends a project, uploading its cover first. The upload is removed again if the row
// cannot be written.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateProjectRequest) (res dto.ProjectResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".project.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	var undo compensate.Actions

	defer func() {
		if err != nil {
			undo.Run(context.WithoutCancel(ctx))
		}
	}()

	items, err := s.projectItems(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read project order")

		return res, err
	}

	coverURL := req.CoverImage

	if req.Cover != nil {
		coverURL, err = s.storage.UploadFile(ctx, constant.StorageDirProjects, *req.Cover)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload project cover")

			return res, err
		}

		undo.Add("remove project cover", func(c context.Context) error {
			return storage.DeleteByURL(c, s.storage, coverURL)
		})
	}

	project := req.ToModel(coverURL, ordering.Next(items))

	if err = s.repo.Insert(ctx, project); err != nil {
		log.Error().Err(err).Msg("failed to create project")

		return res, fmt.Errorf("failed to create project: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	res.FromModel(project)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateProjectRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".project.Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	project, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if req.Cover != nil {
		url, err := s.storage.UploadFile(ctx, constant.StorageDirProjects, *req.Cover)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload project cover")

			return err
		}

		req.CoverImage = &url
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update project")

		if req.Cover != nil {
			if cleanupErr := storage.DeleteByURL(context.WithoutCancel(ctx), s.storage, *req.CoverImage); cleanupErr != nil {
				log.Error().Err(cleanupErr).Msg("failed to remove orphaned cover upload")
			}
		}

		return fmt.Errorf("failed to update project: %w", err)
	}

	if req.CoverImage != nil && *req.CoverImage != project.CoverImage {
		if err := storage.DeleteByURL(ctx, s.storage, project.CoverImage); err != nil {
			log.Error().Err(err).Str("id", id).Msg("failed to delete replaced project cover")
		}
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete removes the project, its images and their stored objects.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".project.Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	project, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	images, err := s.imageRepo.GetAll(ctx, gDto.QueryParams{}, imagesFilter(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get project images for deletion")

		return fmt.Errorf("failed to get project images: %w", err)
	}

	if len(images) > 0 {
		if err = s.imageRepo.Delete(ctx, imagesFilter(id)); err != nil {
			log.Error().Err(err).Msg("failed to delete project images")

			return fmt.Errorf("failed to delete project images: %w", err)
		}
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete project")

		return fmt.Errorf("failed to delete project: %w", err)
	}

	urls := []string{project.CoverImage}
	for _, image := range images {
		urls = append(urls, image.URL)
	}

	if err := storage.DeleteByURL(ctx, s.storage, urls...); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete project objects")
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Move(ctx context.Context, req gDto.MoveRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".project.Move")
	defer scope.End()
	defer scope.TraceIfError(&err)

	items, err := s.projectItems(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read project order")

		return err
	}

	err = ordering.Reorder(ctx, items, id, req.Direction, func(ctx context.Context, item ordering.Item) error {
		return s.repo.Update(ctx, setSortOrder(item.SortOrder), shared.FilterByID(item.ID, model.FieldID, model.TableName))
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to move project")

		return err
	}

	s.invalidate(ctx, constant.Empty)

	return nil
}

// GetImages lists the images of a project in display order.
func (s *serviceImpl) GetImages(ctx context.Context, projectID string) (res []dto.ProjectImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".project.GetImages")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetProjectImages, projectID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	images, err := s.imageRepo.GetAll(ctx, bySortOrder(), imagesFilter(projectID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get project images")

		return nil, fmt.Errorf("failed to get project images: %w", err)
	}

	res = dto.ProjectImagesFromModels(images)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save project images to cache")
		}
	}()

	return res, nil
}

// AddImages appends images after the project's existing ones.
func (s *serviceImpl) AddImages(ctx context.Context, projectID string, req dto.AddProjectImagesRequest) (res []dto.ProjectImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".project.AddImages")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if len(req.Images) == 0 && len(req.URLs) == 0 {
		return nil, failure.BadRequestFromString("at least one image is required")
	}

	if _, err = s.get(ctx, projectID); err != nil {
		return nil, err
	}

	items, err := s.imageItems(ctx, projectID)
	if err != nil {
		log.Error().Err(err).Msg("failed to read project image order")

		return nil, err
	}

	var undo compensate.Actions

	defer func() {
		if err != nil {
			undo.Run(context.WithoutCancel(ctx))
		}
	}()

	urls, err := storage.UploadAll(ctx, s.storage, constant.StorageDirProjects, req.Images)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload project images")

		return nil, err
	}

	undo.Add("remove project uploads", func(c context.Context) error {
		return storage.DeleteByURL(c, s.storage, urls...)
	})

	images := req.ToModels(projectID, append(urls, req.URLs...), ordering.Next(items))

	if err = s.imageRepo.InsertBulk(ctx, images); err != nil {
		log.Error().Err(err).Msg("failed to add project images")

		return nil, fmt.Errorf("failed to add project images: %w", err)
	}

	s.invalidate(ctx, projectID)

	return dto.ProjectImagesFromModels(images), nil
}

func imageFilter(projectID, imageID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldImageID, Operator: gDto.FilterOperatorEq, Value: imageID, Table: model.ImageTableName},
			gDto.Filter{Field: model.FieldImageProjectID, Operator: gDto.FilterOperatorEq, Value: projectID, Table: model.ImageTableName},
		},
	}
}

func (s *serviceImpl) DeleteImage(ctx context.Context, projectID, imageID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".project.DeleteImage")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := imageFilter(projectID, imageID)

	image, err := s.imageRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get project image")

		return fmt.Errorf("failed to get project image: %w", err)
	}

	if image.ID == constant.Empty {
		return failure.NotFound("project image not found")
	}

	if err = s.imageRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete project image")

		return fmt.Errorf("failed to delete project image: %w", err)
	}

	if err := storage.DeleteByURL(ctx, s.storage, image.URL); err != nil {
		log.Error().Err(err).Str("id", imageID).Msg("failed to delete project image object")
	}

	s.invalidate(ctx, projectID)

	return nil
}

func (s *serviceImpl) MoveImage(ctx context.Context, req gDto.MoveRequest, projectID, imageID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".project.MoveImage")
	defer scope.End()
	defer scope.TraceIfError(&err)

	items, err := s.imageItems(ctx, projectID)
	if err != nil {
		log.Error().Err(err).Msg("failed to read project image order")

		return err
	}

	err = ordering.Reorder(ctx, items, imageID, req.Direction, func(ctx context.Context, item ordering.Item) error {
		return s.imageRepo.Update(ctx, setSortOrder(item.SortOrder), imageFilter(projectID, item.ID))
	})
	if err != nil {
		log.Error().Err(err).Str("id", imageID).Msg("failed to move project image")

		return err
	}

	s.invalidate(ctx, projectID)

	return nil
}

// URLs lists every cover and image url projects reference.
func (s *serviceImpl) URLs(ctx context.Context) (urls []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".project.URLs")
	defer scope.End()
	defer scope.TraceIfError(&err)

	projects, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{}, model.FieldID, model.FieldCoverImage)
	if err != nil {
		return nil, err
	}

	images, err := s.imageRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{}, model.FieldImageID, model.FieldImageURL)
	if err != nil {
		return nil, err
	}

	for _, project := range projects {
		urls = append(urls, project.CoverImage)
	}

	for _, image := range images {
		urls = append(urls, image.URL)
	}

	return urls, nil
}
