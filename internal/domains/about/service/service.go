package service

import (
	"context"
	"fmt"

	"folio/config"
	"folio/infras/otel"
	"folio/infras/storage"
	"folio/internal/domains/about/model"
	"folio/internal/domains/about/model/dto"
	"folio/internal/domains/about/repository"
	"folio/shared"
	"folio/shared/cache"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"
	"folio/shared/ordering"
	"folio/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetPublicAbout = "about:public"
)

type About interface {
	// GetPublic returns the first images in display order, capped at the configured public limit.
	GetPublic(ctx context.Context) ([]dto.AboutImageResponse, error)
	GetAll(ctx context.Context) ([]dto.AboutImageResponse, error)
	Create(ctx context.Context, req dto.CreateAboutImageRequest) (dto.AboutImageResponse, error)
	Update(ctx context.Context, req dto.UpdateAboutImageRequest, id string) error
	Delete(ctx context.Context, id string) error
	Move(ctx context.Context, req gDto.MoveRequest, id string) error
	URLs(ctx context.Context) ([]string, error)
}

type serviceImpl struct {
	repo    repository.About
	cfg     *config.Config
	cache   cache.Cache
	otel    otel.Otel
	storage storage.Storage
}

func New(repo repository.About, cfg *config.Config, cache cache.Cache, otel otel.Otel, storage storage.Storage) About {
	return &serviceImpl{
		repo:    repo,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
		storage: storage,
	}
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetPublicAbout)
	}()
}

func (s *serviceImpl) GetPublic(ctx context.Context) (res []dto.AboutImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".about.GetPublic")
	defer scope.End()
	defer scope.TraceIfError(&err)

	err = s.cache.Get(ctx, cacheGetPublicAbout, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheGetPublicAbout).Msg("cache hit for about images")

		return res, nil
	}

	params := gDto.QueryParams{
		Page:    1,
		Limit:   s.cfg.App.AboutImages.PublicLimit,
		SortBy:  model.FieldSortOrder,
		SortDir: gDto.SortDirAsc,
	}

	images, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get about images")

		return nil, err
	}

	res = dto.FromModels(images)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetPublicAbout, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save about images to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) all(ctx context.Context, columns ...string) ([]model.AboutImage, error) {
	return s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldSortOrder, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{}, columns...)
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.AboutImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".about.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	images, err := s.all(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get about images")

		return nil, err
	}

	return dto.FromModels(images), nil
}

func (s *serviceImpl) items(ctx context.Context) ([]ordering.Item, error) {
	images, err := s.all(ctx, model.FieldID, model.FieldSortOrder)
	if err != nil {
		return nil, err
	}

	items := make([]ordering.Item, len(images))
	for i, image := range images {
		items[i] = ordering.Item{ID: image.ID, SortOrder: image.SortOrder}
	}

	return items, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAboutImageRequest) (res dto.AboutImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".about.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.File == nil && req.URL == constant.Empty {
		return res, failure.BadRequestFromString("either a file or a url is required")
	}

	items, err := s.items(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read about image order")

		return res, err
	}

	url := req.URL

	if req.File != nil {
		url, err = s.storage.UploadFile(ctx, constant.StorageDirAbout, *req.File)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload about image")

			return res, err
		}
	}

	image := req.ToModel(url, ordering.Next(items))

	if err = s.repo.Insert(ctx, image); err != nil {
		log.Error().Err(err).Msg("failed to create about image")

		if req.File != nil {
			if cleanupErr := storage.DeleteByURL(context.WithoutCancel(ctx), s.storage, url); cleanupErr != nil {
				log.Error().Err(cleanupErr).Msg("failed to remove orphaned upload")
			}
		}

		return res, fmt.Errorf("failed to create about image: %w", err)
	}

	s.invalidate(ctx)

	res.FromModel(image)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAboutImageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".about.Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check about image existence")

		return err
	}

	if !exist {
		return failure.NotFound("about image not found")
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req), filter); err != nil {
		log.Error().Err(err).Msg("failed to update about image")

		return fmt.Errorf("failed to update about image: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".about.Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	image, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get about image for deletion")

		return fmt.Errorf("failed to get about image: %w", err)
	}

	if image.ID == constant.Empty {
		return failure.NotFound("about image not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete about image")

		return fmt.Errorf("failed to delete about image: %w", err)
	}

	if err := storage.DeleteByURL(ctx, s.storage, image.URL); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete about image object")
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Move(ctx context.Context, req gDto.MoveRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".about.Move")
	defer scope.End()
	defer scope.TraceIfError(&err)

	items, err := s.items(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read about image order")

		return err
	}

	err = ordering.Reorder(ctx, items, id, req.Direction, func(ctx context.Context, item ordering.Item) error {
		return s.repo.Update(ctx, map[string]any{
			model.FieldSortOrder:    item.SortOrder,
			constant.FieldUpdatedAt: timezone.Now(),
		}, shared.FilterByID(item.ID, model.FieldID, model.TableName))
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to move about image")

		return err
	}

	s.invalidate(ctx)

	return nil
}

// URLs lists every image url the about section references.
func (s *serviceImpl) URLs(ctx context.Context) (urls []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".about.URLs")
	defer scope.End()
	defer scope.TraceIfError(&err)

	images, err := s.all(ctx, model.FieldID, model.FieldURL)
	if err != nil {
		return nil, err
	}

	urls = make([]string, 0, len(images))
	for _, image := range images {
		urls = append(urls, image.URL)
	}

	return urls, nil
}
