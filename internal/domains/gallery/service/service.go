package service

import (
	"context"
	"fmt"

	"folio/config"
	"folio/infras/otel"
	"folio/infras/storage"
	"folio/internal/domains/gallery/model"
	"folio/internal/domains/gallery/model/dto"
	"folio/internal/domains/gallery/repository"
	"folio/shared"
	"folio/shared/cache"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetGallery    = "gallery:get"
	cacheGetAllGallery = "gallery:get_all"
	cacheCountGallery  = "gallery:count"
)

type Gallery interface {
	Create(ctx context.Context, req dto.CreateGalleryImageRequest) (dto.GalleryImageResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetGalleryImagesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.GalleryImageResponse, error)
	Update(ctx context.Context, req dto.UpdateGalleryImageRequest, id string) error
	Delete(ctx context.Context, id string) error
	URLs(ctx context.Context) ([]string, error)
}

type serviceImpl struct {
	repo    repository.Gallery
	cfg     *config.Config
	cache   cache.Cache
	otel    otel.Otel
	storage storage.Storage
}

func New(repo repository.Gallery, cfg *config.Config, cache cache.Cache, otel otel.Otel, storage storage.Storage) Gallery {
	return &serviceImpl{
		repo:    repo,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
		storage: storage,
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetGallery, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete gallery image cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllGallery)
		shared.InvalidateCaches(c, s.cache, cacheCountGallery)
	}()
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateGalleryImageRequest) (res dto.GalleryImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	url := req.URL

	switch {
	case req.File != nil:
		url, err = s.storage.UploadFile(ctx, constant.StorageDirGallery, *req.File)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload gallery image")

			return res, err
		}
	case url == constant.Empty:
		return res, failure.BadRequestFromString("either a file or a url is required")
	}

	image := req.ToModel(url)

	if err = s.repo.Insert(ctx, image); err != nil {
		log.Error().Err(err).Msg("failed to create gallery image")

		if req.File != nil {
			if cleanupErr := storage.DeleteByURL(ctx, s.storage, url); cleanupErr != nil {
				log.Error().Err(cleanupErr).Msg("failed to remove orphaned upload")
			}
		}

		return res, fmt.Errorf("failed to create gallery image: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	res.FromModel(image)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetGalleryImagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	req = req.OrDefault(constant.FieldCreatedAt, gDto.SortDirDesc)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllGallery, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for gallery images")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count gallery images")

		return res, err
	}

	images, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get gallery images")

		return res, err
	}

	res.FromModels(images, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save gallery images to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountGallery, gDto.QueryParams{}, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for gallery count")

		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count gallery images")

		return total, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save gallery count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.GalleryImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetGallery, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for gallery image")

		return res, nil
	}

	image, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get gallery image")

		return res, fmt.Errorf("failed to get gallery image: %w", err)
	}

	if image.ID == constant.Empty {
		return res, failure.NotFound("gallery image not found")
	}

	res.FromModel(image)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save gallery image to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateGalleryImageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check gallery image existence")

		return err
	}

	if !exist {
		return failure.NotFound("gallery image not found")
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req), filter); err != nil {
		log.Error().Err(err).Msg("failed to update gallery image")

		return fmt.Errorf("failed to update gallery image: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	image, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get gallery image for deletion")

		return fmt.Errorf("failed to get gallery image: %w", err)
	}

	if image.ID == constant.Empty {
		return failure.NotFound("gallery image not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete gallery image")

		return fmt.Errorf("failed to delete gallery image: %w", err)
	}

	// the row is gone either way; a leftover object is picked up by the orphan scan
	if err := storage.DeleteByURL(ctx, s.storage, image.URL); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete gallery image object")
	}

	s.invalidate(ctx, id)

	return nil
}

// URLs lists every image url the gallery references.
func (s *serviceImpl) URLs(ctx context.Context) (urls []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.URLs")
	defer scope.End()
	defer scope.TraceIfError(&err)

	images, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{}, model.FieldID, model.FieldURL)
	if err != nil {
		return nil, err
	}

	urls = make([]string, 0, len(images))
	for _, image := range images {
		urls = append(urls, image.URL)
	}

	return urls, nil
}
