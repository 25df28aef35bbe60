package service

import (
	"context"
	"fmt"

	"folio/config"
	"folio/infras/otel"
	"folio/infras/storage"
	"folio/internal/domains/event/model"
	"folio/internal/domains/event/model/dto"
	"folio/internal/domains/event/repository"
	"folio/shared"
	"folio/shared/cache"
	"folio/shared/compensate"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetEvent       = "event:get"
	cacheGetAllEvent    = "event:get_all"
	cacheCountEvent     = "event:count"
	cacheGetEventImages = "event:images"
)

type Event interface {
	Create(ctx context.Context, req dto.CreateEventRequest) (dto.EventResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetEventsResponse, error)
	Get(ctx context.Context, id string) (dto.EventResponse, error)
	Update(ctx context.Context, req dto.UpdateEventRequest, id string) error
	Delete(ctx context.Context, id string) error
	GetImages(ctx context.Context, eventID string) ([]dto.EventImageResponse, error)
	AddImages(ctx context.Context, eventID string, req dto.AddEventImagesRequest) ([]dto.EventImageResponse, error)
	DeleteImage(ctx context.Context, eventID, imageID string) error
	URLs(ctx context.Context) ([]string, error)
}

type serviceImpl struct {
	repo      repository.Event
	imageRepo repository.EventImage
	cfg       *config.Config
	cache     cache.Cache
	otel      otel.Otel
	storage   storage.Storage
}

func New(repo repository.Event, imageRepo repository.EventImage, cfg *config.Config, cache cache.Cache, otel otel.Otel, storage storage.Storage) Event {
	return &serviceImpl{
		repo:      repo,
		imageRepo: imageRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		storage:   storage,
	}
}

func imagesFilter(eventID string) gDto.FilterGroup {
	return shared.FilterByField(model.FieldImageEventID, eventID, model.ImageTableName)
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetEvent, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete event cache")
			}

			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetEventImages, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete event images cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllEvent)
		shared.InvalidateCaches(c, s.cache, cacheCountEvent)
	}()
}

// recount writes the number of child rows into image_count.
func (s *serviceImpl) recount(ctx context.Context, eventID string) (int, error) {
	count, err := s.imageRepo.Count(ctx, imagesFilter(eventID))
	if err != nil {
		return 0, fmt.Errorf("failed to count event images: %w", err)
	}

	mod := shared.TransformFields(struct {
		ImageCount *int `db:"image_count"`
	}{&count})

	if err = s.repo.Update(ctx, mod, shared.FilterByID(eventID, model.FieldID, model.TableName)); err != nil {
		return 0, fmt.Errorf("failed to update image count: %w", err)
	}

	return count, nil
}

// uploadImages stores files and registers the upload removal as a compensating action.
func (s *serviceImpl) uploadImages(ctx context.Context, undo *compensate.Actions, files []gDto.FileUpload) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	urls, err := storage.UploadAll(ctx, s.storage, constant.StorageDirEvents, files)
	if err != nil {
		return nil, err
	}

	undo.Add("remove event uploads", func(c context.Context) error {
		return storage.DeleteByURL(c, s.storage, urls...)
	})

	return urls, nil
}

// insertImages inserts the image rows for urls and registers their removal as a compensating action.
func (s *serviceImpl) insertImages(ctx context.Context, undo *compensate.Actions, images []model.EventImage) error {
	if len(images) == 0 {
		return nil
	}

	if err := s.imageRepo.InsertBulk(ctx, images); err != nil {
		return fmt.Errorf("failed to create event images: %w", err)
	}

	ids := make([]string, len(images))
	for i, image := range images {
		ids[i] = image.ID
	}

	undo.Add("delete event images", func(c context.Context) error {
		return s.imageRepo.Delete(c, gDto.FilterGroup{Filters: []any{gDto.Filter{
			Field:    model.FieldImageID,
			Operator: gDto.FilterOperatorIn,
			Value:    ids,
			Table:    model.ImageTableName,
		}}})
	})

	return nil
}

// Create uploads the cover and images, then inserts the event and its image rows. Any failure
// undoes the steps already taken, so an event is either created with all of its images or not at all.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateEventRequest) (res dto.EventResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	var undo compensate.Actions

	defer func() {
		if err != nil && undo.Len() > 0 {
			if failed := undo.Run(context.WithoutCancel(ctx)); failed > 0 {
				log.Error().Int("failed", failed).Msg("event creation was only partially rolled back")
			}
		}
	}()

	coverURL := req.CoverImage

	if req.Cover != nil {
		uploaded, err := s.uploadImages(ctx, &undo, []gDto.FileUpload{*req.Cover})
		if err != nil {
			log.Error().Err(err).Msg("failed to upload event cover")

			return res, err
		}

		coverURL = uploaded[0]
	}

	imageURLs, err := s.uploadImages(ctx, &undo, req.Images)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload event images")

		return res, err
	}

	imageURLs = append(imageURLs, req.ImageURLs...)

	event := req.ToModel(coverURL)

	if err = s.repo.Insert(ctx, event); err != nil {
		log.Error().Err(err).Msg("failed to create event")

		return res, fmt.Errorf("failed to create event: %w", err)
	}

	undo.Add("delete event", func(c context.Context) error {
		return s.repo.Delete(c, shared.FilterByID(event.ID, model.FieldID, model.TableName))
	})

	images := (&dto.AddEventImagesRequest{}).ToModels(event.ID, imageURLs)

	if err = s.insertImages(ctx, &undo, images); err != nil {
		log.Error().Err(err).Msg("failed to create event images")

		return res, err
	}

	if event.ImageCount, err = s.recount(ctx, event.ID); err != nil {
		log.Error().Err(err).Msg("failed to count event images")

		return res, err
	}

	s.invalidate(ctx, constant.Empty)

	res.FromModel(event)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetEventsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	req = req.OrDefault(model.FieldDate, gDto.SortDirDesc)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllEvent, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for events")

		return res, nil
	}

	countKey := shared.BuildCacheKeyWithQuery(cacheCountEvent, gDto.QueryParams{}, filter)

	var total int
	if err = s.cache.Get(ctx, countKey, &total); err != nil {
		if total, err = s.repo.Count(ctx, filter); err != nil {
			log.Error().Err(err).Msg("failed to count events")

			return res, err
		}
	}

	events, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get events")

		return res, err
	}

	res.FromModels(events, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save events to cache")
		}

		if err := s.cache.Save(c, countKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Event, error) {
	event, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get event")

		return event, fmt.Errorf("failed to get event: %w", err)
	}

	if event.ID == constant.Empty {
		return event, failure.NotFound("event not found")
	}

	return event, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.EventResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetEvent, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for event")

		return res, nil
	}

	event, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(event)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateEventRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event.Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	event, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if req.Cover != nil {
		url, err := s.storage.UploadFile(ctx, constant.StorageDirEvents, *req.Cover)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload event cover")

			return err
		}

		req.CoverImage = &url
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update event")

		if req.Cover != nil {
			if cleanupErr := storage.DeleteByURL(context.WithoutCancel(ctx), s.storage, *req.CoverImage); cleanupErr != nil {
				log.Error().Err(cleanupErr).Msg("failed to remove orphaned cover upload")
			}
		}

		return fmt.Errorf("failed to update event: %w", err)
	}

	if req.CoverImage != nil && *req.CoverImage != event.CoverImage {
		if err := storage.DeleteByURL(ctx, s.storage, event.CoverImage); err != nil {
			log.Error().Err(err).Str("id", id).Msg("failed to delete replaced event cover")
		}
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete removes the event, its image rows and every stored object they reference.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event.Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	event, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	images, err := s.imageRepo.GetAll(ctx, gDto.QueryParams{}, imagesFilter(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get event images for deletion")

		return fmt.Errorf("failed to get event images: %w", err)
	}

	if len(images) > 0 {
		if err = s.imageRepo.Delete(ctx, imagesFilter(id)); err != nil {
			log.Error().Err(err).Msg("failed to delete event images")

			return fmt.Errorf("failed to delete event images: %w", err)
		}
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete event")

		return fmt.Errorf("failed to delete event: %w", err)
	}

	urls := []string{event.CoverImage}
	for _, image := range images {
		urls = append(urls, image.URL)
	}

	if err := storage.DeleteByURL(ctx, s.storage, urls...); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete event objects")
	}

	s.invalidate(ctx, id)

	return nil
}

// GetImages lists the images of an event, oldest first.
func (s *serviceImpl) GetImages(ctx context.Context, eventID string) (res []dto.EventImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event.GetImages")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetEventImages, eventID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for event images")

		return res, nil
	}

	params := gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	images, err := s.imageRepo.GetAll(ctx, params, imagesFilter(eventID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get event images")

		return nil, fmt.Errorf("failed to get event images: %w", err)
	}

	res = dto.EventImagesFromModels(images)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event images to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) AddImages(ctx context.Context, eventID string, req dto.AddEventImagesRequest) (res []dto.EventImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event.AddImages")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if len(req.Images) == 0 && len(req.URLs) == 0 {
		return nil, failure.BadRequestFromString("at least one image is required")
	}

	if _, err = s.get(ctx, eventID); err != nil {
		return nil, err
	}

	var undo compensate.Actions

	defer func() {
		if err != nil {
			undo.Run(context.WithoutCancel(ctx))
		}
	}()

	urls, err := s.uploadImages(ctx, &undo, req.Images)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload event images")

		return nil, err
	}

	images := req.ToModels(eventID, append(urls, req.URLs...))

	if err = s.insertImages(ctx, &undo, images); err != nil {
		log.Error().Err(err).Msg("failed to add event images")

		return nil, err
	}

	if _, err = s.recount(ctx, eventID); err != nil {
		log.Error().Err(err).Msg("failed to count event images")

		return nil, err
	}

	s.invalidate(ctx, eventID)

	return dto.EventImagesFromModels(images), nil
}

func (s *serviceImpl) DeleteImage(ctx context.Context, eventID, imageID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event.DeleteImage")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldImageID, Operator: gDto.FilterOperatorEq, Value: imageID, Table: model.ImageTableName},
			gDto.Filter{Field: model.FieldImageEventID, Operator: gDto.FilterOperatorEq, Value: eventID, Table: model.ImageTableName},
		},
	}

	image, err := s.imageRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get event image")

		return fmt.Errorf("failed to get event image: %w", err)
	}

	if image.ID == constant.Empty {
		return failure.NotFound("event image not found")
	}

	if err = s.imageRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete event image")

		return fmt.Errorf("failed to delete event image: %w", err)
	}

	if _, err = s.recount(ctx, eventID); err != nil {
		log.Error().Err(err).Msg("failed to count event images")

		return err
	}

	if err := storage.DeleteByURL(ctx, s.storage, image.URL); err != nil {
		log.Error().Err(err).Str("id", imageID).Msg("failed to delete event image object")
	}

	s.invalidate(ctx, eventID)

	return nil
}

// URLs lists every cover and image url events reference.
func (s *serviceImpl) URLs(ctx context.Context) (urls []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event.URLs")
	defer scope.End()
	defer scope.TraceIfError(&err)

	events, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{}, model.FieldID, model.FieldCoverImage)
	if err != nil {
		return nil, err
	}

	images, err := s.imageRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{}, model.FieldImageID, model.FieldImageURL)
	if err != nil {
		return nil, err
	}

	for _, event := range events {
		urls = append(urls, event.CoverImage)
	}

	for _, image := range images {
		urls = append(urls, image.URL)
	}

	return urls, nil
}
