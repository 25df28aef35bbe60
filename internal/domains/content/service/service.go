package service

import (
	"context"
	"fmt"

	"folio/config"
	"folio/infras/otel"
	"folio/internal/domains/content/model"
	"folio/internal/domains/content/model/dto"
	"folio/internal/domains/content/repository"
	"folio/shared"
	"folio/shared/cache"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"
	"folio/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllContent = "content:get_all"
	cacheGetContent    = "content:get"

	nameRule = "required,max=64,slug"
)

type Content interface {
	GetAll(ctx context.Context) ([]dto.ContentResponse, error)
	GetByName(ctx context.Context, name string) (dto.ContentResponse, error)
	// Upsert writes the section called name, creating it when it does not exist yet.
	Upsert(ctx context.Context, name string, req dto.UpsertContentRequest) (res dto.ContentResponse, created bool, err error)
	Delete(ctx context.Context, name string) error
	URLs(ctx context.Context) ([]string, error)
}

type serviceImpl struct {
	repo  repository.Content
	cfg   *config.Config
	cache cache.Cache
	otel  otel.Otel
}

func New(repo repository.Content, cfg *config.Config, cache cache.Cache, otel otel.Otel) Content {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func byName(name string) gDto.FilterGroup {
	return shared.FilterByField(model.FieldName, name, model.TableName)
}

func (s *serviceImpl) invalidate(ctx context.Context, name string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetContent, name)); err != nil {
			log.Error().Err(err).Msg("failed to delete content cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllContent)
	}()
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.ContentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".content.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = s.cache.Get(ctx, cacheGetAllContent, &res); err == nil {
		return res, nil
	}

	params := gDto.QueryParams{SortBy: model.FieldName, SortDir: gDto.SortDirAsc}

	sections, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get content sections")

		return nil, err
	}

	res = dto.FromModels(sections)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetAllContent, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save content sections to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByName(ctx context.Context, name string) (res dto.ContentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".content.GetByName")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetContent, name)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	section, err := s.repo.Get(ctx, byName(name))
	if err != nil {
		log.Error().Err(err).Msg("failed to get content section")

		return res, fmt.Errorf("failed to get content section: %w", err)
	}

	if section.ID == constant.Empty {
		return res, failure.NotFound("content section not found")
	}

	res.FromModel(section)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save content section to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Upsert(ctx context.Context, name string, req dto.UpsertContentRequest) (res dto.ContentResponse, created bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".content.Upsert")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = validator.ValidateVar(name, nameRule); err != nil {
		return res, false, err
	}

	existing, err := s.repo.Get(ctx, byName(name))
	if err != nil {
		log.Error().Err(err).Msg("failed to get content section")

		return res, false, fmt.Errorf("failed to get content section: %w", err)
	}

	if existing.ID == constant.Empty {
		section := req.ToModel(name)

		if err = s.repo.Insert(ctx, section); err != nil {
			log.Error().Err(err).Msg("failed to create content section")

			return res, false, fmt.Errorf("failed to create content section: %w", err)
		}

		s.invalidate(ctx, name)

		res.FromModel(section)

		return res, true, nil
	}

	if err = s.repo.Update(ctx, req.Fields(), byName(name)); err != nil {
		log.Error().Err(err).Msg("failed to update content section")

		return res, false, fmt.Errorf("failed to update content section: %w", err)
	}

	updated, err := s.repo.Get(ctx, byName(name))
	if err != nil {
		return res, false, fmt.Errorf("failed to read back content section: %w", err)
	}

	s.invalidate(ctx, name)

	res.FromModel(updated)

	return res, false, nil
}

func (s *serviceImpl) Delete(ctx context.Context, name string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".content.Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	exist, err := s.repo.Exist(ctx, byName(name))
	if err != nil {
		return err
	}

	if !exist {
		return failure.NotFound("content section not found")
	}

	if err = s.repo.Delete(ctx, byName(name)); err != nil {
		log.Error().Err(err).Msg("failed to delete content section")

		return fmt.Errorf("failed to delete content section: %w", err)
	}

	s.invalidate(ctx, name)

	return nil
}

// URLs lists the image urls set on content sections.
func (s *serviceImpl) URLs(ctx context.Context) (urls []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".content.URLs")
	defer scope.End()
	defer scope.TraceIfError(&err)

	sections, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{}, model.FieldID, model.FieldImageURL)
	if err != nil {
		log.Error().Err(err).Msg("failed to collect content image urls")

		return nil, fmt.Errorf("failed to collect content image urls: %w", err)
	}

	for _, section := range sections {
		if section.ImageURL != constant.Empty {
			urls = append(urls, section.ImageURL)
		}
	}

	return urls, nil
}
