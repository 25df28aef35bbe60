package service

import (
	"context"
	"fmt"

	"folio/config"
	"folio/infras/otel"
	"folio/internal/domains/counter/model"
	"folio/internal/domains/counter/model/dto"
	"folio/internal/domains/counter/repository"
	"folio/shared"
	"folio/shared/cache"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"
	"folio/shared/ordering"

	"github.com/rs/zerolog/log"
)

const cacheGetAllCounter = "counter:get_all"

type Counter interface {
	GetAll(ctx context.Context) ([]dto.CounterResponse, error)
	Create(ctx context.Context, req dto.CreateCounterRequest) (dto.CounterResponse, error)
	Update(ctx context.Context, req dto.UpdateCounterRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Counter
	cfg   *config.Config
	cache cache.Cache
	otel  otel.Otel
}

func New(repo repository.Counter, cfg *config.Config, cache cache.Cache, otel otel.Otel) Counter {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllCounter)
	}()
}

func (s *serviceImpl) list(ctx context.Context, columns ...string) ([]model.Counter, error) {
	return s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldSortOrder, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{}, columns...)
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.CounterResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".counter.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = s.cache.Get(ctx, cacheGetAllCounter, &res); err == nil {
		return res, nil
	}

	counters, err := s.list(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get counters")

		return nil, err
	}

	res = dto.FromModels(counters)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetAllCounter, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save counters to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCounterRequest) (res dto.CounterResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".counter.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	counters, err := s.list(ctx, model.FieldID, model.FieldSortOrder)
	if err != nil {
		log.Error().Err(err).Msg("failed to read counter order")

		return res, err
	}

	items := make([]ordering.Item, len(counters))
	for i, counter := range counters {
		items[i] = ordering.Item{ID: counter.ID, SortOrder: counter.SortOrder}
	}

	counter := req.ToModel(ordering.Next(items))

	if err = s.repo.Insert(ctx, counter); err != nil {
		log.Error().Err(err).Msg("failed to create counter")

		return res, fmt.Errorf("failed to create counter: %w", err)
	}

	s.invalidate(ctx)

	res.FromModel(counter)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCounterRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".counter.Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return err
	}

	if !exist {
		return failure.NotFound("counter not found")
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req), filter); err != nil {
		log.Error().Err(err).Msg("failed to update counter")

		return fmt.Errorf("failed to update counter: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".counter.Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return err
	}

	if !exist {
		return failure.NotFound("counter not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete counter")

		return fmt.Errorf("failed to delete counter: %w", err)
	}

	s.invalidate(ctx)

	return nil
}
