package service

import (
	"context"
	"fmt"

	"folio/config"
	"folio/infras/otel"
	"folio/internal/domains/pricing/model"
	"folio/internal/domains/pricing/model/dto"
	"folio/internal/domains/pricing/repository"
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
	cacheGetAllPricing = "pricing:get_all"
)

type Pricing interface {
	GetAll(ctx context.Context) ([]dto.PricingCardResponse, error)
	Create(ctx context.Context, req dto.CreatePricingCardRequest) (dto.PricingCardResponse, error)
	Update(ctx context.Context, req dto.UpdatePricingCardRequest, id string) error
	Delete(ctx context.Context, id string) error
	Move(ctx context.Context, req gDto.MoveRequest, id string) error
}

type serviceImpl struct {
	repo  repository.Pricing
	cfg   *config.Config
	cache cache.Cache
	otel  otel.Otel
}

func New(repo repository.Pricing, cfg *config.Config, cache cache.Cache, otel otel.Otel) Pricing {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func bySortOrder() gDto.QueryParams {
	return gDto.QueryParams{SortBy: model.FieldSortOrder, SortDir: gDto.SortDirAsc}
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllPricing)
	}()
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.PricingCardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".pricing.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	err = s.cache.Get(ctx, cacheGetAllPricing, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheGetAllPricing).Msg("cache hit for pricing cards")

		return res, nil
	}

	cards, err := s.repo.GetAll(ctx, bySortOrder(), gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get pricing cards")

		return nil, err
	}

	res = dto.FromModels(cards)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetAllPricing, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pricing cards to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) items(ctx context.Context) ([]ordering.Item, error) {
	cards, err := s.repo.GetAll(ctx, bySortOrder(), gDto.FilterGroup{}, model.FieldID, model.FieldSortOrder)
	if err != nil {
		return nil, err
	}

	items := make([]ordering.Item, len(cards))
	for i, card := range cards {
		items[i] = ordering.Item{ID: card.ID, SortOrder: card.SortOrder}
	}

	return items, nil
}

// Create appends a card after the existing ones.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePricingCardRequest) (res dto.PricingCardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".pricing.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	items, err := s.items(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read pricing order")

		return res, err
	}

	card := req.ToModel(ordering.Next(items))

	if err = s.repo.Insert(ctx, card); err != nil {
		log.Error().Err(err).Msg("failed to create pricing card")

		return res, fmt.Errorf("failed to create pricing card: %w", err)
	}

	s.invalidate(ctx)

	res.FromModel(card)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePricingCardRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".pricing.Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check pricing card existence")

		return err
	}

	if !exist {
		return failure.NotFound("pricing card not found")
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req), filter); err != nil {
		log.Error().Err(err).Msg("failed to update pricing card")

		return fmt.Errorf("failed to update pricing card: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".pricing.Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check pricing card existence")

		return err
	}

	if !exist {
		return failure.NotFound("pricing card not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete pricing card")

		return fmt.Errorf("failed to delete pricing card: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

// Move swaps a card with its neighbour; moving past either end is a no-op.
func (s *serviceImpl) Move(ctx context.Context, req gDto.MoveRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".pricing.Move")
	defer scope.End()
	defer scope.TraceIfError(&err)

	items, err := s.items(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read pricing order")

		return err
	}

	err = ordering.Reorder(ctx, items, id, req.Direction, func(ctx context.Context, item ordering.Item) error {
		return s.repo.Update(ctx, map[string]any{
			model.FieldSortOrder:    item.SortOrder,
			constant.FieldUpdatedAt: timezone.Now(),
		}, shared.FilterByID(item.ID, model.FieldID, model.TableName))
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to move pricing card")

		return err
	}

	s.invalidate(ctx)

	return nil
}
