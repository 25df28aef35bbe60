package service

import (
	"context"
	"fmt"

	"folio/config"
	"folio/infras/kafka"
	"folio/infras/otel"
	"folio/internal/domains/review/model"
	"folio/internal/domains/review/model/dto"
	"folio/internal/domains/review/repository"
	"folio/shared"
	"folio/shared/cache"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllPublicReviews = "review:public"
)

type Review interface {
	Submit(ctx context.Context, req dto.SubmitReviewRequest) (dto.ReviewResponse, error)
	GetPublished(ctx context.Context, req gDto.QueryParams) (dto.GetPublicReviewsResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReviewsResponse, error)
	SetPublished(ctx context.Context, req dto.SetPublishedRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Review
	cfg   *config.Config
	cache cache.Cache
	otel  otel.Otel
	bus   kafka.Client
}

func New(repo repository.Review, cfg *config.Config, cache cache.Cache, otel otel.Otel, bus kafka.Client) Review {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		bus:   bus,
	}
}

func publishedFilter() gDto.FilterGroup {
	return shared.FilterByField(model.FieldPublished, true, model.TableName)
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllPublicReviews)
	}()
}

// Submit stores a visitor review. Reviews go live immediately unless moderation is switched on.
func (s *serviceImpl) Submit(ctx context.Context, req dto.SubmitReviewRequest) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.Submit")
	defer scope.End()
	defer scope.TraceIfError(&err)

	review := req.ToModel(!s.cfg.App.Reviews.RequireModeration)

	if err = s.repo.Insert(ctx, review); err != nil {
		log.Error().Err(err).Msg("failed to submit review")

		return res, fmt.Errorf("failed to submit review: %w", err)
	}

	s.announce(ctx, review)

	if review.Published {
		s.invalidate(ctx)
	}

	res.FromModel(review)

	return res, nil
}

// announce publishes the submission on the reviews topic. The review is already stored, so a
// broker failure is only logged.
func (s *serviceImpl) announce(ctx context.Context, review model.Review) {
	if !s.bus.Enabled() {
		return
	}

	err := s.bus.SendMessages(ctx, s.cfg.External.Kafka.Topics.Reviews, kafka.Message{
		Key: review.ID,
		Value: dto.SubmittedMessage{
			ID:        review.ID,
			Name:      review.Name,
			Rating:    review.Rating,
			Published: review.Published,
		},
	})
	if err != nil {
		log.Error().Err(err).Str("id", review.ID).Msg("failed to announce review")
	}
}

func (s *serviceImpl) GetPublished(ctx context.Context, req gDto.QueryParams) (res dto.GetPublicReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.GetPublished")
	defer scope.End()
	defer scope.TraceIfError(&err)

	req = req.OrDefault(constant.FieldCreatedAt, gDto.SortDirDesc)

	filter := publishedFilter()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPublicReviews, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for published reviews")

		return res, nil
	}

	ratings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter, model.FieldID, model.FieldRating)
	if err != nil {
		log.Error().Err(err).Msg("failed to get review ratings")

		return res, err
	}

	reviews, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get published reviews")

		return res, err
	}

	res.FromModels(reviews, dto.SummaryFromModels(ratings), req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save published reviews to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	req = req.OrDefault(constant.FieldCreatedAt, gDto.SortDirDesc)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reviews")

		return res, err
	}

	reviews, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, err
	}

	res.FromModels(reviews, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) SetPublished(ctx context.Context, req dto.SetPublishedRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.SetPublished")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check review existence")

		return err
	}

	if !exist {
		return failure.NotFound("review not found")
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req), filter); err != nil {
		log.Error().Err(err).Msg("failed to update review")

		return fmt.Errorf("failed to update review: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check review existence")

		return err
	}

	if !exist {
		return failure.NotFound("review not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete review")

		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.invalidate(ctx)

	return nil
}
