package service

import (
	"context"
	"fmt"

	"folio/config"
	"folio/infras/otel"
	aboutService "folio/internal/domains/about/service"
	contentService "folio/internal/domains/content/service"
	counterService "folio/internal/domains/counter/service"
	"folio/internal/domains/home/model/dto"
	projectService "folio/internal/domains/project/service"
	reviewService "folio/internal/domains/review/service"
	"folio/shared/constant"
	gDto "folio/shared/dto"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Home interface {
	Get(ctx context.Context) (dto.HomeResponse, error)
}

type serviceImpl struct {
	counters counterService.Counter
	projects projectService.Project
	reviews  reviewService.Review
	about    aboutService.About
	content  contentService.Content
	cfg      *config.Config
	otel     otel.Otel
}

func New(
	counters counterService.Counter,
	projects projectService.Project,
	reviews reviewService.Review,
	about aboutService.About,
	content contentService.Content,
	cfg *config.Config,
	otel otel.Otel,
) Home {
	return &serviceImpl{
		counters: counters,
		projects: projects,
		reviews:  reviews,
		about:    about,
		content:  content,
		cfg:      cfg,
		otel:     otel,
	}
}

// Get loads every homepage section in parallel. Any failing section fails the whole payload.
func (s *serviceImpl) Get(ctx context.Context) (res dto.HomeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".home.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		res.Counters, err = s.counters.GetAll(gctx)
		if err != nil {
			return fmt.Errorf("loading counters: %w", err)
		}

		return nil
	})

	group.Go(func() (err error) {
		res.Projects, err = s.projects.GetAll(gctx)
		if err != nil {
			return fmt.Errorf("loading projects: %w", err)
		}

		return nil
	})

	group.Go(func() (err error) {
		res.Reviews, err = s.reviews.GetPublished(gctx, gDto.QueryParams{Page: 1, Limit: s.cfg.App.Reviews.HomeLimit})
		if err != nil {
			return fmt.Errorf("loading reviews: %w", err)
		}

		return nil
	})

	group.Go(func() (err error) {
		res.AboutImages, err = s.about.GetPublic(gctx)
		if err != nil {
			return fmt.Errorf("loading about images: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		sections, err := s.content.GetAll(gctx)
		if err != nil {
			return fmt.Errorf("loading content: %w", err)
		}

		res.SetContent(sections)

		return nil
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to load homepage")

		return dto.HomeResponse{}, err
	}

	return res, nil
}
