package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"folio/infras/kafka"
	aboutDto "folio/internal/domains/about/model/dto"
	aboutRepo "folio/internal/domains/about/repository"
	aboutService "folio/internal/domains/about/service"
	contentDto "folio/internal/domains/content/model/dto"
	contentRepo "folio/internal/domains/content/repository"
	contentService "folio/internal/domains/content/service"
	counterMocks "folio/internal/domains/counter/mocks"
	counterDto "folio/internal/domains/counter/model/dto"
	counterRepo "folio/internal/domains/counter/repository"
	counterService "folio/internal/domains/counter/service"
	"folio/internal/domains/home/service"
	projectDto "folio/internal/domains/project/model/dto"
	projectRepo "folio/internal/domains/project/repository"
	projectService "folio/internal/domains/project/service"
	reviewDto "folio/internal/domains/review/model/dto"
	reviewRepo "folio/internal/domains/review/repository"
	reviewService "folio/internal/domains/review/service"
	"folio/internal/testsupport"
)

type services struct {
	counters counterService.Counter
	projects projectService.Project
	reviews  reviewService.Review
	about    aboutService.About
	content  contentService.Content
}

func newServices(stack *testsupport.Stack, counters counterRepo.Counter) services {
	return services{
		counters: counterService.New(counters, stack.Config, stack.Cache, stack.Otel),
		projects: projectService.New(
			projectRepo.New(stack.Datastore, stack.Otel),
			projectRepo.NewImage(stack.Datastore, stack.Otel),
			stack.Config, stack.Cache, stack.Otel, stack.Storage,
		),
		reviews: reviewService.New(reviewRepo.New(stack.Datastore, stack.Otel), stack.Config, stack.Cache, stack.Otel, kafka.Disabled()),
		about:   aboutService.New(aboutRepo.New(stack.Datastore, stack.Otel), stack.Config, stack.Cache, stack.Otel, stack.Storage),
		content: contentService.New(contentRepo.New(stack.Datastore, stack.Otel), stack.Config, stack.Cache, stack.Otel),
	}
}

func (s services) home(stack *testsupport.Stack) service.Home {
	return service.New(s.counters, s.projects, s.reviews, s.about, s.content, stack.Config, stack.Otel)
}

func TestHomeAggregates(t *testing.T) {
	ctx := context.Background()
	stack := testsupport.NewStack(t)
	svcs := newServices(stack, counterRepo.New(stack.Datastore, stack.Otel))

	_, err := svcs.counters.Create(ctx, counterDto.CreateCounterRequest{Label: "Weddings", Value: 120})
	require.NoError(t, err)

	_, err = svcs.projects.Create(ctx, projectDto.CreateProjectRequest{Title: "Lakeside", CoverImage: "https://cdn.example.com/lake.jpg"})
	require.NoError(t, err)

	for i := range 8 {
		_, err = svcs.reviews.Submit(ctx, reviewDto.SubmitReviewRequest{
			Name:   fmt.Sprintf("Client %d", i),
			Email:  fmt.Sprintf("client%d@example.com", i),
			Rating: 5,
			Text:   "Wonderful photos",
		})
		require.NoError(t, err)
	}

	for i := range 4 {
		_, err = svcs.about.Create(ctx, aboutDto.CreateAboutImageRequest{URL: fmt.Sprintf("https://cdn.example.com/about-%d.jpg", i)})
		require.NoError(t, err)
	}

	_, _, err = svcs.content.Upsert(ctx, "hero", contentDto.UpsertContentRequest{Title: "Light, kept"})
	require.NoError(t, err)

	res, err := svcs.home(stack).Get(ctx)
	require.NoError(t, err)

	assert.Len(t, res.Counters, 1)
	assert.Len(t, res.Projects, 1)
	assert.Len(t, res.Reviews.Reviews, 6)
	assert.Equal(t, 8, res.Reviews.Summary.Count)
	assert.Len(t, res.AboutImages, 3)
	assert.Equal(t, "Light, kept", res.Content["hero"].Title)
}

func TestHomeFailsAsAWhole(t *testing.T) {
	stack := testsupport.NewStack(t)
	counters := counterMocks.NewMockCounter(gomock.NewController(t))
	counters.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

	res, err := newServices(stack, counters).home(stack).Get(context.Background())
	require.ErrorContains(t, err, "loading counters")
	assert.Nil(t, res.Counters)
	assert.Nil(t, res.Content)
}
