package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"folio/infras/kafka"
	kafkaMocks "folio/infras/kafka/mocks"
	"folio/infras/otel/mocks"
	reviewMocks "folio/internal/domains/review/mocks"
	"folio/internal/domains/review/model/dto"
	"folio/internal/domains/review/repository"
	"folio/internal/domains/review/service"
	"folio/internal/testsupport"
	cacheMocks "folio/shared/cache/mocks"
	gDto "folio/shared/dto"
	"folio/shared/failure"
)

func submission(name string, rating int) dto.SubmitReviewRequest {
	return dto.SubmitReviewRequest{
		Name:   name,
		Email:  name + "@example.com",
		Rating: rating,
		Text:   "lovely photos",
	}
}

func newMemoryService(t *testing.T, requireModeration bool) (service.Review, *kafkaMocks.MockClient) {
	stack := testsupport.NewStack(t)
	stack.Config.App.Reviews.RequireModeration = requireModeration
	stack.Config.External.Kafka.Topics.Reviews = "folio.reviews"

	bus := kafkaMocks.NewMockClient(gomock.NewController(t))

	svc := service.New(repository.New(stack.Datastore, stack.Otel), stack.Config, stack.Cache, stack.Otel, bus)

	return svc, bus
}

// Submitted reviews are published straight away unless moderation is switched on.
func TestReviewService_SubmitPublishesByDefault(t *testing.T) {
	ctx := context.Background()
	svc, bus := newMemoryService(t, false)

	bus.EXPECT().Enabled().Return(false).AnyTimes()

	for _, rating := range []int{5, 4, 1} {
		res, err := svc.Submit(ctx, submission("guest", rating))
		require.NoError(t, err)
		assert.True(t, res.Published)
	}

	public, err := svc.GetPublished(ctx, gDto.QueryParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, public.Reviews, 3)
	assert.Equal(t, 3, public.Summary.Count)
	assert.InDelta(t, 3.3, public.Summary.Average, 0.001)
	assert.Equal(t, 1, public.Summary.Stars[5])
	assert.Equal(t, 0, public.Summary.Stars[3])
}

func TestReviewService_ModerationHoldsReviews(t *testing.T) {
	ctx := context.Background()
	svc, bus := newMemoryService(t, true)

	bus.EXPECT().Enabled().Return(false).AnyTimes()

	res, err := svc.Submit(ctx, submission("guest", 5))
	require.NoError(t, err)
	assert.False(t, res.Published)

	public, err := svc.GetPublished(ctx, gDto.QueryParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, public.Reviews)
	assert.Zero(t, public.Summary.Average)

	published := true
	require.NoError(t, svc.SetPublished(ctx, dto.SetPublishedRequest{Published: &published}, res.ID))

	public, err = svc.GetPublished(ctx, gDto.QueryParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, public.Reviews, 1)
	assert.Equal(t, res.ID, public.Reviews[0].ID)

	all, err := svc.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 1, all.TotalData)
	assert.Equal(t, "guest@example.com", all.Reviews[0].Email)
}

func TestReviewService_SubmitAnnounces(t *testing.T) {
	ctx := context.Background()
	svc, bus := newMemoryService(t, false)

	var sent []kafka.Message

	bus.EXPECT().Enabled().Return(true)
	bus.EXPECT().
		SendMessages(gomock.Any(), "folio.reviews", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			sent = append(sent, messages...)

			return nil
		})

	res, err := svc.Submit(ctx, submission("guest", 4))
	require.NoError(t, err)

	require.Len(t, sent, 1)
	assert.Equal(t, res.ID, sent[0].Key)

	message, ok := sent[0].Value.(dto.SubmittedMessage)
	require.True(t, ok)
	assert.Equal(t, res.ID, message.ID)
	assert.Equal(t, 4, message.Rating)
	assert.True(t, message.Published)
}

func TestReviewService_MissingReview(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	repo := reviewMocks.NewMockReview(ctrl)
	svc := service.New(repo, testsupport.Config(), cacheMocks.NewMockCache(ctrl), mocks.NewOtel(), kafkaMocks.NewMockClient(ctrl))

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)

	published := false
	err := svc.SetPublished(ctx, dto.SetPublishedRequest{Published: &published}, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	err = svc.Delete(ctx, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
