package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"folio/infras/otel/mocks"
	pricingMocks "folio/internal/domains/pricing/mocks"
	"folio/internal/domains/pricing/model/dto"
	"folio/internal/domains/pricing/repository"
	"folio/internal/domains/pricing/service"
	"folio/internal/testsupport"
	cacheMocks "folio/shared/cache/mocks"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"
)

func newMemoryService(t *testing.T) service.Pricing {
	stack := testsupport.NewStack(t)

	return service.New(repository.New(stack.Datastore, stack.Otel), stack.Config, stack.Cache, stack.Otel)
}

func titles(cards []dto.PricingCardResponse) []string {
	res := make([]string, len(cards))
	for i, card := range cards {
		res[i] = card.Title
	}

	return res
}

func TestPricingService_CreateAppendsAndMoves(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)

	ids := map[string]string{}

	for _, title := range []string{"Mini", "Standard", "Full day"} {
		card, err := svc.Create(ctx, dto.CreatePricingCardRequest{Title: title, Price: 100, Features: []string{"edits"}})
		require.NoError(t, err)
		assert.Equal(t, dto.DefaultCurrency, card.Currency)

		ids[title] = card.ID
	}

	cards, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mini", "Standard", "Full day"}, titles(cards))
	assert.Equal(t, []int{0, 1, 2}, []int{cards[0].SortOrder, cards[1].SortOrder, cards[2].SortOrder})

	require.NoError(t, svc.Move(ctx, gDto.MoveRequest{Direction: constant.MoveUp}, ids["Full day"]))

	cards, err = svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mini", "Full day", "Standard"}, titles(cards))

	// the first card cannot move further up
	require.NoError(t, svc.Move(ctx, gDto.MoveRequest{Direction: constant.MoveUp}, ids["Mini"]))

	cards, err = svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mini", "Full day", "Standard"}, titles(cards))

	err = svc.Move(ctx, gDto.MoveRequest{Direction: constant.MoveDown}, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestPricingService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)

	card, err := svc.Create(ctx, dto.CreatePricingCardRequest{Title: "Mini", Price: 150, Currency: "EUR"})
	require.NoError(t, err)
	assert.Empty(t, card.Features)

	price := 175.5
	featured := true

	require.NoError(t, svc.Update(ctx, dto.UpdatePricingCardRequest{
		Price:      &price,
		IsFeatured: &featured,
		Features:   &pq.StringArray{"20 photos", "online gallery"},
	}, card.ID))

	cards, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.InDelta(t, 175.5, cards[0].Price, 0.001)
	assert.Equal(t, "EUR", cards[0].Currency)
	assert.True(t, cards[0].IsFeatured)
	assert.Equal(t, []string{"20 photos", "online gallery"}, cards[0].Features)

	require.NoError(t, svc.Delete(ctx, card.ID))

	cards, err = svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestPricingService_GetAllFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := pricingMocks.NewMockPricing(ctrl)
	mockCache := cacheMocks.NewMockCache(ctrl)
	svc := service.New(repo, testsupport.Config(), mockCache, mocks.NewOtel())

	mockCache.EXPECT().
		Get(gomock.Any(), "pricing:get_all", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, dest any) error {
			*dest.(*[]dto.PricingCardResponse) = []dto.PricingCardResponse{{ID: "cached"}}

			return nil
		})

	cards, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "cached", cards[0].ID)
}

func TestPricingService_UpdateMissing(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := pricingMocks.NewMockPricing(ctrl)
	svc := service.New(repo, testsupport.Config(), cacheMocks.NewMockCache(ctrl), mocks.NewOtel())

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	title := "x"
	err := svc.Update(context.Background(), dto.UpdatePricingCardRequest{Title: &title}, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
