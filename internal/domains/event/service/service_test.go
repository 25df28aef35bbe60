package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"folio/config"
	"folio/infras/otel/mocks"
	storageMocks "folio/infras/storage/mocks"
	eventMocks "folio/internal/domains/event/mocks"
	"folio/internal/domains/event/model"
	"folio/internal/domains/event/model/dto"
	"folio/internal/domains/event/repository"
	"folio/internal/domains/event/service"
	"folio/internal/testsupport"
	cacheMocks "folio/shared/cache/mocks"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"
)

func png(name string) gDto.FileUpload {
	return gDto.FileUpload{Name: name, ContentType: "image/png", Content: []byte("png:" + name)}
}

func newMemoryService(t *testing.T) (service.Event, *testsupport.Stack) {
	stack := testsupport.NewStack(t)

	svc := service.New(
		repository.New(stack.Datastore, stack.Otel),
		repository.NewImage(stack.Datastore, stack.Otel),
		stack.Config, stack.Cache, stack.Otel, stack.Storage,
	)

	return svc, stack
}

// Create an event with a cover and two images, read it back, then delete it.
func TestEventService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc, stack := newMemoryService(t)

	cover := png("cover.png")

	created, err := svc.Create(ctx, dto.CreateEventRequest{
		Title:  "Harbour wedding",
		Date:   time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC),
		Cover:  &cover,
		Images: []gDto.FileUpload{png("first.png"), png("second.png")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, created.ImageCount)
	assert.NotEmpty(t, created.CoverImage)

	events, err := svc.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
	require.NoError(t, err)
	require.Len(t, events.Events, 1)
	assert.Equal(t, created.ID, events.Events[0].ID)
	assert.Equal(t, 2, events.Events[0].ImageCount)

	images, err := svc.GetImages(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, images, 2)

	// images come back in upload order and reproduce the uploaded bytes
	for i, name := range []string{"first.png", "second.png"} {
		directory, objectName := stack.Storage.GetObjectNameFromURL(images[i].URL)
		assert.Equal(t, constant.StorageDirEvents, directory)

		public, err := stack.Storage.PublicURL(ctx, directory, objectName)
		require.NoError(t, err)
		assert.Equal(t, images[i].URL, public)
		assert.Contains(t, images[i].URL, "base64,")
		assert.NotEqual(t, name, objectName)
	}

	assert.LessOrEqual(t, images[0].CreatedAt, images[1].CreatedAt)

	require.NoError(t, svc.Delete(ctx, created.ID))

	events, err = svc.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Empty(t, events.Events)

	images, err = svc.GetImages(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, images)

	objects, err := stack.Storage.List(ctx, constant.StorageDirEvents)
	require.NoError(t, err)
	assert.Empty(t, objects)

	_, err = svc.Get(ctx, created.ID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestEventService_ImageCountFollowsChildRows(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService(t)

	created, err := svc.Create(ctx, dto.CreateEventRequest{Title: "Studio day", Date: time.Now()})
	require.NoError(t, err)
	assert.Zero(t, created.ImageCount)

	added, err := svc.AddImages(ctx, created.ID, dto.AddEventImagesRequest{
		Images: []gDto.FileUpload{png("a.png")},
		URLs:   []string{"https://example.com/b.jpg", "https://example.com/c.jpg"},
	})
	require.NoError(t, err)
	require.Len(t, added, 3)

	event, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, event.ImageCount)

	require.NoError(t, svc.DeleteImage(ctx, created.ID, added[1].ID))

	event, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, event.ImageCount)

	err = svc.DeleteImage(ctx, "another-event", added[0].ID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	_, err = svc.AddImages(ctx, created.ID, dto.AddEventImagesRequest{})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	_, err = svc.AddImages(ctx, "missing", dto.AddEventImagesRequest{URLs: []string{"https://example.com/d.jpg"}})
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	urls, err := svc.URLs(ctx)
	require.NoError(t, err)
	assert.Len(t, urls, 3)
}

func TestEventService_CreateRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRepo := eventMocks.NewMockEvent(ctrl)
	mockImageRepo := eventMocks.NewMockEventImage(ctrl)
	mockStorage := storageMocks.NewMockStorage(ctrl)
	mockCache := cacheMocks.NewMockCache(ctrl)

	svc := service.New(mockRepo, mockImageRepo, &config.Config{}, mockCache, mocks.NewOtel(), mockStorage)

	gomock.InOrder(
		mockStorage.EXPECT().UploadFile(gomock.Any(), constant.StorageDirEvents, png("a.png")).Return("https://cdn.example.com/events/a.png", nil),
		mockStorage.EXPECT().UploadFile(gomock.Any(), constant.StorageDirEvents, png("b.png")).Return("https://cdn.example.com/events/b.png", nil),
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil),
		mockImageRepo.EXPECT().InsertBulk(gomock.Any(), gomock.Len(2)).Return(errors.New("database error")),
		// compensation runs newest first: the event row, then the uploads
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil),
		mockStorage.EXPECT().GetObjectNameFromURL("https://cdn.example.com/events/a.png").Return(constant.StorageDirEvents, "a.png"),
		mockStorage.EXPECT().DeleteFile(gomock.Any(), constant.StorageDirEvents, "a.png").Return(nil),
		mockStorage.EXPECT().GetObjectNameFromURL("https://cdn.example.com/events/b.png").Return(constant.StorageDirEvents, "b.png"),
		mockStorage.EXPECT().DeleteFile(gomock.Any(), constant.StorageDirEvents, "b.png").Return(nil),
	)

	_, err := svc.Create(context.Background(), dto.CreateEventRequest{
		Title:  "Harbour wedding",
		Date:   time.Now(),
		Images: []gDto.FileUpload{png("a.png"), png("b.png")},
	})
	assert.Error(t, err)
}

func TestEventService_DeleteRemovesObjects(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRepo := eventMocks.NewMockEvent(ctrl)
	mockImageRepo := eventMocks.NewMockEventImage(ctrl)
	mockStorage := storageMocks.NewMockStorage(ctrl)
	mockCache := cacheMocks.NewMockCache(ctrl)

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockImageRepo, &config.Config{}, mockCache, mocks.NewOtel(), mockStorage)

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Event{ID: "evt", CoverImage: "cover-url"}, nil)
	mockImageRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.EventImage{{ID: "img", EventID: "evt", URL: "image-url"}}, nil)
	mockImageRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	mockStorage.EXPECT().GetObjectNameFromURL("cover-url").Return(constant.StorageDirEvents, "cover.png")
	mockStorage.EXPECT().GetObjectNameFromURL("image-url").Return(constant.Empty, constant.Empty)
	mockStorage.EXPECT().DeleteFile(gomock.Any(), constant.StorageDirEvents, "cover.png").Return(nil)

	require.NoError(t, svc.Delete(context.Background(), "evt"))
	time.Sleep(10 * time.Millisecond)
}
