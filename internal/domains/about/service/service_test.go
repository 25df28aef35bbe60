package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"folio/infras/otel/mocks"
	storageMocks "folio/infras/storage/mocks"
	aboutMocks "folio/internal/domains/about/mocks"
	"folio/internal/domains/about/model/dto"
	"folio/internal/domains/about/repository"
	"folio/internal/domains/about/service"
	"folio/internal/testsupport"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"
)

func newMemoryService(t *testing.T) (service.About, *testsupport.Stack) {
	stack := testsupport.NewStack(t)

	svc := service.New(repository.New(stack.Datastore, stack.Otel), stack.Config, stack.Cache, stack.Otel, stack.Storage)

	return svc, stack
}

func TestAboutService_PublicViewIsLimited(t *testing.T) {
	ctx := context.Background()
	svc, stack := newMemoryService(t)

	var ids []string

	for _, alt := range []string{"one", "two", "three", "four"} {
		file := gDto.FileUpload{Name: alt + ".webp", ContentType: "image/webp", Content: []byte(alt)}

		image, err := svc.Create(ctx, dto.CreateAboutImageRequest{AltText: alt, File: &file})
		require.NoError(t, err)

		ids = append(ids, image.ID)
	}

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	public, err := svc.GetPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, stack.Config.App.AboutImages.PublicLimit)
	assert.Equal(t, "one", public[0].AltText)

	// moving the fourth image up brings it into the public view
	require.NoError(t, svc.Move(ctx, gDto.MoveRequest{Direction: constant.MoveUp}, ids[3]))

	public, err = svc.GetPublic(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "four"}, []string{public[0].AltText, public[1].AltText, public[2].AltText})

	require.NoError(t, svc.Delete(ctx, ids[0]))

	objects, err := stack.Storage.List(ctx, constant.StorageDirAbout)
	require.NoError(t, err)
	assert.Len(t, objects, 3)

	urls, err := svc.URLs(ctx)
	require.NoError(t, err)
	assert.Len(t, urls, 3)
}

func TestAboutService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a file or url", func(t *testing.T) {
		svc, _ := newMemoryService(t)

		_, err := svc.Create(ctx, dto.CreateAboutImageRequest{AltText: "nothing"})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("removes the upload when the insert fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		mockRepo := aboutMocks.NewMockAbout(ctrl)
		mockStorage := storageMocks.NewMockStorage(ctrl)
		svc := service.New(mockRepo, testsupport.Config(), testsupport.MissingCache(ctrl), mocks.NewOtel(), mockStorage)

		file := gDto.FileUpload{Name: "a.png", ContentType: "image/png", Content: []byte("a")}

		mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		mockStorage.EXPECT().UploadFile(gomock.Any(), constant.StorageDirAbout, file).Return("about-url", nil)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
		mockStorage.EXPECT().GetObjectNameFromURL("about-url").Return(constant.StorageDirAbout, "a.png")
		mockStorage.EXPECT().DeleteFile(gomock.Any(), constant.StorageDirAbout, "a.png").Return(nil)

		_, err := svc.Create(ctx, dto.CreateAboutImageRequest{File: &file})
		assert.ErrorContains(t, err, "database error")
	})
}
