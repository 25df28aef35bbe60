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
	galleryMocks "folio/internal/domains/gallery/mocks"
	"folio/internal/domains/gallery/model"
	"folio/internal/domains/gallery/model/dto"
	"folio/internal/domains/gallery/repository"
	"folio/internal/domains/gallery/service"
	"folio/internal/testsupport"
	"folio/shared/cache"
	cacheMocks "folio/shared/cache/mocks"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"
	gModel "folio/shared/model"
	"folio/shared/timezone"
)

type fixture struct {
	repo    *galleryMocks.MockGallery
	cache   *cacheMocks.MockCache
	storage *storageMocks.MockStorage
	svc     service.Gallery
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:    galleryMocks.NewMockGallery(ctrl),
		cache:   cacheMocks.NewMockCache(ctrl),
		storage: storageMocks.NewMockStorage(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.storage)

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func TestGalleryService_Create(t *testing.T) {
	upload := &gDto.FileUpload{Name: "dunes.jpg", ContentType: "image/jpeg", Content: []byte("jpeg")}

	tests := []struct {
		name      string
		req       dto.CreateGalleryImageRequest
		setupMock func(f fixture)
		wantURL   string
		wantCode  int
	}{
		{
			name: "upload then insert",
			req:  dto.CreateGalleryImageRequest{Title: "Dunes", File: upload},
			setupMock: func(f fixture) {
				f.storage.EXPECT().UploadFile(gomock.Any(), constant.StorageDirGallery, *upload).Return("https://cdn.example.com/gallery/x.jpg", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, image model.GalleryImage) error {
					assert.Equal(t, "https://cdn.example.com/gallery/x.jpg", image.URL)
					assert.Equal(t, "Dunes", image.Title)

					return nil
				})
			},
			wantURL: "https://cdn.example.com/gallery/x.jpg",
		},
		{
			name: "existing url",
			req:  dto.CreateGalleryImageRequest{Title: "Dunes", URL: "https://example.com/dunes.jpg"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantURL: "https://example.com/dunes.jpg",
		},
		{
			name:      "neither file nor url",
			req:       dto.CreateGalleryImageRequest{Title: "Dunes"},
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "quota exceeded",
			req:  dto.CreateGalleryImageRequest{Title: "Dunes", File: upload},
			setupMock: func(f fixture) {
				f.storage.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any()).Return("", failure.TooLarge("storage quota exceeded"))
			},
			wantCode: http.StatusRequestEntityTooLarge,
		},
		{
			name: "insert failure removes the upload",
			req:  dto.CreateGalleryImageRequest{Title: "Dunes", File: upload},
			setupMock: func(f fixture) {
				f.storage.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn.example.com/gallery/x.jpg", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
				f.storage.EXPECT().GetObjectNameFromURL("https://cdn.example.com/gallery/x.jpg").Return(constant.StorageDirGallery, "x.jpg")
				f.storage.EXPECT().DeleteFile(gomock.Any(), constant.StorageDirGallery, "x.jpg").Return(nil)
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(context.Background(), tt.req)
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, res.URL)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestGalleryService_GetAll(t *testing.T) {
	now := timezone.Now()

	t.Run("defaults to newest first", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.GalleryImage, error) {
				assert.Equal(t, constant.FieldCreatedAt, params.SortBy)
				assert.Equal(t, gDto.SortDirDesc, params.SortDir)

				return []model.GalleryImage{
					{ID: "2", Title: "Second", Metadata: gModel.Metadata{CreatedAt: now}},
					{ID: "1", Title: "First", Metadata: gModel.Metadata{CreatedAt: now.Add(-time.Hour)}},
				}, nil
			})

		res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 2, res.TotalData)
		assert.Equal(t, 1, res.TotalPage)
		assert.Equal(t, "2", res.Images[0].ID)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.GetAll(context.Background(), gDto.QueryParams{}, gDto.FilterGroup{})
		assert.NoError(t, err)
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("database error"))

		_, err := f.svc.GetAll(context.Background(), gDto.QueryParams{}, gDto.FilterGroup{})
		assert.Error(t, err)
	})
}

func TestGalleryService_Get(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.GalleryImage{}, nil)

	_, err := f.svc.Get(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.GalleryImage{ID: "1", Title: "One"}, nil)

	res, err := f.svc.Get(context.Background(), "1")
	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, "One", res.Title)
}

func TestGalleryService_Update(t *testing.T) {
	title := "Renamed"

	f := newFixture(t)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	err := f.svc.Update(context.Background(), dto.UpdateGalleryImageRequest{Title: &title}, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, mod map[string]any, _ gDto.FilterGroup) error {
		assert.Equal(t, "Renamed", mod[model.FieldTitle])
		assert.Contains(t, mod, constant.FieldUpdatedAt)

		return nil
	})

	err = f.svc.Update(context.Background(), dto.UpdateGalleryImageRequest{Title: &title}, "1")
	time.Sleep(10 * time.Millisecond)
	assert.NoError(t, err)
}

func TestGalleryService_Delete(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.GalleryImage{ID: "1", URL: "https://cdn.example.com/gallery/x.jpg"}, nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	f.storage.EXPECT().GetObjectNameFromURL("https://cdn.example.com/gallery/x.jpg").Return(constant.StorageDirGallery, "x.jpg")
	f.storage.EXPECT().DeleteFile(gomock.Any(), constant.StorageDirGallery, "x.jpg").Return(errors.New("s3 down"))

	err := f.svc.Delete(context.Background(), "1")
	time.Sleep(10 * time.Millisecond)

	// object removal is best effort
	assert.NoError(t, err)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.GalleryImage{}, nil)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(f.svc.Delete(context.Background(), "missing")))
}

func TestGalleryService_WithMemoryStack(t *testing.T) {
	ctx := context.Background()
	stack := testsupport.NewStack(t)

	svc := service.New(repository.New(stack.Datastore, stack.Otel), stack.Config, stack.Cache, stack.Otel, stack.Storage)

	first, err := svc.Create(ctx, dto.CreateGalleryImageRequest{
		Title: "Dunes",
		File:  &gDto.FileUpload{Name: "dunes.png", ContentType: "image/png", Content: []byte("png-bytes")},
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.CreateGalleryImageRequest{Title: "Coast", URL: "https://example.com/coast.jpg"})
	require.NoError(t, err)

	list, err := svc.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
	require.NoError(t, err)
	require.Len(t, list.Images, 2)
	assert.Equal(t, "Coast", list.Images[0].Title)

	objects, err := stack.Storage.List(ctx, constant.StorageDirGallery)
	require.NoError(t, err)
	require.Len(t, objects, 1)

	require.NoError(t, svc.Delete(ctx, first.ID))

	objects, err = stack.Storage.List(ctx, constant.StorageDirGallery)
	require.NoError(t, err)
	assert.Empty(t, objects)

	urls, err := svc.URLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/coast.jpg"}, urls)
}
