package storage_test

import (
	"context"
	"strings"
	"testing"

	"folio/config"
	"folio/infras/kvstore"
	"folio/infras/otel/mocks"
	"folio/infras/storage"
	storageMocks "folio/infras/storage/mocks"
	"folio/shared/base64"
	"folio/shared/constant"
	"folio/shared/dto"
	"folio/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newKVStorage(maxObject, quota int64) storage.Storage {
	return storage.NewKV(kvstore.NewMemory(), "test", maxObject, quota, mocks.NewOtel())
}

func TestKV_UploadThenPublicURLRoundTrips(t *testing.T) {
	ctx := context.Background()
	store := newKVStorage(0, 0)

	original := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0x00, 0xff, 0x10}

	url, err := store.UploadFileBytes(ctx, constant.StorageDirEvents, "cover.png", "image/png", original)
	require.NoError(t, err)

	public, err := store.PublicURL(ctx, constant.StorageDirEvents, "cover.png")
	require.NoError(t, err)
	require.NotEmpty(t, public)
	assert.Equal(t, url, public)

	fetched, err := base64.Decode(public)
	require.NoError(t, err)
	assert.Equal(t, original, fetched)
	assert.Equal(t, "image/png", base64.GetContentType(public))
}

func TestKV_UploadFileUsesUniqueNames(t *testing.T) {
	ctx := context.Background()
	store := newKVStorage(0, 0)

	file := dto.FileUpload{Name: "IMG_001.JPG", ContentType: "image/jpeg", Content: []byte("jpeg")}

	first, err := store.UploadFile(ctx, constant.StorageDirGallery, file)
	require.NoError(t, err)

	second, err := store.UploadFile(ctx, constant.StorageDirGallery, file)
	require.NoError(t, err)

	dir, name := store.GetObjectNameFromURL(first)
	assert.Equal(t, constant.StorageDirGallery, dir)
	assert.True(t, strings.HasSuffix(name, ".jpg"))

	_, otherName := store.GetObjectNameFromURL(second)
	assert.NotEqual(t, name, otherName)

	objects, err := store.List(ctx, constant.StorageDirGallery)
	require.NoError(t, err)
	assert.Len(t, objects, 2)

	for _, obj := range objects {
		assert.Equal(t, "image/jpeg", obj.ContentType)
		assert.EqualValues(t, 4, obj.Size)
	}
}

func TestKV_DeleteAndList(t *testing.T) {
	ctx := context.Background()
	store := newKVStorage(0, 0)

	_, err := store.UploadFileBytes(ctx, constant.StorageDirAbout, "a.png", "image/png", []byte("a"))
	require.NoError(t, err)
	_, err = store.UploadFileBytes(ctx, constant.StorageDirGallery, "b.png", "image/png", []byte("bb"))
	require.NoError(t, err)

	require.NoError(t, store.DeleteFile(ctx, constant.StorageDirAbout, "a.png"))

	about, err := store.List(ctx, constant.StorageDirAbout)
	require.NoError(t, err)
	assert.Empty(t, about)

	_, err = store.PublicURL(ctx, constant.StorageDirAbout, "a.png")
	assert.Equal(t, 404, failure.GetCode(err))

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "b.png", all[0].Name)
}

func TestKV_Quotas(t *testing.T) {
	ctx := context.Background()
	store := newKVStorage(4, 6)

	_, err := store.UploadFileBytes(ctx, constant.StorageDirGallery, "big.png", "image/png", []byte("12345"))
	assert.Equal(t, 413, failure.GetCode(err))

	_, err = store.UploadFileBytes(ctx, constant.StorageDirGallery, "a.png", "image/png", []byte("1234"))
	require.NoError(t, err)

	_, err = store.UploadFileBytes(ctx, constant.StorageDirGallery, "b.png", "image/png", []byte("123"))
	assert.Equal(t, 413, failure.GetCode(err))

	// overwriting an object only counts its new size
	_, err = store.UploadFileBytes(ctx, constant.StorageDirGallery, "a.png", "image/png", []byte("123456")[:4])
	require.NoError(t, err)

	usage, err := store.Usage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, usage.Objects)
	assert.EqualValues(t, 4, usage.Bytes)
	assert.EqualValues(t, 6, usage.QuotaBytes)
	assert.Equal(t, storage.DirectoryUsage{Objects: 1, Bytes: 4}, usage.Directories[constant.StorageDirGallery])
}

func TestKV_ForeignURL(t *testing.T) {
	store := newKVStorage(0, 0)

	dir, name := store.GetObjectNameFromURL("https://images.example.com/gallery/a.png")
	assert.Empty(t, dir)
	assert.Empty(t, name)
}

func TestS3_URLMapping(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.PublicDomain = "https://cdn.example.com"
	cfg.External.S3.APIEndpoint = "https://s3.example.com"
	cfg.External.S3.BucketName = "folio"

	store := storage.NewS3(cfg, mocks.NewOtel())

	url, err := store.PublicURL(context.Background(), constant.StorageDirProjects, "a.webp")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/projects/a.webp", url)

	dir, name := store.GetObjectNameFromURL(url)
	assert.Equal(t, constant.StorageDirProjects, dir)
	assert.Equal(t, "a.webp", name)

	dir, name = store.GetObjectNameFromURL("https://s3.example.com/folio/events/b.png")
	assert.Equal(t, constant.StorageDirEvents, dir)
	assert.Equal(t, "b.png", name)

	dir, _ = store.GetObjectNameFromURL("https://elsewhere.example.com/x.png")
	assert.Empty(t, dir)
}

func TestDeleteByURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := storageMocks.NewMockStorage(ctrl)

	mockStorage.EXPECT().GetObjectNameFromURL("https://cdn.example.com/gallery/a.jpg").Return(constant.StorageDirGallery, "a.jpg")
	mockStorage.EXPECT().GetObjectNameFromURL("https://elsewhere.example.com/b.jpg").Return(constant.Empty, constant.Empty)
	mockStorage.EXPECT().GetObjectNameFromURL("https://cdn.example.com/events/c.jpg").Return(constant.StorageDirEvents, "c.jpg")

	mockStorage.EXPECT().DeleteFile(gomock.Any(), constant.StorageDirGallery, "a.jpg").Return(nil)
	mockStorage.EXPECT().DeleteFile(gomock.Any(), constant.StorageDirEvents, "c.jpg").Return(assert.AnError)

	err := storage.DeleteByURL(context.Background(), mockStorage,
		"https://cdn.example.com/gallery/a.jpg",
		"",
		"https://elsewhere.example.com/b.jpg",
		"https://cdn.example.com/events/c.jpg",
	)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestUploadAll(t *testing.T) {
	ctx := context.Background()

	t.Run("stores every file", func(t *testing.T) {
		store := newKVStorage(0, 0)

		urls, err := storage.UploadAll(ctx, store, constant.StorageDirEvents, []dto.FileUpload{
			{Name: "a.png", ContentType: "image/png", Content: []byte("a")},
			{Name: "b.png", ContentType: "image/png", Content: []byte("b")},
		})
		require.NoError(t, err)
		assert.Len(t, urls, 2)

		objects, err := store.List(ctx, constant.StorageDirEvents)
		require.NoError(t, err)
		assert.Len(t, objects, 2)
	})

	t.Run("failure removes earlier uploads", func(t *testing.T) {
		store := newKVStorage(4, 0)

		_, err := storage.UploadAll(ctx, store, constant.StorageDirEvents, []dto.FileUpload{
			{Name: "a.png", ContentType: "image/png", Content: []byte("a")},
			{Name: "big.png", ContentType: "image/png", Content: []byte("too large")},
		})
		assert.Equal(t, 413, failure.GetCode(err))

		objects, err := store.List(ctx, constant.StorageDirEvents)
		require.NoError(t, err)
		assert.Empty(t, objects)
	})
}
