package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contentModel "folio/internal/domains/content/model"
	contentRepository "folio/internal/domains/content/repository"
	contentService "folio/internal/domains/content/service"
	"folio/internal/domains/storage/model/dto"
	"folio/internal/domains/storage/service"
	"folio/internal/testsupport"
	"folio/shared/constant"
	"folio/shared/failure"
	"folio/shared/model"
	"folio/shared/timezone"
)

type staticSource []string

func (s staticSource) URLs(context.Context) ([]string, error) {
	return s, nil
}

type brokenSource struct{}

func (brokenSource) URLs(context.Context) ([]string, error) {
	return nil, errors.New("backend down")
}

func TestStorageOrphans(t *testing.T) {
	ctx := context.Background()
	stack := testsupport.NewStack(t)

	kept, err := stack.Storage.UploadFileBytes(ctx, constant.StorageDirGallery, "kept.png", "image/png", []byte("kept"))
	require.NoError(t, err)

	_, err = stack.Storage.UploadFileBytes(ctx, constant.StorageDirEvents, "stray.png", "image/png", []byte("stray-bytes"))
	require.NoError(t, err)

	svc := service.New(stack.Storage, stack.Otel, staticSource{kept, "https://example.com/elsewhere.jpg"}, staticSource{})

	listed, err := svc.List(ctx, constant.Empty)
	require.NoError(t, err)
	assert.Equal(t, 2, listed.Count)
	assert.Equal(t, int64(len("kept")+len("stray-bytes")), listed.Bytes)

	orphans, err := svc.Orphans(ctx, false)
	require.NoError(t, err)
	require.Equal(t, 1, orphans.Count)
	assert.Equal(t, constant.StorageDirEvents, orphans.Objects[0].Directory)
	assert.False(t, orphans.Deleted)

	orphans, err = svc.Orphans(ctx, true)
	require.NoError(t, err)
	assert.True(t, orphans.Deleted)

	listed, err = svc.List(ctx, constant.Empty)
	require.NoError(t, err)
	require.Equal(t, 1, listed.Count)
	assert.Equal(t, kept, listed.Objects[0].URL)

	orphans, err = svc.Orphans(ctx, true)
	require.NoError(t, err)
	assert.Zero(t, orphans.Count)
	assert.False(t, orphans.Deleted)
}

func TestStorageOrphansKeepsContentImages(t *testing.T) {
	ctx := context.Background()
	stack := testsupport.NewStack(t)

	hero, err := stack.Storage.UploadFileBytes(ctx, constant.StorageDirGallery, "hero.jpg", "image/jpeg", []byte("hero"))
	require.NoError(t, err)

	repo := contentRepository.New(stack.Datastore, stack.Otel)
	require.NoError(t, repo.Insert(ctx, contentModel.ContentSection{
		ID:       "hero",
		Name:     "hero",
		ImageURL: hero,
		Metadata: model.NewMetadata(timezone.Now()),
	}))

	content := contentService.New(repo, stack.Config, stack.Cache, stack.Otel)
	svc := service.New(stack.Storage, stack.Otel, staticSource{}, content)

	orphans, err := svc.Orphans(ctx, true)
	require.NoError(t, err)
	assert.Zero(t, orphans.Count)

	listed, err := svc.List(ctx, constant.StorageDirGallery)
	require.NoError(t, err)
	require.Equal(t, 1, listed.Count)
	assert.Equal(t, hero, listed.Objects[0].URL)
}

func TestStorageOrphansSourceFailure(t *testing.T) {
	stack := testsupport.NewStack(t)
	svc := service.New(stack.Storage, stack.Otel, brokenSource{})

	_, err := svc.Orphans(context.Background(), true)
	assert.ErrorContains(t, err, "backend down")
}

func TestStorageListAndDelete(t *testing.T) {
	ctx := context.Background()
	stack := testsupport.NewStack(t)
	svc := service.New(stack.Storage, stack.Otel)

	_, err := svc.List(ctx, "secrets")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	_, err = stack.Storage.UploadFileBytes(ctx, constant.StorageDirAbout, "me.png", "image/png", []byte("me"))
	require.NoError(t, err)

	about, err := svc.List(ctx, constant.StorageDirAbout)
	require.NoError(t, err)
	require.Equal(t, 1, about.Count)
	assert.Equal(t, "image/png", about.Objects[0].ContentType)

	usage, err := svc.Usage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, usage.Objects)
	assert.Equal(t, int64(2), usage.Directories[constant.StorageDirAbout].Bytes)

	res, err := svc.Delete(ctx, dto.DeleteObjectsRequest{Objects: []dto.ObjectRef{{Directory: constant.StorageDirAbout, Name: about.Objects[0].Name}}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Deleted)

	about, err = svc.List(ctx, constant.StorageDirAbout)
	require.NoError(t, err)
	assert.Zero(t, about.Count)
}
