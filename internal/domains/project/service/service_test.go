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
	projectMocks "folio/internal/domains/project/mocks"
	"folio/internal/domains/project/model"
	"folio/internal/domains/project/model/dto"
	"folio/internal/domains/project/repository"
	"folio/internal/domains/project/service"
	"folio/internal/testsupport"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"
)

func jpeg(name string) gDto.FileUpload {
	return gDto.FileUpload{Name: name, ContentType: "image/jpeg", Content: []byte("jpeg:" + name)}
}

func newMemoryService(t *testing.T) (service.Project, *testsupport.Stack) {
	stack := testsupport.NewStack(t)

	svc := service.New(
		repository.New(stack.Datastore, stack.Otel),
		repository.NewImage(stack.Datastore, stack.Otel),
		stack.Config, stack.Cache, stack.Otel, stack.Storage,
	)

	return svc, stack
}

func imageIDs(images []dto.ProjectImageResponse) []string {
	ids := make([]string, len(images))
	for i, image := range images {
		ids[i] = image.ID
	}

	return ids
}

func TestProjectService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc, stack := newMemoryService(t)

	cover := jpeg("cover.jpg")

	first, err := svc.Create(ctx, dto.CreateProjectRequest{Title: "Lighthouse", Cover: &cover})
	require.NoError(t, err)
	assert.Equal(t, 0, first.SortOrder)
	assert.NotEmpty(t, first.CoverImage)

	second, err := svc.Create(ctx, dto.CreateProjectRequest{Title: "Dunes", CoverImage: "https://images.example.com/dunes.jpg"})
	require.NoError(t, err)
	assert.Equal(t, 1, second.SortOrder)

	require.NoError(t, svc.Move(ctx, gDto.MoveRequest{Direction: constant.MoveDown}, first.ID))

	projects, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, []string{second.ID, first.ID}, []string{projects[0].ID, projects[1].ID})

	added, err := svc.AddImages(ctx, first.ID, dto.AddProjectImagesRequest{
		Images: []gDto.FileUpload{jpeg("a.jpg"), jpeg("b.jpg"), jpeg("c.jpg")},
	})
	require.NoError(t, err)
	require.Len(t, added, 3)

	require.NoError(t, svc.MoveImage(ctx, gDto.MoveRequest{Direction: constant.MoveUp}, first.ID, added[2].ID))

	images, err := svc.GetImages(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{added[0].ID, added[2].ID, added[1].ID}, imageIDs(images))

	require.NoError(t, svc.DeleteImage(ctx, first.ID, added[0].ID))

	err = svc.DeleteImage(ctx, second.ID, added[1].ID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	objects, err := stack.Storage.List(ctx, constant.StorageDirProjects)
	require.NoError(t, err)
	assert.Len(t, objects, 3)

	require.NoError(t, svc.Delete(ctx, first.ID))

	objects, err = stack.Storage.List(ctx, constant.StorageDirProjects)
	require.NoError(t, err)
	assert.Empty(t, objects)

	images, err = svc.GetImages(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, images)

	_, err = svc.Get(ctx, first.ID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestProjectService_UpdateReplacesCover(t *testing.T) {
	ctx := context.Background()
	svc, stack := newMemoryService(t)

	cover := jpeg("old.jpg")

	project, err := svc.Create(ctx, dto.CreateProjectRequest{Title: "Lighthouse", Cover: &cover})
	require.NoError(t, err)

	replacement := jpeg("new.jpg")
	title := "Lighthouse at dusk"

	require.NoError(t, svc.Update(ctx, dto.UpdateProjectRequest{Title: &title, Cover: &replacement}, project.ID))

	updated, err := svc.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.NotEqual(t, project.CoverImage, updated.CoverImage)

	objects, err := stack.Storage.List(ctx, constant.StorageDirProjects)
	require.NoError(t, err)
	require.Len(t, objects, 1)
}

func TestProjectService_AddImagesRollsBack(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	mockRepo := projectMocks.NewMockProject(ctrl)
	mockImageRepo := projectMocks.NewMockProjectImage(ctrl)
	mockStorage := storageMocks.NewMockStorage(ctrl)

	svc := service.New(mockRepo, mockImageRepo, testsupport.Config(), testsupport.MissingCache(ctrl), mocks.NewOtel(), mockStorage)

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.FeaturedProject{ID: "prj"}, nil)
	mockImageRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.FeaturedProjectImage{{ID: "existing", SortOrder: 4}}, nil)

	gomock.InOrder(
		mockStorage.EXPECT().UploadFile(gomock.Any(), constant.StorageDirProjects, jpeg("a.jpg")).Return("https://cdn.example.com/projects/a.jpg", nil),
		mockImageRepo.EXPECT().
			InsertBulk(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, images []model.FeaturedProjectImage) error {
				require.Len(t, images, 1)
				assert.Equal(t, 5, images[0].SortOrder)

				return errors.New("database error")
			}),
		mockStorage.EXPECT().GetObjectNameFromURL("https://cdn.example.com/projects/a.jpg").Return(constant.StorageDirProjects, "a.jpg"),
		mockStorage.EXPECT().DeleteFile(gomock.Any(), constant.StorageDirProjects, "a.jpg").Return(nil),
	)

	_, err := svc.AddImages(ctx, "prj", dto.AddProjectImagesRequest{Images: []gDto.FileUpload{jpeg("a.jpg")}})
	assert.ErrorContains(t, err, "database error")
}

func TestProjectService_AddImagesRequiresImages(t *testing.T) {
	svc, _ := newMemoryService(t)

	_, err := svc.AddImages(context.Background(), "prj", dto.AddProjectImagesRequest{})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
