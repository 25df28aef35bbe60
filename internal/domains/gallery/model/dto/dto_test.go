package dto_test

import (
	"testing"
	"time"

	"folio/internal/domains/gallery/model"
	"folio/internal/domains/gallery/model/dto"
	gModel "folio/shared/model"

	"github.com/stretchr/testify/assert"
)

func TestCreateGalleryImageRequest_ToModel(t *testing.T) {
	req := dto.CreateGalleryImageRequest{Title: "Golden hour"}

	image := req.ToModel("https://cdn.example.com/gallery/a.jpg")

	assert.NotEmpty(t, image.ID)
	assert.Equal(t, "Golden hour", image.Title)
	assert.Equal(t, "https://cdn.example.com/gallery/a.jpg", image.URL)
	assert.False(t, image.CreatedAt.IsZero())
	assert.Equal(t, image.CreatedAt, image.UpdatedAt)
}

func TestGetGalleryImagesResponse_FromModels(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	images := []model.GalleryImage{
		{ID: "1", Title: "One", URL: "u1", Metadata: gModel.Metadata{CreatedAt: created, UpdatedAt: created}},
		{ID: "2", Title: "Two", URL: "u2", Metadata: gModel.Metadata{CreatedAt: created, UpdatedAt: created}},
	}

	res := dto.GetGalleryImagesResponse{}
	res.FromModels(images, 12, 5)

	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
	assert.Len(t, res.Images, 2)
	assert.Equal(t, "Two", res.Images[1].Title)
	assert.NotEmpty(t, res.Images[0].CreatedAt)
}
