package dto

import (
	"folio/internal/domains/gallery/model"
	"folio/shared"
	gDto "folio/shared/dto"
	gModel "folio/shared/model"
	"folio/shared/timezone"

	"github.com/google/uuid"
)

// CreateGalleryImageRequest adds an image either from an uploaded file or from an existing url.
type CreateGalleryImageRequest struct {
	Title string           `json:"title" validate:"required,min=1,max=200"`
	URL   string           `json:"url"   validate:"omitempty,url"`
	File  *gDto.FileUpload `json:"-"     swaggerignore:"true"        validate:"omitempty,mimetypes=image/jpeg image/jpg image/png image/webp image/gif,maxfilesize=10"`
}

func (c *CreateGalleryImageRequest) ToModel(url string) model.GalleryImage {
	now := timezone.Now()

	return model.GalleryImage{
		ID:       uuid.NewString(),
		Title:    c.Title,
		URL:      url,
		Metadata: gModel.NewMetadata(now),
	}
}

type UpdateGalleryImageRequest struct {
	Title *string `db:"title" json:"title" validate:"omitempty,min=1,max=200"`
}

type GalleryImageResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	gDto.Metadata
}

func (r *GalleryImageResponse) FromModel(model model.GalleryImage) {
	r.ID = model.ID
	r.Title = model.Title
	r.URL = model.URL
	r.Metadata.FromModel(model.Metadata)
}

type GetGalleryImagesResponse struct {
	Images    []GalleryImageResponse `json:"images"`
	TotalPage int                    `json:"total_page"`
	TotalData int                    `json:"total_data"`
}

func (r *GetGalleryImagesResponse) FromModels(models []model.GalleryImage, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Images = make([]GalleryImageResponse, len(models))
	for i, m := range models {
		r.Images[i].FromModel(m)
	}
}
