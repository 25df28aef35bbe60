package dto

import (
	"folio/internal/domains/about/model"
	gDto "folio/shared/dto"
	gModel "folio/shared/model"
	"folio/shared/timezone"

	"github.com/google/uuid"
)

type CreateAboutImageRequest struct {
	AltText string           `json:"alt_text" validate:"max=300"`
	URL     string           `json:"url"      validate:"omitempty,url"`
	File    *gDto.FileUpload `json:"-"        swaggerignore:"true" validate:"omitempty,mimetypes=image/jpeg image/jpg image/png image/webp image/gif,maxfilesize=10"`
}

func (c *CreateAboutImageRequest) ToModel(url string, sortOrder int) model.AboutImage {
	now := timezone.Now()

	return model.AboutImage{
		ID:        uuid.NewString(),
		URL:       url,
		AltText:   c.AltText,
		SortOrder: sortOrder,
		Metadata:  gModel.NewMetadata(now),
	}
}

type UpdateAboutImageRequest struct {
	AltText *string `db:"alt_text" json:"alt_text" validate:"omitempty,max=300"`
}

type AboutImageResponse struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	AltText   string `json:"alt_text"`
	SortOrder int    `json:"sort_order"`
	gDto.Metadata
}

func (r *AboutImageResponse) FromModel(model model.AboutImage) {
	r.ID = model.ID
	r.URL = model.URL
	r.AltText = model.AltText
	r.SortOrder = model.SortOrder
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.AboutImage) []AboutImageResponse {
	res := make([]AboutImageResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}
