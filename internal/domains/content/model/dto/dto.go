package dto

import (
	"folio/internal/domains/content/model"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	gModel "folio/shared/model"
	"folio/shared/timezone"

	"github.com/google/uuid"
)

type UpsertContentRequest struct {
	Title    string `json:"title"     validate:"max=200"`
	Body     string `json:"body"      validate:"max=20000"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

func (u *UpsertContentRequest) ToModel(name string) model.ContentSection {
	now := timezone.Now()

	return model.ContentSection{
		ID:       uuid.NewString(),
		Name:     name,
		Title:    u.Title,
		Body:     u.Body,
		ImageURL: u.ImageURL,
		Metadata: gModel.NewMetadata(now),
	}
}

// Fields returns the columns an upsert overwrites on an existing section.
func (u *UpsertContentRequest) Fields() map[string]any {
	return map[string]any{
		model.FieldTitle:        u.Title,
		model.FieldBody:         u.Body,
		model.FieldImageURL:     u.ImageURL,
		constant.FieldUpdatedAt: timezone.Now(),
	}
}

type ContentResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
	gDto.Metadata
}

func (r *ContentResponse) FromModel(model model.ContentSection) {
	r.ID = model.ID
	r.Name = model.Name
	r.Title = model.Title
	r.Body = model.Body
	r.ImageURL = model.ImageURL
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.ContentSection) []ContentResponse {
	res := make([]ContentResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}
