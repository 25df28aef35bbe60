package dto

import (
	"folio/internal/domains/project/model"
	gDto "folio/shared/dto"
	gModel "folio/shared/model"
	"folio/shared/timezone"

	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	Title       string           `json:"title"       validate:"required,min=1,max=200"`
	Description string           `json:"description" validate:"max=5000"`
	Category    string           `json:"category"    validate:"max=100"`
	CoverImage  string           `json:"cover_image" validate:"omitempty,url"`
	Cover       *gDto.FileUpload `json:"-"           swaggerignore:"true" validate:"omitempty,mimetypes=image/jpeg image/jpg image/png image/webp image/gif,maxfilesize=10"`
}

func (c *CreateProjectRequest) ToModel(coverImage string, sortOrder int) model.FeaturedProject {
	now := timezone.Now()

	return model.FeaturedProject{
		ID:          uuid.NewString(),
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		CoverImage:  coverImage,
		SortOrder:   sortOrder,
		Metadata:    gModel.NewMetadata(now),
	}
}

type UpdateProjectRequest struct {
	Title       *string          `db:"title"       json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string          `db:"description" json:"description" validate:"omitempty,max=5000"`
	Category    *string          `db:"category"    json:"category"    validate:"omitempty,max=100"`
	CoverImage  *string          `db:"cover_image" json:"cover_image" validate:"omitempty,url"`
	Cover       *gDto.FileUpload `json:"-"         swaggerignore:"true" validate:"omitempty,mimetypes=image/jpeg image/jpg image/png image/webp image/gif,maxfilesize=10"`
}

type AddProjectImagesRequest struct {
	Caption string            `json:"caption" validate:"max=300"`
	URLs    []string          `json:"urls"    validate:"omitempty,dive,url"`
	Images  []gDto.FileUpload `json:"-"       swaggerignore:"true" validate:"omitempty,max=100,dive,mimetypes=image/jpeg image/jpg image/png image/webp image/gif,maxfilesize=10"`
}

// ToModels builds rows appended after sortOrder, in the order urls are given.
func (a *AddProjectImagesRequest) ToModels(projectID string, urls []string, sortOrder int) []model.FeaturedProjectImage {
	now := timezone.Now()

	images := make([]model.FeaturedProjectImage, len(urls))
	for i, url := range urls {
		images[i] = model.FeaturedProjectImage{
			ID:        uuid.NewString(),
			ProjectID: projectID,
			URL:       url,
			Caption:   a.Caption,
			SortOrder: sortOrder + i,
			Metadata:  gModel.NewMetadata(now),
		}
	}

	return images
}

type ProjectResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	CoverImage  string `json:"cover_image"`
	SortOrder   int    `json:"sort_order"`
	gDto.Metadata
}

func (r *ProjectResponse) FromModel(model model.FeaturedProject) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.Category = model.Category
	r.CoverImage = model.CoverImage
	r.SortOrder = model.SortOrder
	r.Metadata.FromModel(model.Metadata)
}

func ProjectsFromModels(models []model.FeaturedProject) []ProjectResponse {
	res := make([]ProjectResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}

type ProjectImageResponse struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	URL       string `json:"url"`
	Caption   string `json:"caption"`
	SortOrder int    `json:"sort_order"`
	gDto.Metadata
}

func (r *ProjectImageResponse) FromModel(model model.FeaturedProjectImage) {
	r.ID = model.ID
	r.ProjectID = model.ProjectID
	r.URL = model.URL
	r.Caption = model.Caption
	r.SortOrder = model.SortOrder
	r.Metadata.FromModel(model.Metadata)
}

func ProjectImagesFromModels(models []model.FeaturedProjectImage) []ProjectImageResponse {
	res := make([]ProjectImageResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}
