package model

import "folio/shared/model"

const (
	TableName  = "featured_projects"
	EntityName = "featured_project"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldCoverImage  = "cover_image"
	FieldSortOrder   = "sort_order"
)

const (
	ImageTableName  = "featured_project_images"
	ImageEntityName = "featured_project_image"

	FieldImageID        = "id"
	FieldImageProjectID = "project_id"
	FieldImageURL       = "url"
	FieldImageSortOrder = "sort_order"
)

type FeaturedProject struct {
	ID          string `db:"id"          json:"id"`
	Title       string `db:"title"       json:"title"`
	Description string `db:"description" json:"description"`
	Category    string `db:"category"    json:"category"`
	CoverImage  string `db:"cover_image" json:"cover_image"`
	SortOrder   int    `db:"sort_order"  json:"sort_order"`
	model.Metadata
}

type FeaturedProjectImage struct {
	ID        string `db:"id"         json:"id"`
	ProjectID string `db:"project_id" json:"project_id"`
	URL       string `db:"url"        json:"url"`
	Caption   string `db:"caption"    json:"caption"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
	model.Metadata
}
