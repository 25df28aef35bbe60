package model

import "folio/shared/model"

const (
	TableName  = "gallery_images"
	EntityName = "gallery_image"

	FieldID    = "id"
	FieldTitle = "title"
	FieldURL   = "url"
)

type GalleryImage struct {
	ID    string `db:"id"    json:"id"`
	Title string `db:"title" json:"title"`
	URL   string `db:"url"   json:"url"`
	model.Metadata
}
