package model

import "folio/shared/model"

const (
	TableName  = "about_images"
	EntityName = "about_image"

	FieldID        = "id"
	FieldURL       = "url"
	FieldAltText   = "alt_text"
	FieldSortOrder = "sort_order"
)

type AboutImage struct {
	ID        string `db:"id"         json:"id"`
	URL       string `db:"url"        json:"url"`
	AltText   string `db:"alt_text"   json:"alt_text"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
	model.Metadata
}
