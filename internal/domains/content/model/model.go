package model

import "folio/shared/model"

const (
	TableName  = "content_sections"
	EntityName = "content_section"

	FieldID       = "id"
	FieldName     = "name"
	FieldTitle    = "title"
	FieldBody     = "body"
	FieldImageURL = "image_url"
)

// ContentSection is an editable block of site copy addressed by its unique name, e.g. "hero".
type ContentSection struct {
	ID       string `db:"id"        json:"id"`
	Name     string `db:"name"      json:"name"`
	Title    string `db:"title"     json:"title"`
	Body     string `db:"body"      json:"body"`
	ImageURL string `db:"image_url" json:"image_url"`
	model.Metadata
}
