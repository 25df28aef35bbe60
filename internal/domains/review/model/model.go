package model

import "folio/shared/model"

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID        = "id"
	FieldName      = "name"
	FieldEmail     = "email"
	FieldRating    = "rating"
	FieldText      = "text"
	FieldPublished = "published"
)

type Review struct {
	ID        string `db:"id"        json:"id"`
	Name      string `db:"name"      json:"name"`
	Email     string `db:"email"     json:"email"`
	Rating    int    `db:"rating"    json:"rating"`
	Text      string `db:"text"      json:"text"`
	Published bool   `db:"published" json:"published"`
	model.Metadata
}
