package model

import (
	"time"

	"folio/shared/model"
)

const (
	TableName  = "events"
	EntityName = "event"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDate        = "date"
	FieldCoverImage  = "cover_image"
	FieldImageCount  = "image_count"
)

const (
	ImageTableName  = "event_images"
	ImageEntityName = "event_image"

	FieldImageID      = "id"
	FieldImageEventID = "event_id"
	FieldImageTitle   = "title"
	FieldImageURL     = "url"
)

type Event struct {
	ID          string    `db:"id"          json:"id"`
	Title       string    `db:"title"       json:"title"`
	Description string    `db:"description" json:"description"`
	Date        time.Time `db:"date"        json:"date"`
	CoverImage  string    `db:"cover_image" json:"cover_image"`
	ImageCount  int       `db:"image_count" json:"image_count"`
	model.Metadata
}

type EventImage struct {
	ID      string `db:"id"       json:"id"`
	EventID string `db:"event_id" json:"event_id"`
	Title   string `db:"title"    json:"title"`
	URL     string `db:"url"      json:"url"`
	model.Metadata
}
