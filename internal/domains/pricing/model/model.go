package model

import (
	"folio/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "pricing_cards"
	EntityName = "pricing_card"

	FieldID         = "id"
	FieldTitle      = "title"
	FieldPrice      = "price"
	FieldIsFeatured = "is_featured"
	FieldSortOrder  = "sort_order"
)

type PricingCard struct {
	ID          string         `db:"id"          json:"id"`
	Title       string         `db:"title"       json:"title"`
	Price       float64        `db:"price"       json:"price"`
	Currency    string         `db:"currency"    json:"currency"`
	Description string         `db:"description" json:"description"`
	Features    pq.StringArray `db:"features"    json:"features"`
	IsFeatured  bool           `db:"is_featured" json:"is_featured"`
	SortOrder   int            `db:"sort_order"  json:"sort_order"`
	model.Metadata
}
