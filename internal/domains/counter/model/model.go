package model

import "folio/shared/model"

const (
	TableName  = "counters"
	EntityName = "counter"

	FieldID        = "id"
	FieldSortOrder = "sort_order"
)

// Counter is a headline figure on the homepage, such as "250+ weddings".
type Counter struct {
	ID        string `db:"id"         json:"id"`
	Label     string `db:"label"      json:"label"`
	Value     int    `db:"value"      json:"value"`
	Suffix    string `db:"suffix"     json:"suffix"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
	model.Metadata
}
