package dto

import (
	"folio/internal/domains/counter/model"
	gDto "folio/shared/dto"
	gModel "folio/shared/model"
	"folio/shared/timezone"

	"github.com/google/uuid"
)

type CreateCounterRequest struct {
	Label  string `json:"label"  validate:"required,min=1,max=100"`
	Value  int    `json:"value"  validate:"gte=0"`
	Suffix string `json:"suffix" validate:"max=10"`
}

func (c *CreateCounterRequest) ToModel(sortOrder int) model.Counter {
	now := timezone.Now()

	return model.Counter{
		ID:        uuid.NewString(),
		Label:     c.Label,
		Value:     c.Value,
		Suffix:    c.Suffix,
		SortOrder: sortOrder,
		Metadata:  gModel.NewMetadata(now),
	}
}

type UpdateCounterRequest struct {
	Label     *string `db:"label"      json:"label"      validate:"omitempty,min=1,max=100"`
	Value     *int    `db:"value"      json:"value"      validate:"omitempty,gte=0"`
	Suffix    *string `db:"suffix"     json:"suffix"     validate:"omitempty,max=10"`
	SortOrder *int    `db:"sort_order" json:"sort_order" validate:"omitempty,gte=0"`
}

type CounterResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Value     int    `json:"value"`
	Suffix    string `json:"suffix"`
	SortOrder int    `json:"sort_order"`
	gDto.Metadata
}

func (r *CounterResponse) FromModel(model model.Counter) {
	r.ID = model.ID
	r.Label = model.Label
	r.Value = model.Value
	r.Suffix = model.Suffix
	r.SortOrder = model.SortOrder
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Counter) []CounterResponse {
	res := make([]CounterResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}
