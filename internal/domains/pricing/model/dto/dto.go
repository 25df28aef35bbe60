package dto

import (
	"folio/internal/domains/pricing/model"
	gDto "folio/shared/dto"
	gModel "folio/shared/model"
	"folio/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const DefaultCurrency = "USD"

type CreatePricingCardRequest struct {
	Title       string   `json:"title"       validate:"required,min=1,max=100"`
	Price       float64  `json:"price"       validate:"gte=0"`
	Currency    string   `json:"currency"    validate:"omitempty,len=3,uppercase"`
	Description string   `json:"description" validate:"max=1000"`
	Features    []string `json:"features"    validate:"max=30,dive,min=1,max=200"`
	IsFeatured  bool     `json:"is_featured"`
}

func (c *CreatePricingCardRequest) ToModel(sortOrder int) model.PricingCard {
	now := timezone.Now()

	currency := c.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	features := pq.StringArray(c.Features)
	if features == nil {
		features = pq.StringArray{}
	}

	return model.PricingCard{
		ID:          uuid.NewString(),
		Title:       c.Title,
		Price:       c.Price,
		Currency:    currency,
		Description: c.Description,
		Features:    features,
		IsFeatured:  c.IsFeatured,
		SortOrder:   sortOrder,
		Metadata:    gModel.NewMetadata(now),
	}
}

type UpdatePricingCardRequest struct {
	Title       *string         `db:"title"       json:"title"       validate:"omitempty,min=1,max=100"`
	Price       *float64        `db:"price"       json:"price"       validate:"omitempty,gte=0"`
	Currency    *string         `db:"currency"    json:"currency"    validate:"omitempty,len=3,uppercase"`
	Description *string         `db:"description" json:"description" validate:"omitempty,max=1000"`
	Features    *pq.StringArray `db:"features"    json:"features"    validate:"omitempty,max=30,dive,min=1,max=200" swaggertype:"array,string"`
	IsFeatured  *bool           `db:"is_featured" json:"is_featured"`
}

type PricingCardResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	IsFeatured  bool     `json:"is_featured"`
	SortOrder   int      `json:"sort_order"`
	gDto.Metadata
}

func (r *PricingCardResponse) FromModel(model model.PricingCard) {
	r.ID = model.ID
	r.Title = model.Title
	r.Price = model.Price
	r.Currency = model.Currency
	r.Description = model.Description
	r.Features = append([]string{}, model.Features...)
	r.IsFeatured = model.IsFeatured
	r.SortOrder = model.SortOrder
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.PricingCard) []PricingCardResponse {
	res := make([]PricingCardResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}
