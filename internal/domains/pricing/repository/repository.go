package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"folio/infras/datastore"
	"folio/infras/otel"
	"folio/internal/domains/pricing/model"
	gRepo "folio/shared/repository"
)

// Pricing holds the pricing cards, in sort_order.
type Pricing interface {
	gRepo.Reader[model.PricingCard]
	gRepo.Writer[model.PricingCard]
}

func New(ds *datastore.Datastore, ot otel.Otel) Pricing {
	return gRepo.New[model.PricingCard](model.EntityName, model.TableName, model.FieldID, ds, ot)
}
