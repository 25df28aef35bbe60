package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"folio/infras/datastore"
	"folio/infras/otel"
	"folio/internal/domains/review/model"
	gRepo "folio/shared/repository"
)

// Review holds visitor reviews, published or awaiting moderation.
type Review interface {
	gRepo.Reader[model.Review]
	gRepo.Writer[model.Review]
}

func New(ds *datastore.Datastore, ot otel.Otel) Review {
	return gRepo.New[model.Review](model.EntityName, model.TableName, model.FieldID, ds, ot)
}
