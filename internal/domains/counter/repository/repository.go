package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"folio/infras/datastore"
	"folio/infras/otel"
	"folio/internal/domains/counter/model"
	gRepo "folio/shared/repository"
)

// Counter holds the homepage statistics.
type Counter interface {
	gRepo.Reader[model.Counter]
	gRepo.Writer[model.Counter]
}

func New(ds *datastore.Datastore, ot otel.Otel) Counter {
	return gRepo.New[model.Counter](model.EntityName, model.TableName, model.FieldID, ds, ot)
}
