package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"folio/infras/datastore"
	"folio/infras/otel"
	"folio/internal/domains/about/model"
	gRepo "folio/shared/repository"
)

// About holds the images shown on the about page, in sort_order.
type About interface {
	gRepo.Reader[model.AboutImage]
	gRepo.Writer[model.AboutImage]
}

func New(ds *datastore.Datastore, ot otel.Otel) About {
	return gRepo.New[model.AboutImage](model.EntityName, model.TableName, model.FieldID, ds, ot)
}
