package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"folio/infras/datastore"
	"folio/infras/otel"
	"folio/internal/domains/content/model"
	gRepo "folio/shared/repository"
)

// Content holds named copy blocks; name is unique.
type Content interface {
	gRepo.Reader[model.ContentSection]
	gRepo.Writer[model.ContentSection]
}

func New(ds *datastore.Datastore, ot otel.Otel) Content {
	return gRepo.New[model.ContentSection](model.EntityName, model.TableName, model.FieldID, ds, ot)
}
