package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"folio/infras/datastore"
	"folio/infras/otel"
	"folio/internal/domains/gallery/model"
	gRepo "folio/shared/repository"
)

// Gallery holds standalone portfolio images.
type Gallery interface {
	gRepo.Reader[model.GalleryImage]
	gRepo.Writer[model.GalleryImage]
}

func New(ds *datastore.Datastore, ot otel.Otel) Gallery {
	return gRepo.New[model.GalleryImage](model.EntityName, model.TableName, model.FieldID, ds, ot)
}
