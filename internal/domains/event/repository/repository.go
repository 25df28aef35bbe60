package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"folio/infras/datastore"
	"folio/infras/otel"
	"folio/internal/domains/event/model"
	gRepo "folio/shared/repository"
)

// Event holds dated shoots with a cover image.
type Event interface {
	gRepo.Reader[model.Event]
	gRepo.Writer[model.Event]
}

// EventImage holds the photos of an event; event_id points at the parent. Images are inserted in bulk on create.
type EventImage interface {
	gRepo.Store[model.EventImage]
}

func New(ds *datastore.Datastore, ot otel.Otel) Event {
	return gRepo.New[model.Event](model.EntityName, model.TableName, model.FieldID, ds, ot)
}

func NewImage(ds *datastore.Datastore, ot otel.Otel) EventImage {
	return gRepo.New[model.EventImage](model.ImageEntityName, model.ImageTableName, model.FieldImageID, ds, ot)
}
