package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"folio/infras/datastore"
	"folio/infras/otel"
	"folio/internal/domains/project/model"
	gRepo "folio/shared/repository"
)

// Project holds the featured projects, in sort_order.
type Project interface {
	gRepo.Reader[model.FeaturedProject]
	gRepo.Writer[model.FeaturedProject]
}

// ProjectImage holds the photos of a project, in sort_order within the project. Images are inserted in bulk on create.
type ProjectImage interface {
	gRepo.Store[model.FeaturedProjectImage]
}

func New(ds *datastore.Datastore, ot otel.Otel) Project {
	return gRepo.New[model.FeaturedProject](model.EntityName, model.TableName, model.FieldID, ds, ot)
}

func NewImage(ds *datastore.Datastore, ot otel.Otel) ProjectImage {
	return gRepo.New[model.FeaturedProjectImage](model.ImageEntityName, model.ImageTableName, model.FieldImageID, ds, ot)
}
