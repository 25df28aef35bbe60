package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"folio/infras/datastore"
	"folio/infras/otel"
	"folio/internal/domains/invite/model"
	gRepo "folio/shared/repository"
)

// Invite holds admin invite tokens; token is unique.
type Invite interface {
	gRepo.Reader[model.InviteToken]
	gRepo.Writer[model.InviteToken]
}

func New(ds *datastore.Datastore, ot otel.Otel) Invite {
	return gRepo.New[model.InviteToken](model.EntityName, model.TableName, model.FieldID, ds, ot)
}
