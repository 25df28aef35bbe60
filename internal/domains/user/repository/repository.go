package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"strings"

	"folio/infras/datastore"
	"folio/infras/otel"
	"folio/internal/domains/user/model"
	gDto "folio/shared/dto"
	gRepo "folio/shared/repository"
)

// User holds invited admin accounts. Emails are unique and stored lowercased.
type User interface {
	gRepo.Reader[model.User]
	gRepo.Writer[model.User]

	// GetByEmail matches case-insensitively and returns the zero User when nobody has the address.
	GetByEmail(ctx context.Context, email string) (model.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Store[model.User]
}

func byEmail(email string) gDto.FilterGroup {
	return gDto.And(gDto.Eq(model.FieldEmail, strings.ToLower(strings.TrimSpace(email))))
}

func (r *repositoryImpl) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.Get(ctx, byEmail(email))
}

func (r *repositoryImpl) EmailTaken(ctx context.Context, email string) (bool, error) {
	return r.Exist(ctx, byEmail(email))
}

func New(ds *datastore.Datastore, ot otel.Otel) User {
	return &repositoryImpl{
		Store: gRepo.New[model.User](model.EntityName, model.TableName, model.FieldID, ds, ot),
	}
}
