package repository

//go:generate go run go.uber.org/mock/mockgen -source=./session.go -destination=../mocks/session_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"folio/infras/datastore"
	"folio/infras/kvstore"
	"folio/infras/otel"
	"folio/internal/domains/auth/model"
	"folio/shared/constant"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionStore interface {
	Save(ctx context.Context, session model.Session) error
	// Get returns ErrSessionNotFound once the session was deleted or has expired.
	Get(ctx context.Context, id string) (model.Session, error)
	Delete(ctx context.Context, id string) error
	// Take ends the session and returns it. Only one caller can take a given session.
	Take(ctx context.Context, id string) (model.Session, error)
}

type sessionStoreImpl struct {
	store kvstore.Store
	ns    kvstore.Namespace
	otel  otel.Otel
}

// NewSessionStore keeps sessions in the kv store whichever backend holds the rows.
func NewSessionStore(ds *datastore.Datastore, otel otel.Otel) SessionStore {
	return &sessionStoreImpl{
		store: ds.KV,
		ns:    ds.Namespace(),
		otel:  otel,
	}
}

func (s *sessionStoreImpl) Save(ctx context.Context, session model.Session) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.Save")
	defer scope.End()
	defer scope.TraceIfError(&err)

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s is already expired", session.ID)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err = s.store.Set(ctx, s.ns.Session(session.ID), payload, ttl); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	return nil
}

func (s *sessionStoreImpl) Get(ctx context.Context, id string) (model.Session, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.Get")
	defer scope.End()

	return s.read(ctx, scope, id, s.store.Get)
}

func (s *sessionStoreImpl) Take(ctx context.Context, id string) (model.Session, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.Take")
	defer scope.End()

	return s.read(ctx, scope, id, s.store.Take)
}

func (s *sessionStoreImpl) read(
	ctx context.Context,
	scope otel.Scope,
	id string,
	fetch func(ctx context.Context, key string) ([]byte, error),
) (session model.Session, err error) {
	if id == constant.Empty {
		return session, ErrSessionNotFound
	}

	payload, err := fetch(ctx, s.ns.Session(id))
	if errors.Is(err, kvstore.ErrNotFound) {
		return session, ErrSessionNotFound
	}

	if err != nil {
		scope.TraceError(err)

		return session, fmt.Errorf("reading session: %w", err)
	}

	if err = json.Unmarshal(payload, &session); err != nil {
		scope.TraceError(err)

		return session, fmt.Errorf("decoding session: %w", kvstore.ErrCorrupt)
	}

	return session, nil
}

func (s *sessionStoreImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = s.store.Delete(ctx, s.ns.Session(id)); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	return nil
}
