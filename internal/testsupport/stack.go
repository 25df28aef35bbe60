// Package testsupport builds the in-memory application stack used by service tests.
package testsupport

import (
	"testing"

	"folio/config"
	"folio/infras/datastore"
	"folio/infras/kvstore"
	"folio/infras/otel"
	"folio/infras/otel/mocks"
	"folio/infras/storage"
	"folio/shared/cache"
	cacheMocks "folio/shared/cache/mocks"

	"go.uber.org/mock/gomock"
)

const Namespace = kvstore.Namespace("test")

type Stack struct {
	Config    *config.Config
	Otel      otel.Otel
	Datastore *datastore.Datastore
	Cache     cache.Cache
	Storage   storage.Storage
}

// NewStack wires memory kv rows and kv object storage behind a cache that always misses,
// so every read goes to the store.
func NewStack(t testing.TB) *Stack {
	t.Helper()

	ot := mocks.NewOtel()
	store := kvstore.NewMemory()
	ds := datastore.NewKV(store, Namespace, ot)

	t.Cleanup(ds.Close)

	return &Stack{
		Config:    Config(),
		Otel:      ot,
		Datastore: ds,
		Cache:     MissingCache(gomock.NewController(t)),
		Storage:   storage.NewKV(store, Namespace, 0, 0, ot),
	}
}

// Config returns the defaults envconfig would apply.
func Config() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "folio"
	cfg.App.Reviews.HomeLimit = 6
	cfg.App.Invites.TTLHours = 168
	cfg.App.AboutImages.PublicLimit = 3
	cfg.Cache.TTL = 300
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 60
	cfg.JWT.RefreshExpireMin = 10080

	return cfg
}

func MissingCache(ctrl *gomock.Controller) *cacheMocks.MockCache {
	mockCache := cacheMocks.NewMockCache(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return mockCache
}
