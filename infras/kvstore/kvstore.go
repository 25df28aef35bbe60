// Package kvstore is a small key-value abstraction used as the demo datastore, the object
// store for the kv storage driver and the session store.
package kvstore

//go:generate go run go.uber.org/mock/mockgen -source=./kvstore.go -destination=./mocks/kvstore_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"folio/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotFound = errors.New("kvstore: key not found")
	ErrCorrupt  = errors.New("kvstore: corrupt value")
)

type Store interface {
	// Get returns ErrNotFound when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key. A zero ttl never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// Take removes key and returns the value it held. Of concurrent callers at most one gets
	// the value; the others see ErrNotFound.
	Take(ctx context.Context, key string) ([]byte, error)
	// Keys lists live keys starting with prefix in lexical order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Namespace builds the keys every component stores under.
type Namespace string

func (n Namespace) Table(name string) string {
	return fmt.Sprintf("%s:table:%s", n, name)
}

// ObjectPrefix is the prefix of every object in directory, or of every object at all when
// directory is empty.
func (n Namespace) ObjectPrefix(directory string) string {
	if directory == "" {
		return fmt.Sprintf("%s:object:", n)
	}

	return fmt.Sprintf("%s:object:%s/", n, directory)
}

func (n Namespace) Object(directory, name string) string {
	return n.ObjectPrefix(directory) + name
}

func (n Namespace) Session(id string) string {
	return fmt.Sprintf("%s:session:%s", n, id)
}

// New opens the store selected by DATASTORE_KV_DRIVER.
func New(cfg *config.Config, client *goRedis.Client) (Store, error) {
	switch cfg.Datastore.KV.Driver {
	case config.KVDriverMemory, "":
		log.Info().Msg("Using in-memory kv store, data is lost on restart")

		return NewMemory(), nil
	case config.KVDriverSQLite:
		return NewSQLite(cfg.Datastore.KV.SQLitePath)
	case config.KVDriverRedis:
		if client == nil {
			return nil, errors.New("kvstore: redis driver selected but redis is not configured")
		}

		return NewRedis(client), nil
	default:
		return nil, fmt.Errorf("kvstore: unknown driver %q", cfg.Datastore.KV.Driver)
	}
}
