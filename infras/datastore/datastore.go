// Package datastore opens the persistence backends selected by configuration.
package datastore

import (
	"fmt"

	"folio/config"
	"folio/helper"
	"folio/infras/kvstore"
	"folio/infras/otel"
	"folio/infras/postgres"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Datastore holds the row backend and the kv store. The kv store is always present: sessions
// and kv objects live there even when rows live in Postgres.
type Datastore struct {
	Postgres *postgres.Connection
	KV       kvstore.Store
	Tables   *kvstore.Tables
}

func New(cfg *config.Config, client *goRedis.Client, ot otel.Otel) (*Datastore, func(), error) {
	store, err := kvstore.New(cfg, client)
	if err != nil {
		return nil, nil, fmt.Errorf("opening kv store: %w", err)
	}

	ds := &Datastore{
		KV:     store,
		Tables: kvstore.NewTables(store, kvstore.Namespace(cfg.Datastore.KV.Namespace), ot),
	}

	if cfg.UsesPostgres() {
		conn, err := postgres.New(cfg)
		if err != nil {
			_ = store.Close()

			return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
		}

		ds.Postgres = conn

		if cfg.DB.Postgres.AutoMigrate {
			if err := helper.Up(cfg); err != nil {
				ds.Close()

				return nil, nil, fmt.Errorf("migrating postgres: %w", err)
			}
		}
	}

	log.Info().
		Str("rows", cfg.Datastore.Driver).
		Str("kv", cfg.Datastore.KV.Driver).
		Msg("Datastore ready")

	return ds, ds.Close, nil
}

// NewKV builds a kv-only datastore around store; used by tests and tooling.
func NewKV(store kvstore.Store, ns kvstore.Namespace, ot otel.Otel) *Datastore {
	return &Datastore{
		KV:     store,
		Tables: kvstore.NewTables(store, ns, ot),
	}
}

func (d *Datastore) Namespace() kvstore.Namespace {
	return d.Tables.Namespace()
}

func (d *Datastore) Close() {
	if d.Postgres != nil {
		if err := d.Postgres.Read.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close postgres read connection")
		}

		if err := d.Postgres.Write.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close postgres write connection")
		}
	}

	if err := d.KV.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close kv store")
	}
}
