// Package postgres opens the read and write sqlx pools used in postgres mode.
package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"folio/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxLifetime    = 30 * time.Minute
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// New connects both pools, retrying each up to MAX_RETRY times.
func New(cfg *config.Config) (*Connection, error) {
	write, err := connect(cfg, "write", cfg.DB.Postgres.Write)
	if err != nil {
		return nil, err
	}

	read, err := connect(cfg, "read", cfg.DB.Postgres.Read)
	if err != nil {
		_ = write.Close()

		return nil, err
	}

	return &Connection{Read: read, Write: write}, nil
}

// DSN builds the lib/pq URL for endpoint, applying DB_POSTGRES_PREFIX to the database name.
func DSN(cfg *config.Config, endpoint config.PostgresEndpoint, extra url.Values) string {
	query := url.Values{}
	for key, values := range extra {
		query[key] = values
	}

	if endpoint.SSLMode != "" {
		query.Set("sslmode", endpoint.SSLMode)
	}

	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     cfg.DB.Postgres.Prefix + endpoint.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(cfg *config.Config, name string, endpoint config.PostgresEndpoint) (*sqlx.DB, error) {
	attempts := max(cfg.DB.Postgres.MaxRetry, 1)
	wait := time.Duration(cfg.DB.Postgres.RetryWaitTime) * time.Second
	dsn := DSN(cfg, endpoint, nil)

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := sqlx.ConnectContext(ctx, "postgres", dsn)

		cancel()

		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			log.Info().Str("pool", name).Str("host", endpoint.Host).Str("db", endpoint.Name).Msg("Connected to postgres")

			return db, nil
		}

		lastErr = err

		log.Warn().Err(err).Str("pool", name).Int("attempt", attempt).Int("of", attempts).Msg("postgres not reachable")

		if attempt < attempts {
			time.Sleep(wait)
		}
	}

	return nil, fmt.Errorf("connecting %s pool: %w", name, lastErr)
}
