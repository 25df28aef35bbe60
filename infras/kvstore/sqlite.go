package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" //nolint:revive
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	expires_at INTEGER NOT NULL DEFAULT 0
)`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type sqliteStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLite opens (and creates when missing) a single-file store.
func NewSQLite(path string) (Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("kvstore: open sqlite %s: %w", path, err)
	}

	// a single writer avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(sqliteSchema); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("kvstore: create sqlite schema: %w", err)
	}

	log.Info().Str("path", path).Msg("Opened sqlite kv store")

	return &sqliteStore{db: db, now: time.Now}, nil
}

func (s *sqliteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var row struct {
		Value     []byte `db:"value"`
		ExpiresAt int64  `db:"expires_at"`
	}

	err := s.db.GetContext(ctx, &row, `SELECT value, expires_at FROM kv WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("kvstore: get %s: %w", key, err)
	}

	if row.ExpiresAt > 0 && s.now().UnixNano() >= row.ExpiresAt {
		if _, err = s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to drop expired kv entry")
		}

		return nil, ErrNotFound
	}

	return row.Value, nil
}

func (s *sqliteStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = s.now().Add(ttl).UnixNano()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("kvstore: set %s: %w", key, err)
	}

	return nil
}

func (s *sqliteStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`DELETE FROM kv WHERE key IN (?)`, keys)
	if err != nil {
		return fmt.Errorf("kvstore: build delete: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("kvstore: delete: %w", err)
	}

	return nil
}

func (s *sqliteStore) Take(ctx context.Context, key string) ([]byte, error) {
	var row struct {
		Value     []byte `db:"value"`
		ExpiresAt int64  `db:"expires_at"`
	}

	err := s.db.GetContext(ctx, &row, `DELETE FROM kv WHERE key = ? RETURNING value, expires_at`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("kvstore: take %s: %w", key, err)
	}

	if row.ExpiresAt > 0 && s.now().UnixNano() >= row.ExpiresAt {
		return nil, ErrNotFound
	}

	return row.Value, nil
}

func (s *sqliteStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys := []string{}

	err := s.db.SelectContext(ctx, &keys,
		`SELECT key FROM kv WHERE key LIKE ? ESCAPE '\' AND (expires_at = 0 OR expires_at > ?) ORDER BY key`,
		likeEscaper.Replace(prefix)+"%", s.now().UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("kvstore: keys %s: %w", prefix, err)
	}

	return keys, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close() //nolint:wrapcheck
}
