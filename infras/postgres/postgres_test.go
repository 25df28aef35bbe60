package postgres_test

import (
	"net/url"
	"testing"

	"folio/config"
	"folio/infras/postgres"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "staging_"

	endpoint := config.PostgresEndpoint{
		Host:     "db.internal",
		Port:     "5432",
		Username: "folio",
		Password: "p@ss/word",
		Name:     "folio",
		SSLMode:  "disable",
	}

	dsn := postgres.DSN(cfg, endpoint, url.Values{"x-migrations-table": {"schema_migrations"}})

	parsed, err := url.Parse(dsn)
	assert.NoError(t, err)
	assert.Equal(t, "db.internal:5432", parsed.Host)
	assert.Equal(t, "/staging_folio", parsed.Path)

	password, _ := parsed.User.Password()
	assert.Equal(t, "p@ss/word", password)
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
	assert.Equal(t, "schema_migrations", parsed.Query().Get("x-migrations-table"))
	assert.False(t, parsed.Query().Has("timezone"))
}
