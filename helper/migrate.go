package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"folio/config"
	"folio/infras/postgres"
	"folio/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStepUp = "step-up"
	MigrateDrop   = "drop"
)

func connectionString(cfg *config.Config) string {
	extra := url.Values{}
	if cfg.DB.Postgres.MigrationTable != "" {
		extra.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)
	}

	return postgres.DSN(cfg, cfg.DB.Postgres.Write, extra)
}

func getMigrator(config *config.Config) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.Postgres, "postgres")
	if err != nil {
		return nil, fmt.Errorf("reading embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, connectionString(config))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Runner applies action against the write database using the embedded migrations.
func Runner(config *config.Config, action string) (err error) {
	mig, err := getMigrator(config)
	if err != nil {
		return err
	}

	defer func() {
		sourceErr, dbErr := mig.Close()
		if err == nil {
			err = errors.Join(sourceErr, dbErr)
		}
	}()

	switch action {
	case MigrateUp:
		err = mig.Up()
	case MigrateStepUp:
		err = mig.Steps(1)
	case MigrateDown:
		err = mig.Steps(-1)
	case MigrateDrop:
		err = mig.Down()
	default:
		return fmt.Errorf("unknown migration action %q", action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running %s migrations: %w", action, err)
	}

	version, dirty, verr := mig.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("reading migration version: %w", verr)
	}

	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("Database migrations applied")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, MigrateUp)
}

func StepUp(config *config.Config) error {
	return Runner(config, MigrateStepUp)
}

func Down(config *config.Config) error {
	return Runner(config, MigrateDown)
}

func Drop(config *config.Config) error {
	return Runner(config, MigrateDrop)
}
