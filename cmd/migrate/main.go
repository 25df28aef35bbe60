package main

import (
	"os"

	"folio/config"
	"folio/helper"
	"folio/shared/logger"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	cmd := &cobra.Command{
		Use:       "migrate [up|down|step-up|drop]",
		Short:     "Apply the Postgres schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{helper.MigrateUp, helper.MigrateDown, helper.MigrateStepUp, helper.MigrateDrop},
		RunE: func(_ *cobra.Command, args []string) error {
			cfg := config.Get()

			logger.InitLogger(cfg)
			logger.SetLogLevel(cfg)

			return helper.Runner(cfg, args[0])
		},
		SilenceUsage: true,
	}

	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(1)
	}
}
