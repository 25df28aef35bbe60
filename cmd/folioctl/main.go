package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"folio/config"
	"folio/di"
	"folio/shared/logger"

	"github.com/spf13/cobra"
)

var errMemoryDatastore = errors.New("the memory kv driver does not outlive folioctl; set DATASTORE_KV_DRIVER to sqlite or redis")

var (
	tooling *di.Tooling
	cleanup func()
	verbose bool
)

// rootCmd is the studio's admin command line. It works against the same datastore the server
// is configured for.
var rootCmd = &cobra.Command{
	Use:           "folioctl",
	Short:         "Administer a folio site from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Get()

		if !cfg.UsesPostgres() && cfg.Datastore.KV.Driver == config.KVDriverMemory {
			return errMemoryDatastore
		}

		logger.InitLogger(cfg)

		if !verbose {
			cfg.Server.LogLevel = "warn"
		}

		logger.SetLogLevel(cfg)

		var err error

		tooling, cleanup, err = di.InitializeTooling()
		if err != nil {
			return fmt.Errorf("initializing: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		if cleanup != nil {
			cleanup()
		}
	},
}

func printJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(value)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at the configured level instead of warnings only")

	rootCmd.AddCommand(inviteCmd, seedCmd, storageCmd, contactCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
