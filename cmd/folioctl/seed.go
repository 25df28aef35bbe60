package main

import (
	"folio/internal/seed"

	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load counters, pricing, content and gallery entries from a YAML file",
	Example: `  folioctl seed --file seed.yaml

  # seed.yaml
  counters:
    - {label: Weddings shot, value: 120, suffix: "+"}
  content:
    hero: {title: "Light, kept.", body: "Documentary photography."}`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		file, err := seed.Load(seedFile)
		if err != nil {
			return err
		}

		summary, err := tooling.Seeder.Apply(cmd.Context(), file)
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), summary)
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seed.yaml", "Seed file to load")
	_ = seedCmd.MarkFlagFilename("file", "yaml", "yml")
}
