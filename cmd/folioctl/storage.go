package main

import (
	"github.com/spf13/cobra"
)

var deleteOrphans bool

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Inspect uploaded objects",
}

var storageUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Print object counts and bytes per directory",
	RunE: func(cmd *cobra.Command, _ []string) error {
		usage, err := tooling.Storage.Usage(cmd.Context())
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), usage)
	},
}

var storageOrphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "List objects no gallery image, event, project or about image refers to",
	RunE: func(cmd *cobra.Command, _ []string) error {
		res, err := tooling.Storage.Orphans(cmd.Context(), deleteOrphans)
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), res)
	},
}

func init() {
	storageOrphansCmd.Flags().BoolVar(&deleteOrphans, "delete", false, "Delete the orphans that were found")

	storageCmd.AddCommand(storageUsageCmd, storageOrphansCmd)
}
