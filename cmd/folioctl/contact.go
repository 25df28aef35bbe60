package main

import (
	"errors"
	"fmt"

	"folio/internal/domains/contact/model/dto"

	"github.com/spf13/cobra"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Read messages sent through the contact form",
}

var contactTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print contact messages as they arrive on the message bus",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if len(tooling.Config.External.Kafka.Brokers) == 0 {
			return errors.New("no kafka brokers configured (EXTERNAL_KAFKA_BROKERS)")
		}

		out := cmd.OutOrStdout()

		err := tooling.Contact.Tail(cmd.Context(), func(msg dto.ContactMessage) {
			if err := printJSON(out, msg); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "failed to print message:", err)
			}
		})
		if err != nil && !errors.Is(err, cmd.Context().Err()) {
			return err
		}

		return nil
	},
}

func init() {
	contactCmd.AddCommand(contactTailCmd)
}
