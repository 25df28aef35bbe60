package main

import (
	"folio/internal/domains/invite/model/dto"
	"folio/shared/validator"

	"github.com/spf13/cobra"
)

const cliActor = "folioctl"

var inviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Manage admin invite tokens",
}

var inviteCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an invite and print its token",
	RunE:  runInviteCreate,
}

var invitePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete expired invites that were never used",
	RunE: func(cmd *cobra.Command, _ []string) error {
		res, err := tooling.Invites.Prune(cmd.Context())
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), res)
	},
}

var inviteReq dto.CreateInviteRequest

func runInviteCreate(cmd *cobra.Command, _ []string) error {
	req := inviteReq

	if err := validator.ValidateStruct(&req); err != nil {
		return err
	}

	res, err := tooling.Invites.Create(cmd.Context(), req, cliActor)
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), res)
}

func init() {
	inviteCreateCmd.Flags().IntVar(&inviteReq.TTLHours, "ttl", 0, "Hours until the invite expires (default from APP_INVITES_TTL_HOURS)")
	inviteCreateCmd.Flags().StringVar(&inviteReq.Email, "email", "", "Only this email may sign up with the invite")
	inviteCreateCmd.Flags().StringVar(&inviteReq.Role, "role", "", "Role granted on signup: admin or superadmin")

	inviteCmd.AddCommand(inviteCreateCmd, invitePruneCmd)
}
