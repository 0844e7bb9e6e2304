package main

import (
	"github.com/spf13/cobra"
	"github.com/terraincognita07/tailorhub/internal/cli"
	"github.com/terraincognita07/tailorhub/internal/config"
)

func newResetPasswordCommand(options *rootOptions) *cobra.Command {
	var email string

	command := &cobra.Command{
		Use:   "reset-password",
		Short: "Issue a temporary password for an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := config.LoadDatabasePath()
			if err != nil {
				return err
			}
			return cli.RunResetPasswordCommand(cmd.Context(), dbPath, email, cmd.OutOrStdout(), options.logger)
		},
	}
	command.Flags().StringVar(&email, "email", "", "email of the account to reset")
	_ = command.MarkFlagRequired("email")
	return command
}
