package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ninoxdb/ninox-go"
)

func newTeamsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "List the teams visible to the auth key",
		Long: `List the teams visible to the auth key.

The list is printed even when the configured team or database does not
exist, so it can be used to find the right names.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			if err := client.Auth(cmd.Context(), a.cfg.AuthOptions()); err != nil && !ninox.IsNotFound(err) {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), client.Teams())
		},
	}
}

func newDatabasesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "databases",
		Short: "List the databases of the configured team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			if err := client.Auth(cmd.Context(), a.cfg.AuthOptions()); err != nil && !missingDatabase(err) {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), client.Databases())
		},
	}
}

func missingDatabase(err error) bool {
	var e *ninox.Error
	return errors.As(err, &e) && e.Code == ninox.CodeNotFound && e.Resource == ninox.ResourceDatabase
}
