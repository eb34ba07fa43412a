package main

import (
	"errors"

	"github.com/damacus/iron-navigator/internal/accounts"
	"github.com/spf13/cobra"
)

type accountFlags struct {
	accessKey   string
	secretKey   string
	region      string
	description string
	makeDefault bool
}

func newAccountCmd(app *appContainer) *cobra.Command {
	cmdFlags := accountFlags{}

	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage stored accounts",
		Long: `Accounts are named access-key pairs kept in the local database. The default
account is used by every command unless --account names another one.`,
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an account, or update it if the name exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			account := &accounts.Account{}

			existing, err := app.Accounts.Get(ctx, args[0])
			switch {
			case err == nil:
				account = existing
			case !errors.Is(err, accounts.ErrAccountNotFound):
				return err
			}

			account.Name = args[0]
			account.AccessKey = cmdFlags.accessKey
			account.SecretKey = cmdFlags.secretKey
			account.DefaultRegion = cmdFlags.region
			account.Description = cmdFlags.description
			account.IsDefault = cmdFlags.makeDefault

			if err := app.Accounts.Save(ctx, account); err != nil {
				return err
			}

			printf(app, "Account '%s' saved.\n", account.Name)
			return nil
		},
	}
	addCmd.Flags().StringVar(&cmdFlags.accessKey, "access-key", "", "Access key (required)")
	addCmd.Flags().StringVar(&cmdFlags.secretKey, "secret-key", "", "Secret key (required)")
	addCmd.Flags().StringVar(&cmdFlags.region, "region", "", "Default region of the account")
	addCmd.Flags().StringVar(&cmdFlags.description, "description", "", "Free-form description")
	addCmd.Flags().BoolVar(&cmdFlags.makeDefault, "default", false, "Make this the default account")
	_ = addCmd.MarkFlagRequired("access-key")
	_ = addCmd.MarkFlagRequired("secret-key")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.Accounts.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				printf(app, "No accounts stored. Use 'iron-nav account add'.\n")
				return nil
			}
			printf(app, "%s\n", app.Formatter.FormatAccounts(list))
			return nil
		},
	}

	useCmd := &cobra.Command{
		Use:   "use <name>",
		Short: "Make an account the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Accounts.Select(cmd.Context(), args[0]); err != nil {
				return err
			}
			printf(app, "Using account '%s'.\n", args[0])
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Accounts.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printf(app, "Account '%s' deleted.\n", args[0])
			return nil
		},
	}

	accountCmd.AddCommand(addCmd, listCmd, useCmd, deleteCmd)
	return accountCmd
}
