package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"yatra-booking/internal/service"
)

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage back-office users",
	}
	cmd.AddCommand(adminCreateCmd())
	return cmd
}

func adminCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create [username]",
		Short: "Create an admin; the password is read from ADMIN_PASSWORD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := os.Getenv("ADMIN_PASSWORD")
			if password == "" {
				return errors.New("ADMIN_PASSWORD is not set")
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			var displayName *string
			if name != "" {
				displayName = &name
			}
			admin, err := service.NewAdminService(a.repos, a.logger).
				CreateAdmin(cmd.Context(), args[0], password, displayName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", admin.Username, admin.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	return cmd
}
