package main

import (
	"github.com/spf13/cobra"

	"yatra-booking/internal/database"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			return database.Migrate(cmd.Context(), a.db, a.logger)
		},
	}
}
