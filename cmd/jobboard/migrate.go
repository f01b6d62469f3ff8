package main

import (
	"context"

	"github.com/deppfellow/jobboard/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded schema migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), database.DatabasePingTimeout*6)
		defer cancel()

		return database.Migrate(ctx, &log, database.DSN(cfg.Database))
	},
}
