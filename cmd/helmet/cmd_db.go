package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/helmet-store/pkg/app"
)

// helmet migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "Running migrations...")
		return app.Migrate(cmd.Context(), cmd.OutOrStdout())
	},
}

// helmet migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch...")
		return app.Rollback(cmd.Context(), cmd.OutOrStdout())
	},
}

// helmet migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.MigrationStatus(cmd.Context(), cmd.OutOrStdout())
	},
}

// helmet seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the standard helmet types",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "Running seeders...")
		return app.Seed(cmd.Context(), cmd.OutOrStdout())
	},
}
