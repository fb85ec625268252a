package main

import (
	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/helmet-store/config"
	"github.com/shashiranjanraj/helmet-store/pkg/app"
	"github.com/shashiranjanraj/helmet-store/pkg/logger"
)

// helmet serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run", "start"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			config.Set("APP_PORT", port)
		}

		a, err := app.Open(cmd.Context())
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Close(); err != nil {
				logger.Error("close storage", "error", err)
			}
		}()

		return a.Serve(cmd.Context())
	},
}

// helmet route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.PrintRoutes(cmd.OutOrStdout())
	},
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "listen port (overrides APP_PORT)")
}
