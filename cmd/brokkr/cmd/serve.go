/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/ssargent/brokkr/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the Brokkr REST API server. Record images are posted as raw
bytes and come back as JSON summaries; Prometheus metrics are exposed
on /metrics.

Examples:
  brokkr serve --port=9300
  brokkr serve --config=brokkr.yaml --strict`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			cfg.Bind, _ = cmd.Flags().GetString("bind")
		}

		return api.StartServer(api.ServerConfig{
			Port:   cfg.Port,
			Bind:   cfg.Bind,
			Strict: cfg.Validation.Strict,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 9300, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
}
