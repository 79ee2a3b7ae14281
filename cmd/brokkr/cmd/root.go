/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/ssargent/brokkr/pkg/config"

	"github.com/spf13/cobra"
)

// cfg is the effective configuration, loaded once before any subcommand runs.
var cfg *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "brokkr",
	Short: "Brokkr - storage device inventory tooling",
	Long: `Brokkr reads and writes the fixed binary record format used for
storage device inventories: file headers, partition tables, health
telemetry and full device manager images.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			cfg = config.DefaultConfig()
		} else {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg = loaded
		}
		if strict, _ := cmd.Flags().GetBool("strict"); strict {
			cfg.Validation.Strict = true
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().Bool("strict", false, "Escalate validation warnings to errors")
}
