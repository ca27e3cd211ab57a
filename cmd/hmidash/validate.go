package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hmidash/internal/config"
)

var (
	validateConfigPath string
	validateSchemaPath string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a dashboard configuration",
	Long:  "validate checks a configuration file against the CUE schema and the value constraints without starting the dashboard.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if validateConfigPath == "" {
			return fmt.Errorf("config file required")
		}
		cfg, err := config.Load(validateConfigPath, validateSchemaPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d alerts, tick %s)\n", validateConfigPath, len(cfg.Alerts.Catalog), cfg.TickInterval)
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateConfigPath, "config", "", "Path to dashboard configuration YAML")
	validateCmd.Flags().StringVar(&validateSchemaPath, "schema", "", "Path to CUE schema file (embedded schema if empty)")
	validateCmd.MarkFlagRequired("config")
}
