package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hmidash/internal/config"
	"hmidash/internal/dashboard"
)

var (
	grafanaOut        string
	grafanaConfigPath string
	grafanaSchemaPath string
)

var grafanaCmd = &cobra.Command{
	Use:   "grafana",
	Short: "Render a Grafana dashboard for the admin metrics",
	Long:  "grafana writes a dashboard JSON charting the /metrics endpoint. PROMETHEUS_DATASOURCE_UID selects the datasource.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(grafanaConfigPath, grafanaSchemaPath)
		if err != nil {
			return err
		}
		if err := dashboard.Render(grafanaOut, cfg.Alerts.MaxActive); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "dashboard written to %s\n", grafanaOut)
		return nil
	},
}

func init() {
	grafanaCmd.Flags().StringVar(&grafanaOut, "out", "build", "Output directory for rendered dashboards")
	grafanaCmd.Flags().StringVar(&grafanaConfigPath, "config", "", "Dashboard configuration the panels are scaled to (stock profile if empty)")
	grafanaCmd.Flags().StringVar(&grafanaSchemaPath, "schema", "", "Path to CUE schema file (embedded schema if empty)")
}
