// Package dashboard renders Grafana dashboards for the hmidash metrics.
package dashboard

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templates embed.FS

var templateFiles = []string{
	"templates/grafana-dashboard.json.tmpl",
}

// Panel is one time series on the rendered dashboard.
type Panel struct {
	Title string
	Expr  string
	Unit  string
	Max   float64
	// grid position, filled in by layout
	X, Y int
}

// Panels lists the series charted from the /metrics endpoint. maxActive caps
// the active alerts axis.
func Panels(maxActive int) []Panel {
	return []Panel{
		{Title: "Engine speed", Expr: "hmidash_engine_speed_rpm", Unit: "rotrpm", Max: 3500},
		{Title: "Coolant temperature", Expr: "hmidash_coolant_temperature_celsius", Unit: "celsius", Max: 120},
		{Title: "Fuel level", Expr: "hmidash_fuel_level_percent", Unit: "percent", Max: 100},
		{Title: "Active alerts", Expr: "hmidash_active_alerts", Unit: "short", Max: float64(maxActive)},
		{Title: "Alert events", Expr: "sum by (event) (rate(hmidash_alert_events_total[1m]))", Unit: "ops"},
		{Title: "Frame rate", Expr: "rate(hmidash_frames_total[1m])", Unit: "hertz"},
	}
}

// layout places panels two per row on Grafana's 24 column grid.
func layout(panels []Panel) []Panel {
	out := make([]Panel, len(panels))
	for i, p := range panels {
		p.X = (i % 2) * 12
		p.Y = (i / 2) * 8
		out[i] = p
	}
	return out
}

// Render parses dashboard templates and writes rendered dashboards to outDir.
// The Prometheus datasource uid is read from PROMETHEUS_DATASOURCE_UID.
func Render(outDir string, maxActive int) error {
	funcMap := template.FuncMap{
		"env": func(key string) (string, error) {
			v := os.Getenv(key)
			if v == "" {
				return "", fmt.Errorf("environment variable %s not set", key)
			}
			return v, nil
		},
		"last": func(i int, panels []Panel) bool { return i == len(panels)-1 },
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	for _, tplName := range templateFiles {
		t, err := template.New(filepath.Base(tplName)).Funcs(funcMap).ParseFS(templates, tplName)
		if err != nil {
			return err
		}
		outPath := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(tplName), ".tmpl"))
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		if err := t.Execute(f, layout(Panels(maxActive))); err != nil {
			f.Close()
			os.Remove(outPath)
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
