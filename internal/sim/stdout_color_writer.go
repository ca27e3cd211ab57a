// ColorStdoutWriter prints human-friendly, colorized frames to STDOUT.
package sim

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"hmidash/internal/config"
	"hmidash/internal/telemetry"
	"hmidash/internal/ui"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

// ColorStdoutWriter prints frames using ANSI colors.
type ColorStdoutWriter struct {
	cfg  *config.DashboardConfig
	out  io.Writer
	once sync.Once
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(cfg *config.DashboardConfig) *ColorStdoutWriter {
	return &ColorStdoutWriter{cfg: cfg, out: os.Stdout}
}

func (w *ColorStdoutWriter) printOverview() {
	if w.cfg == nil {
		return
	}

	fmt.Fprintln(w.out, "Dashboard Configuration:")
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	for _, r := range configRows(w.cfg) {
		fmt.Fprintf(tw, "%s:\t%s\n", r[0], r[1])
	}
	tw.Flush()

	fmt.Fprintln(w.out, "\nAlert Catalog:")
	tw = tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tLabel\tSeverity\n")
	for _, a := range w.cfg.Alerts.Catalog {
		fmt.Fprintf(tw, "%s%s%s\t%s\t%s\n", severityColor(string(a.Severity)), a.ID, colorReset, a.Label, a.Severity)
	}
	tw.Flush()

	r := w.cfg.Readouts
	fmt.Fprintf(w.out, "\nReadouts: %s | %s\n\n",
		ui.PlainReadouts(ui.StatusReadouts(r.Hours, r.Gear, r.SpeedKmh)),
		ui.PlainReadouts(ui.SecondaryReadouts(r.AdBluePct, r.HydraulicBar)))
}

// configRows lists the tuning values shown in overviews.
func configRows(cfg *config.DashboardConfig) [][2]string {
	return [][2]string{
		{"Tick Interval", cfg.TickInterval.String()},
		{"Target RPM", fmt.Sprintf("%.0f", cfg.Engine.TargetRPM)},
		{"Redline RPM", fmt.Sprintf("%.0f", cfg.Engine.RedlineRPM)},
		{"Coolant Warning (°C)", fmt.Sprintf("%.0f", cfg.Coolant.HighWarning)},
		{"Fuel Burn (%/tick)", fmt.Sprintf("%.3f", cfg.Fuel.BurnPerTick)},
		{"Fuel Warning (%)", fmt.Sprintf("%.0f", cfg.Fuel.LowWarning)},
		{"Alert Warm-up", cfg.Alerts.WarmUp.String()},
		{"Toggle Probability", fmt.Sprintf("%.2f", cfg.Alerts.ToggleProbability)},
		{"Remove Probability", fmt.Sprintf("%.2f", cfg.Alerts.RemoveProbability)},
		{"Max Active Alerts", fmt.Sprintf("%d", cfg.Alerts.MaxActive)},
	}
}

func severityColor(sev string) string {
	if sev == "critical" {
		return colorRed
	}
	return colorYellow
}

// WriteFrame outputs a single frame in colorized format.
func (w *ColorStdoutWriter) WriteFrame(row telemetry.FrameRow) error {
	w.once.Do(w.printOverview)

	coolantColor, fuelColor := colorCyan, colorGreen
	if w.cfg != nil {
		if row.CoolantTemp >= w.cfg.Coolant.HighWarning {
			coolantColor = colorRed
		}
		if row.FuelLevel <= w.cfg.Fuel.LowWarning {
			fuelColor = colorRed
		}
	}
	stateColor := colorGray
	if row.AlertState == telemetry.AlertStateActive {
		stateColor = colorGreen
	}

	fmt.Fprintf(w.out, "%s[%s]%s ", colorGray, row.Timestamp.Format(time.RFC3339), colorReset)
	fmt.Fprintf(w.out, "%stick=%d%s ", colorBlue, row.Tick, colorReset)
	fmt.Fprintf(w.out, "%srpm=%.0f%s ", colorMagenta, row.EngineSpeed, colorReset)
	fmt.Fprintf(w.out, "%scoolant=%.1f%s ", coolantColor, row.CoolantTemp, colorReset)
	fmt.Fprintf(w.out, "%sfuel=%.2f%s ", fuelColor, row.FuelLevel, colorReset)
	fmt.Fprintf(w.out, "%salerts=%s%s", stateColor, row.AlertState, colorReset)
	if len(row.Alerts) > 0 {
		labels := make([]string, len(row.Alerts))
		for i, a := range row.Alerts {
			labels[i] = severityColor(a.Severity) + a.Label + colorReset
		}
		fmt.Fprintf(w.out, " [%s]", strings.Join(labels, ", "))
	}
	fmt.Fprintln(w.out)
	return nil
}

// WriteAlertEvent prints an alert transition to STDOUT.
func (w *ColorStdoutWriter) WriteAlertEvent(e telemetry.AlertEventRow) error {
	w.once.Do(w.printOverview)
	fmt.Fprintln(w.out, alertEventLine(e))
	return nil
}

// alertEventLine formats an alert transition for terminal logs.
func alertEventLine(e telemetry.AlertEventRow) string {
	kindColor := colorGray
	switch e.EventType {
	case telemetry.AlertEventAdded:
		kindColor = severityColor(e.Alert.Severity)
	case telemetry.AlertEventRemoved:
		kindColor = colorGreen
	case telemetry.AlertEventRejected:
		kindColor = colorMagenta
	}
	return fmt.Sprintf("%s[%s]%s %sALERT%s %s%s%s %s tick=%d active=%d",
		colorGray, e.Timestamp.Format(time.RFC3339), colorReset,
		colorCyan, colorReset,
		kindColor, strings.ToUpper(e.EventType), colorReset,
		e.Alert.Label, e.Tick, e.Active)
}
