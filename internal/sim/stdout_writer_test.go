package sim

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"hmidash/internal/config"
	"hmidash/internal/telemetry"
)

func TestJSONStdoutWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := &JSONStdoutWriter{out: buf}
	row := telemetry.FrameRow{SessionID: "s1", Tick: 1, Snapshot: telemetry.Snapshot{EngineSpeed: 125, CoolantTemp: 85, FuelLevel: 74.99}, AlertState: telemetry.AlertStateDormant, Timestamp: time.Unix(0, 0)}
	if err := w.WriteFrame(row); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("expected JSON output, got %q", buf.String())
	}
	for _, key := range []string{"session_id", "tick", "engine_speed", "coolant_temp", "fuel_level", "alert_state", "ts"} {
		if _, ok := got[key]; !ok {
			t.Errorf("missing key %q in %q", key, buf.String())
		}
	}
}

func TestColorStdoutWriter(t *testing.T) {
	cfg := config.Default()
	buf := &bytes.Buffer{}
	w := &ColorStdoutWriter{cfg: cfg, out: buf}
	row := telemetry.FrameRow{
		Tick:       12,
		Snapshot:   telemetry.Snapshot{EngineSpeed: 1250, CoolantTemp: 112, FuelLevel: 60},
		AlertState: telemetry.AlertStateActive,
		Alerts:     []telemetry.AlertRow{{ID: "brake", Label: "BRAKE FAILURE", Severity: "critical"}},
		Timestamp:  time.Unix(0, 0),
	}
	if err := w.WriteFrame(row); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "Dashboard Configuration:") || !strings.Contains(output, "Alert Catalog:") {
		t.Fatalf("overview not printed: %q", output)
	}
	if !strings.Contains(output, "Readouts: HMR 1245.8 | GEAR N | SPEED 0 km/h | ADBLUE 85%") {
		t.Fatalf("readouts missing from overview: %q", output)
	}
	if !strings.Contains(output, colorRed+"coolant=112.0") {
		t.Fatalf("expected coolant warning color: %q", output)
	}
	if !strings.Contains(output, "BRAKE FAILURE") || !strings.Contains(output, "rpm=1250") {
		t.Fatalf("frame fields missing: %q", output)
	}

	buf.Reset()
	if err := w.WriteAlertEvent(telemetry.AlertEventRow{Tick: 13, EventType: telemetry.AlertEventRemoved, Alert: row.Alerts[0], Timestamp: time.Unix(0, 0)}); err != nil {
		t.Fatalf("second write failed: %v", err)
	}
	if strings.Contains(buf.String(), "Dashboard Configuration:") {
		t.Fatalf("overview printed more than once")
	}
	if !strings.Contains(buf.String(), "REMOVED") || !strings.Contains(buf.String(), "active=0") {
		t.Fatalf("unexpected alert event line: %q", buf.String())
	}
}
