package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"hmidash/internal/telemetry"
)

func TestRecorderTracksLastFrame(t *testing.T) {
	r := NewRecorder()
	frames := []telemetry.FrameRow{
		{Snapshot: telemetry.Snapshot{EngineSpeed: 125, CoolantTemp: 85, FuelLevel: 74.99}, AlertState: telemetry.AlertStateDormant},
		{
			Snapshot:   telemetry.Snapshot{EngineSpeed: 237.5, CoolantTemp: 85.3, FuelLevel: 74.98},
			AlertState: telemetry.AlertStateActive,
			Alerts:     []telemetry.AlertRow{{ID: "brake"}, {ID: "fuel"}},
		},
	}
	for _, f := range frames {
		if err := r.WriteFrame(f); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if got := testutil.ToFloat64(r.EngineSpeed); got != 237.5 {
		t.Errorf("engine speed = %v", got)
	}
	if got := testutil.ToFloat64(r.FuelLevel); got != 74.98 {
		t.Errorf("fuel level = %v", got)
	}
	if got := testutil.ToFloat64(r.ActiveAlerts); got != 2 {
		t.Errorf("active alerts = %v", got)
	}
	if got := testutil.ToFloat64(r.AlertMachineActive); got != 1 {
		t.Errorf("alert machine active = %v", got)
	}
	if got := testutil.ToFloat64(r.Ticks); got != 2 {
		t.Errorf("frames total = %v", got)
	}
}

func TestRecorderCountsAlertEvents(t *testing.T) {
	r := NewRecorder()
	events := []telemetry.AlertEventRow{
		{EventType: telemetry.AlertEventAdded, Alert: telemetry.AlertRow{Severity: "critical"}},
		{EventType: telemetry.AlertEventAdded, Alert: telemetry.AlertRow{Severity: "critical"}},
		{EventType: telemetry.AlertEventRejected, Alert: telemetry.AlertRow{Severity: "warning"}},
	}
	for _, e := range events {
		if err := r.WriteAlertEvent(e); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if got := testutil.ToFloat64(r.AlertEvents.WithLabelValues("added", "critical")); got != 2 {
		t.Errorf("added critical = %v", got)
	}
	expected := `
# HELP hmidash_alert_events_total Total number of alert toggle attempts by outcome.
# TYPE hmidash_alert_events_total counter
hmidash_alert_events_total{event="added",severity="critical"} 2
hmidash_alert_events_total{event="rejected",severity="warning"} 1
`
	if err := testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected), "hmidash_alert_events_total"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}
