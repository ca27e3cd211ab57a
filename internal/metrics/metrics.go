// Package metrics exposes dashboard frames as prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"hmidash/internal/telemetry"
)

// Recorder is a frame and alert event sink that keeps prometheus metrics current.
type Recorder struct {
	registry *prometheus.Registry

	EngineSpeed  prometheus.Gauge
	CoolantTemp  prometheus.Gauge
	FuelLevel    prometheus.Gauge
	ActiveAlerts prometheus.Gauge
	// 1 = active, 0 = dormant
	AlertMachineActive prometheus.Gauge
	Ticks              prometheus.Counter
	// event: added/removed/kept/rejected, severity: critical/warning
	AlertEvents *prometheus.CounterVec
}

// NewRecorder creates a Recorder registered on its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		EngineSpeed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hmidash_engine_speed_rpm",
			Help: "Simulated engine speed of the latest frame.",
		}),
		CoolantTemp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hmidash_coolant_temperature_celsius",
			Help: "Simulated coolant temperature of the latest frame.",
		}),
		FuelLevel: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hmidash_fuel_level_percent",
			Help: "Simulated fuel level of the latest frame.",
		}),
		ActiveAlerts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hmidash_active_alerts",
			Help: "Number of alerts lit on the latest frame.",
		}),
		AlertMachineActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hmidash_alert_machine_active",
			Help: "Alert machine state (1=active, 0=dormant).",
		}),
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hmidash_frames_total",
			Help: "Total number of frames produced.",
		}),
		AlertEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hmidash_alert_events_total",
				Help: "Total number of alert toggle attempts by outcome.",
			},
			[]string{"event", "severity"},
		),
	}
	r.registry.MustRegister(
		r.EngineSpeed,
		r.CoolantTemp,
		r.FuelLevel,
		r.ActiveAlerts,
		r.AlertMachineActive,
		r.Ticks,
		r.AlertEvents,
	)
	return r
}

// Registry returns the registry holding the dashboard metrics.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteFrame updates the gauges from a frame.
func (r *Recorder) WriteFrame(row telemetry.FrameRow) error {
	r.EngineSpeed.Set(row.EngineSpeed)
	r.CoolantTemp.Set(row.CoolantTemp)
	r.FuelLevel.Set(row.FuelLevel)
	r.ActiveAlerts.Set(float64(len(row.Alerts)))
	if row.AlertState == telemetry.AlertStateActive {
		r.AlertMachineActive.Set(1)
	} else {
		r.AlertMachineActive.Set(0)
	}
	r.Ticks.Inc()
	return nil
}

// WriteAlertEvent counts an alert toggle attempt.
func (r *Recorder) WriteAlertEvent(row telemetry.AlertEventRow) error {
	r.AlertEvents.WithLabelValues(row.EventType, row.Alert.Severity).Inc()
	return nil
}
