// Telemetry structs emitted once per simulator tick
package telemetry

import "time"

// Snapshot holds the simulated instrument values for one tick.
type Snapshot struct {
	EngineSpeed float64 `json:"engine_speed"` // rpm
	CoolantTemp float64 `json:"coolant_temp"` // °C
	FuelLevel   float64 `json:"fuel_level"`   // percent
}

// Range is a closed numeric interval.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Clamp saturates v at the bounds of r.
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Contains reports whether v lies within r.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Alert machine states as they appear on frames.
const (
	AlertStateDormant = "dormant"
	AlertStateActive  = "active"
)

// AlertRow is the wire form of an alert shown on the dashboard.
type AlertRow struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Severity string `json:"severity"`
}

// FrameRow represents one tick of dashboard state.
type FrameRow struct {
	SessionID  string     `json:"session_id"`
	Tick       uint64     `json:"tick"`
	Snapshot              // inlined as engine_speed, coolant_temp, fuel_level
	AlertState string     `json:"alert_state"`
	Alerts     []AlertRow `json:"alerts"`
	Timestamp  time.Time  `json:"ts"`
}

// Alert transition kinds.
const (
	AlertEventAdded    = "added"
	AlertEventRemoved  = "removed"
	AlertEventKept     = "kept"
	AlertEventRejected = "rejected"
)

// AlertEventRow records a single change attempt made by the alert machine.
type AlertEventRow struct {
	SessionID string    `json:"session_id"`
	Tick      uint64    `json:"tick"`
	EventType string    `json:"event_type"`
	Alert     AlertRow  `json:"alert"`
	Active    int       `json:"active"`
	Timestamp time.Time `json:"ts"`
}
