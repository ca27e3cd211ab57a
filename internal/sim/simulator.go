// Simulator driving the instrument values and alert machine per tick
package sim

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"hmidash/internal/alerts"
	"hmidash/internal/config"
	"hmidash/internal/telemetry"
)

// FrameWriter is an interface to support different output writers.
type FrameWriter interface {
	WriteFrame(telemetry.FrameRow) error
}

// AlertEventWriter handles alert machine transitions.
type AlertEventWriter interface {
	WriteAlertEvent(telemetry.AlertEventRow) error
}

// State is a point-in-time copy of the simulation.
type State struct {
	SessionID  string               `json:"session_id"`
	Tick       uint64               `json:"tick"`
	Snapshot   telemetry.Snapshot   `json:"snapshot"`
	AlertState string               `json:"alert_state"`
	Alerts     []telemetry.AlertRow `json:"alerts"`
	Uptime     time.Duration        `json:"uptime_ns"`
}

// Simulator owns the dashboard state and emits a frame on every tick.
type Simulator struct {
	sessionID    string
	cfg          *config.DashboardConfig
	gen          *telemetry.Generator
	machine      *alerts.Machine
	writer       FrameWriter
	eventWriter  AlertEventWriter
	tickInterval time.Duration
	now          func() time.Time
	start        time.Time

	mu       sync.Mutex
	ticks    uint64
	snapshot telemetry.Snapshot
	active   []alerts.Definition
}

// NewSimulator builds a simulator from cfg. A nil rnd or now falls back to a
// time-seeded source and the wall clock; an empty sessionID gets a fresh UUID.
func NewSimulator(sessionID string, cfg *config.DashboardConfig, writer FrameWriter, eWriter AlertEventWriter, tickInterval time.Duration, rnd *rand.Rand, now func() time.Time) *Simulator {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	if tickInterval <= 0 {
		tickInterval = cfg.TickInterval
	}
	return &Simulator{
		sessionID:    sessionID,
		cfg:          cfg,
		gen:          telemetry.NewGenerator(cfg.TelemetryParams(), rnd),
		machine:      alerts.NewMachine(cfg.Alerts.Catalog, cfg.AlertParams(), rnd),
		writer:       writer,
		eventWriter:  eWriter,
		tickInterval: tickInterval,
		now:          now,
		start:        now(),
		snapshot:     cfg.InitialSnapshot(),
	}
}

// SessionID identifies the frames of this run.
func (s *Simulator) SessionID() string { return s.sessionID }

// GetConfig returns the configuration the simulator was built from.
func (s *Simulator) GetConfig() *config.DashboardConfig { return s.cfg }

// State returns a copy of the current state.
func (s *Simulator) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		SessionID:  s.sessionID,
		Tick:       s.ticks,
		Snapshot:   s.snapshot,
		AlertState: s.machine.State(),
		Alerts:     alerts.Rows(s.active),
		Uptime:     s.now().Sub(s.start),
	}
}

// Refuel tops the tank up to the configured maximum and returns the new snapshot.
// Consumption continues from there on the next tick.
func (s *Simulator) Refuel() telemetry.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.FuelLevel = s.cfg.Fuel.Max
	return s.snapshot
}
