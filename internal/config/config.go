// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"hmidash/internal/alerts"
	"hmidash/internal/telemetry"
)

// Engine tunes the engine speed simulation and gauge.
type Engine struct {
	TargetRPM    float64 `yaml:"target_rpm"`
	ApproachRate float64 `yaml:"approach_rate"`
	NoiseRPM     float64 `yaml:"noise_rpm"`
	MinRPM       float64 `yaml:"min_rpm"`
	MaxRPM       float64 `yaml:"max_rpm"`
	RedlineRPM   float64 `yaml:"redline_rpm"`
}

// Coolant tunes the coolant temperature drift and its bar.
type Coolant struct {
	Initial     float64 `yaml:"initial"`
	Drift       float64 `yaml:"drift"`
	Min         float64 `yaml:"min"`
	Max         float64 `yaml:"max"`
	HighWarning float64 `yaml:"high_warning"`
}

// Fuel tunes fuel consumption and its bar.
type Fuel struct {
	Initial     float64 `yaml:"initial"`
	BurnPerTick float64 `yaml:"burn_per_tick"`
	Min         float64 `yaml:"min"`
	Max         float64 `yaml:"max"`
	LowWarning  float64 `yaml:"low_warning"`
}

// Alerts tunes the alert state machine and the alert grid.
type Alerts struct {
	WarmUp            time.Duration       `yaml:"warm_up"`
	ToggleProbability float64             `yaml:"toggle_probability"`
	RemoveProbability float64             `yaml:"remove_probability"`
	MaxActive         int                 `yaml:"max_active"`
	GridSlots         int                 `yaml:"grid_slots"`
	Catalog           []alerts.Definition `yaml:"catalog"`
}

// Readouts are the static values shown in the header and status cluster.
type Readouts struct {
	SupplyVoltage float64 `yaml:"supply_voltage"`
	Hours         float64 `yaml:"hours"`
	Gear          string  `yaml:"gear"`
	SpeedKmh      float64 `yaml:"speed_kmh"`
	AdBluePct     float64 `yaml:"adblue_pct"`
	HydraulicBar  float64 `yaml:"hydraulic_bar"`
}

// DashboardConfig is the root configuration.
type DashboardConfig struct {
	TickInterval  time.Duration `yaml:"tick_interval"`
	ClockInterval time.Duration `yaml:"clock_interval"`
	Engine        Engine        `yaml:"engine"`
	Coolant       Coolant       `yaml:"coolant"`
	Fuel          Fuel          `yaml:"fuel"`
	Alerts        Alerts        `yaml:"alerts"`
	Readouts      Readouts      `yaml:"readouts"`
}

// Default returns the stock cluster profile.
func Default() *DashboardConfig {
	tp := telemetry.DefaultParams()
	ap := alerts.DefaultParams()
	start := telemetry.InitialSnapshot()
	return &DashboardConfig{
		TickInterval:  500 * time.Millisecond,
		ClockInterval: time.Second,
		Engine: Engine{
			TargetRPM:    tp.EngineTarget,
			ApproachRate: tp.EngineRate,
			NoiseRPM:     tp.EngineNoise,
			MinRPM:       tp.EngineRange.Min,
			MaxRPM:       tp.EngineRange.Max,
			RedlineRPM:   2800,
		},
		Coolant: Coolant{
			Initial:     start.CoolantTemp,
			Drift:       tp.CoolantDrift,
			Min:         tp.CoolantRange.Min,
			Max:         tp.CoolantRange.Max,
			HighWarning: 110,
		},
		Fuel: Fuel{
			Initial:     start.FuelLevel,
			BurnPerTick: tp.FuelBurn,
			Min:         tp.FuelRange.Min,
			Max:         tp.FuelRange.Max,
			LowWarning:  15,
		},
		Alerts: Alerts{
			WarmUp:            ap.WarmUp,
			ToggleProbability: ap.ToggleProbability,
			RemoveProbability: ap.RemoveProbability,
			MaxActive:         ap.MaxActive,
			GridSlots:         alerts.DefaultGridSlots,
			Catalog:           alerts.DefaultCatalog(),
		},
		Readouts: Readouts{
			SupplyVoltage: 24.1,
			Hours:         1245.8,
			Gear:          "N",
			SpeedKmh:      0,
			AdBluePct:     85,
			HydraulicBar:  180,
		},
	}
}

// Load reads a YAML config over the defaults and validates it against a CUE schema.
// An empty configPath returns the defaults; an empty schemaPath uses the embedded schema.
func Load(configPath, cueSchemaPath string) (*DashboardConfig, error) {
	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}

	// Validate with CUE first
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints the schema cannot express.
func (c *DashboardConfig) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive")
	}
	if c.ClockInterval <= 0 {
		return fmt.Errorf("clock_interval must be positive")
	}
	if c.Engine.MinRPM >= c.Engine.MaxRPM {
		return fmt.Errorf("engine: min_rpm must be below max_rpm")
	}
	if c.Coolant.Min >= c.Coolant.Max {
		return fmt.Errorf("coolant: min must be below max")
	}
	if c.Coolant.Initial < c.Coolant.Min || c.Coolant.Initial > c.Coolant.Max {
		return fmt.Errorf("coolant: initial %.1f outside [%.1f, %.1f]", c.Coolant.Initial, c.Coolant.Min, c.Coolant.Max)
	}
	if c.Fuel.Min >= c.Fuel.Max {
		return fmt.Errorf("fuel: min must be below max")
	}
	if c.Fuel.Initial < c.Fuel.Min || c.Fuel.Initial > c.Fuel.Max {
		return fmt.Errorf("fuel: initial %.1f outside [%.1f, %.1f]", c.Fuel.Initial, c.Fuel.Min, c.Fuel.Max)
	}
	if c.Alerts.GridSlots < c.Alerts.MaxActive {
		return fmt.Errorf("alerts: grid_slots %d cannot show max_active %d alerts", c.Alerts.GridSlots, c.Alerts.MaxActive)
	}
	if err := alerts.ValidateCatalog(c.Alerts.Catalog); err != nil {
		return fmt.Errorf("alerts: %w", err)
	}
	return nil
}

// TelemetryParams derives the simulator tuning.
func (c *DashboardConfig) TelemetryParams() telemetry.Params {
	return telemetry.Params{
		EngineTarget: c.Engine.TargetRPM,
		EngineRate:   c.Engine.ApproachRate,
		EngineNoise:  c.Engine.NoiseRPM,
		EngineRange:  telemetry.Range{Min: c.Engine.MinRPM, Max: c.Engine.MaxRPM},
		CoolantDrift: c.Coolant.Drift,
		CoolantRange: telemetry.Range{Min: c.Coolant.Min, Max: c.Coolant.Max},
		FuelBurn:     c.Fuel.BurnPerTick,
		FuelRange:    telemetry.Range{Min: c.Fuel.Min, Max: c.Fuel.Max},
	}
}

// InitialSnapshot is the power-on state. The engine starts stopped.
func (c *DashboardConfig) InitialSnapshot() telemetry.Snapshot {
	return telemetry.Snapshot{
		EngineSpeed: c.Engine.MinRPM,
		CoolantTemp: c.Coolant.Initial,
		FuelLevel:   c.Fuel.Initial,
	}
}

// AlertParams derives the alert machine tuning.
func (c *DashboardConfig) AlertParams() alerts.Params {
	return alerts.Params{
		WarmUp:            c.Alerts.WarmUp,
		ToggleProbability: c.Alerts.ToggleProbability,
		RemoveProbability: c.Alerts.RemoveProbability,
		MaxActive:         c.Alerts.MaxActive,
	}
}
