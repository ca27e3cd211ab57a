package telemetry

// Source supplies uniform random numbers in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Params tunes the per-tick update rules.
type Params struct {
	EngineTarget float64 // rpm the engine settles towards
	EngineRate   float64 // fraction of the gap closed per tick
	EngineNoise  float64 // half-width of the uniform rpm noise
	EngineRange  Range
	CoolantDrift float64 // half-width of the uniform temperature delta
	CoolantRange Range
	FuelBurn     float64 // percent consumed per tick
	FuelRange    Range
}

// DefaultParams returns the stock idle profile.
func DefaultParams() Params {
	return Params{
		EngineTarget: 1250,
		EngineRate:   0.1,
		EngineNoise:  25,
		EngineRange:  Range{Min: 0, Max: 3500},
		CoolantDrift: 0.5,
		CoolantRange: Range{Min: 40, Max: 120},
		FuelBurn:     0.01,
		FuelRange:    Range{Min: 0, Max: 100},
	}
}

// InitialSnapshot is the state shown at power-on.
func InitialSnapshot() Snapshot {
	return Snapshot{EngineSpeed: 0, CoolantTemp: 85, FuelLevel: 75}
}

// Generator advances a Snapshot by one tick.
type Generator struct {
	params Params
	rand   Source
}

// NewGenerator creates a generator drawing noise from src.
func NewGenerator(p Params, src Source) *Generator {
	return &Generator{params: p, rand: src}
}

// Next returns the snapshot following prev. prev is not modified.
func (g *Generator) Next(prev Snapshot) Snapshot {
	p := g.params

	rpm := prev.EngineSpeed + (p.EngineTarget-prev.EngineSpeed)*p.EngineRate + g.uniform(p.EngineNoise)
	temp := prev.CoolantTemp + g.uniform(p.CoolantDrift)
	fuel := prev.FuelLevel - p.FuelBurn

	return Snapshot{
		EngineSpeed: p.EngineRange.Clamp(rpm),
		CoolantTemp: p.CoolantRange.Clamp(temp),
		FuelLevel:   p.FuelRange.Clamp(fuel),
	}
}

// uniform draws from [-halfWidth, +halfWidth).
func (g *Generator) uniform(halfWidth float64) float64 {
	return (g.rand.Float64()*2 - 1) * halfWidth
}
