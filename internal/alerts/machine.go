package alerts

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/looplab/fsm"

	"hmidash/internal/logging"
	"hmidash/internal/telemetry"
)

const (
	StateDormant = telemetry.AlertStateDormant
	StateActive  = telemetry.AlertStateActive

	eventArm    = "arm"
	eventDisarm = "disarm"
)

// Source supplies the randomness used to toggle alerts. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// Params tunes how often and how far the active set changes.
type Params struct {
	WarmUp            time.Duration // no alerts before this much session time
	ToggleProbability float64       // chance per tick that a toggle is attempted
	RemoveProbability float64       // chance a lit alert is cleared when picked
	MaxActive         int
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		WarmUp:            5 * time.Second,
		ToggleProbability: 0.05,
		RemoveProbability: 0.5,
		MaxActive:         6,
	}
}

// Transition describes what a single Step did. Kind is empty when nothing was attempted.
type Transition struct {
	Kind  string
	Alert Definition
}

// Changed reports whether the active set differs after the step.
func (t Transition) Changed() bool {
	return t.Kind == telemetry.AlertEventAdded || t.Kind == telemetry.AlertEventRemoved
}

// Machine toggles catalog entries in and out of the active set.
// It is dormant until the warm-up window has elapsed.
type Machine struct {
	fsm     *fsm.FSM
	catalog []Definition
	params  Params
	rand    Source
}

// NewMachine creates a dormant machine over catalog.
func NewMachine(catalog []Definition, p Params, src Source) *Machine {
	m := &Machine{
		catalog: slices.Clone(catalog),
		params:  p,
		rand:    src,
	}
	m.fsm = fsm.NewFSM(
		StateDormant,
		fsm.Events{
			{Name: eventArm, Src: []string{StateDormant}, Dst: StateActive},
			{Name: eventDisarm, Src: []string{StateActive}, Dst: StateDormant},
		},
		fsm.Callbacks{
			"enter_state": func(ctx context.Context, e *fsm.Event) {
				logging.FromContext(ctx).Info("alert machine state changed", "from", e.Src, "to", e.Dst)
			},
		},
	)
	return m
}

// State returns the current machine state.
func (m *Machine) State() string { return m.fsm.Current() }

// Step computes the active set following active after elapsed session time.
// active is never modified; a changed set is returned as a new slice.
func (m *Machine) Step(ctx context.Context, active []Definition, elapsed time.Duration) ([]Definition, Transition, error) {
	if elapsed < m.params.WarmUp {
		if err := m.fire(ctx, eventDisarm); err != nil {
			return nil, Transition{}, err
		}
		return nil, Transition{}, nil
	}
	if err := m.fire(ctx, eventArm); err != nil {
		return active, Transition{}, err
	}
	if len(m.catalog) == 0 || m.rand.Float64() >= m.params.ToggleProbability {
		return active, Transition{}, nil
	}

	target := m.catalog[m.rand.Intn(len(m.catalog))]
	if idx := indexOf(active, target.ID); idx >= 0 {
		if m.rand.Float64() < m.params.RemoveProbability {
			next := make([]Definition, 0, len(active)-1)
			next = append(next, active[:idx]...)
			next = append(next, active[idx+1:]...)
			return next, Transition{Kind: telemetry.AlertEventRemoved, Alert: target}, nil
		}
		return active, Transition{Kind: telemetry.AlertEventKept, Alert: target}, nil
	}
	if len(active) >= m.params.MaxActive {
		return active, Transition{Kind: telemetry.AlertEventRejected, Alert: target}, nil
	}
	next := make([]Definition, 0, len(active)+1)
	next = append(next, active...)
	next = append(next, target)
	return next, Transition{Kind: telemetry.AlertEventAdded, Alert: target}, nil
}

func (m *Machine) fire(ctx context.Context, event string) error {
	if !m.fsm.Can(event) {
		return nil
	}
	if err := m.fsm.Event(ctx, event); err != nil {
		return fmt.Errorf("alert machine %s: %w", event, err)
	}
	return nil
}

func indexOf(active []Definition, id string) int {
	return slices.IndexFunc(active, func(d Definition) bool { return d.ID == id })
}
