package sim

import (
	"context"
	"time"

	"hmidash/internal/alerts"
	"hmidash/internal/logging"
	"hmidash/internal/telemetry"
)

// Run starts the simulation loop and stops when the context is done.
func (s *Simulator) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting simulator", "session_id", s.sessionID, "tick_interval", s.tickInterval)
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-ctx.Done():
			log.Info("stopping simulator", "ticks", s.State().Tick)
			return
		}
	}
}

// tick advances the state and writes the resulting frame outside the lock.
func (s *Simulator) tick(ctx context.Context) {
	log := logging.FromContext(ctx)
	frame, event := s.step(ctx)

	if s.writer != nil {
		if err := s.writer.WriteFrame(frame); err != nil {
			log.Error("frame write failed", "tick", frame.Tick, "err", err)
		}
	}
	if event != nil && s.eventWriter != nil {
		if err := s.eventWriter.WriteAlertEvent(*event); err != nil {
			log.Error("alert event write failed", "tick", event.Tick, "event", event.EventType, "err", err)
		}
	}
}

func (s *Simulator) step(ctx context.Context) (telemetry.FrameRow, *telemetry.AlertEventRow) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.ticks++
	s.snapshot = s.gen.Next(s.snapshot)

	next, tr, err := s.machine.Step(ctx, s.active, now.Sub(s.start))
	if err != nil {
		logging.FromContext(ctx).Error("alert machine step failed", "tick", s.ticks, "err", err)
	} else {
		s.active = next
	}

	frame := telemetry.FrameRow{
		SessionID:  s.sessionID,
		Tick:       s.ticks,
		Snapshot:   s.snapshot,
		AlertState: s.machine.State(),
		Alerts:     alerts.Rows(s.active),
		Timestamp:  now.UTC(),
	}
	if tr.Kind == "" {
		return frame, nil
	}
	if tr.Changed() {
		logging.FromContext(ctx).Debug("alert set changed", "event", tr.Kind, "alert", tr.Alert.ID, "active", len(s.active))
	}
	return frame, &telemetry.AlertEventRow{
		SessionID: s.sessionID,
		Tick:      s.ticks,
		EventType: tr.Kind,
		Alert:     tr.Alert.Row(),
		Active:    len(s.active),
		Timestamp: now.UTC(),
	}
}
