package sim

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hmidash/internal/telemetry"
)

type collectWriter struct{ rows []telemetry.FrameRow }

func (c *collectWriter) WriteFrame(r telemetry.FrameRow) error {
	c.rows = append(c.rows, r)
	return nil
}

func encodeFrames(t *testing.T, rows []telemetry.FrameRow) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	return &buf
}

func TestReplayLog(t *testing.T) {
	rows := []telemetry.FrameRow{
		{SessionID: "s1", Tick: 1, Snapshot: telemetry.Snapshot{EngineSpeed: 125}, Timestamp: time.Unix(0, 0)},
		{SessionID: "s1", Tick: 2, Snapshot: telemetry.Snapshot{EngineSpeed: 237}, Timestamp: time.Unix(1, 0)},
	}
	cw := &collectWriter{}
	if err := ReplayLog(context.Background(), encodeFrames(t, rows), cw, 0); err != nil {
		t.Fatalf("ReplayLog: %v", err)
	}
	if len(cw.rows) != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), len(cw.rows))
	}
	for i, r := range rows {
		if cw.rows[i].Tick != r.Tick || cw.rows[i].EngineSpeed != r.EngineSpeed {
			t.Fatalf("row %d mismatch: %+v vs %+v", i, cw.rows[i], r)
		}
	}
}

func TestReplayLogHonorsSpeed(t *testing.T) {
	rows := []telemetry.FrameRow{
		{Tick: 1, Timestamp: time.Unix(0, 0)},
		{Tick: 2, Timestamp: time.Unix(0, int64(200*time.Millisecond))},
	}
	start := time.Now()
	if err := ReplayLog(context.Background(), encodeFrames(t, rows), &collectWriter{}, 4); err != nil {
		t.Fatalf("ReplayLog: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("expected ~50ms delay at 4x, got %v", elapsed)
	}
}

func TestReplayLogCancel(t *testing.T) {
	rows := []telemetry.FrameRow{
		{Tick: 1, Timestamp: time.Unix(0, 0)},
		{Tick: 2, Timestamp: time.Unix(3600, 0)},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	cw := &collectWriter{}
	err := ReplayLog(ctx, encodeFrames(t, rows), cw, 1)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if len(cw.rows) != 1 {
		t.Fatalf("expected only the first frame, got %d", len(cw.rows))
	}
}

func TestReplayLogBadInput(t *testing.T) {
	if err := ReplayLog(context.Background(), bytes.NewBufferString("{not json"), &collectWriter{}, 0); err == nil {
		t.Fatalf("expected decode error")
	}
	if err := ReplayLogFile(context.Background(), "/nonexistent/frames.jsonl", &collectWriter{}, 0); err == nil {
		t.Fatalf("expected open error")
	}
}
