package main

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"hmidash/internal/config"
	"hmidash/internal/metrics"
	"hmidash/internal/telemetry"
)

func TestResolveMode(t *testing.T) {
	cases := []struct {
		mode string
		tty  bool
		want string
	}{
		{modeAuto, true, modeTUI},
		{modeAuto, false, modeJSON},
		{"", false, modeJSON},
		{modeColor, false, modeColor},
		{modeTUI, false, modeTUI},
	}
	for _, c := range cases {
		got, err := resolveMode(c.mode, c.tty)
		if err != nil || got != c.want {
			t.Errorf("resolveMode(%q,%v) = %q, %v; want %q", c.mode, c.tty, got, err, c.want)
		}
	}
	if _, err := resolveMode("svg", true); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestNewWritersRecording(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.jsonl")
	rec := metrics.NewRecorder()
	mw, err := newWriters(config.Default(), modeJSON, path, false, rec)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	row := telemetry.FrameRow{SessionID: "s1", Tick: 1, Snapshot: telemetry.Snapshot{EngineSpeed: 125}, Timestamp: time.Now()}
	if err := mw.WriteFrame(row); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	ev := telemetry.AlertEventRow{SessionID: "s1", Tick: 1, EventType: telemetry.AlertEventAdded, Timestamp: time.Now()}
	if err := mw.WriteAlertEvent(ev); err != nil {
		t.Fatalf("write event failed: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	for _, p := range []string{path, path + ".alerts"} {
		f, err := os.Open(p)
		if err != nil {
			t.Fatalf("open %s: %v", p, err)
		}
		sc := bufio.NewScanner(f)
		lines := 0
		for sc.Scan() {
			lines++
		}
		f.Close()
		if lines != 1 {
			t.Fatalf("expected one line in %s, got %d", p, lines)
		}
	}
	if got := testutil.ToFloat64(rec.EngineSpeed); got != 125 {
		t.Fatalf("metrics not fed, engine speed %v", got)
	}
}

func TestNewWritersErrors(t *testing.T) {
	if _, err := newWriters(config.Default(), "svg", "", false, nil); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	bad := filepath.Join(t.TempDir(), "missing", "session.jsonl")
	if _, err := newWriters(config.Default(), modeColor, bad, false, nil); err == nil {
		t.Fatalf("expected error for unwritable recording path")
	}
}

func TestOpenLogger(t *testing.T) {
	if _, _, err := openLogger(modeJSON, "", "loud"); err == nil {
		t.Fatalf("expected error for bad level")
	}
	path := filepath.Join(t.TempDir(), "hmidash.log")
	logger, closeLog, err := openLogger(modeTUI, path, "debug")
	if err != nil {
		t.Fatalf("openLogger: %v", err)
	}
	logger.Info("hello")
	if err := closeLog(); err != nil {
		t.Fatalf("close log: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		t.Fatalf("expected log file content, err=%v", err)
	}
}
