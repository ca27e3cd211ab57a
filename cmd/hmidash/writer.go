package main

import (
	"fmt"
	"log/slog"

	"hmidash/internal/config"
	"hmidash/internal/logging"
	"hmidash/internal/metrics"
	"hmidash/internal/sim"
)

const (
	modeAuto  = "auto"
	modeTUI   = "tui"
	modeColor = "color"
	modeJSON  = "json"
)

// sink is a display writer taking both frames and alert events.
type sink interface {
	sim.FrameWriter
	sim.AlertEventWriter
}

// resolveMode maps auto to the TUI on a terminal and JSON otherwise.
func resolveMode(mode string, isTerminal bool) (string, error) {
	switch mode {
	case modeAuto, "":
		if isTerminal {
			return modeTUI, nil
		}
		return modeJSON, nil
	case modeTUI, modeColor, modeJSON:
		return mode, nil
	}
	return "", fmt.Errorf("unknown mode %q (want auto, tui, color or json)", mode)
}

// newWriters sets up the display sink for mode plus the optional JSONL
// recording and metrics recorder. Closing the result closes every sink.
func newWriters(cfg *config.DashboardConfig, mode, record string, replay bool, rec *metrics.Recorder) (*sim.MultiWriter, error) {
	display, err := baseWriter(cfg, mode, replay)
	if err != nil {
		return nil, err
	}
	fws := []sim.FrameWriter{display}
	ews := []sim.AlertEventWriter{display}
	if rec != nil {
		fws = append(fws, rec)
		ews = append(ews, rec)
	}
	if record != "" {
		fw, err := sim.NewFileWriter(record, record+".alerts")
		if err != nil {
			if c, ok := display.(interface{ Close() error }); ok {
				c.Close()
			}
			return nil, fmt.Errorf("create recording: %w", err)
		}
		fws = append(fws, fw)
		ews = append(ews, fw)
	}
	return sim.NewMultiWriter(fws, ews), nil
}

// baseWriter chooses the display sink for mode.
func baseWriter(cfg *config.DashboardConfig, mode string, replay bool) (sink, error) {
	switch mode {
	case modeTUI:
		return sim.NewTUIWriter(cfg, replay), nil
	case modeColor:
		return sim.NewColorStdoutWriter(cfg), nil
	case modeJSON:
		return sim.NewJSONStdoutWriter(), nil
	}
	return nil, fmt.Errorf("unknown mode %q", mode)
}

// openLogger routes logs to path, or stderr, or nowhere when the TUI owns the terminal.
func openLogger(mode, path, level string) (*slog.Logger, func() error, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if path == "" && mode == modeTUI {
		return logging.Discard(), func() error { return nil }, nil
	}
	return logging.Open(path, lvl)
}
