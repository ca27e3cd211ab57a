package sim

import (
	"os"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"hmidash/internal/config"
	"hmidash/internal/telemetry"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// frameMsg carries the latest frame to the model.
type frameMsg struct{ telemetry.FrameRow }

// alertEventMsg carries an alert transition and its log line.
type alertEventMsg struct {
	line string
	row  telemetry.AlertEventRow
}

// adminMsg reports admin API status.
type adminMsg struct{ active bool }

// TUIWriter renders frames using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter. replay
// marks the header so recorded sessions are not mistaken for live ones.
func NewTUIWriter(cfg *config.DashboardConfig, replay bool) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	m := newTUIModel(cfg, replay)
	p := tea.NewProgram(m, tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		// Quitting from the keyboard stops the whole process.
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// WriteFrame implements FrameWriter.
func (w *TUIWriter) WriteFrame(row telemetry.FrameRow) error {
	w.program.Send(frameMsg{row})
	return nil
}

// WriteAlertEvent implements AlertEventWriter.
func (w *TUIWriter) WriteAlertEvent(row telemetry.AlertEventRow) error {
	w.program.Send(alertEventMsg{line: alertEventLine(row), row: row})
	return nil
}

// SetAdminStatus updates the admin indicator in the header.
func (w *TUIWriter) SetAdminStatus(active bool) {
	w.program.Send(adminMsg{active: active})
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}
