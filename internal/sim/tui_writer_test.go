package sim

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hmidash/internal/config"
	"hmidash/internal/telemetry"
)

type fakeProgram struct{ msgs []tea.Msg }

func (f *fakeProgram) Send(msg tea.Msg) { f.msgs = append(f.msgs, msg) }

func TestTUIWriterMessages(t *testing.T) {
	p := &fakeProgram{}
	w := &TUIWriter{program: p}
	if err := w.WriteFrame(telemetry.FrameRow{Tick: 1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok := p.msgs[0].(frameMsg); !ok {
		t.Fatalf("expected frameMsg, got %T", p.msgs[0])
	}
	ev := telemetry.AlertEventRow{EventType: telemetry.AlertEventAdded, Alert: telemetry.AlertRow{Label: "LOW FUEL"}, Timestamp: time.Unix(0, 0).UTC()}
	if err := w.WriteAlertEvent(ev); err != nil {
		t.Fatalf("event: %v", err)
	}
	msg, ok := p.msgs[1].(alertEventMsg)
	if !ok || !strings.Contains(msg.line, "LOW FUEL") {
		t.Fatalf("expected alertEventMsg, got %#v", p.msgs[1])
	}
	w.SetAdminStatus(true)
	if _, ok := p.msgs[2].(adminMsg); !ok {
		t.Fatalf("expected adminMsg, got %T", p.msgs[2])
	}
}

func TestClockTicksIndependently(t *testing.T) {
	m := newTUIModel(config.Default(), false)
	if m.Init() == nil {
		t.Fatalf("expected clock command from Init")
	}
	at := time.Date(2026, 10, 15, 9, 41, 0, 0, time.Local)
	mi, cmd := m.Update(clockMsg(at))
	m = mi.(tuiModel)
	if !m.now.Equal(at) || cmd == nil {
		t.Fatalf("clock not advanced or not rescheduled")
	}
	mi, _ = m.Update(frameMsg{telemetry.FrameRow{Tick: 5}})
	m = mi.(tuiModel)
	if !m.now.Equal(at) {
		t.Fatalf("frame changed the header clock")
	}
	if !strings.Contains(m.View(), "09:41") {
		t.Fatalf("header clock not rendered")
	}
}

func TestViewRendersFrame(t *testing.T) {
	m := newTUIModel(config.Default(), false)
	mi, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = mi.(tuiModel)
	mi, _ = m.Update(frameMsg{telemetry.FrameRow{
		SessionID:  "0123456789abcdef",
		Tick:       42,
		Snapshot:   telemetry.Snapshot{EngineSpeed: 1249.7, CoolantTemp: 111.2, FuelLevel: 14.6},
		AlertState: telemetry.AlertStateActive,
		Alerts:     []telemetry.AlertRow{{ID: "brake", Label: "BRAKE FAILURE", Severity: "critical"}},
	}})
	m = mi.(tuiModel)
	view := m.View()
	for _, want := range []string{"1250", "111°C", "15%", "BRAKE FAILURE", "tick 42", "session 01234567", "HYDRAULIC PRESS", "GEAR"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	mi, _ = m.Update(adminMsg{active: true})
	m = mi.(tuiModel)
	if !strings.Contains(m.View(), "ADMIN") {
		t.Errorf("admin indicator not shown")
	}
}

func TestToggles(t *testing.T) {
	m := newTUIModel(config.Default(), true)
	key := func(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }
	if !strings.Contains(m.View(), "REPLAY") {
		t.Fatalf("replay marker missing")
	}
	mi, _ := m.Update(key('c'))
	m = mi.(tuiModel)
	if !m.showConfig || !strings.Contains(m.View(), "Toggle Probability") {
		t.Fatalf("config table not shown")
	}
	mi, _ = m.Update(key('h'))
	m = mi.(tuiModel)
	if !strings.Contains(m.View(), "Key Bindings:") {
		t.Fatalf("help not shown")
	}
	_, cmd := m.Update(key('q'))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestScrollToggle(t *testing.T) {
	m := newTUIModel(config.Default(), false)
	event := func(i int) alertEventMsg { return alertEventMsg{line: strings.Repeat("x", i)} }
	for i := 1; i <= 6; i++ {
		mi, _ := m.Update(event(i))
		m = mi.(tuiModel)
	}
	// 24 rows leave room for four log lines
	if m.vp.Height != 4 {
		t.Fatalf("expected viewport height 4, got %d", m.vp.Height)
	}
	if m.vp.YOffset != 2 {
		t.Fatalf("expected YOffset 2, got %d", m.vp.YOffset)
	}
	mi, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = mi.(tuiModel)
	if m.autoscroll {
		t.Fatalf("autoscroll should be off")
	}
	mi, _ = m.Update(event(7))
	m = mi.(tuiModel)
	if m.vp.YOffset != 2 {
		t.Fatalf("expected YOffset unchanged, got %d", m.vp.YOffset)
	}
	mi, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = mi.(tuiModel)
	if m.vp.YOffset != 1 {
		t.Fatalf("expected YOffset 1 after scrolling up, got %d", m.vp.YOffset)
	}
	mi, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = mi.(tuiModel)
	expected := len(m.logs) - m.vp.Height
	if !m.autoscroll || m.vp.YOffset != expected {
		t.Fatalf("expected autoscroll back at YOffset %d, got %d", expected, m.vp.YOffset)
	}
}
