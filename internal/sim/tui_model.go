package sim

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"hmidash/internal/alerts"
	"hmidash/internal/config"
	"hmidash/internal/telemetry"
	"hmidash/internal/ui"
)

const (
	maxLogLines         = 1000
	maxSectionHeightPct = 0.2
	barWidth            = 14
	minInstrumentHeight = 8
	defaultWidth        = 80
	defaultHeight       = 24
)

var headerIndicators = []string{"4G", "GPS"}

// clockMsg drives the header clock independently of simulator frames.
type clockMsg time.Time

func clockTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return clockMsg(t) })
}

type tuiModel struct {
	cfg           *config.DashboardConfig
	frame         telemetry.FrameRow
	haveFrame     bool
	now           time.Time
	clockInterval time.Duration
	table         table.Model
	vp            viewport.Model
	logs          []string
	coolant       ui.BarSpec
	fuel          ui.BarSpec
	gauge         ui.GaugeSpec
	admin         bool
	replay        bool
	autoscroll    bool
	showConfig    bool
	help          bool
	width         int
	height        int
}

func newTUIModel(cfg *config.DashboardConfig, replay bool) tuiModel {
	cols := []table.Column{
		{Title: "Config", Width: 22},
		{Title: "Value", Width: 10},
		{Title: "Config", Width: 22},
		{Title: "Value", Width: 10},
	}
	cr := configRows(cfg)
	var rows []table.Row
	for i := 0; i < len(cr); i += 2 {
		row := table.Row{cr[i][0], cr[i][1], "", ""}
		if i+1 < len(cr) {
			row[2], row[3] = cr[i+1][0], cr[i+1][1]
		}
		rows = append(rows, row)
	}
	t := table.New(table.WithColumns(cols), table.WithRows(rows), table.WithHeight(len(rows)+1), table.WithWidth(defaultWidth))

	clock := cfg.ClockInterval
	if clock <= 0 {
		clock = time.Second
	}
	g := ui.DefaultGauge()
	g.Max = cfg.Engine.MaxRPM
	g.Redline = cfg.Engine.RedlineRPM

	m := tuiModel{
		cfg:           cfg,
		frame:         telemetry.FrameRow{Snapshot: cfg.InitialSnapshot(), AlertState: telemetry.AlertStateDormant},
		now:           time.Now(),
		clockInterval: clock,
		table:         t,
		vp:            viewport.New(defaultWidth, 1),
		coolant: ui.BarSpec{
			Label: "COOLANT TEMP", Unit: "°C",
			Min: cfg.Coolant.Min, Max: cfg.Coolant.Max,
			HighWarning: ui.Threshold(cfg.Coolant.HighWarning),
		},
		fuel: ui.BarSpec{
			Label: "FUEL LEVEL", Unit: "%",
			Min: cfg.Fuel.Min, Max: cfg.Fuel.Max,
			LowWarning: ui.Threshold(cfg.Fuel.LowWarning),
		},
		gauge:      g,
		replay:     replay,
		autoscroll: true,
		width:      defaultWidth,
		height:     defaultHeight,
	}
	m.layout()
	m.refreshViewport()
	return m
}

func (m tuiModel) Init() tea.Cmd { return clockTick(m.clockInterval) }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		m.layout()
		m.refreshViewport()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "s":
			m.autoscroll = !m.autoscroll
			if m.autoscroll {
				m.vp.GotoBottom()
			}
			return m, nil
		case "c":
			m.showConfig = !m.showConfig
			m.layout()
			return m, nil
		case "h", "?":
			m.help = !m.help
			return m, nil
		}
		if !m.autoscroll {
			switch msg.String() {
			case "j", "down":
				m.vp.LineDown(1)
			case "k", "up":
				m.vp.LineUp(1)
			case "pgdown", "ctrl+n":
				m.vp.LineDown(10)
			case "pgup", "ctrl+p":
				m.vp.LineUp(10)
			default:
				var cmd tea.Cmd
				m.vp, cmd = m.vp.Update(msg)
				return m, cmd
			}
		}
		return m, nil
	case clockMsg:
		m.now = time.Time(msg)
		return m, clockTick(m.clockInterval)
	case frameMsg:
		m.frame = msg.FrameRow
		m.haveFrame = true
	case alertEventMsg:
		m.logs = append(m.logs, msg.line)
		if len(m.logs) > maxLogLines {
			m.logs = m.logs[len(m.logs)-maxLogLines:]
		}
		m.layout()
		m.refreshViewport()
	case adminMsg:
		m.admin = msg.active
	}
	return m, nil
}

// layout sizes the event log; the instruments take what remains.
func (m *tuiModel) layout() {
	m.vp.Width = m.width
	lines := min(max(len(m.logs), 1), m.maxSectionLines())
	m.vp.Height = lines
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m *tuiModel) refreshViewport() {
	content := "none"
	if len(m.logs) > 0 {
		content = strings.Join(m.logs, "\n")
	}
	m.vp.SetContent(content)
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m tuiModel) maxSectionLines() int {
	return max(int(float64(m.height)*maxSectionHeightPct), 1)
}

func (m tuiModel) gridRows() int {
	slots := m.cfg.Alerts.GridSlots
	return (slots + ui.AlertGridColumns - 1) / ui.AlertGridColumns
}

// instrumentHeight is the room left for the bars and gauge.
func (m tuiModel) instrumentHeight() int {
	// header, two readout rows of two lines, divider, log title and footer
	fixed := 1 + 2 + 2 + m.gridRows() + 1 + 1 + m.vp.Height + 1
	if m.showConfig {
		fixed += lipgloss.Height(m.table.View()) + 1
	}
	return max(m.height-fixed, minInstrumentHeight)
}

func (m tuiModel) View() string {
	if m.help {
		return m.renderHelp()
	}
	r := m.cfg.Readouts
	divider := strings.Repeat("─", m.width)
	header := ui.RenderHeader(m.width, m.now, ui.HeaderInfo{
		SupplyVoltage: r.SupplyVoltage,
		Indicators:    headerIndicators,
		Admin:         m.admin,
		Replay:        m.replay,
	})
	grid := alerts.Grid(alerts.FromRows(m.frame.Alerts), m.cfg.Alerts.GridSlots)
	sections := []string{
		header,
		m.renderInstruments(),
		ui.RenderReadouts(ui.SecondaryReadouts(r.AdBluePct, r.HydraulicBar), m.width),
		ui.RenderReadouts(ui.StatusReadouts(r.Hours, r.Gear, r.SpeedKmh), m.width),
		ui.RenderAlertGrid(grid, m.width),
	}
	if m.showConfig {
		sections = append(sections, divider, m.table.View())
	}
	sections = append(sections, divider, "Alert Events:", m.vp.View(), m.renderFooter())
	return strings.Join(sections, "\n")
}

func (m tuiModel) renderInstruments() string {
	h := m.instrumentHeight()
	snap := m.frame.Snapshot
	gaugeW := max(m.width-2*barWidth-2, 16)
	return lipgloss.JoinHorizontal(lipgloss.Center,
		ui.RenderBar(m.coolant, snap.CoolantTemp, barWidth, h),
		" ",
		ui.RenderGauge(m.gauge, snap.EngineSpeed, gaugeW, h),
		" ",
		ui.RenderBar(m.fuel, snap.FuelLevel, barWidth, h),
	)
}

func (m tuiModel) renderFooter() string {
	session := m.frame.SessionID
	if len(session) > 8 {
		session = session[:8]
	}
	status := "waiting for first frame"
	if m.haveFrame {
		status = fmt.Sprintf("tick %d · session %s · alerts %s %d/%d",
			m.frame.Tick, session, m.frame.AlertState, len(m.frame.Alerts), m.cfg.Alerts.MaxActive)
	}
	scroll := "on"
	if !m.autoscroll {
		scroll = "off"
	}
	return ui.StyleHelp.Render(fmt.Sprintf("%s · autoscroll %s · q quit · h help", status, scroll))
}

func (m tuiModel) renderHelp() string {
	lines := []string{
		"Key Bindings:",
		" q  quit",
		" s  toggle auto-scroll of the alert event log",
		" c  toggle configuration table",
		" h/? toggle this help view",
		"",
		"When auto-scroll is disabled:",
		" j/k or up/down    scroll one line",
		" pgdown/pgup       scroll a page",
		"",
		"Alerts stay dormant for the first " + m.cfg.Alerts.WarmUp.String() + " of a session, then toggle at random up to " +
			fmt.Sprintf("%d", m.cfg.Alerts.MaxActive) + " at a time.",
	}
	return wordwrap.String(strings.Join(lines, "\n"), max(m.width, 20))
}
