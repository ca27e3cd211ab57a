package ui

import "github.com/charmbracelet/lipgloss"

// Dark cockpit palette
var (
	ColorStatus   = lipgloss.Color("#00E676")
	ColorAlert    = lipgloss.Color("#FF1744")
	ColorWarning  = lipgloss.Color("#FFC400")
	ColorInactive = lipgloss.Color("#37474F")
	ColorData     = lipgloss.Color("#ECEFF1")
	ColorDim      = lipgloss.Color("#78909C")
	ColorPanel    = lipgloss.Color("#101418")
	ColorBlack    = lipgloss.Color("#000000")
)

// Pre-built styles
var (
	StyleHeader = lipgloss.NewStyle().
			Background(ColorPanel).
			Foreground(ColorData).
			Bold(true).
			Padding(0, 1)

	StyleHeaderItem = lipgloss.NewStyle().
			Foreground(ColorDim)

	StyleAdminOn = lipgloss.NewStyle().
			Foreground(ColorStatus).
			Bold(true)

	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorDim).
			Bold(true)

	StyleValue = lipgloss.NewStyle().
			Foreground(ColorData).
			Bold(true)

	StyleValueWarning = lipgloss.NewStyle().
				Foreground(ColorAlert).
				Bold(true)

	StyleHighlight = lipgloss.NewStyle().
			Foreground(ColorStatus).
			Bold(true)

	StyleSegmentOn = lipgloss.NewStyle().
			Foreground(ColorStatus)

	StyleSegmentWarn = lipgloss.NewStyle().
				Foreground(ColorAlert)

	StyleSegmentOff = lipgloss.NewStyle().
			Foreground(ColorInactive)

	StyleGaugeTrack = lipgloss.NewStyle().
			Foreground(ColorInactive)

	StyleGaugeActive = lipgloss.NewStyle().
				Foreground(ColorStatus).
				Bold(true)

	StyleGaugeRedline = lipgloss.NewStyle().
				Foreground(ColorAlert)

	StyleGaugeLabel = lipgloss.NewStyle().
			Foreground(ColorData)

	StyleGaugeHub = lipgloss.NewStyle().
			Foreground(ColorData).
			Bold(true)

	StyleAlertCritical = lipgloss.NewStyle().
				Background(ColorAlert).
				Foreground(ColorBlack).
				Bold(true).
				Align(lipgloss.Center)

	StyleAlertWarning = lipgloss.NewStyle().
				Background(ColorWarning).
				Foreground(ColorBlack).
				Bold(true).
				Align(lipgloss.Center)

	StyleAlertEmpty = lipgloss.NewStyle().
			Background(ColorPanel).
			Foreground(ColorInactive).
			Align(lipgloss.Center)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorDim)
)
