package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// FormatDate renders t as e.g. "THU, OCT 15".
func FormatDate(t time.Time) string {
	return strings.ToUpper(t.Format("Mon, Jan 2"))
}

// FormatClock renders t as 24-hour "15:04".
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// HeaderInfo holds the right-hand indicators of the header.
type HeaderInfo struct {
	SupplyVoltage float64
	Indicators    []string
	Admin         bool
	Replay        bool
}

// RenderHeader renders the top bar with date, clock and indicators.
func RenderHeader(width int, now time.Time, info HeaderInfo) string {
	left := StyleValue.Render(FormatDate(now)) + "  " + StyleHighlight.Render(FormatClock(now))

	items := []string{fmt.Sprintf("%.1fV", info.SupplyVoltage)}
	items = append(items, info.Indicators...)
	right := StyleHeaderItem.Render(strings.Join(items, "  "))
	if info.Replay {
		right = StyleValueWarning.Render("REPLAY") + "  " + right
	}
	if info.Admin {
		right = StyleAdminOn.Render("ADMIN") + "  " + right
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right)-2, 0)
	return StyleHeader.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
