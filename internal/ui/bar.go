package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultSegments is the number of blocks in a vertical bar.
const DefaultSegments = 20

// BarSpec describes a bounded vertical bar such as coolant or fuel.
type BarSpec struct {
	Label       string
	Unit        string
	Min         float64
	Max         float64
	LowWarning  *float64 // warn at or below
	HighWarning *float64 // warn at or above
}

// Threshold returns a pointer to v for use in BarSpec.
func Threshold(v float64) *float64 { return &v }

// FillRatio maps value onto [0, 1] across [lo, hi].
func FillRatio(value, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	r := (value - lo) / (hi - lo)
	return math.Min(math.Max(r, 0), 1)
}

// ActiveSegments returns how many of n segments a ratio lights.
func ActiveSegments(ratio float64, n int) int {
	return int(math.Round(ratio * float64(n)))
}

// Warning reports whether value crosses one of the thresholds.
func (b BarSpec) Warning(value float64) bool {
	if b.LowWarning != nil && value <= *b.LowWarning {
		return true
	}
	if b.HighWarning != nil && value >= *b.HighWarning {
		return true
	}
	return false
}

// RenderBar draws the bar bottom-up within height rows. The displayed value
// is rounded to a whole number before thresholds are applied.
func RenderBar(b BarSpec, value float64, width, height int) string {
	shown := math.Round(value)
	warn := b.Warning(shown)

	segments := DefaultSegments
	if height-2 < segments {
		segments = max(height-2, 1)
	}
	active := ActiveSegments(FillRatio(shown, b.Min, b.Max), segments)

	on := StyleSegmentOn
	if warn {
		on = StyleSegmentWarn
	}
	blockW := max(width-2, 1)
	block := strings.Repeat("█", blockW)

	rows := make([]string, 0, segments+2)
	rows = append(rows, StyleLabel.Render(b.Label))
	for i := segments - 1; i >= 0; i-- {
		if i < active {
			rows = append(rows, on.Render(block))
		} else {
			rows = append(rows, StyleSegmentOff.Render(block))
		}
	}
	valueStyle := StyleValue
	if warn {
		valueStyle = StyleValueWarning
	}
	rows = append(rows, valueStyle.Render(fmt.Sprintf("%.0f%s", shown, b.Unit)))

	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(
		lipgloss.JoinVertical(lipgloss.Center, rows...))
}
