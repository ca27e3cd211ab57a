package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Readout is a labelled value in the status cluster.
type Readout struct {
	Label     string
	Value     string
	Unit      string
	Highlight bool
}

// StatusReadouts builds the lower cluster: hour meter, gear and road speed.
func StatusReadouts(hours float64, gear string, speedKmh float64) []Readout {
	return []Readout{
		{Label: "HMR", Value: fmt.Sprintf("%.1f", hours)},
		{Label: "GEAR", Value: gear, Highlight: true},
		{Label: "SPEED", Value: fmt.Sprintf("%.0f", speedKmh), Unit: "km/h"},
	}
}

// SecondaryReadouts builds the data shown below the gauge.
func SecondaryReadouts(adBluePct, hydraulicBar float64) []Readout {
	return []Readout{
		{Label: "ADBLUE", Value: fmt.Sprintf("%.0f%%", adBluePct)},
		{Label: "HYDRAULIC PRESS", Value: fmt.Sprintf("%.0f", hydraulicBar), Unit: "BAR"},
	}
}

// RenderReadouts lays readouts out side by side, centered within width.
func RenderReadouts(items []Readout, width int) string {
	blocks := make([]string, 0, len(items)*2)
	for i, it := range items {
		if i > 0 {
			blocks = append(blocks, StyleSegmentOff.Render("  │  "))
		}
		val := StyleValue
		if it.Highlight {
			val = StyleHighlight
		}
		v := val.Render(it.Value)
		if it.Unit != "" {
			v += " " + StyleLabel.Render(it.Unit)
		}
		blocks = append(blocks, lipgloss.JoinVertical(lipgloss.Center, StyleLabel.Render(it.Label), v))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, blocks...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
}

// PlainReadouts renders readouts on one line without styling, e.g. for logs.
func PlainReadouts(items []Readout) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = strings.TrimSpace(fmt.Sprintf("%s %s %s", it.Label, it.Value, it.Unit))
	}
	return strings.Join(parts, " | ")
}
