package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"hmidash/internal/alerts"
)

// AlertGridColumns is the number of slots per ribbon row.
const AlertGridColumns = 6

// RenderAlertGrid draws slots as rows of AlertGridColumns cells within width.
func RenderAlertGrid(slots []alerts.Slot, width int) string {
	if len(slots) == 0 {
		return ""
	}
	cols := min(AlertGridColumns, len(slots))
	cellW := max(width/cols-1, 3)

	var rows []string
	for start := 0; start < len(slots); start += cols {
		end := min(start+cols, len(slots))
		cells := make([]string, 0, (end-start)*2)
		for i, s := range slots[start:end] {
			if i > 0 {
				cells = append(cells, " ")
			}
			cells = append(cells, renderSlot(s, cellW))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderSlot(s alerts.Slot, w int) string {
	if s.Empty {
		return StyleAlertEmpty.Width(w).Render("")
	}
	label := s.Alert.Label
	if lipgloss.Width(label) > w {
		label = truncate.StringWithTail(label, uint(w), "…")
	}
	st := StyleAlertWarning
	if s.Alert.Severity == alerts.SeverityCritical {
		st = StyleAlertCritical
	}
	return st.Width(w).Render(label)
}
