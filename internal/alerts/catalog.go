// Package alerts implements the dashboard warning catalog and the state
// machine that decides which warnings are lit.
package alerts

import (
	"fmt"

	"hmidash/internal/telemetry"
)

// Severity classifies how an alert is drawn.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	return s == SeverityCritical || s == SeverityWarning
}

// Definition is one entry of the alert catalog.
type Definition struct {
	ID       string   `yaml:"id"`
	Label    string   `yaml:"label"`
	Severity Severity `yaml:"severity"`
}

// Row converts d to its wire form.
func (d Definition) Row() telemetry.AlertRow {
	return telemetry.AlertRow{ID: d.ID, Label: d.Label, Severity: string(d.Severity)}
}

// DefaultCatalog returns the six ISO 7000 style warnings of the stock cluster.
func DefaultCatalog() []Definition {
	return []Definition{
		{ID: "brake", Label: "BRAKE FAILURE", Severity: SeverityCritical},
		{ID: "stop", Label: "STOP ENGINE", Severity: SeverityCritical},
		{ID: "engine", Label: "CHECK ENGINE", Severity: SeverityWarning},
		{ID: "fuel", Label: "LOW FUEL", Severity: SeverityWarning},
		{ID: "air", Label: "AIR FILTER CLOG", Severity: SeverityWarning},
		{ID: "battery", Label: "BATTERY CHARGE", Severity: SeverityWarning},
	}
}

// ValidateCatalog checks that ids are unique and non-empty and severities known.
func ValidateCatalog(catalog []Definition) error {
	if len(catalog) == 0 {
		return fmt.Errorf("alert catalog is empty")
	}
	seen := make(map[string]struct{}, len(catalog))
	for i, d := range catalog {
		if d.ID == "" {
			return fmt.Errorf("alert %d: empty id", i)
		}
		if _, dup := seen[d.ID]; dup {
			return fmt.Errorf("alert %q: duplicate id", d.ID)
		}
		if !d.Severity.Valid() {
			return fmt.Errorf("alert %q: unknown severity %q", d.ID, d.Severity)
		}
		seen[d.ID] = struct{}{}
	}
	return nil
}

// Rows converts an active set to wire rows, preserving order.
func Rows(active []Definition) []telemetry.AlertRow {
	rows := make([]telemetry.AlertRow, len(active))
	for i, d := range active {
		rows[i] = d.Row()
	}
	return rows
}

// FromRows rebuilds definitions from wire rows.
func FromRows(rows []telemetry.AlertRow) []Definition {
	defs := make([]Definition, len(rows))
	for i, r := range rows {
		defs[i] = Definition{ID: r.ID, Label: r.Label, Severity: Severity(r.Severity)}
	}
	return defs
}
