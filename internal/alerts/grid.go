package alerts

// DefaultGridSlots is the 2x6 alert ribbon of the stock cluster.
const DefaultGridSlots = 12

// Slot is one cell of the alert grid.
type Slot struct {
	Alert Definition
	Empty bool
}

// Grid lays active out over a fixed number of slots in display order.
// Unused slots are empty; alerts beyond the last slot are not shown.
func Grid(active []Definition, slots int) []Slot {
	if slots < 0 {
		slots = 0
	}
	grid := make([]Slot, slots)
	for i := range grid {
		if i < len(active) {
			grid[i] = Slot{Alert: active[i]}
			continue
		}
		grid[i] = Slot{Empty: true}
	}
	return grid
}
