package export

import "strings"

// CellKey addresses one (day, time slot) cell of a timetable grid.
type CellKey struct {
	Day  string
	Slot string
}

// TimetableDocument is the renderer-neutral form of a unified weekly grid:
// one row per day, one column per time slot.
type TimetableDocument struct {
	Title     string
	Days      []string
	TimeSlots []string
	Cells     map[CellKey][]string
	// Conflicts is rendered after the grid when it has rows.
	Conflicts Dataset
}

// Cell joins the lines of a cell with a blank line between entries.
func (d TimetableDocument) Cell(day, slot string) string {
	return strings.Join(d.Cells[CellKey{Day: day, Slot: slot}], "\n\n")
}

// HasConflicts reports whether a conflicts section should be rendered.
func (d TimetableDocument) HasConflicts() bool {
	return len(d.Conflicts.Headers) > 0 && len(d.Conflicts.Rows) > 0
}
