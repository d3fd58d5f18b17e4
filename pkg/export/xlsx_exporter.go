package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	timetableSheet = "Unified Timetable"
	conflictsSheet = "Conflicts"
)

// XLSXExporter renders timetable documents into a workbook.
type XLSXExporter struct{}

// NewXLSXExporter constructs a workbook exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

type workbookStyles struct {
	title, header, day, filled, empty int
}

// Render writes a single grid sheet plus a conflicts sheet when present.
func (e *XLSXExporter) Render(doc TimetableDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	if err := f.SetSheetName("Sheet1", timetableSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	styles, err := newWorkbookStyles(f)
	if err != nil {
		return nil, err
	}

	lastCol, err := excelize.ColumnNumberToName(1 + len(doc.TimeSlots))
	if err != nil {
		return nil, fmt.Errorf("resolve last column: %w", err)
	}

	if err := f.SetCellValue(timetableSheet, "A1", doc.Title); err != nil {
		return nil, fmt.Errorf("write title: %w", err)
	}
	if lastCol != "A" {
		if err := f.MergeCell(timetableSheet, "A1", lastCol+"1"); err != nil {
			return nil, fmt.Errorf("merge title: %w", err)
		}
	}
	if err := f.SetCellStyle(timetableSheet, "A1", "A1", styles.title); err != nil {
		return nil, fmt.Errorf("style title: %w", err)
	}

	header := append([]string{"Day / Time"}, doc.TimeSlots...)
	for i, value := range header {
		if err := setStyledCell(f, timetableSheet, i+1, 2, value, styles.header); err != nil {
			return nil, err
		}
	}

	for r, day := range doc.Days {
		row := r + 3
		if err := setStyledCell(f, timetableSheet, 1, row, day, styles.day); err != nil {
			return nil, err
		}
		for c, slot := range doc.TimeSlots {
			text := doc.Cell(day, slot)
			style := styles.empty
			if text != "" {
				style = styles.filled
			}
			if err := setStyledCell(f, timetableSheet, c+2, row, text, style); err != nil {
				return nil, err
			}
		}
		if err := f.SetRowHeight(timetableSheet, row, 90); err != nil {
			return nil, fmt.Errorf("size row %d: %w", row, err)
		}
	}

	if err := f.SetColWidth(timetableSheet, "A", "A", 15); err != nil {
		return nil, fmt.Errorf("size day column: %w", err)
	}
	if len(doc.TimeSlots) > 0 {
		if err := f.SetColWidth(timetableSheet, "B", lastCol, 28); err != nil {
			return nil, fmt.Errorf("size slot columns: %w", err)
		}
	}
	if err := f.SetRowHeight(timetableSheet, 1, 25); err != nil {
		return nil, fmt.Errorf("size title row: %w", err)
	}
	if err := f.SetRowHeight(timetableSheet, 2, 30); err != nil {
		return nil, fmt.Errorf("size header row: %w", err)
	}

	if doc.HasConflicts() {
		if err := writeConflictSheet(f, doc.Conflicts, styles); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeConflictSheet(f *excelize.File, data Dataset, styles workbookStyles) error {
	if _, err := f.NewSheet(conflictsSheet); err != nil {
		return fmt.Errorf("create conflicts sheet: %w", err)
	}
	for i, h := range data.Headers {
		if err := setStyledCell(f, conflictsSheet, i+1, 1, h, styles.header); err != nil {
			return err
		}
	}
	for r, row := range data.Rows {
		for i, h := range data.Headers {
			if err := setStyledCell(f, conflictsSheet, i+1, r+2, row[h], styles.empty); err != nil {
				return err
			}
		}
	}
	lastCol, err := excelize.ColumnNumberToName(len(data.Headers))
	if err != nil {
		return fmt.Errorf("resolve conflicts column: %w", err)
	}
	if err := f.SetColWidth(conflictsSheet, "A", lastCol, 22); err != nil {
		return fmt.Errorf("size conflicts columns: %w", err)
	}
	return nil
}

func setStyledCell(f *excelize.File, sheet string, col, row int, value string, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("resolve cell %d,%d: %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("write cell %s: %w", cell, err)
	}
	if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
		return fmt.Errorf("style cell %s: %w", cell, err)
	}
	return nil
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	centered := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}
	defs := []*excelize.Style{
		{
			Font:      &excelize.Font{Bold: true, Size: 14, Color: "4472C4"},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		},
		{
			Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
			Alignment: centered,
			Border:    border,
		},
		{
			Font:      &excelize.Font{Bold: true, Size: 10},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
			Alignment: centered,
			Border:    border,
		},
		{
			Font:      &excelize.Font{Size: 9},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E7F3E7"}},
			Alignment: centered,
			Border:    border,
		},
		{
			Alignment: centered,
			Border:    border,
		},
	}
	ids := make([]int, len(defs))
	for i, def := range defs {
		id, err := f.NewStyle(def)
		if err != nil {
			return workbookStyles{}, fmt.Errorf("create workbook style: %w", err)
		}
		ids[i] = id
	}
	return workbookStyles{title: ids[0], header: ids[1], day: ids[2], filled: ids[3], empty: ids[4]}, nil
}
