package export

import (
	"bytes"
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin      = 12.7 // half an inch
	pdfLineHeight  = 4.2
	pdfCellPadding = 1.8
)

type rgb struct{ r, g, b int }

var (
	pdfHeaderFill = rgb{46, 92, 153}
	pdfDayFill    = rgb{233, 239, 248}
	pdfDayText    = rgb{15, 48, 87}
	pdfZebraFill  = rgb{247, 250, 252}
	pdfFilledCell = rgb{232, 245, 233}
	pdfGridLine   = rgb{176, 190, 197}
)

// conflictColumnWeights mirrors the relative widths of the conflicts table.
var conflictColumnWeights = []float64{80, 60, 60, 110, 110, 90, 200, 200}

// PDFExporter renders timetable documents on landscape A3 pages.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render draws the unified grid and, when present, a conflicts page.
func (e *PDFExporter) Render(doc TimetableDocument) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A3", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	available := pageWidth - 2*pdfMargin

	drawTitle(pdf, tr(doc.Title))

	dayWidth := math.Max(25.4, available*0.12)
	slotWidth := available - dayWidth
	if len(doc.TimeSlots) > 0 {
		slotWidth = (available - dayWidth) / float64(len(doc.TimeSlots))
	}
	widths := []float64{dayWidth}
	header := []string{"Day / Time"}
	for _, slot := range doc.TimeSlots {
		widths = append(widths, slotWidth)
		header = append(header, tr(slot))
	}

	t := &pdfTable{pdf: pdf, widths: widths, header: header}
	t.drawHeader()
	for i, day := range doc.Days {
		cells := []string{tr(day)}
		fills := []*rgb{&pdfDayFill}
		for _, slot := range doc.TimeSlots {
			text := doc.Cell(day, slot)
			cells = append(cells, tr(text))
			switch {
			case text != "":
				fills = append(fills, &pdfFilledCell)
			case (i+1)%2 == 0:
				fills = append(fills, &pdfZebraFill)
			default:
				fills = append(fills, nil)
			}
		}
		t.drawRow(cells, fills, true)
	}

	if doc.HasConflicts() {
		pdf.AddPage()
		drawTitle(pdf, "Conflicts")
		total := 0.0
		for _, w := range conflictColumnWeights {
			total += w
		}
		scaled := make([]float64, len(doc.Conflicts.Headers))
		for i := range scaled {
			weight := 100.0
			if i < len(conflictColumnWeights) {
				weight = conflictColumnWeights[i]
			}
			scaled[i] = available * weight / total
		}
		ct := &pdfTable{pdf: pdf, widths: scaled, header: doc.Conflicts.Headers, small: true}
		ct.drawHeader()
		for _, row := range doc.Conflicts.Rows {
			cells := make([]string, len(doc.Conflicts.Headers))
			for i, h := range doc.Conflicts.Headers {
				cells[i] = tr(row[h])
			}
			ct.drawRow(cells, make([]*rgb, len(cells)), false)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(5)
}

type pdfTable struct {
	pdf    *gofpdf.Fpdf
	widths []float64
	header []string
	small  bool
}

func (t *pdfTable) drawHeader() {
	size := 12.0
	if t.small {
		size = 11
	}
	t.pdf.SetFont("Helvetica", "B", size)
	t.pdf.SetTextColor(245, 245, 245)
	fills := make([]*rgb, len(t.header))
	for i := range fills {
		fills[i] = &pdfHeaderFill
	}
	t.drawCells(t.header, fills, size)
}

func (t *pdfTable) drawRow(cells []string, fills []*rgb, firstColumnBold bool) {
	size := 9.0
	if t.small {
		size = 8
	}
	_, pageHeight := t.pdf.GetPageSize()
	height := t.rowHeight(cells, size)
	if t.pdf.GetY()+height > pageHeight-pdfMargin {
		t.pdf.AddPage()
		t.drawHeader()
	}

	x, y := t.pdf.GetXY()
	for i, text := range cells {
		style := ""
		align := "C"
		t.pdf.SetTextColor(0, 0, 0)
		if i == 0 && firstColumnBold {
			style = "B"
			t.pdf.SetTextColor(pdfDayText.r, pdfDayText.g, pdfDayText.b)
		}
		if t.small {
			align = "L"
		}
		t.pdf.SetFont("Helvetica", style, size)
		t.drawCell(x, y, t.widths[i], height, text, fills[i], align)
		x += t.widths[i]
	}
	t.pdf.SetXY(pdfMargin, y+height)
}

func (t *pdfTable) drawCells(cells []string, fills []*rgb, size float64) {
	x, y := t.pdf.GetXY()
	height := t.rowHeight(cells, size) + 2*pdfCellPadding
	for i, text := range cells {
		t.drawCell(x, y, t.widths[i], height, text, fills[i], "C")
		x += t.widths[i]
	}
	t.pdf.SetXY(pdfMargin, y+height)
}

func (t *pdfTable) drawCell(x, y, w, h float64, text string, fill *rgb, align string) {
	style := "D"
	if fill != nil {
		t.pdf.SetFillColor(fill.r, fill.g, fill.b)
		style = "FD"
	}
	t.pdf.SetDrawColor(pdfGridLine.r, pdfGridLine.g, pdfGridLine.b)
	t.pdf.SetLineWidth(0.2)
	t.pdf.Rect(x, y, w, h, style)

	lines := t.pdf.SplitLines([]byte(text), w-2*pdfCellPadding)
	textHeight := float64(len(lines)) * pdfLineHeight
	t.pdf.SetXY(x+pdfCellPadding, y+(h-textHeight)/2)
	t.pdf.MultiCell(w-2*pdfCellPadding, pdfLineHeight, text, "", align, false)
}

func (t *pdfTable) rowHeight(cells []string, size float64) float64 {
	t.pdf.SetFontSize(size)
	maxLines := 1
	for i, text := range cells {
		if text == "" {
			continue
		}
		lines := len(t.pdf.SplitLines([]byte(text), t.widths[i]-2*pdfCellPadding))
		if lines > maxLines {
			maxLines = lines
		}
	}
	return float64(maxLines)*pdfLineHeight + 2*pdfCellPadding
}
