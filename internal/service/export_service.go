package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
	"github.com/noah-isme/sma-timetable-api/pkg/export"
)

// ExportFormat names a downloadable rendering.
type ExportFormat string

const (
	ExportFormatExcel ExportFormat = "excel"
	ExportFormatPDF   ExportFormat = "pdf"
	ExportFormatCSV   ExportFormat = "csv"
)

var exportContentTypes = map[ExportFormat]string{
	ExportFormatExcel: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	ExportFormatPDF:   "application/pdf",
	ExportFormatCSV:   "text/csv; charset=utf-8",
}

var exportExtensions = map[ExportFormat]string{
	ExportFormatExcel: "xlsx",
	ExportFormatPDF:   "pdf",
	ExportFormatCSV:   "csv",
}

// ParseExportFormat accepts the format names used in routes and CLI flags.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "excel", "xlsx":
		return ExportFormatExcel, nil
	case "pdf":
		return ExportFormatPDF, nil
	case "csv":
		return ExportFormatCSV, nil
	}
	return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", raw))
}

type recordReader interface {
	Record(ctx context.Context, sessionID string) (*models.TimetableRecord, error)
}

type gridRenderer interface {
	Render(doc export.TimetableDocument) ([]byte, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	Title string
}

// ExportedFile is a rendered document ready to be streamed.
type ExportedFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders stored timetables as workbooks, PDFs and CSV files.
type ExportService struct {
	records recordReader
	xlsx    gridRenderer
	pdf     gridRenderer
	csv     csvRenderer
	cfg     ExportConfig
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers use the defaults.
func NewExportService(records recordReader, cfg ExportConfig, logger *zap.Logger, xlsx, pdf gridRenderer, csv csvRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Title == "" {
		cfg.Title = "Unified Weekly Timetable"
	}
	if xlsx == nil {
		xlsx = export.NewXLSXExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	return &ExportService{records: records, xlsx: xlsx, pdf: pdf, csv: csv, cfg: cfg, logger: logger, now: time.Now}
}

// Export loads the timetable of a session and renders it.
func (s *ExportService) Export(ctx context.Context, sessionID string, format ExportFormat) (*ExportedFile, error) {
	if s.records == nil {
		return nil, appErrors.ErrSessionNotFound
	}
	record, err := s.records.Record(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	file, err := s.Render(record, format)
	if err != nil {
		return nil, err
	}
	s.logger.Info("timetable exported",
		zap.String("session_id", sessionID),
		zap.String("format", string(format)),
		zap.Int("bytes", len(file.Payload)),
	)
	return file, nil
}

// Render produces a document from a record without touching storage.
func (s *ExportService) Render(record *models.TimetableRecord, format ExportFormat) (*ExportedFile, error) {
	contentType, ok := exportContentTypes[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	var (
		payload []byte
		err     error
	)
	switch format {
	case ExportFormatExcel:
		payload, err = s.xlsx.Render(BuildTimetableDocument(s.cfg.Title, record))
	case ExportFormatPDF:
		payload, err = s.pdf.Render(BuildTimetableDocument(s.cfg.Title, record))
	case ExportFormatCSV:
		payload, err = s.csv.Render(EntryDataset(record.Timetable))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportedFile{
		Filename:    fmt.Sprintf("timetable_%s.%s", s.now().Format("20060102_150405"), exportExtensions[format]),
		ContentType: contentType,
		Payload:     payload,
	}, nil
}

// BuildTimetableDocument lays out a record as a day by time slot grid.
// Each cell lists its entries sorted by classroom.
func BuildTimetableDocument(title string, record *models.TimetableRecord) export.TimetableDocument {
	days := record.Metadata.Days
	slots := record.Metadata.TimeSlots
	if len(days) == 0 {
		days = uniqueInOrder(record.Timetable, func(e models.ScheduleEntry) string { return e.Day })
	}
	if len(slots) == 0 {
		slots = uniqueInOrder(record.Timetable, func(e models.ScheduleEntry) string { return e.TimeSlot })
	}

	grouped := make(map[export.CellKey][]models.ScheduleEntry)
	for _, entry := range record.Timetable {
		key := export.CellKey{Day: entry.Day, Slot: entry.TimeSlot}
		grouped[key] = append(grouped[key], entry)
	}
	cells := make(map[export.CellKey][]string, len(grouped))
	for key, entries := range grouped {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Classroom < entries[j].Classroom })
		lines := make([]string, 0, len(entries))
		for _, e := range entries {
			lines = append(lines, fmt.Sprintf("%s: %s\n%s (%s)", e.Classroom, e.Subject, e.Teacher, e.Cohort()))
		}
		cells[key] = lines
	}

	return export.TimetableDocument{
		Title:     title,
		Days:      days,
		TimeSlots: slots,
		Cells:     cells,
		Conflicts: ConflictDataset(record.Conflicts),
	}
}

// EntryDataset flattens entries into one CSV row each.
func EntryDataset(entries []models.ScheduleEntry) export.Dataset {
	rows := make([]map[string]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, map[string]string{
			"Day":       e.Day,
			"Time Slot": e.TimeSlot,
			"Subject":   e.Subject,
			"Teacher":   e.Teacher,
			"Classroom": e.Classroom,
			"Semester":  e.Cohort(),
			"Color":     e.SubjectColor,
		})
	}
	return export.Dataset{
		Headers: []string{"Day", "Time Slot", "Subject", "Teacher", "Classroom", "Semester", "Color"},
		Rows:    rows,
	}
}

// ConflictDataset tabulates conflicts for the conflicts page and sheet.
func ConflictDataset(conflicts []models.Conflict) export.Dataset {
	rows := make([]map[string]string, 0, len(conflicts))
	for _, c := range conflicts {
		subjects := strings.Join(c.Subjects, ", ")
		if c.MissingSessions > 0 {
			subjects = fmt.Sprintf("%s (missing %d)", subjects, c.MissingSessions)
		}
		rows = append(rows, map[string]string{
			"Type":        conflictLabel(c.Type),
			"Day":         orDash(c.Day),
			"Time":        orDash(c.TimeSlot),
			"Teacher":     orDash(c.Teacher),
			"Classroom":   orDash(c.Classroom),
			"Semester":    orDash(c.Semester),
			"Subjects":    subjects,
			"Suggestions": strings.Join(c.Suggestions, "; "),
		})
	}
	return export.Dataset{
		Headers: []string{"Type", "Day", "Time", "Teacher", "Classroom", "Semester", "Subjects", "Suggestions"},
		Rows:    rows,
	}
}

func conflictLabel(t models.ConflictType) string {
	switch t {
	case models.ConflictUnplaced:
		return "Unplaced"
	case models.ConflictTeacher:
		return "Teacher"
	case models.ConflictClassroom:
		return "Classroom"
	case models.ConflictCohort:
		return "Cohort"
	}
	return string(t)
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func uniqueInOrder(entries []models.ScheduleEntry, keyOf func(models.ScheduleEntry) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		k := keyOf(e)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
