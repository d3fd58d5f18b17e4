package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-timetable-api/internal/service"
	"github.com/noah-isme/sma-timetable-api/pkg/response"
)

type timetableExporter interface {
	Export(ctx context.Context, sessionID string, format service.ExportFormat) (*service.ExportedFile, error)
}

// ExportHandler streams rendered timetables.
type ExportHandler struct {
	service timetableExporter
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc timetableExporter) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Excel godoc
// @Summary Download the timetable as a workbook
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param session_id path string true "Session ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /export/excel/{session_id} [get]
func (h *ExportHandler) Excel(c *gin.Context) {
	h.download(c, service.ExportFormatExcel)
}

// PDF godoc
// @Summary Download the timetable as a PDF
// @Tags Export
// @Produce application/pdf
// @Param session_id path string true "Session ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /export/pdf/{session_id} [get]
func (h *ExportHandler) PDF(c *gin.Context) {
	h.download(c, service.ExportFormatPDF)
}

// CSV godoc
// @Summary Download the timetable entries as CSV
// @Tags Export
// @Produce text/csv
// @Param session_id path string true "Session ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /export/csv/{session_id} [get]
func (h *ExportHandler) CSV(c *gin.Context) {
	h.download(c, service.ExportFormatCSV)
}

func (h *ExportHandler) download(c *gin.Context, format service.ExportFormat) {
	file, err := h.service.Export(c.Request.Context(), c.Param("session_id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}
