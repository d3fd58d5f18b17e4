package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-api/internal/service"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

type exporterMock struct {
	format service.ExportFormat
}

func (m *exporterMock) Export(ctx context.Context, sessionID string, format service.ExportFormat) (*service.ExportedFile, error) {
	m.format = format
	if sessionID != "s-1" {
		return nil, appErrors.ErrSessionNotFound
	}
	return &service.ExportedFile{Filename: "timetable_20240304_150405.pdf", ContentType: "application/pdf", Payload: []byte("%PDF-1.3")}, nil
}

func TestExportHandlerDownload(t *testing.T) {
	mockSvc := &exporterMock{}
	handler := NewExportHandler(mockSvc)

	c, w := newJSONContext(http.MethodGet, "/export/pdf/s-1", nil)
	c.Params = gin.Params{{Key: "session_id", Value: "s-1"}}
	handler.PDF(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.ExportFormatPDF, mockSvc.format)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="timetable_20240304_150405.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3", w.Body.String())
}

func TestExportHandlerRoutesFormats(t *testing.T) {
	mockSvc := &exporterMock{}
	handler := NewExportHandler(mockSvc)
	params := gin.Params{{Key: "session_id", Value: "s-1"}}

	c, _ := newJSONContext(http.MethodGet, "/export/excel/s-1", nil)
	c.Params = params
	handler.Excel(c)
	assert.Equal(t, service.ExportFormatExcel, mockSvc.format)

	c, _ = newJSONContext(http.MethodGet, "/export/csv/s-1", nil)
	c.Params = params
	handler.CSV(c)
	assert.Equal(t, service.ExportFormatCSV, mockSvc.format)
}

func TestExportHandlerUnknownSession(t *testing.T) {
	handler := NewExportHandler(&exporterMock{})
	c, w := newJSONContext(http.MethodGet, "/export/excel/x", nil)
	c.Params = gin.Params{{Key: "session_id", Value: "x"}}

	handler.Excel(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
