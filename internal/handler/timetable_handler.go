package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-timetable-api/internal/dto"
	internalmiddleware "github.com/noah-isme/sma-timetable-api/internal/middleware"
	"github.com/noah-isme/sma-timetable-api/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
	"github.com/noah-isme/sma-timetable-api/pkg/response"
)

const maxTimetableEntries = 5000

type timetableService interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error)
	Update(ctx context.Context, req dto.UpdateTimetableRequest) (*dto.UpdateTimetableResponse, error)
	Validate(ctx context.Context, req dto.ValidateTimetableRequest) (*dto.ValidateTimetableResponse, error)
	Conflicts(ctx context.Context, sessionID string) ([]models.Conflict, error)
}

// TimetableHandler exposes generation and conflict endpoints.
type TimetableHandler struct {
	service timetableService
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc timetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// Generate godoc
// @Summary Generate a weekly timetable
// @Description Places every subject's weekly sessions. Omitted inputs fall back to the session memory of session_id.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Generator inputs"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	internalmiddleware.SetMeta(c, "session_id", result.SessionID)
	internalmiddleware.SetMeta(c, "entries", len(result.Timetable))
	internalmiddleware.SetMeta(c, "conflicts", len(result.Conflicts))
	response.OK(c, result, internalmiddleware.ExtractMeta(c))
}

// Update godoc
// @Summary Replace the entries of a generated timetable
// @Description Stores a manually edited entry list and re-detects resource clashes.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.UpdateTimetableRequest true "Edited timetable"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /update-timetable [post]
func (h *TimetableHandler) Update(c *gin.Context) {
	var req dto.UpdateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid update payload"))
		return
	}
	if len(req.Timetable) > maxTimetableEntries {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "timetable exceeds supported size"))
		return
	}
	result, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	internalmiddleware.SetMeta(c, "session_id", req.SessionID)
	response.OK(c, result, internalmiddleware.ExtractMeta(c))
}

// Validate godoc
// @Summary Check an entry list for clashes
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.ValidateTimetableRequest true "Entries to check"
// @Success 200 {object} response.Envelope
// @Router /validate [post]
func (h *TimetableHandler) Validate(c *gin.Context) {
	var req dto.ValidateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid timetable payload"))
		return
	}
	if len(req.Timetable) > maxTimetableEntries {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "timetable exceeds supported size"))
		return
	}
	result, err := h.service.Validate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result, internalmiddleware.ExtractMeta(c))
}

// Conflicts godoc
// @Summary Stored conflicts of a session
// @Tags Timetable
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /conflicts/{session_id} [get]
func (h *TimetableHandler) Conflicts(c *gin.Context) {
	conflicts, err := h.service.Conflicts(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ConflictsResponse{Success: true, Conflicts: conflicts}, internalmiddleware.ExtractMeta(c))
}
