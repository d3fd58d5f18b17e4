package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-timetable-api/internal/dto"
	"github.com/noah-isme/sma-timetable-api/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
	"github.com/noah-isme/sma-timetable-api/pkg/response"
)

type memoryService interface {
	Get(ctx context.Context, sessionID string) (*models.SessionMemory, error)
	Merge(ctx context.Context, sessionID string, patch dto.MemoryPatch) (*models.SessionMemory, error)
	Clear(ctx context.Context, sessionID string) error
}

// MemoryHandler exposes session memory endpoints.
type MemoryHandler struct {
	service memoryService
}

// NewMemoryHandler constructs the handler.
func NewMemoryHandler(svc memoryService) *MemoryHandler {
	return &MemoryHandler{service: svc}
}

// Get godoc
// @Summary Session memory
// @Tags Memory
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /memory/{session_id} [get]
func (h *MemoryHandler) Get(c *gin.Context) {
	memory, err := h.service.Get(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.MemoryResponse{Success: true, Memory: memory})
}

// Update godoc
// @Summary Merge values into session memory
// @Description Null fields are ignored. The memory is created when absent.
// @Tags Memory
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param payload body dto.MemoryPatch true "Memory fields"
// @Success 200 {object} response.Envelope
// @Router /memory/{session_id} [post]
func (h *MemoryHandler) Update(c *gin.Context) {
	var patch dto.MemoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid memory payload"))
		return
	}
	memory, err := h.service.Merge(c.Request.Context(), c.Param("session_id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.MemoryResponse{Success: true, Memory: memory})
}

// Clear godoc
// @Summary Forget session memory
// @Tags Memory
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /memory/clear/{session_id} [post]
func (h *MemoryHandler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context(), c.Param("session_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.MemoryResponse{Success: true})
}
