package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-api/internal/dto"
	"github.com/noah-isme/sma-timetable-api/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

type memoryServiceMock struct {
	memories map[string]*models.SessionMemory
	patch    dto.MemoryPatch
}

func (m *memoryServiceMock) Get(ctx context.Context, sessionID string) (*models.SessionMemory, error) {
	if memory, ok := m.memories[sessionID]; ok {
		return memory, nil
	}
	return nil, appErrors.ErrSessionNotFound
}

func (m *memoryServiceMock) Merge(ctx context.Context, sessionID string, patch dto.MemoryPatch) (*models.SessionMemory, error) {
	m.patch = patch
	memory := &models.SessionMemory{Days: patch.Days}
	m.memories[sessionID] = memory
	return memory, nil
}

func (m *memoryServiceMock) Clear(ctx context.Context, sessionID string) error {
	if _, ok := m.memories[sessionID]; !ok {
		return appErrors.ErrSessionNotFound
	}
	delete(m.memories, sessionID)
	return nil
}

func newMemoryMock() *memoryServiceMock {
	return &memoryServiceMock{memories: map[string]*models.SessionMemory{}}
}

func TestMemoryHandlerLifecycle(t *testing.T) {
	mockSvc := newMemoryMock()
	handler := NewMemoryHandler(mockSvc)
	params := gin.Params{{Key: "session_id", Value: "s-1"}}

	c, w := newJSONContext(http.MethodGet, "/memory/s-1", nil)
	c.Params = params
	handler.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = newJSONContext(http.MethodPost, "/memory/s-1", []byte(`{"days":["Mon","Tue"],"teachers":null}`))
	c.Params = params
	handler.Update(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Mon", "Tue"}, mockSvc.patch.Days)
	assert.Nil(t, mockSvc.patch.Teachers)

	c, w = newJSONContext(http.MethodGet, "/memory/s-1", nil)
	c.Params = params
	handler.Get(c)
	require.Equal(t, http.StatusOK, w.Code)
	var data dto.MemoryResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &data))
	assert.True(t, data.Success)
	assert.Equal(t, []string{"Mon", "Tue"}, data.Memory.Days)

	c, w = newJSONContext(http.MethodPost, "/memory/clear/s-1", nil)
	c.Params = params
	handler.Clear(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newJSONContext(http.MethodPost, "/memory/clear/s-1", nil)
	c.Params = params
	handler.Clear(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMemoryHandlerUpdateEmptyBody(t *testing.T) {
	handler := NewMemoryHandler(newMemoryMock())
	c, w := newJSONContext(http.MethodPost, "/memory/s-1", nil)
	c.Params = gin.Params{{Key: "session_id", Value: "s-1"}}

	handler.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
