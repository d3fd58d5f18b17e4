package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodPost, "/generate", http.StatusOK, 20*time.Millisecond)
	m.ObserveGeneration(4*time.Millisecond, 10, []models.Conflict{{Type: models.ConflictUnplaced}, {Type: models.ConflictTeacher}})
	m.RecordStoreLookup(true, time.Millisecond)
	m.RecordStoreLookup(false, time.Millisecond)

	snap := m.Snapshot()
	assert.Equal(t, uint64(1), snap.RequestsTotal)
	assert.InDelta(t, 20.0, snap.AverageRequestDurationMs, 0.001)
	assert.Equal(t, uint64(1), snap.GenerationsTotal)
	assert.InDelta(t, 4.0, snap.AverageGenerationDurationMs, 0.001)
	assert.Equal(t, uint64(10), snap.EntriesPlaced)
	assert.Equal(t, uint64(2), snap.ConflictsReported)
	assert.InDelta(t, 0.5, snap.StoreHitRatio, 0.0001)
}

func TestMetricsServiceHandlerExposesCollectors(t *testing.T) {
	m := NewMetricsService()
	m.ObserveConflicts([]models.Conflict{{Type: models.ConflictCohort}})

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `timetable_conflicts_total{type="cohort"} 1`)
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveGeneration(time.Second, 1, nil)
	m.RecordStoreLookup(true, time.Second)
	assert.Equal(t, MetricsSnapshot{}, m.Snapshot())

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
