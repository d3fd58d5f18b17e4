package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

// MetricsSnapshot is a lightweight JSON view over the collected metrics.
type MetricsSnapshot struct {
	RequestsTotal               uint64    `json:"requests_total"`
	AverageRequestDurationMs    float64   `json:"average_request_duration_ms"`
	GenerationsTotal            uint64    `json:"generations_total"`
	AverageGenerationDurationMs float64   `json:"average_generation_duration_ms"`
	EntriesPlaced               uint64    `json:"entries_placed"`
	ConflictsReported           uint64    `json:"conflicts_reported"`
	StoreHits                   uint64    `json:"store_hits"`
	StoreMisses                 uint64    `json:"store_misses"`
	StoreHitRatio               float64   `json:"store_hit_ratio"`
	Goroutines                  int       `json:"goroutines"`
	GeneratedAt                 time.Time `json:"generated_at"`
}

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	handler            http.Handler
	requestDuration    *prometheus.HistogramVec
	requestTotal       *prometheus.CounterVec
	generationDuration prometheus.Histogram
	entriesPlaced      prometheus.Counter
	conflicts          *prometheus.CounterVec
	storeLatency       prometheus.Observer
	storeHitRatio      prometheus.Gauge
	storeLookups       *prometheus.CounterVec

	requestCount            uint64
	requestDurationTotal    uint64
	generationCount         uint64
	generationDurationTotal uint64
	entryCount              uint64
	conflictCount           uint64
	storeHitCount           uint64
	storeMissCount          uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	generationDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_generation_duration_seconds",
		Help:    "Duration of timetable generation runs",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
	})

	entriesPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_entries_placed_total",
		Help: "Sessions placed by the generator",
	})

	conflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_conflicts_total",
		Help: "Conflicts reported by generation and validation, by type",
	}, []string{"type"})

	storeLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "session_store_latency_seconds",
		Help:    "Latency for session store lookups",
		Buckets: prometheus.DefBuckets,
	})

	storeHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "session_store_hit_ratio",
		Help: "Ratio of session lookups that found a stored document",
	})

	storeLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "session_store_lookups_total",
		Help: "Session store lookups by result",
	}, []string{"result"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, generationDuration, entriesPlaced, conflicts, storeLatency, storeHitRatio, storeLookups, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		handler:            handler,
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		generationDuration: generationDuration,
		entriesPlaced:      entriesPlaced,
		conflicts:          conflicts,
		storeLatency:       storeLatency,
		storeHitRatio:      storeHitRatio,
		storeLookups:       storeLookups,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveGeneration records one generator run.
func (m *MetricsService) ObserveGeneration(duration time.Duration, entries int, conflicts []models.Conflict) {
	if m == nil {
		return
	}
	m.generationDuration.Observe(duration.Seconds())
	m.entriesPlaced.Add(float64(entries))
	atomic.AddUint64(&m.generationCount, 1)
	atomic.AddUint64(&m.generationDurationTotal, uint64(duration.Nanoseconds()))
	atomic.AddUint64(&m.entryCount, uint64(entries))
	m.ObserveConflicts(conflicts)
}

// ObserveConflicts counts conflicts by type.
func (m *MetricsService) ObserveConflicts(conflicts []models.Conflict) {
	if m == nil {
		return
	}
	for _, conflict := range conflicts {
		m.conflicts.WithLabelValues(string(conflict.Type)).Inc()
	}
	atomic.AddUint64(&m.conflictCount, uint64(len(conflicts)))
}

// RecordStoreLookup records session store hit/miss metrics and updates the hit ratio.
func (m *MetricsService) RecordStoreLookup(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.storeLatency.Observe(duration.Seconds())
	if hit {
		m.storeLookups.WithLabelValues("hit").Inc()
		atomic.AddUint64(&m.storeHitCount, 1)
	} else {
		m.storeLookups.WithLabelValues("miss").Inc()
		atomic.AddUint64(&m.storeMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.storeHitCount)
	misses := atomic.LoadUint64(&m.storeMissCount)
	if total := hits + misses; total > 0 {
		m.storeHitRatio.Set(float64(hits) / float64(total))
	}
}

// Snapshot returns aggregated metrics suitable for JSON endpoints.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	hits := atomic.LoadUint64(&m.storeHitCount)
	misses := atomic.LoadUint64(&m.storeMissCount)
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	generations := atomic.LoadUint64(&m.generationCount)
	genDuration := atomic.LoadUint64(&m.generationDurationTotal)

	var hitRatio float64
	if total := hits + misses; total > 0 {
		hitRatio = float64(hits) / float64(total)
	}

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	var avgGenerationMs float64
	if generations > 0 {
		avgGenerationMs = float64(genDuration) / float64(generations) / float64(time.Millisecond)
	}

	return MetricsSnapshot{
		RequestsTotal:               requests,
		AverageRequestDurationMs:    avgRequestMs,
		GenerationsTotal:            generations,
		AverageGenerationDurationMs: avgGenerationMs,
		EntriesPlaced:               atomic.LoadUint64(&m.entryCount),
		ConflictsReported:           atomic.LoadUint64(&m.conflictCount),
		StoreHits:                   hits,
		StoreMisses:                 misses,
		StoreHitRatio:               hitRatio,
		Goroutines:                  runtime.NumGoroutine(),
		GeneratedAt:                 time.Now().UTC(),
	}
}
