package handler

import "github.com/gin-gonic/gin"

// Handlers groups the route handlers of the service.
type Handlers struct {
	Timetable *TimetableHandler
	Memory    *MemoryHandler
	Export    *ExportHandler
	Metrics   *MetricsHandler
	// MetricsEnabled exposes /metrics and /metrics/summary.
	MetricsEnabled bool
}

// RegisterRoutes mounts the timetable API on r.
func RegisterRoutes(r gin.IRouter, h Handlers) {
	if h.Metrics != nil {
		r.GET("/health", h.Metrics.Health)
		r.GET("/ready", h.Metrics.Ready)
		if h.MetricsEnabled {
			r.GET("/metrics", h.Metrics.Prometheus)
			r.GET("/metrics/summary", h.Metrics.Summary)
		}
	}
	if h.Timetable != nil {
		r.POST("/generate", h.Timetable.Generate)
		r.POST("/update-timetable", h.Timetable.Update)
		r.POST("/validate", h.Timetable.Validate)
		r.GET("/conflicts/:session_id", h.Timetable.Conflicts)
	}
	if h.Memory != nil {
		r.GET("/memory/:session_id", h.Memory.Get)
		r.POST("/memory/:session_id", h.Memory.Update)
		r.POST("/memory/clear/:session_id", h.Memory.Clear)
	}
	if h.Export != nil {
		exports := r.Group("/export")
		exports.GET("/excel/:session_id", h.Export.Excel)
		exports.GET("/pdf/:session_id", h.Export.PDF)
		exports.GET("/csv/:session_id", h.Export.CSV)
	}
}
