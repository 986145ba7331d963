package api

import (
	"net/http"
	"runtime"
	"time"

	"seqapi/internal/version"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Memory    *MemoryHealthInfo `json:"memory,omitempty"`
}

// MemoryHealthInfo contains memory usage information
type MemoryHealthInfo struct {
	AllocMB      float64 `json:"allocMb"`
	SysMB        float64 `json:"sysMb"`
	NumGC        uint32  `json:"numGc"`
	NumGoroutine int     `json:"numGoroutine"`
}

// handleHealth handles GET /health. Add ?detailed=true for memory stats.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Info(),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
	}

	if r.URL.Query().Get("detailed") == "true" {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		resp.Memory = &MemoryHealthInfo{
			AllocMB:      float64(m.Alloc) / 1024 / 1024,
			SysMB:        float64(m.Sys) / 1024 / 1024,
			NumGC:        m.NumGC,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}

	WriteJSON(w, resp, http.StatusOK)
}
