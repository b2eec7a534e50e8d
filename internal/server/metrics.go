package server

import (
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// Metrics keeps basic HTTP request counters for the health endpoint
type Metrics struct {
	started time.Time
	active  atomic.Int64
	total   atomic.Uint64
	failed  atomic.Uint64
}

func NewMetrics() *Metrics {
	return &Metrics{started: time.Now()}
}

// Middleware tracks in-flight, total and 5xx requests
func (m *Metrics) Middleware(c *gin.Context) {
	m.active.Add(1)
	m.total.Add(1)
	defer m.active.Add(-1)

	c.Next()

	if c.Writer.Status() >= 500 {
		m.failed.Add(1)
	}
}

// Snapshot returns the current counters
func (m *Metrics) Snapshot() map[string]any {
	return map[string]any{
		"uptime_seconds":  int64(time.Since(m.started).Seconds()),
		"active_requests": m.active.Load(),
		"total_requests":  m.total.Load(),
		"failed_requests": m.failed.Load(),
	}
}
