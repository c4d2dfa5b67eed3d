// Package monitoring assembles a point-in-time view of process health
// from the search gateway statistics and the per-endpoint service
// counters. Served on /stats.
package monitoring

import (
	"time"

	"github.com/sells-group/comparables-api/internal/service"
	"github.com/sells-group/comparables-api/pkg/searx"
)

// MetricsSnapshot holds a point-in-time view of system health.
type MetricsSnapshot struct {
	// Search gateway metrics.
	Search searx.StatsSnapshot `json:"search"`

	// Per-endpoint request counts.
	Requests map[string]int64 `json:"requests"`
	Failures map[string]int64 `json:"failures"`

	// Metadata.
	UptimeSeconds int64     `json:"uptime_seconds"`
	CollectedAt   time.Time `json:"collected_at"`
}

// Collector gathers metrics from the search gateway and the service.
type Collector struct {
	stats    *searx.Stats
	counters *service.Counters
	started  time.Time
}

// NewCollector creates a collector; started anchors the uptime figure.
func NewCollector(stats *searx.Stats, counters *service.Counters) *Collector {
	return &Collector{stats: stats, counters: counters, started: time.Now()}
}

// Collect gathers a snapshot of process metrics.
func (c *Collector) Collect() *MetricsSnapshot {
	requests, failures := c.counters.Snapshot()
	return &MetricsSnapshot{
		Search:        c.stats.Snapshot(),
		Requests:      requests,
		Failures:      failures,
		UptimeSeconds: int64(time.Since(c.started).Seconds()),
		CollectedAt:   time.Now().UTC(),
	}
}
