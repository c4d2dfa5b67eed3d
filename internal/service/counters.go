package service

import "sync"

// Counters tracks per-endpoint request outcomes for the stats endpoint.
type Counters struct {
	mu       sync.Mutex
	requests map[string]int64
	failures map[string]int64
}

// NewCounters returns empty counters.
func NewCounters() *Counters {
	return &Counters{
		requests: map[string]int64{},
		failures: map[string]int64{},
	}
}

func (c *Counters) record(endpoint string, failed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests[endpoint]++
	if failed {
		c.failures[endpoint]++
	}
}

// Snapshot copies the current per-endpoint counts.
func (c *Counters) Snapshot() (requests, failures map[string]int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	requests = make(map[string]int64, len(c.requests))
	failures = make(map[string]int64, len(c.failures))
	for k, v := range c.requests {
		requests[k] = v
	}
	for k, v := range c.failures {
		failures[k] = v
	}
	return requests, failures
}
