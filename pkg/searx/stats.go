package searx

import (
	"sync"
	"time"
)

// Stats holds process-wide search counters and a bounded error log. All
// methods are safe for concurrent use; entries are only ever appended or
// overwritten, never cleared, for the lifetime of the process.
type Stats struct {
	mu sync.Mutex

	total          int
	successful     int
	cached         int
	failed         int
	tokenRefreshes int

	maxErrors int
	errors    []ErrorEntry
}

// ErrorEntry records a failed outbound call for observability.
type ErrorEntry struct {
	Time      time.Time `json:"time"`
	Query     string    `json:"query"`
	FocusMode string    `json:"focus_mode"`
	Message   string    `json:"message"`
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	TotalSearches      int          `json:"total_searches"`
	SuccessfulSearches int          `json:"successful_searches"`
	CachedSearches     int          `json:"cached_searches"`
	FailedSearches     int          `json:"failed_searches"`
	TokenRefreshes     int          `json:"token_refreshes"`
	RecentErrors       []ErrorEntry `json:"recent_errors"`
}

// NewStats creates a Stats keeping at most maxErrors recent error entries.
func NewStats(maxErrors int) *Stats {
	if maxErrors <= 0 {
		maxErrors = 100
	}
	return &Stats{maxErrors: maxErrors}
}

// RecordSuccess counts a completed backend search.
func (s *Stats) RecordSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total++
	s.successful++
}

// RecordCached counts a search served from cache.
func (s *Stats) RecordCached() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total++
	s.cached++
}

// RecordFailure counts a failed search and appends it to the error log,
// dropping the oldest entry once the bound is reached.
func (s *Stats) RecordFailure(query, focusMode string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total++
	s.failed++
	s.errors = append(s.errors, ErrorEntry{
		Time:      time.Now().UTC(),
		Query:     query,
		FocusMode: focusMode,
		Message:   err.Error(),
	})
	if len(s.errors) > s.maxErrors {
		s.errors = s.errors[len(s.errors)-s.maxErrors:]
	}
}

// RecordTokenRefresh counts a token exchange against the auth endpoint.
func (s *Stats) RecordTokenRefresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenRefreshes++
}

// Snapshot returns a copy of the current counters and error log.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	errs := make([]ErrorEntry, len(s.errors))
	copy(errs, s.errors)
	return StatsSnapshot{
		TotalSearches:      s.total,
		SuccessfulSearches: s.successful,
		CachedSearches:     s.cached,
		FailedSearches:     s.failed,
		TokenRefreshes:     s.tokenRefreshes,
		RecentErrors:       errs,
	}
}
