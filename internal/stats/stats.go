package stats

import (
	"sync"
	"time"
)

// Stats tracks counters for the current process; the monitoring
// endpoints read them through Snapshot.
type Stats struct {
	mu sync.RWMutex

	// Counters
	EntriesFetched     int64
	ArticlesEnriched   int64
	DuplicatesFiltered int64
	KeywordsFailed     int64
	CacheHits          int64
	CacheMisses        int64

	// Last collection run
	LastRunTime     time.Time
	LastRunDuration time.Duration

	// Status
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Stats{IsHealthy: true}

func (s *Stats) IncrementEntriesFetched() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.EntriesFetched++
}

func (s *Stats) IncrementArticlesEnriched() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ArticlesEnriched++
}

func (s *Stats) IncrementDuplicatesFiltered() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DuplicatesFiltered++
}

func (s *Stats) IncrementKeywordsFailed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.KeywordsFailed++
}

func (s *Stats) IncrementCacheHits() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CacheHits++
}

func (s *Stats) IncrementCacheMisses() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CacheMisses++
}

func (s *Stats) RecordRun(duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastRunTime = time.Now()
	s.LastRunDuration = duration
	s.IsHealthy = true
}

func (s *Stats) SetError(err string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastError = err
	s.LastErrorTime = time.Now()
	s.IsHealthy = false
}

func (s *Stats) Snapshot() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"entries_fetched":      s.EntriesFetched,
		"articles_enriched":    s.ArticlesEnriched,
		"duplicates_filtered":  s.DuplicatesFiltered,
		"keywords_failed":      s.KeywordsFailed,
		"cache_hits":           s.CacheHits,
		"cache_misses":         s.CacheMisses,
		"last_run_time":        s.LastRunTime.Format(time.RFC3339),
		"last_run_duration_ms": s.LastRunDuration.Milliseconds(),
		"last_error_time":      s.LastErrorTime.Format(time.RFC3339),
		"last_error":           s.LastError,
		"is_healthy":           s.IsHealthy,
	}
}
