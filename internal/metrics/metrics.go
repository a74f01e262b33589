package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	EntriesSeen       int64
	EntriesRejected   int64
	DuplicateTopics   int64
	EntriesPublished  int64
	OracleErrors      int64
	SourceFetchErrors int64

	// Timings
	LastRunDuration time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementEntriesSeen() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EntriesSeen++
}

func (m *Metrics) IncrementRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EntriesRejected++
}

func (m *Metrics) IncrementDuplicateTopics() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicateTopics++
}

func (m *Metrics) IncrementPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EntriesPublished++
}

func (m *Metrics) IncrementOracleErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OracleErrors++
}

func (m *Metrics) IncrementSourceFetchErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourceFetchErrors++
}

func (m *Metrics) RecordRun(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunDuration = duration
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"entries_seen":         m.EntriesSeen,
		"entries_rejected":     m.EntriesRejected,
		"duplicate_topics":     m.DuplicateTopics,
		"entries_published":    m.EntriesPublished,
		"oracle_errors":        m.OracleErrors,
		"source_fetch_errors":  m.SourceFetchErrors,
		"last_run_duration_ms": m.LastRunDuration.Milliseconds(),
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
