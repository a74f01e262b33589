package ratelimit

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// OracleThrottle keeps the pipeline inside the upstream quota: it
// enforces a per-run request budget and a fixed pause after every
// oracle call so that calls are never issued back to back.
type OracleThrottle struct {
	mu          sync.Mutex
	used        int
	maxCalls    int // 0 = unlimited
	delay       time.Duration
	cacheHits   int
	cacheMisses int
}

func NewOracleThrottle(maxCalls int, delay time.Duration) *OracleThrottle {
	return &OracleThrottle{
		maxCalls: maxCalls,
		delay:    delay,
	}
}

// Reserve claims one request from the budget before a call is made.
func (t *OracleThrottle) Reserve() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.maxCalls > 0 && t.used >= t.maxCalls {
		return fmt.Errorf("oracle budget exhausted (%d/%d)", t.used, t.maxCalls)
	}
	t.used++
	t.cacheMisses++
	return nil
}

// Pause blocks for the fixed inter-call delay. Called after every
// oracle request regardless of outcome.
func (t *OracleThrottle) Pause(ctx context.Context) {
	if t.delay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(t.delay):
	}
}

// RecordCacheHit counts a request answered from the memo cache.
func (t *OracleThrottle) RecordCacheHit() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cacheHits++
}

func (t *OracleThrottle) Stats() map[string]interface{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	return map[string]interface{}{
		"oracle_calls_used": t.used,
		"oracle_calls_max":  t.maxCalls,
		"cache_hits":        t.cacheHits,
		"cache_misses":      t.cacheMisses,
	}
}

func (t *OracleThrottle) PrintStats() {
	stats := t.Stats()
	log.Printf("Oracle usage: %d calls (limit %d), cache %d hits / %d misses",
		stats["oracle_calls_used"], stats["oracle_calls_max"],
		stats["cache_hits"], stats["cache_misses"])
}
