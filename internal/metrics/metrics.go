package metrics

import (
	"sync"
	"time"
)

// Snapshot is a point-in-time copy of the counters kept for one upstream
// resource (genres, platforms, games...).
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

// TokenStats counts how credentials were obtained.
type TokenStats struct {
	CacheHits       int
	Refreshes       int
	RefreshFailures int
}

// Recorder keeps in-memory counters for upstream catalog calls and credential
// use, and forwards each event to OpenTelemetry instruments when configured.
// All methods are safe on a nil receiver.
type Recorder struct {
	mu        sync.Mutex
	resources map[string]*Snapshot
	tokens    TokenStats
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{resources: map[string]*Snapshot{}, otel: otel}
}

// RecordUpstreamAttempt counts one call to resource and keeps its latency.
func (r *Recorder) RecordUpstreamAttempt(resource string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.update(resource, func(s *Snapshot) {
		s.Calls++
		s.LastCallLatency = duration
		if err != nil {
			s.Errors++
		}
	})
	if r.otel != nil {
		r.otel.recordUpstreamAttempt(resource, duration, err)
	}
}

// RecordRateLimit counts a 429 from resource. A zero retryAfter leaves the
// previous hint in place.
func (r *Recorder) RecordRateLimit(resource string, retryAfter time.Duration) {
	if r == nil {
		return
	}
	r.update(resource, func(s *Snapshot) {
		s.RateLimitHits++
		if retryAfter > 0 {
			s.LastRetryAfter = retryAfter
		}
	})
	if r.otel != nil {
		r.otel.recordRateLimit(resource, retryAfter)
	}
}

func (r *Recorder) RecordTokenCacheHit() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.tokens.CacheHits++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordTokenCacheHit()
	}
}

func (r *Recorder) RecordTokenRefresh(err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.tokens.Refreshes++
	if err != nil {
		r.tokens.RefreshFailures++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordTokenRefresh(err)
	}
}

// Snapshot returns the counters for resource, zero if it was never seen.
func (r *Recorder) Snapshot(resource string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s := r.resources[resource]; s != nil {
		return *s
	}
	return Snapshot{}
}

func (r *Recorder) Tokens() TokenStats {
	if r == nil {
		return TokenStats{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tokens
}

// RecordHTTPRequest is exported only; nothing is kept in memory.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

func (r *Recorder) RecordCatalogRefresh(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordCatalogRefresh(duration, err)
}

func (r *Recorder) update(resource string, fn func(*Snapshot)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.resources[resource]
	if !ok {
		s = &Snapshot{}
		r.resources[resource] = s
	}
	fn(s)
}
