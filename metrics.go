package attendly

import "sync/atomic"

// MetricID identifies one client-side counter.
type MetricID uint8

const (
	// MetricRequests counts every API call that reached the transport.
	MetricRequests MetricID = iota
	// MetricRequestFailures counts API calls that returned any taxonomy error.
	MetricRequestFailures
	// MetricUnauthorized counts 401 responses (each one clears the stored token).
	MetricUnauthorized
	// MetricRecommendationCacheHits counts recommendation reads served from cache.
	MetricRecommendationCacheHits
	// MetricRecommendationCacheMisses counts recommendation reads that hit the backend.
	MetricRecommendationCacheMisses
	// MetricImageFetches counts image loads that reached the transport.
	MetricImageFetches
	// MetricImageShared counts callers that joined an in-flight image load.
	MetricImageShared
	// MetricImageCacheHits counts image loads served from memory.
	MetricImageCacheHits
	metricIDCount
)

const cacheLineSize = 64

// paddedCounter keeps adjacent counters on separate cache lines; several
// goroutines bump different counters concurrently.
type paddedCounter struct {
	value atomic.Uint64
	_     [cacheLineSize - 8]byte
}

// Metrics is the client's lightweight counter set. A nil *Metrics is a
// valid no-op receiver, so instrumentation never needs guarding.
type Metrics struct {
	counters [metricIDCount]paddedCounter
}

// NewMetrics creates an empty counter set.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Inc bumps the counter for id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || id >= metricIDCount {
		return
	}
	m.counters[id].value.Add(1)
}

// MetricsSnapshot is a point-in-time copy of every counter.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot copies the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: make(map[MetricID]uint64, metricIDCount)}
	if m == nil {
		return snap
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		snap.Counters[id] = m.counters[id].value.Load()
	}
	return snap
}
