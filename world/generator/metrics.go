package generator

import "sync"

// Metrics tracks the counters of a generation service instance. Counters
// are owned by the service and read through Snapshot, never through package
// state.
type Metrics struct {
	mu sync.Mutex

	hits      uint64
	misses    uint64
	generated uint64
	evicted   uint64

	inFlight     int
	inFlightPeak int
}

// MetricsSnapshot is a point-in-time copy of the service counters.
type MetricsSnapshot struct {
	// CacheHits and CacheMisses count chunk requests answered from the
	// cache and requests that fell through to generation.
	CacheHits   uint64
	CacheMisses uint64
	// Generated counts chunks fully generated and cached.
	Generated uint64
	// Evicted counts cache entries removed by the TTL sweep.
	Evicted uint64
	// InFlight is the number of generations currently holding a
	// concurrency permit; InFlightPeak is the highest value InFlight has
	// reached.
	InFlight     int
	InFlightPeak int
}

func newMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) incHit() {
	m.mu.Lock()
	m.hits++
	m.mu.Unlock()
}

func (m *Metrics) incMiss() {
	m.mu.Lock()
	m.misses++
	m.mu.Unlock()
}

func (m *Metrics) incGenerated() {
	m.mu.Lock()
	m.generated++
	m.mu.Unlock()
}

func (m *Metrics) addEvicted(n int) {
	if n == 0 {
		return
	}
	m.mu.Lock()
	m.evicted += uint64(n)
	m.mu.Unlock()
}

func (m *Metrics) enterGeneration() {
	m.mu.Lock()
	m.inFlight++
	if m.inFlight > m.inFlightPeak {
		m.inFlightPeak = m.inFlight
	}
	m.mu.Unlock()
}

func (m *Metrics) leaveGeneration() {
	m.mu.Lock()
	m.inFlight--
	m.mu.Unlock()
}

// Snapshot returns a copy of all counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MetricsSnapshot{
		CacheHits:    m.hits,
		CacheMisses:  m.misses,
		Generated:    m.generated,
		Evicted:      m.evicted,
		InFlight:     m.inFlight,
		InFlightPeak: m.inFlightPeak,
	}
}
