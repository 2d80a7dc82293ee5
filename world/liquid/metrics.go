package liquid

import (
	"sync"

	"github.com/voxelforge/voxelforge/world"
)

// Metrics tracks per-chunk counters of the water simulation for
// observability.
type Metrics struct {
	mu sync.Mutex

	ops       map[world.ChunkPos]uint64
	scheduled uint64
	processed uint64
}

// NewMetrics creates an empty metrics registry.
func NewMetrics() *Metrics {
	return &Metrics{ops: make(map[world.ChunkPos]uint64)}
}

// AddOps increments the flow-operation counter for a chunk.
func (m *Metrics) AddOps(pos world.ChunkPos, value uint64) {
	if m == nil || value == 0 {
		return
	}
	m.mu.Lock()
	m.ops[pos] += value
	m.mu.Unlock()
}

// IncScheduled counts a voxel newly added to the update queue.
func (m *Metrics) IncScheduled() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.scheduled++
	m.mu.Unlock()
}

// IncProcessed counts a voxel dequeued and evaluated.
func (m *Metrics) IncProcessed() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.processed++
	m.mu.Unlock()
}

// Ops returns the flow-operation count recorded for a chunk.
func (m *Metrics) Ops(pos world.ChunkPos) uint64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ops[pos]
}

// Totals returns the scheduled and processed counters.
func (m *Metrics) Totals() (scheduled, processed uint64) {
	if m == nil {
		return 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scheduled, m.processed
}
