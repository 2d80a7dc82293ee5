package generator

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/voxelforge/voxelforge/world"
)

// chunkCache holds generated chunks keyed by chunk coordinate. Entries
// expire a fixed TTL after their last access, removed by a timer-driven
// sweep. At most one chunk is ever cached per coordinate.
type chunkCache struct {
	log     *slog.Logger
	ttl     time.Duration
	metrics *Metrics

	mu      sync.RWMutex
	entries map[world.ChunkPos]*cacheEntry

	done chan struct{}
	once sync.Once
}

type cacheEntry struct {
	chunk *world.Chunk
	// lastAccess is the unix-nano timestamp of the last get or put,
	// updated atomically so reads stay under the read lock.
	lastAccess atomic.Int64
}

func newChunkCache(log *slog.Logger, ttl, sweepInterval time.Duration, metrics *Metrics) *chunkCache {
	c := &chunkCache{
		log:     log,
		ttl:     ttl,
		metrics: metrics,
		entries: make(map[world.ChunkPos]*cacheEntry),
		done:    make(chan struct{}),
	}
	go c.sweepLoop(sweepInterval)
	return c
}

func (c *chunkCache) get(pos world.ChunkPos) (*world.Chunk, bool) {
	c.mu.RLock()
	e, ok := c.entries[pos]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	e.lastAccess.Store(time.Now().UnixNano())
	return e.chunk, true
}

func (c *chunkCache) put(pos world.ChunkPos, chunk *world.Chunk) {
	e := &cacheEntry{chunk: chunk}
	e.lastAccess.Store(time.Now().UnixNano())
	c.mu.Lock()
	c.entries[pos] = e
	c.mu.Unlock()
}

func (c *chunkCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *chunkCache) close() {
	c.once.Do(func() {
		close(c.done)
	})
}

func (c *chunkCache) sweepLoop(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			c.sweep(time.Now())
		case <-c.done:
			return
		}
	}
}

// sweep removes all entries whose last access lies further back than the
// TTL. A panic during the sweep must never take down the owning process.
func (c *chunkCache) sweep(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("chunk cache sweep failed", "err", r)
		}
	}()

	deadline := now.Add(-c.ttl).UnixNano()
	c.mu.Lock()
	evicted := 0
	for pos, e := range c.entries {
		if e.lastAccess.Load() < deadline {
			delete(c.entries, pos)
			evicted++
		}
	}
	c.mu.Unlock()

	if evicted > 0 {
		c.metrics.addEvicted(evicted)
		c.log.Debug("evicted expired chunks", "count", evicted)
	}
}
