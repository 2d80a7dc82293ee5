// Package liquid implements a queued cellular-automaton water solver.
// Pending voxel coordinates are held in a deduplicated world-space queue;
// each tick drains a bounded number of them, flowing water downward first
// and sideways second, and re-queues the neighbourhood of every voxel it
// changed. Neighbours outside the origin chunk are resolved through a
// caller-supplied chunk lookup.
package liquid

import (
	"log/slog"

	"github.com/brentp/intintmap"

	"github.com/voxelforge/voxelforge/world"
)

// ChunkSource resolves a chunk position to the chunk held there, or nil if
// no such chunk is currently available. Flow into unavailable chunks is
// skipped until the chunk exists.
type ChunkSource func(pos world.ChunkPos) *world.Chunk

// System drives the water flow automaton. It is single-threaded by design:
// Tick must not run concurrently with itself or with anything mutating the
// chunks it touches.
type System struct {
	log    *slog.Logger
	budget int
	source ChunkSource

	queue  []world.BlockPos
	queued *intintmap.Map

	metrics *Metrics
}

// NewSystem creates a water simulation backed by the chunk source passed.
func NewSystem(cfg Config, source ChunkSource) *System {
	if source == nil {
		panic("liquid: system requires a chunk source")
	}
	cfg = cfg.withDefaults()
	return &System{
		log:     cfg.Logger,
		budget:  cfg.MaxUpdatesPerTick,
		source:  source,
		queued:  intintmap.New(1024, 0.6),
		metrics: NewMetrics(),
	}
}

// Metrics returns the metrics registry of the system.
func (s *System) Metrics() *Metrics {
	return s.metrics
}

// QueueLen returns the number of voxels pending evaluation.
func (s *System) QueueLen() int {
	return len(s.queue)
}

// Schedule adds a world-space voxel to the update queue. A coordinate
// queued twice before being processed counts once.
func (s *System) Schedule(pos world.BlockPos) {
	key := packPos(pos)
	if _, ok := s.queued.Get(key); ok {
		return
	}
	s.queued.Put(key, 1)
	s.queue = append(s.queue, pos)
	s.metrics.IncScheduled()
}

// Tick processes up to the configured number of queued voxels and returns
// how many were evaluated. Water that flowed re-queues its neighbourhood,
// so propagation continues across subsequent ticks.
func (s *System) Tick() int {
	processed := 0
	for processed < s.budget && len(s.queue) > 0 {
		pos := s.queue[0]
		s.queue = s.queue[1:]
		s.queued.Del(packPos(pos))

		s.update(pos)
		s.metrics.IncProcessed()
		processed++
	}
	return processed
}

// update evaluates the flow rules for a single voxel.
func (s *System) update(pos world.BlockPos) {
	b, ok := s.blockAt(pos)
	if !ok || b.Type != world.Water || b.Level == 0 {
		return
	}

	if s.flowDown(pos, b) {
		return
	}
	if b.Level > 1 {
		s.flowSideways(pos, b.Level-1)
	}
}

// flowDown attempts to move water straight down. It reports whether
// downward flow occurred; if it did, the source is drained by one level
// only when it was not full.
func (s *System) flowDown(pos world.BlockPos, b world.Block) bool {
	below := pos.Side(world.FaceDown)
	nb, ok := s.blockAt(below)
	if !ok {
		return false
	}

	switch {
	case nb.Empty():
		s.setBlock(below, world.WaterBlock(world.MaxWaterLevel))
	case nb.Type == world.Water && nb.Level < world.MaxWaterLevel:
		s.setBlock(below, world.WaterBlock(world.MaxWaterLevel))
	default:
		return false
	}
	s.scheduleAround(below)

	if b.Level < world.MaxWaterLevel {
		if b.Level <= 1 {
			s.setBlock(pos, world.Block{})
		} else {
			s.setBlock(pos, world.WaterBlock(b.Level-1))
		}
		s.scheduleAround(pos)
	}
	return true
}

// flowSideways spreads water into the four horizontal neighbours at the
// spread level passed.
func (s *System) flowSideways(pos world.BlockPos, spread uint8) {
	for _, f := range world.HorizontalFaces() {
		np := pos.Side(f)
		nb, ok := s.blockAt(np)
		if !ok {
			continue
		}
		switch {
		case nb.Empty():
			s.setBlock(np, world.WaterBlock(spread))
			s.scheduleAround(np)
		case nb.Type == world.Water && spread > 0 && nb.Level < spread-1:
			s.setBlock(np, world.WaterBlock(spread-1))
			s.scheduleAround(np)
		}
	}
}

// scheduleAround re-queues a voxel that was created or raised together
// with its down, lateral and up neighbours, driving continued propagation
// across ticks.
func (s *System) scheduleAround(pos world.BlockPos) {
	s.Schedule(pos)
	s.Schedule(pos.Side(world.FaceDown))
	for _, f := range world.HorizontalFaces() {
		s.Schedule(pos.Side(f))
	}
	s.Schedule(pos.Side(world.FaceUp))
}

// blockAt resolves a world-space position to the block stored there. The
// second return value is false when the containing chunk is unavailable.
func (s *System) blockAt(pos world.BlockPos) (world.Block, bool) {
	c, lx, ly, lz := s.locate(pos)
	if c == nil {
		return world.Block{}, false
	}
	return c.Block(lx, ly, lz), true
}

// setBlock writes a block at a world-space position and invalidates the
// lighting of the chunk it landed in.
func (s *System) setBlock(pos world.BlockPos, b world.Block) {
	c, lx, ly, lz := s.locate(pos)
	if c == nil {
		return
	}
	c.SetBlock(lx, ly, lz, b)
	c.InvalidateLighting()
	s.metrics.AddOps(c.ChunkPos(), 1)
}

func (s *System) locate(pos world.BlockPos) (c *world.Chunk, lx, ly, lz int) {
	cpos := world.ChunkPosFromBlock(pos)
	c = s.source(cpos)
	if c == nil {
		return nil, 0, 0, 0
	}
	origin := c.Position()
	return c, pos.X() - origin.X(), pos.Y() - origin.Y(), pos.Z() - origin.Z()
}

// packPos packs a world-space block position into a single int64 key for
// the dedup set. X and Z use 26 bits each, Y the remaining 12.
func packPos(p world.BlockPos) int64 {
	return (int64(p[0])&0x3FFFFFF)<<38 | (int64(p[2])&0x3FFFFFF)<<12 | int64(p[1])&0xFFF
}
