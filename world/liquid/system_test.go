package liquid

import (
	"io"
	"log/slog"
	"testing"

	"github.com/voxelforge/voxelforge/world"
)

// testWorld is a fixed set of chunks acting as the chunk source.
type testWorld struct {
	chunks map[world.ChunkPos]*world.Chunk
}

func newTestWorld(positions ...world.ChunkPos) *testWorld {
	w := &testWorld{chunks: make(map[world.ChunkPos]*world.Chunk)}
	for _, pos := range positions {
		w.chunks[pos] = world.NewChunk(pos)
	}
	return w
}

func (w *testWorld) source(pos world.ChunkPos) *world.Chunk {
	return w.chunks[pos]
}

func (w *testWorld) block(pos world.BlockPos) world.Block {
	c := w.chunks[world.ChunkPosFromBlock(pos)]
	if c == nil {
		return world.Block{}
	}
	o := c.Position()
	return c.Block(pos.X()-o.X(), pos.Y()-o.Y(), pos.Z()-o.Z())
}

func (w *testWorld) setBlock(pos world.BlockPos, b world.Block) {
	c := w.chunks[world.ChunkPosFromBlock(pos)]
	if c == nil {
		return
	}
	o := c.Position()
	c.SetBlock(pos.X()-o.X(), pos.Y()-o.Y(), pos.Z()-o.Z(), b)
}

func newTestSystem(w *testWorld, budget int) *System {
	return NewSystem(Config{Logger: slog.New(slog.NewTextHandler(io.Discard, nil)), MaxUpdatesPerTick: budget}, w.source)
}

func TestWaterFlowsDown(t *testing.T) {
	w := newTestWorld(world.ChunkPos{})
	// Solid ground at y=4, two air layers, full water source above them.
	for x := 0; x < world.ChunkWidth; x++ {
		for z := 0; z < world.ChunkDepth; z++ {
			w.setBlock(world.BlockPos{x, 4, z}, world.Block{Type: world.Stone})
		}
	}
	src := world.BlockPos{8, 7, 8}
	w.setBlock(src, world.WaterBlock(7))

	s := newTestSystem(w, 64)
	s.Schedule(src)
	s.Tick()

	below := w.block(world.BlockPos{8, 6, 8})
	if below.Type != world.Water || below.Level != 7 {
		t.Fatalf("block below source = %v level %d, want full water", below.Type, below.Level)
	}
	// Downward flow succeeded, and a full source is not drained.
	if got := w.block(src); got.Type != world.Water || got.Level != 7 {
		t.Fatalf("source = %v level %d, want unchanged full water", got.Type, got.Level)
	}
}

func TestPartialSourceDrainsWhenFlowingDown(t *testing.T) {
	w := newTestWorld(world.ChunkPos{})
	src := world.BlockPos{8, 10, 8}
	w.setBlock(src, world.WaterBlock(3))

	s := newTestSystem(w, 64)
	s.Schedule(src)
	s.Tick()

	if got := w.block(world.BlockPos{8, 9, 8}); got.Type != world.Water || got.Level != 7 {
		t.Fatalf("below = %v level %d, want full water", got.Type, got.Level)
	}
	if got := w.block(src); got.Type != world.Water || got.Level != 2 {
		t.Fatalf("source = %v level %d, want water level 2", got.Type, got.Level)
	}
}

func TestLastLevelSourceEmptiesWhenFlowingDown(t *testing.T) {
	w := newTestWorld(world.ChunkPos{})
	src := world.BlockPos{8, 10, 8}
	w.setBlock(src, world.WaterBlock(1))

	s := newTestSystem(w, 64)
	s.Schedule(src)
	s.Tick()

	if got := w.block(world.BlockPos{8, 9, 8}); got.Type != world.Water {
		t.Fatalf("below = %v, want water", got.Type)
	}
	if got := w.block(src); !got.Empty() {
		t.Fatalf("drained source = %v, want air", got.Type)
	}
}

func TestWaterSpreadsSideways(t *testing.T) {
	w := newTestWorld(world.ChunkPos{})
	for x := 0; x < world.ChunkWidth; x++ {
		for z := 0; z < world.ChunkDepth; z++ {
			w.setBlock(world.BlockPos{x, 4, z}, world.Block{Type: world.Stone})
		}
	}
	src := world.BlockPos{8, 5, 8}
	w.setBlock(src, world.WaterBlock(7))

	s := newTestSystem(w, 64)
	s.Schedule(src)
	s.Tick()

	for _, f := range world.HorizontalFaces() {
		np := src.Side(f)
		if got := w.block(np); got.Type != world.Water || got.Level != 6 {
			t.Fatalf("neighbour %v = %v level %d, want water level 6", np, got.Type, got.Level)
		}
	}
	// The spread continues outward on later ticks via the re-queued
	// neighbourhood.
	for i := 0; i < 8; i++ {
		s.Tick()
	}
	if got := w.block(world.BlockPos{10, 5, 8}); got.Type != world.Water || got.Level != 5 {
		t.Fatalf("two cells east = %v level %d, want water level 5", got.Type, got.Level)
	}
}

func TestLevelOneWaterDoesNotSpread(t *testing.T) {
	w := newTestWorld(world.ChunkPos{})
	for x := 0; x < world.ChunkWidth; x++ {
		for z := 0; z < world.ChunkDepth; z++ {
			w.setBlock(world.BlockPos{x, 4, z}, world.Block{Type: world.Stone})
		}
	}
	src := world.BlockPos{8, 5, 8}
	w.setBlock(src, world.WaterBlock(1))

	s := newTestSystem(w, 64)
	s.Schedule(src)
	s.Tick()

	for _, f := range world.HorizontalFaces() {
		if got := w.block(src.Side(f)); !got.Empty() {
			t.Fatalf("level-1 water spread into %v", src.Side(f))
		}
	}
}

func TestNoUpwardCreation(t *testing.T) {
	w := newTestWorld(world.ChunkPos{})
	for x := 0; x < world.ChunkWidth; x++ {
		for z := 0; z < world.ChunkDepth; z++ {
			w.setBlock(world.BlockPos{x, 4, z}, world.Block{Type: world.Stone})
		}
	}
	src := world.BlockPos{8, 5, 8}
	w.setBlock(src, world.WaterBlock(7))

	s := newTestSystem(w, 64)
	s.Schedule(src)
	for i := 0; i < 20; i++ {
		s.Tick()
	}
	for x := 0; x < world.ChunkWidth; x++ {
		for z := 0; z < world.ChunkDepth; z++ {
			for y := 6; y < world.ChunkHeight; y++ {
				if got := w.block(world.BlockPos{x, y, z}); got.Type == world.Water {
					t.Fatalf("water appeared above its source at (%d,%d,%d)", x, y, z)
				}
			}
		}
	}
}

func TestScheduleDeduplicates(t *testing.T) {
	w := newTestWorld(world.ChunkPos{})
	s := newTestSystem(w, 64)
	pos := world.BlockPos{1, 2, 3}
	s.Schedule(pos)
	s.Schedule(pos)
	if got := s.QueueLen(); got != 1 {
		t.Fatalf("queue length = %d after duplicate schedule, want 1", got)
	}
	if scheduled, _ := s.Metrics().Totals(); scheduled != 1 {
		t.Fatalf("scheduled counter = %d, want 1", scheduled)
	}
}

func TestTickRespectsBudget(t *testing.T) {
	w := newTestWorld(world.ChunkPos{})
	s := newTestSystem(w, 2)
	for i := 0; i < 5; i++ {
		s.Schedule(world.BlockPos{i, 10, 0})
	}
	if got := s.Tick(); got != 2 {
		t.Fatalf("tick processed %d voxels, want budget of 2", got)
	}
	if got := s.QueueLen(); got != 3 {
		t.Fatalf("queue length = %d after bounded tick, want 3", got)
	}
}

func TestCrossChunkFlow(t *testing.T) {
	w := newTestWorld(world.ChunkPos{0, 0, 0}, world.ChunkPos{1, 0, 0})
	for x := 0; x < 2*world.ChunkWidth; x++ {
		for z := 0; z < world.ChunkDepth; z++ {
			w.setBlock(world.BlockPos{x, 4, z}, world.Block{Type: world.Stone})
		}
	}
	// Water on the eastern edge of the first chunk spreads into the
	// second chunk through world-space coordinate resolution.
	src := world.BlockPos{15, 5, 8}
	w.setBlock(src, world.WaterBlock(7))
	east := w.chunks[world.ChunkPos{1, 0, 0}]
	east.SetLightingDirty(false)

	s := newTestSystem(w, 64)
	s.Schedule(src)
	s.Tick()

	if got := w.block(world.BlockPos{16, 5, 8}); got.Type != world.Water || got.Level != 6 {
		t.Fatalf("block across the chunk border = %v level %d, want water level 6", got.Type, got.Level)
	}
	if !east.LightingDirty() {
		t.Fatalf("flow into the neighbour chunk did not invalidate its lighting")
	}
}

func TestFlowIntoMissingChunkSkipped(t *testing.T) {
	w := newTestWorld(world.ChunkPos{0, 0, 0})
	for x := 0; x < world.ChunkWidth; x++ {
		for z := 0; z < world.ChunkDepth; z++ {
			w.setBlock(world.BlockPos{x, 4, z}, world.Block{Type: world.Stone})
		}
	}
	src := world.BlockPos{15, 5, 8}
	w.setBlock(src, world.WaterBlock(7))

	s := newTestSystem(w, 64)
	s.Schedule(src)
	// Must not panic; flow into the unavailable chunk is skipped while
	// the in-chunk neighbours still fill.
	s.Tick()
	if got := w.block(world.BlockPos{14, 5, 8}); got.Type != world.Water {
		t.Fatalf("in-chunk neighbour did not fill while the east chunk was missing")
	}
}
