package generator

import (
	"testing"

	"github.com/voxelforge/voxelforge/world"
)

func generateWithCaves(t *testing.T, seed int64, cpos world.ChunkPos) *Context {
	t.Helper()
	ctx := newContext(world.NewChunk(cpos), seed, NewNoiseField(seed))
	for _, st := range []Step{BiomeStep{}, TerrainStep{}, CaveStep{}} {
		if err := st.Generate(ctx); err != nil {
			t.Fatalf("step %q failed: %v", st.Name(), err)
		}
	}
	return ctx
}

func TestCavesDeterministic(t *testing.T) {
	a := generateWithCaves(t, 42, world.ChunkPos{0, 0, 0})
	b := generateWithCaves(t, 42, world.ChunkPos{0, 0, 0})
	for x := 0; x < world.ChunkWidth; x++ {
		for y := 0; y < world.ChunkHeight; y++ {
			for z := 0; z < world.ChunkDepth; z++ {
				if a.BlockAt(x, y, z) != b.BlockAt(x, y, z) {
					t.Fatalf("voxel (%d,%d,%d) differs between two generations of the same chunk", x, y, z)
				}
			}
		}
	}
}

func TestCavesNeverBreakBedrock(t *testing.T) {
	for _, cpos := range []world.ChunkPos{{0, 0, 0}, {3, 0, -2}, {-5, 0, 5}} {
		ctx := generateWithCaves(t, 1337, cpos)
		for x := 0; x < world.ChunkWidth; x++ {
			for z := 0; z < world.ChunkDepth; z++ {
				if got := ctx.BlockAt(x, 0, z).Type; got != world.Bedrock {
					t.Fatalf("chunk %v column (%d,%d): bottom block %v after carving, want bedrock", cpos, x, z, got)
				}
			}
		}
	}
}

func TestCavesKeepSurfaceCrust(t *testing.T) {
	for _, seed := range []int64{7, 42, 9001} {
		ctx := generateWithCaves(t, seed, world.ChunkPos{0, 0, 0})
		for x := 0; x < world.ChunkWidth; x++ {
			for z := 0; z < world.ChunkDepth; z++ {
				h := ctx.HeightMap[x][z]
				// Carving refuses everything within surfaceMargin of the
				// surface, so the surface block must have survived.
				if h-1 >= 0 && ctx.BlockAt(x, h-1, z).Empty() {
					t.Fatalf("seed %d column (%d,%d): surface block at y=%d carved away", seed, x, z, h-1)
				}
			}
		}
	}
}

func TestCavesCarveSomewhere(t *testing.T) {
	// Carving is probabilistic per chunk, but across a handful of chunks
	// worms must have opened at least one cavity below the surface.
	carved := false
	for cx := 0; cx < 4 && !carved; cx++ {
		ctx := generateWithCaves(t, 42, world.ChunkPos{cx, 0, 0})
		for x := 0; x < world.ChunkWidth && !carved; x++ {
			for z := 0; z < world.ChunkDepth && !carved; z++ {
				h := ctx.HeightMap[x][z]
				for y := 1; y < h-surfaceMargin; y++ {
					if ctx.BlockAt(x, y, z).Empty() {
						carved = true
						break
					}
				}
			}
		}
	}
	if !carved {
		t.Fatalf("no cave voxel found in four chunks, worms appear not to carve")
	}
}

func TestWormSeedVariesPerChunk(t *testing.T) {
	seen := map[int64]world.ChunkPos{}
	for cx := -2; cx <= 2; cx++ {
		for cz := -2; cz <= 2; cz++ {
			pos := world.ChunkPos{cx, 0, cz}
			s := wormSeed(42, pos)
			if prev, ok := seen[s]; ok {
				t.Fatalf("chunks %v and %v share worm seed %d", prev, pos, s)
			}
			seen[s] = pos
		}
	}
	if wormSeed(1, world.ChunkPos{}) == wormSeed(2, world.ChunkPos{}) {
		t.Fatalf("worm seed ignores the world seed")
	}
}
