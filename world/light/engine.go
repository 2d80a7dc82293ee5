// Package light computes per-voxel illumination for chunks: a top-down
// sunlight pass, a flood-filled block-light pass and a cross-chunk boundary
// reconciliation. Light levels are bytes in [0, 15] and only ever increase
// within a computation (monotonic max-merge); lowering light requires a
// full recomputation of the chunk.
package light

import (
	"log/slog"

	"github.com/voxelforge/voxelforge/world"
)

const maxLight = 15

// Engine recomputes chunk lighting. It holds no per-chunk state and is
// stateless between calls, but must not run concurrently against the same
// chunk's light array.
type Engine struct {
	log *slog.Logger
}

// NewEngine creates a light engine logging to the logger passed, or
// slog.Default() if nil.
func NewEngine(log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{log: log}
}

// Invalidate flags a chunk for relighting after an external block
// mutation. Recomputation itself is deferred to the next Calculate call.
func (e *Engine) Invalidate(c *world.Chunk) {
	c.InvalidateLighting()
}

// Calculate recomputes the full light array of the chunk: sunlight first,
// then block light. Chunks whose lighting is not dirty are skipped
// entirely; the dirty flag is cleared after a successful compute. It
// reports whether any work was done.
func (e *Engine) Calculate(c *world.Chunk) bool {
	if !c.LightingDirty() {
		return false
	}
	c.ResetLight()
	e.sunlight(c)
	e.blockLight(c)
	c.SetLightingDirty(false)
	e.log.Debug("recomputed chunk lighting",
		"chunkX", c.ChunkPos().X(), "chunkY", c.ChunkPos().Y(), "chunkZ", c.ChunkPos().Z())
	return true
}

// sunlight propagates full sunlight down every column, attenuated by the
// opacity of each traversed block. There is no ambient floor: a fully
// enclosed space ends up in true darkness.
func (e *Engine) sunlight(c *world.Chunk) {
	for x := 0; x < world.ChunkWidth; x++ {
		for z := 0; z < world.ChunkDepth; z++ {
			level := uint8(maxLight)
			for y := world.ChunkHeight - 1; y >= 0; y-- {
				opacity := c.Block(x, y, z).Type.Opacity()
				if opacity >= level {
					level = 0
				} else {
					level -= opacity
				}
				if level > c.Light(x, y, z) {
					c.SetLight(x, y, z, level)
				}
				if level == 0 {
					break
				}
			}
		}
	}
}

// blockLight seeds every emissive voxel at its emission intensity and
// relaxes outward through the 6-neighbourhood with a max-priority queue,
// Dijkstra style: a branch stops as soon as the propagated level is no
// improvement over the stored value.
func (e *Engine) blockLight(c *world.Chunk) {
	q := newLightQueue()
	for x := 0; x < world.ChunkWidth; x++ {
		for y := 0; y < world.ChunkHeight; y++ {
			for z := 0; z < world.ChunkDepth; z++ {
				emission := c.Block(x, y, z).Type.LightEmission()
				if emission == 0 {
					continue
				}
				if emission > c.Light(x, y, z) {
					c.SetLight(x, y, z, emission)
				}
				q.push(lightNode{x: x, y: y, z: z, level: emission})
			}
		}
	}

	for q.len() > 0 {
		n := q.pop()
		if n.level < c.Light(n.x, n.y, n.z) {
			// A brighter path reached this voxel after it was queued.
			continue
		}
		for f := world.FaceDown; f <= world.FaceWest; f++ {
			o := f.Offset()
			nx, ny, nz := n.x+o.X(), n.y+o.Y(), n.z+o.Z()
			if nx < 0 || nx >= world.ChunkWidth || ny < 0 || ny >= world.ChunkHeight || nz < 0 || nz >= world.ChunkDepth {
				continue
			}
			next := spread(n.level, c.Block(nx, ny, nz).Type.Opacity())
			if next <= c.Light(nx, ny, nz) {
				continue
			}
			c.SetLight(nx, ny, nz, next)
			q.push(lightNode{x: nx, y: ny, z: nz, level: next})
		}
	}
}

// Neighbours maps the four horizontal faces of a chunk to its adjacent
// chunks. Missing entries are simply skipped during reconciliation.
type Neighbours map[world.Face]*world.Chunk

// PropagateAcross reconciles the boundary light of a chunk with its
// horizontal neighbours. For every face with a neighbour, boundary values
// are pushed one cell into the neighbour and merged via max, then the same
// is done in the opposite direction: a chunk may brighten its neighbour but
// never darken it. The exchange is a single pass; light travelling further
// than one chunk per call needs repeated invocations over growing
// neighbour sets.
func (e *Engine) PropagateAcross(c *world.Chunk, neighbours Neighbours) {
	for _, f := range world.HorizontalFaces() {
		n := neighbours[f]
		if n == nil {
			continue
		}
		exchangeFace(c, n, f)
		exchangeFace(n, c, f.Opposite())
	}
}

// exchangeFace pushes the light of src's boundary face into the adjacent
// cells of dst, attenuated by the receiving cell's opacity and merged via
// max.
func exchangeFace(src, dst *world.Chunk, f world.Face) {
	srcX, srcZ, dstX, dstZ := faceCells(f)
	for i := 0; i < faceLength(f); i++ {
		for y := 0; y < world.ChunkHeight; y++ {
			sx, sz := srcX(i), srcZ(i)
			level := src.Light(sx, y, sz)
			if level == 0 {
				continue
			}
			dx, dz := dstX(i), dstZ(i)
			next := spread(level, dst.Block(dx, y, dz).Type.Opacity())
			if next > dst.Light(dx, y, dz) {
				dst.SetLight(dx, y, dz, next)
			}
		}
	}
}

// spread returns the light level after crossing into a cell with the given
// opacity. Distance alone costs one level, opacity comes on top.
func spread(level, opacity uint8) uint8 {
	cost := 1 + opacity
	if cost >= level {
		return 0
	}
	return level - cost
}

// faceCells returns the coordinate mappings of the boundary cells of a
// horizontal face and of the adjacent cells on the other side.
func faceCells(f world.Face) (srcX, srcZ, dstX, dstZ func(i int) int) {
	fixed := func(v int) func(int) int { return func(int) int { return v } }
	along := func(i int) int { return i }
	switch f {
	case world.FaceNorth:
		return along, fixed(0), along, fixed(world.ChunkDepth - 1)
	case world.FaceSouth:
		return along, fixed(world.ChunkDepth - 1), along, fixed(0)
	case world.FaceWest:
		return fixed(0), along, fixed(world.ChunkWidth - 1), along
	default: // FaceEast
		return fixed(world.ChunkWidth - 1), along, fixed(0), along
	}
}

func faceLength(f world.Face) int {
	if f == world.FaceNorth || f == world.FaceSouth {
		return world.ChunkWidth
	}
	return world.ChunkDepth
}
