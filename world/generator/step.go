package generator

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/voxelforge/voxelforge/world"
)

// Step is a single stage of the chunk generation pipeline. Steps run in
// registration order and communicate exclusively through the Context, so a
// step must never assume that any later step exists.
type Step interface {
	// Name identifies the step for registration and diagnostics.
	Name() string
	// Generate applies the step to the chunk held by the context. An error
	// aborts the whole chunk: it is never cached partially generated.
	Generate(ctx *Context) error
}

// CloudArea is a bounding box of cloud volume discovered during generation.
// It is a side channel to the render layer: steps report areas, the service
// publishes them, and no block data is involved.
type CloudArea struct {
	ID   uuid.UUID
	Pos  mgl64.Vec3
	Size mgl64.Vec3
}

// Context is the per-invocation bundle handed to every step of a pipeline
// run. The artifact fields carry intermediate results (height map, biome
// map) from early steps to later ones; they are discarded when the run
// ends.
type Context struct {
	// Chunk is the chunk under construction.
	Chunk *world.Chunk
	// Origin is the world-space position of the chunk's lowest corner.
	Origin world.BlockPos
	// Seed is the world seed.
	Seed int64
	// Noise is the noise field for this generation. It is private to the
	// invocation: noise generators are not shared between concurrent runs.
	Noise *NoiseField

	// HeightMap holds the per-column terrain height written by the terrain
	// step, nil until then.
	HeightMap *[world.ChunkWidth][world.ChunkDepth]int
	// BiomeMap holds the per-column biome written by the biome step, nil
	// until then.
	BiomeMap *[world.ChunkWidth][world.ChunkDepth]Biome

	clouds []CloudArea
}

func newContext(c *world.Chunk, seed int64, noise *NoiseField) *Context {
	return &Context{Chunk: c, Origin: c.Position(), Seed: seed, Noise: noise}
}

// BlockAt returns the block at the chunk-local coordinates passed.
func (ctx *Context) BlockAt(x, y, z int) world.Block {
	return ctx.Chunk.Block(x, y, z)
}

// SetBlock sets the block at the chunk-local coordinates passed. The zero
// Block clears the voxel to air.
func (ctx *Context) SetBlock(x, y, z int, b world.Block) {
	ctx.Chunk.SetBlock(x, y, z, b)
}

// ReportCloudArea records a cloud bounding box for the render-side
// consumer. The service publishes all reported areas once the chunk has
// been fully generated.
func (ctx *Context) ReportCloudArea(area CloudArea) {
	ctx.clouds = append(ctx.clouds, area)
}

// CloudAreas returns the cloud areas reported so far.
func (ctx *Context) CloudAreas() []CloudArea {
	return ctx.clouds
}

// biomeMapOrDefault returns the biome map artifact, or a flat Plains map if
// the biome step has not run. The fallback keeps later steps usable on
// their own.
func (ctx *Context) biomeMapOrDefault() *[world.ChunkWidth][world.ChunkDepth]Biome {
	if ctx.BiomeMap != nil {
		return ctx.BiomeMap
	}
	var m [world.ChunkWidth][world.ChunkDepth]Biome
	for x := range m {
		for z := range m[x] {
			m[x][z] = BiomePlains
		}
	}
	return &m
}

// heightMapOrDefault returns the height map artifact, or a constant-height
// map at the Plains base height if the terrain step has not run.
func (ctx *Context) heightMapOrDefault() *[world.ChunkWidth][world.ChunkDepth]int {
	if ctx.HeightMap != nil {
		return ctx.HeightMap
	}
	var m [world.ChunkWidth][world.ChunkDepth]int
	h := BiomePlains.Terrain().BaseHeight
	for x := range m {
		for z := range m[x] {
			m[x][z] = h
		}
	}
	return &m
}
