package world

// Chunk dimensions in blocks. These are constant across every chunk in a
// world: all coordinate maths in this module depends on them.
const (
	ChunkWidth  = 16
	ChunkHeight = 64
	ChunkDepth  = 16

	// ChunkVolume is the number of voxels in a chunk. The light array of a
	// chunk always has exactly this length.
	ChunkVolume = ChunkWidth * ChunkHeight * ChunkDepth
)

// Chunk is a fixed-size 3D grid of blocks with a parallel per-voxel light
// array. A chunk is created once per chunk coordinate and mutated in place
// by generator steps, the light engine and the water simulation. The chunk
// itself does no locking: a caller mutating a published chunk must
// serialise its own writes.
type Chunk struct {
	pos    ChunkPos
	origin BlockPos

	blocks [ChunkVolume]Block
	light  [ChunkVolume]uint8

	lightingDirty bool
}

// NewChunk creates an empty, air-filled chunk at the chunk position passed.
// New chunks start with dirty lighting so that a first light pass always
// runs.
func NewChunk(pos ChunkPos) *Chunk {
	return &Chunk{pos: pos, origin: pos.Origin(), lightingDirty: true}
}

// Position returns the world-space block position of the chunk's lowest
// corner, always a multiple of the chunk size along each axis.
func (c *Chunk) Position() BlockPos {
	return c.origin
}

// ChunkPos returns the position of the chunk in units of whole chunks.
func (c *Chunk) ChunkPos() ChunkPos {
	return c.pos
}

// Block returns the block at the chunk-local coordinates passed. Coordinates
// outside the chunk bounds yield air.
func (c *Chunk) Block(x, y, z int) Block {
	if !inBounds(x, y, z) {
		return Block{}
	}
	return c.blocks[blockIndex(x, y, z)]
}

// SetBlock sets the block at the chunk-local coordinates passed. The zero
// Block clears the voxel to air. Out-of-bounds coordinates are ignored and
// water levels are clamped to MaxWaterLevel.
func (c *Chunk) SetBlock(x, y, z int, b Block) {
	if !inBounds(x, y, z) {
		return
	}
	if b.Type == Water && b.Level > MaxWaterLevel {
		b.Level = MaxWaterLevel
	}
	c.blocks[blockIndex(x, y, z)] = b
}

// Light returns the stored light level of the voxel at the chunk-local
// coordinates passed, in [0, 15]. Out-of-bounds coordinates yield 0.
func (c *Chunk) Light(x, y, z int) uint8 {
	if !inBounds(x, y, z) {
		return 0
	}
	return c.light[blockIndex(x, y, z)]
}

// SetLight stores the light level of a voxel. Values above 15 are clamped.
func (c *Chunk) SetLight(x, y, z int, level uint8) {
	if !inBounds(x, y, z) {
		return
	}
	if level > 15 {
		level = 15
	}
	c.light[blockIndex(x, y, z)] = level
}

// ResetLight zeroes the entire light array.
func (c *Chunk) ResetLight() {
	for i := range c.light {
		c.light[i] = 0
	}
}

// HighestBlock returns the Y coordinate (chunk-local) of the highest
// non-air block in the column at (x, z), or -1 if the column is empty.
func (c *Chunk) HighestBlock(x, z int) int {
	for y := ChunkHeight - 1; y >= 0; y-- {
		if !c.Block(x, y, z).Empty() {
			return y
		}
	}
	return -1
}

// InvalidateLighting flags the chunk for relighting. It only sets the dirty
// flag: recomputation is deferred until the light engine next visits the
// chunk.
func (c *Chunk) InvalidateLighting() {
	c.lightingDirty = true
}

// LightingDirty reports if the chunk needs a light recomputation.
func (c *Chunk) LightingDirty() bool {
	return c.lightingDirty
}

// SetLightingDirty sets the dirty flag directly. The light engine clears it
// after a successful compute.
func (c *Chunk) SetLightingDirty(dirty bool) {
	c.lightingDirty = dirty
}

func inBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkWidth && y >= 0 && y < ChunkHeight && z >= 0 && z < ChunkDepth
}

func blockIndex(x, y, z int) int {
	return (y*ChunkDepth+z)*ChunkWidth + x
}
