package world

// BlockPos holds the position of a block in world space. The position is
// absolute: the same BlockPos refers to the same voxel regardless of which
// chunk currently holds it.
type BlockPos [3]int

// X returns the X coordinate of the block position.
func (p BlockPos) X() int {
	return p[0]
}

// Y returns the Y coordinate of the block position.
func (p BlockPos) Y() int {
	return p[1]
}

// Z returns the Z coordinate of the block position.
func (p BlockPos) Z() int {
	return p[2]
}

// Add returns the position translated by another position.
func (p BlockPos) Add(o BlockPos) BlockPos {
	return BlockPos{p[0] + o[0], p[1] + o[1], p[2] + o[2]}
}

// Side returns the position on the side of this block position, at a
// specific face.
func (p BlockPos) Side(f Face) BlockPos {
	return p.Add(f.Offset())
}

// ChunkPos holds the position of a chunk in units of whole chunks. A chunk
// at ChunkPos{1, 0, 0} has its origin at block X = ChunkWidth.
type ChunkPos [3]int

// X returns the X coordinate of the chunk position.
func (p ChunkPos) X() int {
	return p[0]
}

// Y returns the Y coordinate of the chunk position.
func (p ChunkPos) Y() int {
	return p[1]
}

// Z returns the Z coordinate of the chunk position.
func (p ChunkPos) Z() int {
	return p[2]
}

// Origin returns the world-space block position of the chunk's lowest
// corner. The result is always chunk-aligned.
func (p ChunkPos) Origin() BlockPos {
	return BlockPos{p[0] * ChunkWidth, p[1] * ChunkHeight, p[2] * ChunkDepth}
}

// Side returns the chunk position adjacent to this one at a horizontal
// face. FaceDown and FaceUp return the position unchanged: chunks are not
// stacked along Y by the systems that exchange data between neighbours.
func (p ChunkPos) Side(f Face) ChunkPos {
	o := f.Offset()
	return ChunkPos{p[0] + o[0], p[1], p[2] + o[2]}
}

// ChunkPosFromBlock returns the position of the chunk that contains the
// block position passed.
func ChunkPosFromBlock(pos BlockPos) ChunkPos {
	return ChunkPos{
		floorDiv(pos[0], ChunkWidth),
		floorDiv(pos[1], ChunkHeight),
		floorDiv(pos[2], ChunkDepth),
	}
}

// Face enumerates the six faces of a voxel.
type Face int

const (
	FaceDown Face = iota
	FaceUp
	FaceNorth
	FaceEast
	FaceSouth
	FaceWest
)

// Offset returns the block offset of the face.
func (f Face) Offset() BlockPos {
	switch f {
	case FaceDown:
		return BlockPos{0, -1, 0}
	case FaceUp:
		return BlockPos{0, 1, 0}
	case FaceNorth:
		return BlockPos{0, 0, -1}
	case FaceEast:
		return BlockPos{1, 0, 0}
	case FaceSouth:
		return BlockPos{0, 0, 1}
	case FaceWest:
		return BlockPos{-1, 0, 0}
	}
	return BlockPos{}
}

// Opposite returns the face on the other side of the voxel.
func (f Face) Opposite() Face {
	switch f {
	case FaceDown:
		return FaceUp
	case FaceUp:
		return FaceDown
	case FaceNorth:
		return FaceSouth
	case FaceEast:
		return FaceWest
	case FaceSouth:
		return FaceNorth
	case FaceWest:
		return FaceEast
	}
	return f
}

// HorizontalFaces returns the four horizontal faces in a fixed order. The
// order is part of the cross-chunk light exchange contract: it makes the
// reconciliation pass deterministic.
func HorizontalFaces() [4]Face {
	return [4]Face{FaceNorth, FaceEast, FaceSouth, FaceWest}
}

// floorDiv divides a by b, rounding towards negative infinity. Go's integer
// division truncates towards zero, which is wrong for negative block
// coordinates.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
