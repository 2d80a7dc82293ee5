package world

// BlockType identifies the kind of block held in a voxel. The zero value is
// Air, so a zero Block is an empty voxel.
type BlockType uint8

const (
	Air BlockType = iota
	Stone
	Dirt
	Grass
	Sand
	Gravel
	Bedrock
	Water
	Flower
	TallGrass
)

// String returns the lower-case name of the block type.
func (t BlockType) String() string {
	switch t {
	case Air:
		return "air"
	case Stone:
		return "stone"
	case Dirt:
		return "dirt"
	case Grass:
		return "grass"
	case Sand:
		return "sand"
	case Gravel:
		return "gravel"
	case Bedrock:
		return "bedrock"
	case Water:
		return "water"
	case Flower:
		return "flower"
	case TallGrass:
		return "tall_grass"
	}
	return "unknown"
}

// Opacity returns the attenuation the block type applies to light passing
// through it, in [0, 15]. 0 is fully transparent, 15 fully opaque.
func (t BlockType) Opacity() uint8 {
	switch t {
	case Air, Flower, TallGrass:
		return 0
	case Water:
		return 2
	default:
		return 15
	}
}

// LightEmission returns the light level the block type emits on its own.
func (t BlockType) LightEmission() uint8 {
	if t == Water {
		return 8
	}
	return 0
}

// Solid reports if the block type occupies its voxel with a full cube that
// terrain decoration cannot grow through.
func (t BlockType) Solid() bool {
	switch t {
	case Air, Water, Flower, TallGrass:
		return false
	default:
		return true
	}
}

// MaxWaterLevel is the highest fill level a water block may hold.
const MaxWaterLevel = 7

// Block is the content of a single voxel: a block type plus type-specific
// state. Level is only meaningful for Water and is always in
// [0, MaxWaterLevel].
type Block struct {
	Type  BlockType
	Level uint8
}

// WaterBlock returns a water block at the fill level passed, clamped to
// [0, MaxWaterLevel].
func WaterBlock(level uint8) Block {
	if level > MaxWaterLevel {
		level = MaxWaterLevel
	}
	return Block{Type: Water, Level: level}
}

// Empty reports if the block is air.
func (b Block) Empty() bool {
	return b.Type == Air
}
