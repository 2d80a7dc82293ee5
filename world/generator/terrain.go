package generator

import (
	"github.com/voxelforge/voxelforge/world"
)

// TerrainSettings is the height and ground-cover profile of a biome.
type TerrainSettings struct {
	// BaseHeight is the minimum surface height of the biome.
	BaseHeight int
	// HeightVariation scales the noise contribution added on top of
	// BaseHeight.
	HeightVariation int
	// WaterLevel is the world Y up to which columns are flooded when the
	// terrain stays below it.
	WaterLevel int

	// Surface, Subsurface and Deep are the block types of the top block,
	// the three blocks under it and everything below.
	Surface    world.BlockType
	Subsurface world.BlockType
	Deep       world.BlockType

	// FlowerChance and GrassChance are per-column decoration probabilities
	// used by the feature step. Zero disables decoration for the biome.
	FlowerChance float64
	GrassChance  float64
}

// Terrain returns the terrain settings of the biome.
func (b Biome) Terrain() TerrainSettings {
	switch b {
	case BiomeOcean:
		return TerrainSettings{
			BaseHeight: 18, HeightVariation: 6, WaterLevel: 28,
			Surface: world.Sand, Subsurface: world.Sand, Deep: world.Stone,
		}
	case BiomeForest:
		return TerrainSettings{
			BaseHeight: 32, HeightVariation: 8, WaterLevel: 28,
			Surface: world.Grass, Subsurface: world.Dirt, Deep: world.Stone,
			FlowerChance: 0.05, GrassChance: 0.35,
		}
	case BiomeMountains:
		return TerrainSettings{
			BaseHeight: 34, HeightVariation: 22, WaterLevel: 28,
			Surface: world.Stone, Subsurface: world.Stone, Deep: world.Stone,
		}
	default:
		return TerrainSettings{
			BaseHeight: 30, HeightVariation: 6, WaterLevel: 28,
			Surface: world.Grass, Subsurface: world.Dirt, Deep: world.Stone,
			FlowerChance: 0.02, GrassChance: 0.2,
		}
	}
}

// terrainFreq is the first-octave frequency of the surface height noise.
const terrainFreq = 1.0 / 64

// minColumnHeight is the floor applied to every generated column height.
const minColumnHeight = 2

// columnHeight computes the surface height of the world column (x, z) for a
// biome. The height depends only on the seed behind the noise field, the
// coordinates and the biome, so any step may recompute it for columns
// outside the chunk being generated.
func columnHeight(n *NoiseField, b Biome, x, z int) int {
	set := b.Terrain()
	v := n.Sample2D(float64(x), float64(z), terrainFreq, 4)
	h := set.BaseHeight + int((v+1)/2*float64(set.HeightVariation))
	if h < minColumnHeight {
		h = minColumnHeight
	}
	return h
}

// TerrainStep builds the vertical block columns of the chunk from the biome
// map and writes the height map artifact.
type TerrainStep struct{}

// Name ...
func (TerrainStep) Name() string {
	return "terrain"
}

// Generate ...
func (TerrainStep) Generate(ctx *Context) error {
	biomes := ctx.biomeMapOrDefault()

	var heights [world.ChunkWidth][world.ChunkDepth]int
	for x := 0; x < world.ChunkWidth; x++ {
		for z := 0; z < world.ChunkDepth; z++ {
			b := biomes[x][z]
			set := b.Terrain()
			h := columnHeight(ctx.Noise, b, ctx.Origin.X()+x, ctx.Origin.Z()+z)
			heights[x][z] = h

			for y := 0; y < world.ChunkHeight; y++ {
				wy := ctx.Origin.Y() + y
				switch {
				case wy <= 0:
					ctx.SetBlock(x, y, z, world.Block{Type: world.Bedrock})
				case wy < h-4:
					ctx.SetBlock(x, y, z, world.Block{Type: set.Deep})
				case wy < h-1:
					ctx.SetBlock(x, y, z, world.Block{Type: set.Subsurface})
				case wy == h-1:
					ctx.SetBlock(x, y, z, world.Block{Type: set.Surface})
				case wy <= set.WaterLevel:
					ctx.SetBlock(x, y, z, world.WaterBlock(world.MaxWaterLevel))
				}
			}
		}
	}

	ctx.HeightMap = &heights
	ctx.Chunk.InvalidateLighting()
	return nil
}
