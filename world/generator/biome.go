package generator

import (
	"github.com/voxelforge/voxelforge/world"
)

// Biome classifies a terrain column. The biome decides the height profile,
// ground cover and decoration of the column.
type Biome uint8

const (
	BiomeOcean Biome = iota
	BiomePlains
	BiomeForest
	BiomeMountains
)

// String returns the lower-case name of the biome.
func (b Biome) String() string {
	switch b {
	case BiomeOcean:
		return "ocean"
	case BiomePlains:
		return "plains"
	case BiomeForest:
		return "forest"
	case BiomeMountains:
		return "mountains"
	}
	return "unknown"
}

// biomeFreq is the first-octave frequency of the biome classification
// noise. It is far lower than the terrain frequency so biomes span many
// chunks.
const biomeFreq = 1.0 / 256

// biomeFor buckets a noise value in [-1, 1] into a biome.
func biomeFor(v float64) Biome {
	switch {
	case v < -0.35:
		return BiomeOcean
	case v < 0.1:
		return BiomePlains
	case v < 0.35:
		return BiomeForest
	default:
		return BiomeMountains
	}
}

// biomeAt classifies the world column (x, z) directly from noise. Steps use
// it when they need the biome of a column outside the chunk being
// generated.
func biomeAt(n *NoiseField, x, z int) Biome {
	return biomeFor(n.Sample2D(float64(x), float64(z), biomeFreq, 3))
}

// BiomeStep classifies every column of the chunk and writes the biome map
// artifact for the steps that follow.
type BiomeStep struct{}

// Name ...
func (BiomeStep) Name() string {
	return "biome"
}

// Generate ...
func (BiomeStep) Generate(ctx *Context) error {
	var m [world.ChunkWidth][world.ChunkDepth]Biome
	for x := 0; x < len(m); x++ {
		for z := 0; z < len(m[x]); z++ {
			m[x][z] = biomeAt(ctx.Noise, ctx.Origin.X()+x, ctx.Origin.Z()+z)
		}
	}
	ctx.BiomeMap = &m
	return nil
}
