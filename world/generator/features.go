package generator

import (
	"github.com/segmentio/fasthash/fnv1a"

	"github.com/voxelforge/voxelforge/world"
)

// featureDensityFreq is the frequency of the coarse noise that gates tall
// grass patches, so grass clusters instead of being uniformly sprinkled.
const featureDensityFreq = 1.0 / 32

// FeatureStep places decorative blocks (flowers, tall grass) on qualifying
// surface columns. Placement is a deterministic function of world
// coordinates and seed, independent of generation order.
type FeatureStep struct{}

// Name ...
func (FeatureStep) Name() string {
	return "features"
}

// Generate ...
func (FeatureStep) Generate(ctx *Context) error {
	biomes := ctx.biomeMapOrDefault()
	heights := ctx.heightMapOrDefault()

	for x := 0; x < world.ChunkWidth; x++ {
		for z := 0; z < world.ChunkDepth; z++ {
			set := biomes[x][z].Terrain()
			if set.FlowerChance == 0 && set.GrassChance == 0 {
				continue
			}

			surfaceY := heights[x][z] - 1 - ctx.Origin.Y()
			above := surfaceY + 1
			if surfaceY < 0 || above >= world.ChunkHeight {
				continue
			}
			if ctx.BlockAt(x, surfaceY, z).Type != world.Grass || !ctx.BlockAt(x, above, z).Empty() {
				continue
			}

			wx, wz := ctx.Origin.X()+x, ctx.Origin.Z()+z
			flowerRoll, grassRoll := featureRolls(ctx.Seed, wx, wz)
			switch {
			case flowerRoll < set.FlowerChance:
				ctx.SetBlock(x, above, z, world.Block{Type: world.Flower})
			case grassRoll < set.GrassChance &&
				ctx.Noise.Sample2D(float64(wx), float64(wz), featureDensityFreq, 2) > 0:
				ctx.SetBlock(x, above, z, world.Block{Type: world.TallGrass})
			}
		}
	}
	return nil
}

// featureRolls derives two independent uniform values in [0, 1) from the
// world column and seed.
func featureRolls(seed int64, x, z int) (float64, float64) {
	h := fnv1a.Init64
	h = fnv1a.AddUint64(h, uint64(seed))
	h = fnv1a.AddUint64(h, uint64(int64(x)))
	h = fnv1a.AddUint64(h, uint64(int64(z)))
	const scale = 1 << 24
	a := float64(h&(scale-1)) / scale
	b := float64((h>>24)&(scale-1)) / scale
	return a, b
}
