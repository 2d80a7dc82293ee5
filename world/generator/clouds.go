package generator

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/voxelforge/voxelforge/world"
)

const (
	// cloudBase and cloudTop bound the world-Y band clouds may occupy.
	cloudBase = 52
	cloudTop  = 56

	// cloudClearance is the minimum air gap required between the terrain
	// surface and the cloud band for a column to qualify.
	cloudClearance = 4

	cloudFreq      = 1.0 / 48
	cloudThreshold = 0.45
)

// CloudStep detects where the sky above the chunk is clear and covered
// enough to host a cloud volume. It mutates no blocks: a single bounding
// box of all qualifying voxels is reported through the cloud side channel.
type CloudStep struct{}

// Name ...
func (CloudStep) Name() string {
	return "clouds"
}

// Generate ...
func (CloudStep) Generate(ctx *Context) error {
	heights := ctx.heightMapOrDefault()

	bandMin := cloudBase - ctx.Origin.Y()
	bandMax := cloudTop - ctx.Origin.Y()
	if bandMax < 0 || bandMin >= world.ChunkHeight {
		return nil
	}
	bandMin = max(bandMin, 0)
	bandMax = min(bandMax, world.ChunkHeight-1)

	found := false
	var minX, minY, minZ, maxX, maxY, maxZ int
	for x := 0; x < world.ChunkWidth; x++ {
		for z := 0; z < world.ChunkDepth; z++ {
			if heights[x][z]+cloudClearance > cloudBase {
				continue
			}
			wx, wz := ctx.Origin.X()+x, ctx.Origin.Z()+z
			if ctx.Noise.Sample2D(float64(wx), float64(wz), cloudFreq, 2) <= cloudThreshold {
				continue
			}
			if !found {
				minX, maxX = x, x
				minZ, maxZ = z, z
				minY, maxY = bandMin, bandMax
				found = true
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minZ, maxZ = min(minZ, z), max(maxZ, z)
		}
	}
	if !found {
		return nil
	}

	ctx.ReportCloudArea(CloudArea{
		ID: uuid.New(),
		Pos: mgl64.Vec3{
			float64(ctx.Origin.X() + minX),
			float64(ctx.Origin.Y() + minY),
			float64(ctx.Origin.Z() + minZ),
		},
		Size: mgl64.Vec3{
			float64(maxX - minX + 1),
			float64(maxY - minY + 1),
			float64(maxZ - minZ + 1),
		},
	})
	return nil
}
