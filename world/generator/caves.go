package generator

import (
	"encoding/binary"
	"math"
	"math/rand"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/voxelforge/voxelforge/world"
)

const (
	// wormsPerChunkMin is the lowest number of cave worms seeded in a
	// chunk; up to one more may be added by the chunk's random stream.
	wormsPerChunkMin = 2

	wormStepsMin = 30
	wormStepsMax = 80

	wormRadiusMin = 1.5
	wormRadiusMax = 3.5

	// surfaceMargin is the number of blocks below the recorded surface
	// height that carving must stay clear of, so caves never break the
	// terrain crust.
	surfaceMargin = 3

	caveDirFreq = 1.0 / 24
)

// CaveStep carves worm-shaped cave tunnels through the chunk. Worms are
// seeded per chunk coordinate for the whole 3x3 neighbourhood, so a worm
// starting in a neighbouring chunk carves the same voxels here no matter
// which chunk is generated first.
type CaveStep struct{}

// Name ...
func (CaveStep) Name() string {
	return "caves"
}

// Generate ...
func (CaveStep) Generate(ctx *Context) error {
	heights := ctx.heightMapOrDefault()
	cpos := world.ChunkPosFromBlock(ctx.Origin)

	surface := func(wx, wz int) int {
		lx, lz := wx-ctx.Origin.X(), wz-ctx.Origin.Z()
		if lx >= 0 && lx < world.ChunkWidth && lz >= 0 && lz < world.ChunkDepth {
			return heights[lx][lz]
		}
		return columnHeight(ctx.Noise, biomeAt(ctx.Noise, wx, wz), wx, wz)
	}

	carved := false
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			n := world.ChunkPos{cpos.X() + dx, cpos.Y(), cpos.Z() + dz}
			if carveWormsFrom(ctx, n, surface) {
				carved = true
			}
		}
	}
	if carved {
		ctx.Chunk.InvalidateLighting()
	}
	return nil
}

// carveWormsFrom runs the worms seeded in the chunk at pos and carves the
// parts of their paths that intersect the chunk under generation. It
// reports whether any voxel was carved.
func carveWormsFrom(ctx *Context, pos world.ChunkPos, surface func(wx, wz int) int) bool {
	r := rand.New(rand.NewSource(wormSeed(ctx.Seed, pos)))
	origin := pos.Origin()

	carved := false
	worms := wormsPerChunkMin + r.Intn(2)
	for i := 0; i < worms; i++ {
		head := mgl64.Vec3{
			float64(origin.X()) + r.Float64()*world.ChunkWidth,
			8 + r.Float64()*32,
			float64(origin.Z()) + r.Float64()*world.ChunkDepth,
		}
		dir := mgl64.Vec3{r.Float64()*2 - 1, (r.Float64() - 0.5) * 0.6, r.Float64()*2 - 1}
		if dir.Len() == 0 {
			dir = mgl64.Vec3{1, 0, 0}
		}
		dir = dir.Normalize()

		steps := wormStepsMin + r.Intn(wormStepsMax-wormStepsMin+1)
		radius := wormRadiusMin + r.Float64()*(wormRadiusMax-wormRadiusMin)

		for s := 0; s < steps; s++ {
			if carveSphere(ctx, head, radius, surface) {
				carved = true
			}
			// Bend the path with 3D noise so tunnels wind instead of
			// running straight. The noise depends only on position and
			// seed, keeping the worm reproducible.
			bend := mgl64.Vec3{
				ctx.Noise.Sample3D(head.X(), head.Y(), head.Z(), caveDirFreq, 2),
				ctx.Noise.Sample3D(head.X()+512, head.Y(), head.Z(), caveDirFreq, 2) * 0.5,
				ctx.Noise.Sample3D(head.X(), head.Y(), head.Z()+512, caveDirFreq, 2),
			}
			dir = dir.Add(bend.Mul(0.35))
			if dir.Len() == 0 {
				dir = mgl64.Vec3{1, 0, 0}
			}
			dir = dir.Normalize()
			head = head.Add(dir)
		}
	}
	return carved
}

// carveSphere replaces blocks within radius of centre by air, restricted to
// the chunk under generation. Carving refuses bedrock level and anything
// within surfaceMargin blocks of the recorded surface.
func carveSphere(ctx *Context, centre mgl64.Vec3, radius float64, surface func(wx, wz int) int) bool {
	carved := false
	rr := radius * radius
	minX, maxX := int(math.Floor(centre.X()-radius)), int(math.Ceil(centre.X()+radius))
	minY, maxY := int(math.Floor(centre.Y()-radius)), int(math.Ceil(centre.Y()+radius))
	minZ, maxZ := int(math.Floor(centre.Z()-radius)), int(math.Ceil(centre.Z()+radius))

	for wx := minX; wx <= maxX; wx++ {
		for wy := minY; wy <= maxY; wy++ {
			for wz := minZ; wz <= maxZ; wz++ {
				dx := float64(wx) + 0.5 - centre.X()
				dy := float64(wy) + 0.5 - centre.Y()
				dz := float64(wz) + 0.5 - centre.Z()
				if dx*dx+dy*dy+dz*dz > rr {
					continue
				}
				if wy <= 0 {
					continue
				}
				lx, ly, lz := wx-ctx.Origin.X(), wy-ctx.Origin.Y(), wz-ctx.Origin.Z()
				if lx < 0 || lx >= world.ChunkWidth || ly < 0 || ly >= world.ChunkHeight || lz < 0 || lz >= world.ChunkDepth {
					continue
				}
				if wy >= surface(wx, wz)-surfaceMargin {
					continue
				}
				b := ctx.BlockAt(lx, ly, lz)
				if b.Empty() || b.Type == world.Bedrock || b.Type == world.Water {
					continue
				}
				ctx.SetBlock(lx, ly, lz, world.Block{})
				carved = true
			}
		}
	}
	return carved
}

// wormSeed derives the deterministic random seed of a chunk's worms from
// the world seed and the chunk coordinate.
func wormSeed(seed int64, pos world.ChunkPos) int64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(seed))
	binary.LittleEndian.PutUint64(buf[8:], uint64(int64(pos.X())))
	binary.LittleEndian.PutUint64(buf[16:], uint64(int64(pos.Z())))
	return int64(xxhash.Sum64(buf[:]))
}
