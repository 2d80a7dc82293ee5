// Command worldinspect generates the chunk containing a world position and
// prints a per-column summary of the result: surface height, surface block
// and the light level just above the surface. It is a debugging aid for
// tuning generator settings.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/voxelforge/voxelforge/world"
	"github.com/voxelforge/voxelforge/world/generator"
	"github.com/voxelforge/voxelforge/world/light"
)

func main() {
	var (
		confPath = flag.String("config", "config.toml", "path to the TOML configuration")
		x        = flag.Int("x", 0, "world X of the position to inspect")
		z        = flag.Int("z", 0, "world Z of the position to inspect")
		seed     = flag.Int64("seed", 0, "override the configured world seed")
	)
	flag.Parse()

	log := slog.Default()

	conf, err := generator.ReadConfig(*confPath)
	if err != nil {
		log.Error("failed to read config", "path", *confPath, "err", err)
		os.Exit(1)
	}
	if *seed != 0 {
		conf.World.Seed = *seed
	}

	svc := generator.NewService(conf.Service(log))
	defer svc.Close()

	c, err := svc.ChunkByWorldPosition(context.Background(), world.BlockPos{*x, 0, *z})
	if err != nil {
		log.Error("chunk generation failed", "x", *x, "z", *z, "err", err)
		os.Exit(1)
	}
	light.NewEngine(log).Calculate(c)

	origin := c.Position()
	fmt.Printf("chunk %v (origin %v), seed %d\n", c.ChunkPos(), origin, svc.Seed())
	for cz := 0; cz < world.ChunkDepth; cz++ {
		for cx := 0; cx < world.ChunkWidth; cx++ {
			top := c.HighestBlock(cx, cz)
			if top < 0 {
				fmt.Printf("%-12s", "empty")
				continue
			}
			lv := uint8(15)
			if top+1 < world.ChunkHeight {
				lv = c.Light(cx, top+1, cz)
			}
			fmt.Printf("%-12s", fmt.Sprintf("%s:%d/%d", c.Block(cx, top, cz).Type, origin.Y()+top, lv))
		}
		fmt.Println()
	}

	m := svc.Metrics()
	fmt.Printf("generated=%d hits=%d misses=%d\n", m.Generated, m.CacheHits, m.CacheMisses)
}
