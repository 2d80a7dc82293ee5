package generator

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/voxelforge/voxelforge/world"
)

// ServiceConfig holds the tunable parameters of a chunk generation service.
// The zero value is usable; defaults are applied by withDefaults.
type ServiceConfig struct {
	// Logger is the logger the service reports step failures and cache
	// activity to. Defaults to slog.Default().
	Logger *slog.Logger
	// Seed is the world seed every noise field and random stream derives
	// from.
	Seed int64
	// MaxConcurrent bounds the number of chunk generations running at the
	// same time. Defaults to twice the logical core count, at least 4.
	MaxConcurrent int
	// CacheTTL is how long a cached chunk survives after its last access.
	// Defaults to 10 minutes.
	CacheTTL time.Duration
	// SweepInterval is the period of the cache eviction sweep. Defaults to
	// one minute.
	SweepInterval time.Duration
	// Steps is the initial generation pipeline. Defaults to DefaultSteps().
	Steps []Step
	// CloudConsumer receives the cloud areas discovered during generation.
	// Nil drops them.
	CloudConsumer func(CloudArea)
}

func (c ServiceConfig) withDefaults() ServiceConfig {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = max(2*runtime.NumCPU(), 4)
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 10 * time.Minute
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = time.Minute
	}
	if c.Steps == nil {
		c.Steps = DefaultSteps()
	}
	return c
}

// DefaultSteps returns the standard generation pipeline in its canonical
// order. Later steps depend on the artifacts of earlier ones: terrain needs
// the biome map, caves and decoration need the height map.
func DefaultSteps() []Step {
	return []Step{BiomeStep{}, TerrainStep{}, CaveStep{}, CloudStep{}, FeatureStep{}}
}

// Service produces chunks on demand. It owns the ordered generator step
// list, a counting semaphore bounding concurrent generations and a
// time-expiring chunk cache. A Service is safe for concurrent use.
type Service struct {
	log  *slog.Logger
	seed int64

	mu    sync.RWMutex
	steps []Step

	sem     *semaphore.Weighted
	permits int

	cache   *chunkCache
	metrics *Metrics

	cloudMu       sync.RWMutex
	cloudConsumer func(CloudArea)
}

// NewService creates a chunk generation service and starts its cache
// eviction sweep. Close must be called when the service is no longer used.
func NewService(cfg ServiceConfig) *Service {
	cfg = cfg.withDefaults()
	m := newMetrics()
	return &Service{
		log:           cfg.Logger,
		seed:          cfg.Seed,
		steps:         slices.Clone(cfg.Steps),
		sem:           semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		permits:       cfg.MaxConcurrent,
		cache:         newChunkCache(cfg.Logger, cfg.CacheTTL, cfg.SweepInterval, m),
		metrics:       m,
		cloudConsumer: cfg.CloudConsumer,
	}
}

// Close stops the cache sweep. Chunks already handed out stay valid.
func (s *Service) Close() {
	s.cache.close()
}

// Seed returns the world seed of the service.
func (s *Service) Seed() int64 {
	return s.seed
}

// Metrics returns a snapshot of the service counters.
func (s *Service) Metrics() MetricsSnapshot {
	return s.metrics.Snapshot()
}

// MaxConcurrent returns the number of concurrency permits of the service.
func (s *Service) MaxConcurrent() int {
	return s.permits
}

// AddStep appends a generator step to the pipeline. Steps added while
// chunks are being generated only affect generations that start afterwards.
func (s *Service) AddStep(st Step) {
	s.mu.Lock()
	s.steps = append(s.steps, st)
	s.mu.Unlock()
}

// RemoveStep removes the first step with the name passed and reports
// whether one was found.
func (s *Service) RemoveStep(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, st := range s.steps {
		if st.Name() == name {
			s.steps = slices.Delete(s.steps, i, i+1)
			return true
		}
	}
	return false
}

// ClearSteps removes all steps from the pipeline.
func (s *Service) ClearSteps() {
	s.mu.Lock()
	s.steps = nil
	s.mu.Unlock()
}

// Steps returns a snapshot of the pipeline in run order. Mutating the
// returned slice does not affect the service.
func (s *Service) Steps() []Step {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.steps)
}

// ChunkByWorldPosition returns the chunk containing the world position
// passed, generating it if it is not cached. The call blocks until the
// chunk is ready or a step fails; failed chunks are never cached and the
// caller may simply re-request the position to retry.
func (s *Service) ChunkByWorldPosition(ctx context.Context, pos world.BlockPos) (*world.Chunk, error) {
	cpos := world.ChunkPosFromBlock(pos)
	if c, ok := s.cache.get(cpos); ok {
		s.metrics.incHit()
		return c, nil
	}
	s.metrics.incMiss()

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquire generation permit: %w", err)
	}
	defer s.sem.Release(1)

	// Another request may have generated the chunk while this one waited
	// for a permit.
	if c, ok := s.cache.get(cpos); ok {
		s.metrics.incHit()
		return c, nil
	}

	s.metrics.enterGeneration()
	defer s.metrics.leaveGeneration()

	c, clouds, err := s.generate(cpos)
	if err != nil {
		return nil, err
	}
	s.cache.put(cpos, c)
	s.metrics.incGenerated()

	s.cloudMu.RLock()
	consume := s.cloudConsumer
	s.cloudMu.RUnlock()
	if consume != nil {
		for _, area := range clouds {
			consume(area)
		}
	}
	return c, nil
}

// OnCloudArea registers the consumer receiving the cloud areas discovered
// during generation, replacing any previous one. The renderer typically
// registers here to spawn visual cloud volumes; passing nil drops the
// areas.
func (s *Service) OnCloudArea(fn func(CloudArea)) {
	s.cloudMu.Lock()
	s.cloudConsumer = fn
	s.cloudMu.Unlock()
}

// ChunksByPositions resolves a batch of world positions to chunks
// concurrently. Positions inside the same chunk are deduplicated before
// the fan-out, so every chunk is resolved exactly once and shared
// positions yield the same instance. The result preserves the order of
// the positions passed; the first step failure cancels the remaining
// generations.
func (s *Service) ChunksByPositions(ctx context.Context, positions []world.BlockPos) ([]*world.Chunk, error) {
	indices := make(map[world.ChunkPos][]int, len(positions))
	for i, pos := range positions {
		cpos := world.ChunkPosFromBlock(pos)
		indices[cpos] = append(indices[cpos], i)
	}

	chunks := make([]*world.Chunk, len(positions))
	g, ctx := errgroup.WithContext(ctx)
	for cpos, idx := range indices {
		cpos, idx := cpos, idx
		g.Go(func() error {
			c, err := s.ChunkByWorldPosition(ctx, cpos.Origin())
			if err != nil {
				return err
			}
			for _, i := range idx {
				chunks[i] = c
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return chunks, nil
}

// generate runs the pipeline for a single chunk. The step list is
// snapshotted up front so concurrent AddStep/RemoveStep calls cannot race
// with the run, and the noise field is private to the invocation.
func (s *Service) generate(cpos world.ChunkPos) (*world.Chunk, []CloudArea, error) {
	steps := s.Steps()
	c := world.NewChunk(cpos)
	gctx := newContext(c, s.seed, NewNoiseField(s.seed))

	for _, st := range steps {
		if err := st.Generate(gctx); err != nil {
			s.log.Error("chunk generation step failed",
				"chunkX", cpos.X(), "chunkY", cpos.Y(), "chunkZ", cpos.Z(),
				"step", st.Name(), "err", err)
			return nil, nil, fmt.Errorf("generate chunk %v: step %q: %w", cpos, st.Name(), err)
		}
	}
	return c, gctx.CloudAreas(), nil
}
