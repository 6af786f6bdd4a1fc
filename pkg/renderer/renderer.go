package renderer

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/integrator"
	"github.com/df07/go-volpath/pkg/log"
	"github.com/df07/go-volpath/pkg/scene"
)

var logger = log.New("renderer")

// PassResult is handed to the pass callback after every progressive pass
type PassResult struct {
	PassNumber  int
	Framebuffer *Framebuffer // Shared with the renderer; read it before returning
	Stats       RenderStats
	IsLast      bool
}

// Renderer renders a scene with an integrator into a framebuffer, spreading
// tiles over a pool of workers and the samples over progressive passes
type Renderer struct {
	scene       *scene.Scene
	integrator  integrator.Integrator
	config      Config
	logger      core.Logger
	tiles       []*Tile
	framebuffer *Framebuffer
	progress    atomic.Int64
}

// New validates the inputs and prepares a renderer. The scene is preprocessed
// here if that has not happened yet. A nil logger logs to the "renderer" module.
func New(s *scene.Scene, integ integrator.Integrator, config Config, progressLogger core.Logger) (*Renderer, error) {
	if s == nil {
		return nil, ErrNoScene
	}
	if s.Camera == nil {
		return nil, ErrNoCamera
	}
	if integ == nil {
		return nil, ErrNoIntegrator
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if s.BVH == nil {
		if err := s.Preprocess(rand.New(rand.NewSource(config.Seed))); err != nil {
			return nil, fmt.Errorf("renderer: preparing scene: %w", err)
		}
	}
	if config.NumWorkers == 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if progressLogger == nil {
		progressLogger = log.Printer{Logger: logger}
	}

	return &Renderer{
		scene:       s,
		integrator:  integ,
		config:      config,
		logger:      progressLogger,
		tiles:       NewTileGrid(config.Width, config.Height, config.TileSize, config.Seed),
		framebuffer: NewFramebuffer(config.Width, config.Height),
	}, nil
}

// Config returns the configuration in use, with the worker count resolved
func (r *Renderer) Config() Config {
	return r.config
}

// Framebuffer returns the image being rendered
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.framebuffer
}

// Progress returns the samples taken so far and the total the render will take.
// It is safe to call while Render runs.
func (r *Renderer) Progress() (done, total int64) {
	return r.progress.Load(), int64(r.config.Width) * int64(r.config.Height) * int64(r.config.SamplesPerPixel)
}

// getSamplesForPass calculates the target total samples for a given pass
func (r *Renderer) getSamplesForPass(passNumber int) int {
	if r.config.Passes == 1 || passNumber >= r.config.Passes {
		return r.config.SamplesPerPixel
	}

	// First pass is a one-sample preview; the rest are spread evenly
	const initialSamples = 1
	if passNumber == 1 {
		return initialSamples
	}
	samplesPerPass := (r.config.SamplesPerPixel - initialSamples) / (r.config.Passes - 1)
	return initialSamples + (passNumber-1)*samplesPerPass
}

// Render runs every pass and returns the framebuffer with the statistics.
// Each call starts from an empty image with freshly seeded tiles. If
// ctx is cancelled the partial framebuffer is returned with an error wrapping
// ErrInterrupted and the context error. onPass may be nil.
func (r *Renderer) Render(ctx context.Context, onPass func(PassResult)) (*Framebuffer, RenderStats, error) {
	start := time.Now()
	r.progress.Store(0)
	r.framebuffer.Reset()
	r.tiles = NewTileGrid(r.config.Width, r.config.Height, r.config.TileSize, r.config.Seed)
	tr := NewTileRenderer(r.scene, r.integrator, r.config.Width, r.config.Height, &r.progress)
	pool := NewWorkerPool(tr, r.framebuffer, len(r.tiles), r.config.NumWorkers)
	pool.Start(ctx)
	defer pool.Stop()

	stats := RenderStats{
		TotalPixels: r.config.Width * r.config.Height,
		Workers:     make([]WorkerStats, pool.GetNumWorkers()),
	}
	for i := range stats.Workers {
		stats.Workers[i].ID = i
	}

	r.logger.Printf("Rendering %dx%d at %d spp in %d pass(es) on %d workers",
		r.config.Width, r.config.Height, r.config.SamplesPerPixel, r.config.Passes, pool.GetNumWorkers())

	for pass := 1; pass <= r.config.Passes; pass++ {
		if err := ctx.Err(); err != nil {
			return r.interrupted(stats, start, err)
		}

		passStart := time.Now()
		targetSamples := r.getSamplesForPass(pass)
		for i, tile := range r.tiles {
			pool.SubmitTask(TileTask{Tile: tile, PassNumber: pass, TargetSamples: targetSamples, TaskID: i})
		}

		var passErr error
		for range r.tiles {
			result, ok := pool.GetResult()
			if !ok {
				return r.framebuffer, stats, fmt.Errorf("renderer: worker pool closed unexpectedly")
			}
			if result.Error != nil {
				passErr = result.Error
				continue
			}
			r.tiles[result.TaskID].PassesCompleted++
			worker := &stats.Workers[result.WorkerID]
			worker.Tiles++
			worker.Samples += result.Stats.Samples
			worker.Duration += result.Duration
			stats.TotalSamples += result.Stats.Samples
			stats.DiscardedSamples += result.Stats.Discarded
		}
		if passErr != nil {
			return r.interrupted(stats, start, passErr)
		}

		stats.Passes = pass
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
		stats.Duration = time.Since(start)
		r.logger.Printf("Pass %d completed in %v (%d samples/pixel)", pass, time.Since(passStart), targetSamples)

		if onPass != nil {
			onPass(PassResult{
				PassNumber:  pass,
				Framebuffer: r.framebuffer,
				Stats:       stats,
				IsLast:      pass == r.config.Passes,
			})
		}
	}

	stats.Duration = time.Since(start)
	logger.Noticef("rendered %d samples in %v (%.0f samples/s, %d discarded)",
		stats.TotalSamples, stats.Duration, stats.SamplesPerSecond(), stats.DiscardedSamples)
	return r.framebuffer, stats, nil
}

func (r *Renderer) interrupted(stats RenderStats, start time.Time, cause error) (*Framebuffer, RenderStats, error) {
	stats.Duration = time.Since(start)
	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	logger.Warningf("render interrupted after %d pass(es): %v", stats.Passes, cause)
	return r.framebuffer, stats, fmt.Errorf("%w: %w", ErrInterrupted, cause)
}
