package renderer

import (
	"image"
	"sync/atomic"

	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/geometry"
	"github.com/df07/go-volpath/pkg/integrator"
	"github.com/df07/go-volpath/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene         *scene.Scene
	camera        *geometry.Camera
	integrator    integrator.Integrator
	width, height int
	progress      *atomic.Int64 // Samples taken so far, shared by all workers
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(s *scene.Scene, integ integrator.Integrator, width, height int, progress *atomic.Int64) *TileRenderer {
	if progress == nil {
		progress = &atomic.Int64{}
	}
	return &TileRenderer{
		scene:      s,
		camera:     s.Camera,
		integrator: integ,
		width:      width,
		height:     height,
		progress:   progress,
	}
}

// TileStats is what rendering one tile for one pass produced
type TileStats struct {
	Samples   int
	Discarded int
}

// RenderTileBounds brings every pixel in bounds up to targetSamples
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, fb *Framebuffer, sampler core.Sampler, targetSamples int) TileStats {
	var stats TileStats
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			taken, discarded := tr.samplePixel(x, y, fb.Pixel(x, y), sampler, targetSamples)
			stats.Samples += taken
			stats.Discarded += discarded
		}
	}
	tr.progress.Add(int64(stats.Samples))
	return stats
}

// samplePixel traces jittered camera rays through pixel (x, y)
func (tr *TileRenderer) samplePixel(x, y int, ps *PixelStats, sampler core.Sampler, targetSamples int) (int, int) {
	taken, discarded := 0, 0
	for ps.SampleCount < targetSamples {
		jitter := sampler.Get2D()
		s := (float64(x) + jitter.X) / float64(tr.width)
		t := 1 - (float64(y)+jitter.Y)/float64(tr.height)
		ray := tr.camera.GetRay(s, t, sampler.Get2D(), sampler.Get1D())

		if ps.AddSample(tr.integrator.Li(ray, tr.scene, sampler)) {
			discarded++
		}
		taken++
	}
	return taken, discarded
}
