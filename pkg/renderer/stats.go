package renderer

import (
	"time"

	"github.com/df07/go-volpath/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	TotalSamples     int           // Total number of samples taken
	AverageSamples   float64       // Average samples per pixel
	DiscardedSamples int           // Samples with NaN or infinite channels zeroed
	Passes           int           // Progressive passes completed
	Duration         time.Duration // Wall time of the render
	Workers          []WorkerStats // Per-worker breakdown, indexed by worker ID
}

// WorkerStats records how much of the image one worker rendered
type WorkerStats struct {
	ID       int
	Tiles    int
	Samples  int
	Duration time.Duration // Time spent rendering, excluding waits for work
}

// SamplesPerSecond returns the overall throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // Linear RGB sum of accepted samples
	SampleCount int       // Number of accepted samples
}

// AddSample adds a radiance sample. NaN or infinite channels are zeroed and
// the sample still counts; the result reports whether that happened.
func (ps *PixelStats) AddSample(color core.Vec3) bool {
	sanitized := color.HasNaN()
	if sanitized {
		color = color.Sanitize()
	}
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
	return sanitized
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}
