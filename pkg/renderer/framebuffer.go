package renderer

import (
	"github.com/df07/go-volpath/pkg/core"
)

// Framebuffer accumulates linear RGB radiance per pixel. Row 0 is the top of
// the image. Concurrent writers must touch disjoint pixels.
type Framebuffer struct {
	Width, Height int
	pixels        []PixelStats
}

// NewFramebuffer creates an empty framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		pixels: make([]PixelStats, width*height),
	}
}

// Size returns the image dimensions
func (fb *Framebuffer) Size() (int, int) {
	return fb.Width, fb.Height
}

// Pixel returns the accumulator for pixel (x, y)
func (fb *Framebuffer) Pixel(x, y int) *PixelStats {
	return &fb.pixels[y*fb.Width+x]
}

// AddSample accumulates one radiance sample; it reports whether the sample
// had to be sanitized
func (fb *Framebuffer) AddSample(x, y int, color core.Vec3) bool {
	return fb.Pixel(x, y).AddSample(color)
}

// Sum returns the accumulated radiance and sample count of pixel (x, y)
func (fb *Framebuffer) Sum(x, y int) (core.Vec3, int) {
	p := fb.Pixel(x, y)
	return p.ColorAccum, p.SampleCount
}

// Color returns the mean radiance of pixel (x, y)
func (fb *Framebuffer) Color(x, y int) core.Vec3 {
	return fb.Pixel(x, y).GetColor()
}

// Reset clears every pixel
func (fb *Framebuffer) Reset() {
	clear(fb.pixels)
}

// TotalSamples counts the samples accumulated over the whole image
func (fb *Framebuffer) TotalSamples() int {
	total := 0
	for i := range fb.pixels {
		total += fb.pixels[i].SampleCount
	}
	return total
}
