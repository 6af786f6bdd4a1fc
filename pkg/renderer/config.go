package renderer

import (
	"errors"
	"fmt"

	"github.com/df07/go-volpath/pkg/integrator"
	"github.com/df07/go-volpath/pkg/scene"
)

var (
	ErrNoScene           = errors.New("renderer: no scene")
	ErrNoCamera          = errors.New("renderer: scene has no camera")
	ErrNoIntegrator      = errors.New("renderer: no integrator")
	ErrInvalidResolution = errors.New("renderer: invalid resolution")
	ErrInvalidConfig     = errors.New("renderer: invalid configuration")
	ErrInterrupted       = errors.New("renderer: render interrupted")
)

// Config contains everything that controls a render besides the scene itself
type Config struct {
	Width           int   `json:"width"`
	Height          int   `json:"height"`
	SamplesPerPixel int   `json:"samples_per_pixel"`
	MaxDepth        int   `json:"max_depth"`
	RRMinBounces    int   `json:"rr_min_bounces"`
	TileSize        int   `json:"tile_size"`
	Passes          int   `json:"passes"`      // Progressive passes the samples are spread over
	NumWorkers      int   `json:"num_workers"` // 0 = use CPU count
	Seed            int64 `json:"seed"`
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		Height:          400,
		SamplesPerPixel: 64,
		MaxDepth:        8,
		RRMinBounces:    3,
		TileSize:        32,
		Passes:          1,
		NumWorkers:      0,
		Seed:            42,
	}
}

// ConfigForScene starts from the defaults and takes resolution, sample count and
// path length from the scene's preferred settings
func ConfigForScene(s *scene.Scene) Config {
	config := DefaultConfig()
	sc := s.SamplingConfig
	if sc.Width > 0 {
		config.Width = sc.Width
	}
	if sc.Height > 0 {
		config.Height = sc.Height
	}
	if sc.SamplesPerPixel > 0 {
		config.SamplesPerPixel = sc.SamplesPerPixel
	}
	if sc.MaxDepth > 0 {
		config.MaxDepth = sc.MaxDepth
	}
	config.RRMinBounces = sc.RussianRouletteMinBounces
	return config
}

// Validate reports the first problem that would prevent a render
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidResolution, c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("%w: tile size must be positive, got %d", ErrInvalidConfig, c.TileSize)
	}
	if c.Passes <= 0 || c.Passes > c.SamplesPerPixel {
		return fmt.Errorf("%w: passes must be in [1, %d], got %d", ErrInvalidConfig, c.SamplesPerPixel, c.Passes)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: worker count must not be negative, got %d", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}

// IntegratorConfig extracts the settings the integrators need
func (c Config) IntegratorConfig() integrator.Config {
	return integrator.Config{
		MaxDepth:                  c.MaxDepth,
		RussianRouletteMinBounces: c.RRMinBounces,
	}
}
