package integrator

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/scene"
)

// ErrUnknownIntegrator is returned by New for an unrecognized name
var ErrUnknownIntegrator = errors.New("integrator: unknown integrator")

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Li estimates the radiance arriving at the ray origin from the ray direction.
	// The sampler must not be shared with other goroutines.
	Li(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3
}

// Config holds the settings shared by the path integrators
type Config struct {
	MaxDepth                  int // Maximum number of scattering events
	RussianRouletteMinBounces int // Russian roulette starts after this many bounces
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxDepth:                  8,
		RussianRouletteMinBounces: 3,
	}
}

// New creates an integrator by name: "path" or "volpath"
func New(name string, config Config) (Integrator, error) {
	switch name {
	case "path":
		return NewPathIntegrator(config), nil
	case "volpath":
		return NewVolPathIntegrator(config), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownIntegrator, name)
	}
}

// russianRoulette randomly terminates low-throughput paths. It reports whether
// the path survives, in which case beta has been scaled up to stay unbiased.
func russianRoulette(beta *core.Vec3, sampler core.Sampler) bool {
	q := math.Max(0.05, 1-beta.Luminance())
	if sampler.Get1D() < q {
		return false
	}
	*beta = beta.Divide(1 - q)
	return true
}
