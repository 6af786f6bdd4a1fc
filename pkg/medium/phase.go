package medium

import (
	"math"

	"github.com/df07/go-volpath/pkg/core"
)

// isotropicThreshold is the |g| below which HG sampling falls back to a uniform sphere
const isotropicThreshold = 1e-3

// HenyeyGreenstein is the Henyey-Greenstein phase function with asymmetry g.
// Positive g favours forward scattering.
type HenyeyGreenstein struct {
	G float64
}

// NewHenyeyGreenstein creates a phase function, clamping g into (-1, 1)
func NewHenyeyGreenstein(g float64) *HenyeyGreenstein {
	return &HenyeyGreenstein{G: core.Clamp(g, -0.999, 0.999)}
}

// PhaseHG evaluates (1-g²)/(4π(1+g²+2g·cosθ)^1.5)
func PhaseHG(cosTheta, g float64) float64 {
	denom := 1 + g*g + 2*g*cosTheta
	return (1 - g*g) / (4 * math.Pi * denom * math.Sqrt(denom))
}

// P evaluates the phase function. wo and wi both point away from the scattering point.
func (hg *HenyeyGreenstein) P(wo, wi core.Vec3) float64 {
	return PhaseHG(wo.Dot(wi), hg.G)
}

// SampleP draws wi with density equal to the phase function value
func (hg *HenyeyGreenstein) SampleP(wo core.Vec3, u core.Vec2) (core.Vec3, float64) {
	g := hg.G
	var cosTheta float64
	if math.Abs(g) < isotropicThreshold {
		cosTheta = 1 - 2*u.X
	} else {
		sqrTerm := (1 - g*g) / (1 + g - 2*g*u.X)
		cosTheta = -(1 + g*g - sqrTerm*sqrTerm) / (2 * g)
	}
	cosTheta = core.Clamp(cosTheta, -1, 1)

	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * u.Y
	frame := core.NewFrame(wo)
	wi := frame.FromLocal(core.SphericalDirection(sinTheta, cosTheta, phi))
	return wi, PhaseHG(cosTheta, g)
}
