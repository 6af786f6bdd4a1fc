package lights

import (
	"math"

	"github.com/df07/go-volpath/pkg/core"
)

// PointLight emits uniformly in every direction from a single point
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3
}

// NewPointLight creates a point light
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

func (pl *PointLight) Flags() LightFlags {
	return DeltaPosition
}

// SampleLi returns the only direction towards the light with inverse-square falloff
func (pl *PointLight) SampleLi(ref *core.Interaction, u core.Vec2) LightSample {
	toLight := pl.Position.Subtract(ref.Point)
	distSquared := toLight.LengthSquared()
	if distSquared == 0 {
		return LightSample{}
	}
	return LightSample{
		Wi:  toLight.Normalize(),
		Li:  pl.Intensity.Divide(distSquared),
		Pdf: 1,
		Vis: VisibilityTester{P0: *ref, P1: pl.Position},
	}
}

// PdfLi is zero: no other strategy can generate the light's direction
func (pl *PointLight) PdfLi(ref *core.Interaction, wi core.Vec3) float64 {
	return 0
}

func (pl *PointLight) Le(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}

func (pl *PointLight) Power() core.Vec3 {
	return pl.Intensity.Multiply(4 * math.Pi)
}
