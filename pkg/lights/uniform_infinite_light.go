package lights

import (
	"math"

	"github.com/df07/go-volpath/pkg/core"
)

// UniformInfiniteLight surrounds the scene with constant radiance
type UniformInfiniteLight struct {
	Lemit       core.Vec3
	worldCenter core.Vec3
	worldRadius float64
}

// NewUniformInfiniteLight creates a uniform environment light
func NewUniformInfiniteLight(lemit core.Vec3) *UniformInfiniteLight {
	return &UniformInfiniteLight{Lemit: lemit, worldRadius: 1}
}

func (l *UniformInfiniteLight) Flags() LightFlags {
	return Infinite
}

// Preprocess records the scene bounds used to place visibility endpoints
func (l *UniformInfiniteLight) Preprocess(worldCenter core.Vec3, worldRadius float64) {
	l.worldCenter = worldCenter
	l.worldRadius = worldRadius
}

// SampleLi picks a direction uniformly over the sphere
func (l *UniformInfiniteLight) SampleLi(ref *core.Interaction, u core.Vec2) LightSample {
	wi := core.UniformSampleSphere(u)
	far := ref.Point.Add(wi.Multiply(2 * l.worldRadius))
	return LightSample{
		Wi:  wi,
		Li:  l.Lemit,
		Pdf: core.UniformSpherePdf(),
		Vis: VisibilityTester{P0: *ref, P1: far},
	}
}

func (l *UniformInfiniteLight) PdfLi(ref *core.Interaction, wi core.Vec3) float64 {
	return core.UniformSpherePdf()
}

// Le returns the environment radiance for every escaped ray
func (l *UniformInfiniteLight) Le(ray core.Ray) core.Vec3 {
	return l.Lemit
}

func (l *UniformInfiniteLight) Power() core.Vec3 {
	return l.Lemit.Multiply(math.Pi * l.worldRadius * l.worldRadius)
}
