package lights

import (
	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/material"
)

// LightFlags describes how a light can be sampled
type LightFlags int

const (
	DeltaPosition LightFlags = 1 << iota
	DeltaDirection
	Area
	Infinite
)

// IsDelta reports whether the light is described by a delta distribution,
// which can only be reached by sampling the light itself
func (f LightFlags) IsDelta() bool {
	return f&(DeltaPosition|DeltaDirection) != 0
}

// LightSample is the result of sampling incident illumination from a light
type LightSample struct {
	Wi  core.Vec3 // Normalized direction from the reference point towards the light
	Li  core.Vec3 // Incident radiance, before visibility
	Pdf float64   // Solid-angle density of Wi; 1 for delta lights
	Vis VisibilityTester
}

// Light interface for all light sources
type Light interface {
	Flags() LightFlags

	// SampleLi samples a direction from ref towards the light
	SampleLi(ref *core.Interaction, u core.Vec2) LightSample

	// PdfLi returns the density SampleLi would assign to wi. Delta lights return 0.
	PdfLi(ref *core.Interaction, wi core.Vec3) float64

	// Le returns radiance carried by a ray that escaped the scene
	Le(ray core.Ray) core.Vec3

	// Power returns the total emitted power
	Power() core.Vec3
}

// Preprocessor is implemented by lights that need the scene bounds before rendering
type Preprocessor interface {
	Preprocess(worldCenter core.Vec3, worldRadius float64)
}

// Intersector finds the closest surface along a ray. Scenes implement it.
type Intersector interface {
	Intersect(ray *core.Ray, si *material.SurfaceInteraction) bool
}
