package lights

import (
	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/material"
)

// VisibilityTester connects a reference point with a point on a light
type VisibilityTester struct {
	P0 core.Interaction
	P1 core.Vec3
}

// Unoccluded reports whether nothing lies between the two points
func (v VisibilityTester) Unoccluded(scene Intersector) bool {
	ray := v.P0.SpawnRayTo(v.P1)
	var si material.SurfaceInteraction
	return !scene.Intersect(&ray, &si)
}

// Tr returns the transmittance between the two points. Surfaces without a
// material only separate media and are stepped through; any other surface blocks.
func (v VisibilityTester) Tr(scene Intersector, sampler core.Sampler) core.Vec3 {
	ray := v.P0.SpawnRayTo(v.P1)
	tr := core.NewSpectrum(1)
	for {
		var si material.SurfaceInteraction
		hit := scene.Intersect(&ray, &si)
		if hit && si.Material != nil {
			return core.Vec3{}
		}
		if ray.Medium != nil {
			tr = tr.MultiplyVec(ray.Medium.Tr(ray, sampler))
		}
		if !hit || tr.IsBlack() {
			return tr
		}
		ray = si.SpawnRayTo(v.P1)
	}
}
