package integrator

import (
	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/material"
	"github.com/df07/go-volpath/pkg/scene"
)

// PathIntegrator implements unidirectional path tracing with next-event
// estimation for scenes without participating media
type PathIntegrator struct {
	config Config
}

// NewPathIntegrator creates a new path tracing integrator
func NewPathIntegrator(config Config) *PathIntegrator {
	return &PathIntegrator{config: config}
}

// Li traces one path iteratively, bounding stack use at any depth
func (pt *PathIntegrator) Li(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	var l core.Vec3
	beta := core.NewSpectrum(1)
	specularBounce := false
	var si material.SurfaceInteraction

	for bounces := 0; ; bounces++ {
		si = material.SurfaceInteraction{}
		found := s.Intersect(&ray, &si)

		// Emission is only picked up here when light sampling could not have found it
		if bounces == 0 || specularBounce {
			if found {
				l = l.Add(beta.MultiplyVec(si.Le(si.Wo)))
			} else {
				l = l.Add(beta.MultiplyVec(escapedRadiance(ray, s)))
			}
		}

		if !found || bounces >= pt.config.MaxDepth {
			break
		}

		// Surfaces without a material only separate media; step through
		if !si.ComputeScatteringFunctions(material.Radiance) {
			ray = si.SpawnRay(ray.Direction)
			bounces--
			continue
		}

		if si.BSDF.NumComponents(nonSpecular) > 0 {
			ld := SampleOneLight(SurfaceEvent(&si), s, sampler, false)
			l = l.Add(beta.MultiplyVec(ld))
		}

		f, wi, pdf, sampledType := si.BSDF.SampleF(si.Wo, sampler.Get2D(), material.BSDFAll)
		if f.IsBlack() || pdf == 0 {
			break
		}
		beta = beta.MultiplyVec(f).Multiply(wi.AbsDot(si.Normal) / pdf)
		specularBounce = sampledType.IsSpecular()
		ray = si.SpawnRay(wi)

		if bounces > pt.config.RussianRouletteMinBounces && !russianRoulette(&beta, sampler) {
			break
		}
	}
	return l
}

// escapedRadiance sums the infinite lights seen by a ray leaving the scene
func escapedRadiance(ray core.Ray, s *scene.Scene) core.Vec3 {
	var le core.Vec3
	for _, light := range s.InfiniteLights {
		le = le.Add(light.Le(ray))
	}
	return le
}
