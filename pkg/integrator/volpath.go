package integrator

import (
	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/material"
	"github.com/df07/go-volpath/pkg/scene"
)

// VolPathIntegrator extends path tracing to participating media. Rays travelling
// through a medium may scatter before reaching the next surface, and shadow
// rays are attenuated by the media they cross.
type VolPathIntegrator struct {
	config Config
}

// NewVolPathIntegrator creates a volumetric path tracer
func NewVolPathIntegrator(config Config) *VolPathIntegrator {
	return &VolPathIntegrator{config: config}
}

// Li traces one path through surfaces and media
func (vp *VolPathIntegrator) Li(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	var l core.Vec3
	beta := core.NewSpectrum(1)
	specularBounce := false
	var si material.SurfaceInteraction
	var mi core.MediumInteraction

	for bounces := 0; ; bounces++ {
		si = material.SurfaceInteraction{}
		found := s.Intersect(&ray, &si)

		// Let the medium decide whether the path scatters before the surface
		mi = core.MediumInteraction{}
		if ray.Medium != nil {
			beta = beta.MultiplyVec(ray.Medium.Sample(ray, sampler, &mi))
		}
		if beta.IsBlack() {
			break
		}

		if mi.IsValid() {
			if bounces >= vp.config.MaxDepth {
				break
			}
			ev := MediumEvent(&mi)
			l = l.Add(beta.MultiplyVec(SampleOneLight(ev, s, sampler, true)))

			wi, _ := mi.Phase.SampleP(mi.Wo, sampler.Get2D())
			ray = mi.SpawnRay(wi)
			specularBounce = false
		} else {
			if bounces == 0 || specularBounce {
				if found {
					l = l.Add(beta.MultiplyVec(si.Le(si.Wo)))
				} else {
					l = l.Add(beta.MultiplyVec(escapedRadiance(ray, s)))
				}
			}

			if !found || bounces >= vp.config.MaxDepth {
				break
			}

			if !si.ComputeScatteringFunctions(material.Radiance) {
				ray = si.SpawnRay(ray.Direction)
				bounces--
				continue
			}

			if si.BSDF.NumComponents(nonSpecular) > 0 {
				ld := SampleOneLight(SurfaceEvent(&si), s, sampler, true)
				l = l.Add(beta.MultiplyVec(ld))
			}

			f, wi, pdf, sampledType := si.BSDF.SampleF(si.Wo, sampler.Get2D(), material.BSDFAll)
			if f.IsBlack() || pdf == 0 {
				break
			}
			beta = beta.MultiplyVec(f).Multiply(wi.AbsDot(si.Normal) / pdf)
			specularBounce = sampledType.IsSpecular()
			ray = si.SpawnRay(wi)
		}

		if bounces > vp.config.RussianRouletteMinBounces && !russianRoulette(&beta, sampler) {
			break
		}
	}
	return l
}
