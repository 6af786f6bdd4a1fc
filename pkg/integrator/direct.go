package integrator

import (
	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/lights"
	"github.com/df07/go-volpath/pkg/material"
	"github.com/df07/go-volpath/pkg/scene"
)

// nonSpecular selects every lobe that can be evaluated for an arbitrary direction
const nonSpecular = material.BSDFAll &^ material.BSDFSpecular

// ScatteringEvent is a point where a path changes direction: either a surface
// with a BSDF or a point inside a medium with a phase function
type ScatteringEvent struct {
	It    *core.Interaction
	BSDF  *material.BSDF
	Phase core.PhaseFunction
}

// SurfaceEvent wraps a surface hit whose BSDF has been computed
func SurfaceEvent(si *material.SurfaceInteraction) ScatteringEvent {
	return ScatteringEvent{It: &si.Interaction, BSDF: &si.BSDF}
}

// MediumEvent wraps a scattering event inside a medium
func MediumEvent(mi *core.MediumInteraction) ScatteringEvent {
	return ScatteringEvent{It: &mi.Interaction, Phase: mi.Phase}
}

// eval returns the scattered value towards wi, including the cosine term on
// surfaces, and the density of sampling wi
func (e ScatteringEvent) eval(wi core.Vec3) (core.Vec3, float64) {
	wo := e.It.Wo
	if e.BSDF != nil {
		f := e.BSDF.F(wo, wi, nonSpecular).Multiply(wi.AbsDot(e.It.Normal))
		return f, e.BSDF.Pdf(wo, wi, nonSpecular)
	}
	p := e.Phase.P(wo, wi)
	return core.NewSpectrum(p), p
}

// sample draws a new direction from the non-specular lobes or the phase function
func (e ScatteringEvent) sample(u core.Vec2) (core.Vec3, core.Vec3, float64, bool) {
	wo := e.It.Wo
	if e.BSDF != nil {
		f, wi, pdf, sampledType := e.BSDF.SampleF(wo, u, nonSpecular)
		return f.Multiply(wi.AbsDot(e.It.Normal)), wi, pdf, sampledType.IsSpecular()
	}
	wi, p := e.Phase.SampleP(wo, u)
	return core.NewSpectrum(p), wi, p, false
}

// EstimateDirect computes the direct lighting from one light with multiple
// importance sampling: one sample from the light and, unless the light is a
// delta light, one from the BSDF or phase function, each weighted with the power
// heuristic. With handleMedia, shadow rays are attenuated by the media they cross
// instead of only being tested for occlusion.
func EstimateDirect(ev ScatteringEvent, uScattering core.Vec2, light lights.Light, uLight core.Vec2,
	s *scene.Scene, sampler core.Sampler, handleMedia bool) core.Vec3 {

	var ld core.Vec3
	isDelta := light.Flags().IsDelta()

	// Sample the light
	ls := light.SampleLi(ev.It, uLight)
	if ls.Pdf > 0 && !ls.Li.IsBlack() {
		f, scatteringPdf := ev.eval(ls.Wi)
		if !f.IsBlack() {
			li := ls.Li
			if handleMedia {
				li = li.MultiplyVec(ls.Vis.Tr(s, sampler))
			} else if !ls.Vis.Unoccluded(s) {
				li = core.Vec3{}
			}

			if !li.IsBlack() {
				weight := 1.0
				if !isDelta {
					weight = core.PowerHeuristic(1, ls.Pdf, 1, scatteringPdf)
				}
				ld = ld.Add(f.MultiplyVec(li).Multiply(weight / ls.Pdf))
			}
		}
	}

	if isDelta {
		return ld
	}

	// Sample the BSDF or phase function
	f, wi, scatteringPdf, specular := ev.sample(uScattering)
	if f.IsBlack() || scatteringPdf == 0 {
		return ld
	}

	weight := 1.0
	if !specular {
		lightPdf := light.PdfLi(ev.It, wi)
		if lightPdf == 0 {
			return ld
		}
		weight = core.PowerHeuristic(1, scatteringPdf, 1, lightPdf)
	}

	ray := ev.It.SpawnRay(wi)
	var si material.SurfaceInteraction
	var found bool
	tr := core.NewSpectrum(1)
	if handleMedia {
		found, tr = s.IntersectTr(&ray, sampler, &si)
	} else {
		found = s.Intersect(&ray, &si)
	}

	var li core.Vec3
	if found {
		if areaLight, ok := light.(material.AreaLight); ok && si.AreaLight == areaLight {
			li = si.Le(wi.Negate())
		}
	} else {
		li = light.Le(ray)
	}
	if !li.IsBlack() {
		ld = ld.Add(f.MultiplyVec(li).MultiplyVec(tr).Multiply(weight / scatteringPdf))
	}
	return ld
}

// UniformSampleOneLight picks one light uniformly and scales its direct
// lighting estimate by the number of lights
func UniformSampleOneLight(ev ScatteringEvent, s *scene.Scene, sampler core.Sampler, handleMedia bool) core.Vec3 {
	n := len(s.Lights)
	if n == 0 {
		return core.Vec3{}
	}
	index := min(int(sampler.Get1D()*float64(n)), n-1)
	light := s.Lights[index]

	uLight := sampler.Get2D()
	uScattering := sampler.Get2D()
	return EstimateDirect(ev, uScattering, light, uLight, s, sampler, handleMedia).Multiply(float64(n))
}

// SampleOneLight picks one light with the scene's light sampler and divides
// its direct lighting estimate by the selection probability
func SampleOneLight(ev ScatteringEvent, s *scene.Scene, sampler core.Sampler, handleMedia bool) core.Vec3 {
	if s.LightSampler == nil {
		return UniformSampleOneLight(ev, s, sampler, handleMedia)
	}
	light, prob, _ := s.LightSampler.SampleLight(sampler.Get1D())
	if light == nil || prob == 0 {
		return core.Vec3{}
	}

	uLight := sampler.Get2D()
	uScattering := sampler.Get2D()
	return EstimateDirect(ev, uScattering, light, uLight, s, sampler, handleMedia).Divide(prob)
}
