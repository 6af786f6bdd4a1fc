package material

import (
	"fmt"
	"math"

	"github.com/df07/go-volpath/pkg/core"
)

// MaxBxDFs is the number of lobes a single BSDF can hold
const MaxBxDFs = 8

const oneMinusEpsilon = 1 - 1e-16

// BSDF composes lobes in a shading frame around the surface normal.
// It is stored by value inside the SurfaceInteraction and rebuilt on every hit.
// The Add* helpers keep lobes in the BSDF's own storage; Add accepts any lobe.
type BSDF struct {
	Eta   float64 // relative index of refraction across the boundary, 1 for opaque surfaces
	frame core.Frame
	ng    core.Vec3
	bxdfs [MaxBxDFs]BxDF
	n     int
	arena lobeArena
}

// Reset clears the lobes and sets up the shading frame around the outward normal
func (b *BSDF) Reset(si *SurfaceInteraction, eta float64) {
	n := si.OutwardNormal()
	*b = BSDF{Eta: eta, frame: core.NewFrame(n), ng: n}
}

// Add appends a lobe. Struct values passed here are boxed on the heap.
func (b *BSDF) Add(bxdf BxDF) {
	if b.n == MaxBxDFs {
		panic(fmt.Sprintf("material: BSDF cannot hold more than %d lobes", MaxBxDFs))
	}
	b.bxdfs[b.n] = bxdf
	b.n++
}

// NumComponents counts the lobes matching flags
func (b *BSDF) NumComponents(flags BxDFType) int {
	num := 0
	for i := 0; i < b.n; i++ {
		if b.bxdfs[i].Type().Matches(flags) {
			num++
		}
	}
	return num
}

// WorldToLocal moves a world direction into the shading frame
func (b *BSDF) WorldToLocal(v core.Vec3) core.Vec3 {
	return b.frame.ToLocal(v)
}

// LocalToWorld moves a shading-frame direction into world space
func (b *BSDF) LocalToWorld(v core.Vec3) core.Vec3 {
	return b.frame.FromLocal(v)
}

// F evaluates all matching lobes for the pair of world directions. The
// geometric normal decides whether reflection or transmission lobes apply.
func (b *BSDF) F(woWorld, wiWorld core.Vec3, flags BxDFType) core.Vec3 {
	wo := b.WorldToLocal(woWorld)
	wi := b.WorldToLocal(wiWorld)
	if wo.Z == 0 {
		return core.Vec3{}
	}
	reflect := wiWorld.Dot(b.ng)*woWorld.Dot(b.ng) > 0
	return b.sumF(wo, wi, reflect, flags)
}

func (b *BSDF) sumF(wo, wi core.Vec3, reflect bool, flags BxDFType) core.Vec3 {
	var f core.Vec3
	for i := 0; i < b.n; i++ {
		t := b.bxdfs[i].Type()
		if !t.Matches(flags) {
			continue
		}
		if (reflect && t&BSDFReflection != 0) || (!reflect && t&BSDFTransmission != 0) {
			f = f.Add(b.bxdfs[i].F(wo, wi))
		}
	}
	return f
}

// SampleF picks one matching lobe uniformly with u.X, samples it, and returns
// the combined value and averaged pdf over all matching lobes. For specular
// choices only the chosen lobe contributes.
func (b *BSDF) SampleF(woWorld core.Vec3, u core.Vec2, flags BxDFType) (f, wiWorld core.Vec3, pdf float64, sampledType BxDFType) {
	matching := b.NumComponents(flags)
	if matching == 0 {
		return core.Vec3{}, core.Vec3{}, 0, 0
	}
	comp := min(int(math.Floor(u.X*float64(matching))), matching-1)

	chosen := -1
	count := comp
	for i := 0; i < b.n; i++ {
		if b.bxdfs[i].Type().Matches(flags) {
			if count == 0 {
				chosen = i
				break
			}
			count--
		}
	}
	bxdf := b.bxdfs[chosen]

	// Reuse the lobe-selection sample for the lobe itself
	uRemapped := core.NewVec2(math.Min(u.X*float64(matching)-float64(comp), oneMinusEpsilon), u.Y)

	wo := b.WorldToLocal(woWorld)
	if wo.Z == 0 {
		return core.Vec3{}, core.Vec3{}, 0, 0
	}

	f, wi, pdf, sampledType := bxdf.SampleF(wo, uRemapped)
	if pdf == 0 {
		return core.Vec3{}, core.Vec3{}, 0, 0
	}
	wiWorld = b.LocalToWorld(wi)

	specular := bxdf.Type().IsSpecular()
	if !specular && matching > 1 {
		for i := 0; i < b.n; i++ {
			if i != chosen && b.bxdfs[i].Type().Matches(flags) {
				pdf += b.bxdfs[i].Pdf(wo, wi)
			}
		}
	}
	if matching > 1 {
		pdf /= float64(matching)
	}

	if !specular {
		reflect := wiWorld.Dot(b.ng)*woWorld.Dot(b.ng) > 0
		f = b.sumF(wo, wi, reflect, flags)
	}
	return f, wiWorld, pdf, sampledType
}

// Pdf returns the averaged density over matching lobes for sampling wiWorld
func (b *BSDF) Pdf(woWorld, wiWorld core.Vec3, flags BxDFType) float64 {
	if b.n == 0 {
		return 0
	}
	wo := b.WorldToLocal(woWorld)
	wi := b.WorldToLocal(wiWorld)
	if wo.Z == 0 {
		return 0
	}
	pdf := 0.0
	matching := 0
	for i := 0; i < b.n; i++ {
		if b.bxdfs[i].Type().Matches(flags) {
			matching++
			pdf += b.bxdfs[i].Pdf(wo, wi)
		}
	}
	if matching == 0 {
		return 0
	}
	return pdf / float64(matching)
}
