package material

import (
	"github.com/df07/go-volpath/pkg/core"
)

// lobeArena stores the concrete lobes and Fresnel terms of one BSDF inline.
// Lobes are handed to the BSDF as pointers into it, so building a BSDF on a
// SurfaceInteraction that is reused across bounces does not touch the heap.
type lobeArena struct {
	lambertian  [2]LambertianReflection
	specRefl    [2]SpecularReflection
	specTrans   [1]SpecularTransmission
	fresnelSpec [1]FresnelSpecular
	mfRefl      [2]MicrofacetReflection
	mfTrans     [1]MicrofacetTransmission
	dielectric  [2]FresnelDielectric
	conductor   [1]FresnelConductor

	nLambertian, nSpecRefl, nSpecTrans, nFresnelSpec int
	nMfRefl, nMfTrans, nDielectric, nConductor       int
}

func place[T any](slots []T, n *int, v T) *T {
	if *n == len(slots) {
		panic("material: BSDF lobe storage exhausted")
	}
	p := &slots[*n]
	*p = v
	*n++
	return p
}

// AddLambertian adds a diffuse reflection lobe
func (b *BSDF) AddLambertian(r core.Vec3) {
	b.Add(place(b.arena.lambertian[:], &b.arena.nLambertian, LambertianReflection{R: r}))
}

// AddSpecularReflection adds a perfect mirror lobe
func (b *BSDF) AddSpecularReflection(r core.Vec3, fresnel Fresnel) {
	b.Add(place(b.arena.specRefl[:], &b.arena.nSpecRefl, SpecularReflection{R: r, Fresnel: fresnel}))
}

// AddSpecularTransmission adds a perfect refraction lobe
func (b *BSDF) AddSpecularTransmission(t core.Vec3, etaA, etaB float64, mode TransportMode) {
	b.Add(place(b.arena.specTrans[:], &b.arena.nSpecTrans,
		SpecularTransmission{T: t, EtaA: etaA, EtaB: etaB, Mode: mode}))
}

// AddFresnelSpecular adds a combined specular reflection and refraction lobe
func (b *BSDF) AddFresnelSpecular(r, t core.Vec3, etaA, etaB float64, mode TransportMode) {
	b.Add(place(b.arena.fresnelSpec[:], &b.arena.nFresnelSpec,
		FresnelSpecular{R: r, T: t, EtaA: etaA, EtaB: etaB, Mode: mode}))
}

// AddMicrofacetReflection adds a glossy reflection lobe
func (b *BSDF) AddMicrofacetReflection(r core.Vec3, distribution TrowbridgeReitz, fresnel Fresnel) {
	b.Add(place(b.arena.mfRefl[:], &b.arena.nMfRefl,
		MicrofacetReflection{R: r, Distribution: distribution, Fresnel: fresnel}))
}

// AddMicrofacetTransmission adds a rough refraction lobe
func (b *BSDF) AddMicrofacetTransmission(t core.Vec3, distribution TrowbridgeReitz, etaA, etaB float64, mode TransportMode) {
	b.Add(place(b.arena.mfTrans[:], &b.arena.nMfTrans,
		MicrofacetTransmission{T: t, Distribution: distribution, EtaA: etaA, EtaB: etaB, Mode: mode}))
}

// Dielectric returns a dielectric Fresnel term stored with the BSDF
func (b *BSDF) Dielectric(etaI, etaT float64) Fresnel {
	return place(b.arena.dielectric[:], &b.arena.nDielectric, FresnelDielectric{EtaI: etaI, EtaT: etaT})
}

// Conductor returns a conductor Fresnel term stored with the BSDF
func (b *BSDF) Conductor(etaI, etaT, k core.Vec3) Fresnel {
	return place(b.arena.conductor[:], &b.arena.nConductor, FresnelConductor{EtaI: etaI, EtaT: etaT, K: k})
}
