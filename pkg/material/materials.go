package material

import (
	"github.com/df07/go-volpath/pkg/core"
)

// Matte is a purely diffuse material
type Matte struct {
	Kd ColorSource // Diffuse reflectance
}

// NewMatte creates a new matte material with solid color
func NewMatte(kd core.Vec3) *Matte {
	return &Matte{Kd: NewSolidColor(kd)}
}

// NewTexturedMatte creates a new matte material with texture
func NewTexturedMatte(kd ColorSource) *Matte {
	return &Matte{Kd: kd}
}

// ComputeScatteringFunctions adds a Lambertian lobe unless the reflectance is black
func (m *Matte) ComputeScatteringFunctions(si *SurfaceInteraction, mode TransportMode) {
	si.BSDF.Reset(si, 1)
	r := m.Kd.Evaluate(si.UV, si.Point).Clamp(0, 1)
	if !r.IsBlack() {
		si.BSDF.AddLambertian(r)
	}
}

// Plastic is a diffuse base under a glossy dielectric coating
type Plastic struct {
	Kd, Ks         ColorSource
	Roughness      float64
	RemapRoughness bool // treat Roughness as perceptual and convert with RoughnessToAlpha
}

// NewPlastic creates a new plastic material with solid colors
func NewPlastic(kd, ks core.Vec3, roughness float64) *Plastic {
	return &Plastic{Kd: NewSolidColor(kd), Ks: NewSolidColor(ks), Roughness: roughness}
}

func (p *Plastic) ComputeScatteringFunctions(si *SurfaceInteraction, mode TransportMode) {
	si.BSDF.Reset(si, 1)

	kd := p.Kd.Evaluate(si.UV, si.Point).Clamp(0, 1)
	if !kd.IsBlack() {
		si.BSDF.AddLambertian(kd)
	}

	ks := p.Ks.Evaluate(si.UV, si.Point).Clamp(0, 1)
	if !ks.IsBlack() {
		alpha := roughnessToAlpha(p.Roughness, p.RemapRoughness)
		si.BSDF.AddMicrofacetReflection(ks, NewTrowbridgeReitz(alpha, alpha), si.BSDF.Dielectric(1, 1.5))
	}
}

// Metal is a rough conductor with a complex index of refraction
type Metal struct {
	Eta, K         core.Vec3
	Roughness      float64
	RemapRoughness bool
}

// NewMetal creates a new metal material. Eta and K are per-channel RGB values.
func NewMetal(eta, k core.Vec3, roughness float64) *Metal {
	return &Metal{Eta: eta, K: k, Roughness: roughness}
}

// Gold and copper optical constants sampled at RGB wavelengths
var (
	GoldEta   = core.NewVec3(0.143, 0.374, 1.442)
	GoldK     = core.NewVec3(3.983, 2.385, 1.603)
	CopperEta = core.NewVec3(0.200, 0.924, 1.102)
	CopperK   = core.NewVec3(3.912, 2.452, 2.142)
)

func (m *Metal) ComputeScatteringFunctions(si *SurfaceInteraction, mode TransportMode) {
	si.BSDF.Reset(si, 1)
	alpha := roughnessToAlpha(m.Roughness, m.RemapRoughness)
	si.BSDF.AddMicrofacetReflection(core.NewSpectrum(1), NewTrowbridgeReitz(alpha, alpha),
		si.BSDF.Conductor(core.NewSpectrum(1), m.Eta, m.K))
}

// Glass is a dielectric that both reflects and transmits
type Glass struct {
	Kr, Kt         core.Vec3
	Eta            float64 // index of refraction inside the surface
	Roughness      float64 // 0 gives perfectly specular glass
	RemapRoughness bool
}

// NewGlass creates clear glass with the given index of refraction
func NewGlass(eta float64) *Glass {
	return &Glass{Kr: core.NewSpectrum(1), Kt: core.NewSpectrum(1), Eta: eta}
}

// NewRoughGlass creates frosted glass
func NewRoughGlass(eta, roughness float64) *Glass {
	return &Glass{Kr: core.NewSpectrum(1), Kt: core.NewSpectrum(1), Eta: eta, Roughness: roughness}
}

func (g *Glass) ComputeScatteringFunctions(si *SurfaceInteraction, mode TransportMode) {
	si.BSDF.Reset(si, g.Eta)
	r := g.Kr.Clamp(0, 1)
	t := g.Kt.Clamp(0, 1)
	if r.IsBlack() && t.IsBlack() {
		return
	}

	specular := g.Roughness == 0
	if specular && !r.IsBlack() && !t.IsBlack() {
		si.BSDF.AddFresnelSpecular(r, t, 1, g.Eta, mode)
		return
	}

	alpha := roughnessToAlpha(g.Roughness, g.RemapRoughness)
	distribution := NewTrowbridgeReitz(alpha, alpha)
	if !r.IsBlack() {
		fresnel := si.BSDF.Dielectric(1, g.Eta)
		if specular {
			si.BSDF.AddSpecularReflection(r, fresnel)
		} else {
			si.BSDF.AddMicrofacetReflection(r, distribution, fresnel)
		}
	}
	if !t.IsBlack() {
		if specular {
			si.BSDF.AddSpecularTransmission(t, 1, g.Eta, mode)
		} else {
			si.BSDF.AddMicrofacetTransmission(t, distribution, 1, g.Eta, mode)
		}
	}
}

// Mirror is a perfect specular reflector
type Mirror struct {
	Kr core.Vec3
}

// NewMirror creates a new mirror material
func NewMirror(kr core.Vec3) *Mirror {
	return &Mirror{Kr: kr}
}

func (m *Mirror) ComputeScatteringFunctions(si *SurfaceInteraction, mode TransportMode) {
	si.BSDF.Reset(si, 1)
	r := m.Kr.Clamp(0, 1)
	if !r.IsBlack() {
		si.BSDF.AddSpecularReflection(r, FresnelNoOp{})
	}
}

func roughnessToAlpha(roughness float64, remap bool) float64 {
	if remap {
		return RoughnessToAlpha(roughness)
	}
	return roughness
}
