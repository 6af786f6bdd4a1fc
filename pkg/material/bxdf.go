package material

import (
	"math"

	"github.com/df07/go-volpath/pkg/core"
)

// BxDFType classifies a lobe by hemisphere and by how concentrated it is
type BxDFType uint8

const (
	BSDFReflection BxDFType = 1 << iota
	BSDFTransmission
	BSDFDiffuse
	BSDFGlossy
	BSDFSpecular

	BSDFAll = BSDFReflection | BSDFTransmission | BSDFDiffuse | BSDFGlossy | BSDFSpecular
)

// Matches reports whether every bit of t is allowed by flags
func (t BxDFType) Matches(flags BxDFType) bool {
	return t&flags == t
}

// IsSpecular reports whether the lobe is a Dirac delta
func (t BxDFType) IsSpecular() bool {
	return t&BSDFSpecular != 0
}

// BxDF is a single scattering lobe. Directions are in the local shading frame
// where the normal is +Z.
type BxDF interface {
	Type() BxDFType

	// F evaluates the lobe. Specular lobes always return zero.
	F(wo, wi core.Vec3) core.Vec3

	// SampleF draws an incident direction and returns the lobe value, the
	// direction, its pdf and the type of the lobe that produced it.
	SampleF(wo core.Vec3, u core.Vec2) (f, wi core.Vec3, pdf float64, sampledType BxDFType)

	// Pdf returns the density SampleF would produce wi with. Specular lobes return zero.
	Pdf(wo, wi core.Vec3) float64
}

// cosineSampleF is the default sampling routine for lobes without a better strategy
func cosineSampleF(b BxDF, wo core.Vec3, u core.Vec2) (core.Vec3, core.Vec3, float64, BxDFType) {
	wi := core.CosineSampleHemisphere(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	return b.F(wo, wi), wi, cosinePdf(wo, wi), b.Type()
}

func cosinePdf(wo, wi core.Vec3) float64 {
	if !core.SameHemisphere(wo, wi) {
		return 0
	}
	return core.AbsCosTheta(wi) / math.Pi
}

// LambertianReflection is a perfectly diffuse reflection lobe
type LambertianReflection struct {
	R core.Vec3
}

func (l LambertianReflection) Type() BxDFType { return BSDFReflection | BSDFDiffuse }

// F returns R/π for directions on the same side of the surface
func (l LambertianReflection) F(wo, wi core.Vec3) core.Vec3 {
	return l.R.Multiply(1 / math.Pi)
}

func (l LambertianReflection) SampleF(wo core.Vec3, u core.Vec2) (core.Vec3, core.Vec3, float64, BxDFType) {
	return cosineSampleF(l, wo, u)
}

func (l LambertianReflection) Pdf(wo, wi core.Vec3) float64 {
	return cosinePdf(wo, wi)
}

// ScaledBxDF multiplies another lobe by a constant spectrum
type ScaledBxDF struct {
	BxDF  BxDF
	Scale core.Vec3
}

func (s ScaledBxDF) Type() BxDFType { return s.BxDF.Type() }

func (s ScaledBxDF) F(wo, wi core.Vec3) core.Vec3 {
	return s.BxDF.F(wo, wi).MultiplyVec(s.Scale)
}

func (s ScaledBxDF) SampleF(wo core.Vec3, u core.Vec2) (core.Vec3, core.Vec3, float64, BxDFType) {
	f, wi, pdf, sampledType := s.BxDF.SampleF(wo, u)
	return f.MultiplyVec(s.Scale), wi, pdf, sampledType
}

func (s ScaledBxDF) Pdf(wo, wi core.Vec3) float64 {
	return s.BxDF.Pdf(wo, wi)
}
