package material

import (
	"math"

	"github.com/df07/go-volpath/pkg/core"
)

// TrowbridgeReitz is the GGX microfacet distribution with anisotropic roughness
type TrowbridgeReitz struct {
	AlphaX, AlphaY float64
	SampleVisible  bool // sample only microfacets visible from wo
}

// NewTrowbridgeReitz creates an isotropic or anisotropic distribution that
// samples visible normals
func NewTrowbridgeReitz(alphaX, alphaY float64) TrowbridgeReitz {
	return TrowbridgeReitz{
		AlphaX:        math.Max(alphaX, 1e-4),
		AlphaY:        math.Max(alphaY, 1e-4),
		SampleVisible: true,
	}
}

// RoughnessToAlpha maps a perceptual roughness in [0,1] to the alpha parameter
func RoughnessToAlpha(roughness float64) float64 {
	roughness = math.Max(roughness, 1e-3)
	x := math.Log(roughness)
	return 1.62142 + 0.819955*x + 0.1734*x*x + 0.0171201*x*x*x + 0.000640711*x*x*x*x
}

// D returns the density of microfacets with normal wh
func (d TrowbridgeReitz) D(wh core.Vec3) float64 {
	tan2Theta := core.Tan2Theta(wh)
	if math.IsInf(tan2Theta, 0) || math.IsNaN(tan2Theta) {
		return 0
	}
	cos4Theta := core.Cos2Theta(wh) * core.Cos2Theta(wh)
	e := (core.Cos2Phi(wh)/(d.AlphaX*d.AlphaX) + core.Sin2Phi(wh)/(d.AlphaY*d.AlphaY)) * tan2Theta
	return 1 / (math.Pi * d.AlphaX * d.AlphaY * cos4Theta * (1 + e) * (1 + e))
}

// Lambda is the auxiliary function of the Smith masking term
func (d TrowbridgeReitz) Lambda(w core.Vec3) float64 {
	absTanTheta := math.Abs(core.TanTheta(w))
	if math.IsInf(absTanTheta, 0) || math.IsNaN(absTanTheta) {
		return 0
	}
	alpha := math.Sqrt(core.Cos2Phi(w)*d.AlphaX*d.AlphaX + core.Sin2Phi(w)*d.AlphaY*d.AlphaY)
	alpha2Tan2Theta := (alpha * absTanTheta) * (alpha * absTanTheta)
	return (-1 + math.Sqrt(1+alpha2Tan2Theta)) / 2
}

// G1 is the fraction of microfacets visible from w
func (d TrowbridgeReitz) G1(w core.Vec3) float64 {
	return 1 / (1 + d.Lambda(w))
}

// G is the fraction of microfacets visible from both wo and wi
func (d TrowbridgeReitz) G(wo, wi core.Vec3) float64 {
	return 1 / (1 + d.Lambda(wo) + d.Lambda(wi))
}

// SampleWh draws a microfacet normal on the same side as wo
func (d TrowbridgeReitz) SampleWh(wo core.Vec3, u core.Vec2) core.Vec3 {
	if !d.SampleVisible {
		var tan2Theta, phi float64
		if d.AlphaX == d.AlphaY {
			tan2Theta = d.AlphaX * d.AlphaX * u.X / (1 - u.X)
			phi = 2 * math.Pi * u.Y
		} else {
			phi = math.Atan(d.AlphaY / d.AlphaX * math.Tan(2*math.Pi*u.Y+0.5*math.Pi))
			if u.Y > 0.5 {
				phi += math.Pi
			}
			sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
			alpha2 := 1 / (cosPhi*cosPhi/(d.AlphaX*d.AlphaX) + sinPhi*sinPhi/(d.AlphaY*d.AlphaY))
			tan2Theta = alpha2 * u.X / (1 - u.X)
		}
		cosTheta := 1 / math.Sqrt(1+tan2Theta)
		sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
		wh := core.SphericalDirection(sinTheta, cosTheta, phi)
		if !core.SameHemisphere(wo, wh) {
			wh = wh.Negate()
		}
		return wh
	}

	flip := wo.Z < 0
	if flip {
		wo = wo.Negate()
	}
	wh := d.sampleVisibleNormal(wo, u)
	if flip {
		wh = wh.Negate()
	}
	return wh
}

// sampleVisibleNormal samples the distribution of normals visible from wo (wo.Z >= 0)
// by projecting a disk sample onto the stretched hemisphere
func (d TrowbridgeReitz) sampleVisibleNormal(wo core.Vec3, u core.Vec2) core.Vec3 {
	vh := core.NewVec3(d.AlphaX*wo.X, d.AlphaY*wo.Y, wo.Z).Normalize()

	lensq := vh.X*vh.X + vh.Y*vh.Y
	t1 := core.NewVec3(1, 0, 0)
	if lensq > 0 {
		t1 = core.NewVec3(-vh.Y, vh.X, 0).Multiply(1 / math.Sqrt(lensq))
	}
	t2 := vh.Cross(t1)

	r := math.Sqrt(u.X)
	phi := 2 * math.Pi * u.Y
	p1 := r * math.Cos(phi)
	p2 := r * math.Sin(phi)
	s := 0.5 * (1 + vh.Z)
	p2 = (1-s)*math.Sqrt(math.Max(0, 1-p1*p1)) + s*p2

	nh := t1.Multiply(p1).Add(t2.Multiply(p2)).Add(vh.Multiply(math.Sqrt(math.Max(0, 1-p1*p1-p2*p2))))
	return core.NewVec3(d.AlphaX*nh.X, d.AlphaY*nh.Y, math.Max(1e-6, nh.Z)).Normalize()
}

// Pdf returns the density of SampleWh producing wh
func (d TrowbridgeReitz) Pdf(wo, wh core.Vec3) float64 {
	if d.SampleVisible {
		cosO := core.AbsCosTheta(wo)
		if cosO == 0 {
			return 0
		}
		return d.D(wh) * d.G1(wo) * wo.AbsDot(wh) / cosO
	}
	return d.D(wh) * core.AbsCosTheta(wh)
}

// MicrofacetReflection is a glossy reflection lobe built on a microfacet distribution
type MicrofacetReflection struct {
	R            core.Vec3
	Distribution TrowbridgeReitz
	Fresnel      Fresnel
}

func (m MicrofacetReflection) Type() BxDFType { return BSDFReflection | BSDFGlossy }

// F evaluates D·G·F / (4 cosθo cosθi)
func (m MicrofacetReflection) F(wo, wi core.Vec3) core.Vec3 {
	if !core.SameHemisphere(wo, wi) {
		return core.Vec3{}
	}
	cosThetaO := core.AbsCosTheta(wo)
	cosThetaI := core.AbsCosTheta(wi)
	wh := wi.Add(wo)
	if cosThetaI == 0 || cosThetaO == 0 {
		return core.Vec3{}
	}
	if wh.IsBlack() {
		return core.Vec3{}
	}
	wh = wh.Normalize()
	fr := m.Fresnel.Evaluate(wi.Dot(wh))
	scale := m.Distribution.D(wh) * m.Distribution.G(wo, wi) / (4 * cosThetaO * cosThetaI)
	return m.R.MultiplyVec(fr).Multiply(scale)
}

func (m MicrofacetReflection) SampleF(wo core.Vec3, u core.Vec2) (core.Vec3, core.Vec3, float64, BxDFType) {
	if wo.Z == 0 {
		return core.Vec3{}, core.Vec3{}, 0, 0
	}
	wh := m.Distribution.SampleWh(wo, u)
	if wo.Dot(wh) < 0 {
		return core.Vec3{}, core.Vec3{}, 0, 0
	}
	wi := core.Reflect(wo, wh)
	if !core.SameHemisphere(wo, wi) {
		return core.Vec3{}, core.Vec3{}, 0, 0
	}
	pdf := m.Distribution.Pdf(wo, wh) / (4 * wo.Dot(wh))
	return m.F(wo, wi), wi, pdf, m.Type()
}

func (m MicrofacetReflection) Pdf(wo, wi core.Vec3) float64 {
	if !core.SameHemisphere(wo, wi) {
		return 0
	}
	wh := wo.Add(wi)
	if wh.IsBlack() {
		return 0
	}
	wh = wh.Normalize()
	return m.Distribution.Pdf(wo, wh) / (4 * wo.AbsDot(wh))
}

// MicrofacetTransmission is a rough dielectric transmission lobe between
// indices EtaA (outside, +Z) and EtaB (inside)
type MicrofacetTransmission struct {
	T            core.Vec3
	Distribution TrowbridgeReitz
	EtaA, EtaB   float64
	Mode         TransportMode
}

func (m MicrofacetTransmission) Type() BxDFType { return BSDFTransmission | BSDFGlossy }

// halfVector returns the generalized half vector for refraction, or false if degenerate
func (m MicrofacetTransmission) halfVector(wo, wi core.Vec3) (core.Vec3, float64, bool) {
	eta := m.EtaA / m.EtaB
	if core.CosTheta(wo) > 0 {
		eta = m.EtaB / m.EtaA
	}
	wh := wo.Add(wi.Multiply(eta))
	if wh.IsBlack() {
		return core.Vec3{}, 0, false
	}
	wh = wh.Normalize()
	if wh.Z < 0 {
		wh = wh.Negate()
	}
	return wh, eta, true
}

func (m MicrofacetTransmission) F(wo, wi core.Vec3) core.Vec3 {
	if core.SameHemisphere(wo, wi) {
		return core.Vec3{}
	}
	cosThetaO := core.CosTheta(wo)
	cosThetaI := core.CosTheta(wi)
	if cosThetaI == 0 || cosThetaO == 0 {
		return core.Vec3{}
	}

	wh, eta, ok := m.halfVector(wo, wi)
	if !ok {
		return core.Vec3{}
	}
	// Both directions must lie on opposite sides of the microfacet
	if wo.Dot(wh)*wi.Dot(wh) > 0 {
		return core.Vec3{}
	}

	fr := FrDielectric(wo.Dot(wh), m.EtaA, m.EtaB)
	sqrtDenom := wo.Dot(wh) + eta*wi.Dot(wh)
	factor := 1.0
	if m.Mode == Radiance {
		factor = 1 / eta
	}

	value := m.Distribution.D(wh) * m.Distribution.G(wo, wi) * eta * eta *
		wi.AbsDot(wh) * wo.AbsDot(wh) * factor * factor /
		(cosThetaI * cosThetaO * sqrtDenom * sqrtDenom)
	return m.T.Multiply((1 - fr) * math.Abs(value))
}

func (m MicrofacetTransmission) SampleF(wo core.Vec3, u core.Vec2) (core.Vec3, core.Vec3, float64, BxDFType) {
	if wo.Z == 0 {
		return core.Vec3{}, core.Vec3{}, 0, 0
	}
	wh := m.Distribution.SampleWh(wo, u)
	if wo.Dot(wh) < 0 {
		return core.Vec3{}, core.Vec3{}, 0, 0
	}

	eta := m.EtaB / m.EtaA
	if core.CosTheta(wo) > 0 {
		eta = m.EtaA / m.EtaB
	}
	wi, ok := core.Refract(wo, wh, eta)
	if !ok {
		return core.Vec3{}, core.Vec3{}, 0, 0
	}
	return m.F(wo, wi), wi, m.Pdf(wo, wi), m.Type()
}

func (m MicrofacetTransmission) Pdf(wo, wi core.Vec3) float64 {
	if core.SameHemisphere(wo, wi) {
		return 0
	}
	wh, eta, ok := m.halfVector(wo, wi)
	if !ok {
		return 0
	}
	if wo.Dot(wh)*wi.Dot(wh) > 0 {
		return 0
	}

	sqrtDenom := wo.Dot(wh) + eta*wi.Dot(wh)
	dwhDwi := math.Abs((eta * eta * wi.Dot(wh)) / (sqrtDenom * sqrtDenom))
	return m.Distribution.Pdf(wo, wh) * dwhDwi
}
