package material

import (
	"github.com/df07/go-volpath/pkg/core"
)

// SpecularReflection is a perfect mirror lobe scaled by a Fresnel term
type SpecularReflection struct {
	R       core.Vec3
	Fresnel Fresnel
}

func (s SpecularReflection) Type() BxDFType { return BSDFReflection | BSDFSpecular }

func (s SpecularReflection) F(wo, wi core.Vec3) core.Vec3 { return core.Vec3{} }

func (s SpecularReflection) Pdf(wo, wi core.Vec3) float64 { return 0 }

// SampleF returns the mirror direction with an implicit delta pdf of 1
func (s SpecularReflection) SampleF(wo core.Vec3, u core.Vec2) (core.Vec3, core.Vec3, float64, BxDFType) {
	wi := core.NewVec3(-wo.X, -wo.Y, wo.Z)
	f := s.Fresnel.Evaluate(core.CosTheta(wi)).MultiplyVec(s.R).Divide(core.AbsCosTheta(wi))
	return f, wi, 1, s.Type()
}

// SpecularTransmission refracts through a dielectric boundary between
// indices EtaA (outside, +Z) and EtaB (inside)
type SpecularTransmission struct {
	T          core.Vec3
	EtaA, EtaB float64
	Mode       TransportMode
}

func (s SpecularTransmission) Type() BxDFType { return BSDFTransmission | BSDFSpecular }

func (s SpecularTransmission) F(wo, wi core.Vec3) core.Vec3 { return core.Vec3{} }

func (s SpecularTransmission) Pdf(wo, wi core.Vec3) float64 { return 0 }

// SampleF returns the Snell direction. Radiance is scaled by (etaI/etaT)² when
// crossing into a medium with a different index.
func (s SpecularTransmission) SampleF(wo core.Vec3, u core.Vec2) (core.Vec3, core.Vec3, float64, BxDFType) {
	entering := core.CosTheta(wo) > 0
	etaI, etaT := s.EtaA, s.EtaB
	if !entering {
		etaI, etaT = etaT, etaI
	}

	wi, ok := core.Refract(wo, core.NewVec3(0, 0, 1).FaceForward(wo), etaI/etaT)
	if !ok {
		return core.Vec3{}, core.Vec3{}, 0, 0
	}

	fr := FrDielectric(core.CosTheta(wi), s.EtaA, s.EtaB)
	ft := s.T.Multiply(1 - fr)
	if s.Mode == Radiance {
		ft = ft.Multiply((etaI * etaI) / (etaT * etaT))
	}
	return ft.Divide(core.AbsCosTheta(wi)), wi, 1, s.Type()
}

// FresnelSpecular combines specular reflection and transmission, choosing
// between them in proportion to the dielectric Fresnel reflectance
type FresnelSpecular struct {
	R, T       core.Vec3
	EtaA, EtaB float64
	Mode       TransportMode
}

func (s FresnelSpecular) Type() BxDFType {
	return BSDFReflection | BSDFTransmission | BSDFSpecular
}

func (s FresnelSpecular) F(wo, wi core.Vec3) core.Vec3 { return core.Vec3{} }

func (s FresnelSpecular) Pdf(wo, wi core.Vec3) float64 { return 0 }

func (s FresnelSpecular) SampleF(wo core.Vec3, u core.Vec2) (core.Vec3, core.Vec3, float64, BxDFType) {
	fr := FrDielectric(core.CosTheta(wo), s.EtaA, s.EtaB)
	if u.X < fr {
		wi := core.NewVec3(-wo.X, -wo.Y, wo.Z)
		f := s.R.Multiply(fr / core.AbsCosTheta(wi))
		return f, wi, fr, BSDFReflection | BSDFSpecular
	}

	entering := core.CosTheta(wo) > 0
	etaI, etaT := s.EtaA, s.EtaB
	if !entering {
		etaI, etaT = etaT, etaI
	}

	wi, ok := core.Refract(wo, core.NewVec3(0, 0, 1).FaceForward(wo), etaI/etaT)
	if !ok {
		return core.Vec3{}, core.Vec3{}, 0, 0
	}
	ft := s.T.Multiply(1 - fr)
	if s.Mode == Radiance {
		ft = ft.Multiply((etaI * etaI) / (etaT * etaT))
	}
	return ft.Divide(core.AbsCosTheta(wi)), wi, 1 - fr, BSDFTransmission | BSDFSpecular
}
