package material

import (
	"math"

	"github.com/df07/go-volpath/pkg/core"
)

// Fresnel computes the fraction of light reflected at an interface
type Fresnel interface {
	Evaluate(cosThetaI float64) core.Vec3
}

// FrDielectric returns the unpolarized Fresnel reflectance between two dielectrics.
// A negative cosThetaI means the light arrives from the etaT side. Total internal
// reflection returns 1.
func FrDielectric(cosThetaI, etaI, etaT float64) float64 {
	cosThetaI = core.Clamp(cosThetaI, -1, 1)
	if cosThetaI <= 0 {
		etaI, etaT = etaT, etaI
		cosThetaI = math.Abs(cosThetaI)
	}

	sinThetaI := math.Sqrt(math.Max(0, 1-cosThetaI*cosThetaI))
	sinThetaT := etaI / etaT * sinThetaI
	if sinThetaT >= 1 {
		return 1
	}
	cosThetaT := math.Sqrt(math.Max(0, 1-sinThetaT*sinThetaT))

	rParl := (etaT*cosThetaI - etaI*cosThetaT) / (etaT*cosThetaI + etaI*cosThetaT)
	rPerp := (etaI*cosThetaI - etaT*cosThetaT) / (etaI*cosThetaI + etaT*cosThetaT)
	return (rParl*rParl + rPerp*rPerp) / 2
}

// FrConductor returns the Fresnel reflectance at a dielectric/conductor boundary
// where the conductor has complex index etaT + i·k
func FrConductor(cosThetaI float64, etaI, etaT, k core.Vec3) core.Vec3 {
	cosThetaI = core.Clamp(cosThetaI, -1, 1)
	eta := etaT.DivideVec(etaI)
	etak := k.DivideVec(etaI)

	cos2 := cosThetaI * cosThetaI
	sin2 := 1 - cos2
	eta2 := eta.MultiplyVec(eta)
	etak2 := etak.MultiplyVec(etak)

	channel := func(eta2, etak2 float64) float64 {
		t0 := eta2 - etak2 - sin2
		a2plusb2 := math.Sqrt(t0*t0 + 4*eta2*etak2)
		t1 := a2plusb2 + cos2
		a := math.Sqrt(0.5 * (a2plusb2 + t0))
		t2 := 2 * cosThetaI * a
		rs := (t1 - t2) / (t1 + t2)

		t3 := cos2*a2plusb2 + sin2*sin2
		t4 := t2 * sin2
		rp := rs * (t3 - t4) / (t3 + t4)
		return 0.5 * (rp + rs)
	}

	return core.NewVec3(
		channel(eta2.X, etak2.X),
		channel(eta2.Y, etak2.Y),
		channel(eta2.Z, etak2.Z),
	)
}

// FresnelDielectric is the Fresnel term of a boundary between two insulators
type FresnelDielectric struct {
	EtaI, EtaT float64
}

func (f FresnelDielectric) Evaluate(cosThetaI float64) core.Vec3 {
	return core.NewSpectrum(FrDielectric(cosThetaI, f.EtaI, f.EtaT))
}

// FresnelConductor is the Fresnel term of a metal surface
type FresnelConductor struct {
	EtaI, EtaT, K core.Vec3
}

func (f FresnelConductor) Evaluate(cosThetaI float64) core.Vec3 {
	return FrConductor(math.Abs(cosThetaI), f.EtaI, f.EtaT, f.K)
}

// FresnelNoOp reflects everything
type FresnelNoOp struct{}

func (FresnelNoOp) Evaluate(float64) core.Vec3 {
	return core.NewSpectrum(1)
}
