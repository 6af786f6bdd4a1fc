package core

import "math"

// Frame is an orthonormal basis used to move directions between world space
// and a local space where N is the +Z axis.
type Frame struct {
	S, T, N Vec3
}

// NewFrame builds a frame around a unit normal
func NewFrame(n Vec3) Frame {
	// Find a vector not parallel to the normal
	var helper Vec3
	if math.Abs(n.X) > 0.1 {
		helper = NewVec3(0, 1, 0)
	} else {
		helper = NewVec3(1, 0, 0)
	}
	s := helper.Cross(n).Normalize()
	t := n.Cross(s)
	return Frame{S: s, T: t, N: n}
}

// ToLocal expresses a world-space direction in the frame
func (f Frame) ToLocal(v Vec3) Vec3 {
	return Vec3{v.Dot(f.S), v.Dot(f.T), v.Dot(f.N)}
}

// FromLocal expresses a local direction in world space
func (f Frame) FromLocal(v Vec3) Vec3 {
	return f.S.Multiply(v.X).Add(f.T.Multiply(v.Y)).Add(f.N.Multiply(v.Z))
}

// Local shading-space trigonometry. Directions are unit vectors with +Z as the normal.

func CosTheta(w Vec3) float64    { return w.Z }
func Cos2Theta(w Vec3) float64   { return w.Z * w.Z }
func AbsCosTheta(w Vec3) float64 { return math.Abs(w.Z) }
func Sin2Theta(w Vec3) float64   { return math.Max(0, 1-Cos2Theta(w)) }
func SinTheta(w Vec3) float64    { return math.Sqrt(Sin2Theta(w)) }

func TanTheta(w Vec3) float64 { return SinTheta(w) / CosTheta(w) }

func Tan2Theta(w Vec3) float64 { return Sin2Theta(w) / Cos2Theta(w) }

func CosPhi(w Vec3) float64 {
	sinTheta := SinTheta(w)
	if sinTheta == 0 {
		return 1
	}
	return Clamp(w.X/sinTheta, -1, 1)
}

func SinPhi(w Vec3) float64 {
	sinTheta := SinTheta(w)
	if sinTheta == 0 {
		return 0
	}
	return Clamp(w.Y/sinTheta, -1, 1)
}

func Cos2Phi(w Vec3) float64 { return CosPhi(w) * CosPhi(w) }
func Sin2Phi(w Vec3) float64 { return SinPhi(w) * SinPhi(w) }

// SameHemisphere reports whether two local directions lie on the same side of the surface
func SameHemisphere(w, wp Vec3) bool {
	return w.Z*wp.Z > 0
}

// SphericalDirection converts spherical coordinates to a local direction
func SphericalDirection(sinTheta, cosTheta, phi float64) Vec3 {
	return Vec3{
		X: Clamp(sinTheta, -1, 1) * math.Cos(phi),
		Y: Clamp(sinTheta, -1, 1) * math.Sin(phi),
		Z: Clamp(cosTheta, -1, 1),
	}
}

// Reflect mirrors wo about the normal n: -wo + 2(wo·n)n
func Reflect(wo, n Vec3) Vec3 {
	return wo.Negate().Add(n.Multiply(2 * wo.Dot(n)))
}

// Refract computes the refracted direction of wi through a surface with normal n
// and relative index eta = etaI/etaT. It returns false on total internal reflection.
func Refract(wi, n Vec3, eta float64) (Vec3, bool) {
	cosThetaI := n.Dot(wi)
	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := eta * eta * sin2ThetaI
	if sin2ThetaT >= 1 {
		return Vec3{}, false
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	wt := wi.Negate().Multiply(eta).Add(n.Multiply(eta*cosThetaI - cosThetaT))
	return wt, true
}

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
