package geometry

import (
	"math"

	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Surface
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Surface: Surface{Material: mat},
		Center:  center,
		Radius:  radius,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray *core.Ray, si *material.SurfaceInteraction) bool {
	if !hitSphere(s.Center, s.Radius, ray, si) {
		return false
	}
	s.fill(ray, si)
	return true
}

// hitSphere fills the geometric part of si and shrinks ray.TMax on a hit
func hitSphere(center core.Vec3, radius float64, ray *core.Ray, si *material.SurfaceInteraction) bool {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root <= core.RayEpsilon || root >= ray.TMax {
		root = (-halfB + sqrtD) / a
		if root <= core.RayEpsilon || root >= ray.TMax {
			return false
		}
	}

	si.T = root
	si.Point = ray.At(root)
	outwardNormal := si.Point.Subtract(center).Multiply(1.0 / radius)
	si.SetFaceNormal(*ray, outwardNormal)
	si.UV = sphereUV(outwardNormal)

	ray.TMax = root
	return true
}

// sphereUV maps a point on the unit sphere to texture coordinates
func sphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(core.Clamp(-p.Y, -1, 1))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() (core.AABB, bool) {
	radius := core.NewSpectrum(math.Abs(s.Radius))
	return core.NewAABB(s.Center.Subtract(radius), s.Center.Add(radius)), true
}

// Area returns the surface area of the sphere
func (s *Sphere) Area() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}

// cosThetaMax returns the cosine of the half-angle the sphere subtends from p,
// or false if p is inside the sphere
func (s *Sphere) cosThetaMax(p core.Vec3) (float64, bool) {
	distanceSquared := s.Center.Subtract(p).LengthSquared()
	r2 := s.Radius * s.Radius
	if distanceSquared <= r2 {
		return 0, false
	}
	return math.Sqrt(1 - r2/distanceSquared), true
}

// PdfValue returns 1/(2π(1-cosθmax)) for directions that hit the sphere.
// From inside the sphere every direction is sampled uniformly.
func (s *Sphere) PdfValue(p, dir core.Vec3) float64 {
	var scratch material.SurfaceInteraction
	ray := core.NewRay(p, dir)
	if !s.Hit(&ray, &scratch) {
		return 0
	}
	cosMax, outside := s.cosThetaMax(p)
	if !outside {
		return core.UniformSpherePdf()
	}
	return core.UniformConePdf(cosMax)
}

// Random samples a direction uniformly inside the cone the sphere subtends from p
func (s *Sphere) Random(p core.Vec3, u core.Vec2) core.Vec3 {
	cosMax, outside := s.cosThetaMax(p)
	if !outside {
		return core.UniformSampleSphere(u)
	}
	toCenter := s.Center.Subtract(p)
	frame := core.NewFrame(toCenter.Normalize())
	return frame.FromLocal(core.UniformSampleCone(u, cosMax))
}
