package geometry

import (
	"math"

	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/material"
)

// Quad represents a rectangular surface defined by a corner and two edge vectors.
// The outward normal is U × V.
type Quad struct {
	Surface
	Corner core.Vec3 // One corner of the quad
	U      core.Vec3 // First edge vector
	V      core.Vec3 // Second edge vector
	Normal core.Vec3 // Normal vector (computed from U × V)
	D      float64   // Plane equation constant: ax + by + cz = d
	W      core.Vec3 // Cached cross product for planar coordinates
	area   float64
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, mat material.Material) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	return &Quad{
		Surface: Surface{Material: mat},
		Corner:  corner,
		U:       u,
		V:       v,
		Normal:  normal,
		D:       normal.Dot(corner),
		W:       cross.Multiply(1.0 / cross.Dot(cross)),
		area:    cross.Length(),
	}
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray *core.Ray, si *material.SurfaceInteraction) bool {
	denominator := ray.Direction.Dot(q.Normal)

	// Ray is parallel to the plane
	if math.Abs(denominator) < 1e-12 {
		return false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if t <= core.RayEpsilon || t >= ray.TMax {
		return false
	}

	// Planar coordinates of the hit point relative to the corner
	hitPoint := ray.At(t)
	hitVector := hitPoint.Subtract(q.Corner)
	alpha := q.W.Dot(hitVector.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return false
	}

	si.T = t
	si.Point = hitPoint
	si.UV = core.NewVec2(alpha, beta)
	si.SetFaceNormal(*ray, q.Normal)
	q.fill(ray, si)

	ray.TMax = t
	return true
}

// BoundingBox returns the bounds of the four corners, padded so the box is never flat
func (q *Quad) BoundingBox() (core.AABB, bool) {
	box := core.NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	)
	return box.Expand(1e-4), true
}

// Area returns the surface area of the quad
func (q *Quad) Area() float64 {
	return q.area
}

// PdfValue converts the uniform area density into solid angle as seen from p
func (q *Quad) PdfValue(p, dir core.Vec3) float64 {
	var scratch material.SurfaceInteraction
	ray := core.NewRay(p, dir)
	if !q.Hit(&ray, &scratch) {
		return 0
	}
	return pdfFromHit(ray, &scratch, q.area)
}

// Random picks a uniform point on the quad and returns the direction to it from p
func (q *Quad) Random(p core.Vec3, u core.Vec2) core.Vec3 {
	point := q.Corner.Add(q.U.Multiply(u.X)).Add(q.V.Multiply(u.Y))
	return point.Subtract(p)
}
