package geometry

import (
	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/material"
)

// Triangle represents a single triangle defined by three vertices.
// The outward normal follows the winding V0→V1→V2.
type Triangle struct {
	Surface
	V0, V1, V2 core.Vec3 // The three vertices
	normal     core.Vec3 // Cached normal vector
	area       float64
	bbox       core.AABB // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) *Triangle {
	cross := v1.Subtract(v0).Cross(v2.Subtract(v0))
	return &Triangle{
		Surface: Surface{Material: mat},
		V0:      v0,
		V1:      v1,
		V2:      v2,
		normal:  cross.Normalize(),
		area:    0.5 * cross.Length(),
		bbox:    core.NewAABBFromPoints(v0, v1, v2).Expand(1e-4),
	}
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray *core.Ray, si *material.SurfaceInteraction) bool {
	const epsilon = 1e-12

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the plane of the triangle
	if a > -epsilon && a < epsilon {
		return false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return false
	}

	tHit := f * edge2.Dot(q)
	if tHit <= core.RayEpsilon || tHit >= ray.TMax {
		return false
	}

	si.T = tHit
	si.Point = ray.At(tHit)
	si.UV = core.NewVec2(u, v)
	si.SetFaceNormal(*ray, t.normal)
	t.fill(ray, si)

	ray.TMax = tHit
	return true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() (core.AABB, bool) {
	return t.bbox, true
}

// Area returns the surface area of the triangle
func (t *Triangle) Area() float64 {
	return t.area
}

// PdfValue converts the uniform area density into solid angle as seen from p
func (t *Triangle) PdfValue(p, dir core.Vec3) float64 {
	var scratch material.SurfaceInteraction
	ray := core.NewRay(p, dir)
	if !t.Hit(&ray, &scratch) {
		return 0
	}
	return pdfFromHit(ray, &scratch, t.area)
}

// Random picks a uniform point on the triangle and returns the direction to it from p
func (t *Triangle) Random(p core.Vec3, u core.Vec2) core.Vec3 {
	b0, b1 := core.UniformSampleTriangle(u)
	point := t.V0.Multiply(b0).Add(t.V1.Multiply(b1)).Add(t.V2.Multiply(1 - b0 - b1))
	return point.Subtract(p)
}
