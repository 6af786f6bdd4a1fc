package geometry

import (
	"errors"

	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/material"
)

// ErrNoBoundingBox is returned when a primitive cannot be bounded
var ErrNoBoundingBox = errors.New("geometry: primitive has no bounding box")

// Primitive is anything a ray can be intersected with
type Primitive interface {
	// Hit tests the ray within (core.RayEpsilon, ray.TMax). On a hit it fills si
	// and shrinks ray.TMax to the hit distance; on a miss neither is touched.
	Hit(ray *core.Ray, si *material.SurfaceInteraction) bool

	// BoundingBox returns the bounds of the primitive, or false if it is unbounded
	BoundingBox() (core.AABB, bool)
}

// Shape is a bounded primitive that can also be sampled from a reference point,
// which lets it act as an area light
type Shape interface {
	Primitive

	// PdfValue returns the solid-angle density of Random producing dir from p
	PdfValue(p, dir core.Vec3) float64

	// Random returns an unnormalized direction from p towards a point on the shape
	Random(p core.Vec3, u core.Vec2) core.Vec3

	// Area returns the surface area
	Area() float64
}

// Surface carries what a shape's hit reports besides geometry
type Surface struct {
	Material        material.Material     // nil marks a medium boundary
	AreaLight       material.AreaLight    // set when the shape emits
	MediumInterface *core.MediumInterface // nil when the shape does not separate media
}

// SetAreaLight attaches an emitter to the surface
func (s *Surface) SetAreaLight(light material.AreaLight) {
	s.AreaLight = light
}

// fill copies the surface attachments into a hit record
func (s *Surface) fill(ray *core.Ray, si *material.SurfaceInteraction) {
	si.Material = s.Material
	si.AreaLight = s.AreaLight
	si.MediumInterface = s.MediumInterface
	si.Medium = ray.Medium
	si.Time = ray.Time
	si.Wo = ray.Direction.Negate().Normalize()
}

// pdfFromHit converts an area density at a hit point into a solid-angle density
// as seen from the ray origin
func pdfFromHit(ray core.Ray, si *material.SurfaceInteraction, area float64) float64 {
	distanceSquared := si.T * si.T * ray.Direction.LengthSquared()
	cosine := ray.Direction.Normalize().AbsDot(si.Normal)
	if cosine == 0 || area == 0 {
		return 0
	}
	return distanceSquared / (cosine * area)
}
