package geometry

import (
	"math"

	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/material"
)

// Translate places a primitive at an offset. The wrapped primitive is tested
// in its own space, so one BVH can be instanced at several positions.
type Translate struct {
	Primitive Primitive
	Offset    core.Vec3
}

// NewTranslate wraps p so that it appears moved by offset
func NewTranslate(p Primitive, offset core.Vec3) *Translate {
	return &Translate{Primitive: p, Offset: offset}
}

// Hit moves the ray into object space and the hit back into world space
func (t *Translate) Hit(ray *core.Ray, si *material.SurfaceInteraction) bool {
	local := *ray
	local.Origin = ray.Origin.Subtract(t.Offset)
	if !t.Primitive.Hit(&local, si) {
		return false
	}
	si.Point = si.Point.Add(t.Offset)
	ray.TMax = local.TMax
	return true
}

func (t *Translate) BoundingBox() (core.AABB, bool) {
	box, ok := t.Primitive.BoundingBox()
	if !ok {
		return core.AABB{}, false
	}
	return core.AABB{Min: box.Min.Add(t.Offset), Max: box.Max.Add(t.Offset)}, true
}

// RotateY turns a primitive about the world Y axis through the origin
type RotateY struct {
	Primitive Primitive
	sin, cos  float64
	bbox      core.AABB
	hasBox    bool
}

// NewRotateY wraps p rotated by angle degrees. Positive angles turn +X towards -Z.
func NewRotateY(p Primitive, angle float64) *RotateY {
	radians := angle * math.Pi / 180
	r := &RotateY{Primitive: p, sin: math.Sin(radians), cos: math.Cos(radians)}

	box, ok := p.BoundingBox()
	if !ok {
		return r
	}
	var corners [8]core.Vec3
	for i := range corners {
		corner := core.NewVec3(
			pick(i&1 != 0, box.Max.X, box.Min.X),
			pick(i&2 != 0, box.Max.Y, box.Min.Y),
			pick(i&4 != 0, box.Max.Z, box.Min.Z),
		)
		corners[i] = r.toWorld(corner)
	}
	r.bbox = core.NewAABBFromPoints(corners[:]...)
	r.hasBox = true
	return r
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}

func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(r.cos*v.X+r.sin*v.Z, v.Y, -r.sin*v.X+r.cos*v.Z)
}

func (r *RotateY) toLocal(v core.Vec3) core.Vec3 {
	return core.NewVec3(r.cos*v.X-r.sin*v.Z, v.Y, r.sin*v.X+r.cos*v.Z)
}

// Hit rotates the ray into object space and the hit frame back into world space
func (r *RotateY) Hit(ray *core.Ray, si *material.SurfaceInteraction) bool {
	local := *ray
	local.Origin = r.toLocal(ray.Origin)
	local.Direction = r.toLocal(ray.Direction)
	if !r.Primitive.Hit(&local, si) {
		return false
	}
	si.Point = r.toWorld(si.Point)
	si.Normal = r.toWorld(si.Normal)
	si.Wo = r.toWorld(si.Wo)
	ray.TMax = local.TMax
	return true
}

func (r *RotateY) BoundingBox() (core.AABB, bool) {
	return r.bbox, r.hasBox
}
