package core

import "math"

// RayEpsilon is the minimum hit distance accepted by shapes, used to avoid
// self-intersection when spawning rays from a surface. Rays spawned from
// interactions and cameras carry unit directions, so it is a world distance.
const RayEpsilon = 1e-4

// ShadowEpsilon shortens shadow rays by this fraction of their length.
const ShadowEpsilon = 1e-4

// Infinity is the default upper bound of a ray
var Infinity = math.Inf(1)

// Ray represents a ray with an origin and direction.
// TMax only ever shrinks while the ray is traced through a scene.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMax      float64
	Time      float64
	Medium    Medium // medium the ray travels through, nil for vacuum
}

// NewRay creates a new unbounded ray in vacuum
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, TMax: Infinity}
}

// NewRayInMedium creates a new unbounded ray travelling through a medium
func NewRayInMedium(origin, direction Vec3, medium Medium) Ray {
	return Ray{Origin: origin, Direction: direction, TMax: Infinity, Medium: medium}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
