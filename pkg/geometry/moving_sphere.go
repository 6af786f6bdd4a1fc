package geometry

import (
	"math"

	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/material"
)

// MovingSphere is a sphere whose center moves linearly from Center0 at Time0
// to Center1 at Time1. Rays are tested against the position at ray.Time.
type MovingSphere struct {
	Surface
	Center0, Center1 core.Vec3
	Time0, Time1     float64
	Radius           float64
}

// NewMovingSphere creates a sphere moving between two centers over [time0, time1]
func NewMovingSphere(center0, center1 core.Vec3, time0, time1, radius float64, mat material.Material) *MovingSphere {
	return &MovingSphere{
		Surface: Surface{Material: mat},
		Center0: center0,
		Center1: center1,
		Time0:   time0,
		Time1:   time1,
		Radius:  radius,
	}
}

// Center returns the center at the given time
func (s *MovingSphere) Center(time float64) core.Vec3 {
	if s.Time1 == s.Time0 {
		return s.Center0
	}
	f := (time - s.Time0) / (s.Time1 - s.Time0)
	return s.Center0.Add(s.Center1.Subtract(s.Center0).Multiply(f))
}

func (s *MovingSphere) Hit(ray *core.Ray, si *material.SurfaceInteraction) bool {
	if !hitSphere(s.Center(ray.Time), s.Radius, ray, si) {
		return false
	}
	s.fill(ray, si)
	return true
}

// BoundingBox covers the sphere over the whole motion
func (s *MovingSphere) BoundingBox() (core.AABB, bool) {
	radius := core.NewSpectrum(math.Abs(s.Radius))
	box0 := core.NewAABB(s.Center0.Subtract(radius), s.Center0.Add(radius))
	box1 := core.NewAABB(s.Center1.Subtract(radius), s.Center1.Add(radius))
	return box0.Union(box1), true
}
