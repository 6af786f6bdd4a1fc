package lights

import (
	"math"

	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/geometry"
	"github.com/df07/go-volpath/pkg/material"
)

// DiffuseAreaLight emits constant radiance from the surface of a shape
type DiffuseAreaLight struct {
	Lemit    core.Vec3
	Shape    geometry.Shape
	TwoSided bool
	area     float64
}

type areaLightHolder interface {
	SetAreaLight(light material.AreaLight)
}

// NewDiffuseAreaLight creates an area light and attaches it to the shape so
// that rays hitting the shape see its emission
func NewDiffuseAreaLight(lemit core.Vec3, shape geometry.Shape, twoSided bool) *DiffuseAreaLight {
	light := &DiffuseAreaLight{
		Lemit:    lemit,
		Shape:    shape,
		TwoSided: twoSided,
		area:     shape.Area(),
	}
	if holder, ok := shape.(areaLightHolder); ok {
		holder.SetAreaLight(light)
	}
	return light
}

func (l *DiffuseAreaLight) Flags() LightFlags {
	return Area
}

// L returns the radiance leaving the surface point it in direction w.
// One-sided lights only emit on the side of the outward normal.
func (l *DiffuseAreaLight) L(it *core.Interaction, w core.Vec3) core.Vec3 {
	if l.TwoSided || it.OutwardNormal().Dot(w) > 0 {
		return l.Lemit
	}
	return core.Vec3{}
}

// SampleLi samples a direction towards the shape and finds the point it lands on
func (l *DiffuseAreaLight) SampleLi(ref *core.Interaction, u core.Vec2) LightSample {
	dir := l.Shape.Random(ref.Point, u)
	if dir.IsBlack() {
		return LightSample{}
	}
	wi := dir.Normalize()
	pdf := l.Shape.PdfValue(ref.Point, wi)
	if pdf == 0 {
		return LightSample{}
	}

	ray := core.NewRay(ref.Point, wi)
	var si material.SurfaceInteraction
	if !l.Shape.Hit(&ray, &si) {
		return LightSample{}
	}

	return LightSample{
		Wi:  wi,
		Li:  l.L(&si.Interaction, wi.Negate()),
		Pdf: pdf,
		Vis: VisibilityTester{P0: *ref, P1: si.Point},
	}
}

// PdfLi returns the solid-angle density of sampling wi from ref
func (l *DiffuseAreaLight) PdfLi(ref *core.Interaction, wi core.Vec3) float64 {
	return l.Shape.PdfValue(ref.Point, wi)
}

func (l *DiffuseAreaLight) Le(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}

func (l *DiffuseAreaLight) Power() core.Vec3 {
	sides := 1.0
	if l.TwoSided {
		sides = 2
	}
	return l.Lemit.Multiply(sides * l.area * math.Pi)
}
