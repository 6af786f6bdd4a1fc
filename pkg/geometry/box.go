package geometry

import (
	"math"

	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/material"
)

// Box represents a rectangular box made up of 6 outward-facing quads with an
// optional rotation about the Y axis
type Box struct {
	Center    core.Vec3 // Center point of the box
	Size      core.Vec3 // Half-extents along each axis
	RotationY float64   // Rotation around the Y axis in radians
	faces     [6]*Quad
	bbox      core.AABB
}

// NewBox creates a new box with the given center, half-extents, Y rotation and material
func NewBox(center, size core.Vec3, rotationY float64, mat material.Material) *Box {
	b := &Box{Center: center, Size: size, RotationY: rotationY}
	b.generateFaces(mat)
	return b
}

// NewAxisAlignedBox creates a new axis-aligned box spanning two corners
func NewAxisAlignedBox(min, max core.Vec3, mat material.Material) *Box {
	box := core.NewAABB(min, max)
	return NewBox(box.Center(), box.Size().Multiply(0.5), 0, mat)
}

// generateFaces creates the 6 quad faces of the box
func (b *Box) generateFaces(mat material.Material) {
	sin, cos := math.Sin(b.RotationY), math.Cos(b.RotationY)
	transform := func(x, y, z float64) core.Vec3 {
		p := core.NewVec3(x*b.Size.X, y*b.Size.Y, z*b.Size.Z)
		return core.NewVec3(cos*p.X+sin*p.Z, p.Y, -sin*p.X+cos*p.Z).Add(b.Center)
	}

	// Define the 8 corners of a unit box centered at origin
	corners := [8]core.Vec3{
		transform(-1, -1, -1), // 0: left-bottom-back
		transform(1, -1, -1),  // 1: right-bottom-back
		transform(1, 1, -1),   // 2: right-top-back
		transform(-1, 1, -1),  // 3: left-top-back
		transform(-1, -1, 1),  // 4: left-bottom-front
		transform(1, -1, 1),   // 5: right-bottom-front
		transform(1, 1, 1),    // 6: right-top-front
		transform(-1, 1, 1),   // 7: left-top-front
	}

	// Each face is corner + two edges with U × V pointing out of the box
	face := func(c, u, v int) *Quad {
		return NewQuad(corners[c], corners[u].Subtract(corners[c]), corners[v].Subtract(corners[c]), mat)
	}
	b.faces = [6]*Quad{
		face(4, 5, 7), // front (+Z)
		face(1, 0, 2), // back (-Z)
		face(5, 1, 6), // right (+X)
		face(0, 4, 3), // left (-X)
		face(7, 6, 3), // top (+Y)
		face(0, 1, 4), // bottom (-Y)
	}

	b.bbox = core.NewAABBFromPoints(corners[:]...)
}

// SetMediumInterface marks every face as a boundary between two media
func (b *Box) SetMediumInterface(mi *core.MediumInterface) {
	for _, f := range b.faces {
		f.MediumInterface = mi
	}
}

// SetAreaLight attaches an emitter to every face
func (b *Box) SetAreaLight(light material.AreaLight) {
	for _, f := range b.faces {
		f.AreaLight = light
	}
}

// Faces returns the six quads of the box
func (b *Box) Faces() []*Quad {
	return b.faces[:]
}

// Hit returns the closest face hit
func (b *Box) Hit(ray *core.Ray, si *material.SurfaceInteraction) bool {
	hitAnything := false
	for _, f := range b.faces {
		if f.Hit(ray, si) {
			hitAnything = true
		}
	}
	return hitAnything
}

// BoundingBox returns the bounds of the rotated box
func (b *Box) BoundingBox() (core.AABB, bool) {
	return b.bbox, true
}

// Area returns the total surface area
func (b *Box) Area() float64 {
	area := 0.0
	for _, f := range b.faces {
		area += f.Area()
	}
	return area
}

// PdfValue averages the face densities, matching Random's uniform face choice
func (b *Box) PdfValue(p, dir core.Vec3) float64 {
	sum := 0.0
	for _, f := range b.faces {
		sum += f.PdfValue(p, dir)
	}
	return sum / float64(len(b.faces))
}

// Random picks a face uniformly and samples a point on it
func (b *Box) Random(p core.Vec3, u core.Vec2) core.Vec3 {
	i := min(int(u.X*float64(len(b.faces))), len(b.faces)-1)
	remapped := core.NewVec2(u.X*float64(len(b.faces))-float64(i), u.Y)
	return b.faces[i].Random(p, remapped)
}
