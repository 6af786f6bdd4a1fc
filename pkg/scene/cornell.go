package scene

import (
	"math"

	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/geometry"
	"github.com/df07/go-volpath/pkg/material"
	"github.com/df07/go-volpath/pkg/medium"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

func cornellCamera(m core.Medium) *geometry.Camera {
	return geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(278, 278, -800), // outside the box looking in
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1.0,
		VFov:        40.0,
		Medium:      m,
	})
}

// addCornellWalls adds the five walls and the ceiling light
func addCornellWalls(s *Scene) {
	white := material.NewMatte(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewMatte(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewMatte(core.NewVec3(0.12, 0.45, 0.15))

	// Every wall's u × v points into the box
	floor := geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), white)
	ceiling := geometry.NewQuad(core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white)
	backWall := geometry.NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), white)
	leftWall := geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), red)
	rightWall := geometry.NewQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), green)
	s.AddShapes(floor, ceiling, backWall, leftWall, rightWall)

	// Ceiling light, slightly below the ceiling and facing down
	lightSize := 130.0
	lightOffset := (boxSize - lightSize) / 2.0
	s.AddQuadLight(
		core.NewVec3(lightOffset, boxSize-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
		core.NewVec3(15.0, 15.0, 15.0),
	)
}

// NewCornellScene creates a classic Cornell box with two rotated blocks
func NewCornellScene() *Scene {
	s := New(cornellCamera(nil))
	s.SamplingConfig.SamplesPerPixel = 128
	s.SamplingConfig.MaxDepth = 16
	addCornellWalls(s)

	white := material.NewMatte(core.NewVec3(0.73, 0.73, 0.73))
	tall := geometry.NewBox(core.NewVec3(368, 165, 351), core.NewVec3(82.5, 165, 82.5), 15*math.Pi/180, white)
	short := geometry.NewBox(core.NewVec3(185, 82.5, 169), core.NewVec3(82.5, 82.5, 82.5), -18*math.Pi/180, white)
	s.AddShapes(tall, short)
	return s
}

// NewGlassCornellScene replaces the blocks with a glass sphere and a rough gold sphere
func NewGlassCornellScene() *Scene {
	s := New(cornellCamera(nil))
	s.SamplingConfig.SamplesPerPixel = 256
	s.SamplingConfig.MaxDepth = 24
	addCornellWalls(s)

	gold := material.NewMetal(material.GoldEta, material.GoldK, 0.15)
	glass := material.NewGlass(1.5)
	s.AddShapes(
		geometry.NewSphere(core.NewVec3(185, 90, 169), 90, gold),
		geometry.NewSphere(core.NewVec3(370, 90, 351), 90, glass),
	)
	return s
}

// NewFoggyCornellScene fills the Cornell box with a homogeneous scattering medium.
// The fog is bounded by a material-less box just inside the walls.
func NewFoggyCornellScene() *Scene {
	s := New(cornellCamera(nil))
	s.SamplingConfig.SamplesPerPixel = 256
	s.SamplingConfig.MaxDepth = 24
	addCornellWalls(s)

	fog := medium.NewHomogeneous(core.NewSpectrum(0.0005), core.NewSpectrum(0.002), 0.3)
	boundary := geometry.NewAxisAlignedBox(core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(boxSize-0.5, boxSize-0.5, boxSize-0.5), nil)
	boundary.SetMediumInterface(core.NewMediumInterface(fog, nil))

	glass := material.NewGlass(1.5)
	white := material.NewMatte(core.NewVec3(0.73, 0.73, 0.73))
	tall := geometry.NewBox(core.NewVec3(368, 165, 351), core.NewVec3(82.5, 165, 82.5), 15*math.Pi/180, white)
	s.AddShapes(boundary, tall, geometry.NewSphere(core.NewVec3(185, 90, 169), 90, glass))
	return s
}
