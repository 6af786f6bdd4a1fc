package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/geometry"
	"github.com/df07/go-volpath/pkg/material"
	"github.com/df07/go-volpath/pkg/medium"
)

// NewGlossyScene lines up spheres of every material on a checkered floor
func NewGlossyScene() *Scene {
	camera := geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(0, 2.5, 9),
		LookAt:      core.NewVec3(0, 0.8, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 16.0 / 9.0,
		VFov:        35,
	})
	s := New(camera)
	s.SamplingConfig.Width = 640
	s.SamplingConfig.Height = 360
	s.SamplingConfig.MaxDepth = 12

	checker := material.NewCheckerTexture(core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.2, 0.3, 0.1), 2)
	s.AddShapes(NewGroundQuad(core.NewVec3(0, 0, 0), 40, material.NewTexturedMatte(checker)))

	spheres := []material.Material{
		material.NewPlastic(core.NewVec3(0.6, 0.1, 0.1), core.NewSpectrum(0.4), 0.05),
		material.NewMetal(material.CopperEta, material.CopperK, 0.3),
		material.NewRoughGlass(1.5, 0.1),
		material.NewMirror(core.NewSpectrum(0.9)),
		material.NewMetal(material.GoldEta, material.GoldK, 0.02),
	}
	for i, mat := range spheres {
		x := (float64(i) - float64(len(spheres)-1)/2) * 2.2
		s.AddShapes(geometry.NewSphere(core.NewVec3(x, 1, 0), 1, mat))
	}

	s.AddSphereLight(core.NewVec3(-4, 7, 4), 1.2, core.NewSpectrum(12))
	s.AddUniformInfiniteLight(core.NewVec3(0.15, 0.2, 0.3))
	return s
}

// NewSmokeScene renders a heterogeneous puff of smoke above a floor
func NewSmokeScene() (*Scene, error) {
	camera := geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(0, 1.5, 6),
		LookAt:      core.NewVec3(0, 1.2, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1,
		VFov:        40,
	})
	s := New(camera)
	s.SamplingConfig.SamplesPerPixel = 128
	s.SamplingConfig.MaxDepth = 32

	bounds := core.NewAABB(core.NewVec3(-1.2, 0.2, -1.2), core.NewVec3(1.2, 2.6, 1.2))
	smoke, err := medium.NewGridDensity(core.NewSpectrum(0.5), core.NewSpectrum(4), 0.4, 32, 32, 32, bounds, puffDensity(32))
	if err != nil {
		return nil, fmt.Errorf("scene: building smoke grid: %w", err)
	}
	boundary := geometry.NewAxisAlignedBox(bounds.Min, bounds.Max, nil)
	boundary.SetMediumInterface(core.NewMediumInterface(smoke, nil))

	s.AddShapes(boundary, NewGroundQuad(core.NewVec3(0, 0, 0), 20, material.NewMatte(core.NewSpectrum(0.5))))
	s.AddSphereLight(core.NewVec3(3, 5, 3), 0.8, core.NewSpectrum(30))
	s.AddPointLight(core.NewVec3(-3, 3, 1), core.NewSpectrum(6))
	s.AddUniformInfiniteLight(core.NewSpectrum(0.1))
	return s, nil
}

// puffDensity builds an n³ grid holding a lumpy ball of density
func puffDensity(n int) []float64 {
	density := make([]float64, n*n*n)
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				p := core.NewVec3(
					(float64(x)+0.5)/float64(n)-0.5,
					(float64(y)+0.5)/float64(n)-0.5,
					(float64(z)+0.5)/float64(n)-0.5,
				)
				falloff := math.Max(0, 1-p.Length()/0.45)
				lumps := 0.6 + 0.4*math.Sin(11*p.X)*math.Sin(13*p.Y)*math.Sin(7*p.Z+1)
				density[(z*n+y)*n+x] = falloff * lumps
			}
		}
	}
	return density
}

// NewFurnaceScene places a white diffuse sphere inside a uniform environment of
// radiance 1. With energy conserving transport every pixel converges to 1.
func NewFurnaceScene() *Scene {
	camera := geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 4),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1,
		VFov:        30,
	})
	s := New(camera)
	s.SamplingConfig.Width = 64
	s.SamplingConfig.Height = 64
	s.SamplingConfig.MaxDepth = 64
	s.SamplingConfig.RussianRouletteMinBounces = 64

	s.AddShapes(geometry.NewSphere(core.Vec3{}, 1, material.NewMatte(core.NewSpectrum(1))))
	s.AddUniformInfiniteLight(core.NewSpectrum(1))
	return s
}
