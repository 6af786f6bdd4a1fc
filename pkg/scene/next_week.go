package scene

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/geometry"
	"github.com/df07/go-volpath/pkg/material"
	"github.com/df07/go-volpath/pkg/medium"
)

// Silver optical constants sampled at RGB wavelengths
var (
	silverEta = core.NewVec3(0.155, 0.117, 0.138)
	silverK   = core.NewVec3(4.83, 3.12, 2.15)
)

// NewNextWeekScene builds the showcase scene with a field of floor blocks, a
// motion blurred sphere, a marble sphere, a sphere of subsurface fog behind
// glass and an instanced cluster of spheres, all inside a thin global haze.
// The layout is fixed by seed.
func NewNextWeekScene(seed int64) (*Scene, error) {
	random := rand.New(rand.NewSource(seed))

	haze := medium.NewHomogeneous(core.Vec3{}, core.NewSpectrum(0.0001), 0)
	camera := geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(478, 278, -600),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1,
		VFov:        40,
		Medium:      haze,
		Time0:       0,
		Time1:       1,
	})
	s := New(camera)
	s.SamplingConfig.SamplesPerPixel = 256
	s.SamplingConfig.MaxDepth = 32

	// Floor of blocks with random heights
	ground := material.NewMatte(core.NewVec3(0.48, 0.83, 0.53))
	const blocksPerSide = 20
	const blockWidth = 100.0
	for i := 0; i < blocksPerSide; i++ {
		for j := 0; j < blocksPerSide; j++ {
			x0 := -1000 + float64(i)*blockWidth
			z0 := -1000 + float64(j)*blockWidth
			y1 := 1 + random.Float64()*100
			s.AddShapes(geometry.NewAxisAlignedBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+blockWidth, y1, z0+blockWidth), ground))
		}
	}

	s.AddQuadLight(core.NewVec3(123, 554, 147), core.NewVec3(300, 0, 0), core.NewVec3(0, 0, 265), core.NewSpectrum(7))

	center := core.NewVec3(400, 400, 200)
	s.AddShapes(geometry.NewMovingSphere(center, center.Add(core.NewVec3(30, 0, 0)), 0, 1, 50,
		material.NewMatte(core.NewVec3(0.7, 0.3, 0.1))))

	s.AddShapes(
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewGlass(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(silverEta, silverK, 0.8)),
	)

	// Blue fog behind a glass surface
	subsurface := medium.NewHomogeneous(core.NewVec3(0.16, 0.12, 0.02), core.NewVec3(0.04, 0.08, 0.18), 0)
	shell := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewGlass(1.5))
	shell.MediumInterface = core.NewMediumInterface(subsurface, haze)
	s.AddShapes(shell)

	// The haze fills a large material-less sphere around everything
	hazeBoundary := geometry.NewSphere(core.Vec3{}, 5000, nil)
	hazeBoundary.MediumInterface = core.NewMediumInterface(haze, nil)
	s.AddShapes(hazeBoundary)

	checker := material.NewCheckerTexture(core.NewVec3(0.2, 0.3, 0.6), core.NewVec3(0.9, 0.9, 0.9), 0.05)
	s.AddShapes(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedMatte(checker)))

	marble := material.NewNoiseTexture(0.1, seed)
	s.AddShapes(geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedMatte(marble)))

	// One cluster of small spheres, built in its own space and placed by instancing
	white := material.NewMatte(core.NewSpectrum(0.73))
	cluster := make([]geometry.Primitive, 0, 1000)
	for i := 0; i < 1000; i++ {
		p := core.NewVec3(random.Float64()*165, random.Float64()*165, random.Float64()*165)
		cluster = append(cluster, geometry.NewSphere(p, 10, white))
	}
	bvh, err := geometry.NewBVH(cluster, random)
	if err != nil {
		return nil, fmt.Errorf("scene: building sphere cluster: %w", err)
	}
	s.AddShapes(geometry.NewTranslate(geometry.NewRotateY(bvh, 15), core.NewVec3(-100, 270, 395)))
	return s, nil
}
