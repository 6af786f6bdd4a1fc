package scene

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/geometry"
	"github.com/df07/go-volpath/pkg/lights"
	"github.com/df07/go-volpath/pkg/material"
)

// Scene contains all the elements needed for rendering.
// After Preprocess it is read-only and safe to share between workers.
type Scene struct {
	Camera         *geometry.Camera
	Shapes         []geometry.Primitive // Objects in the scene
	Lights         []lights.Light       // Lights in the scene
	InfiniteLights []lights.Light       // Subset of Lights seen by escaping rays
	LightSampler   lights.LightSampler  // Chooses the light for next-event estimation
	SamplingConfig SamplingConfig
	BVH            *geometry.BVH // Acceleration structure for ray-object intersection

	// PowerLightSampling picks lights in proportion to their power instead of uniformly
	PowerLightSampling bool

	aggregate []geometry.Primitive
	bounds    core.AABB
}

// SamplingConfig holds the settings a scene renders best with
type SamplingConfig struct {
	Width                     int // Image width
	Height                    int // Image height
	SamplesPerPixel           int // Number of samples per pixel
	MaxDepth                  int // Maximum path length
	RussianRouletteMinBounces int // Bounces before Russian roulette can terminate a path
}

// New creates an empty scene viewed through camera
func New(camera *geometry.Camera) *Scene {
	return &Scene{
		Camera: camera,
		SamplingConfig: SamplingConfig{
			Width:                     400,
			Height:                    400,
			SamplesPerPixel:           64,
			MaxDepth:                  8,
			RussianRouletteMinBounces: 3,
		},
	}
}

// Preprocess builds the BVH and hands the scene bounds to lights that need them
func (s *Scene) Preprocess(random *rand.Rand) error {
	bvh, err := geometry.NewBVH(s.Shapes, random)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	s.BVH = bvh
	s.aggregate = []geometry.Primitive{bvh}
	s.bounds, _ = bvh.BoundingBox()

	center, radius := s.bounds.BoundingSphere()
	if radius <= 0 {
		radius = 1
	}
	s.InfiniteLights = s.InfiniteLights[:0]
	for _, light := range s.Lights {
		if preprocessor, ok := light.(lights.Preprocessor); ok {
			preprocessor.Preprocess(center, radius)
		}
		if light.Flags()&lights.Infinite != 0 {
			s.InfiniteLights = append(s.InfiniteLights, light)
		}
	}

	// Power depends on the bounds handed to infinite lights above
	if s.PowerLightSampling {
		s.LightSampler = lights.NewPowerLightSampler(s.Lights)
	} else {
		s.LightSampler = lights.NewUniformLightSampler(s.Lights)
	}
	return nil
}

// Bounds returns the bounding box of all shapes
func (s *Scene) Bounds() core.AABB {
	return s.bounds
}

// Intersect finds the closest hit along the ray, shrinking ray.TMax to it
func (s *Scene) Intersect(ray *core.Ray, si *material.SurfaceInteraction) bool {
	hit := false
	for _, p := range s.aggregate {
		if p.Hit(ray, si) {
			hit = true
		}
	}
	return hit
}

// IntersectTr finds the closest surface with a material, stepping through
// medium boundaries and accumulating the transmittance of the media crossed.
func (s *Scene) IntersectTr(ray *core.Ray, sampler core.Sampler, si *material.SurfaceInteraction) (bool, core.Vec3) {
	tr := core.NewSpectrum(1)
	for {
		hit := s.Intersect(ray, si)
		if ray.Medium != nil {
			tr = tr.MultiplyVec(ray.Medium.Tr(*ray, sampler))
		}
		if !hit {
			return false, tr
		}
		if si.Material != nil {
			return true, tr
		}
		*ray = si.SpawnRay(ray.Direction)
	}
}

// AddShapes adds shapes to the scene
func (s *Scene) AddShapes(shapes ...geometry.Primitive) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddAreaLight turns shape into a diffuse emitter and adds it to the scene
func (s *Scene) AddAreaLight(shape geometry.Shape, emission core.Vec3, twoSided bool) *lights.DiffuseAreaLight {
	light := lights.NewDiffuseAreaLight(emission, shape, twoSided)
	s.Lights = append(s.Lights, light)
	s.Shapes = append(s.Shapes, shape)
	return light
}

// AddQuadLight adds a rectangular one-sided area light facing along u × v
func (s *Scene) AddQuadLight(corner, u, v core.Vec3, emission core.Vec3) *lights.DiffuseAreaLight {
	black := material.NewMatte(core.Vec3{})
	return s.AddAreaLight(geometry.NewQuad(corner, u, v, black), emission, false)
}

// AddSphereLight adds a spherical area light
func (s *Scene) AddSphereLight(center core.Vec3, radius float64, emission core.Vec3) *lights.DiffuseAreaLight {
	black := material.NewMatte(core.Vec3{})
	return s.AddAreaLight(geometry.NewSphere(center, radius, black), emission, false)
}

// AddPointLight adds a point light
func (s *Scene) AddPointLight(position, intensity core.Vec3) {
	s.Lights = append(s.Lights, lights.NewPointLight(position, intensity))
}

// AddUniformInfiniteLight adds a uniform environment light
func (s *Scene) AddUniformInfiniteLight(emission core.Vec3) {
	s.Lights = append(s.Lights, lights.NewUniformInfiniteLight(emission))
}

// NewGroundQuad creates a large horizontal quad centered at center with normal +Y
func NewGroundQuad(center core.Vec3, size float64, mat material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (size,0,0) × (0,0,size) points down, so swap them for +Y
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, mat)
}
