package scene

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/geometry"
	"github.com/df07/go-volpath/pkg/lights"
	"github.com/df07/go-volpath/pkg/material"
	"github.com/df07/go-volpath/pkg/medium"
)

// unbounded is a primitive that cannot be placed in a BVH
type unbounded struct{}

func (unbounded) Hit(ray *core.Ray, si *material.SurfaceInteraction) bool { return false }
func (unbounded) BoundingBox() (core.AABB, bool)                          { return core.AABB{}, false }

func testCamera() *geometry.Camera {
	return geometry.NewCamera(geometry.CameraConfig{LookAt: core.NewVec3(0, 0, -1), VFov: 60})
}

func mustPreprocess(t *testing.T, s *Scene) {
	t.Helper()
	if err := s.Preprocess(rand.New(rand.NewSource(42))); err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
}

func TestScene_PreprocessMissingBounds(t *testing.T) {
	s := New(testCamera())
	s.AddShapes(geometry.NewSphere(core.Vec3{}, 1, nil), unbounded{})
	err := s.Preprocess(rand.New(rand.NewSource(1)))
	if !errors.Is(err, geometry.ErrNoBoundingBox) {
		t.Fatalf("Preprocess error = %v, want ErrNoBoundingBox", err)
	}
}

func TestScene_IntersectClosest(t *testing.T) {
	s := New(testCamera())
	white := material.NewMatte(core.NewSpectrum(0.5))
	for i := 0; i < 10; i++ {
		s.AddShapes(geometry.NewSphere(core.NewVec3(0, 0, -float64(3*i+3)), 1, white))
	}
	mustPreprocess(t, s)

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	var si material.SurfaceInteraction
	if !s.Intersect(&ray, &si) {
		t.Fatal("expected a hit")
	}
	if math.Abs(si.T-2) > 1e-9 || math.Abs(ray.TMax-2) > 1e-9 {
		t.Errorf("T = %f, TMax = %f, want the nearest sphere at 2", si.T, ray.TMax)
	}

	miss := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))
	if s.Intersect(&miss, &si) {
		t.Error("ray pointing away should miss")
	}
}

func TestScene_IntersectTr(t *testing.T) {
	sigmaT := 0.25
	fog := medium.NewHomogeneous(core.NewSpectrum(sigmaT), core.Vec3{}, 0)

	s := New(testCamera())
	boundary := geometry.NewAxisAlignedBox(core.NewVec3(-1, -1, -3), core.NewVec3(1, 1, -1), nil)
	boundary.SetMediumInterface(core.NewMediumInterface(fog, nil))
	wall := geometry.NewQuad(core.NewVec3(-5, -5, -6), core.NewVec3(10, 0, 0), core.NewVec3(0, 10, 0),
		material.NewMatte(core.NewSpectrum(0.5)))
	s.AddShapes(boundary, wall)
	mustPreprocess(t, s)
	sampler := core.NewSeededSampler(1)

	t.Run("through fog to wall", func(t *testing.T) {
		ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
		var si material.SurfaceInteraction
		hit, tr := s.IntersectTr(&ray, sampler, &si)
		if !hit || si.Material == nil {
			t.Fatal("expected to reach the wall")
		}
		if math.Abs(si.Point.Z+6) > 1e-6 {
			t.Errorf("hit at %v, want the wall at z=-6", si.Point)
		}
		if want := math.Exp(-sigmaT * 2); math.Abs(tr.X-want) > 1e-4 {
			t.Errorf("Tr = %f, want %f for 2 units of fog", tr.X, want)
		}
	})

	t.Run("miss outside fog", func(t *testing.T) {
		ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))
		var si material.SurfaceInteraction
		hit, tr := s.IntersectTr(&ray, sampler, &si)
		if hit || tr != core.NewSpectrum(1) {
			t.Errorf("hit = %v, Tr = %v; want a miss with Tr 1", hit, tr)
		}
	})
}

func TestScene_PreprocessLights(t *testing.T) {
	s := New(testCamera())
	s.AddShapes(geometry.NewSphere(core.Vec3{}, 2, material.NewMatte(core.NewSpectrum(0.5))))
	s.AddPointLight(core.NewVec3(0, 5, 0), core.NewSpectrum(1))
	s.AddUniformInfiniteLight(core.NewSpectrum(1))
	light := s.AddSphereLight(core.NewVec3(5, 0, 0), 1, core.NewSpectrum(4))
	mustPreprocess(t, s)

	if len(s.Lights) != 3 || len(s.InfiniteLights) != 1 {
		t.Fatalf("lights = %d, infinite = %d; want 3 and 1", len(s.Lights), len(s.InfiniteLights))
	}
	infinite := s.InfiniteLights[0].(*lights.UniformInfiniteLight)
	_, radius := s.Bounds().BoundingSphere()
	if want := math.Pi * radius * radius; math.Abs(infinite.Power().X-want) > 1e-9 {
		t.Errorf("infinite light power = %f, want π·R² = %f", infinite.Power().X, want)
	}

	// the emitter shape is part of the scene and reports its emission
	ray := core.NewRay(core.NewVec3(10, 0, 0), core.NewVec3(-1, 0, 0))
	var si material.SurfaceInteraction
	if !s.Intersect(&ray, &si) {
		t.Fatal("expected to hit the sphere light")
	}
	if si.AreaLight != light || si.Le(si.Wo) != core.NewSpectrum(4) {
		t.Errorf("hit on emitter: area light %v, Le %v", si.AreaLight, si.Le(si.Wo))
	}
}

func TestNewGroundQuad_FacesUp(t *testing.T) {
	q := NewGroundQuad(core.NewVec3(1, 0, 2), 10, nil)
	if q.Normal.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-12 {
		t.Errorf("ground normal = %v, want +Y", q.Normal)
	}
	box, _ := q.BoundingBox()
	if !box.Inside(core.NewVec3(1, 0, 2)) {
		t.Errorf("ground %v not centered on (1,0,2)", box)
	}
}

func TestRegistry(t *testing.T) {
	infos := List()
	if len(infos) == 0 {
		t.Fatal("no built-in scenes")
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].ID >= infos[i].ID {
			t.Errorf("List not sorted: %q before %q", infos[i-1].ID, infos[i].ID)
		}
	}

	for _, info := range infos {
		t.Run(info.ID, func(t *testing.T) {
			s, got, err := Load(info.ID)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.ID != info.ID {
				t.Errorf("Load returned info for %q", got.ID)
			}
			if s.Camera == nil || len(s.Shapes) == 0 || len(s.Lights) == 0 {
				t.Fatalf("scene incomplete: camera %v, %d shapes, %d lights", s.Camera, len(s.Shapes), len(s.Lights))
			}
			mustPreprocess(t, s)
		})
	}

	if _, _, err := Load("no-such-scene"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Load error = %v, want ErrUnknownScene", err)
	}
}

func TestCornell_LightFacesDown(t *testing.T) {
	s := NewCornellScene()
	light := s.Lights[0].(*lights.DiffuseAreaLight)
	quad := light.Shape.(*geometry.Quad)
	if quad.Normal.Y >= 0 {
		t.Errorf("ceiling light normal = %v, want it to face the floor", quad.Normal)
	}
}

func TestNextWeek_Features(t *testing.T) {
	s, err := NewNextWeekScene(7)
	if err != nil {
		t.Fatalf("NewNextWeekScene: %v", err)
	}
	mustPreprocess(t, s)

	var moving, instanced int
	for _, p := range s.Shapes {
		switch p.(type) {
		case *geometry.MovingSphere:
			moving++
		case *geometry.Translate:
			instanced++
		}
	}
	if moving != 1 || instanced != 1 {
		t.Errorf("found %d moving spheres and %d instances, want 1 of each", moving, instanced)
	}

	// The shutter spans [0, 1]
	if ray := s.Camera.GetRay(0.5, 0.5, core.Vec2{}, 1); ray.Time != 1 {
		t.Errorf("ray time at the end of the shutter = %f, want 1", ray.Time)
	}

	// Looking straight at the marble sphere finds its noise texture
	origin := s.Camera.Config().Center
	ray := core.NewRay(origin, core.NewVec3(220, 280, 300).Subtract(origin).Normalize())
	var si material.SurfaceInteraction
	if !s.Intersect(&ray, &si) {
		t.Fatal("expected to hit the marble sphere")
	}
	matte, ok := si.Material.(*material.Matte)
	if !ok {
		t.Fatalf("hit material %T, want *material.Matte", si.Material)
	}
	if _, ok := matte.Kd.(*material.NoiseTexture); !ok {
		t.Errorf("marble sphere texture %T, want *material.NoiseTexture", matte.Kd)
	}

	// A ray through the start position of the moving sphere only hits it early in the shutter
	start := core.NewVec3(370, 400, 200)
	for _, tt := range []struct {
		time float64
		want bool
	}{{0, true}, {1, false}} {
		ray := core.NewRay(core.NewVec3(start.X, start.Y, -100), core.NewVec3(0, 0, 1))
		ray.Time = tt.time
		ray.TMax = 300
		var si material.SurfaceInteraction
		hit := s.Intersect(&ray, &si) && si.Material != nil && math.Abs(si.Point.Z-(200-math.Sqrt(50*50-30*30))) < 1e-6
		if hit != tt.want {
			t.Errorf("time %f: hit moving sphere = %v, want %v", tt.time, hit, tt.want)
		}
	}
}
