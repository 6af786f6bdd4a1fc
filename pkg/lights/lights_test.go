package lights

import (
	"math"
	"testing"

	"github.com/df07/go-volpath/pkg/core"
	"github.com/df07/go-volpath/pkg/geometry"
	"github.com/df07/go-volpath/pkg/material"
)

// primitiveList is a brute-force Intersector over a few primitives
type primitiveList []geometry.Primitive

func (l primitiveList) Intersect(ray *core.Ray, si *material.SurfaceInteraction) bool {
	hit := false
	for _, p := range l {
		if p.Hit(ray, si) {
			hit = true
		}
	}
	return hit
}

// constantMedium attenuates every segment by the same factor
type constantMedium struct {
	tr core.Vec3
}

func (m constantMedium) Tr(ray core.Ray, sampler core.Sampler) core.Vec3 {
	return m.tr
}

func (m constantMedium) Sample(ray core.Ray, sampler core.Sampler, mi *core.MediumInteraction) core.Vec3 {
	return core.NewSpectrum(1)
}

func pointInteraction(p core.Vec3) *core.Interaction {
	return &core.Interaction{Point: p}
}

func TestLightFlags_IsDelta(t *testing.T) {
	tests := []struct {
		flags LightFlags
		delta bool
	}{
		{DeltaPosition, true},
		{DeltaDirection, true},
		{Area, false},
		{Infinite, false},
	}
	for _, tt := range tests {
		if got := tt.flags.IsDelta(); got != tt.delta {
			t.Errorf("flags %d: IsDelta = %v, want %v", tt.flags, got, tt.delta)
		}
	}
}

func TestPointLight_InverseSquare(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 4, 0), core.NewSpectrum(8))
	ref := pointInteraction(core.NewVec3(0, 2, 0))

	ls := light.SampleLi(ref, core.NewVec2(0.3, 0.7))
	if ls.Pdf != 1 {
		t.Errorf("Pdf = %f, want 1", ls.Pdf)
	}
	if math.Abs(ls.Li.X-2) > 1e-12 {
		t.Errorf("Li = %v, want 2 (8/2²)", ls.Li)
	}
	if ls.Wi != core.NewVec3(0, 1, 0) {
		t.Errorf("Wi = %v, want +y", ls.Wi)
	}
	if light.PdfLi(ref, ls.Wi) != 0 {
		t.Error("point light must not be reachable by BSDF sampling")
	}
	if math.Abs(light.Power().X-32*math.Pi) > 1e-9 {
		t.Errorf("Power = %v, want 4π·8", light.Power())
	}
}

func TestDiffuseAreaLight_SphereSample(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, nil)
	light := NewDiffuseAreaLight(core.NewSpectrum(5), sphere, false)

	if sphere.AreaLight != light {
		t.Fatal("light was not attached to its shape")
	}

	ref := pointInteraction(core.NewVec3(0, 0, 4))
	d := 4.0
	cosMax := math.Sqrt(1 - 1/(d*d))
	wantPdf := 1 / (2 * math.Pi * (1 - cosMax))

	sampler := core.NewSeededSampler(7)
	for i := 0; i < 100; i++ {
		ls := light.SampleLi(ref, sampler.Get2D())
		if math.Abs(ls.Pdf-wantPdf) > 1e-9 {
			t.Fatalf("Pdf = %f, want %f", ls.Pdf, wantPdf)
		}
		if ls.Li != core.NewSpectrum(5) {
			t.Fatalf("Li = %v, want emission from the facing side", ls.Li)
		}
		if r := ls.Vis.P1.Length(); math.Abs(r-1) > 1e-6 {
			t.Fatalf("light point %v not on the sphere", ls.Vis.P1)
		}
		if ls.Vis.P1.Z <= 0 {
			t.Fatalf("light point %v on the far side of the sphere", ls.Vis.P1)
		}
		if pdf := light.PdfLi(ref, ls.Wi); math.Abs(pdf-ls.Pdf) > 1e-9 {
			t.Fatalf("PdfLi = %f, SampleLi pdf = %f", pdf, ls.Pdf)
		}
	}
}

func TestDiffuseAreaLight_Sidedness(t *testing.T) {
	// Quad in the z=0 plane with outward normal +z
	makeQuad := func() *geometry.Quad {
		return geometry.NewQuad(core.NewVec3(-1, -1, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), nil)
	}

	tests := []struct {
		name     string
		twoSided bool
		refZ     float64
		emits    bool
	}{
		{"one-sided front", false, 3, true},
		{"one-sided back", false, -3, false},
		{"two-sided back", true, -3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			light := NewDiffuseAreaLight(core.NewSpectrum(1), makeQuad(), tt.twoSided)
			ls := light.SampleLi(pointInteraction(core.NewVec3(0, 0, tt.refZ)), core.NewVec2(0.4, 0.6))
			if ls.Pdf <= 0 {
				t.Fatalf("Pdf = %f, want > 0", ls.Pdf)
			}
			if got := !ls.Li.IsBlack(); got != tt.emits {
				t.Errorf("emits = %v, want %v", got, tt.emits)
			}
		})
	}
}

func TestDiffuseAreaLight_Power(t *testing.T) {
	quad := geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 3, 0), nil)
	oneSided := NewDiffuseAreaLight(core.NewSpectrum(2), quad, false)
	if got, want := oneSided.Power().X, 2*6*math.Pi; math.Abs(got-want) > 1e-9 {
		t.Errorf("one-sided power = %f, want %f", got, want)
	}
	twoSided := NewDiffuseAreaLight(core.NewSpectrum(2), quad, true)
	if got, want := twoSided.Power().X, 2*2*6*math.Pi; math.Abs(got-want) > 1e-9 {
		t.Errorf("two-sided power = %f, want %f", got, want)
	}
}

func TestVisibilityTester_Unoccluded(t *testing.T) {
	blocker := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewMatte(core.NewSpectrum(0.5)))
	scene := primitiveList{blocker}

	tests := []struct {
		name string
		p0   core.Vec3
		p1   core.Vec3
		want bool
	}{
		{"through blocker", core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 5), false},
		{"beside blocker", core.NewVec3(3, 0, -5), core.NewVec3(3, 0, 5), true},
		{"stops short", core.NewVec3(0, 0, -5), core.NewVec3(0, 0, -2), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vis := VisibilityTester{P0: *pointInteraction(tt.p0), P1: tt.p1}
			if got := vis.Unoccluded(scene); got != tt.want {
				t.Errorf("Unoccluded = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVisibilityTester_NearBlockerDistantTarget(t *testing.T) {
	// A long shadow ray must still see a blocker just above its origin
	surface := core.Interaction{Point: core.Vec3{}, Normal: core.NewVec3(0, 1, 0), FrontFace: true}
	blocker := geometry.NewSphere(core.NewVec3(0, 0.01, 0), 0.005, material.NewMatte(core.NewSpectrum(0.5)))

	vis := VisibilityTester{P0: surface, P1: core.NewVec3(0, 1e4, 0)}
	if vis.Unoccluded(primitiveList{blocker}) {
		t.Error("Expected the blocker near the origin to occlude a distant target")
	}
	if tr := vis.Tr(primitiveList{blocker}, core.NewSeededSampler(1)); !tr.IsBlack() {
		t.Errorf("Tr = %v, want black", tr)
	}
}

func TestVisibilityTester_TrThroughMediumBoundary(t *testing.T) {
	fog := constantMedium{tr: core.NewSpectrum(0.5)}
	boundary := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, nil)
	boundary.MediumInterface = core.NewMediumInterface(fog, nil)
	sampler := core.NewSeededSampler(1)

	vis := VisibilityTester{P0: *pointInteraction(core.NewVec3(0, 0, -5)), P1: core.NewVec3(0, 0, 5)}
	tr := vis.Tr(primitiveList{boundary}, sampler)
	if math.Abs(tr.X-0.5) > 1e-12 {
		t.Errorf("Tr = %v, want 0.5 from the single crossing of the fog", tr)
	}

	wall := geometry.NewQuad(core.NewVec3(-2, -2, 3), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0),
		material.NewMatte(core.NewSpectrum(0.5)))
	tr = vis.Tr(primitiveList{boundary, wall}, sampler)
	if !tr.IsBlack() {
		t.Errorf("Tr = %v, want black behind an opaque surface", tr)
	}
}

func TestUniformInfiniteLight(t *testing.T) {
	light := NewUniformInfiniteLight(core.NewSpectrum(0.7))
	light.Preprocess(core.NewVec3(0, 0, 0), 10)

	ref := pointInteraction(core.NewVec3(1, 2, 3))
	ls := light.SampleLi(ref, core.NewVec2(0.25, 0.8))
	if math.Abs(ls.Pdf-1/(4*math.Pi)) > 1e-12 {
		t.Errorf("Pdf = %f, want 1/4π", ls.Pdf)
	}
	if math.Abs(ls.Wi.Length()-1) > 1e-9 {
		t.Errorf("Wi not normalized: %v", ls.Wi)
	}
	if ls.Vis.P1.Subtract(core.NewVec3(0, 0, 0)).Length() <= 10 {
		t.Errorf("visibility endpoint %v inside the scene bounds", ls.Vis.P1)
	}
	if got := light.Le(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))); got != core.NewSpectrum(0.7) {
		t.Errorf("Le = %v, want 0.7", got)
	}
}

func TestWeightedLightSampler(t *testing.T) {
	dim := NewPointLight(core.Vec3{}, core.NewSpectrum(1))
	bright := NewPointLight(core.Vec3{}, core.NewSpectrum(3))
	all := []Light{dim, bright}

	t.Run("uniform", func(t *testing.T) {
		s := NewUniformLightSampler(all)
		if s.Probability(0) != 0.5 || s.Probability(1) != 0.5 {
			t.Errorf("probabilities = %f, %f; want 0.5 each", s.Probability(0), s.Probability(1))
		}
		if _, _, i := s.SampleLight(0.49); i != 0 {
			t.Errorf("u=0.49 picked %d, want 0", i)
		}
		if _, _, i := s.SampleLight(0.51); i != 1 {
			t.Errorf("u=0.51 picked %d, want 1", i)
		}
	})

	t.Run("power", func(t *testing.T) {
		s := NewPowerLightSampler(all)
		if math.Abs(s.Probability(1)-0.75) > 1e-12 {
			t.Errorf("bright probability = %f, want 0.75", s.Probability(1))
		}
		light, prob, _ := s.SampleLight(0.9)
		if light != Light(bright) || math.Abs(prob-0.75) > 1e-12 {
			t.Errorf("u=0.9 picked %v with probability %f", light, prob)
		}
	})

	t.Run("empty", func(t *testing.T) {
		s := NewUniformLightSampler(nil)
		if light, _, i := s.SampleLight(0.3); light != nil || i != -1 {
			t.Errorf("empty sampler returned light %v at %d", light, i)
		}
	})

	t.Run("mismatched weights panic", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		NewWeightedLightSampler(all, []float64{1})
	})
}
