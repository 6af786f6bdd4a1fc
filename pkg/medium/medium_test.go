package medium

import (
	"math"
	"testing"

	"github.com/df07/go-volpath/pkg/core"
)

func TestHenyeyGreenstein_Normalized(t *testing.T) {
	sampler := core.NewSeededSampler(3)
	wo := core.NewVec3(0, 0, 1)
	for _, g := range []float64{-0.5, 0, 0.3, 0.7} {
		hg := NewHenyeyGreenstein(g)
		const n = 200000
		sum := 0.0
		for i := 0; i < n; i++ {
			wi := core.UniformSampleSphere(sampler.Get2D())
			sum += hg.P(wo, wi) / core.UniformSpherePdf()
		}
		if integral := sum / n; math.Abs(integral-1) > 0.02 {
			t.Errorf("g=%.1f: ∫p = %f, want 1", g, integral)
		}
	}
}

func TestHenyeyGreenstein_Sample(t *testing.T) {
	sampler := core.NewSeededSampler(11)
	wo := core.NewVec3(1, 2, -0.5).Normalize()
	for _, g := range []float64{-0.6, 0, 0.8} {
		hg := NewHenyeyGreenstein(g)
		const n = 100000
		meanCos := 0.0
		for i := 0; i < n; i++ {
			wi, pdf := hg.SampleP(wo, sampler.Get2D())
			if math.Abs(wi.Length()-1) > 1e-9 {
				t.Fatalf("g=%.1f: wi not normalized: %v", g, wi)
			}
			if p := hg.P(wo, wi); math.Abs(p-pdf) > 1e-6*math.Max(1, p) {
				t.Fatalf("g=%.1f: sampled pdf %f, P = %f", g, pdf, p)
			}
			meanCos += wo.Dot(wi)
		}
		// wo points back along the ray, so forward scattering gives wo·wi → -1
		if got := meanCos / n; math.Abs(got+g) > 0.01 {
			t.Errorf("g=%.1f: mean wo·wi = %f, want %f", g, got, -g)
		}
	}
}

func TestHomogeneous_TrClosedForm(t *testing.T) {
	sigmaA := core.NewVec3(0.2, 0.5, 1)
	sigmaS := core.NewVec3(0.3, 0.5, 1)
	m := NewHomogeneous(sigmaA, sigmaS, 0)
	sampler := core.NewSeededSampler(1)

	// unnormalized direction: the segment is 1.5 * 2 = 3 units long
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 2))
	ray.TMax = 1.5
	tr := m.Tr(ray, sampler)
	want := core.NewVec3(math.Exp(-0.5*3), math.Exp(-1*3), math.Exp(-2*3))
	if tr != want {
		t.Errorf("Tr = %v, want %v exactly", tr, want)
	}

	// repeated queries are deterministic
	if again := m.Tr(ray, sampler); again != tr {
		t.Errorf("Tr changed between calls: %v then %v", tr, again)
	}

	ray.TMax = core.Infinity
	if got := m.Tr(ray, sampler); !got.IsBlack() {
		t.Errorf("Tr over an infinite segment = %v, want 0", got)
	}
}

func TestHomogeneous_SampleUnbiased(t *testing.T) {
	m := NewHomogeneous(core.NewVec3(0.1, 0.3, 0.6), core.NewVec3(0.4, 0.2, 0.4), 0.5)
	sampler := core.NewSeededSampler(5)
	ray := core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0))
	ray.TMax = 2
	want := m.Tr(ray, sampler)

	// The pass-through weights average to the transmittance
	const n = 400000
	var sum core.Vec3
	for i := 0; i < n; i++ {
		var mi core.MediumInteraction
		w := m.Sample(ray, sampler, &mi)
		if mi.IsValid() {
			if mi.Point.X <= 0 || mi.Point.X >= 2 {
				t.Fatalf("scattering point %v outside the segment", mi.Point)
			}
			if mi.Medium != core.Medium(m) {
				t.Fatal("interaction does not reference its medium")
			}
			continue
		}
		sum = sum.Add(w)
	}
	got := sum.Multiply(1.0 / n)
	for axis := 0; axis < 3; axis++ {
		if diff := math.Abs(got.Get(axis) - want.Get(axis)); diff > 0.01 {
			t.Errorf("channel %d: E[weight] = %f, want Tr = %f", axis, got.Get(axis), want.Get(axis))
		}
	}
}

func TestHomogeneous_SampleEdgeCases(t *testing.T) {
	sampler := core.NewSeededSampler(9)

	t.Run("vacuum never scatters", func(t *testing.T) {
		m := NewHomogeneous(core.Vec3{}, core.Vec3{}, 0)
		ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))
		for i := 0; i < 100; i++ {
			var mi core.MediumInteraction
			w := m.Sample(ray, sampler, &mi)
			if mi.IsValid() || w != core.NewSpectrum(1) {
				t.Fatalf("weight %v, scattered %v", w, mi.IsValid())
			}
		}
	})

	t.Run("unbounded ray always scatters", func(t *testing.T) {
		m := NewHomogeneous(core.NewSpectrum(0.1), core.NewSpectrum(0.1), 0)
		ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))
		for i := 0; i < 100; i++ {
			var mi core.MediumInteraction
			w := m.Sample(ray, sampler, &mi)
			if !mi.IsValid() {
				t.Fatal("expected a scattering event")
			}
			if w.HasNaN() {
				t.Fatalf("weight %v", w)
			}
		}
	})
}

func newUniformGrid(t *testing.T, n int, value float64) *GridDensity {
	t.Helper()
	density := make([]float64, n*n*n)
	for i := range density {
		density[i] = value
	}
	bounds := core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))
	m, err := NewGridDensity(core.NewSpectrum(0.4), core.NewSpectrum(0.6), 0, n, n, n, bounds, density)
	if err != nil {
		t.Fatalf("NewGridDensity: %v", err)
	}
	return m
}

func TestGridDensity_Errors(t *testing.T) {
	bounds := core.NewAABB(core.Vec3{}, core.NewVec3(1, 1, 1))
	tests := []struct {
		name    string
		nx      int
		density []float64
	}{
		{"zero resolution", 0, nil},
		{"wrong length", 2, []float64{1, 2, 3}},
		{"negative density", 1, []float64{-1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGridDensity(core.NewSpectrum(1), core.NewSpectrum(1), 0, tt.nx, tt.nx, tt.nx, bounds, tt.density); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestGridDensity_Trilinear(t *testing.T) {
	// 2x1x1 grid: voxel centers at x=0.25 and x=0.75
	bounds := core.NewAABB(core.Vec3{}, core.NewVec3(1, 1, 1))
	m, err := NewGridDensity(core.NewSpectrum(1), core.Vec3{}, 0, 2, 1, 1, bounds, []float64{1, 3})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		x    float64
		want float64
	}{
		{0.25, 1},
		{0.5, 2},
		{0.75, 3},
	}
	for _, tt := range tests {
		if got := m.Density(core.NewVec3(tt.x, 0.5, 0.5)); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Density(x=%.2f) = %f, want %f", tt.x, got, tt.want)
		}
	}
}

func TestGridDensity_TrMatchesOpticalDepth(t *testing.T) {
	m := newUniformGrid(t, 8, 1)
	sampler := core.NewSeededSampler(21)

	// Along the central x axis the density is 1 except for half-voxel ramps
	// from 0.5 at each face, so ∫density over the unit width is 31/32.
	ray := core.NewRay(core.NewVec3(-3, 0, 0), core.NewVec3(1, 0, 0))
	want := math.Exp(-1 * 2 * 31.0 / 32.0)

	const n = 40000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += m.Tr(ray, sampler).X
	}
	if got := sum / n; math.Abs(got-want) > 0.01 {
		t.Errorf("E[Tr] = %f, want %f", got, want)
	}

	miss := core.NewRay(core.NewVec3(-3, 5, 0), core.NewVec3(1, 0, 0))
	if tr := m.Tr(miss, sampler); tr != core.NewSpectrum(1) {
		t.Errorf("Tr of a ray missing the grid = %v, want 1", tr)
	}
}

func TestGridDensity_Sample(t *testing.T) {
	m := newUniformGrid(t, 4, 1)
	sampler := core.NewSeededSampler(8)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))

	for i := 0; i < 200; i++ {
		var mi core.MediumInteraction
		w := m.Sample(ray, sampler, &mi)
		if !mi.IsValid() {
			if w != core.NewSpectrum(1) {
				t.Fatalf("pass-through weight = %v, want 1", w)
			}
			continue
		}
		if !m.Bounds.Inside(mi.Point) {
			t.Fatalf("scattering point %v outside the grid bounds", mi.Point)
		}
		if math.Abs(w.X-0.6) > 1e-12 {
			t.Fatalf("scattering weight = %v, want albedo 0.6", w)
		}
	}

	short := ray
	short.TMax = 3
	var mi core.MediumInteraction
	if w := m.Sample(short, sampler, &mi); mi.IsValid() || w != core.NewSpectrum(1) {
		t.Errorf("segment ending before the grid scattered: %v", w)
	}
}
