package material

import (
	"testing"

	"github.com/df07/go-volpath/pkg/core"
)

func TestMaterials_LobeComposition(t *testing.T) {
	tests := []struct {
		name     string
		material Material
		expected []BxDFType
	}{
		{"matte", NewMatte(core.NewSpectrum(0.5)), []BxDFType{BSDFReflection | BSDFDiffuse}},
		{"black matte has no lobes", NewMatte(core.Vec3{}), nil},
		{"plastic", NewPlastic(core.NewSpectrum(0.5), core.NewSpectrum(0.3), 0.1),
			[]BxDFType{BSDFReflection | BSDFDiffuse, BSDFReflection | BSDFGlossy}},
		{"metal", NewMetal(GoldEta, GoldK, 0.2), []BxDFType{BSDFReflection | BSDFGlossy}},
		{"smooth glass", NewGlass(1.5), []BxDFType{BSDFReflection | BSDFTransmission | BSDFSpecular}},
		{"rough glass", NewRoughGlass(1.5, 0.3),
			[]BxDFType{BSDFReflection | BSDFGlossy, BSDFTransmission | BSDFGlossy}},
		{"smooth reflect-only glass", &Glass{Kr: core.NewSpectrum(1), Eta: 1.5},
			[]BxDFType{BSDFReflection | BSDFSpecular}},
		{"smooth transmit-only glass", &Glass{Kt: core.NewSpectrum(1), Eta: 1.5},
			[]BxDFType{BSDFTransmission | BSDFSpecular}},
		{"mirror", NewMirror(core.NewSpectrum(0.9)), []BxDFType{BSDFReflection | BSDFSpecular}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			si := newTestInteraction()
			si.Material = tt.material
			if !si.ComputeScatteringFunctions(Radiance) {
				t.Fatal("Expected scattering functions for a material surface")
			}
			if si.BSDF.n != len(tt.expected) {
				t.Fatalf("Expected %d lobes, got %d", len(tt.expected), si.BSDF.n)
			}
			for i, want := range tt.expected {
				if got := si.BSDF.bxdfs[i].Type(); got != want {
					t.Errorf("Lobe %d: expected type %b, got %b", i, want, got)
				}
			}
		})
	}
}

func TestMaterials_RebuildClearsPreviousLobes(t *testing.T) {
	si := newTestInteraction()
	si.Material = NewPlastic(core.NewSpectrum(0.5), core.NewSpectrum(0.3), 0.1)
	si.ComputeScatteringFunctions(Radiance)
	si.Material = NewMatte(core.NewSpectrum(0.5))
	si.ComputeScatteringFunctions(Radiance)
	if si.BSDF.n != 1 {
		t.Errorf("Expected 1 lobe after rebuilding, got %d", si.BSDF.n)
	}
}

func TestSurfaceInteraction_NoMaterialIsPassThrough(t *testing.T) {
	si := newTestInteraction()
	if si.ComputeScatteringFunctions(Radiance) {
		t.Error("Expected false for a material-less surface")
	}
	if !si.Le(core.NewVec3(0, 0, 1)).IsBlack() {
		t.Error("Expected no emission without an area light")
	}
}

func TestGlass_EtaRecordedOnBSDF(t *testing.T) {
	si := newTestInteraction()
	si.Material = NewGlass(1.33)
	si.ComputeScatteringFunctions(Radiance)
	if si.BSDF.Eta != 1.33 {
		t.Errorf("Expected eta 1.33, got %f", si.BSDF.Eta)
	}
}

func TestCheckerTexture(t *testing.T) {
	even := core.NewVec3(1, 1, 1)
	odd := core.NewVec3(0, 0, 0)
	tex := NewCheckerTexture(even, odd, 1)

	if got := tex.Evaluate(core.Vec2{}, core.NewVec3(0.5, 0.5, 0.5)); got != even {
		t.Errorf("Expected even color, got %v", got)
	}
	if got := tex.Evaluate(core.Vec2{}, core.NewVec3(-0.5, 0.5, 0.5)); got != odd {
		t.Errorf("Expected odd color, got %v", got)
	}
}

func TestMaterials_ScatteringFunctionsDoNotAllocate(t *testing.T) {
	materials := map[string]Material{
		"matte":       NewMatte(core.NewSpectrum(0.5)),
		"plastic":     NewPlastic(core.NewSpectrum(0.5), core.NewSpectrum(0.3), 0.1),
		"metal":       NewMetal(CopperEta, CopperK, 0.2),
		"glass":       NewGlass(1.5),
		"rough glass": NewRoughGlass(1.5, 0.3),
		"mirror":      NewMirror(core.NewSpectrum(0.9)),
	}
	for name, m := range materials {
		t.Run(name, func(t *testing.T) {
			si := newTestInteraction()
			wo := core.NewVec3(0.3, 0, 1).Normalize()
			u := core.NewVec2(0.4, 0.6)
			allocs := testing.AllocsPerRun(100, func() {
				m.ComputeScatteringFunctions(si, Radiance)
				si.BSDF.SampleF(wo, u, BSDFAll)
			})
			if allocs != 0 {
				t.Errorf("Expected no allocations per bounce, got %.1f", allocs)
			}
		})
	}
}
