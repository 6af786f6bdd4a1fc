package material

import (
	"math"
	"testing"

	"github.com/df07/go-volpath/pkg/core"
)

func TestFrDielectric(t *testing.T) {
	tests := []struct {
		name      string
		cosThetaI float64
		etaI      float64
		etaT      float64
		expected  float64
		tolerance float64
	}{
		{"normal incidence air to glass", 1, 1, 1.5, 0.04, 1e-9},
		{"normal incidence from inside", -1, 1, 1.5, 0.04, 1e-9},
		{"grazing incidence", 1e-9, 1, 1.5, 1, 1e-6},
		{"matched indices", 0.5, 1.33, 1.33, 0, 1e-12},
		// sinθi = 0.9 inside glass exceeds the critical angle
		{"total internal reflection", -math.Sqrt(1 - 0.81), 1, 1.5, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FrDielectric(tt.cosThetaI, tt.etaI, tt.etaT)
			if math.Abs(got-tt.expected) > tt.tolerance {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestFrConductor_ZeroAbsorptionMatchesDielectric(t *testing.T) {
	for _, cosTheta := range []float64{1, 0.8, 0.5, 0.2} {
		conductor := FrConductor(cosTheta, core.NewSpectrum(1), core.NewSpectrum(1.5), core.Vec3{})
		dielectric := FrDielectric(cosTheta, 1, 1.5)
		if math.Abs(conductor.X-dielectric) > 1e-6 {
			t.Errorf("cosθ=%f: conductor %f vs dielectric %f", cosTheta, conductor.X, dielectric)
		}
	}
}

func TestFresnelConductor_GoldIsReflective(t *testing.T) {
	f := FresnelConductor{EtaI: core.NewSpectrum(1), EtaT: GoldEta, K: GoldK}.Evaluate(1)
	if f.X < 0.8 || f.X > 1 {
		t.Errorf("Expected high red reflectance for gold, got %v", f)
	}
	if f.Z >= f.X {
		t.Errorf("Expected gold to reflect more red than blue, got %v", f)
	}
}

func TestFresnelNoOp(t *testing.T) {
	if f := (FresnelNoOp{}).Evaluate(0.3); f != core.NewSpectrum(1) {
		t.Errorf("Expected 1, got %v", f)
	}
}
