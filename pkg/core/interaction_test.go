package core

import (
	"math"
	"testing"
)

type tagMedium struct{ name string }

func (m *tagMedium) Tr(ray Ray, sampler Sampler) Vec3 { return NewSpectrum(1) }
func (m *tagMedium) Sample(ray Ray, sampler Sampler, mi *MediumInteraction) Vec3 {
	return NewSpectrum(1)
}

func TestInteraction_GetMedium(t *testing.T) {
	inside := &tagMedium{"inside"}
	outside := &tagMedium{"outside"}

	tests := []struct {
		name      string
		frontFace bool
		dir       Vec3
		expected  Medium
	}{
		// Normal faces the incoming ray, so on a front face it equals the outward normal
		{"front face leaving outward", true, NewVec3(0, 0, 1), outside},
		{"front face entering", true, NewVec3(0, 0, -1), inside},
		{"back face exiting", false, NewVec3(0, 0, -1), outside},
		{"back face reflecting inward", false, NewVec3(0, 0, 1), inside},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := Interaction{
				Point:           NewVec3(0, 0, 0),
				Normal:          NewVec3(0, 0, 1),
				FrontFace:       tt.frontFace,
				MediumInterface: NewMediumInterface(inside, outside),
			}
			if got := it.GetMedium(tt.dir); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestInteraction_SpawnRayTo(t *testing.T) {
	m := &tagMedium{"fog"}
	it := Interaction{
		Point:     NewVec3(0, 0, 0),
		Normal:    NewVec3(0, 1, 0),
		FrontFace: true,
		Medium:    m,
	}

	target := NewVec3(0, 4, 0)
	ray := it.SpawnRayTo(target)
	if ray.Medium != m {
		t.Error("Expected ray to inherit the interaction medium")
	}
	if ray.Origin.Y <= 0 {
		t.Errorf("Expected origin offset above the surface, got %v", ray.Origin)
	}
	end := ray.At(ray.TMax)
	if end.Y >= target.Y || target.Y-end.Y > 1e-3 {
		t.Errorf("Ray should stop just short of target, ends at %v", end)
	}
	if math.Abs(ray.Direction.Length()-1) > 1e-12 {
		t.Errorf("Expected a unit direction, got length %f", ray.Direction.Length())
	}

	far := it.SpawnRayTo(NewVec3(0, 1e4, 0))
	if math.Abs(far.Direction.Length()-1) > 1e-12 || math.Abs(far.TMax-1e4) > 2 {
		t.Errorf("Expected TMax close to the distance 1e4 along a unit direction, got %f", far.TMax)
	}
}
