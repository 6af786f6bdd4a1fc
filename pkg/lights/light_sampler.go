package lights

import (
	"fmt"
)

// LightSampler picks one light per shading point
type LightSampler interface {
	// SampleLight returns the chosen light, its selection probability and its index
	SampleLight(u float64) (Light, float64, int)

	// Probability returns the selection probability of the light at index
	Probability(index int) float64
}

// WeightedLightSampler selects lights with fixed weights.
// Weights match the order of the lights slice.
type WeightedLightSampler struct {
	lights  []Light
	weights []float64
}

// NewWeightedLightSampler creates a light sampler with the given weights,
// normalized to sum to 1. All-zero weights fall back to a uniform choice.
func NewWeightedLightSampler(lights []Light, weights []float64) *WeightedLightSampler {
	if len(lights) != len(weights) {
		panic(fmt.Sprintf("lights length (%d) must match weights length (%d)", len(lights), len(weights)))
	}

	total := 0.0
	for _, w := range weights {
		if w < 0 {
			panic("weights must be non-negative")
		}
		total += w
	}

	normalized := make([]float64, len(weights))
	for i, w := range weights {
		if total == 0 {
			normalized[i] = 1.0 / float64(len(weights))
		} else {
			normalized[i] = w / total
		}
	}

	return &WeightedLightSampler{lights: lights, weights: normalized}
}

// NewUniformLightSampler gives every light the same probability
func NewUniformLightSampler(lights []Light) *WeightedLightSampler {
	return NewWeightedLightSampler(lights, make([]float64, len(lights)))
}

// NewPowerLightSampler weights lights by the luminance of their emitted power
func NewPowerLightSampler(lights []Light) *WeightedLightSampler {
	weights := make([]float64, len(lights))
	for i, light := range lights {
		weights[i] = max(0, light.Power().Luminance())
	}
	return NewWeightedLightSampler(lights, weights)
}

// SampleLight walks the cumulative distribution
func (s *WeightedLightSampler) SampleLight(u float64) (Light, float64, int) {
	if len(s.lights) == 0 {
		return nil, 0, -1
	}

	cumulative := 0.0
	for i, w := range s.weights {
		cumulative += w
		if u < cumulative && w > 0 {
			return s.lights[i], w, i
		}
	}

	// rounding can leave u past the last bucket
	for i := len(s.weights) - 1; i >= 0; i-- {
		if s.weights[i] > 0 {
			return s.lights[i], s.weights[i], i
		}
	}
	return nil, 0, -1
}

func (s *WeightedLightSampler) Probability(index int) float64 {
	if index < 0 || index >= len(s.weights) {
		return 0
	}
	return s.weights[index]
}
