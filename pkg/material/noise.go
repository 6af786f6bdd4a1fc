package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-volpath/pkg/core"
)

const perlinPoints = 256

// Perlin is a lattice gradient noise generator. A given seed always produces
// the same noise field.
type Perlin struct {
	gradients           [perlinPoints]core.Vec3
	permX, permY, permZ [perlinPoints]int
}

// NewPerlin builds the gradient table and permutations from random
func NewPerlin(random *rand.Rand) *Perlin {
	p := &Perlin{}
	for i := range p.gradients {
		p.gradients[i] = core.UniformSampleSphere(core.NewVec2(random.Float64(), random.Float64()))
	}
	for _, perm := range []*[perlinPoints]int{&p.permX, &p.permY, &p.permZ} {
		for i := range perm {
			perm[i] = i
		}
		random.Shuffle(perlinPoints, func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
	}
	return p
}

// Noise returns a smooth value in [-1, 1] that is zero at every lattice point
func (p *Perlin) Noise(point core.Vec3) float64 {
	fx, fy, fz := math.Floor(point.X), math.Floor(point.Y), math.Floor(point.Z)
	u, v, w := point.X-fx, point.Y-fy, point.Z-fz
	i, j, k := int(fx), int(fy), int(fz)

	// Hermite smoothing of the interpolation weights
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				g := p.gradients[p.permX[(i+di)&255]^p.permY[(j+dj)&255]^p.permZ[(k+dk)&255]]
				offset := core.NewVec3(u-float64(di), v-float64(dj), w-float64(dk))
				accum += lerpWeight(di, uu) * lerpWeight(dj, vv) * lerpWeight(dk, ww) * g.Dot(offset)
			}
		}
	}
	return accum
}

func lerpWeight(corner int, t float64) float64 {
	if corner == 1 {
		return t
	}
	return 1 - t
}

// Turbulence sums depth octaves of noise, halving the weight and doubling the
// frequency each time, and returns the magnitude
func (p *Perlin) Turbulence(point core.Vec3, depth int) float64 {
	accum := 0.0
	weight := 1.0
	for i := 0; i < depth; i++ {
		accum += weight * p.Noise(point)
		weight *= 0.5
		point = point.Multiply(2)
	}
	return math.Abs(accum)
}

// NoiseTexture is a marble-like solid texture: sine bands along Z perturbed by turbulence
type NoiseTexture struct {
	Noise *Perlin
	Scale float64   // band frequency
	Color core.Vec3 // color of the brightest bands
}

// NewNoiseTexture creates a white marble texture with the given band frequency
func NewNoiseTexture(scale float64, seed int64) *NoiseTexture {
	return &NoiseTexture{
		Noise: NewPerlin(rand.New(rand.NewSource(seed))),
		Scale: scale,
		Color: core.NewSpectrum(1),
	}
}

// Evaluate returns Color scaled into [0, 1] by the banded turbulence at point
func (n *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return n.Color.Multiply(0.5 * (1 + math.Sin(n.Scale*point.Z+10*n.Noise.Turbulence(point, 7))))
}
