package medium

import (
	"math"

	"github.com/df07/go-volpath/pkg/core"
)

// Homogeneous is a medium with constant absorption and scattering coefficients
type Homogeneous struct {
	SigmaA core.Vec3
	SigmaS core.Vec3
	SigmaT core.Vec3
	phase  *HenyeyGreenstein
}

// NewHomogeneous creates a homogeneous medium with asymmetry g
func NewHomogeneous(sigmaA, sigmaS core.Vec3, g float64) *Homogeneous {
	return &Homogeneous{
		SigmaA: sigmaA,
		SigmaS: sigmaS,
		SigmaT: sigmaA.Add(sigmaS),
		phase:  NewHenyeyGreenstein(g),
	}
}

// Phase returns the medium's phase function
func (m *Homogeneous) Phase() core.PhaseFunction {
	return m.phase
}

// segmentLength returns the world-space length of the ray up to t, capped to stay finite
func segmentLength(ray core.Ray, t float64) float64 {
	return math.Min(t*ray.Direction.Length(), math.MaxFloat64)
}

// beer returns exp(-σt·d) per channel. Channels with σt = 0 are fully transmitted.
func beer(sigmaT core.Vec3, d float64) core.Vec3 {
	channel := func(s float64) float64 {
		if s == 0 {
			return 1
		}
		return math.Exp(-s * d)
	}
	return core.NewVec3(channel(sigmaT.X), channel(sigmaT.Y), channel(sigmaT.Z))
}

// Tr returns exp(-σt·length) for the ray segment. No sampling is involved.
func (m *Homogeneous) Tr(ray core.Ray, sampler core.Sampler) core.Vec3 {
	return beer(m.SigmaT, segmentLength(ray, ray.TMax))
}

// Sample picks a channel uniformly and draws an exponential free-flight distance
// with that channel's extinction. The weight divides by the channel-averaged pdf.
func (m *Homogeneous) Sample(ray core.Ray, sampler core.Sampler, mi *core.MediumInteraction) core.Vec3 {
	channel := min(int(sampler.Get1D()*3), 2)
	length := ray.Direction.Length()
	u := sampler.Get1D()
	dist := math.Inf(1)
	if sigma := m.SigmaT.Get(channel); sigma > 0 {
		dist = -math.Log(1-u) / sigma
	}
	t := math.Min(dist/length, ray.TMax)
	sampledMedium := t < ray.TMax

	if sampledMedium {
		*mi = core.MediumInteraction{
			Interaction: core.Interaction{
				Point:  ray.At(t),
				Wo:     ray.Direction.Negate().Normalize(),
				Time:   ray.Time,
				Medium: m,
			},
			Phase: m.phase,
		}
	}

	tr := beer(m.SigmaT, segmentLength(ray, t))
	density := tr
	if sampledMedium {
		density = m.SigmaT.MultiplyVec(tr)
	}
	pdf := density.Average()
	if pdf == 0 {
		pdf = 1
	}

	if sampledMedium {
		return tr.MultiplyVec(m.SigmaS).Divide(pdf)
	}
	return tr.Divide(pdf)
}
