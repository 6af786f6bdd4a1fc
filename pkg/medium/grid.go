package medium

import (
	"fmt"
	"math"

	"github.com/df07/go-volpath/pkg/core"
)

// GridDensity is a heterogeneous medium whose density is trilinearly
// interpolated from a voxel grid stretched over Bounds. The scattering
// coefficients are scaled by the density; outside the bounds the medium is empty.
type GridDensity struct {
	SigmaA     core.Vec3
	SigmaS     core.Vec3
	Bounds     core.AABB
	nx, ny, nz int
	density    []float64
	sigmaT     float64
	invMaxDens float64
	phase      *HenyeyGreenstein
}

// NewGridDensity creates a grid medium. density is indexed as (z*ny + y)*nx + x.
// Only the first channel of σa+σs drives distance sampling, so grid media are grey.
func NewGridDensity(sigmaA, sigmaS core.Vec3, g float64, nx, ny, nz int, bounds core.AABB, density []float64) (*GridDensity, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("medium: invalid grid resolution %dx%dx%d", nx, ny, nz)
	}
	if len(density) != nx*ny*nz {
		return nil, fmt.Errorf("medium: grid of %dx%dx%d needs %d density values, got %d", nx, ny, nz, nx*ny*nz, len(density))
	}

	maxDensity := 0.0
	for _, d := range density {
		if d < 0 {
			return nil, fmt.Errorf("medium: negative density %f", d)
		}
		maxDensity = math.Max(maxDensity, d)
	}
	invMax := 0.0
	if maxDensity > 0 {
		invMax = 1 / maxDensity
	}

	return &GridDensity{
		SigmaA:     sigmaA,
		SigmaS:     sigmaS,
		Bounds:     bounds,
		nx:         nx,
		ny:         ny,
		nz:         nz,
		density:    append([]float64(nil), density...),
		sigmaT:     sigmaA.Add(sigmaS).X,
		invMaxDens: invMax,
		phase:      NewHenyeyGreenstein(g),
	}, nil
}

// d returns the voxel value, zero outside the grid
func (m *GridDensity) d(x, y, z int) float64 {
	if x < 0 || y < 0 || z < 0 || x >= m.nx || y >= m.ny || z >= m.nz {
		return 0
	}
	return m.density[(z*m.ny+y)*m.nx+x]
}

// Density returns the interpolated density at p in medium space [0,1]³
func (m *GridDensity) Density(p core.Vec3) float64 {
	sx := p.X*float64(m.nx) - 0.5
	sy := p.Y*float64(m.ny) - 0.5
	sz := p.Z*float64(m.nz) - 0.5
	fx, fy, fz := math.Floor(sx), math.Floor(sy), math.Floor(sz)
	ix, iy, iz := int(fx), int(fy), int(fz)
	dx, dy, dz := sx-fx, sy-fy, sz-fz

	d00 := core.Lerp(dx, m.d(ix, iy, iz), m.d(ix+1, iy, iz))
	d10 := core.Lerp(dx, m.d(ix, iy+1, iz), m.d(ix+1, iy+1, iz))
	d01 := core.Lerp(dx, m.d(ix, iy, iz+1), m.d(ix+1, iy, iz+1))
	d11 := core.Lerp(dx, m.d(ix, iy+1, iz+1), m.d(ix+1, iy+1, iz+1))
	d0 := core.Lerp(dy, d00, d10)
	d1 := core.Lerp(dy, d01, d11)
	return core.Lerp(dz, d0, d1)
}

// toMedium maps the ray into medium space with a unit-speed world direction,
// so t stays a world-space distance. It returns the overlap with the grid.
func (m *GridDensity) toMedium(ray core.Ray) (core.Ray, float64, float64, bool) {
	length := ray.Direction.Length()
	if length == 0 || m.sigmaT <= 0 || m.invMaxDens == 0 {
		return core.Ray{}, 0, 0, false
	}
	size := m.Bounds.Size()
	local := core.Ray{
		Origin:    m.Bounds.Offset(ray.Origin),
		Direction: ray.Direction.Divide(length).DivideVec(size),
		TMax:      math.Min(ray.TMax*length, math.MaxFloat64),
	}
	unit := core.NewAABB(core.Vec3{}, core.NewVec3(1, 1, 1))
	tMin, tMax, ok := unit.IntersectP(local, 0, local.TMax)
	return local, tMin, tMax, ok
}

// Sample uses delta tracking against the majorant density
func (m *GridDensity) Sample(ray core.Ray, sampler core.Sampler, mi *core.MediumInteraction) core.Vec3 {
	local, tMin, tMax, ok := m.toMedium(ray)
	if !ok {
		return core.NewSpectrum(1)
	}

	t := tMin
	for {
		t -= math.Log(1-sampler.Get1D()) * m.invMaxDens / m.sigmaT
		if t >= tMax {
			break
		}
		if m.Density(local.At(t))*m.invMaxDens > sampler.Get1D() {
			worldT := t / ray.Direction.Length()
			*mi = core.MediumInteraction{
				Interaction: core.Interaction{
					Point:  ray.At(worldT),
					Wo:     ray.Direction.Negate().Normalize(),
					Time:   ray.Time,
					Medium: m,
				},
				Phase: m.phase,
			}
			return m.SigmaS.Divide(m.sigmaT)
		}
	}
	return core.NewSpectrum(1)
}

// Tr estimates transmittance with ratio tracking
func (m *GridDensity) Tr(ray core.Ray, sampler core.Sampler) core.Vec3 {
	local, tMin, tMax, ok := m.toMedium(ray)
	if !ok {
		return core.NewSpectrum(1)
	}

	tr := 1.0
	t := tMin
	for {
		t -= math.Log(1-sampler.Get1D()) * m.invMaxDens / m.sigmaT
		if t >= tMax {
			break
		}
		tr *= 1 - math.Max(0, m.Density(local.At(t))*m.invMaxDens)
		if tr <= 0 {
			return core.Vec3{}
		}
	}
	return core.NewSpectrum(tr)
}
