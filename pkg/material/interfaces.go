package material

import (
	"github.com/df07/go-volpath/pkg/core"
)

// TransportMode tells lobes whether the quantity carried along the path is
// radiance (camera paths) or importance (light paths)
type TransportMode int

const (
	Radiance TransportMode = iota
	Importance
)

// Material builds the scattering functions at a surface point
type Material interface {
	// ComputeScatteringFunctions populates si.BSDF with the lobes for this point
	ComputeScatteringFunctions(si *SurfaceInteraction, mode TransportMode)
}

// AreaLight is implemented by lights attached to a surface so that hits on
// the surface can report emitted radiance
type AreaLight interface {
	// L returns radiance leaving the surface point it in direction w
	L(it *core.Interaction, w core.Vec3) core.Vec3
}

// SurfaceInteraction contains information about a ray-surface intersection.
// The BSDF is scratch data valid only for the bounce that produced the hit.
type SurfaceInteraction struct {
	core.Interaction
	T         float64   // Parameter t along the ray
	UV        core.Vec2 // Texture coordinates
	Material  Material  // nil for medium boundaries
	AreaLight AreaLight // nil unless the surface emits
	BSDF      BSDF
}

// SetFaceNormal sets the normal vector and determines front/back face
func (si *SurfaceInteraction) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	si.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if si.FrontFace {
		si.Normal = outwardNormal
	} else {
		si.Normal = outwardNormal.Negate()
	}
}

// Le returns the radiance emitted by the surface towards w
func (si *SurfaceInteraction) Le(w core.Vec3) core.Vec3 {
	if si.AreaLight == nil {
		return core.Vec3{}
	}
	return si.AreaLight.L(&si.Interaction, w)
}

// ComputeScatteringFunctions asks the material to fill in the BSDF.
// It returns false when the surface has no material and only separates media.
func (si *SurfaceInteraction) ComputeScatteringFunctions(mode TransportMode) bool {
	if si.Material == nil {
		return false
	}
	si.Material.ComputeScatteringFunctions(si, mode)
	return true
}
