package core

// PhaseFunction describes how light scatters at a point inside a participating medium.
// wo and wi both point away from the scattering point.
type PhaseFunction interface {
	P(wo, wi Vec3) float64
	SampleP(wo Vec3, u Vec2) (wi Vec3, p float64)
}

// Medium is a participating medium a ray can travel through
type Medium interface {
	// Tr returns the beam transmittance along the ray from its origin up to TMax
	Tr(ray Ray, sampler Sampler) Vec3

	// Sample draws a free-flight distance along the ray. When a scattering event
	// happens before TMax, mi is filled in and mi.IsValid reports true. The returned
	// spectrum is the throughput weight of the sampled segment.
	Sample(ray Ray, sampler Sampler, mi *MediumInteraction) Vec3
}

// MediumInterface names the media on either side of a surface.
// Inside is the side opposite the outward normal.
type MediumInterface struct {
	Inside  Medium
	Outside Medium
}

// NewMediumInterface creates a medium interface
func NewMediumInterface(inside, outside Medium) *MediumInterface {
	return &MediumInterface{Inside: inside, Outside: outside}
}

// IsTransition reports whether crossing the surface changes the medium
func (mi *MediumInterface) IsTransition() bool {
	return mi.Inside != mi.Outside
}

// MediumInteraction is a scattering event inside a medium
type MediumInteraction struct {
	Interaction
	Phase PhaseFunction
}

// IsValid reports whether a scattering event was recorded
func (mi *MediumInteraction) IsValid() bool {
	return mi.Phase != nil
}
