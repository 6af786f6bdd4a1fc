package core

// Interaction holds the data shared by surface and medium scattering events
type Interaction struct {
	Point     Vec3
	Normal    Vec3 // Geometric normal facing against the incoming ray; zero inside media
	Wo        Vec3 // Direction back towards the ray origin
	Time      float64
	FrontFace bool // Whether the ray arrived from the outward side

	// MediumInterface is set for surfaces that separate two media. When nil,
	// Medium is the medium on both sides.
	MediumInterface *MediumInterface
	Medium          Medium
}

// IsSurface reports whether the interaction lies on a surface
func (it *Interaction) IsSurface() bool {
	return !it.Normal.IsBlack()
}

// OutwardNormal returns the geometric normal on the outside of the surface
func (it *Interaction) OutwardNormal() Vec3 {
	if it.FrontFace {
		return it.Normal
	}
	return it.Normal.Negate()
}

// GetMedium returns the medium a ray leaving the interaction in direction w travels through
func (it *Interaction) GetMedium(w Vec3) Medium {
	if it.MediumInterface == nil {
		return it.Medium
	}
	if w.Dot(it.OutwardNormal()) > 0 {
		return it.MediumInterface.Outside
	}
	return it.MediumInterface.Inside
}

// offsetOrigin nudges the interaction point off the surface on the side of w
func (it *Interaction) offsetOrigin(w Vec3) Vec3 {
	if !it.IsSurface() {
		return it.Point
	}
	offset := it.Normal.Multiply(RayEpsilon)
	if w.Dot(it.Normal) < 0 {
		offset = offset.Negate()
	}
	return it.Point.Add(offset)
}

// SpawnRay creates an unbounded ray leaving the interaction in direction d
func (it *Interaction) SpawnRay(d Vec3) Ray {
	return Ray{
		Origin:    it.offsetOrigin(d),
		Direction: d,
		TMax:      Infinity,
		Time:      it.Time,
		Medium:    it.GetMedium(d),
	}
}

// SpawnRayTo creates a unit-direction ray towards p that stops just short of it
func (it *Interaction) SpawnRayTo(p Vec3) Ray {
	d := p.Subtract(it.Point)
	origin := it.offsetOrigin(d)
	toP := p.Subtract(origin)
	dist := toP.Length()
	if dist == 0 {
		return Ray{Origin: origin, Direction: d, Time: it.Time, Medium: it.GetMedium(d)}
	}
	return Ray{
		Origin:    origin,
		Direction: toP.Multiply(1 / dist),
		TMax:      dist * (1 - ShadowEpsilon),
		Time:      it.Time,
		Medium:    it.GetMedium(d),
	}
}
