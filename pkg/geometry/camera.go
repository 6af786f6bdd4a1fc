package geometry

import (
	"math"

	"github.com/df07/go-volpath/pkg/core"
)

// CameraConfig describes a look-at camera
type CameraConfig struct {
	Center        core.Vec3   // Camera position
	LookAt        core.Vec3   // Point the camera looks at
	Up            core.Vec3   // Up direction
	AspectRatio   float64     // Width / height
	VFov          float64     // Vertical field of view in degrees
	Aperture      float64     // Lens diameter; 0 for a pinhole
	FocusDistance float64     // Distance to the plane in focus; 0 uses |LookAt - Center|
	Medium        core.Medium // Medium the camera sits in
	Time0, Time1  float64     // Shutter interval; rays get a time uniformly inside it
}

// Camera generates primary rays
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
}

// NewCamera creates a camera from its configuration
func NewCamera(config CameraConfig) *Camera {
	if config.AspectRatio <= 0 {
		config.AspectRatio = 1
	}
	if config.Up.IsBlack() {
		config.Up = core.NewVec3(0, 1, 0)
	}

	theta := config.VFov * math.Pi / 180
	viewportHeight := 2 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	focus := config.FocusDistance
	if focus <= 0 {
		focus = config.LookAt.Subtract(config.Center).Length()
	}

	horizontal := u.Multiply(viewportWidth * focus)
	vertical := v.Multiply(viewportHeight * focus)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focus))

	return &Camera{
		config:          config,
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// GetRay generates a ray for screen coordinates (s, t) in [0,1]², with t=0 at
// the bottom of the image. lens is only used when the aperture is open and
// uTime picks the ray time within the shutter interval.
func (c *Camera) GetRay(s, t float64, lens core.Vec2, uTime float64) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		d := core.ConcentricSampleDisk(lens)
		origin = origin.Add(c.u.Multiply(d.X * c.lensRadius)).Add(c.v.Multiply(d.Y * c.lensRadius))
	}

	target := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))

	ray := core.NewRayInMedium(origin, target.Subtract(origin).Normalize(), c.config.Medium)
	ray.Time = c.config.Time0 + uTime*(c.config.Time1-c.config.Time0)
	return ray
}

// Forward returns the viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}
