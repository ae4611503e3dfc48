package camera

import (
	"math"

	"mesh-to-cad/internal/mathutil"
)

// DefaultAutoRotateSpeed is degrees of azimuth per second.
const DefaultAutoRotateSpeed = 12.0

// OrbitControls orbits a camera around a target point. It is the
// interactive controller a capture suspends.
type OrbitControls struct {
	Target          mathutil.Vec3
	AutoRotateSpeed float64

	cam        *Camera
	enabled    bool
	autoRotate bool
}

// NewOrbitControls returns enabled controls bound to cam.
func NewOrbitControls(cam *Camera, target mathutil.Vec3) *OrbitControls {
	return &OrbitControls{
		Target:          target,
		AutoRotateSpeed: DefaultAutoRotateSpeed,
		cam:             cam,
		enabled:         true,
	}
}

func (o *OrbitControls) Enabled() bool        { return o.enabled }
func (o *OrbitControls) SetEnabled(v bool)    { o.enabled = v }
func (o *OrbitControls) AutoRotate() bool     { return o.autoRotate }
func (o *OrbitControls) SetAutoRotate(v bool) { o.autoRotate = v }

// Rotate orbits the camera by the given azimuth and elevation (degrees).
// Elevation is clamped short of the poles. It is a no-op while disabled.
func (o *OrbitControls) Rotate(azimuth, elevation float64) {
	if !o.enabled {
		return
	}
	offset := o.cam.Position.Sub(o.Target)
	radius := offset.Len()
	if radius < 1e-12 {
		return
	}

	theta := math.Atan2(offset[0], offset[2]) + mathutil.Deg2Rad(azimuth)
	phi := math.Acos(math.Max(-1, math.Min(1, offset[1]/radius))) - mathutil.Deg2Rad(elevation)
	const eps = 1e-6
	phi = math.Max(eps, math.Min(math.Pi-eps, phi))

	o.cam.Position = o.Target.Add(mathutil.Vec3{
		radius * math.Sin(phi) * math.Sin(theta),
		radius * math.Cos(phi),
		radius * math.Sin(phi) * math.Cos(theta),
	})
	o.cam.Up = mathutil.WorldUp
	o.cam.LookAt(o.Target)
	o.cam.Update()
}

// Update advances auto-rotation by dt seconds. It reports whether the
// camera moved.
func (o *OrbitControls) Update(dt float64) bool {
	if !o.enabled || !o.autoRotate || dt <= 0 {
		return false
	}
	o.Rotate(o.AutoRotateSpeed*dt, 0)
	return true
}
