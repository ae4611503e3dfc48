// Package camera implements a perspective camera with three.js-style
// position/rotation/up state and an orbit controller.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"mesh-to-cad/internal/mathutil"
)

// Default clip planes. Depth is resolved in float64, so a wide range is cheap.
const (
	DefaultNear = 0.01
	DefaultFar  = 1e5
)

// Camera is a perspective camera. Position, Rotation and Up are the mutable
// state a capture saves and restores; the matrices are derived by Update.
type Camera struct {
	Position mathutil.Vec3
	Rotation mathutil.Quat
	Up       mathutil.Vec3

	FOV    float64 // vertical, degrees
	Aspect float64
	Near   float64
	Far    float64

	view     mgl64.Mat4
	proj     mgl64.Mat4
	viewProj mgl64.Mat4
}

// NewPerspective returns a camera at (0,0,5) looking at the origin.
func NewPerspective(fov, aspect float64) *Camera {
	c := &Camera{
		Position: mathutil.Vec3{0, 0, 5},
		Rotation: mathutil.QuatIdentity(),
		Up:       mathutil.WorldUp,
		FOV:      fov,
		Aspect:   aspect,
		Near:     DefaultNear,
		Far:      DefaultFar,
	}
	c.Update()
	return c
}

// LookAt orients the camera so its -Z axis points at target, keeping roll
// consistent with Up. An up vector parallel to the view direction is nudged
// off-axis rather than producing a NaN basis.
func (c *Camera) LookAt(target mathutil.Vec3) {
	z := c.Position.Sub(target)
	if z.Len() < 1e-12 {
		z = mathutil.AxisZ
	}
	z = z.Normalize()

	x := c.Up.Cross(z)
	if x.Len() < 1e-12 {
		if math.Abs(c.Up[2]) == 1 {
			z[0] += 0.0001
		} else {
			z[2] += 0.0001
		}
		z = z.Normalize()
		x = c.Up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	c.Rotation = mathutil.Mat3ToQuat(mathutil.Mat3FromColumns(x, y, z))
}

// Update recomputes the view and projection matrices from the current state.
func (c *Camera) Update() {
	r := mathutil.QuatToMat3(c.Rotation)
	// View is the inverse of the rigid world transform: Rᵀ, -Rᵀp.
	rt := r.Transpose()
	t := rt.MulVec3(c.Position).Neg()
	c.view = mgl64.Mat4FromRows(
		mgl64.Vec4{rt[0], rt[1], rt[2], t[0]},
		mgl64.Vec4{rt[3], rt[4], rt[5], t[1]},
		mgl64.Vec4{rt[6], rt[7], rt[8], t[2]},
		mgl64.Vec4{0, 0, 0, 1},
	)

	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.proj = mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
	c.viewProj = c.proj.Mul4(c.view)
}

// Forward returns the unit viewing direction in world space.
func (c *Camera) Forward() mathutil.Vec3 {
	return c.Rotation.Rotate(mathutil.AxisZ.Neg())
}

// ViewMatrix returns the world-to-camera matrix computed by the last Update.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	return c.view
}

// Project maps a world point to normalized device coordinates. w is the
// clip-space w (distance in front of the camera); ok is false for points at
// or behind the near plane.
func (c *Camera) Project(p mathutil.Vec3) (ndc mathutil.Vec3, w float64, ok bool) {
	clip := c.viewProj.Mul4x1(mgl64.Vec4{p[0], p[1], p[2], 1})
	w = clip[3]
	if w < c.Near {
		return mathutil.Vec3{}, w, false
	}
	return mathutil.Vec3{clip[0] / w, clip[1] / w, clip[2] / w}, w, true
}

// Snapshot is a value copy of the camera's mutable pose.
type Snapshot struct {
	Position mathutil.Vec3
	Rotation mathutil.Quat
	Up       mathutil.Vec3
}

// Snapshot captures the current pose by value.
func (c *Camera) Snapshot() Snapshot {
	return Snapshot{Position: c.Position, Rotation: c.Rotation, Up: c.Up}
}

// Restore writes a snapshot back bit-for-bit and recomputes the matrices.
// Rotation is restored directly rather than re-derived through LookAt.
func (c *Camera) Restore(s Snapshot) {
	c.Up = s.Up
	c.Position = s.Position
	c.Rotation = s.Rotation
	c.Update()
}
