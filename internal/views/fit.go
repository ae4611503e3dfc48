package views

import (
	"math"

	"mesh-to-cad/internal/mathutil"
	"mesh-to-cad/internal/mesh"
)

// DefaultDistance is used whenever a bounding box cannot be framed
// (nothing loaded yet, zero-size geometry). The camera must never sit at
// the object centre.
const DefaultDistance = 100.0

// DefaultFOV is the vertical field of view in degrees used when the
// supplied one is outside (0, 180).
const DefaultFOV = 40.0

// FitDistance returns the camera distance at which a sphere with the box's
// largest dimension as diameter touches the frustum edges for a vertical
// field of view of fovDeg degrees. It always returns a finite positive value.
func FitDistance(box mesh.BoundingBox, fovDeg float64) float64 {
	if box.IsDegenerate() {
		return DefaultDistance
	}
	if !(fovDeg > 0 && fovDeg < 180) {
		fovDeg = DefaultFOV
	}

	radius := box.Size().MaxComponent() / 2
	d := radius / math.Tan(mathutil.Deg2Rad(fovDeg)/2)
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return DefaultDistance
	}
	return d
}
