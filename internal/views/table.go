// Package views derives the camera poses a multi-view capture renders:
// a fixed orientation table, the fit-to-view distance, and the ordered
// 36-pose view set built from them.
package views

import (
	"math"

	"mesh-to-cad/internal/mathutil"
)

// Orientation is one sampling direction of the table. Direction points from
// the object centre towards the camera.
type Orientation struct {
	Name      string
	Direction mathutil.Vec3
	Up        mathutil.Vec3
	Cardinal  bool
}

// Up vectors. Top and bottom views look along ±Y, so they take a
// front-pointing up; every other view uses world up.
var (
	upWorld  = mathutil.WorldUp
	upTop    = mathutil.Vec3{0, 0, -1}
	upBottom = mathutil.Vec3{0, 0, 1}
)

// The order is part of the frame contract: consumers label frame i by
// table position, so entries must never be reordered.
var orientations = func() []Orientation {
	d := 1 / math.Sqrt2
	return []Orientation{
		{"top", mathutil.Vec3{0, 1, 0}, upTop, true},
		{"bottom", mathutil.Vec3{0, -1, 0}, upBottom, true},
		{"front", mathutil.Vec3{0, 0, 1}, upWorld, true},
		{"back", mathutil.Vec3{0, 0, -1}, upWorld, true},
		{"right", mathutil.Vec3{1, 0, 0}, upWorld, true},
		{"left", mathutil.Vec3{-1, 0, 0}, upWorld, true},

		// XY ring
		{"top-right", mathutil.Vec3{d, d, 0}, upWorld, false},
		{"top-left", mathutil.Vec3{-d, d, 0}, upWorld, false},
		{"bottom-right", mathutil.Vec3{d, -d, 0}, upWorld, false},
		{"bottom-left", mathutil.Vec3{-d, -d, 0}, upWorld, false},

		// YZ ring
		{"top-front", mathutil.Vec3{0, d, d}, upWorld, false},
		{"top-back", mathutil.Vec3{0, d, -d}, upWorld, false},
		{"bottom-front", mathutil.Vec3{0, -d, d}, upWorld, false},
		{"bottom-back", mathutil.Vec3{0, -d, -d}, upWorld, false},

		// XZ ring
		{"front-right", mathutil.Vec3{d, 0, d}, upWorld, false},
		{"front-left", mathutil.Vec3{-d, 0, d}, upWorld, false},
		{"back-right", mathutil.Vec3{d, 0, -d}, upWorld, false},
		{"back-left", mathutil.Vec3{-d, 0, -d}, upWorld, false},
	}
}()

// OrientationCount is the number of entries in the table.
const OrientationCount = 18

// Orientations returns a fresh copy of the table in its declared order.
func Orientations() []Orientation {
	out := make([]Orientation, len(orientations))
	copy(out, orientations)
	return out
}
