package views

import (
	"fmt"

	"mesh-to-cad/internal/mathutil"
	"mesh-to-cad/internal/mesh"
)

// Regime is the distance band of a pose.
type Regime int

const (
	// Standard frames the whole object with margin.
	Standard Regime = iota
	// Detail is a close-up pass for surface features.
	Detail
)

func (r Regime) String() string {
	switch r {
	case Standard:
		return "standard"
	case Detail:
		return "detail"
	}
	return fmt.Sprintf("regime(%d)", int(r))
}

// Distance multipliers applied to the fit distance.
const (
	StandardMargin = 1.6
	DetailZoom     = 0.55
)

// PoseCount is the size of a full view set.
const PoseCount = 2 * OrientationCount

// Pose is one camera placement relative to the object centre.
type Pose struct {
	Index     int // 0-based position in the view set
	View      string
	Regime    Regime
	Direction mathutil.Vec3
	Up        mathutil.Vec3
	Distance  float64
}

// Position resolves the absolute camera position for an object centre.
func (p Pose) Position(center mathutil.Vec3) mathutil.Vec3 {
	return center.Add(p.Direction.Scale(p.Distance))
}

// Label is a short human-readable name, e.g. "top (standard)".
func (p Pose) Label() string {
	return fmt.Sprintf("%s (%s)", p.View, p.Regime)
}

// Slug is a file-name friendly identifier, e.g. "01_top_standard".
func (p Pose) Slug() string {
	return fmt.Sprintf("%02d_%s_%s", p.Index+1, p.View, p.Regime)
}

// ViewSet is the ordered pose sequence of one capture plus the centre the
// poses are resolved against.
type ViewSet struct {
	Center mathutil.Vec3
	Fit    float64
	Poses  []Pose
}

// Params are the distance multipliers of a view set.
type Params struct {
	StandardMargin float64
	DetailZoom     float64
}

// DefaultParams returns the standard 1.6 margin and 0.55 detail zoom.
func DefaultParams() Params {
	return Params{StandardMargin: StandardMargin, DetailZoom: DetailZoom}
}

// Generate builds the view set: every table entry at the standard distance,
// then every table entry at the detail distance, each block in table order.
func Generate(table []Orientation, center mathutil.Vec3, fit float64, p Params) ViewSet {
	vs := ViewSet{
		Center: center,
		Fit:    fit,
		Poses:  make([]Pose, 0, 2*len(table)),
	}
	for _, band := range []struct {
		regime Regime
		mult   float64
	}{
		{Standard, p.StandardMargin},
		{Detail, p.DetailZoom},
	} {
		for _, o := range table {
			vs.Poses = append(vs.Poses, Pose{
				Index:     len(vs.Poses),
				View:      o.Name,
				Regime:    band.regime,
				Direction: o.Direction,
				Up:        o.Up,
				Distance:  fit * band.mult,
			})
		}
	}
	return vs
}

// Labels returns one label per pose, in order.
func (vs ViewSet) Labels() []string {
	out := make([]string, len(vs.Poses))
	for i, p := range vs.Poses {
		out[i] = p.Label()
	}
	return out
}

// ForBounds builds the view set framing box at a vertical field of view of
// fovDeg degrees.
func ForBounds(box mesh.BoundingBox, fovDeg float64, p Params) ViewSet {
	return Generate(Orientations(), box.Center(), FitDistance(box, fovDeg), p)
}
