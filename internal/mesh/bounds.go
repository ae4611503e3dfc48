package mesh

import (
	"math"

	"mesh-to-cad/internal/mathutil"
)

// BoundingBox is an axis-aligned box in world space.
// The zero value is a degenerate box at the origin.
type BoundingBox struct {
	Min mathutil.Vec3
	Max mathutil.Vec3
}

// EmptyBox returns an inverted box that any Extend call replaces.
func EmptyBox() BoundingBox {
	return BoundingBox{
		Min: mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
}

// Extend grows the box to include p.
func (b *BoundingBox) Extend(p mathutil.Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Union returns the smallest box containing both boxes.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return BoundingBox{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// IsEmpty reports whether no point was ever added.
func (b BoundingBox) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Center returns the midpoint of the box, or the origin for an empty box.
func (b BoundingBox) Center() mathutil.Vec3 {
	if b.IsEmpty() {
		return mathutil.Vec3{}
	}
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns max−min per axis, or zero for an empty box.
func (b BoundingBox) Size() mathutil.Vec3 {
	if b.IsEmpty() {
		return mathutil.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// IsDegenerate reports whether the box cannot be framed: empty, zero-size,
// or carrying non-finite corners.
func (b BoundingBox) IsDegenerate() bool {
	if b.IsEmpty() || !b.Min.IsFinite() || !b.Max.IsFinite() {
		return true
	}
	return b.Size().MaxComponent() <= 0
}

// Translate returns the box shifted by d.
func (b BoundingBox) Translate(d mathutil.Vec3) BoundingBox {
	if b.IsEmpty() {
		return b
	}
	return BoundingBox{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Bounds computes the bounding box of the mesh vertices.
func (m *Mesh) Bounds() BoundingBox {
	box := EmptyBox()
	if m == nil {
		return box
	}
	for _, v := range m.Verts {
		box.Extend(mathutil.Vec3{float64(v[0]), float64(v[1]), float64(v[2])})
	}
	return box
}
