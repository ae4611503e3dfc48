package mesh

import "mesh-to-cad/internal/mathutil"

// Normalize positions the mesh for capture in place: converts Z-up input to
// Y-up when zUp is set, then translates it so the bounding box is centred on
// the origin. It returns the resulting world-space bounds.
func Normalize(m *Mesh, zUp bool) BoundingBox {
	if m.Empty() {
		return EmptyBox()
	}
	if zUp {
		for i, v := range m.Verts {
			t := mathutil.ModelFlip.MulVec3(mathutil.Vec3{float64(v[0]), float64(v[1]), float64(v[2])})
			m.Verts[i] = [3]float32{float32(t[0]), float32(t[1]), float32(t[2])}
		}
	}

	c := m.Bounds().Center()
	for i, v := range m.Verts {
		m.Verts[i] = [3]float32{
			v[0] - float32(c[0]),
			v[1] - float32(c[1]),
			v[2] - float32(c[2]),
		}
	}
	return m.Bounds()
}
