package mesh

import "errors"

// ErrMeshNotReady is returned when a mesh source yields no usable geometry.
var ErrMeshNotReady = errors.New("mesh: not ready")

// Mesh holds an indexed triangle mesh in world space.
type Mesh struct {
	Name  string
	Verts [][3]float32
	Tris  [][3]int32
}

// Empty reports whether the mesh has nothing to draw.
func (m *Mesh) Empty() bool {
	return m == nil || len(m.Verts) == 0 || len(m.Tris) == 0
}
