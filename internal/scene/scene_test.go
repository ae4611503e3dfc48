package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mesh-to-cad/internal/mathutil"
	"mesh-to-cad/internal/mesh"
)

func triangle() *mesh.Mesh {
	return &mesh.Mesh{
		Verts: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Tris:  [][3]int32{{0, 1, 2}},
	}
}

func TestResolveTargetPrefersTag(t *testing.T) {
	s := New()
	grid := s.Add(&Object{Name: "grid", Mesh: triangle()})
	part := s.Add(&Object{Name: "part", Tags: []string{DefaultTargetTag}, Mesh: triangle()})

	assert.Same(t, part, s.ResolveTarget(DefaultTargetTag))
	assert.Same(t, grid, s.ResolveTarget("missing"))
	assert.Same(t, grid, s.ResolveTarget(""))
}

func TestResolveTargetSkipsUnrenderable(t *testing.T) {
	s := New()
	s.Add(&Object{Name: DefaultTargetTag, Hidden: true, Mesh: triangle()})
	s.Add(&Object{Name: "empty", Mesh: &mesh.Mesh{}})
	assert.Nil(t, s.ResolveTarget(DefaultTargetTag))

	visible := s.Add(&Object{Name: "visible", Mesh: triangle()})
	assert.Same(t, visible, s.ResolveTarget(DefaultTargetTag))

	var nilScene *Scene
	assert.Nil(t, nilScene.ResolveTarget(DefaultTargetTag))
}

func TestWorldBoundsAppliesPosition(t *testing.T) {
	o := &Object{Mesh: triangle(), Position: mathutil.Vec3{10, 0, -1}}
	b := o.WorldBounds()
	assert.Equal(t, mathutil.Vec3{10, 0, -1}, b.Min)
	assert.Equal(t, mathutil.Vec3{11, 1, -1}, b.Max)
}
