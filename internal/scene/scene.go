// Package scene holds the renderable objects a capture frames.
package scene

import (
	"mesh-to-cad/internal/mathutil"
	"mesh-to-cad/internal/mesh"
)

// DefaultTargetTag names the object a capture should frame when several exist.
const DefaultTargetTag = "capture-target"

// Object is a renderable mesh placed in the world.
type Object struct {
	Name     string
	Tags     []string
	Mesh     *mesh.Mesh
	Position mathutil.Vec3
	Color    [3]uint8
	Hidden   bool
}

// Renderable reports whether the object contributes triangles to a frame.
func (o *Object) Renderable() bool {
	return o != nil && !o.Hidden && !o.Mesh.Empty()
}

// HasTag reports whether the object carries tag or is named after it.
func (o *Object) HasTag(tag string) bool {
	if o.Name == tag {
		return true
	}
	for _, t := range o.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// WorldBounds returns the object's bounding box in world space.
func (o *Object) WorldBounds() mesh.BoundingBox {
	if o.Mesh.Empty() {
		return mesh.EmptyBox()
	}
	return o.Mesh.Bounds().Translate(o.Position)
}

// Scene is an ordered set of objects.
type Scene struct {
	Objects    []*Object
	Background [3]uint8
}

// New returns an empty scene with the default light-grey background.
func New() *Scene {
	return &Scene{Background: [3]uint8{242, 242, 245}}
}

// Add appends an object and returns it.
func (s *Scene) Add(o *Object) *Object {
	s.Objects = append(s.Objects, o)
	return o
}

// Clear removes every object.
func (s *Scene) Clear() {
	s.Objects = nil
}

// ResolveTarget locates the object a capture should be framed on: the first
// renderable object carrying tag, otherwise the first renderable object.
// It returns nil when nothing renderable is present.
func (s *Scene) ResolveTarget(tag string) *Object {
	if s == nil {
		return nil
	}
	var fallback *Object
	for _, o := range s.Objects {
		if !o.Renderable() {
			continue
		}
		if tag != "" && o.HasTag(tag) {
			return o
		}
		if fallback == nil {
			fallback = o
		}
	}
	return fallback
}
