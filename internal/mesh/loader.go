package mesh

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hschendel/stl"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// Load reads a mesh file by extension. Supported: .stl, .gltf, .glb.
func Load(path string) (*Mesh, error) {
	var (
		m   *Mesh
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		m, err = LoadSTL(path)
	case ".gltf", ".glb":
		m, err = LoadGLTF(path)
	default:
		return nil, fmt.Errorf("mesh: unsupported format %q: %s", ext, path)
	}
	if err != nil {
		return nil, err
	}
	if m.Empty() {
		return nil, fmt.Errorf("mesh: %s: %w", path, ErrMeshNotReady)
	}
	m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return m, nil
}

// LoadSTL reads an ASCII or binary STL file.
func LoadSTL(path string) (*Mesh, error) {
	solid, err := stl.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: read stl %s: %w", path, err)
	}
	return fromSolid(solid), nil
}

// ReadSTL reads STL data from r. The STL decoder needs to seek, so r is
// buffered in memory first.
func ReadSTL(r io.Reader) (*Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("mesh: read stl: %w", err)
	}
	solid, err := stl.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("mesh: read stl: %w", err)
	}
	return fromSolid(solid), nil
}

// fromSolid welds identical vertex positions into an indexed mesh.
func fromSolid(solid *stl.Solid) *Mesh {
	m := &Mesh{Name: solid.Name}
	vertMap := make(map[[3]float32]int32)
	for _, t := range solid.Triangles {
		var tri [3]int32
		for k, v := range t.Vertices {
			key := [3]float32{v[0], v[1], v[2]}
			idx, ok := vertMap[key]
			if !ok {
				idx = int32(len(m.Verts))
				m.Verts = append(m.Verts, key)
				vertMap[key] = idx
			}
			tri[k] = idx
		}
		m.Tris = append(m.Tris, tri)
	}
	return m
}

// LoadGLTF reads every triangle primitive of a glTF/GLB document into one mesh.
// Node transforms are not applied; primitives are taken in mesh space.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: open gltf %s: %w", path, err)
	}

	m := &Mesh{}
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			pos, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("mesh: gltf %s mesh %d prim %d positions: %w", path, mi, pi, err)
			}

			var indices []uint32
			if prim.Indices != nil {
				indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
				if err != nil {
					return nil, fmt.Errorf("mesh: gltf %s mesh %d prim %d indices: %w", path, mi, pi, err)
				}
			} else {
				indices = make([]uint32, len(pos))
				for i := range indices {
					indices[i] = uint32(i)
				}
			}

			base := int32(len(m.Verts))
			m.Verts = append(m.Verts, pos...)
			for i := 0; i+2 < len(indices); i += 3 {
				m.Tris = append(m.Tris, [3]int32{
					base + int32(indices[i]),
					base + int32(indices[i+1]),
					base + int32(indices[i+2]),
				})
			}
		}
	}
	return m, nil
}
