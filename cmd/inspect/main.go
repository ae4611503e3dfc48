package main

import (
	"flag"
	"fmt"
	"os"

	"mesh-to-cad/internal/mesh"
	"mesh-to-cad/internal/views"
)

func main() {
	fov := flag.Float64("fov", views.DefaultFOV, "Vertical field of view in degrees")
	zUp := flag.Bool("z-up", false, "Treat the mesh as Z-up")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspect [-fov deg] [-z-up] <mesh.stl|mesh.gltf|mesh.glb>")
		os.Exit(2)
	}

	m, err := mesh.Load(flag.Arg(0))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	raw := m.Bounds()
	box := mesh.Normalize(m, *zUp)

	fmt.Printf("Mesh %q: verts=%d, tris=%d\n", m.Name, len(m.Verts), len(m.Tris))
	fmt.Printf("  Source BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n",
		raw.Min[0], raw.Max[0], raw.Min[1], raw.Max[1], raw.Min[2], raw.Max[2])
	s := box.Size()
	fmt.Printf("  Size: %.3f x %.3f x %.3f\n", s[0], s[1], s[2])
	if box.IsDegenerate() {
		fmt.Println("  Degenerate bounds, default distance applies")
	}

	vs := views.ForBounds(box, *fov, views.DefaultParams())
	fmt.Printf("  Fit distance @ %.1f°: %.4f\n", *fov, vs.Fit)
	fmt.Println("    #  view          regime    distance  position                      up")
	for _, p := range vs.Poses {
		pos := p.Position(vs.Center)
		fmt.Printf("  %3d  %-12s  %-8s  %8.3f  (%8.3f, %8.3f, %8.3f)  (%g, %g, %g)\n",
			p.Index+1, p.View, p.Regime, p.Distance, pos[0], pos[1], pos[2], p.Up[0], p.Up[1], p.Up[2])
	}
}
