// Package raster is an offscreen software renderer: it draws the scene from
// the camera's current pose into an image, synchronously.
package raster

import (
	"fmt"
	"image"

	"mesh-to-cad/internal/camera"
	"mesh-to-cad/internal/mathutil"
	"mesh-to-cad/internal/postprocess"
	"mesh-to-cad/internal/scene"
)

// DefaultColor is the base colour of objects that do not set one.
var DefaultColor = [3]uint8{176, 182, 192}

// Options configure the output surface.
type Options struct {
	Width       int
	Height      int
	Supersample int
	FOV         float64
	// Matcap, when set, replaces lighting: faces take the matcap colour at
	// their view-space normal.
	Matcap *image.NRGBA
}

// Renderer owns a camera, its orbit controls, and the scene it draws.
// It is single-owner and not safe for concurrent use.
type Renderer struct {
	scene    *scene.Scene
	cam      *camera.Camera
	controls *camera.OrbitControls
	opts     Options
	lc       LightConfig
}

// NewRenderer returns a renderer whose camera matches the surface aspect.
func NewRenderer(sc *scene.Scene, opts Options) *Renderer {
	if opts.Supersample <= 0 {
		opts.Supersample = 1
	}
	aspect := 1.0
	if opts.Width > 0 && opts.Height > 0 {
		aspect = float64(opts.Width) / float64(opts.Height)
	}
	cam := camera.NewPerspective(opts.FOV, aspect)
	return &Renderer{
		scene:    sc,
		cam:      cam,
		controls: camera.NewOrbitControls(cam, mathutil.Vec3{}),
		opts:     opts,
		lc:       DefaultLightConfig(),
	}
}

func (r *Renderer) Camera() *camera.Camera          { return r.cam }
func (r *Renderer) Controls() *camera.OrbitControls { return r.controls }
func (r *Renderer) Scene() *scene.Scene             { return r.scene }

// Flush waits for pending work. Rendering is synchronous, so there is none.
func (r *Renderer) Flush() error {
	return nil
}

// Render draws one frame from the camera's current matrices.
func (r *Renderer) Render() (image.Image, error) {
	if r.opts.Width <= 0 || r.opts.Height <= 0 {
		return nil, fmt.Errorf("raster: invalid surface %dx%d", r.opts.Width, r.opts.Height)
	}
	rw := r.opts.Width * r.opts.Supersample
	rh := r.opts.Height * r.opts.Supersample

	fb := NewFrameBuffer(rw, rh)
	if r.scene != nil {
		fb.Fill(r.scene.Background)
		for _, o := range r.scene.Objects {
			if o.Renderable() {
				r.drawObject(fb, o)
			}
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, rw, rh))
	copy(img.Pix, fb.Color)

	if r.opts.Supersample > 1 {
		img = postprocess.Downsample(img, r.opts.Width, r.opts.Height)
	}
	return img, nil
}

func (r *Renderer) drawObject(fb *FrameBuffer, o *scene.Object) {
	m := o.Mesh
	world := make([]mathutil.Vec3, len(m.Verts))
	screen := make([]ScreenVert, len(m.Verts))
	visible := make([]bool, len(m.Verts))

	w, h := float64(fb.Width), float64(fb.Height)
	for i, v := range m.Verts {
		p := mathutil.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}.Add(o.Position)
		world[i] = p
		ndc, cw, ok := r.cam.Project(p)
		if !ok {
			continue
		}
		visible[i] = true
		screen[i] = ScreenVert{
			X:    (ndc[0] + 1) * 0.5 * w,
			Y:    (1 - ndc[1]) * 0.5 * h,
			InvW: 1 / cw,
		}
	}

	base := o.Color
	if base == ([3]uint8{}) {
		base = DefaultColor
	}
	toView := mathutil.QuatToMat3(r.cam.Rotation).Transpose()

	for _, tri := range m.Tris {
		a, b, c := int(tri[0]), int(tri[1]), int(tri[2])
		if a < 0 || b < 0 || c < 0 || a >= len(world) || b >= len(world) || c >= len(world) {
			continue
		}
		// Triangles crossing the near plane are dropped rather than clipped.
		if !visible[a] || !visible[b] || !visible[c] {
			continue
		}

		n := world[b].Sub(world[a]).Cross(world[c].Sub(world[a]))
		if n.Len() < 1e-12 {
			continue
		}
		nv := toView.MulVec3(n.Normalize())
		if nv[2] < 0 {
			nv = nv.Neg()
		}

		RasterizeTriangle(fb, [3]ScreenVert{screen[a], screen[b], screen[c]}, r.faceColor(base, nv))
	}
}

func (r *Renderer) faceColor(base [3]uint8, viewNormal mathutil.Vec3) [3]uint8 {
	if r.opts.Matcap != nil {
		cr, cg, cb, _ := SampleTexture(r.opts.Matcap, viewNormal[0]*0.5+0.5, 0.5-viewNormal[1]*0.5)
		return [3]uint8{cr, cg, cb}
	}
	return r.lc.ShadeColor(base, r.lc.ComputeShade(viewNormal))
}
