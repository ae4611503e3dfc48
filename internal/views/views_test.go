package views

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"mesh-to-cad/internal/camera"
	"mesh-to-cad/internal/mathutil"
	"mesh-to-cad/internal/mesh"
)

func unitCube() mesh.BoundingBox {
	return mesh.BoundingBox{Min: mathutil.Vec3{-1, -1, -1}, Max: mathutil.Vec3{1, 1, 1}}
}

func TestOrientationTable(t *testing.T) {
	table := Orientations()
	require.Len(t, table, OrientationCount)

	cardinals := 0
	seen := map[string]bool{}
	for i, o := range table {
		assert.InDelta(t, 1.0, o.Direction.Len(), 1e-6, "entry %d %s", i, o.Name)
		assert.Less(t, math.Abs(o.Direction.Dot(o.Up.Normalize())), 1-1e-6, "up parallel to view for %s", o.Name)
		assert.False(t, seen[o.Name], "duplicate name %s", o.Name)
		seen[o.Name] = true
		if o.Cardinal {
			assert.Less(t, i, 6, "cardinals come first")
			cardinals++
		}
	}
	assert.Equal(t, 6, cardinals)
	assert.Equal(t, "top", table[0].Name)
	assert.Equal(t, mathutil.Vec3{0, 0, -1}, table[0].Up)

	// Callers get a copy.
	table[0].Name = "mutated"
	assert.Equal(t, "top", Orientations()[0].Name)
}

func TestFitDistance(t *testing.T) {
	tests := []struct {
		name string
		box  mesh.BoundingBox
		fov  float64
		want float64
	}{
		{"unit cube 40deg", unitCube(), 40, 1 / math.Tan(mathutil.Deg2Rad(20))},
		{"uses largest dimension", mesh.BoundingBox{Max: mathutil.Vec3{1, 8, 2}}, 90, 4},
		{"empty box", mesh.EmptyBox(), 40, DefaultDistance},
		{"zero size", mesh.BoundingBox{Min: mathutil.Vec3{3, 3, 3}, Max: mathutil.Vec3{3, 3, 3}}, 40, DefaultDistance},
		{"bad fov falls back", unitCube(), 0, 1 / math.Tan(mathutil.Deg2Rad(DefaultFOV/2))},
		{"nan fov falls back", unitCube(), math.NaN(), 1 / math.Tan(mathutil.Deg2Rad(DefaultFOV/2))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FitDistance(tt.box, tt.fov), 1e-9)
		})
	}
}

func TestFitDistanceIsFinitePositive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := mathutil.Vec3{
			rapid.Float64Range(0, 1e4).Draw(t, "sx"),
			rapid.Float64Range(0, 1e4).Draw(t, "sy"),
			rapid.Float64Range(0, 1e4).Draw(t, "sz"),
		}
		min := mathutil.Vec3{
			rapid.Float64Range(-1e3, 1e3).Draw(t, "x"),
			rapid.Float64Range(-1e3, 1e3).Draw(t, "y"),
			rapid.Float64Range(-1e3, 1e3).Draw(t, "z"),
		}
		fov := rapid.Float64Range(0.5, 179).Draw(t, "fov")
		d := FitDistance(mesh.BoundingBox{Min: min, Max: min.Add(size)}, fov)
		if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
			t.Fatalf("distance %v for size %v fov %v", d, size, fov)
		}
	})
}

// The half-extent of the largest dimension, seen from the fit distance along
// a cardinal axis, lands exactly on the frustum edge.
func TestFitDistanceFramesSphere(t *testing.T) {
	for _, fov := range []float64{20, 40, 75, 120} {
		box := mesh.BoundingBox{Max: mathutil.Vec3{2, 6, 4}}
		d := FitDistance(box, fov)

		cam := camera.NewPerspective(fov, 1)
		cam.Position = box.Center().Add(mathutil.Vec3{0, 0, d})
		cam.LookAt(box.Center())
		cam.Update()

		edge := box.Center().Add(mathutil.Vec3{0, 3, 0})
		ndc, _, ok := cam.Project(edge)
		require.True(t, ok)
		assert.InDelta(t, 1.0, ndc[1], 1e-9, "fov %v", fov)
	}
}

func TestGenerateOrder(t *testing.T) {
	table := Orientations()
	vs := Generate(table, mathutil.Vec3{1, 2, 3}, 10, DefaultParams())
	require.Len(t, vs.Poses, PoseCount)

	for i, p := range vs.Poses {
		o := table[i%OrientationCount]
		assert.Equal(t, i, p.Index)
		assert.Equal(t, o.Name, p.View)
		assert.Equal(t, o.Direction, p.Direction)
		assert.Equal(t, o.Up, p.Up)
		if i < OrientationCount {
			assert.Equal(t, Standard, p.Regime)
			assert.InDelta(t, 16.0, p.Distance, 1e-12)
		} else {
			assert.Equal(t, Detail, p.Regime)
			assert.InDelta(t, 5.5, p.Distance, 1e-12)
		}
	}
	assert.Equal(t, "01_top_standard", vs.Poses[0].Slug())
	assert.Equal(t, "top (detail)", vs.Labels()[18])
}

func TestForBoundsUnitCubeScenario(t *testing.T) {
	vs := ForBounds(unitCube(), 40, DefaultParams())

	assert.InDelta(t, 2.747, vs.Fit, 1e-3)
	assert.InDelta(t, 4.396, vs.Poses[0].Distance, 1e-3)
	assert.InDelta(t, 1.511, vs.Poses[18].Distance, 1e-3)

	top := vs.Poses[0].Position(vs.Center)
	assert.True(t, top.ApproxEqual(mathutil.Vec3{0, 4.396, 0}, 1e-3), "got %v", top)
	assert.Equal(t, mathutil.Vec3{0, 0, -1}, vs.Poses[0].Up)

	topDetail := vs.Poses[18].Position(vs.Center)
	assert.True(t, topDetail.ApproxEqual(mathutil.Vec3{0, 1.511, 0}, 1e-3), "got %v", topDetail)
}

func TestForBoundsDegenerateNeverAtCenter(t *testing.T) {
	vs := ForBounds(mesh.EmptyBox(), 40, DefaultParams())
	require.Len(t, vs.Poses, PoseCount)
	for _, p := range vs.Poses {
		assert.Greater(t, p.Position(vs.Center).Sub(vs.Center).Len(), 1.0)
	}
}

func TestRegimeString(t *testing.T) {
	assert.Equal(t, "standard", Standard.String())
	assert.Equal(t, "detail", Detail.String())
	assert.Equal(t, "regime(7)", Regime(7).String())
}
