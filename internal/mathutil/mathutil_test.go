package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestQuatMat3RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		// An orthonormal right-handed basis, built the way a camera lookAt does.
		z := Vec3{
			rapid.Float64Range(-1, 1).Draw(t, "x"),
			rapid.Float64Range(-1, 1).Draw(t, "y"),
			rapid.Float64Range(-1, 1).Draw(t, "z"),
		}
		if z.Len() < 1e-3 {
			t.Skip("direction too short")
		}
		z = z.Normalize()
		up := WorldUp
		if math.Abs(z.Dot(up)) > 0.999 {
			up = AxisZ
		}
		x := up.Cross(z).Normalize()
		m := Mat3FromColumns(x, z.Cross(x), z)

		back := QuatToMat3(Mat3ToQuat(m))
		for i := range m {
			if math.Abs(m[i]-back[i]) > 1e-9 {
				t.Fatalf("element %d: %v != %v", i, m[i], back[i])
			}
		}
	})
}

func TestRotationsAreProper(t *testing.T) {
	r := RotX(0.7)
	// Right-handed: x × y = z for the columns.
	x, y, z := r.MulVec3(AxisX), r.MulVec3(AxisY), r.MulVec3(AxisZ)
	assert.True(t, x.Cross(y).ApproxEqual(z, 1e-12))
	assert.True(t, r.Transpose().MulVec3(r.MulVec3(Vec3{1, 2, 3})).ApproxEqual(Vec3{1, 2, 3}, 1e-12))
	assert.True(t, ModelFlip.MulVec3(AxisZ).ApproxEqual(AxisY, 1e-12))
}

func TestVec3(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{-4, 5, 0}
	assert.Equal(t, Vec3{-3, 7, 3}, a.Add(b))
	assert.Equal(t, Vec3{-4, 2, 0}, a.Min(b))
	assert.Equal(t, 3.0, a.MaxComponent())
	assert.Equal(t, Vec3{0, 0, 1}, AxisX.Cross(AxisY))
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.False(t, Vec3{math.NaN(), 0, 0}.IsFinite())
	assert.Equal(t, Vec3{0, 1, 0}, Mat3FromColumns(AxisX, AxisY, AxisZ).MulVec3(AxisY))
}
