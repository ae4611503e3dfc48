package capture

import (
	"bytes"
	"context"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mesh-to-cad/internal/encode"
	"mesh-to-cad/internal/mathutil"
	"mesh-to-cad/internal/metrics"
	"mesh-to-cad/internal/raster"
	"mesh-to-cad/internal/views"
)

func TestOrchestratorEndToEnd(t *testing.T) {
	sc := cubeScene()
	r := raster.NewRenderer(sc, raster.Options{Width: 32, Height: 32, FOV: 40})
	r.Controls().SetAutoRotate(true)
	r.Camera().Position = mathutil.Vec3{2, 2, 9}
	r.Camera().LookAt(mathutil.Vec3{})
	r.Camera().Update()
	before := r.Camera().Snapshot()

	o := NewOrchestrator(r, encode.JPEG{Quality: 80}, noDelay(), zap.NewNop())
	o.Session().WithMetrics(metrics.NewCollector("test", nil))
	capture := o.CaptureFunc()

	first, err := capture(context.Background())
	require.NoError(t, err)
	require.Len(t, first, views.PoseCount)

	img, err := jpeg.Decode(bytes.NewReader(first[0].Data))
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())

	assert.Equal(t, before, r.Camera().Snapshot())
	assert.True(t, r.Controls().Enabled())
	assert.True(t, r.Controls().AutoRotate())
}

func TestCaptureTwiceYieldsIdenticalFrames(t *testing.T) {
	starts := []struct {
		name string
		pos  mathutil.Vec3
		up   mathutil.Vec3
	}{
		{"oblique", mathutil.Vec3{2, 2, 9}, mathutil.WorldUp},
		{"below", mathutil.Vec3{-3, -7, 1}, mathutil.WorldUp},
		{"rolled", mathutil.Vec3{6, 0.5, -4}, mathutil.Vec3{1, 1, 0}.Normalize()},
	}
	for _, tt := range starts {
		t.Run(tt.name, func(t *testing.T) {
			r := raster.NewRenderer(cubeScene(), raster.Options{Width: 24, Height: 24, FOV: 40})
			r.Camera().Position = tt.pos
			r.Camera().Up = tt.up
			r.Camera().LookAt(mathutil.Vec3{})
			r.Camera().Update()
			before := r.Camera().Snapshot()

			capture := NewOrchestrator(r, encode.PNG{}, noDelay(), nil).CaptureFunc()

			first, err := capture(context.Background())
			require.NoError(t, err)
			assert.Equal(t, before, r.Camera().Snapshot())

			second, err := capture(context.Background())
			require.NoError(t, err)
			assert.Equal(t, before, r.Camera().Snapshot())

			require.Len(t, first, views.PoseCount)
			require.Len(t, second, views.PoseCount)
			for i := range first {
				assert.Equal(t, first[i].Pose, second[i].Pose)
				assert.True(t, bytes.Equal(first[i].Data, second[i].Data), "frame %d differs", i+1)
			}
		})
	}
}
