package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector("meshcad", zap.NewNop())
	c.ObserveCapture(true, 2*time.Second)
	c.ObserveCapture(false, time.Second)
	c.ObserveCapture(true, time.Second)
	c.ObserveFrame("standard", 4096)
	c.ObserveFrame("detail", 2048)
	c.ObserveFrame("detail", 2048)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.capturesTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.capturesTotal.WithLabelValues("failure")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.framesTotal.WithLabelValues("detail")))
}

func TestWriteTextfile(t *testing.T) {
	c := NewCollector("meshcad", nil)
	c.ObserveCapture(true, time.Second)

	path := filepath.Join(t.TempDir(), "capture.prom")
	require.NoError(t, c.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `meshcad_captures_total{result="success"} 1`)
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	c.ObserveCapture(true, time.Second)
	c.ObserveFrame("standard", 1)
	assert.NoError(t, c.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}
