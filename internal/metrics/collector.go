// Package metrics records capture counters and latencies with Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Collector holds the capture metrics on a private registry. A nil
// *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	capturesTotal   *prometheus.CounterVec
	captureDuration prometheus.Histogram
	framesTotal     *prometheus.CounterVec
	frameBytes      prometheus.Histogram

	logger *zap.Logger
}

// NewCollector creates a collector registering under namespace.
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		capturesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "captures_total",
			Help:      "Multi-view captures by result.",
		}, []string{"result"}),
		captureDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "capture_duration_seconds",
			Help:      "Wall time of a full multi-view capture.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		framesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Encoded frames by distance regime.",
		}, []string{"regime"}),
		frameBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_bytes",
			Help:      "Encoded frame size in bytes.",
			Buckets:   prometheus.ExponentialBuckets(1024, 2, 10),
		}),
		logger: logger.With(zap.String("component", "metrics")),
	}
}

// ObserveCapture records one finished capture.
func (c *Collector) ObserveCapture(ok bool, d time.Duration) {
	if c == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	c.capturesTotal.WithLabelValues(result).Inc()
	c.captureDuration.Observe(d.Seconds())
}

// ObserveFrame records one encoded frame.
func (c *Collector) ObserveFrame(regime string, size int) {
	if c == nil {
		return
	}
	c.framesTotal.WithLabelValues(regime).Inc()
	c.frameBytes.Observe(float64(size))
}

// Registry exposes the private registry for scraping.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile dumps the metrics in text exposition format, for the
// node-exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		c.logger.Warn("write metrics textfile", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}
