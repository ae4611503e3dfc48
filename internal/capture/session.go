// Package capture drives a renderer through the 36-pose view set and returns
// the encoded frames, leaving the camera and its controls exactly as it
// found them.
package capture

import (
	"context"
	"errors"
	"image"
	"time"

	"go.uber.org/zap"

	"mesh-to-cad/internal/camera"
	"mesh-to-cad/internal/encode"
	"mesh-to-cad/internal/mesh"
	"mesh-to-cad/internal/metrics"
	"mesh-to-cad/internal/scene"
	"mesh-to-cad/internal/views"
)

// Renderer is the offscreen frame source. Render must draw synchronously
// from the camera's current matrices.
type Renderer interface {
	Camera() *camera.Camera
	Render() (image.Image, error)
}

// Flusher is implemented by renderers that can block until every pending
// transform update is visible to the backend. When present it replaces the
// fixed settle delay.
type Flusher interface {
	Flush() error
}

// Controls is the interactive camera controller suspended during capture.
type Controls interface {
	Enabled() bool
	SetEnabled(bool)
	AutoRotate() bool
	SetAutoRotate(bool)
}

// Frame is one encoded image; Pose says which view and regime it shows.
type Frame struct {
	Pose     views.Pose
	MIMEType string
	Data     []byte
}

// DataURL returns the frame as a base64 data URL.
func (f Frame) DataURL() string {
	return encode.DataURL(f.MIMEType, f.Data)
}

// State of a session.
type State int

const (
	Idle State = iota
	Capturing
)

func (s State) String() string {
	if s == Capturing {
		return "capturing"
	}
	return "idle"
}

// Options tune a session.
type Options struct {
	// FOV overrides the camera's vertical field of view for fitting. Zero
	// uses the camera's own.
	FOV    float64
	Params views.Params
	// TargetTag selects the object to frame when several are present.
	TargetTag string
	// SettleDelay is slept before each render on renderers without Flush.
	SettleDelay time.Duration
}

// DefaultOptions returns the standard multipliers and target tag.
func DefaultOptions() Options {
	return Options{
		Params:      views.DefaultParams(),
		TargetTag:   scene.DefaultTargetTag,
		SettleDelay: 50 * time.Millisecond,
	}
}

// Session owns the camera and controls for the duration of one capture.
// It is not safe for concurrent use; the renderer it drives is single-owner.
type Session struct {
	renderer Renderer
	controls Controls
	scene    *scene.Scene
	encoder  encode.Encoder
	opts     Options
	logger   *zap.Logger
	metrics  *metrics.Collector
	sleep    func(time.Duration)
	state    State
}

// NewSession binds a session to a live renderer. controls and sc may be nil.
func NewSession(r Renderer, controls Controls, sc *scene.Scene, enc encode.Encoder, opts Options, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if enc == nil {
		enc = encode.JPEG{}
	}
	if opts.Params == (views.Params{}) {
		opts.Params = views.DefaultParams()
	}
	return &Session{
		renderer: r,
		controls: controls,
		scene:    sc,
		encoder:  enc,
		opts:     opts,
		logger:   logger.With(zap.String("component", "capture")),
		sleep:    time.Sleep,
	}
}

// WithMetrics attaches a collector.
func (s *Session) WithMetrics(m *metrics.Collector) *Session {
	s.metrics = m
	return s
}

// State reports whether a capture is running.
func (s *Session) State() State {
	return s.state
}

// Plan resolves the capture target and returns the view set a capture
// would render now, without touching the camera.
func (s *Session) Plan() views.ViewSet {
	box := mesh.EmptyBox()
	if target := s.scene.ResolveTarget(s.opts.TargetTag); target != nil {
		box = target.WorldBounds()
	} else {
		s.logger.Debug("no renderable target, framing at default distance")
	}

	fov := s.opts.FOV
	if fov == 0 {
		fov = s.renderer.Camera().FOV
	}
	return views.ForBounds(box, fov, s.opts.Params)
}

// Capture renders every pose of the current view set and returns the
// encoded frames in pose order. On any failure no frames are returned;
// the camera and controls are restored on every exit path, and one final
// render refreshes the viewport. ctx is checked between poses.
func (s *Session) Capture(ctx context.Context) (frames []Frame, err error) {
	if s.state == Capturing {
		return nil, ErrCaptureInProgress
	}
	s.state = Capturing
	defer func() { s.state = Idle }()
	start := time.Now()

	vs := s.Plan()
	cam := s.renderer.Camera()
	snap := cam.Snapshot()

	var wasEnabled, wasAuto bool
	if s.controls != nil {
		wasEnabled, wasAuto = s.controls.Enabled(), s.controls.AutoRotate()
		s.controls.SetEnabled(false)
		s.controls.SetAutoRotate(false)
	}

	defer func() {
		cam.Restore(snap)
		if s.controls != nil {
			s.controls.SetEnabled(wasEnabled)
			s.controls.SetAutoRotate(wasAuto)
		}
		if _, rerr := s.renderer.Render(); rerr != nil {
			s.logger.Warn("viewport refresh after capture failed", zap.Error(rerr))
		}

		ok := err == nil
		s.metrics.ObserveCapture(ok, time.Since(start))
		if !ok {
			frames = nil
			s.logger.Error("capture failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
			return
		}
		s.logger.Info("capture complete",
			zap.Int("frames", len(frames)),
			zap.Float64("fit_distance", vs.Fit),
			zap.Duration("elapsed", time.Since(start)))
	}()

	frames = make([]Frame, 0, len(vs.Poses))
	for _, pose := range vs.Poses {
		if cerr := ctx.Err(); cerr != nil {
			return nil, &Error{Pose: pose, Err: cerr}
		}
		frame, ferr := s.capturePose(cam, vs, pose)
		if ferr != nil {
			return nil, ferr
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

func (s *Session) capturePose(cam *camera.Camera, vs views.ViewSet, pose views.Pose) (Frame, error) {
	cam.Position = pose.Position(vs.Center)
	cam.Up = pose.Up
	cam.LookAt(vs.Center)
	cam.Update()

	if err := s.settle(); err != nil {
		return Frame{}, &Error{Pose: pose, Kind: ErrRenderTargetUnavailable, Err: err}
	}

	img, err := s.renderer.Render()
	if err == nil && img == nil {
		err = errors.New("renderer returned no image")
	}
	if err != nil {
		return Frame{}, &Error{Pose: pose, Kind: ErrRenderTargetUnavailable, Err: err}
	}

	data, err := encode.Bytes(s.encoder, img)
	if err != nil {
		return Frame{}, &Error{Pose: pose, Kind: ErrEncodeFailed, Err: err}
	}

	s.metrics.ObserveFrame(pose.Regime.String(), len(data))
	s.logger.Debug("pose captured",
		zap.Int("pose", pose.Index+1),
		zap.String("view", pose.View),
		zap.Stringer("regime", pose.Regime),
		zap.Float64("distance", pose.Distance),
		zap.Int("bytes", len(data)))

	return Frame{Pose: pose, MIMEType: s.encoder.MIMEType(), Data: data}, nil
}

func (s *Session) settle() error {
	if f, ok := s.renderer.(Flusher); ok {
		return f.Flush()
	}
	if s.opts.SettleDelay > 0 {
		s.sleep(s.opts.SettleDelay)
	}
	return nil
}
