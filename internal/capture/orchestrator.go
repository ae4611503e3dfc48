package capture

import (
	"context"

	"go.uber.org/zap"

	"mesh-to-cad/internal/camera"
	"mesh-to-cad/internal/encode"
	"mesh-to-cad/internal/scene"
)

// CaptureFunc is the single operation handed to the caller at scene setup.
// It returns all frames in pose order or an error, never a partial set.
type CaptureFunc func(ctx context.Context) ([]Frame, error)

// Viewer is a live renderer together with its controls and scene.
type Viewer interface {
	Renderer
	Controls() *camera.OrbitControls
	Scene() *scene.Scene
}

// Orchestrator is the composition root binding a viewer to a session.
type Orchestrator struct {
	session *Session
}

// NewOrchestrator wires a session to v. Call it once when the scene is set up
// and hand CaptureFunc to whatever decides when captures happen.
func NewOrchestrator(v Viewer, enc encode.Encoder, opts Options, logger *zap.Logger) *Orchestrator {
	var controls Controls
	if c := v.Controls(); c != nil {
		controls = c
	}
	return &Orchestrator{session: NewSession(v, controls, v.Scene(), enc, opts, logger)}
}

// Session exposes the underlying session, e.g. to attach metrics.
func (o *Orchestrator) Session() *Session {
	return o.session
}

// CaptureFunc returns the capture callback.
func (o *Orchestrator) CaptureFunc() CaptureFunc {
	return o.session.Capture
}
