package capture

import (
	"errors"
	"fmt"

	"mesh-to-cad/internal/mesh"
	"mesh-to-cad/internal/views"
)

// Error kinds a caller can branch on with errors.Is.
var (
	// ErrRenderTargetUnavailable means the renderer produced no frame.
	ErrRenderTargetUnavailable = errors.New("render target unavailable")
	// ErrEncodeFailed means a rendered frame could not be compressed.
	ErrEncodeFailed = errors.New("encode failed")
	// ErrMeshNotReady means the mesh provider had nothing to frame.
	ErrMeshNotReady = mesh.ErrMeshNotReady
	// ErrCaptureInProgress rejects a capture started while one is running.
	ErrCaptureInProgress = errors.New("capture already in progress")
)

// Error reports the pose at which a capture aborted.
type Error struct {
	Pose views.Pose
	Kind error // one of the Err* kinds, or nil for cancellation
	Err  error
}

func (e *Error) Error() string {
	if e.Kind == nil {
		return fmt.Sprintf("capture: pose %d %s: %v", e.Pose.Index+1, e.Pose.Label(), e.Err)
	}
	return fmt.Sprintf("capture: pose %d %s: %v: %v", e.Pose.Index+1, e.Pose.Label(), e.Kind, e.Err)
}

// Unwrap exposes both the kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Kind == nil {
		return []error{e.Err}
	}
	return []error{e.Kind, e.Err}
}
