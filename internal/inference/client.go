// Package inference defines what the generative model collaborator receives
// and returns, and the glue that feeds it a capture.
package inference

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"mesh-to-cad/internal/capture"
)

// ErrEmptyScript is returned when the model answers without a script.
var ErrEmptyScript = errors.New("inference: empty script")

// Image is one encoded frame with its positional label.
type Image struct {
	Label    string
	MIMEType string
	Data     []byte
}

// Request is a batch of labelled frames plus free-text context.
type Request struct {
	Images  []Image
	Context string
}

// Result is the generated modeling script and its explanation.
type Result struct {
	Script      string
	Explanation string
}

// Client sends a request to a multimodal model. Implementations own the
// transport and prompt.
type Client interface {
	Analyze(ctx context.Context, req Request) (Result, error)
}

// FrameLabels returns "frame N: view (regime)" labels in capture order.
func FrameLabels(frames []capture.Frame) []string {
	out := make([]string, len(frames))
	for i, f := range frames {
		out[i] = fmt.Sprintf("frame %d: %s", i+1, f.Pose.Label())
	}
	return out
}

// NewRequest pairs frames with their labels.
func NewRequest(frames []capture.Frame, userContext string) Request {
	labels := FrameLabels(frames)
	req := Request{Images: make([]Image, len(frames)), Context: strings.TrimSpace(userContext)}
	for i, f := range frames {
		req.Images[i] = Image{Label: labels[i], MIMEType: f.MIMEType, Data: f.Data}
	}
	return req
}

// Reconstruct runs one capture and sends the frames to client.
func Reconstruct(ctx context.Context, captureFn capture.CaptureFunc, client Client, userContext string, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	frames, err := captureFn(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("inference: capture: %w", err)
	}

	logger.Info("sending views for analysis", zap.Int("frames", len(frames)))
	res, err := client.Analyze(ctx, NewRequest(frames, userContext))
	if err != nil {
		return Result{}, fmt.Errorf("inference: analyze: %w", err)
	}
	if strings.TrimSpace(res.Script) == "" {
		return Result{}, ErrEmptyScript
	}
	return res, nil
}
