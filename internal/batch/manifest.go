package batch

import (
	"encoding/json"
	"os"

	"mesh-to-cad/internal/capture"
	"mesh-to-cad/internal/mathutil"
)

// ManifestEntry represents one mesh in the top-level manifest.
type ManifestEntry struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Views  string `json:"views,omitempty"`
	Frames int    `json:"frames"`
	Error  string `json:"error,omitempty"`
}

// FrameEntry describes one frame of a mesh's view manifest. Index is the
// frame's 1-based position, which is how downstream consumers label it.
type FrameEntry struct {
	Index    int           `json:"index"`
	View     string        `json:"view"`
	Regime   string        `json:"regime"`
	File     string        `json:"file"`
	MIMEType string        `json:"mime_type"`
	Position mathutil.Vec3 `json:"position"`
	Up       mathutil.Vec3 `json:"up"`
	Distance float64       `json:"distance"`
}

// ViewManifest is written next to a mesh's frames.
type ViewManifest struct {
	Name        string        `json:"name"`
	Center      mathutil.Vec3 `json:"center"`
	Size        mathutil.Vec3 `json:"size"`
	FitDistance float64       `json:"fit_distance"`
	Frames      []FrameEntry  `json:"frames"`
}

func newViewManifest(name string, center, size mathutil.Vec3, fit float64, frames []capture.Frame, files []string) ViewManifest {
	m := ViewManifest{Name: name, Center: center, Size: size, FitDistance: fit}
	m.Frames = make([]FrameEntry, len(frames))
	for i, f := range frames {
		m.Frames[i] = FrameEntry{
			Index:    f.Pose.Index + 1,
			View:     f.Pose.View,
			Regime:   f.Pose.Regime.String(),
			File:     files[i],
			MIMEType: f.MIMEType,
			Position: f.Pose.Position(center),
			Up:       f.Pose.Up,
			Distance: f.Pose.Distance,
		}
	}
	return m
}

// WriteManifest writes manifest.json summarising a batch run.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Name:   r.Name,
			Source: r.Source,
			Views:  r.ViewsDir,
			Frames: r.Frames,
			Error:  r.Error,
		}
	}
	return writeJSON(path, entries)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
