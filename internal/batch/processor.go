package batch

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"mesh-to-cad/internal/capture"
	"mesh-to-cad/internal/encode"
	"mesh-to-cad/internal/mesh"
	"mesh-to-cad/internal/metrics"
	"mesh-to-cad/internal/raster"
	"mesh-to-cad/internal/scene"
	"mesh-to-cad/internal/texture"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Encoder     encode.Encoder
	Textures    texture.Resolver
	MatcapPath  string
	RenderSize  int
	Supersample int
	FOV         float64
	Background  [3]uint8
	ZUp         bool
	Capture     capture.Options
	Workers     int
	Logger      *zap.Logger
	Metrics     *metrics.Collector
}

// Result holds the outcome of processing one mesh.
type Result struct {
	Name     string
	Source   string
	ViewsDir string
	Frames   int
	Success  bool
	Error    string
}

// Run captures every mesh using a worker pool. Each worker builds its own
// scene and renderer, so no renderer is ever shared between goroutines.
func Run(ctx context.Context, cfg Config, paths []string) []Result {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	total := len(paths)
	results := make([]Result, total)
	names := outputNames(paths)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.2f meshes/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	itemChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range itemChan {
				results[idx] = processMesh(ctx, cfg, paths[idx], names[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range paths {
		itemChan <- i
	}
	close(itemChan)

	wg.Wait()
	close(done)

	return results
}

// processMesh captures one mesh into OutputDir/name.
func processMesh(ctx context.Context, cfg Config, path, name string) Result {
	res := Result{Source: path, Name: name}
	fail := func(err error) Result {
		res.Error = err.Error()
		cfg.Logger.Warn("mesh failed", zap.String("mesh", path), zap.Error(err))
		return res
	}

	m, err := mesh.Load(path)
	if err != nil {
		return fail(err)
	}
	bounds := mesh.Normalize(m, cfg.ZUp)

	var matcap *image.NRGBA
	if cfg.Textures != nil && cfg.MatcapPath != "" {
		matcap, err = cfg.Textures.Resolve(cfg.MatcapPath)
		if err != nil {
			return fail(err)
		}
	}

	sc := scene.New()
	if cfg.Background != ([3]uint8{}) {
		sc.Background = cfg.Background
	}
	sc.Add(&scene.Object{Name: m.Name, Tags: []string{cfg.Capture.TargetTag}, Mesh: m})

	r := raster.NewRenderer(sc, raster.Options{
		Width:       cfg.RenderSize,
		Height:      cfg.RenderSize,
		Supersample: cfg.Supersample,
		FOV:         cfg.FOV,
		Matcap:      matcap,
	})

	orch := capture.NewOrchestrator(r, cfg.Encoder, cfg.Capture, cfg.Logger.With(zap.String("mesh", m.Name)))
	orch.Session().WithMetrics(cfg.Metrics)
	plan := orch.Session().Plan()

	frames, err := orch.CaptureFunc()(ctx)
	if err != nil {
		return fail(err)
	}

	dir := filepath.Join(cfg.OutputDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fail(err)
	}

	files := make([]string, len(frames))
	for i, f := range frames {
		files[i] = f.Pose.Slug() + extFor(cfg.Encoder)
		if err := os.WriteFile(filepath.Join(dir, files[i]), f.Data, 0644); err != nil {
			return fail(fmt.Errorf("write frame %d: %w", i+1, err))
		}
	}

	vm := newViewManifest(name, plan.Center, bounds.Size(), plan.Fit, frames, files)
	if err := writeJSON(filepath.Join(dir, "views.json"), vm); err != nil {
		return fail(err)
	}

	res.ViewsDir = dir
	res.Frames = len(frames)
	res.Success = true
	return res
}

func extFor(e encode.Encoder) string {
	if e == nil {
		return encode.JPEG{}.Ext()
	}
	return e.Ext()
}

// outputNames assigns each input a distinct output directory name. Inputs
// sharing a base name get -2, -3, ... suffixes in input order.
func outputNames(paths []string) []string {
	names := make([]string, len(paths))
	used := make(map[string]bool, len(paths))
	for i, p := range paths {
		base := stem(p)
		name := base
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s-%d", base, n)
		}
		used[name] = true
		names[i] = name
	}
	return names
}

func stem(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
