package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"mesh-to-cad/internal/batch"
	"mesh-to-cad/internal/capture"
	"mesh-to-cad/internal/config"
	"mesh-to-cad/internal/encode"
	"mesh-to-cad/internal/metrics"
	"mesh-to-cad/internal/texture"
	"mesh-to-cad/internal/views"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json or config.yaml")
	testN := flag.Int("test", 0, "Capture only the first N meshes for testing")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	inputDir := flag.String("input", "", "Directory scanned for .stl/.gltf/.glb meshes")
	outputDir := flag.String("output", "", "Output directory (default: <input>/views)")
	format := flag.String("format", "", "Frame format: jpeg, png or webp (default: jpeg)")
	quality := flag.Int("quality", 0, "JPEG quality 1-100 (default: 92)")
	size := flag.Int("size", 0, "Frame width and height in pixels (default: 512)")
	matcap := flag.String("matcap", "", "Optional matcap image (png, jpg or tga)")
	metricsFile := flag.String("metrics-file", "", "Write Prometheus text metrics here when done")
	zUp := flag.Bool("z-up", false, "Treat meshes as Z-up (CAD convention)")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		InputDir:    *inputDir,
		OutputDir:   *outputDir,
		Format:      *format,
		Quality:     *quality,
		Size:        *size,
		Workers:     *workers,
		Matcap:      *matcap,
		MetricsFile: *metricsFile,
		ZUp:         *zUp,
	})

	paths, err := collectMeshes(cfg.InputDir, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning meshes: %v\n", err)
		os.Exit(1)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(paths) {
		paths = paths[:*testN]
	}

	if len(paths) == 0 {
		fmt.Println("No meshes to capture. Pass files as arguments or use -input.")
		os.Exit(0)
	}

	enc, err := encode.ForFormat(cfg.Format, cfg.JPEGQuality)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	collector := metrics.NewCollector("meshcad", logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Multi-view capture → %s (%d frames per mesh)\n", strings.ToUpper(cfg.Format), views.PoseCount)
	fmt.Printf("Meshes: %d, Workers: %d\n", len(paths), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		Encoder:     enc,
		Textures:    texture.NewCache(),
		MatcapPath:  cfg.MatcapPath,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		FOV:         cfg.FOV,
		Background:  cfg.Background,
		ZUp:         cfg.ZUp,
		Capture: capture.Options{
			FOV: cfg.FOV,
			Params: views.Params{
				StandardMargin: cfg.StandardMargin,
				DetailZoom:     cfg.DetailZoom,
			},
			TargetTag:   cfg.TargetTag,
			SettleDelay: time.Duration(cfg.SettleDelay),
		},
		Workers: cfg.Workers,
		Logger:  logger,
		Metrics: collector,
	}

	results := batch.Run(ctx, batchCfg, paths)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	frames := 0
	for _, r := range results {
		if r.Success {
			success++
			frames += r.Frames
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Captured: %d/%d meshes, %d frames\n", success, len(paths), frames)

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if cfg.MetricsFile != "" {
		if err := collector.WriteTextfile(cfg.MetricsFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: metrics write failed: %v\n", err)
		} else {
			fmt.Printf("Metrics: %s\n", cfg.MetricsFile)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

var meshExts = map[string]bool{".stl": true, ".gltf": true, ".glb": true}

// collectMeshes returns the explicit arguments when given, otherwise every
// mesh file directly inside dir, sorted by name.
func collectMeshes(dir string, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !meshExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
