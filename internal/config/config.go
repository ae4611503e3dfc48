package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configurable paths and capture settings.
type Config struct {
	// Paths
	InputDir   string `json:"input_dir" yaml:"input_dir"`
	OutputDir  string `json:"output_dir" yaml:"output_dir"`
	MatcapPath string `json:"matcap" yaml:"matcap"`

	// Render settings
	RenderSize  int      `json:"render_size" yaml:"render_size"`
	Supersample int      `json:"supersample" yaml:"supersample"`
	FOV         float64  `json:"fov" yaml:"fov"`
	Background  [3]uint8 `json:"background" yaml:"background"`
	ZUp         bool     `json:"z_up" yaml:"z_up"`

	// Capture settings
	StandardMargin float64  `json:"standard_margin" yaml:"standard_margin"`
	DetailZoom     float64  `json:"detail_zoom" yaml:"detail_zoom"`
	SettleDelay    Duration `json:"settle_delay" yaml:"settle_delay"`
	TargetTag      string   `json:"target_tag" yaml:"target_tag"`

	// Output
	Format      string `json:"format" yaml:"format"`
	JPEGQuality int    `json:"jpeg_quality" yaml:"jpeg_quality"`
	Workers     int    `json:"workers" yaml:"workers"`
	MetricsFile string `json:"metrics_file" yaml:"metrics_file"`
}

// Duration is a time.Duration read from strings such as "50ms".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	v, err := time.ParseDuration(n.Value)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Load reads a JSON or YAML (by extension) config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Quality > 0 {
		c.JPEGQuality = flags.Quality
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Matcap != "" {
		c.MatcapPath = flags.Matcap
	}
	if flags.MetricsFile != "" {
		c.MetricsFile = flags.MetricsFile
	}
	if flags.ZUp {
		c.ZUp = true
	}

	if c.OutputDir == "" {
		base := c.InputDir
		if base == "" {
			base, _ = os.Getwd()
		}
		c.OutputDir = filepath.Join(base, "views")
	}

	// Defaults for render settings
	if c.RenderSize <= 0 {
		c.RenderSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		c.FOV = 40
	}
	if c.Background == ([3]uint8{}) {
		c.Background = [3]uint8{242, 242, 245}
	}
	if c.StandardMargin <= 0 {
		c.StandardMargin = 1.6
	}
	if c.DetailZoom <= 0 {
		c.DetailZoom = 0.55
	}
	if c.SettleDelay < 0 {
		c.SettleDelay = 0
	}
	if c.TargetTag == "" {
		c.TargetTag = "capture-target"
	}
	if c.Format == "" {
		c.Format = "jpeg"
	}
	if c.JPEGQuality <= 0 || c.JPEGQuality > 100 {
		c.JPEGQuality = 92
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputDir    string
	OutputDir   string
	Format      string
	Quality     int
	Size        int
	Workers     int
	Matcap      string
	MetricsFile string
	ZUp         bool
}
