package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds paths and render settings for a batch run.
type Config struct {
	// Paths
	SceneDir   string `json:"scene_dir" yaml:"scene_dir"`
	TextureDir string `json:"texture_dir" yaml:"texture_dir"`
	OutputDir  string `json:"output_dir" yaml:"output_dir"`

	// Render settings
	Width       int  `json:"width" yaml:"width"`
	Height      int  `json:"height" yaml:"height"`
	Supersample int  `json:"supersample" yaml:"supersample"`
	Workers     int  `json:"workers" yaml:"workers"`
	NoToneMap   bool `json:"no_tonemap" yaml:"no_tonemap"`
}

// Load reads a JSON or YAML config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	var cfg Config
	if err := decodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// decodeFile picks the decoder by extension: .yaml/.yml use YAML,
// everything else JSON.
func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.SceneDir != "" {
		c.SceneDir = flags.SceneDir
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Size > 0 {
		c.Width, c.Height = flags.Size, flags.Size
	}

	if c.SceneDir == "" {
		c.SceneDir = "."
	}
	// Resolve relative paths against the scene dir
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.SceneDir, "renders")
	} else if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.SceneDir, c.OutputDir)
	}
	if c.TextureDir != "" && !filepath.IsAbs(c.TextureDir) {
		c.TextureDir = filepath.Join(c.SceneDir, c.TextureDir)
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 256
	}
	if c.Height <= 0 {
		c.Height = c.Width
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	SceneDir   string
	TextureDir string
	OutputDir  string
	Workers    int
	Size       int
}
