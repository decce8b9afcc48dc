// Package config loads settings for the region editor from YAML or JSON
// files and environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/tsawler/retext/layout"
	"github.com/tsawler/retext/ocr"
	"github.com/tsawler/retext/render"
)

// EnvPrefix is the default prefix for environment overrides
const EnvPrefix = "RETEXT"

var (
	// ErrInvalidPolicy is returned for an unknown merge policy
	ErrInvalidPolicy = errors.New("invalid merge policy")

	// ErrInvalidThreshold is returned for a non-positive merge threshold
	ErrInvalidThreshold = errors.New("merge threshold must be positive")
)

// Config is the complete configuration
type Config struct {
	Merge  MergeConfig  `yaml:"merge" json:"merge"`
	Render RenderConfig `yaml:"render" json:"render"`
	OCR    OCRConfig    `yaml:"ocr" json:"ocr"`
	Log    LogConfig    `yaml:"log" json:"log"`
}

// MergeConfig selects the region merge policy
type MergeConfig struct {
	Policy    string  `yaml:"policy" json:"policy"`
	Threshold float64 `yaml:"threshold" json:"threshold"`
}

// RenderConfig holds redraw defaults
type RenderConfig struct {
	Thickness int `yaml:"thickness" json:"thickness"`
}

// OCRConfig configures the Tesseract adapter
type OCRConfig struct {
	Language    string  `yaml:"language" json:"language"`
	PageSegMode int     `yaml:"page_seg_mode" json:"page_seg_mode"`
	Whitelist   string  `yaml:"whitelist" json:"whitelist"`
	Scale       float64 `yaml:"scale" json:"scale"`
	Grayscale   bool    `yaml:"grayscale" json:"grayscale"`
}

// LogConfig configures logging
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// Default returns the default configuration
func Default() Config {
	ocrOpts := ocr.DefaultOptions()
	return Config{
		Merge: MergeConfig{
			Policy:    string(layout.DefaultPolicy),
			Threshold: layout.DefaultThreshold,
		},
		Render: RenderConfig{
			Thickness: render.DefaultThickness,
		},
		OCR: OCRConfig{
			Language:    ocrOpts.Language,
			PageSegMode: ocrOpts.PageSegMode,
			Scale:       ocrOpts.Scale,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a configuration file on top of the defaults. The format is
// chosen by extension: .yaml, .yml or .json. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse YAML config file %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse JSON config file %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml, .json)", ext)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from PREFIX_* environment variables
func (c *Config) ApplyEnv(prefix string) error {
	if prefix == "" {
		prefix = EnvPrefix
	}
	get := func(name string) (string, bool) {
		return os.LookupEnv(prefix + "_" + name)
	}

	if v, ok := get("MERGE_POLICY"); ok {
		c.Merge.Policy = v
	}
	if v, ok := get("MERGE_THRESHOLD"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s_MERGE_THRESHOLD %q: %w", prefix, v, err)
		}
		c.Merge.Threshold = f
	}
	if v, ok := get("RENDER_THICKNESS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s_RENDER_THICKNESS %q: %w", prefix, v, err)
		}
		c.Render.Thickness = n
	}
	if v, ok := get("OCR_LANGUAGE"); ok {
		c.OCR.Language = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := get("LOG_FORMAT"); ok {
		c.Log.Format = v
	}

	return nil
}

// Validate checks the configuration for values the pipeline cannot use
func (c Config) Validate() error {
	if _, err := layout.ParsePolicy(c.Merge.Policy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	if !(c.Merge.Threshold > 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, c.Merge.Threshold)
	}
	return nil
}

// MergeConfig converts the merge section to a layout.MergeConfig
func (c Config) MergeConfig() layout.MergeConfig {
	policy, err := layout.ParsePolicy(c.Merge.Policy)
	if err != nil {
		policy = layout.DefaultPolicy
	}
	return layout.MergeConfig{
		Policy:    policy,
		Threshold: c.Merge.Threshold,
	}
}

// OCROptions converts the OCR section to ocr.Options
func (c Config) OCROptions() ocr.Options {
	return ocr.Options{
		Language:    c.OCR.Language,
		PageSegMode: c.OCR.PageSegMode,
		Whitelist:   c.OCR.Whitelist,
		Scale:       c.OCR.Scale,
		Grayscale:   c.OCR.Grayscale,
	}
}
