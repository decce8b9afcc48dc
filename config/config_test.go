package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/retext/layout"
	"github.com/tsawler/retext/ocr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "centroid", cfg.Merge.Policy)
	assert.Equal(t, 10.0, cfg.Merge.Threshold)
	assert.Equal(t, 2, cfg.Render.Thickness)
	assert.Equal(t, "eng", cfg.OCR.Language)
	assert.Equal(t, ocr.PSMAuto, cfg.OCR.PageSegMode)
	assert.Equal(t, layout.MergeConfig{Policy: layout.PolicyCentroid, Threshold: 10}, cfg.MergeConfig())
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "retext.yaml", `
merge:
  policy: alignment
  threshold: 14
render:
  thickness: 3
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "alignment", cfg.Merge.Policy)
	assert.Equal(t, 14.0, cfg.Merge.Threshold)
	assert.Equal(t, 3, cfg.Render.Thickness)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	// untouched sections keep their defaults
	assert.Equal(t, "eng", cfg.OCR.Language)
	assert.Equal(t, layout.PolicyAlignment, cfg.MergeConfig().Policy)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "retext.json", `{"merge": {"policy": "centroid", "threshold": 6}, "ocr": {"language": "deu", "scale": 2, "grayscale": true}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6.0, cfg.Merge.Threshold)

	opts := cfg.OCROptions()
	assert.Equal(t, "deu", opts.Language)
	assert.Equal(t, 2.0, opts.Scale)
	assert.True(t, opts.Grayscale)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "retext.toml", "merge = 1"))
	assert.ErrorContains(t, err, "unsupported config file format")

	_, err = Load(writeFile(t, "bad.yaml", "merge: [unterminated"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Merge.Policy = "kmeans"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidPolicy)

	cfg = Default()
	cfg.Merge.Threshold = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidThreshold)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("RETEXT_MERGE_POLICY", "alignment")
	t.Setenv("RETEXT_MERGE_THRESHOLD", "7.5")
	t.Setenv("RETEXT_RENDER_THICKNESS", "4")
	t.Setenv("RETEXT_LOG_LEVEL", "warn")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(""))

	assert.Equal(t, "alignment", cfg.Merge.Policy)
	assert.Equal(t, 7.5, cfg.Merge.Threshold)
	assert.Equal(t, 4, cfg.Render.Thickness)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestApplyEnv_InvalidNumber(t *testing.T) {
	t.Setenv("APP_MERGE_THRESHOLD", "ten")

	cfg := Default()
	assert.Error(t, cfg.ApplyEnv("APP"))
}
