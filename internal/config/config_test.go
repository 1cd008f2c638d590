package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMainConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `input_dir: ` + filepath.Join(dir, "in") + `
output_dir: ` + filepath.Join(dir, "out") + `
input_archive_dir: ` + filepath.Join(dir, "archive") + `
tax_percent: 7.5
extraction:
  url: https://example.com/webhook
  timeout_seconds: 120
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7.5, cfg.TaxPercent)
	assert.Equal(t, "https://example.com/webhook", cfg.Extraction.URL)
	assert.Equal(t, 120, cfg.Extraction.TimeoutSeconds)
	assert.Equal(t, "debug", cfg.LogLevel)

	// Unset values still pick up defaults.
	assert.Equal(t, "price_analysis_{timestamp}_{uuid}", cfg.OutputNameFormat)

	// Directories were created on load.
	assert.DirExists(t, cfg.InputDir)
	assert.DirExists(t, cfg.OutputDir)
	assert.DirExists(t, cfg.InputArchiveDir)
}

func TestLoadMainConfig_MissingFile(t *testing.T) {
	_, err := LoadMainConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadMainConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input_dir: [whoops"), 0o644))

	_, err := LoadMainConfig(path)
	require.Error(t, err)
}

func TestLoadMainConfig_ZeroTaxIsKept(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "input_dir: " + filepath.Join(dir, "in") + "\n" +
		"output_dir: " + filepath.Join(dir, "out") + "\n" +
		"input_archive_dir: " + filepath.Join(dir, "archive") + "\n" +
		"tax_percent: 0\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	// Zero is a legal tax rate; it must not fall back to the default.
	assert.Equal(t, 0.0, cfg.TaxPercent)
}

func TestLoadMainConfig_AbsentTaxUsesDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "input_dir: " + filepath.Join(dir, "in") + "\n" +
		"output_dir: " + filepath.Join(dir, "out") + "\n" +
		"input_archive_dir: " + filepath.Join(dir, "archive") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 12.0, cfg.TaxPercent)
}

func TestLoadMainConfig_NegativeTax(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "input_dir: " + filepath.Join(dir, "in") + "\n" +
		"output_dir: " + filepath.Join(dir, "out") + "\n" +
		"input_archive_dir: " + filepath.Join(dir, "archive") + "\n" +
		"tax_percent: -3\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := LoadMainConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tax_percent")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "./input_archive", cfg.InputArchiveDir)
	assert.Equal(t, 12.0, cfg.TaxPercent)
	assert.Equal(t, 600, cfg.Extraction.TimeoutSeconds)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := MainConfig{
		InputDir:   "/data/in",
		TaxPercent: 5,
	}
	ApplyDefaults(&cfg)

	assert.Equal(t, "/data/in", cfg.InputDir)
	assert.Equal(t, 5.0, cfg.TaxPercent)
	assert.Equal(t, "./output", cfg.OutputDir)
}
