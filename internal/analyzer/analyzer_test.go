package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotedesk/quote-analyzer/internal/config"
)

// testConfig builds a config rooted in a temp directory tree.
func testConfig(t *testing.T) *config.MainConfig {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.MainConfig{
		InputDir:         filepath.Join(dir, "input"),
		OutputDir:        filepath.Join(dir, "output"),
		InputArchiveDir:  filepath.Join(dir, "archive"),
		TaxPercent:       10,
		OutputNameFormat: "analysis_{source}",
	}
	config.ApplyDefaults(cfg)
	for _, d := range []string{cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir} {
		require.NoError(t, os.MkdirAll(d, 0o755))
	}
	return cfg
}

// writeInputTable drops a sample table into the config's input dir.
func writeInputTable(t *testing.T, cfg *config.MainConfig) string {
	t.Helper()
	path := filepath.Join(cfg.InputDir, "quotes.csv")
	data := "type,supplier,brand,code,description,Power Type,price\n" +
		"item,SupplierA,Acme,PX-100,Planetary mixer,220V,100\n" +
		"subitem,SupplierA,,PX-100,Stainless bowl,,20\n" +
		"item,SupplierB,Acme,PX-100,Planetary mixer,220V,90\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

// quietLogger swallows pipeline logs during tests.
type quietLogger struct{}

func (quietLogger) Debug(string, ...any) {}
func (quietLogger) Info(string, ...any)  {}
func (quietLogger) Warn(string, ...any)  {}
func (quietLogger) Error(string, ...any) {}

func TestAnalyzer_Run(t *testing.T) {
	cfg := testConfig(t)
	table := writeInputTable(t, cfg)

	a := New(table, cfg, -1, false)
	a.SetLogger(quietLogger{})
	result := a.Run()

	require.True(t, result.Success, "run failed: %v", result.Error)
	assert.Equal(t, 3, result.Stats.RowsRead)
	assert.Equal(t, 2, result.Stats.Items)
	assert.Equal(t, 1, result.Stats.Subitems)
	assert.Equal(t, 1, result.Stats.Groups)

	// All three artifacts exist with the configured base name.
	assert.FileExists(t, result.OutputHTML)
	assert.FileExists(t, result.OutputXLSX)
	assert.FileExists(t, result.OutputCSV)
	assert.Equal(t, "analysis_quotes.html", filepath.Base(result.OutputHTML))

	// The input was archived out of the input directory.
	assert.NoFileExists(t, table)
	archived, err := os.ReadDir(cfg.InputArchiveDir)
	require.NoError(t, err)
	assert.Len(t, archived, 1)
}

func TestAnalyzer_Run_DryRun(t *testing.T) {
	cfg := testConfig(t)
	table := writeInputTable(t, cfg)

	a := New(table, cfg, -1, true)
	a.SetLogger(quietLogger{})
	result := a.Run()

	require.True(t, result.Success)
	assert.Empty(t, result.OutputHTML)
	assert.Empty(t, result.OutputXLSX)
	assert.Empty(t, result.OutputCSV)

	// Nothing written, nothing archived.
	out, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.FileExists(t, table)
}

func TestAnalyzer_Run_MissingFile(t *testing.T) {
	cfg := testConfig(t)

	a := New(filepath.Join(cfg.InputDir, "missing.csv"), cfg, -1, false)
	a.SetLogger(quietLogger{})
	result := a.Run()

	assert.False(t, result.Success)
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "failed to read table")
}

func TestAnalyzer_Run_TaxOverride(t *testing.T) {
	cfg := testConfig(t)
	table := writeInputTable(t, cfg)

	// Config says 10 but the caller overrides with 0.
	a := New(table, cfg, 0, true)
	a.SetLogger(quietLogger{})
	assert.Equal(t, 0.0, a.taxPercent)

	// Negative means "use the config".
	b := New(table, cfg, -1, true)
	assert.Equal(t, 10.0, b.taxPercent)
}

func TestAnalyzer_Run_EmptyTable(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(cfg.InputDir, "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	a := New(path, cfg, -1, false)
	a.SetLogger(quietLogger{})
	result := a.Run()

	assert.False(t, result.Success)
}
