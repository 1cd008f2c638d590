package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *FileManager {
	t.Helper()
	dir := t.TempDir()
	fm := NewFileManager(
		filepath.Join(dir, "input"),
		filepath.Join(dir, "output"),
		filepath.Join(dir, "archive"),
	)
	require.NoError(t, fm.EnsureDirectories())
	return fm
}

func TestEnsureDirectories(t *testing.T) {
	fm := newTestManager(t)
	assert.DirExists(t, fm.InputDir)
	assert.DirExists(t, fm.OutputDir)
	assert.DirExists(t, fm.InputArchiveDir)

	// Idempotent.
	require.NoError(t, fm.EnsureDirectories())
}

func TestDiscoverInputTables(t *testing.T) {
	fm := newTestManager(t)

	for _, name := range []string{"quotes.csv", "quotes.XLSX", "notes.txt", "scan.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(fm.InputDir, name), []byte("x"), 0o644))
	}

	files, err := fm.DiscoverInputTables()
	require.NoError(t, err)
	require.Len(t, files, 2)

	names := []string{filepath.Base(files[0]), filepath.Base(files[1])}
	assert.Contains(t, names, "quotes.csv")
	assert.Contains(t, names, "quotes.XLSX")
}

func TestDiscoverInputTables_EmptyDir(t *testing.T) {
	fm := newTestManager(t)

	files, err := fm.DiscoverInputTables()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestArchiveInputFile(t *testing.T) {
	fm := newTestManager(t)

	src := filepath.Join(fm.InputDir, "quotes.csv")
	require.NoError(t, os.WriteFile(src, []byte("type,supplier\n"), 0o644))

	archived, err := fm.ArchiveInputFile(src)
	require.NoError(t, err)

	// Original gone, archive present with the timestamp prefix.
	assert.False(t, FileExists(src))
	assert.True(t, FileExists(archived))
	assert.True(t, strings.HasSuffix(archived, "_quotes.csv"))
	assert.Equal(t, fm.InputArchiveDir, filepath.Dir(archived))

	data, err := os.ReadFile(archived)
	require.NoError(t, err)
	assert.Equal(t, "type,supplier\n", string(data))
}

func TestGenerateOutputFileName(t *testing.T) {
	name := GenerateOutputFileName("price_analysis_{timestamp}_{uuid}", "/data/in/quotes.csv")

	re := regexp.MustCompile(`^price_analysis_\d{8}_\d{6}_[0-9a-f-]{36}$`)
	assert.Regexp(t, re, name)
}

func TestGenerateOutputFileName_Source(t *testing.T) {
	name := GenerateOutputFileName("{source}_report", "/data/in/april_quotes.xlsx")
	assert.Equal(t, "april_quotes_report", name)
}

func TestGenerateOutputFileName_NoPlaceholders(t *testing.T) {
	assert.Equal(t, "fixed_name", GenerateOutputFileName("fixed_name", "anything.csv"))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")

	assert.False(t, FileExists(path))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	assert.True(t, FileExists(path))
}
