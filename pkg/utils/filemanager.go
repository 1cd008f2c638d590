// =============================================================================
// Quote Analyzer - File Management Utilities
// =============================================================================
//
// This module handles file system operations for the processing
// pipeline: discovering input tables, archiving processed files, and
// generating output file names.
//
// FILE FLOW:
//   input/ (CSV/XLSX tables) -> processed -> input_archive/
//   output/ (HTML previews, XLSX workbooks, CSV exports)
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles the directories of one pipeline run.
type FileManager struct {
	// InputDir is where flat quote tables are picked up.
	InputDir string

	// OutputDir is where generated artifacts are written.
	OutputDir string

	// InputArchiveDir is where tables are moved after successful
	// processing.
	InputArchiveDir string
}

// NewFileManager creates a file manager for the given directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir string) *FileManager {
	return &FileManager{
		InputDir:        inputDir,
		OutputDir:       outputDir,
		InputArchiveDir: inputArchiveDir,
	}
}

// EnsureDirectories creates any missing managed directories.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{fm.InputDir, fm.OutputDir, fm.InputArchiveDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DiscoverInputTables returns all flat table files (CSV and XLSX) in the
// input directory, sorted by filepath.Walk order.
func (fm *FileManager) DiscoverInputTables() ([]string, error) {
	var files []string

	err := filepath.Walk(fm.InputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv", ".xlsx":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	return files, nil
}

// ArchiveInputFile moves a processed table into the input archive,
// prefixing the name with a timestamp so repeated uploads of the same
// file never collide. Returns the archive path.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if err := os.MkdirAll(fm.InputArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	archivePath := filepath.Join(fm.InputArchiveDir,
		fmt.Sprintf("%s_%s", timestamp, filepath.Base(filePath)))

	// Rename first; fall back to copy+remove for cross-device moves.
	if err := os.Rename(filePath, archivePath); err != nil {
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to archive file: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original after archiving: %w", err)
		}
	}

	return archivePath, nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName expands an output name format. Supported
// placeholders:
//
//	{uuid}      - a random UUID
//	{timestamp} - current timestamp (YYYYMMDD_HHMMSS)
//	{source}    - base name of the source table, without extension
//
// The returned name carries no extension; callers append their own.
func GenerateOutputFileName(format, sourcePath string) string {
	name := format
	name = strings.ReplaceAll(name, "{uuid}", uuid.NewString())
	name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))

	source := filepath.Base(sourcePath)
	source = strings.TrimSuffix(source, filepath.Ext(source))
	name = strings.ReplaceAll(name, "{source}", source)

	return name
}

// =============================================================================
// HELPERS
// =============================================================================

// copyFile copies src to dst, creating or truncating dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// FileExists reports whether a path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
