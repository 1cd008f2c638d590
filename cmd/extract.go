// =============================================================================
// Quote Analyzer - Extract Command
// =============================================================================
//
// This file defines the 'extract' command, which sends quote PDFs to the
// external extraction service and stores the returned flat CSV table in
// the input directory, ready for editing and processing.
//
// COMMAND USAGE:
//   analyzer extract --file quote_a.pdf --file quote_b.pdf [flags]
//
// FLAGS:
//   --file    : A PDF to extract; repeat for multiple files (required)
//   --output  : Target CSV path (default: <input_dir>/quotes_raw_<ts>.csv)
//
// The extraction call is a single blocking round trip with the
// configured timeout. On any failure nothing is written: the previous
// input state is preserved unchanged and the command must be re-run.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/quotedesk/quote-analyzer/internal/extract"
	"github.com/quotedesk/quote-analyzer/internal/logger"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// pdfPaths are the PDF files to send to the extraction service.
var pdfPaths []string

// extractOutput is the target path of the extracted CSV.
var extractOutput string

// =============================================================================
// EXTRACT COMMAND DEFINITION
// =============================================================================

// extractCmd represents the 'extract' command.
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Send quote PDFs to the extraction service",
	Long: `The extract command uploads one or more quote PDFs to the configured
extraction service and writes the returned flat CSV table into the input
directory. The CSV is stored byte-for-byte as returned, so the raw
extraction output stays available even after editing.

The extraction service endpoint and timeout are set in the configuration
file under "extraction".`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the extract command and its flags.
func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringArrayVar(
		&pdfPaths,
		"file",
		nil,
		"PDF file to extract (repeat for multiple files)",
	)
	extractCmd.MarkFlagRequired("file")

	extractCmd.Flags().StringVar(
		&extractOutput,
		"output",
		"",
		"Target CSV path (default: <input_dir>/quotes_raw_<timestamp>.csv)",
	)
}

// =============================================================================
// MAIN EXTRACTION FUNCTION
// =============================================================================

// runExtract uploads the PDFs and stores the returned CSV.
func runExtract() error {
	mainConfig, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if mainConfig.Extraction.URL == "" {
		return fmt.Errorf("extraction service URL is not configured (set extraction.url)")
	}

	// Read the PDFs up front so a missing file fails before the upload.
	files := make([]extract.File, 0, len(pdfPaths))
	for _, path := range pdfPaths {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		files = append(files, extract.File{
			Name:    filepath.Base(path),
			Content: content,
		})
	}

	timeout := time.Duration(mainConfig.Extraction.TimeoutSeconds) * time.Second
	client := extract.NewClient(mainConfig.Extraction.URL, timeout)

	fmt.Printf("Sending %d PDF(s) to the extraction service...\n", len(files))
	logger.Debug("extraction endpoint: %s, timeout: %s", mainConfig.Extraction.URL, timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	csvBytes, err := client.Extract(ctx, files)
	if err != nil {
		// Nothing is written on failure; prior state is untouched.
		return fmt.Errorf("extraction failed: %w", err)
	}

	outputPath := extractOutput
	if outputPath == "" {
		if err := os.MkdirAll(mainConfig.InputDir, 0755); err != nil {
			return fmt.Errorf("failed to create input directory: %w", err)
		}
		outputPath = filepath.Join(mainConfig.InputDir,
			fmt.Sprintf("quotes_raw_%s.csv", time.Now().Format("20060102_150405")))
	}

	if err := os.WriteFile(outputPath, csvBytes, 0644); err != nil {
		return fmt.Errorf("failed to write extracted CSV: %w", err)
	}

	fmt.Printf("CSV generated from %d PDF(s): %s\n", len(files), outputPath)
	return nil
}
