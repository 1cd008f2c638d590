// =============================================================================
// Quote Analyzer - Process Command
// =============================================================================
//
// This file defines the 'process' command, which turns flat quote tables
// into price-comparison artifacts.
//
// COMMAND USAGE:
//   analyzer process [flags]
//
// FLAGS:
//   --dry-run  : Run the pipeline without writing output files
//   --single   : Process only a single file (specify with --file)
//   --file     : Path to a specific table to process (used with --single)
//   --tax      : Tax percentage override (defaults to the configured value)
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Discover table files in the input directory
//   3. For each file: build hierarchy -> validate -> flatten -> compare
//      -> write HTML preview + XLSX workbook + flat CSV export
//   4. Archive processed files
//   5. Print a summary report
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/quotedesk/quote-analyzer/internal/analyzer"
	"github.com/quotedesk/quote-analyzer/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun runs the pipeline without writing output files.
var dryRun bool

// singleFile indicates whether to process only a single file.
var singleFile bool

// processFilePath is the path to a specific file to process.
var processFilePath string

// taxOverride is the tax percentage override. Negative means "use the
// configured default".
var taxOverride float64

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process flat quote tables into price comparisons",
	Long: `The process command scans the input directory for quote tables (CSV or
XLSX), builds the item/subitem hierarchy for each, and renders the
supplier price comparison as an HTML preview and a formatted XLSX
workbook with live formulas.

On successful processing:
  - The generated artifacts are placed in the output directory
  - The original table is moved to the input archive
  - A summary report is printed

On error:
  - The original table remains in the input directory
  - Processing continues for other files`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the process command and its flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Run the pipeline without writing output files",
	)

	processCmd.Flags().BoolVar(
		&singleFile,
		"single",
		false,
		"Process only a single file (use with --file)",
	)

	processCmd.Flags().StringVar(
		&processFilePath,
		"file",
		"",
		"Path to a specific table to process (used with --single)",
	)

	processCmd.Flags().Float64Var(
		&taxOverride,
		"tax",
		-1,
		"Tax percentage override (defaults to the configured value)",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates the comparison pipeline.
func runProcess() error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	fmt.Println("=== Quote Analyzer ===")

	mainConfig, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fm := utils.NewFileManager(mainConfig.InputDir, mainConfig.OutputDir,
		mainConfig.InputArchiveDir)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	var inputFiles []string
	if singleFile {
		if processFilePath == "" {
			return fmt.Errorf("--single requires --file")
		}
		inputFiles = []string{processFilePath}
	} else {
		inputFiles, err = fm.DiscoverInputTables()
		if err != nil {
			return err
		}
	}

	if len(inputFiles) == 0 {
		fmt.Println("No quote tables found in the input directory.")
		return nil
	}

	fmt.Printf("Found %d table(s) to process\n", len(inputFiles))

	// =========================================================================
	// STEP 3: PROCESS FILES
	// =========================================================================
	// One user action maps to one full pipeline run per file; files are
	// processed to completion one at a time.

	var successCount, errorCount int

	for _, file := range inputFiles {
		a := analyzer.New(file, mainConfig, taxOverride, dryRun)
		result := a.Run()

		if result.Success {
			successCount++
			fmt.Printf("  ✓ %s: %d row(s), %d group(s)",
				filepath.Base(result.FilePath),
				result.Stats.RowsRead, result.Stats.Groups)
			if result.OutputXLSX != "" {
				fmt.Printf(" -> %s", filepath.Base(result.OutputXLSX))
			}
			fmt.Println()
		} else {
			errorCount++
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(result.FilePath), result.Error)
		}
	}

	// =========================================================================
	// STEP 4: PRINT SUMMARY
	// =========================================================================

	elapsed := time.Since(startTime)
	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:     %d\n", len(inputFiles))
	fmt.Printf("Successful:      %d\n", successCount)
	fmt.Printf("Errors:          %d\n", errorCount)
	fmt.Printf("Time elapsed:    %s\n", elapsed)

	return nil
}
