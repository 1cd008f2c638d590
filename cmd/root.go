// =============================================================================
// Quote Analyzer - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// is the base command that all other commands (extract, edit, process,
// version) are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (analyzer)
//   ├── extractCmd (analyzer extract)
//   ├── editCmd    (analyzer edit)
//   ├── processCmd (analyzer process)
//   └── versionCmd (analyzer version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration file for subcommands
//   3. Enabling verbose logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quotedesk/quote-analyzer/internal/config"
	"github.com/quotedesk/quote-analyzer/internal/logger"
	"github.com/quotedesk/quote-analyzer/pkg/utils"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "analyzer",

	Short: "Quote Analyzer - Review supplier quotes and build price comparisons",

	Long: `Quote Analyzer is a CLI tool for reviewing supplier price-quote tables
and turning them into side-by-side price comparisons.

Key Features:
  - PDF quote extraction via an external extraction service
  - Two-level item/subitem hierarchy with declarative edit operations
  - Per-product supplier comparison with subtotals, tax and totals
  - HTML preview and a formatted XLSX workbook with live formulas
  - Automatic input archival on successful processing

Example Usage:
  analyzer extract --file quote_a.pdf --file quote_b.pdf
  analyzer edit --file input/quotes.csv --ops edits.yaml
  analyzer process                      # Process all tables in the input directory
  analyzer process --tax 15 --dry-run   # Preview with a 15% tax rate`,

	// PersistentPreRun fires before every subcommand.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
	},

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// --config flag: Allows the user to specify a custom configuration
	// file. Default is "config.yaml" in the current directory.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	// --verbose flag: Enables verbose/debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadConfig loads the configuration file named by --config. When the
// file does not exist the built-in defaults apply, so the tool works out
// of the box without a config file.
func loadConfig() (*config.MainConfig, error) {
	if !utils.FileExists(cfgFile) {
		logger.Debug("config file %s not found, using defaults", cfgFile)
		return config.DefaultConfig(), nil
	}
	return config.LoadMainConfig(cfgFile)
}
