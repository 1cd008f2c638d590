// =============================================================================
// Quote Analyzer - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Quote Analyzer CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   analyzer extract        - Send quote PDFs to the extraction service
//   analyzer edit           - Apply edit operations to a line-item table
//   analyzer process        - Build the price comparison from flat tables
//   analyzer version        - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/quotedesk/quote-analyzer/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
