// =============================================================================
// Quote Analyzer - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. All settings live in a single YAML file (config.yaml by
// default, overridable with the --config flag).
//
// ARCHITECTURE:
//   The configuration system is designed to be:
//   - Minimal: one file, flat sections
//   - Forgiving: every setting has a sensible default
//   - Validated: required directories are created on load
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
// This is loaded from the main config.yaml file.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the directory where flat quote tables (CSV/XLSX) are
	// placed, either by the extract command or manually.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where generated comparison artifacts
	// (HTML previews, XLSX workbooks, flat CSV exports) are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir is the directory where processed tables are moved.
	// Files are only moved here after successful processing.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// =========================================================================
	// ANALYSIS SETTINGS
	// =========================================================================

	// TaxPercent is the default tax percentage applied to per-supplier
	// subtotals. The --tax flag on the process command overrides it.
	// Default: 12.0
	TaxPercent float64 `yaml:"tax_percent"`

	// =========================================================================
	// EXTRACTION SERVICE SETTINGS
	// =========================================================================

	// Extraction configures the external PDF-to-CSV extraction service.
	Extraction ExtractionConfig `yaml:"extraction"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat defines the format for output file names.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {source}    - Base name of the source table (without extension)
	//
	// Default: "price_analysis_{timestamp}_{uuid}"
	OutputNameFormat string `yaml:"output_name_format"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// ExtractionConfig holds settings for the external extraction service.
// The service receives the uploaded PDF files and returns a flat CSV
// table; it is treated as a black box.
type ExtractionConfig struct {
	// URL is the endpoint of the extraction webhook.
	URL string `yaml:"url"`

	// TimeoutSeconds is the request timeout. Extraction of multiple PDFs
	// can be slow, so the default is generous.
	// Default: 600
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// defaultTaxPercent applies when the config file has no tax_percent key.
// An explicit "tax_percent: 0" is a valid setting and is kept as-is, so
// the default is seeded before parsing rather than patched in afterwards
// (a zero value alone cannot tell "absent" from "explicitly zero").
const defaultTaxPercent = 12.0

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read or parsed.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	// Read the configuration file.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse the YAML over the seeded defaults; keys absent from the file
	// keep them, keys present override them - including to zero.
	config := MainConfig{TaxPercent: defaultTaxPercent}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply default values.
	ApplyDefaults(&config)

	// Validate the configuration.
	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a configuration with all defaults applied.
// Used when no config file exists so the tool still works out of the box.
func DefaultConfig() *MainConfig {
	config := MainConfig{TaxPercent: defaultTaxPercent}
	ApplyDefaults(&config)
	return &config
}

// ApplyDefaults sets default values for any unset configuration options.
// TaxPercent is not touched here: zero is a legal tax rate, so its
// default is seeded before parsing instead.
func ApplyDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.Extraction.TimeoutSeconds == 0 {
		config.Extraction.TimeoutSeconds = 600
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "price_analysis_{timestamp}_{uuid}"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	// Validate that required directories exist.
	dirs := []string{
		config.InputDir,
		config.OutputDir,
		config.InputArchiveDir,
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			// Create the directory if it doesn't exist.
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	if config.TaxPercent < 0 {
		return fmt.Errorf("tax_percent must not be negative, got %v", config.TaxPercent)
	}

	return nil
}
