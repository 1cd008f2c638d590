// =============================================================================
// Quote Analyzer - Processing Pipeline
// =============================================================================
//
// The analyzer orchestrates the processing of one flat table file:
//
//   1. Read the table (CSV or XLSX)
//   2. Build the line-item hierarchy
//   3. Validate the store invariants
//   4. Flatten back to the canonical row order
//   5. Derive the comparison groups
//   6. Write the HTML preview, the XLSX workbook and the flat CSV export
//   7. Archive the input table
//
// Each file is processed independently; an error in one file never
// affects another.
//
// =============================================================================

package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/quotedesk/quote-analyzer/internal/compare"
	"github.com/quotedesk/quote-analyzer/internal/config"
	"github.com/quotedesk/quote-analyzer/internal/logger"
	"github.com/quotedesk/quote-analyzer/internal/render"
	"github.com/quotedesk/quote-analyzer/internal/session"
	"github.com/quotedesk/quote-analyzer/internal/tableio"
	"github.com/quotedesk/quote-analyzer/internal/types"
	"github.com/quotedesk/quote-analyzer/internal/validation"
	"github.com/quotedesk/quote-analyzer/pkg/utils"
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// Result describes the outcome of processing one table file.
type Result struct {
	// FilePath is the input table that was processed.
	FilePath string

	// Success indicates whether processing completed.
	Success bool

	// OutputHTML, OutputXLSX and OutputCSV are the generated artifact
	// paths (empty on failure or dry run).
	OutputHTML string
	OutputXLSX string
	OutputCSV  string

	// Error holds the failure cause when Success is false.
	Error error

	// Stats collects processing counters.
	Stats ProcessingStats
}

// ProcessingStats collects counters for the summary report.
type ProcessingStats struct {
	RowsRead int
	Items    int
	Subitems int
	Groups   int
	Duration time.Duration
}

// Logger is the minimal logging surface the pipeline needs. The default
// implementation forwards to the package logger; tests may substitute
// their own.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// =============================================================================
// ANALYZER
// =============================================================================

// Analyzer processes one table file.
type Analyzer struct {
	tablePath  string
	mainConfig *config.MainConfig
	taxPercent float64
	dryRun     bool
	logger     Logger
}

// New creates an analyzer for one table file. taxPercent overrides the
// configured default when non-negative; pass a negative value to use the
// configuration.
func New(tablePath string, mainConfig *config.MainConfig, taxPercent float64, dryRun bool) *Analyzer {
	if taxPercent < 0 {
		taxPercent = mainConfig.TaxPercent
	}
	return &Analyzer{
		tablePath:  tablePath,
		mainConfig: mainConfig,
		taxPercent: taxPercent,
		dryRun:     dryRun,
		logger:     &defaultLogger{},
	}
}

// SetLogger replaces the pipeline logger.
func (a *Analyzer) SetLogger(l Logger) {
	a.logger = l
}

// Run executes the pipeline for the analyzer's table file.
func (a *Analyzer) Run() Result {
	start := time.Now()
	result := Result{FilePath: a.tablePath}

	fail := func(err error) Result {
		result.Success = false
		result.Error = err
		result.Stats.Duration = time.Since(start)
		a.logger.Error("processing %s failed: %v", a.tablePath, err)
		return result
	}

	// =========================================================================
	// STEP 1: READ THE TABLE
	// =========================================================================

	a.logger.Debug("reading table %s", a.tablePath)
	rows, err := tableio.ReadTable(a.tablePath)
	if err != nil {
		return fail(fmt.Errorf("failed to read table: %w", err))
	}
	result.Stats.RowsRead = len(rows)

	// =========================================================================
	// STEP 2: BUILD THE HIERARCHY
	// =========================================================================

	sess := session.New(rows)
	for _, r := range sess.Store().Rows() {
		switch r.Kind {
		case types.KindItem:
			result.Stats.Items++
		case types.KindSubitem:
			result.Stats.Subitems++
		}
	}
	a.logger.Debug("built hierarchy: %d items, %d subitems",
		result.Stats.Items, result.Stats.Subitems)

	// =========================================================================
	// STEP 3: VALIDATE
	// =========================================================================

	if vr := validation.ValidateStore(sess.Store()); !vr.Valid {
		return fail(fmt.Errorf("store validation failed:\n%s",
			validation.FormatErrors(vr.Errors)))
	}

	// =========================================================================
	// STEP 4 + 5: FLATTEN AND COMPARE
	// =========================================================================

	flat := sess.Flat()
	groups := compare.BuildGroups(flat, a.taxPercent)
	result.Stats.Groups = len(groups)
	a.logger.Debug("derived %d comparison group(s)", len(groups))

	if len(groups) == 0 {
		a.logger.Warn("%s produced no comparison groups; check the code and Power Type columns",
			filepath.Base(a.tablePath))
	}

	// =========================================================================
	// STEP 6: WRITE ARTIFACTS
	// =========================================================================

	if a.dryRun {
		a.logger.Info("dry run: skipping output for %s", a.tablePath)
		result.Success = true
		result.Stats.Duration = time.Since(start)
		return result
	}

	baseName := utils.GenerateOutputFileName(a.mainConfig.OutputNameFormat, a.tablePath)

	htmlPath := filepath.Join(a.mainConfig.OutputDir, baseName+".html")
	htmlDoc, err := render.HTML(groups)
	if err != nil {
		return fail(fmt.Errorf("failed to render preview: %w", err))
	}
	if err := os.WriteFile(htmlPath, []byte(htmlDoc), 0644); err != nil {
		return fail(fmt.Errorf("failed to write preview: %w", err))
	}
	result.OutputHTML = htmlPath

	xlsxPath := filepath.Join(a.mainConfig.OutputDir, baseName+".xlsx")
	if err := render.WriteWorkbook(xlsxPath, groups); err != nil {
		return fail(fmt.Errorf("failed to write workbook: %w", err))
	}
	result.OutputXLSX = xlsxPath

	csvPath := filepath.Join(a.mainConfig.OutputDir, baseName+".csv")
	if err := tableio.WriteCSVFile(csvPath, flat); err != nil {
		return fail(fmt.Errorf("failed to write flat export: %w", err))
	}
	result.OutputCSV = csvPath

	// =========================================================================
	// STEP 7: ARCHIVE THE INPUT
	// =========================================================================

	fm := utils.NewFileManager(a.mainConfig.InputDir, a.mainConfig.OutputDir,
		a.mainConfig.InputArchiveDir)
	if _, err := fm.ArchiveInputFile(a.tablePath); err != nil {
		// The artifacts are already written; an archive failure should
		// not discard them. Report and continue.
		a.logger.Warn("failed to archive %s: %v", a.tablePath, err)
	}

	result.Success = true
	result.Stats.Duration = time.Since(start)
	a.logger.Info("processed %s in %s", filepath.Base(a.tablePath), result.Stats.Duration)
	return result
}

// =============================================================================
// DEFAULT LOGGER
// =============================================================================

// defaultLogger forwards to the package-level verbose logger.
type defaultLogger struct{}

func (l *defaultLogger) Debug(msg string, args ...any) { logger.Debug(msg, args...) }
func (l *defaultLogger) Info(msg string, args ...any)  { logger.Info(msg, args...) }
func (l *defaultLogger) Warn(msg string, args ...any)  { logger.Warn(msg, args...) }
func (l *defaultLogger) Error(msg string, args ...any) { logger.Error(msg, args...) }
