// =============================================================================
// Quote Analyzer - Flat Table Writer
// =============================================================================
//
// Exports a flat table back to CSV in the same column layout the reader
// accepts, so an exported table re-imports byte-for-byte equivalent.
// Editor-only fields never reach this layer; the flattener strips them.
//
// =============================================================================

package tableio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/quotedesk/quote-analyzer/internal/types"
)

// WriteCSV writes a flat table to w with the canonical header row.
func WriteCSV(w io.Writer, rows []types.FlatRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Headers()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			r.Type,
			r.Supplier,
			r.Brand,
			r.Code,
			r.Description,
			r.PowerType,
			strconv.FormatFloat(r.Price, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes a flat table to the given path.
func WriteCSVFile(path string, rows []types.FlatRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return WriteCSV(file, rows)
}
