// =============================================================================
// Quote Analyzer - Flat Table Reader
// =============================================================================
//
// This module reads the flat quote table format produced by the
// extraction service or supplied manually. Both CSV and XLSX files are
// accepted; both reduce to the same fixed column set:
//
//   type | supplier | brand | code | description | Power Type | price
//
// All text columns are trimmed of surrounding whitespace on ingestion.
// Blank or non-numeric prices become 0 - never an error. Header matching
// is case-insensitive so hand-edited files round-trip cleanly.
//
// =============================================================================

package tableio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/quotedesk/quote-analyzer/internal/types"
)

// Column headers of the flat table format. "Power Type" is the one
// two-word header; the extraction service emits it exactly like this.
const (
	ColType        = "type"
	ColSupplier    = "supplier"
	ColBrand       = "brand"
	ColCode        = "code"
	ColDescription = "description"
	ColPowerType   = "Power Type"
	ColPrice       = "price"
)

// Headers returns the canonical column order of the flat table format.
func Headers() []string {
	return []string{ColType, ColSupplier, ColBrand, ColCode, ColDescription, ColPowerType, ColPrice}
}

// =============================================================================
// READER FUNCTIONS
// =============================================================================

// ReadTable reads a flat table file, dispatching on the file extension.
// CSV and XLSX are supported.
func ReadTable(path string) ([]types.FlatRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer file.Close()
		return ParseCSV(file)
	case ".xlsx":
		return ParseXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported table format: %s", filepath.Ext(path))
	}
}

// ParseCSV reads a flat table from CSV data.
func ParseCSV(r io.Reader) ([]types.FlatRow, error) {
	reader := csv.NewReader(r)

	// Tolerate the rough edges of hand-edited exports: stray quotes and
	// rows with missing trailing columns.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return rowsFromRecords(records)
}

// ParseXLSX reads a flat table from the first sheet of an XLSX workbook.
func ParseXLSX(path string) ([]types.FlatRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return rowsFromRecords(records)
}

// rowsFromRecords converts raw records (header row first) into flat rows.
func rowsFromRecords(records [][]string) ([]types.FlatRow, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("table file is empty")
	}

	cols := resolveColumns(records[0])

	var rows []types.FlatRow
	for _, record := range records[1:] {
		if isRecordEmpty(record) {
			continue
		}
		rows = append(rows, types.FlatRow{
			Type:        cell(record, cols[ColType]),
			Supplier:    cell(record, cols[ColSupplier]),
			Brand:       cell(record, cols[ColBrand]),
			Code:        cell(record, cols[ColCode]),
			Description: cell(record, cols[ColDescription]),
			PowerType:   cell(record, cols[ColPowerType]),
			Price:       ParsePrice(cell(record, cols[ColPrice])),
		})
	}

	return rows, nil
}

// resolveColumns maps each known column to its index in the header row,
// matching case-insensitively and ignoring surrounding whitespace.
// Missing columns map to -1 and read as empty.
func resolveColumns(header []string) map[string]int {
	cols := map[string]int{
		ColType:        -1,
		ColSupplier:    -1,
		ColBrand:       -1,
		ColCode:        -1,
		ColDescription: -1,
		ColPowerType:   -1,
		ColPrice:       -1,
	}

	for i, h := range header {
		normalized := strings.ToLower(strings.TrimSpace(h))
		switch normalized {
		case "type":
			cols[ColType] = i
		case "supplier":
			cols[ColSupplier] = i
		case "brand":
			cols[ColBrand] = i
		case "code":
			cols[ColCode] = i
		case "description":
			cols[ColDescription] = i
		case "power type", "powertype", "power_type":
			cols[ColPowerType] = i
		case "price":
			cols[ColPrice] = i
		}
	}

	return cols
}

// cell returns the trimmed value at the given column index, or "" when
// the column is missing or the record is short.
func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// isRecordEmpty checks if a record contains only empty values.
func isRecordEmpty(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ParsePrice parses a price cell. Currency symbols and thousands
// separators are stripped; anything that still fails to parse, including
// a blank cell, aggregates as 0.
func ParsePrice(value string) float64 {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return price
}
