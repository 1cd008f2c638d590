// =============================================================================
// Quote Analyzer - XLSX Export
// =============================================================================
//
// Builds the final price-analysis workbook: one block per product group
// with a title bar, column headers, one row per line item, and live
// formulas so the sheet stays correct when quantities are edited:
//
//   price cell        =QTY * unit price
//   Total Before Tax  =SUM(item rows)
//   Tax               =subtotal * tax rate
//   Total             =subtotal + tax
//
// The winning supplier's column is tinted green through every row of its
// group. Layout: column A is a margin, B=DETAILS, C=IMAGE, D=QTY,
// E=LINE ITEM, suppliers from F onward.
//
// =============================================================================

package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/quotedesk/quote-analyzer/internal/compare"
)

// SheetName is the name of the price analysis worksheet.
const SheetName = "Price Analysis"

// Palette and typography shared by the sheet styles.
const (
	headerBlue    = "288AD6"
	detailsBG     = "FAFAFA"
	columnBG      = "F8F9FA"
	winnerBG      = "F2FAF2"
	subtleLine    = "F0F0F0"
	headerLine    = "E5E5E5"
	textPrimary   = "1D1D1F"
	textSecondary = "86868B"
	fontName      = "Segoe UI"
	moneyFormat   = "$#,##0.00"
)

// The first supplier column (F) and the fixed layout columns.
const (
	colDetails       = 2
	colImage         = 3
	colQty           = 4
	colLineItem      = 5
	colFirstSupplier = 6
)

// =============================================================================
// WORKBOOK CONSTRUCTION
// =============================================================================

// WriteWorkbook renders the comparison groups into an XLSX workbook and
// saves it at the given path.
func WriteWorkbook(path string, groups []*compare.Group) error {
	f, err := Workbook(groups)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Workbook renders the comparison groups into an in-memory workbook.
// Callers own the returned file and must Close it.
func Workbook(groups []*compare.Group) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	// Hide gridlines for the clean minimalist look.
	showGrid := false
	if err := f.SetSheetView(SheetName, 0, &excelize.ViewOptions{ShowGridLines: &showGrid}); err != nil {
		return nil, fmt.Errorf("failed to set sheet view: %w", err)
	}

	w := &sheetWriter{f: f}
	styles := w.newStyles()
	if w.err != nil {
		return nil, fmt.Errorf("failed to create styles: %w", w.err)
	}

	currentRow := 1
	maxSuppliers := 0
	for i, g := range groups {
		currentRow = w.writeGroup(g, i+1, currentRow, styles)
		if len(g.Suppliers) > maxSuppliers {
			maxSuppliers = len(g.Suppliers)
		}
	}

	w.setColumnWidths(maxSuppliers)

	if w.err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", w.err)
	}
	return f, nil
}

// sheetWriter wraps an excelize file with first-error short-circuiting,
// so the group layout code reads as layout instead of error plumbing.
type sheetWriter struct {
	f   *excelize.File
	err error
}

// styleSet holds the style ids used across one workbook.
type styleSet struct {
	title        int
	header       int
	headerWinner int
	details      int
	image        int
	qty          int
	lineItem     int
	price        int
	priceWinner  int
	sumLabel     int
	sumValue     int
	sumWinner    int
	taxLabel     int
	taxValue     int
	taxWinner    int
	totalEmpty   int
	totalValue   int
	totalWinner  int
	specs        int
}

// =============================================================================
// GROUP LAYOUT
// =============================================================================

// writeGroup lays out one comparison block starting at startRow and
// returns the row the next block starts at.
func (w *sheetWriter) writeGroup(g *compare.Group, optionNo, startRow int, st styleSet) int {
	lastCol := colFirstSupplier + len(g.Suppliers) - 1
	if len(g.Suppliers) == 0 {
		lastCol = colFirstSupplier
	}

	// --- Option title bar ---
	titleRow := startRow
	w.setRowHeight(titleRow, 40)
	w.mergeCells(colDetails, titleRow, lastCol, titleRow)
	w.setCell(colDetails, titleRow, fmt.Sprintf("Option %02d", optionNo), st.title)

	// --- Column headers ---
	headerRow := titleRow + 1
	w.setRowHeight(headerRow, 28)
	headers := append([]string{"DETAILS", "IMAGE", "QTY", "LINE ITEM"}, g.Suppliers...)
	for i, h := range headers {
		style := st.header
		if h == g.Winner && g.Winner != "" {
			style = st.headerWinner
		}
		w.setCell(colDetails+i, headerRow, strings.ToUpper(h), style)
	}

	// --- Merged details and image blocks ---
	// Both span the item rows plus the subtotal and tax rows; the total
	// row below them stays clear.
	startDataRow := headerRow + 1
	numItemRows := len(g.Descriptions)

	detailVal := fmt.Sprintf("BRAND\n%s\n\nCODE\n%s\n\nPOWER\n%s",
		g.Brand, g.Key.Code, g.Key.PowerType)
	w.setCell(colDetails, startDataRow, detailVal, st.details)
	w.mergeCells(colDetails, startDataRow, colDetails, startDataRow+numItemRows+1)

	w.setCell(colImage, startDataRow, "[ PHOTO ]", st.image)
	w.mergeCells(colImage, startDataRow, colImage, startDataRow+numItemRows+1)

	// --- Item rows ---
	qtyCol := columnName(colQty)
	for i, desc := range g.Descriptions {
		rowNum := startDataRow + i
		w.setRowHeight(rowNum, 32)
		w.setCell(colQty, rowNum, 1, st.qty)
		w.setCell(colLineItem, rowNum, desc, st.lineItem)

		for sIdx, sup := range g.Suppliers {
			col := colFirstSupplier + sIdx
			price := g.Price(desc, sup)

			style := st.price
			if sup == g.Winner {
				style = st.priceWinner
			}
			w.setFormula(col, rowNum,
				fmt.Sprintf("%s%d*%s", qtyCol, rowNum, formatNumber(price)), style)
		}
	}

	// --- Total Before Tax row ---
	subtotalRow := startDataRow + numItemRows
	w.setRowHeight(subtotalRow, 32)
	w.mergeCells(colQty, subtotalRow, colLineItem, subtotalRow)
	w.setCell(colQty, subtotalRow, "Total Before Tax", st.sumLabel)
	for sIdx, sup := range g.Suppliers {
		col := colFirstSupplier + sIdx
		letter := columnName(col)

		style := st.sumValue
		if sup == g.Winner {
			style = st.sumWinner
		}
		w.setFormula(col, subtotalRow,
			fmt.Sprintf("SUM(%s%d:%s%d)", letter, startDataRow, letter, subtotalRow-1), style)
	}

	// --- Tax row ---
	taxRow := subtotalRow + 1
	w.setRowHeight(taxRow, 28)
	w.mergeCells(colQty, taxRow, colLineItem, taxRow)
	w.setCell(colQty, taxRow, fmt.Sprintf("Tax (%d%%)", int(g.TaxPercent)), st.taxLabel)
	for sIdx, sup := range g.Suppliers {
		col := colFirstSupplier + sIdx
		letter := columnName(col)

		style := st.taxValue
		if sup == g.Winner {
			style = st.taxWinner
		}
		w.setFormula(col, taxRow,
			fmt.Sprintf("%s%d*%s", letter, subtotalRow, formatNumber(g.TaxRate())), style)
	}

	// --- Final total row ---
	totalRow := taxRow + 1
	w.setRowHeight(totalRow, 40)
	w.mergeCells(colDetails, totalRow, colLineItem, totalRow)
	w.setCell(colDetails, totalRow, "", st.totalEmpty)
	for sIdx, sup := range g.Suppliers {
		col := colFirstSupplier + sIdx
		letter := columnName(col)

		style := st.totalValue
		if sup == g.Winner {
			style = st.totalWinner
		}
		w.setFormula(col, totalRow,
			fmt.Sprintf("%s%d+%s%d", letter, subtotalRow, letter, taxRow), style)
	}

	// --- Specs & description block ---
	specsRow := totalRow + 1
	w.setRowHeight(specsRow, 60)
	w.mergeCells(colDetails, specsRow, lastCol, specsRow)
	w.setCell(colDetails, specsRow,
		"SPECS & DESCRIPTION\n\nEnter item specifications, dimensions, and technical details here...",
		st.specs)

	// Two blank rows between blocks.
	return specsRow + 3
}

// setColumnWidths applies the fixed layout widths plus one width per
// supplier column.
func (w *sheetWriter) setColumnWidths(supplierCount int) {
	w.setColWidth(1, 1, 2)                // left margin
	w.setColWidth(colDetails, colDetails, 18)
	w.setColWidth(colImage, colImage, 12)
	w.setColWidth(colQty, colQty, 8)
	w.setColWidth(colLineItem, colLineItem, 35)
	for i := 0; i < supplierCount; i++ {
		col := colFirstSupplier + i
		w.setColWidth(col, col, 16)
	}
}

// =============================================================================
// STYLES
// =============================================================================

// newStyles registers every style the sheet uses and returns their ids.
func (w *sheetWriter) newStyles() styleSet {
	money := moneyFormat

	subtleBorder := []excelize.Border{{Type: "bottom", Style: 1, Color: subtleLine}}
	headerBorder := []excelize.Border{{Type: "bottom", Style: 2, Color: headerLine}}
	totalBorder := []excelize.Border{{Type: "top", Style: 2, Color: headerBlue}}

	return styleSet{
		title: w.newStyle(&excelize.Style{
			Font:      &excelize.Font{Family: fontName, Bold: true, Size: 14, Color: "FFFFFF"},
			Fill:      solidFill(headerBlue),
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", Indent: 2},
		}),
		header: w.newStyle(&excelize.Style{
			Font:      &excelize.Font{Family: fontName, Bold: true, Size: 9, Color: textSecondary},
			Fill:      solidFill(columnBG),
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
			Border:    headerBorder,
		}),
		headerWinner: w.newStyle(&excelize.Style{
			Font:      &excelize.Font{Family: fontName, Bold: true, Size: 9, Color: textSecondary},
			Fill:      solidFill(winnerBG),
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    headerBorder,
		}),
		details: w.newStyle(&excelize.Style{
			Font:      &excelize.Font{Family: fontName, Size: 10, Color: textSecondary},
			Fill:      solidFill(detailsBG),
			Alignment: &excelize.Alignment{WrapText: true, Vertical: "top", Horizontal: "left", Indent: 1},
		}),
		image: w.newStyle(&excelize.Style{
			Font:      &excelize.Font{Family: fontName, Size: 10, Color: "CCCCCC", Italic: true},
			Fill:      solidFill(detailsBG),
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		}),
		qty: w.newStyle(&excelize.Style{
			Font:      &excelize.Font{Family: fontName, Size: 11, Color: textPrimary, Bold: true},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    subtleBorder,
		}),
		lineItem: w.newStyle(&excelize.Style{
			Font:      &excelize.Font{Family: fontName, Size: 11, Color: textPrimary},
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
			Border:    subtleBorder,
		}),
		price: w.newStyle(&excelize.Style{
			Font:         &excelize.Font{Family: fontName, Size: 11, Color: textPrimary},
			Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
			Border:       subtleBorder,
			CustomNumFmt: &money,
		}),
		priceWinner: w.newStyle(&excelize.Style{
			Font:         &excelize.Font{Family: fontName, Size: 11, Color: textPrimary},
			Fill:         solidFill(winnerBG),
			Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
			Border:       subtleBorder,
			CustomNumFmt: &money,
		}),
		sumLabel: w.newStyle(&excelize.Style{
			Font:      &excelize.Font{Family: fontName, Size: 11, Bold: true, Color: textPrimary},
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
			Border:    subtleBorder,
		}),
		sumValue: w.newStyle(&excelize.Style{
			Font:         &excelize.Font{Family: fontName, Size: 11, Bold: true, Color: textPrimary},
			Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
			Border:       subtleBorder,
			CustomNumFmt: &money,
		}),
		sumWinner: w.newStyle(&excelize.Style{
			Font:         &excelize.Font{Family: fontName, Size: 11, Bold: true, Color: textPrimary},
			Fill:         solidFill(winnerBG),
			Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
			Border:       subtleBorder,
			CustomNumFmt: &money,
		}),
		taxLabel: w.newStyle(&excelize.Style{
			Font:      &excelize.Font{Family: fontName, Size: 10, Color: textSecondary},
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
			Border:    subtleBorder,
		}),
		taxValue: w.newStyle(&excelize.Style{
			Font:         &excelize.Font{Family: fontName, Size: 10, Color: textSecondary},
			Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
			Border:       subtleBorder,
			CustomNumFmt: &money,
		}),
		taxWinner: w.newStyle(&excelize.Style{
			Font:         &excelize.Font{Family: fontName, Size: 10, Color: textSecondary},
			Fill:         solidFill(winnerBG),
			Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
			Border:       subtleBorder,
			CustomNumFmt: &money,
		}),
		totalEmpty: w.newStyle(&excelize.Style{
			Fill:   solidFill(detailsBG),
			Border: totalBorder,
		}),
		totalValue: w.newStyle(&excelize.Style{
			Font:         &excelize.Font{Family: fontName, Bold: true, Size: 13, Color: textPrimary},
			Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
			Border:       totalBorder,
			CustomNumFmt: &money,
		}),
		totalWinner: w.newStyle(&excelize.Style{
			Font:         &excelize.Font{Family: fontName, Bold: true, Size: 13, Color: textPrimary},
			Fill:         solidFill(winnerBG),
			Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
			Border:       totalBorder,
			CustomNumFmt: &money,
		}),
		specs: w.newStyle(&excelize.Style{
			Font:      &excelize.Font{Family: fontName, Size: 10, Color: textSecondary},
			Fill:      solidFill(detailsBG),
			Alignment: &excelize.Alignment{WrapText: true, Vertical: "top", Horizontal: "left", Indent: 2},
			Border:    []excelize.Border{{Type: "bottom", Style: 1, Color: subtleLine}},
		}),
	}
}

// solidFill returns a solid pattern fill with the given color.
func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
}

// =============================================================================
// WRITER HELPERS
// =============================================================================

func (w *sheetWriter) newStyle(style *excelize.Style) int {
	if w.err != nil {
		return 0
	}
	id, err := w.f.NewStyle(style)
	if err != nil {
		w.err = err
		return 0
	}
	return id
}

func (w *sheetWriter) setCell(col, row int, value any, styleID int) {
	if w.err != nil {
		return
	}
	cellRef := cellName(col, row)
	if w.err = w.f.SetCellValue(SheetName, cellRef, value); w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(SheetName, cellRef, cellRef, styleID)
}

func (w *sheetWriter) setFormula(col, row int, formula string, styleID int) {
	if w.err != nil {
		return
	}
	cellRef := cellName(col, row)
	if w.err = w.f.SetCellFormula(SheetName, cellRef, formula); w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(SheetName, cellRef, cellRef, styleID)
}

func (w *sheetWriter) mergeCells(startCol, startRow, endCol, endRow int) {
	if w.err != nil {
		return
	}
	w.err = w.f.MergeCell(SheetName, cellName(startCol, startRow), cellName(endCol, endRow))
}

func (w *sheetWriter) setRowHeight(row int, height float64) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetRowHeight(SheetName, row, height)
}

func (w *sheetWriter) setColWidth(startCol, endCol int, width float64) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetColWidth(SheetName, columnName(startCol), columnName(endCol), width)
}

// cellName converts 1-based coordinates to an A1 reference. Coordinates
// here are always valid, so the error path cannot trigger.
func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// columnName converts a 1-based column number to its letter name.
func columnName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}

// formatNumber renders a float for embedding in a formula, without
// trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
