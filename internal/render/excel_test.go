package render

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/quotedesk/quote-analyzer/internal/compare"
	"github.com/quotedesk/quote-analyzer/internal/types"
)

func TestWorkbook_Layout(t *testing.T) {
	f, err := Workbook(comparisonGroups(t))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{SheetName}, f.GetSheetList())

	// Title bar and column headers.
	title, err := f.GetCellValue(SheetName, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Option 01", title)

	for cell, want := range map[string]string{
		"B2": "DETAILS",
		"C2": "IMAGE",
		"D2": "QTY",
		"E2": "LINE ITEM",
		"F2": "SUPPLIERA",
		"G2": "SUPPLIERB",
	} {
		got, err := f.GetCellValue(SheetName, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, cell)
	}

	// Item rows start under the headers.
	desc, err := f.GetCellValue(SheetName, "E3")
	require.NoError(t, err)
	assert.Equal(t, "Planetary mixer", desc)

	qty, err := f.GetCellValue(SheetName, "D3")
	require.NoError(t, err)
	assert.Equal(t, "1", qty)
}

func TestWorkbook_Formulas(t *testing.T) {
	f, err := Workbook(comparisonGroups(t))
	require.NoError(t, err)
	defer f.Close()

	// Two description rows at 3-4, then subtotal, tax, total.
	for cell, want := range map[string]string{
		"F3": "D3*100",
		"F4": "D4*20",
		"G3": "D3*90",
		"G4": "D4*0",
		"F5": "SUM(F3:F4)",
		"F6": "F5*0.1",
		"F7": "F5+F6",
		"G7": "G5+G6",
	} {
		got, err := f.GetCellFormula(SheetName, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, cell)
	}
}

func TestWorkbook_DetailsBlock(t *testing.T) {
	f, err := Workbook(comparisonGroups(t))
	require.NoError(t, err)
	defer f.Close()

	details, err := f.GetCellValue(SheetName, "B3")
	require.NoError(t, err)
	assert.Contains(t, details, "BRAND\nAcme")
	assert.Contains(t, details, "CODE\nPX-100")
	assert.Contains(t, details, "POWER\n220V")

	merged, err := f.GetMergeCells(SheetName)
	require.NoError(t, err)

	refs := make([]string, 0, len(merged))
	for _, m := range merged {
		refs = append(refs, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	// Details and image blocks span the item, subtotal and tax rows.
	assert.Contains(t, refs, "B3:B6")
	assert.Contains(t, refs, "C3:C6")
}

func TestWorkbook_MultipleGroupsStack(t *testing.T) {
	rows := []types.FlatRow{
		{Type: "item", Supplier: "SupplierA", Brand: "Acme", Code: "PX-100", PowerType: "220V", Description: "Mixer", Price: 100},
		{Type: "item", Supplier: "SupplierA", Brand: "Fornax", Code: "OV-7", PowerType: "380V", Description: "Oven", Price: 500},
	}

	f, err := Workbook(compare.BuildGroups(rows, 12))
	require.NoError(t, err)
	defer f.Close()

	// First block: rows 1-8 plus two blank rows; second title at row 11.
	first, err := f.GetCellValue(SheetName, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Option 01", first)

	second, err := f.GetCellValue(SheetName, "B11")
	require.NoError(t, err)
	assert.Equal(t, "Option 02", second)
}

func TestWorkbook_Empty(t *testing.T) {
	f, err := Workbook(nil)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetName}, f.GetSheetList())
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.xlsx")

	require.NoError(t, WriteWorkbook(path, comparisonGroups(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(SheetName, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Option 01", title)
}
