package tableio

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotedesk/quote-analyzer/internal/types"
)

func TestWriteCSV_RoundTrip(t *testing.T) {
	rows := []types.FlatRow{
		{Type: "item", Supplier: "SupplierA", Brand: "Acme", Code: "PX-100", Description: "Planetary mixer", PowerType: "220V", Price: 100.5},
		{Type: "subitem", Supplier: "SupplierA", Code: "PX-100", Description: "Bowl, stainless", Price: 20},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	parsed, err := ParseCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, rows, parsed)
}

func TestWriteCSV_Header(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	assert.Equal(t, "type,supplier,brand,code,description,Power Type,price\n", buf.String())
}

func TestWriteCSV_PriceFormatting(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []types.FlatRow{
		{Type: "item", Price: 12000},
		{Type: "item", Price: 99.99},
	}))

	out := buf.String()
	// No scientific notation, no trailing zeros.
	assert.Contains(t, out, ",12000\n")
	assert.Contains(t, out, ",99.99\n")
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	rows := []types.FlatRow{
		{Type: "item", Supplier: "SupplierA", Brand: "Acme", Code: "PX-100", Description: "Mixer", PowerType: "220V", Price: 100},
	}

	require.NoError(t, WriteCSVFile(path, rows))

	parsed, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, rows, parsed)
}
