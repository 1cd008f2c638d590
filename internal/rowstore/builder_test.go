package rowstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotedesk/quote-analyzer/internal/types"
)

// flat builds a minimal flat row for builder tests.
func flat(typ, supplier, desc string, price float64) types.FlatRow {
	return types.FlatRow{
		Type:        typ,
		Supplier:    supplier,
		Brand:       "Acme",
		Code:        "PX-100",
		Description: desc,
		PowerType:   "220V",
		Price:       price,
	}
}

func TestBuild_ItemsAndSubitems(t *testing.T) {
	rows := []types.FlatRow{
		flat("item", "SupplierA", "Mixer", 100),
		flat("subitem", "SupplierA", "Bowl", 20),
		flat("subitem", "SupplierA", "Whisk", 10),
		flat("item", "SupplierB", "Mixer", 90),
		flat("subitem", "SupplierB", "Bowl", 15),
	}

	store := Build(rows)
	require.Equal(t, 5, store.Len())

	all := store.Rows()

	// First item with two children in input order.
	itemA := all[0]
	assert.Equal(t, types.KindItem, itemA.Kind)
	assert.False(t, itemA.Attached())

	childrenA := store.Children(itemA.ID)
	require.Len(t, childrenA, 2)
	assert.Equal(t, "Bowl", childrenA[0].Description)
	assert.Equal(t, 0, childrenA[0].Order)
	assert.Equal(t, "Whisk", childrenA[1].Description)
	assert.Equal(t, 1, childrenA[1].Order)

	// Second item resets the current parent.
	itemB := all[3]
	assert.Equal(t, types.KindItem, itemB.Kind)

	childrenB := store.Children(itemB.ID)
	require.Len(t, childrenB, 1)
	assert.Equal(t, "SupplierB", childrenB[0].Supplier)
	assert.Equal(t, 0, childrenB[0].Order)
}

func TestBuild_OrphanSubitemPromoted(t *testing.T) {
	rows := []types.FlatRow{
		flat("subitem", "SupplierA", "Stray accessory", 20),
		flat("subitem", "SupplierA", "Attaches to promoted", 5),
	}

	store := Build(rows)
	require.Equal(t, 2, store.Len())

	all := store.Rows()

	// The orphan becomes an item and the current parent for what follows.
	promoted := all[0]
	assert.Equal(t, types.KindItem, promoted.Kind)
	assert.False(t, promoted.Attached())

	child := all[1]
	assert.Equal(t, types.KindSubitem, child.Kind)
	assert.Equal(t, promoted.ID, child.ParentID)
}

func TestBuild_UnknownTypeKeptUnattached(t *testing.T) {
	rows := []types.FlatRow{
		flat("item", "SupplierA", "Mixer", 100),
		flat("note", "SupplierA", "Freight TBD", 0),
		flat("subitem", "SupplierA", "Bowl", 20),
	}

	store := Build(rows)
	require.Equal(t, 3, store.Len())

	all := store.Rows()

	stray := all[1]
	assert.Equal(t, types.RowKind("note"), stray.Kind)
	assert.False(t, stray.Attached())

	// The stray row must not steal the current item: the subitem after it
	// still attaches under the real item.
	assert.Equal(t, all[0].ID, all[2].ParentID)

	// And it never shows up in the item view.
	assert.Len(t, store.Items(), 1)
}

func TestBuild_TypeValueNormalized(t *testing.T) {
	rows := []types.FlatRow{
		flat("  Item ", "SupplierA", "Mixer", 100),
		flat("SUBITEM", "SupplierA", "Bowl", 20),
	}

	store := Build(rows)
	all := store.Rows()

	assert.Equal(t, types.KindItem, all[0].Kind)
	assert.Equal(t, types.KindSubitem, all[1].Kind)
	assert.Equal(t, all[0].ID, all[1].ParentID)
}

func TestBuild_UniqueIDs(t *testing.T) {
	rows := []types.FlatRow{
		flat("item", "SupplierA", "Mixer", 100),
		flat("item", "SupplierB", "Mixer", 90),
		flat("subitem", "SupplierB", "Bowl", 15),
	}

	store := Build(rows)

	seen := make(map[string]bool)
	for _, r := range store.Rows() {
		require.NotEmpty(t, r.ID)
		require.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
}

func TestBuild_Empty(t *testing.T) {
	store := Build(nil)
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.Rows())
}
