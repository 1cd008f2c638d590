// =============================================================================
// Quote Analyzer - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - tableio
//   - rowstore
//   - compare
//   - render
//
// =============================================================================

package types

// =============================================================================
// ROW KIND
// =============================================================================

// RowKind distinguishes top-level line items from the subitems attached
// beneath them. These values match the "type" column of the flat table
// format exchanged with the extraction service.
type RowKind string

const (
	// KindItem is a top-level line entry representing one supplier's
	// offering for a product.
	KindItem RowKind = "item"

	// KindSubitem is a line entry attached under exactly one item, for
	// example an accessory or add-on.
	KindSubitem RowKind = "subitem"
)

// =============================================================================
// PRODUCT KEY
// =============================================================================

// ProductKey identifies one comparable product option across suppliers.
// Items sharing a ProductKey are quotes for the same product and are
// rendered in the same comparison block.
type ProductKey struct {
	// Code is the product code quoted by the supplier.
	Code string

	// PowerType is the power variant of the product (e.g. "220V").
	// Subitems commonly leave this blank.
	PowerType string
}

// =============================================================================
// LINE ITEM
// =============================================================================

// LineItem is one row of the editable quote table. The ID, ParentID and
// Order fields exist only inside an editing session; they are stripped
// when the table is flattened back out for rendering or export.
type LineItem struct {
	// ID is an opaque unique identifier assigned at creation.
	// It is immutable and never reused within a session.
	ID string

	// Kind marks the row as an item or a subitem.
	Kind RowKind

	// ParentID references the item this subitem is attached to.
	// It is empty for all items and for unattached rows; IDs are never
	// empty, so the empty string unambiguously means "no parent".
	ParentID string

	// Order defines the position among siblings. Order values are unique
	// only among siblings; their relative order is the only meaningful
	// signal.
	Order int

	// Supplier is the quoting supplier's name.
	Supplier string

	// Brand is the product brand.
	Brand string

	// Code is the product code. Together with PowerType it forms the
	// row's ProductKey.
	Code string

	// Description is the line-item description shown in the comparison.
	Description string

	// PowerType is the power variant. Blank for most subitems.
	PowerType string

	// Price is the quoted price. Missing or non-numeric source values
	// are normalized to 0 on import.
	Price float64
}

// Key returns the row's ProductKey.
func (li LineItem) Key() ProductKey {
	return ProductKey{Code: li.Code, PowerType: li.PowerType}
}

// Attached reports whether the row is attached under a parent item.
func (li LineItem) Attached() bool {
	return li.ParentID != ""
}

// =============================================================================
// FLAT ROW
// =============================================================================

// FlatRow is one row of the flat table format, before hierarchy
// information is assigned and after it is stripped. This is the shape
// imported from and exported to CSV/XLSX files.
type FlatRow struct {
	// Type is the raw "type" column value ("item" or "subitem").
	// Unrecognized values are resolved by the hierarchy builder.
	Type string

	Supplier    string
	Brand       string
	Code        string
	Description string
	PowerType   string

	// Price is the parsed price; blank or non-numeric cells become 0.
	Price float64
}
