// =============================================================================
// Quote Analyzer - Price Comparison Module
// =============================================================================
//
// This module turns the flattened line-item table into per-product
// comparison groups: one block per (code, power type) pair, one column
// per supplier, one row per distinct description, with per-supplier
// subtotals, tax, totals and the winning (cheapest) supplier.
//
// The grouping and the math live here; rendering the groups into HTML or
// a spreadsheet is a presentation concern layered on top (see render).
//
// GROUPING RULES:
//   - A comparison group exists for every distinct (code, power type)
//     pair among item rows with a non-blank power type. Groups without
//     such an item are silently excluded - that is a filtering policy,
//     not an error.
//   - A group's rows are all items and subitems with the group's code
//     whose power type equals the group's or is blank (subitems usually
//     carry no power type of their own).
//   - Supplier columns and description rows appear in first-seen order.
//   - A cell holds the price of the first row matching its supplier and
//     description; no match means 0. When a supplier quotes the same
//     description twice in one group only the first row counts.
//
// =============================================================================

package compare

import (
	"math"

	"github.com/quotedesk/quote-analyzer/internal/types"
)

// =============================================================================
// GROUP STRUCTURE
// =============================================================================

// Group is one product comparison block.
type Group struct {
	// Key is the (code, power type) pair identifying the product option.
	Key types.ProductKey

	// Brand is the brand of the group's first item row.
	Brand string

	// Suppliers are the distinct suppliers quoted in this group, in
	// first-seen order. Column order in every rendering.
	Suppliers []string

	// Descriptions are the distinct line-item descriptions, in
	// first-seen order. Row order in every rendering.
	Descriptions []string

	// TaxPercent is the tax percentage applied to subtotals.
	TaxPercent float64

	// cells maps description -> supplier -> price.
	cells map[string]map[string]float64

	// Subtotals is the pre-tax sum per supplier across all descriptions.
	Subtotals map[string]float64

	// Totals is the post-tax total per supplier:
	// subtotal * (1 + TaxPercent/100).
	Totals map[string]float64

	// Winner is the supplier with the strictly lowest total; ties go to
	// the supplier seen first. Empty when the group has no suppliers.
	Winner string
}

// Price returns the cell price for a supplier/description pair, or 0
// when the supplier did not quote that description.
func (g *Group) Price(description, supplier string) float64 {
	return g.cells[description][supplier]
}

// TaxRate returns the tax as a fraction (12% -> 0.12).
func (g *Group) TaxRate() float64 {
	return g.TaxPercent / 100
}

// TaxAmount returns the tax owed on a supplier's subtotal.
func (g *Group) TaxAmount(supplier string) float64 {
	return g.Subtotals[supplier] * g.TaxRate()
}

// =============================================================================
// GROUP CONSTRUCTION
// =============================================================================

// BuildGroups derives the comparison groups from a flattened table.
// taxPercent must not be negative; the table's row order decides
// first-seen ordering everywhere.
func BuildGroups(rows []types.FlatRow, taxPercent float64) []*Group {
	var groups []*Group

	// Group keys: distinct (code, power type) pairs of items with a
	// non-blank power type, in first-seen order.
	seenKeys := make(map[types.ProductKey]bool)
	for _, r := range rows {
		if r.Type != string(types.KindItem) || r.PowerType == "" {
			continue
		}
		key := types.ProductKey{Code: r.Code, PowerType: r.PowerType}
		if seenKeys[key] {
			continue
		}
		seenKeys[key] = true
		groups = append(groups, buildGroup(rows, key, taxPercent))
	}

	return groups
}

// buildGroup assembles one comparison group from the table rows
// belonging to the given product key.
func buildGroup(rows []types.FlatRow, key types.ProductKey, taxPercent float64) *Group {
	g := &Group{
		Key:        key,
		TaxPercent: taxPercent,
		cells:      make(map[string]map[string]float64),
		Subtotals:  make(map[string]float64),
		Totals:     make(map[string]float64),
	}

	members := groupRows(rows, key)

	// First-seen suppliers and descriptions; brand from the first item.
	seenSupplier := make(map[string]bool)
	seenDescription := make(map[string]bool)
	for _, r := range members {
		if !seenSupplier[r.Supplier] {
			seenSupplier[r.Supplier] = true
			g.Suppliers = append(g.Suppliers, r.Supplier)
		}
		if !seenDescription[r.Description] {
			seenDescription[r.Description] = true
			g.Descriptions = append(g.Descriptions, r.Description)
		}
		if g.Brand == "" && r.Type == string(types.KindItem) {
			g.Brand = r.Brand
		}
	}

	// Cell prices: first matching row wins.
	for _, r := range members {
		if g.cells[r.Description] == nil {
			g.cells[r.Description] = make(map[string]float64)
		}
		if _, taken := g.cells[r.Description][r.Supplier]; !taken {
			g.cells[r.Description][r.Supplier] = r.Price
		}
	}

	// Subtotals and totals.
	for _, sup := range g.Suppliers {
		subtotal := 0.0
		for _, desc := range g.Descriptions {
			subtotal += g.cells[desc][sup]
		}
		g.Subtotals[sup] = subtotal
		g.Totals[sup] = subtotal * (1 + taxPercent/100)
	}

	// Winner: strictly lowest total, first-seen supplier breaks ties.
	minTotal := math.Inf(1)
	for _, sup := range g.Suppliers {
		if g.Totals[sup] < minTotal {
			minTotal = g.Totals[sup]
			g.Winner = sup
		}
	}

	return g
}

// groupRows selects the table rows belonging to a product key: items and
// subitems with the key's code whose power type matches or is blank.
func groupRows(rows []types.FlatRow, key types.ProductKey) []types.FlatRow {
	var out []types.FlatRow
	for _, r := range rows {
		if r.Code != key.Code {
			continue
		}
		if r.Type != string(types.KindItem) && r.Type != string(types.KindSubitem) {
			continue
		}
		if r.PowerType != key.PowerType && r.PowerType != "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
