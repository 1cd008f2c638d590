// =============================================================================
// Quote Analyzer - Flattener
// =============================================================================
//
// The flattener converts a row store back into the flat table format the
// preview and spreadsheet generators consume. It is a pure read: it never
// changes the store.
//
// ORDERING:
//   Items sorted by (code, power type, order), each immediately followed
//   by its subitems sorted by order. Any row the walk cannot reach (an
//   unattached straggler) is appended at the end in store iteration
//   order. The result is a deterministic total order for a given store
//   state.
//
// =============================================================================

package rowstore

import (
	"sort"

	"github.com/quotedesk/quote-analyzer/internal/types"
)

// Flatten produces the ordered flat table for the current store state,
// with the editor-only fields (id, parent id, order) stripped.
func Flatten(s *Store) []types.FlatRow {
	items := s.Items()
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Code != items[j].Code {
			return items[i].Code < items[j].Code
		}
		if items[i].PowerType != items[j].PowerType {
			return items[i].PowerType < items[j].PowerType
		}
		return items[i].Order < items[j].Order
	})

	emitted := make(map[string]bool, s.Len())
	out := make([]types.FlatRow, 0, s.Len())

	emit := func(li types.LineItem) {
		emitted[li.ID] = true
		out = append(out, types.FlatRow{
			Type:        string(li.Kind),
			Supplier:    li.Supplier,
			Brand:       li.Brand,
			Code:        li.Code,
			Description: li.Description,
			PowerType:   li.PowerType,
			Price:       li.Price,
		})
	}

	for _, item := range items {
		emit(item)
		for _, child := range s.Children(item.ID) {
			emit(child)
		}
	}

	// Rows the hierarchy walk never reached (unrecognized type values).
	// A flatten must account for every row in the store.
	for _, r := range s.Rows() {
		if !emitted[r.ID] {
			emit(r)
		}
	}

	return out
}
