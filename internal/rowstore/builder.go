// =============================================================================
// Quote Analyzer - Hierarchy Builder
// =============================================================================
//
// The builder converts the flat table delivered by the extraction service
// (or a manual CSV/XLSX upload) into a row store with parent/child links.
//
// ALGORITHM:
//   A single linear pass over the input rows, tracking the most recent
//   item as the "current item":
//     - an "item" row becomes a new item and the new current item
//     - a "subitem" row attaches under the current item, taking the next
//       child order for that parent
//     - a "subitem" row arriving before any item has no parent to attach
//       to and is promoted to an item (orphan-promotion policy)
//   Rows with any other type value are carried along unattached; they are
//   never rendered as items and never become the current item.
//
// =============================================================================

package rowstore

import (
	"strings"

	"github.com/quotedesk/quote-analyzer/internal/types"
)

// Build converts an ordered flat table into a row store. Each row is
// assigned a fresh unique id; no input row is dropped.
func Build(rows []types.FlatRow) *Store {
	store := NewStore()

	// The most recent item; subitems attach under it.
	currentParentID := ""

	// Next child order per parent id.
	childCounter := make(map[string]int)

	for _, r := range rows {
		li := types.LineItem{
			ID:          newRowID(),
			Kind:        types.RowKind(strings.ToLower(strings.TrimSpace(r.Type))),
			Supplier:    r.Supplier,
			Brand:       r.Brand,
			Code:        r.Code,
			Description: r.Description,
			PowerType:   r.PowerType,
			Price:       r.Price,
		}

		switch li.Kind {
		case types.KindItem:
			li.ParentID = ""
			li.Order = 0
			currentParentID = li.ID
			childCounter[currentParentID] = 0

		case types.KindSubitem:
			if currentParentID != "" {
				li.ParentID = currentParentID
				li.Order = childCounter[currentParentID]
				childCounter[currentParentID]++
			} else {
				// Orphan subitem before the first item: promote to item.
				li.Kind = types.KindItem
				li.ParentID = ""
				li.Order = 0
				currentParentID = li.ID
				childCounter[currentParentID] = 0
			}

		default:
			// Unrecognized type value: keep the row but leave it
			// unattached. The flattener appends it after the hierarchy
			// walk and the comparison ignores it.
			li.ParentID = ""
			li.Order = 0
		}

		store.add(li)
	}

	return store
}
