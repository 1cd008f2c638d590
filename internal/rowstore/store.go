// =============================================================================
// Quote Analyzer - Row Store
// =============================================================================
//
// The row store is the ordered collection of all line items for one editing
// session and the single source of truth between user actions. Rows are
// created by the hierarchy builder or by insert/spread operations, changed
// only by mutation operations, and removed only by delete operations.
//
// The store keeps rows in insertion order and maintains an id index. The
// parent and product-key views are derived on demand: the store is small
// (one quote package) and recomputing a view is cheaper than keeping three
// indices consistent through every mutation.
//
// =============================================================================

package rowstore

import (
	"sort"

	"github.com/google/uuid"

	"github.com/quotedesk/quote-analyzer/internal/types"
)

// Store holds the line items of one editing session.
type Store struct {
	rows []types.LineItem
	byID map[string]int
}

// NewStore creates an empty row store.
func NewStore() *Store {
	return &Store{
		byID: make(map[string]int),
	}
}

// newRowID generates a fresh row identifier: the first 8 hex characters
// of a random UUID. Short enough to read in logs, unique enough for a
// single session's table.
func newRowID() string {
	return uuid.NewString()[:8]
}

// Len returns the number of rows in the store.
func (s *Store) Len() int {
	return len(s.rows)
}

// Rows returns a copy of all rows in store iteration order.
func (s *Store) Rows() []types.LineItem {
	out := make([]types.LineItem, len(s.rows))
	copy(out, s.rows)
	return out
}

// Get returns the row with the given id, if present.
func (s *Store) Get(id string) (types.LineItem, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return types.LineItem{}, false
	}
	return s.rows[idx], true
}

// add appends a row to the store. The row's ID must be unique.
func (s *Store) add(li types.LineItem) {
	s.byID[li.ID] = len(s.rows)
	s.rows = append(s.rows, li)
}

// update replaces the stored row with the same ID.
func (s *Store) update(li types.LineItem) {
	if idx, ok := s.byID[li.ID]; ok {
		s.rows[idx] = li
	}
}

// Update replaces the stored row with the same ID; unknown ids are
// ignored. This backs direct cell edits from the editor. Hierarchy
// changes (kind, parent, order) should go through the mutation
// operations, which keep the store invariants intact.
func (s *Store) Update(li types.LineItem) {
	s.update(li)
}

// remove deletes the row with the given id, preserving the order of the
// remaining rows. Removing an unknown id is a no-op.
func (s *Store) remove(id string) {
	idx, ok := s.byID[id]
	if !ok {
		return
	}
	s.rows = append(s.rows[:idx], s.rows[idx+1:]...)
	delete(s.byID, id)
	// Reindex the rows that shifted down.
	for i := idx; i < len(s.rows); i++ {
		s.byID[s.rows[i].ID] = i
	}
}

// =============================================================================
// DERIVED VIEWS
// =============================================================================

// Children returns the subitems attached to the given parent, sorted by
// their Order field. Ties keep store iteration order.
func (s *Store) Children(parentID string) []types.LineItem {
	var out []types.LineItem
	for _, r := range s.rows {
		if r.ParentID == parentID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// Items returns all top-level items in store iteration order.
func (s *Store) Items() []types.LineItem {
	var out []types.LineItem
	for _, r := range s.rows {
		if r.Kind == types.KindItem {
			out = append(out, r)
		}
	}
	return out
}

// ItemsForKey returns all items sharing the given product key, in store
// iteration order, excluding the row with excludeID (pass "" to exclude
// nothing).
func (s *Store) ItemsForKey(key types.ProductKey, excludeID string) []types.LineItem {
	var out []types.LineItem
	for _, r := range s.rows {
		if r.Kind == types.KindItem && r.Key() == key && r.ID != excludeID {
			out = append(out, r)
		}
	}
	return out
}

// nextChildOrder returns the order value for a new subitem of the given
// parent: one past the highest existing child order, or 0 for the first
// child.
func (s *Store) nextChildOrder(parentID string) int {
	max := -1
	for _, r := range s.rows {
		if r.ParentID == parentID && r.Order > max {
			max = r.Order
		}
	}
	return max + 1
}

// siblings returns the sibling set of a row, sorted by Order, including
// the row itself. For items the siblings are the items sharing the same
// product key; for subitems they are the subitems sharing the same parent.
func (s *Store) siblings(row types.LineItem) []types.LineItem {
	var out []types.LineItem
	if row.Kind == types.KindItem {
		out = s.ItemsForKey(row.Key(), "")
	} else {
		for _, r := range s.rows {
			if r.Kind == types.KindSubitem && r.ParentID == row.ParentID {
				out = append(out, r)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}
