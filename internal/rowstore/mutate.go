// =============================================================================
// Quote Analyzer - Mutation Engine
// =============================================================================
//
// Every edit the user can make to the quote hierarchy is one of the
// operations in this file: reorder among siblings, toggle item/subitem,
// delete with cascade, spread (duplicate as subitem under multiple
// targets), or insert a new row.
//
// Operations targeting an id that is not in the store are silent no-ops.
// The UI layer is expected to prevent that through selection state, but
// the store must tolerate it. After any operation completes the store
// satisfies its invariants: unique ids, no dangling parent references,
// no attached row left behind by a deleted parent.
//
// =============================================================================

package rowstore

import (
	"github.com/quotedesk/quote-analyzer/internal/types"
)

// Direction selects which sibling a reorder swaps with.
type Direction string

const (
	// Up moves a row toward the front of its sibling list.
	Up Direction = "up"

	// Down moves a row toward the back of its sibling list.
	Down Direction = "down"
)

// =============================================================================
// REORDER
// =============================================================================

// Reorder moves a row up or down among its siblings by swapping order
// values with its neighbor. A reorder at either end of the sibling list,
// or with an unknown id, changes nothing.
//
// Sibling orders are first normalized to their current positions. Items
// all start life with order 0, and swapping two equal order values would
// move nothing; normalizing keeps the observed ordering and makes the
// swap effective.
func (s *Store) Reorder(id string, dir Direction) {
	row, ok := s.Get(id)
	if !ok {
		return
	}

	sibs := s.siblings(row)
	pos := -1
	for i := range sibs {
		if sibs[i].ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return
	}

	var swap int
	switch {
	case dir == Up && pos > 0:
		swap = pos - 1
	case dir == Down && pos < len(sibs)-1:
		swap = pos + 1
	default:
		// Already first or last among siblings: strict no-op, no order
		// value changes at all.
		return
	}

	for i := range sibs {
		sibs[i].Order = i
	}
	sibs[pos].Order, sibs[swap].Order = sibs[swap].Order, sibs[pos].Order
	for i := range sibs {
		s.update(sibs[i])
	}
}

// =============================================================================
// CONVERT TYPE
// =============================================================================

// ConvertType toggles a row between item and subitem.
//
// Subitem -> item: the row detaches from its parent and becomes a
// top-level item. It keeps its product key, so it still groups with the
// other quotes for the same product.
//
// Item -> subitem: the item cannot keep children as a subitem, so every
// child is first promoted to an independent item. The row then attaches
// under the first other item sharing its product key, taking the next
// child order of that parent. If no such item exists the conversion has
// no valid target and the row stays an item.
func (s *Store) ConvertType(id string) {
	row, ok := s.Get(id)
	if !ok {
		return
	}

	if row.Kind == types.KindSubitem {
		row.Kind = types.KindItem
		row.ParentID = ""
		row.Order = 0
		s.update(row)
		return
	}

	// Promote existing children to items before the row changes sides.
	for _, child := range s.Children(id) {
		child.Kind = types.KindItem
		child.ParentID = ""
		child.Order = 0
		s.update(child)
	}

	candidates := s.ItemsForKey(row.Key(), id)
	if len(candidates) == 0 {
		// No other item quotes this product; nothing to attach under.
		return
	}

	parent := candidates[0]
	row.Kind = types.KindSubitem
	row.ParentID = parent.ID
	row.Order = s.nextChildOrder(parent.ID)
	s.update(row)
}

// =============================================================================
// DELETE
// =============================================================================

// Delete removes a row. Deleting an item cascades to every subitem
// attached under it; deleting a subitem removes only that row.
func (s *Store) Delete(id string) {
	row, ok := s.Get(id)
	if !ok {
		return
	}

	if row.Kind == types.KindItem {
		for _, child := range s.Children(id) {
			s.remove(child.ID)
		}
	}
	s.remove(id)
}

// =============================================================================
// SPREAD
// =============================================================================

// Spread duplicates a row as a new subitem under each target item. Each
// duplicate gets a fresh id, attaches at the end of the target's child
// list, and takes the target item's own supplier; all other fields are
// copied verbatim. The source row is untouched: this is duplication, not
// a move. Unknown target ids and targets that are not items are skipped
// silently; only items can carry children.
func (s *Store) Spread(id string, targetIDs []string) {
	source, ok := s.Get(id)
	if !ok {
		return
	}

	for _, targetID := range targetIDs {
		target, ok := s.Get(targetID)
		if !ok || target.Kind != types.KindItem {
			continue
		}

		dup := source
		dup.ID = newRowID()
		dup.Kind = types.KindSubitem
		dup.ParentID = target.ID
		dup.Order = s.nextChildOrder(target.ID)
		dup.Supplier = target.Supplier
		s.add(dup)
	}
}

// =============================================================================
// INSERT
// =============================================================================

// Insert creates one new row from the given fields and returns its id.
// A subitem with a valid parent item attaches at the end of that parent's
// child list. Anything else - an item, or a subitem with no parent or an
// unknown parent - is placed as a top-level item so the store never gains
// a dangling reference.
func (s *Store) Insert(fields types.FlatRow, kind types.RowKind, parentID string) string {
	li := types.LineItem{
		ID:          newRowID(),
		Kind:        kind,
		Supplier:    fields.Supplier,
		Brand:       fields.Brand,
		Code:        fields.Code,
		Description: fields.Description,
		PowerType:   fields.PowerType,
		Price:       fields.Price,
	}

	attached := false
	if kind == types.KindSubitem && parentID != "" {
		if parent, ok := s.Get(parentID); ok && parent.Kind == types.KindItem {
			li.ParentID = parentID
			li.Order = s.nextChildOrder(parentID)
			attached = true
		}
	}
	if !attached {
		li.Kind = types.KindItem
		li.ParentID = ""
		li.Order = 0
	}

	s.add(li)
	return li.ID
}
