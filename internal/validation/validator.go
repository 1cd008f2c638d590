// =============================================================================
// Quote Analyzer - Store Validation Module
// =============================================================================
//
// This module checks the structural invariants of a row store:
//
//   1. Every id is unique.
//   2. Every parent reference points at an existing item.
//   3. Attached rows are subitems; items carry no parent reference.
//   4. Subitems under one parent have distinct order values. Items are
//      exempt: every item is born with order 0 and the flattener breaks
//      ties by store order, so equal item orders are normal.
//
// The mutation engine maintains these invariants by construction, so
// validation is a safety net: the process pipeline runs it after the edit
// phase and refuses to render a corrupted table, which is far easier to
// diagnose than a silently wrong comparison.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/quotedesk/quote-analyzer/internal/rowstore"
	"github.com/quotedesk/quote-analyzer/internal/types"
)

// =============================================================================
// VALIDATION ERROR
// =============================================================================

// ValidationError describes one invariant violation found in a store.
type ValidationError struct {
	// RowID is the id of the offending row.
	RowID string

	// Field is the field the violation concerns (e.g. "parentId").
	Field string

	// Message is a human-readable description of the violation.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %s: %s: %s", e.RowID, e.Field, e.Message)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult aggregates the outcome of validating a store.
type ValidationResult struct {
	// Valid is true when no violations were found.
	Valid bool

	// Errors lists every violation found.
	Errors []*ValidationError
}

// =============================================================================
// VALIDATION FUNCTIONS
// =============================================================================

// ValidateStore checks every structural invariant of the store and
// returns the aggregated result.
func ValidateStore(s *rowstore.Store) *ValidationResult {
	result := &ValidationResult{Valid: true}

	rows := s.Rows()

	// Invariant 1: unique ids.
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		if seen[r.ID] {
			result.addError(r.ID, "id", "duplicate id")
		}
		seen[r.ID] = true
	}

	// Invariants 2 and 3: parent references.
	for _, r := range rows {
		switch {
		case r.Kind == types.KindItem && r.Attached():
			result.addError(r.ID, "parentId", "item carries a parent reference")

		case r.Kind == types.KindSubitem && !r.Attached():
			result.addError(r.ID, "parentId", "subitem is not attached to a parent")

		case r.Attached():
			parent, ok := s.Get(r.ParentID)
			if !ok {
				result.addError(r.ID, "parentId",
					fmt.Sprintf("parent %s does not exist", r.ParentID))
			} else if parent.Kind != types.KindItem {
				result.addError(r.ID, "parentId",
					fmt.Sprintf("parent %s is not an item", r.ParentID))
			}
		}
	}

	// Invariant 4: distinct order values among subitem siblings.
	checkSiblingOrders(rows, result)

	return result
}

// checkSiblingOrders verifies that subitems sharing a parent carry
// distinct order values.
func checkSiblingOrders(rows []types.LineItem, result *ValidationResult) {
	childOrders := make(map[string]map[int]string)

	for _, r := range rows {
		if r.Kind != types.KindSubitem || r.ParentID == "" {
			continue // unattached subitems are reported by the parent check
		}
		if childOrders[r.ParentID] == nil {
			childOrders[r.ParentID] = make(map[int]string)
		}
		if other, dup := childOrders[r.ParentID][r.Order]; dup {
			result.addError(r.ID, "order",
				fmt.Sprintf("order %d collides with subitem %s", r.Order, other))
		}
		childOrders[r.ParentID][r.Order] = r.ID
	}
}

// addError records a violation and marks the result invalid.
func (r *ValidationResult) addError(rowID, field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, &ValidationError{
		RowID:   rowID,
		Field:   field,
		Message: message,
	})
}

// FormatErrors renders a list of validation errors as a readable block,
// one violation per line.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation error(s):\n", len(errors)))
	for i, e := range errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, e.Error()))
	}
	return sb.String()
}
