// =============================================================================
// Quote Analyzer - Editing Session
// =============================================================================
//
// A Session owns the mutable state of one editing interaction: the row
// store plus the transient UI selections (a delete awaiting confirmation,
// the source row chosen for a spread). Modeling this as one explicit
// object keeps sessions independent and testable; nothing here is a
// package-level global.
//
// The flat table is always a derived, disposable projection: it is
// recomputed from the store after every mutation and never edited
// directly.
//
// =============================================================================

package session

import (
	"github.com/quotedesk/quote-analyzer/internal/rowstore"
	"github.com/quotedesk/quote-analyzer/internal/types"
)

// Session is the state of one editing session.
type Session struct {
	store *rowstore.Store

	// pendingDeleteID is the row whose deletion awaits confirmation.
	// Empty when no delete is pending.
	pendingDeleteID string

	// spreadSourceID is the row selected as the spread source.
	// Empty when spread mode is inactive.
	spreadSourceID string
}

// New builds a session from a flat table. The builder assigns hierarchy
// links; all prior edits (if the caller held an older session) are gone,
// matching the replace-wholesale lifecycle of an upload.
func New(rows []types.FlatRow) *Session {
	return &Session{
		store: rowstore.Build(rows),
	}
}

// Store exposes the underlying row store.
func (s *Session) Store() *rowstore.Store {
	return s.store
}

// Flat returns the current flat projection of the store.
func (s *Session) Flat() []types.FlatRow {
	return rowstore.Flatten(s.store)
}

// Load replaces the session's table wholesale, discarding all edits and
// transient selections.
func (s *Session) Load(rows []types.FlatRow) {
	s.store = rowstore.Build(rows)
	s.pendingDeleteID = ""
	s.spreadSourceID = ""
}

// =============================================================================
// DELETE CONFIRMATION FLOW
// =============================================================================

// RequestDelete marks a row for deletion pending confirmation.
func (s *Session) RequestDelete(id string) {
	s.pendingDeleteID = id
}

// PendingDelete returns the row id awaiting delete confirmation, or ""
// when none is pending.
func (s *Session) PendingDelete() string {
	return s.pendingDeleteID
}

// ConfirmDelete executes the pending delete. Confirming with nothing
// pending is a no-op.
func (s *Session) ConfirmDelete() {
	if s.pendingDeleteID == "" {
		return
	}
	s.store.Delete(s.pendingDeleteID)
	s.pendingDeleteID = ""
}

// CancelDelete clears a pending delete without executing it.
func (s *Session) CancelDelete() {
	s.pendingDeleteID = ""
}

// =============================================================================
// SPREAD SELECTION FLOW
// =============================================================================

// SelectSpreadSource marks a row as the spread source.
func (s *Session) SelectSpreadSource(id string) {
	s.spreadSourceID = id
}

// SpreadSource returns the currently selected spread source id, or ""
// when spread mode is inactive.
func (s *Session) SpreadSource() string {
	return s.spreadSourceID
}

// ApplySpread duplicates the selected source under each target item and
// leaves spread mode. A spread with no source selected is a no-op.
func (s *Session) ApplySpread(targetIDs []string) {
	if s.spreadSourceID == "" {
		return
	}
	s.store.Spread(s.spreadSourceID, targetIDs)
	s.spreadSourceID = ""
}
