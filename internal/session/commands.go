// =============================================================================
// Quote Analyzer - Edit Commands
// =============================================================================
//
// Every action the interactive editor exposes as a button is an explicit
// command here: reorder, convert, delete, spread, insert, update. The
// edit CLI loads a YAML list of commands and dispatches them against a
// session one at a time, re-deriving the flat projection afterwards.
//
// Rows are addressed by their 1-based position in store iteration order
// ("row"), since ids are generated fresh per session, or by id for
// programmatic callers holding a live session. A command addressing a
// row that does not exist is a silent no-op, mirroring the mutation
// engine's own tolerance; only a malformed command (unknown action,
// missing arguments) is an error.
//
// =============================================================================

package session

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quotedesk/quote-analyzer/internal/rowstore"
	"github.com/quotedesk/quote-analyzer/internal/types"
)

// =============================================================================
// COMMAND STRUCTURE
// =============================================================================

// Command actions.
const (
	ActionReorder = "reorder"
	ActionConvert = "convert"
	ActionDelete  = "delete"
	ActionSpread  = "spread"
	ActionInsert  = "insert"
	ActionUpdate  = "update"
)

// Command is one edit operation from an ops file.
type Command struct {
	// Action selects the operation: reorder, convert, delete, spread,
	// insert or update.
	Action string `yaml:"action"`

	// Row addresses the target by 1-based position in store iteration
	// order. Ignored when ID is set.
	Row int `yaml:"row,omitempty"`

	// ID addresses the target row directly.
	ID string `yaml:"id,omitempty"`

	// Direction is "up" or "down" for reorder commands.
	Direction string `yaml:"direction,omitempty"`

	// Targets addresses the target items of a spread command, by
	// 1-based row position.
	Targets []int `yaml:"targets,omitempty"`

	// Kind is "item" or "subitem" for insert commands.
	Kind string `yaml:"kind,omitempty"`

	// Parent addresses the parent item of an inserted subitem, by
	// 1-based row position.
	Parent int `yaml:"parent,omitempty"`

	// Fields carries the column values for insert and update commands.
	Fields *FieldPatch `yaml:"fields,omitempty"`
}

// FieldPatch holds column values for insert and update commands.
// For updates, nil pointers leave the stored value untouched.
type FieldPatch struct {
	Supplier    *string  `yaml:"supplier,omitempty"`
	Brand       *string  `yaml:"brand,omitempty"`
	Code        *string  `yaml:"code,omitempty"`
	Description *string  `yaml:"description,omitempty"`
	PowerType   *string  `yaml:"power_type,omitempty"`
	Price       *float64 `yaml:"price,omitempty"`
}

// flatRow materializes a patch into a flat row for inserts.
func (p *FieldPatch) flatRow() types.FlatRow {
	var row types.FlatRow
	if p == nil {
		return row
	}
	if p.Supplier != nil {
		row.Supplier = *p.Supplier
	}
	if p.Brand != nil {
		row.Brand = *p.Brand
	}
	if p.Code != nil {
		row.Code = *p.Code
	}
	if p.Description != nil {
		row.Description = *p.Description
	}
	if p.PowerType != nil {
		row.PowerType = *p.PowerType
	}
	if p.Price != nil {
		row.Price = *p.Price
	}
	return row
}

// opsFile is the YAML shape of an edit operations file.
type opsFile struct {
	Ops []Command `yaml:"ops"`
}

// LoadCommands reads an edit operations file.
func LoadCommands(path string) ([]Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ops file: %w", err)
	}

	var file opsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse ops file: %w", err)
	}

	return file.Ops, nil
}

// =============================================================================
// DISPATCH
// =============================================================================

// Apply dispatches one command against the session. Commands addressing
// rows that no longer exist are silent no-ops; malformed commands are
// errors.
func (s *Session) Apply(cmd Command) error {
	switch cmd.Action {
	case ActionReorder:
		dir := rowstore.Direction(cmd.Direction)
		if dir != rowstore.Up && dir != rowstore.Down {
			return fmt.Errorf("reorder: direction must be %q or %q, got %q",
				rowstore.Up, rowstore.Down, cmd.Direction)
		}
		s.store.Reorder(s.resolve(cmd), dir)

	case ActionConvert:
		s.store.ConvertType(s.resolve(cmd))

	case ActionDelete:
		s.RequestDelete(s.resolve(cmd))
		s.ConfirmDelete()

	case ActionSpread:
		s.SelectSpreadSource(s.resolve(cmd))
		targets := make([]string, 0, len(cmd.Targets))
		for _, t := range cmd.Targets {
			if id := s.rowID(t); id != "" {
				targets = append(targets, id)
			}
		}
		s.ApplySpread(targets)

	case ActionInsert:
		kind := types.RowKind(cmd.Kind)
		if kind != types.KindItem && kind != types.KindSubitem {
			return fmt.Errorf("insert: kind must be %q or %q, got %q",
				types.KindItem, types.KindSubitem, cmd.Kind)
		}
		s.store.Insert(cmd.Fields.flatRow(), kind, s.rowID(cmd.Parent))

	case ActionUpdate:
		if cmd.Fields == nil {
			return fmt.Errorf("update: fields are required")
		}
		s.applyUpdate(s.resolve(cmd), cmd.Fields)

	default:
		return fmt.Errorf("unknown action %q", cmd.Action)
	}

	return nil
}

// ApplyAll dispatches a command list in order, stopping at the first
// malformed command.
func (s *Session) ApplyAll(cmds []Command) error {
	for i, cmd := range cmds {
		if err := s.Apply(cmd); err != nil {
			return fmt.Errorf("op %d: %w", i+1, err)
		}
	}
	return nil
}

// applyUpdate patches the addressed row's columns in place. Identity and
// hierarchy fields are not editable this way.
func (s *Session) applyUpdate(id string, patch *FieldPatch) {
	row, ok := s.store.Get(id)
	if !ok {
		return
	}
	if patch.Supplier != nil {
		row.Supplier = *patch.Supplier
	}
	if patch.Brand != nil {
		row.Brand = *patch.Brand
	}
	if patch.Code != nil {
		row.Code = *patch.Code
	}
	if patch.Description != nil {
		row.Description = *patch.Description
	}
	if patch.PowerType != nil {
		row.PowerType = *patch.PowerType
	}
	if patch.Price != nil {
		row.Price = *patch.Price
	}
	s.store.Update(row)
}

// resolve returns the id a command addresses: the explicit id when set,
// otherwise the row at the 1-based position. Returns "" for anything out
// of range, which downstream operations treat as a no-op.
func (s *Session) resolve(cmd Command) string {
	if cmd.ID != "" {
		return cmd.ID
	}
	return s.rowID(cmd.Row)
}

// rowID maps a 1-based row position to an id, or "" when out of range.
func (s *Session) rowID(pos int) string {
	rows := s.store.Rows()
	if pos < 1 || pos > len(rows) {
		return ""
	}
	return rows[pos-1].ID
}
