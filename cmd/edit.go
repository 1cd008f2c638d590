// =============================================================================
// Quote Analyzer - Edit Command
// =============================================================================
//
// This file defines the 'edit' command, which applies a list of edit
// operations to a flat quote table: reorder rows among their siblings,
// toggle item/subitem, delete with cascade, spread a row as a subitem
// under multiple items, insert new rows, and update cell values.
//
// COMMAND USAGE:
//   analyzer edit --file input/quotes.csv --ops edits.yaml
//   analyzer edit --file input/quotes.csv --list
//
// OPS FILE FORMAT:
//   ops:
//     - action: reorder
//       row: 3                # 1-based row number, see --list
//       direction: up
//     - action: convert
//       row: 2
//     - action: delete
//       row: 5
//     - action: spread
//       row: 4
//       targets: [1, 2]
//     - action: insert
//       kind: subitem
//       parent: 1
//       fields: {description: "Installation", price: 150}
//     - action: update
//       row: 2
//       fields: {price: 99.5}
//
// The edited table is re-flattened deterministically and written back
// (or to --output), keeping the same flat CSV shape it was read from.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quotedesk/quote-analyzer/internal/session"
	"github.com/quotedesk/quote-analyzer/internal/tableio"
	"github.com/quotedesk/quote-analyzer/internal/types"
	"github.com/quotedesk/quote-analyzer/internal/validation"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// editFilePath is the flat table to edit.
var editFilePath string

// opsFilePath is the YAML file listing the edit operations.
var opsFilePath string

// editOutput is the target path of the edited table. Empty overwrites
// the input.
var editOutput string

// listRows prints the numbered table instead of editing.
var listRows bool

// =============================================================================
// EDIT COMMAND DEFINITION
// =============================================================================

// editCmd represents the 'edit' command.
var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Apply edit operations to a quote table",
	Long: `The edit command loads a flat quote table, builds its item/subitem
hierarchy, applies the operations listed in a YAML ops file, and writes
the re-flattened table back out.

Use --list first to see the numbered rows the ops file refers to.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runEdit()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the edit command and its flags.
func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVar(
		&editFilePath,
		"file",
		"",
		"Path to the flat table to edit (required)",
	)
	editCmd.MarkFlagRequired("file")

	editCmd.Flags().StringVar(
		&opsFilePath,
		"ops",
		"",
		"Path to the YAML edit operations file",
	)

	editCmd.Flags().StringVar(
		&editOutput,
		"output",
		"",
		"Target path for the edited table (default: overwrite the input)",
	)

	editCmd.Flags().BoolVar(
		&listRows,
		"list",
		false,
		"Print the numbered rows and exit without editing",
	)
}

// =============================================================================
// MAIN EDIT FUNCTION
// =============================================================================

// runEdit loads the table, applies the operations and writes the result.
func runEdit() error {
	rows, err := tableio.ReadTable(editFilePath)
	if err != nil {
		return fmt.Errorf("failed to read table: %w", err)
	}

	sess := session.New(rows)

	if listRows {
		printNumberedRows(sess)
		return nil
	}

	if opsFilePath == "" {
		return fmt.Errorf("--ops is required unless --list is given")
	}

	cmds, err := session.LoadCommands(opsFilePath)
	if err != nil {
		return err
	}
	if err := sess.ApplyAll(cmds); err != nil {
		return err
	}

	// The mutations keep the store invariants; verify before writing so
	// a bug never silently corrupts the user's table.
	if vr := validation.ValidateStore(sess.Store()); !vr.Valid {
		return fmt.Errorf("edited table failed validation:\n%s",
			validation.FormatErrors(vr.Errors))
	}

	outputPath := editOutput
	if outputPath == "" {
		outputPath = editFilePath
	}
	if err := tableio.WriteCSVFile(outputPath, sess.Flat()); err != nil {
		return err
	}

	fmt.Printf("Applied %d operation(s): %s\n", len(cmds), outputPath)
	return nil
}

// printNumberedRows prints the store rows with the 1-based numbers the
// ops file uses, indenting subitems under their parents.
func printNumberedRows(sess *session.Session) {
	fmt.Fprintln(os.Stdout, "Row  Type     Supplier         Description                      Price")
	for i, r := range sess.Store().Rows() {
		indent := ""
		if r.Kind == types.KindSubitem {
			indent = "  ↳ "
		}
		fmt.Fprintf(os.Stdout, "%-4d %-8s %-16s %s%-30s %10.2f\n",
			i+1, r.Kind, r.Supplier, indent, r.Description, r.Price)
	}
}
