// Read-only floor views: menu, staff and tables.
package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tableside/internal/floor"
	"github.com/mesh-intelligence/tableside/internal/session"
)

// menuItemJSON is the --json shape of a menu item. Price is a decimal
// string.
type menuItemJSON struct {
	Category    string `json:"category"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
}

type tableJSON struct {
	Number   int    `json:"number"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status"`
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "List the menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withFloor(cmd, "menu", func(f *floor.Floor, w io.Writer) error {
			var items []menuItemJSON
			for _, cat := range f.Catalog().Categories() {
				for _, item := range cat.Items() {
					items = append(items, menuItemJSON{
						Category:    cat.Name(),
						Name:        item.Name(),
						Description: item.Description(),
						Price:       item.Price().StringFixed(2),
					})
				}
			}
			return writeJSON(w, items)
		})
	},
}

var staffCmd = &cobra.Command{
	Use:   "staff",
	Short: "List the wait staff roster",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withFloor(cmd, "staff", func(f *floor.Floor, w io.Writer) error {
			return writeJSON(w, f.Roster().Staff())
		})
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List tables and their status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withFloor(cmd, "tables", func(f *floor.Floor, w io.Writer) error {
			var out []tableJSON
			for _, t := range f.Tables() {
				out = append(out, tableJSON{Number: t.Number(), Capacity: t.Capacity(), Status: string(t.Status())})
			}
			return writeJSON(w, out)
		})
	},
}

// withFloor opens the configured floor and prints one view: as JSON with
// --json, otherwise as the session command of the same name would.
func withFloor(cmd *cobra.Command, command string, asJSON func(*floor.Floor, io.Writer) error) error {
	ctx := cmd.Context()
	f, l, err := openFloor(ctx)
	if err != nil {
		return err
	}
	if l != nil {
		defer l.Close()
	}

	if flagJSON {
		return asJSON(f, cmd.OutOrStdout())
	}
	s, err := session.New(f, cmd.OutOrStdout(), session.WithLogger(logger.Named("session")))
	if err != nil {
		return err
	}
	return s.Exec(ctx, command)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
