// Version command for the tableside CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tableside/pkg/tableside"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tableside version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "tableside v%s\nmodule: %s\n", tableside.Version, tableside.ModulePath)
		return nil
	},
}
