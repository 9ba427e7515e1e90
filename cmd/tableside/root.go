// Root command for the tableside CLI.
package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/tableside/internal/paths"
	"github.com/mesh-intelligence/tableside/pkg/tableside"
	"github.com/mesh-intelligence/tableside/pkg/types"
)

// exitUserError is the process exit code for any failed command.
const exitUserError = 1

// Global flag values.
var (
	flagConfigDir string
	flagVerbose   bool
	flagJSON      bool
)

// State loaded by PersistentPreRunE and shared by all subcommands.
var (
	configDir string
	cfg       types.Config
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "tableside",
	Short:         "Tableside tracks tables, orders and the kitchen queue of a restaurant floor",
	Version:       tableside.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}
		configDir = dir

		loaded, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		cfg = loaded

		l, err := newLogger(cfg.LogLevel, flagVerbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.tableside)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "human-readable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON where supported")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(staffCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(sessionCmd)
}
