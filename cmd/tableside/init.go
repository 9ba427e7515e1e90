// Init command for the tableside CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/tableside/pkg/types"
)

// defaultRoster seeds waitstaff.csv so a fresh floor has someone to take
// orders.
const defaultRoster = `# Wait staff roster: one "staffId,name" per line.
# Lines starting with # are ignored.
S1,Jane Doe
S2,John Smith
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config.yaml and roster",
	Long: `Create the configuration directory with a default config.yaml and a
sample wait staff roster. Existing files are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, configFileExt)
	wrote, err := writeConfigIfMissing(configPath)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	report(cmd, configPath, wrote)

	rosterPath := filepath.Join(configDir, types.DefaultRosterPath)
	wrote, err = writeIfMissing(rosterPath, []byte(defaultRoster))
	if err != nil {
		return fmt.Errorf("write roster: %w", err)
	}
	report(cmd, rosterPath, wrote)

	logger.Info("tableside initialized")
	fmt.Fprintf(cmd.OutOrStdout(), "tableside initialized in %s\n", configDir)
	return nil
}

func report(cmd *cobra.Command, path string, wrote bool) {
	if wrote {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "kept existing %s\n", path)
}

// writeConfigIfMissing creates config.yaml with default values. It reports
// whether the file was written.
func writeConfigIfMissing(path string) (bool, error) {
	def := types.DefaultConfig()
	data, err := yaml.Marshal(&def)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# tableside configuration\n")
	return writeIfMissing(path, append(header, data...))
}

func writeIfMissing(path string, data []byte) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
