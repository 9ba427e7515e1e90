package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/tableside/pkg/tableside"
	"github.com/mesh-intelligence/tableside/pkg/types"
)

// execute runs the root command with fresh global flags and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	flagConfigDir, flagVerbose, flagJSON = "", false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "", "--config-dir", dir, "version")
	require.NoError(t, err)
	assert.Equal(t, "tableside v"+tableside.Version+"\nmodule: "+tableside.ModulePath+"\n", out)
}

func TestInitWritesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "conf")
	out, err := execute(t, "", "--config-dir", dir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "tableside initialized in "+dir)

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	var got types.Config
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, types.DefaultConfig(), got)

	roster, err := os.ReadFile(filepath.Join(dir, types.DefaultRosterPath))
	require.NoError(t, err)
	assert.Contains(t, string(roster), "S1,Jane Doe")

	// A second init keeps what is there.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("tables: 8\n"), 0o644))
	out, err = execute(t, "", "--config-dir", dir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "kept existing")
	data, err = os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "tables: 8\n", string(data))
}

func TestSessionFromStdin(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "", "--config-dir", dir, "init")
	require.NoError(t, err)

	script := "order 1 S1\nadd Beverages | Cola | 2\nsubmit\nqueue\nnext\nsales\n"
	out, err := execute(t, script, "--config-dir", dir, "session")
	require.NoError(t, err)
	assert.Contains(t, out, "submitted order 1, table 1 OCCUPIED\n")
	assert.Contains(t, out, "ID: 1 | Tbl: 1 | Staff: S1 | Items: 1 | Total: $5.00\n")
	assert.Contains(t, out, "completed order 1, table 1 VACANT\n")
	assert.Contains(t, out, "  S1 | 1 order | 2 items | $5.00\n")
}

func TestSessionFromFile(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "shift.txt")
	require.NoError(t, os.WriteFile(script, []byte("order 30 anyone\norder 31 anyone\n"), 0o644))

	out, err := execute(t, "", "--config-dir", dir, "session", script)
	require.NoError(t, err)
	assert.Contains(t, out, "order 1 for table 30 by anyone\n")
	assert.Contains(t, out, "error: table does not exist: 31\n")

	_, err = execute(t, "", "--config-dir", dir, "session", filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestTablesJSONWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TABLESIDE_TABLES", "3")
	t.Setenv("TABLESIDE_SEATS_PER_TABLE", "6")

	out, err := execute(t, "", "--config-dir", dir, "--json", "tables")
	require.NoError(t, err)

	var got []tableJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 3)
	assert.Equal(t, tableJSON{Number: 3, Capacity: 6, Status: "VACANT"}, got[2])
}

func TestMenuFromConfig(t *testing.T) {
	dir := t.TempDir()
	menuYAML := "categories:\n  - name: Drinks\n    items:\n      - name: Water\n        price: \"1.00\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "menu.yaml"), []byte(menuYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("menu_path: menu.yaml\nledger: false\n"), 0o644))

	out, err := execute(t, "", "--config-dir", dir, "menu")
	require.NoError(t, err)
	assert.Equal(t, "Drinks\n  Water | $1.00\n", out)

	out, err = execute(t, "", "--config-dir", dir, "--json", "menu")
	require.NoError(t, err)
	var items []menuItemJSON
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	assert.Equal(t, []menuItemJSON{{Category: "Drinks", Name: "Water", Price: "1.00"}}, items)
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"no tables", "tables: 0\n", types.ErrTablesInvalid},
		{"bad policy", "table_policy: first-come\n", types.ErrPolicyUnknown},
		{"bad log level", "log_level: loud\n", types.ErrLogLevelUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(tt.content), 0o644))
			_, err := execute(t, "", "--config-dir", dir, "tables")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
