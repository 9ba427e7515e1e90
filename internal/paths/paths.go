// Package paths resolves the configuration directory and the files it
// refers to.
package paths

import (
	"os"
	"path/filepath"
)

// DefaultConfigDirName is the CWD-relative configuration directory.
const DefaultConfigDirName = ".tableside"

// EnvConfigDir overrides the configuration directory.
const EnvConfigDir = "TABLESIDE_CONFIG_DIR"

// getwd can be overridden in tests.
var getwd = os.Getwd

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > TABLESIDE_CONFIG_DIR env > $(CWD)/.tableside.
// The result is absolute.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultConfigDirName), nil
}

// ResolveFile returns path unchanged when it is empty or absolute, and
// joined onto baseDir otherwise. Config files name the roster and menu
// relative to the directory holding config.yaml.
func ResolveFile(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
