// Package appdirs resolves the on-disk directories Paneweave uses for
// configuration and persisted layout state.
package appdirs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/paneweave/paneweave/internal/identity"
	"github.com/paneweave/paneweave/internal/userpath"
)

const (
	// EnvConfigDir overrides the config directory (tests, portable installs).
	EnvConfigDir = "PANEWEAVE_CONFIG_DIR"
	// EnvStateDir overrides the state directory where layouts are persisted.
	EnvStateDir = "PANEWEAVE_STATE_DIR"
)

// ConfigDir returns the directory holding the global config and presets.
func ConfigDir() (string, error) {
	if override := os.Getenv(EnvConfigDir); override != "" {
		return ensureDir(userpath.ExpandUser(override))
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("appdirs: resolve config dir: %w", err)
	}
	return ensureDir(filepath.Join(base, identity.AppSlug))
}

// PresetsDir returns the directory holding user-defined layout presets.
func PresetsDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(dir, identity.GlobalPresetsDir))
}

// StateDir returns the directory holding persisted layout snapshots and the
// workspace database.
func StateDir() (string, error) {
	if override := os.Getenv(EnvStateDir); override != "" {
		return ensureDir(userpath.ExpandUser(override))
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(dir, identity.LayoutStateDir))
}

func ensureDir(dir string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("appdirs: dir is empty")
	}
	info, err := os.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("appdirs: stat %q: %w", dir, err)
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return "", fmt.Errorf("appdirs: create %q: %w", dir, err)
		}
		return dir, nil
	}
	if !info.IsDir() {
		return "", fmt.Errorf("appdirs: %q is not a directory", dir)
	}
	return dir, nil
}
