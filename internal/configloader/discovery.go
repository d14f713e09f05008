package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigPaths are the configuration files found for a run. Missing files
// are empty strings.
type ConfigPaths struct {
	// User is $XDG_CONFIG_HOME/typfmt/config.{yml,yaml,toml}.
	User string

	// Project is the nearest project file above the working directory.
	Project string

	// Explicit is the --config path.
	Explicit string
}

// projectConfigFiles are searched in each directory, in order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".typfmt.yml",
	".typfmt.yaml",
	"typfmt.toml",
	".typfmt.toml",
}

//nolint:gochecknoglobals // Read-only lookup table.
var userConfigFiles = []string{"config.yml", "config.yaml", "config.toml"}

//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

func findUserConfig() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return firstExisting(filepath.Join(configHome, "typfmt"), userConfigFiles)
}

// FindProjectConfig searches upward from startDir for a project config file.
// The search stops at a VCS root, the home directory, or the filesystem
// root, whichever comes first.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("discover config: %w", err)
		}
		if path := firstExisting(dir, projectConfigFiles); path != "" {
			return path, nil
		}
		if isVCSRoot(dir) || (home != "" && dir == home) {
			return "", nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func firstExisting(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
