package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigPaths holds the configuration files found on disk. Missing files
// are empty strings.
type ConfigPaths struct {
	// User is os.UserConfigDir()/autofix/config.{yaml,yml}.
	User string

	// Project is the nearest .autofix.{yml,yaml} at or above the working directory.
	Project string

	// Explicit comes from --config.
	Explicit string
}

// projectConfigFiles are searched for in each directory, in order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".autofix.yml",
	".autofix.yaml",
}

// vcsRootMarkers stop the upward search.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds the user and project configuration files.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		User:    findUserConfig(),
		Project: project,
	}, nil
}

func findUserConfig() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml"} {
		path := filepath.Join(dir, "autofix", name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig walks upward from startDir looking for a project config.
// The search ends at a VCS root, the home directory or the filesystem root.
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

		for _, name := range projectConfigFiles {
			path := filepath.Join(dir, name)
			if fileExists(path) {
				return path, nil
			}
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

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
