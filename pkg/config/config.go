// Package config defines the configuration types shared by the loader, the
// runner and the CLI. These are plain data; discovery and merging live in
// internal/configloader.
package config

import (
	"github.com/yaklabco/autofix/pkg/fix"
	"github.com/yaklabco/autofix/pkg/fsutil"
)

// OutputFormat selects a reporter.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// ColorMode controls ANSI colour in text output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// BackupsConfig controls backups taken before a document is rewritten.
type BackupsConfig struct {
	// Enabled is a pointer so a later layer can switch backups off.
	Enabled *bool  `yaml:"enabled"`
	Mode    string `yaml:"mode"`
}

// Config is the resolved configuration for a run.
type Config struct {
	// Mode is one of generate, apply or disabled.
	Mode string `yaml:"mode"`

	// Jobs is the number of documents fixed in parallel. Zero means GOMAXPROCS.
	Jobs int `yaml:"jobs"`

	Format   OutputFormat `yaml:"format"`
	Color    ColorMode    `yaml:"color"`
	LogLevel string       `yaml:"log_level"`

	// StrictRaceDetection re-hashes a document before writing it instead of
	// comparing only size and mtime.
	StrictRaceDetection *bool `yaml:"strict_race_detection"`

	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not read from config files).

	// NoBackups overrides Backups.Enabled.
	NoBackups bool `yaml:"-"`

	// Strict makes a run fail when diagnostics remain unfixed.
	Strict bool `yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Mode:                fix.ModeGenerate.String(),
		Jobs:                0,
		Format:              FormatText,
		Color:               ColorAuto,
		LogLevel:            "info",
		StrictRaceDetection: Bool(true),
		Backups: BackupsConfig{
			Enabled: Bool(false),
			Mode:    string(fsutil.BackupModeSidecar),
		},
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// FixMode parses Mode. An empty Mode is generate.
func (c *Config) FixMode() (fix.Mode, error) {
	if c.Mode == "" {
		return fix.ModeGenerate, nil
	}
	return fix.ParseMode(c.Mode)
}

// Backup returns the backup settings with NoBackups applied.
func (c *Config) Backup() fsutil.BackupConfig {
	mode := fsutil.BackupMode(c.Backups.Mode)
	if mode == "" {
		mode = fsutil.BackupModeSidecar
	}
	enabled := c.Backups.Enabled != nil && *c.Backups.Enabled
	return fsutil.BackupConfig{
		Enabled: enabled && !c.NoBackups,
		Mode:    mode,
	}
}

// StrictRace reports whether hash-based modification checks are on.
// Unset means on.
func (c *Config) StrictRace() bool {
	return c.StrictRaceDetection == nil || *c.StrictRaceDetection
}
