package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/autofix/internal/logging"
	"github.com/yaklabco/autofix/pkg/config"
	"github.com/yaklabco/autofix/pkg/fsutil"
)

// ValidationError describes one invalid configuration value.
type ValidationError struct {
	// Field is the config key, e.g. "backups.mode".
	Field string

	Value   any
	Message string

	// FilePath is the config file the value came from, if known.
	FilePath string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult collects errors, which fail loading, and warnings, which don't.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:    true,
	config.FormatJSON:    true,
	config.FormatDiff:    true,
	config.FormatSummary: true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownColors = map[config.ColorMode]bool{
	config.ColorAuto:   true,
	config.ColorAlways: true,
	config.ColorNever:  true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[fsutil.BackupMode]bool{
	fsutil.BackupModeSidecar: true,
	fsutil.BackupModeNone:    true,
}

// Validate checks cfg for invalid values.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if _, err := cfg.FixMode(); err != nil {
		result.fail("mode", cfg.Mode, "%v", err)
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, json, diff, summary", cfg.Format)
	}

	if cfg.Color != "" && !knownColors[cfg.Color] {
		result.fail("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}

	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		result.warn("log_level", cfg.LogLevel, "unknown log level %q; using info", cfg.LogLevel)
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[fsutil.BackupMode(cfg.Backups.Mode)] {
		result.fail("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	return result
}

// ValidateWithFile validates cfg and tags every finding with filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
