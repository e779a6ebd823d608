package configloader

import "github.com/yaklabco/autofix/pkg/config"

// merge layers override on top of base and returns a new Config.
// Empty strings, zero Jobs and nil pointers in override leave base alone.
// NoBackups and Strict can only be switched on.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Mode != "" {
		result.Mode = override.Mode
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.StrictRaceDetection != nil {
		result.StrictRaceDetection = config.Bool(*override.StrictRaceDetection)
	}

	if override.Backups.Enabled != nil {
		result.Backups.Enabled = config.Bool(*override.Backups.Enabled)
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	if override.NoBackups {
		result.NoBackups = true
	}
	if override.Strict {
		result.Strict = true
	}

	return &result
}

// MergeAll merges configs in order; later entries win.
func MergeAll(configs ...*config.Config) *config.Config {
	var result *config.Config
	for _, cfg := range configs {
		result = merge(result, cfg)
	}
	return result
}
