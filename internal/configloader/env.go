package configloader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/autofix/pkg/config"
)

// EnvPrefix is the prefix shared by all environment overrides.
const EnvPrefix = "AUTOFIX_"

// envVar binds one environment variable to a config field.
type envVar struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string) error
}

// envVars lists the supported overrides in the order they are applied.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"MODE", "Fix mode: generate, apply or disabled", func(cfg *config.Config, v string) error {
		cfg.Mode = v
		return nil
	}},
	{"JOBS", "Number of documents fixed in parallel (0 = auto)", func(cfg *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		cfg.Jobs = n
		return nil
	}},
	{"FORMAT", "Output format: text, json, diff or summary", func(cfg *config.Config, v string) error {
		cfg.Format = config.OutputFormat(v)
		return nil
	}},
	{"COLOR", "Colour output: auto, always or never", func(cfg *config.Config, v string) error {
		cfg.Color = config.ColorMode(v)
		return nil
	}},
	{"LOG_LEVEL", "Log level: debug, info, warn or error", func(cfg *config.Config, v string) error {
		cfg.LogLevel = v
		return nil
	}},
	{"STRICT_RACE_DETECTION", "Re-hash documents before writing: true or false", boolSetter(func(cfg *config.Config, b bool) {
		cfg.StrictRaceDetection = config.Bool(b)
	})},
	{"BACKUPS_ENABLED", "Write backups before fixing: true or false", boolSetter(func(cfg *config.Config, b bool) {
		cfg.Backups.Enabled = config.Bool(b)
	})},
	{"BACKUPS_MODE", "Backup mode: sidecar or none", func(cfg *config.Config, v string) error {
		cfg.Backups.Mode = v
		return nil
	}},
	{"NO_BACKUPS", "Disable backups: true or false", boolSetter(func(cfg *config.Config, b bool) {
		cfg.NoBackups = b
	})},
}

func boolSetter(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
		}
		set(cfg, b)
		return nil
	}
}

// LoadFromEnv applies AUTOFIX_* overrides read through getenv.
func LoadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for _, ev := range envVars {
		name := EnvPrefix + ev.suffix
		value := strings.TrimSpace(getenv(name))
		if value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// ListEnvVars returns the supported variable names with a description of each.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for _, ev := range envVars {
		out[EnvPrefix+ev.suffix] = ev.description
	}
	return out
}
