// Package configloader resolves the configuration for a run by layering
// defaults, config files, environment variables and CLI flags.
package configloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/autofix/pkg/config"
)

// ErrInvalidConfig marks failures caused by configuration content rather
// than I/O. Callers map it to a configuration exit code.
var ErrInvalidConfig = errors.New("invalid configuration")

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts. Defaults to the
	// current directory.
	WorkingDir string

	// ExplicitPath is a config file from --config. It is loaded after the
	// discovered files.
	ExplicitPath string

	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// Getenv reads environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	// CLIConfig holds values from command-line flags. It has the highest
	// precedence.
	CLIConfig *config.Config
}

// LoadResult is the resolved configuration and where it came from.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files that were read, lowest precedence first.
	LoadedFrom []string

	// Warnings are non-fatal findings.
	Warnings []string
}

// Load resolves the configuration. Precedence, highest first:
//  1. CLI flags (opts.CLIConfig)
//  2. AUTOFIX_* environment variables
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.autofix.yml, searched upward)
//  5. User config (os.UserConfigDir()/autofix/config.yaml)
//  6. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, err
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		path string
		skip bool
	}{
		{paths.User, opts.IgnoreUserConfig},
		{paths.Project, opts.IgnoreProjectConfig},
		{paths.Explicit, false},
	}
	for _, layer := range layers {
		if layer.path == "" || layer.skip {
			continue
		}

		fileCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, err
		}
		if err := result.absorb(ValidateWithFile(fileCfg, layer.path)); err != nil {
			return nil, err
		}

		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		getenv := opts.Getenv
		if getenv == nil {
			getenv = os.Getenv
		}
		envCfg := &config.Config{}
		if err := LoadFromEnv(envCfg, getenv); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		cfg = merge(cfg, envCfg)
	}

	cfg = merge(cfg, opts.CLIConfig)

	if err := result.absorb(Validate(cfg)); err != nil {
		return nil, err
	}

	result.Config = cfg
	return result, nil
}

// absorb records warnings and turns errors into a single ErrInvalidConfig.
func (r *LoadResult) absorb(v *ValidationResult) error {
	for _, w := range v.Warnings {
		r.Warnings = append(r.Warnings, w.Error())
	}
	if v.Valid() {
		return nil
	}

	errs := make([]error, 0, len(v.Errors))
	for i := range v.Errors {
		errs = append(errs, &v.Errors[i])
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// loadConfigFile reads a YAML config file. Unknown keys are errors.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &config.Config{}
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: parse YAML: %w", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}
