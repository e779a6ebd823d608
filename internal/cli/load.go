package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/autofix/internal/configloader"
	"github.com/yaklabco/autofix/internal/logging"
	"github.com/yaklabco/autofix/pkg/config"
)

// loadConfig resolves the configuration for cmd, with cliCfg holding the
// values of flags the user set. It applies the configured log level unless
// --debug is on.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*configloader.LoadResult, error) {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	if cmd.Flags().Changed("color") {
		color, err := cmd.Flags().GetString("color")
		if err != nil {
			return nil, fmt.Errorf("get color flag: %w", err)
		}
		cliCfg.Color = config.ColorMode(color)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if debug, _ := cmd.Flags().GetBool("debug"); !debug {
		logging.SetLevel(loadResult.Config.LogLevel)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, loadResult.LoadedFrom)
	}

	return loadResult, nil
}
