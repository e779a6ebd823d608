package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/autofix/internal/configloader"
	"github.com/yaklabco/autofix/internal/logging"
	"github.com/yaklabco/autofix/pkg/config"
	"github.com/yaklabco/autofix/pkg/fsutil"
)

// defaultConfigFile is the file written by "config init".
const defaultConfigFile = ".autofix.yml"

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create configuration",
		Args:  usageArgs(cobra.NoArgs),
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigEnvCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as YAML",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			loadResult, err := loadConfig(cmd, &config.Config{})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range loadResult.LoadedFrom {
				fmt.Fprintf(out, "# loaded from %s\n", path)
			}

			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(loadResult.Config); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			return enc.Close()
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var force bool
	var output string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a " + defaultConfigFile + " with the default settings",
		Long: `Create a ` + defaultConfigFile + ` configuration file in the current directory
holding the default settings.

Examples:
  autofix config init                      Create ` + defaultConfigFile + `
  autofix config init --output ci.yml      Write to a custom file path
  autofix config init --force              Overwrite an existing file`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, output, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVarP(&output, "output", "o", defaultConfigFile, "output file path")

	return cmd
}

func runConfigInit(cmd *cobra.Command, output string, force bool) error {
	logger := logging.Default()

	absPath, err := filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	_, statErr := os.Stat(absPath)
	switch {
	case statErr == nil && !force:
		return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, output)
	case statErr == nil:
		logger.Warn("overwriting existing file", logging.FieldPath, output)
	case !errors.Is(statErr, fs.ErrNotExist):
		return fmt.Errorf("stat %s: %w", output, statErr)
	}

	content, err := yaml.Marshal(config.NewConfig())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	content = append([]byte("# autofix configuration\n"), content...)

	if err := fsutil.WriteAtomic(cmd.Context(), absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	logger.Info("created configuration file", logging.FieldPath, output)
	return nil
}

func newConfigEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the " + configloader.EnvPrefix + "* environment overrides",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, _ []string) {
			vars := configloader.ListEnvVars()
			out := cmd.OutOrStdout()
			for _, name := range slices.Sorted(maps.Keys(vars)) {
				fmt.Fprintf(out, "%-32s %s\n", name, vars[name])
			}
		},
	}
}
