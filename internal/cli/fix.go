package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/autofix/internal/logging"
	"github.com/yaklabco/autofix/pkg/config"
	"github.com/yaklabco/autofix/pkg/pipeline"
	"github.com/yaklabco/autofix/pkg/reporter"
	"github.com/yaklabco/autofix/pkg/runner"
)

type fixFlags struct {
	mode       string
	format     string
	jobs       int
	backup     bool
	noBackup   bool
	strictRace bool
	strict     bool
	compact    bool
	verbose    bool
}

func newFixCommand() *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix REPORT...",
		Short: "Fix the documents listed in diagnostics reports",
		Long:  fixLongDescription,
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, flags)
		},
	}

	addFixFlags(cmd, flags)

	return cmd
}

const fixLongDescription = `Fix the documents listed in one or more diagnostics reports.

Reports are YAML, JSON or TOML files, chosen by extension. A document named
by several reports is fixed once with the diagnostics of all of them.

By default fixes are only computed (generate mode); use --mode apply to write
them back.

Examples:
  autofix fix lint.json                       # Show which fixes would apply
  autofix fix lint.json --format diff         # Show fixes as a unified diff
  autofix fix lint.json --mode apply          # Write fixes to disk
  autofix fix a.yaml b.toml --mode apply --backup
  autofix fix lint.json --strict              # Fail if diagnostics remain`

func runFix(cmd *cobra.Command, args []string, flags *fixFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	loadResult, err := loadConfig(cmd, cliConfigFromFlags(cmd, flags))
	if err != nil {
		return err
	}
	cfg := loadResult.Config

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	pipelineOpts, err := pipeline.OptionsFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	logger.Debug("starting fix run",
		logging.FieldReports, args,
		logging.FieldMode, pipelineOpts.Mode,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldFormat, format,
	)

	result, runErr := runner.New().Run(ctx, runner.Options{
		Reports:  args,
		Jobs:     cfg.Jobs,
		Pipeline: pipelineOpts,
	})
	if result == nil {
		return runErr
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       string(cfg.Color),
		ShowSummary: true,
		Verbose:     flags.verbose,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return errors.Join(runErr, fmt.Errorf("report results: %w", err))
	}
	if runErr != nil {
		return runErr
	}

	logger.Debug("fix run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
	)

	if result.HasErrors() {
		return fmt.Errorf("%w: %d of %d", ErrDocumentsFailed, result.Stats.FilesErrored, result.Stats.FilesDiscovered)
	}
	if cfg.Strict && result.HasUnfixed() {
		return fmt.Errorf("%w: %d", ErrUnfixed, result.Stats.DiagnosticsUnfixed)
	}
	return nil
}

// cliConfigFromFlags returns a config holding only the flags the user set,
// so unset flags do not override lower layers.
func cliConfigFromFlags(cmd *cobra.Command, flags *fixFlags) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("mode") {
		cfg.Mode = flags.mode
	}
	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if changed("backup") {
		cfg.Backups.Enabled = config.Bool(flags.backup)
	}
	if changed("strict-race") {
		cfg.StrictRaceDetection = config.Bool(flags.strictRace)
	}
	cfg.NoBackups = flags.noBackup
	cfg.Strict = flags.strict

	return cfg
}

func addFixFlags(cmd *cobra.Command, flags *fixFlags) {
	cmd.Flags().StringVar(&flags.mode, "mode", "generate", "fix mode: generate, apply, disabled")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff, summary")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of documents fixed in parallel (0 = auto)")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "create a backup before rewriting a document")
	cmd.Flags().BoolVar(&flags.noBackup, "no-backup", false, "never create backups, overriding config")
	cmd.Flags().BoolVar(&flags.strictRace, "strict-race", true,
		"re-hash documents before writing instead of comparing size and mtime")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with status 1 if diagnostics remain unfixed")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "list documents that needed no changes")
}
