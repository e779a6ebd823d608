package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/autofix/internal/logging"
	"github.com/yaklabco/autofix/pkg/config"
	"github.com/yaklabco/autofix/pkg/fix"
	"github.com/yaklabco/autofix/pkg/fsutil"
	"github.com/yaklabco/autofix/pkg/pipeline"
	"github.com/yaklabco/autofix/pkg/report"
)

// stdinPath is the DOCUMENT argument that reads the document from stdin.
const stdinPath = "-"

type checkFlags struct {
	report    string
	stdinName string
	diff      bool
	strict    bool
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check DOCUMENT --report REPORT",
		Short: "Print a document with its fixes applied",
		Long: `Print a document with the fixes from a report applied, without touching
the document on disk.

DOCUMENT may be "-" to read the document from stdin. The report entry is
then chosen by --stdin-name, or is the report's only entry.

Examples:
  autofix check src/a.py --report lint.json
  autofix check src/a.py --report lint.json --diff
  cat src/a.py | autofix check - --report lint.json --stdin-name src/a.py`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.report, "report", "r", "", "diagnostics report holding the document's fixes")
	cmd.Flags().StringVar(&flags.stdinName, "stdin-name", "", "document path to look up in the report when reading stdin")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a unified diff instead of the fixed document")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with status 1 if diagnostics remain unfixed")

	return cmd
}

func runCheck(cmd *cobra.Command, document string, flags *checkFlags) error {
	logger := logging.Default()

	if flags.report == "" {
		return fmt.Errorf("%w: --report is required", ErrUsage)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := loadConfig(cmd, &config.Config{}); err != nil {
		return err
	}

	rep, err := report.Load(flags.report)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	path, content, err := readDocument(ctx, cmd, document, flags.stdinName)
	if err != nil {
		return err
	}

	entry, found := lookupEntry(rep, path, document == stdinPath && flags.stdinName == "")
	if !found {
		logger.Warn("document not listed in report", logging.FieldPath, path, logging.FieldReport, flags.report)
	}

	res, err := pipeline.ProcessContent(ctx, path, content, entry.Diagnostics, pipeline.Options{Mode: fix.ModeGenerate})
	if err != nil {
		return fmt.Errorf("fix %s: %w", path, err)
	}
	if res.Skipped {
		logger.Warn("document left unchanged", logging.FieldPath, path, logging.FieldReason, res.SkipReason)
	}

	logger.Debug("checked document",
		logging.FieldPath, path,
		logging.FieldLanguage, res.Language,
		logging.FieldFixable, res.Fixable,
		logging.FieldFixed, res.Fixed,
		logging.FieldSkipped, res.EditsSkipped,
	)

	out := res.Content
	if flags.diff {
		out = res.Diff.FullString()
	}
	if _, err := io.WriteString(cmd.OutOrStdout(), out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	remaining := res.Diagnostics - res.Fixed
	if res.Skipped {
		remaining = res.Diagnostics
	}
	if flags.strict && remaining > 0 {
		return fmt.Errorf("%w: %d", ErrUnfixed, remaining)
	}
	return nil
}

// readDocument returns the document's display path and content.
func readDocument(ctx context.Context, cmd *cobra.Command, document, stdinName string) (string, []byte, error) {
	if document != stdinPath {
		content, _, err := fsutil.ReadFile(ctx, document)
		if err != nil {
			return "", nil, fmt.Errorf("read document: %w", err)
		}
		return document, content, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", nil, fmt.Errorf("%w: refusing to read the document from a terminal", ErrUsage)
	}

	content, err := io.ReadAll(in)
	if err != nil {
		return "", nil, fmt.Errorf("read stdin: %w", err)
	}

	name := stdinName
	if name == "" {
		name = "<stdin>"
	}
	return name, content, nil
}

// lookupEntry finds the report entry for path. With onlyEntry set, a
// report with a single entry is used as is.
func lookupEntry(rep *report.Report, path string, onlyEntry bool) (report.File, bool) {
	if entry, ok := rep.Lookup(path); ok {
		return entry, true
	}
	if onlyEntry && len(rep.Files) == 1 {
		return rep.Files[0], true
	}
	return report.File{}, false
}
