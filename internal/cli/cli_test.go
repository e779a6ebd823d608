package cli_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/autofix/internal/cli"
	"github.com/yaklabco/autofix/internal/configloader"
	"github.com/yaklabco/autofix/pkg/pipeline"
	"github.com/yaklabco/autofix/pkg/report"
)

var testInfo = cli.BuildInfo{
	Version: "test-version",
	Commit:  "test-commit",
	Date:    "test-date",
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	require.NotNil(t, cmd)

	assert.Equal(t, "autofix", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "global flag %q", name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, path := range [][]string{{"fix"}, {"check"}, {"version"}, {"config"}, {"config", "show"}, {"config", "init"}, {"config", "env"}} {
		subCmd, _, err := cmd.Find(path)
		require.NoError(t, err, "subcommand %v", path)
		assert.Equal(t, path[len(path)-1], subCmd.Name())
	}
}

func TestFixCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	fixCmd, _, err := cmd.Find([]string{"fix"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		defValue string
	}{
		{"mode", "generate"},
		{"format", "text"},
		{"jobs", "0"},
		{"backup", "false"},
		{"no-backup", "false"},
		{"strict-race", "true"},
		{"strict", "false"},
		{"compact", "false"},
		{"verbose", "false"},
	}

	for _, tt := range tests {
		flag := fixCmd.Flags().Lookup(tt.name)
		require.NotNil(t, flag, "flag %q should exist", tt.name)
		assert.Equal(t, tt.defValue, flag.DefValue, "default of %q", tt.name)
	}

	assert.Contains(t, fixCmd.Flags().Lookup("format").Usage, "summary")
}

func TestCheckCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	checkCmd, _, err := cmd.Find([]string{"check"})
	require.NoError(t, err)

	for _, name := range []string{"report", "stdin-name", "diff", "strict"} {
		assert.NotNil(t, checkCmd.Flags().Lookup(name), "flag %q should exist", name)
	}
	assert.Equal(t, "r", checkCmd.Flags().Lookup("report").Shorthand)
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"unfixed", fmt.Errorf("%w: 3", cli.ErrUnfixed), cli.ExitUnfixed},
		{"usage", fmt.Errorf("%w: bad flag", cli.ErrUsage), cli.ExitInvalidUsage},
		{"config", fmt.Errorf("load configuration: %w", configloader.ErrInvalidConfig), cli.ExitConfigError},
		{"report version", fmt.Errorf("load reports: %w", report.ErrUnsupportedVersion), cli.ExitConfigError},
		{"report format", report.ErrUnsupportedFormat, cli.ExitConfigError},
		{"missing report", fmt.Errorf("read report: %w", os.ErrNotExist), cli.ExitIOError},
		{"write failure", fmt.Errorf("%w: disk full", pipeline.ErrWriteFailure), cli.ExitIOError},
		{"documents failed", fmt.Errorf("%w: 1 of 2", cli.ErrDocumentsFailed), cli.ExitIOError},
		{"cancelled", fmt.Errorf("run cancelled: %w", context.Canceled), cli.ExitInterrupted},
		{"joined", errors.Join(errors.New("other"), cli.ErrUnfixed), cli.ExitUnfixed},
		{"unknown", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}
