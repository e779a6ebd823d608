// Package main is the entry point for the autofix CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/yaklabco/autofix/internal/cli"
	"github.com/yaklabco/autofix/internal/logging"
)

// Build-time variables set via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, cli.ErrUnfixed) {
		// ErrUnfixed only selects the exit code; the report already said why.
		logging.Default().Error("command failed", logging.FieldError, err)
	}

	return cli.ExitCode(err)
}
