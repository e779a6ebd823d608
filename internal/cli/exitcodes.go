package cli

import (
	"context"
	"errors"
	"os"

	"github.com/yaklabco/autofix/internal/configloader"
	"github.com/yaklabco/autofix/pkg/fsutil"
	"github.com/yaklabco/autofix/pkg/pipeline"
	"github.com/yaklabco/autofix/pkg/report"
)

// Exit codes for autofix.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitUnfixed indicates diagnostics remain unfixed under --strict.
	ExitUnfixed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates invalid configuration or report content.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74

	// ExitInterrupted indicates the run was cancelled by a signal.
	ExitInterrupted = 130
)

var (
	// ErrUnfixed is returned under --strict when diagnostics remain.
	ErrUnfixed = errors.New("unfixed diagnostics remain")

	// ErrUsage marks command-line usage errors.
	ErrUsage = errors.New("invalid usage")

	// ErrDocumentsFailed is returned when some documents could not be processed.
	ErrDocumentsFailed = errors.New("some documents could not be processed")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUnfixed):
		return ExitUnfixed
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, configloader.ErrInvalidConfig),
		errors.Is(err, report.ErrUnsupportedFormat),
		errors.Is(err, report.ErrUnsupportedVersion),
		errors.Is(err, report.ErrMissingPath):
		return ExitConfigError
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, ErrDocumentsFailed),
		pipeline.IsPipelineError(err),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
