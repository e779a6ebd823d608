// Package pipeline fixes one document: it reads the file, applies the fixes
// its diagnostics carry and, depending on the fix mode, diffs or rewrites it.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/autofix/internal/logging"
	"github.com/yaklabco/autofix/pkg/config"
	"github.com/yaklabco/autofix/pkg/fix"
	"github.com/yaklabco/autofix/pkg/fsutil"
	"github.com/yaklabco/autofix/pkg/langdetect"
	"github.com/yaklabco/autofix/pkg/report"
	"github.com/yaklabco/autofix/pkg/source"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the document does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates the document could not be read.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrWriteFailure indicates the fixed document could not be written.
	ErrWriteFailure = errors.New("write failure")
)

// Options controls how a document is processed.
type Options struct {
	Mode   fix.Mode
	Backup fsutil.BackupConfig

	// StrictRaceDetection re-hashes the file before writing. When false only
	// size and mtime are compared.
	StrictRaceDetection bool
}

// DefaultOptions returns generate mode with hash-based race detection.
func DefaultOptions() Options {
	return Options{
		Mode:                fix.ModeGenerate,
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
	}
}

// OptionsFromConfig builds Options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	if cfg == nil {
		return DefaultOptions(), nil
	}
	mode, err := cfg.FixMode()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Mode:                mode,
		Backup:              cfg.Backup(),
		StrictRaceDetection: cfg.StrictRace(),
	}, nil
}

// ProcessFile runs the pipeline for the document at path.
//
// The steps are:
//  1. Read and hash the document.
//  2. Resolve and apply the diagnostics' fixes in memory (see ProcessContent).
//  3. In apply mode, if the content changed: check for concurrent
//     modification, back up the original and write the result atomically.
func ProcessFile(ctx context.Context, path string, diagnostics []report.Diagnostic, opts Options) (*Result, error) {
	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := ProcessContent(ctx, path, original, diagnostics, opts)
	if err != nil {
		return nil, err
	}
	if !opts.Mode.WritesFixes() || !result.Modified || result.Skipped {
		return result, nil
	}

	modified, err := checkModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return nil, err
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup.Active() {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, []byte(result.Content), info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent applies the diagnostics' fixes to content without any file
// I/O. Diagnostics are counted in every mode; fixes are only computed when
// the mode asks for them. Invalid edits or binary content skip the document.
func ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	diagnostics []report.Diagnostic,
	opts Options,
) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}

	result := &Result{
		Path:        path,
		Language:    langdetect.Detect(path, content),
		Mode:        opts.Mode,
		Diagnostics: len(diagnostics),
		Content:     string(content),
	}
	for _, d := range diagnostics {
		if d.HasFix() {
			result.Fixable++
		}
	}

	if !opts.Mode.ComputesFixes() || result.Fixable == 0 {
		return result, nil
	}

	if langdetect.IsBinary(content) {
		result.Skipped = true
		result.SkipReason = "binary content"
		return result, nil
	}

	loc := source.NewTextLocator(result.Content)
	if err := fix.ValidateFixes(report.File{Diagnostics: diagnostics}.Fixes(), loc); err != nil {
		result.Skipped = true
		result.SkipReason = err.Error()
		return result, nil
	}

	fixed, ok := fix.FixDocument(diagnostics, loc)
	if !ok {
		return result, nil
	}

	logger := logging.FromContext(ctx)
	for _, e := range fixed.Skipped {
		logger.Debug("dropped overlapping edit", logging.FieldPath, path, logging.FieldEdit, e.String())
	}

	result.Fixed = fixed.Fixed
	result.EditsSkipped = len(fixed.Skipped)
	result.Content = fixed.Content
	result.Modified = fixed.Content != string(content)
	if result.Modified {
		result.Diff = fix.GenerateDiff(path, string(content), fixed.Content)
	}

	return result, nil
}

func checkModified(ctx context.Context, info *fsutil.FileInfo, strict bool) (bool, error) {
	check := fsutil.CheckModifiedQuick
	if strict {
		check = fsutil.CheckModified
	}
	modified, err := check(ctx, info)
	if err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}
	return modified, nil
}

// categorizeError wraps err with the matching pipeline error type.
func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// IsPipelineError reports whether err carries one of the pipeline error types.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrWriteFailure)
}
