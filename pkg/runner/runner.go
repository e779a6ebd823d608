package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/autofix/internal/logging"
	"github.com/yaklabco/autofix/pkg/pipeline"
	"github.com/yaklabco/autofix/pkg/report"
)

// ProcessFunc fixes a single document. pipeline.ProcessFile is the default.
type ProcessFunc func(ctx context.Context, path string, diagnostics []report.Diagnostic, opts pipeline.Options) (*pipeline.Result, error)

// Runner fixes the documents listed in reports.
type Runner struct {
	Process ProcessFunc
}

// New returns a Runner backed by pipeline.ProcessFile.
func New() *Runner {
	return &Runner{Process: pipeline.ProcessFile}
}

// job is one document with the diagnostics every report gave for it.
type job struct {
	path        string
	reports     []string
	diagnostics []report.Diagnostic
}

// Run loads the reports and processes their documents concurrently.
// A document named by several reports is processed once with the
// diagnostics of all of them, so edits from different analysis passes
// are resolved against each other.
//
// Failures of individual documents are recorded in their FileOutcome.
// Unreadable reports and cancellation fail the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	jobs, err := loadJobs(opts.Reports)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Mode:  opts.Pipeline.Mode,
		Files: make([]FileOutcome, 0, len(jobs)),
		Stats: newStats(),
	}
	result.Stats.ReportsLoaded = len(opts.Reports)
	result.Stats.FilesDiscovered = len(jobs)

	if len(jobs) == 0 {
		return result, nil
	}

	limit := opts.Jobs
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	logger := logging.FromContext(ctx)
	logger.Debug("starting run",
		logging.FieldReports, len(opts.Reports),
		logging.FieldFiles, len(jobs),
		logging.FieldJobs, limit,
		logging.FieldMode, opts.Pipeline.Mode,
	)

	outcomes := make([]FileOutcome, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(limit, len(jobs)))

	for idx, jb := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			res, err := r.Process(gctx, jb.path, jb.diagnostics, opts.Pipeline)
			outcomes[idx] = FileOutcome{
				Path:     jb.path,
				Reports:  jb.reports,
				Result:   res,
				Error:    err,
				Duration: time.Since(start),
			}

			if err != nil {
				logger.Debug("document failed", logging.FieldPath, jb.path, logging.FieldError, err)
			} else {
				logger.Debug("document processed",
					logging.FieldPath, jb.path,
					logging.FieldFixed, res.Fixed,
					logging.FieldDuration, outcomes[idx].Duration,
				)
			}
			return nil
		})
	}

	waitErr := g.Wait()

	for idx := range outcomes {
		if outcomes[idx].Path != "" {
			result.accumulate(outcomes[idx])
		}
	}

	if err := errors.Join(waitErr, ctx.Err()); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

// loadJobs reads every report and groups file entries by document, keeping
// first-seen order. Entries are keyed by canonical path so a document named
// relatively in one report and absolutely in another is still one job.
func loadJobs(paths []string) ([]job, error) {
	var (
		jobs  []job
		index = make(map[string]int)
		errs  []error
	)

	for _, reportPath := range paths {
		rep, err := report.Load(reportPath)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		for _, file := range rep.Files {
			docPath := rep.ResolvePath(file)
			key := report.CanonicalPath(docPath)
			idx, seen := index[key]
			if !seen {
				idx = len(jobs)
				index[key] = idx
				jobs = append(jobs, job{path: docPath})
			}
			jobs[idx].diagnostics = append(jobs[idx].diagnostics, file.Diagnostics...)
			if !slices.Contains(jobs[idx].reports, reportPath) {
				jobs[idx].reports = append(jobs[idx].reports, reportPath)
			}
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("load reports: %w", errors.Join(errs...))
	}
	return jobs, nil
}
