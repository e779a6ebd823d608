// Package runner fixes every document listed in a set of reports, several
// documents at a time.
package runner

import "github.com/yaklabco/autofix/pkg/pipeline"

// Options controls a run.
type Options struct {
	// Reports are the diagnostics files to load.
	Reports []string

	// Jobs caps the number of documents processed at once.
	// 0 or negative means GOMAXPROCS.
	Jobs int

	// Pipeline is passed to every document.
	Pipeline pipeline.Options
}
