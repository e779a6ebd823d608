package runner_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/autofix/pkg/fix"
	"github.com/yaklabco/autofix/pkg/pipeline"
	"github.com/yaklabco/autofix/pkg/report"
	"github.com/yaklabco/autofix/pkg/runner"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// fixture lays out two documents and a report that fixes both.
func fixture(t *testing.T) (dir, reportPath string) {
	t.Helper()

	dir = t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "a.py"), "class A(object):\n    ...\n")
	writeFile(t, filepath.Join(dir, "src", "b.py"), "class B(object):\n    ...\n")

	reportPath = filepath.Join(dir, "ruff.yaml")
	writeFile(t, reportPath, `files:
  - path: src/a.py
    diagnostics:
      - code: UP004
        message: Class inherits from object
        location: {line: 1, column: 7}
        end_location: {line: 1, column: 15}
        fix: {content: "", location: {line: 1, column: 7}, end_location: {line: 1, column: 15}}
  - path: src/b.py
    diagnostics:
      - code: UP004
        message: Class inherits from object
        location: {line: 1, column: 7}
        end_location: {line: 1, column: 15}
        fix: {content: "", location: {line: 1, column: 7}, end_location: {line: 1, column: 15}}
      - code: E501
        message: Line too long
        location: {line: 2, column: 0}
        end_location: {line: 2, column: 7}
`)
	return dir, reportPath
}

func TestRunner_Run_Apply(t *testing.T) {
	t.Parallel()

	dir, reportPath := fixture(t)

	result, err := runner.New().Run(context.Background(), runner.Options{
		Reports:  []string{reportPath},
		Jobs:     2,
		Pipeline: pipeline.Options{Mode: fix.ModeApply, StrictRaceDetection: true},
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, filepath.Join(dir, "src", "a.py"), result.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "src", "b.py"), result.Files[1].Path)

	stats := result.Stats
	assert.Equal(t, 1, stats.ReportsLoaded)
	assert.Equal(t, 2, stats.FilesDiscovered)
	assert.Equal(t, 2, stats.FilesProcessed)
	assert.Equal(t, 2, stats.FilesModified)
	assert.Equal(t, 3, stats.DiagnosticsTotal)
	assert.Equal(t, 2, stats.DiagnosticsFixable)
	assert.Equal(t, 2, stats.DiagnosticsFixed)
	assert.Equal(t, 1, stats.DiagnosticsUnfixed)
	assert.Equal(t, 2, stats.FilesByLanguage["python"])
	assert.True(t, result.HasUnfixed())
	assert.False(t, result.HasErrors())

	got, err := os.ReadFile(filepath.Join(dir, "src", "a.py"))
	require.NoError(t, err)
	assert.Equal(t, "class A:\n    ...\n", string(got))
}

func TestRunner_Run_MergesReportsForSameDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := filepath.Join(dir, "a.py")
	writeFile(t, doc, "class A(object):\n    ...\n")

	// Two passes: one removes "(object)", the other renames A to Foo.
	first := filepath.Join(dir, "first.json")
	writeFile(t, first, `{"files": [{"path": "a.py", "diagnostics": [
	  {"code": "UP004", "message": "m", "location": {"line": 1, "column": 7}, "end_location": {"line": 1, "column": 15},
	   "fix": {"content": "", "location": {"line": 1, "column": 7}, "end_location": {"line": 1, "column": 15}}}]}]}`)
	second := filepath.Join(dir, "second.toml")
	writeFile(t, second, `[[files]]
path = "a.py"

[[files.diagnostics]]
code = "N801"
message = "m"
location = { line = 1, column = 6 }
end_location = { line = 1, column = 7 }
fix = { content = "Foo", location = { line = 1, column = 6 }, end_location = { line = 1, column = 7 } }
`)

	result, err := runner.New().Run(context.Background(), runner.Options{
		Reports:  []string{first, second},
		Pipeline: pipeline.DefaultOptions(),
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	outcome := result.Files[0]
	assert.Equal(t, []string{first, second}, outcome.Reports)
	require.NoError(t, outcome.Error)
	assert.Equal(t, "class Foo:\n    ...\n", outcome.Result.Content)
	assert.Equal(t, 2, outcome.Result.Fixed)
}

func TestRunner_Run_MergesRelativeAndAbsoluteEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := filepath.Join(dir, "d", "a.py")
	writeFile(t, doc, "class A(object): pass  # comment here\n")

	cwd, err := os.Getwd()
	require.NoError(t, err)

	// One report is passed relative to the working directory and names the
	// document relatively; the other names it by absolute path.
	absFirst := filepath.Join(dir, "d", "one.yaml")
	writeFile(t, absFirst, `files:
  - path: a.py
    diagnostics:
      - code: UP004
        message: Class inherits from object
        location: {line: 1, column: 7}
        end_location: {line: 1, column: 15}
        fix: {content: "", location: {line: 1, column: 7}, end_location: {line: 1, column: 15}}
`)
	first, err := filepath.Rel(cwd, absFirst)
	require.NoError(t, err)

	second := filepath.Join(dir, "two.yaml")
	writeFile(t, second, fmt.Sprintf(`files:
  - path: %q
    diagnostics:
      - code: PIE790
        message: Unnecessary pass
        location: {line: 1, column: 17}
        end_location: {line: 1, column: 21}
        fix: {content: "...", location: {line: 1, column: 17}, end_location: {line: 1, column: 21}}
`, doc))

	result, err := runner.New().Run(context.Background(), runner.Options{
		Reports:  []string{first, second},
		Jobs:     2,
		Pipeline: pipeline.Options{Mode: fix.ModeApply, StrictRaceDetection: true},
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	outcome := result.Files[0]
	require.NoError(t, outcome.Error)
	assert.Equal(t, []string{first, second}, outcome.Reports)
	assert.Equal(t, 2, outcome.Result.Fixed)
	assert.True(t, outcome.Result.Written)

	got, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, "class A: ...  # comment here\n", string(got))
}

func TestRunner_Run_FileErrorsAreOutcomes(t *testing.T) {
	t.Parallel()

	dir, reportPath := fixture(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "src", "a.py")))

	result, err := runner.New().Run(context.Background(), runner.Options{
		Reports:  []string{reportPath},
		Pipeline: pipeline.DefaultOptions(),
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.ErrorIs(t, result.Files[0].Error, pipeline.ErrFileNotFound)
	assert.NoError(t, result.Files[1].Error)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesProcessed)
	assert.True(t, result.HasErrors())
}

func TestRunner_Run_BadReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "version: 7\n")

	_, err := runner.New().Run(context.Background(), runner.Options{
		Reports: []string{bad, filepath.Join(dir, "missing.json")},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, report.ErrUnsupportedVersion)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunner_Run_NoReports(t *testing.T) {
	t.Parallel()

	result, err := runner.New().Run(context.Background(), runner.Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
}

// manyFiles writes a report naming count documents without touching disk
// for them; tests using it inject their own ProcessFunc.
func manyFiles(t *testing.T, count int) string {
	t.Helper()

	var sb strings.Builder
	sb.WriteString("files:\n")
	for idx := range count {
		fmt.Fprintf(&sb, "  - path: doc%02d.txt\n    diagnostics: []\n", idx)
	}

	path := filepath.Join(t.TempDir(), "many.yaml")
	writeFile(t, path, sb.String())
	return path
}

func TestRunner_Run_RespectsJobLimitAndOrder(t *testing.T) {
	t.Parallel()

	const count, limit = 12, 3

	var running, peak atomic.Int32
	r := &runner.Runner{
		Process: func(_ context.Context, path string, _ []report.Diagnostic, opts pipeline.Options) (*pipeline.Result, error) {
			now := running.Add(1)
			for {
				old := peak.Load()
				if now <= old || peak.CompareAndSwap(old, now) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			return &pipeline.Result{Path: path, Mode: opts.Mode, Language: "text"}, nil
		},
	}

	result, err := r.Run(context.Background(), runner.Options{Reports: []string{manyFiles(t, count)}, Jobs: limit})
	require.NoError(t, err)

	assert.LessOrEqual(t, peak.Load(), int32(limit))
	require.Len(t, result.Files, count)
	for idx, outcome := range result.Files {
		assert.Equal(t, fmt.Sprintf("doc%02d.txt", idx), filepath.Base(outcome.Path))
	}
	assert.Equal(t, count, result.Stats.FilesByLanguage["text"])
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int32
	r := &runner.Runner{
		Process: func(_ context.Context, path string, _ []report.Diagnostic, _ pipeline.Options) (*pipeline.Result, error) {
			if calls.Add(1) == 1 {
				cancel()
			}
			return &pipeline.Result{Path: path}, nil
		},
	}

	result, err := r.Run(ctx, runner.Options{Reports: []string{manyFiles(t, 20)}, Jobs: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	require.NotNil(t, result)
	assert.Less(t, len(result.Files), 20)
}
