package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/autofix/pkg/fix"
	"github.com/yaklabco/autofix/pkg/pipeline"
	"github.com/yaklabco/autofix/pkg/reporter"
	"github.com/yaklabco/autofix/pkg/runner"
)

var workDir = filepath.Join(string(filepath.Separator), "work")

func sampleResult() *runner.Result {
	fixedPath := filepath.Join(workDir, "src", "a.py")
	return &runner.Result{
		Mode: fix.ModeGenerate,
		Files: []runner.FileOutcome{
			{
				Path:     fixedPath,
				Reports:  []string{"lint.json"},
				Duration: 3 * time.Millisecond,
				Result: &pipeline.Result{
					Path: fixedPath, Language: "python", Mode: fix.ModeGenerate,
					Diagnostics: 2, Fixable: 2, Fixed: 1, EditsSkipped: 1, Modified: true,
					Content: "class A:\n",
					Diff:    fix.GenerateDiff(fixedPath, "class A(object):\n", "class A:\n"),
				},
			},
			{
				Path:   filepath.Join(workDir, "b.py"),
				Result: &pipeline.Result{Language: "python", Mode: fix.ModeGenerate},
			},
			{
				Path:  filepath.Join(workDir, "gone.py"),
				Error: errors.New("file not found"),
			},
		},
		Stats: runner.Stats{
			ReportsLoaded: 1, FilesDiscovered: 3, FilesProcessed: 2, FilesErrored: 1, FilesChanged: 1,
			DiagnosticsTotal: 2, DiagnosticsFixable: 2, DiagnosticsFixed: 1, DiagnosticsUnfixed: 2,
			EditsSkipped: 1, FilesByLanguage: map[string]int{"python": 2},
		},
	}
}

func newReporter(t *testing.T, format reporter.Format, mutate func(*reporter.Options)) (reporter.Reporter, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var out, errOut bytes.Buffer
	opts := reporter.Options{
		Writer:      &out,
		ErrorWriter: &errOut,
		Format:      format,
		Color:       "never",
		ShowSummary: true,
		WorkingDir:  workDir,
	}
	if mutate != nil {
		mutate(&opts)
	}

	rep, err := reporter.New(opts)
	require.NoError(t, err)
	return rep, &out, &errOut
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{"", reporter.FormatText, false},
		{"text", reporter.FormatText, false},
		{"json", reporter.FormatJSON, false},
		{"diff", reporter.FormatDiff, false},
		{"summary", reporter.FormatSummary, false},
		{"sarif", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, reporter.Format(tt.input).IsValid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestReporters_NilResult(t *testing.T) {
	t.Parallel()

	for _, format := range []reporter.Format{reporter.FormatText, reporter.FormatJSON, reporter.FormatDiff, reporter.FormatSummary} {
		rep, out, _ := newReporter(t, format, nil)
		count, err := rep.Report(context.Background(), nil)
		require.NoError(t, err, format)
		assert.Zero(t, count, format)
		assert.Empty(t, out.String(), format)
	}
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	rep, out, _ := newReporter(t, reporter.FormatText, nil)

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, filepath.Join("src", "a.py")+" [python]  1 fix available, 1 overlapping edit dropped", lines[0])
	assert.Equal(t, "gone.py: error: file not found", lines[1])
	assert.Contains(t, lines[2], "2 diagnostics in 2 files")
	assert.Contains(t, lines[2], "1 file failed")
}

func TestTextReporter_PathOutsideWorkingDir(t *testing.T) {
	t.Parallel()

	outside := filepath.Join(string(filepath.Separator), "elsewhere", "c.py")
	result := &runner.Result{
		Mode:  fix.ModeGenerate,
		Files: []runner.FileOutcome{{Path: outside, Error: errors.New("permission denied")}},
	}

	rep, out, _ := newReporter(t, reporter.FormatText, func(opts *reporter.Options) { opts.ShowSummary = false })

	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, outside+": error: permission denied\n", out.String())
}

func TestTextReporter_VerboseAndNoSummary(t *testing.T) {
	t.Parallel()

	rep, out, _ := newReporter(t, reporter.FormatText, func(opts *reporter.Options) {
		opts.Verbose = true
		opts.ShowSummary = false
	})

	_, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "b.py [python]  ok")
	assert.NotContains(t, out.String(), "diagnostics in")
}

func TestTextReporter_Cancelled(t *testing.T) {
	t.Parallel()

	rep, _, _ := newReporter(t, reporter.FormatText, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rep.Report(ctx, sampleResult())
	require.ErrorIs(t, err, context.Canceled)
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	rep, out, _ := newReporter(t, reporter.FormatJSON, nil)

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))

	assert.Equal(t, 1, decoded.Version)
	assert.Equal(t, "generate", decoded.Mode)
	require.Len(t, decoded.Files, 3)

	first := decoded.Files[0]
	assert.Equal(t, filepath.Join("src", "a.py"), first.Path)
	assert.Equal(t, []string{"lint.json"}, first.Reports)
	assert.Equal(t, 1, first.Fixed)
	assert.Equal(t, 2, first.Unfixed)
	assert.Equal(t, 1, first.EditsSkipped)
	assert.True(t, first.Modified)
	assert.False(t, first.Written)
	assert.Contains(t, first.Diff, "+class A:")
	assert.Equal(t, int64(3), first.DurationMS)

	assert.Equal(t, "gone.py", decoded.Files[2].Path)
	assert.Equal(t, "file not found", decoded.Files[2].Error)
	assert.Equal(t, 2, decoded.Summary.DiagnosticsTotal)
	assert.Equal(t, map[string]int{"python": 2}, decoded.Summary.FilesByLanguage)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	rep, out, _ := newReporter(t, reporter.FormatJSON, func(opts *reporter.Options) { opts.Compact = true })

	_, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out.String(), "\n"), "compact output is one line")
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	rep, out, errOut := newReporter(t, reporter.FormatDiff, nil)

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	name := filepath.ToSlash(filepath.Join("src", "a.py"))
	text := out.String()
	assert.True(t, strings.HasPrefix(text, "diff --git a/"+name+" b/"+name+"\n--- a/"+name+"\n+++ b/"+name+"\n"))
	assert.Equal(t, 1, strings.Count(text, "--- a/"), "body header is replaced")
	assert.Contains(t, text, "@@ -1 +1 @@\n-class A(object):\n+class A:\n")
	assert.Contains(t, text, "1 file changed, 1 insertion(+), 1 deletion(-)")

	assert.Contains(t, errOut.String(), "gone.py: error: file not found")
	assert.NotContains(t, text, "gone.py")
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	rep, out, _ := newReporter(t, reporter.FormatSummary, nil)

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	text := out.String()
	assert.Contains(t, text, "Summary (mode: generate)")
	assert.Contains(t, text, "Would fix:")
	assert.Contains(t, text, "Edits dropped:")
	assert.Contains(t, text, "Fixing failed for some files")
	assert.NotContains(t, text, "a.py")
}
