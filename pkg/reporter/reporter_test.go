package reporter_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/typfmt/pkg/config"
	"github.com/yaklabco/typfmt/pkg/diff"
	"github.com/yaklabco/typfmt/pkg/pipeline"
	"github.com/yaklabco/typfmt/pkg/reporter"
	"github.com/yaklabco/typfmt/pkg/runner"
)

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "/work/a.typ",
				Result: &pipeline.Result{
					Path:     "/work/a.typ",
					Original: "#f(a,b)\n",
					Output:   "#f(a, b)\n",
					Changed:  true,
					Diff:     diff.Compute("/work/a.typ", "#f(a,b)\n", "#f(a, b)\n"),
				},
			},
			{
				Path:   "/work/b.typ",
				Result: &pipeline.Result{Path: "/work/b.typ", Original: "ok\n", Output: "ok\n"},
			},
			{
				Path:   "/work/c.typ",
				Result: &pipeline.Result{Path: "/work/c.typ", Original: "bad\n", Output: "bad\n"},
				Error:  errors.New("format failure"),
			},
		},
		Stats: runner.Stats{FilesDiscovered: 3, FilesFormatted: 2, FilesChanged: 1, FilesFailed: 1},
	}
}

func newReporter(t *testing.T, mode config.OutputMode) (reporter.Reporter, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var out, errOut bytes.Buffer
	rep, err := reporter.New(mode, reporter.Options{
		Writer:      &out,
		ErrorWriter: &errOut,
		Color:       config.ColorNever,
		ShowSummary: true,
		WorkingDir:  "/work",
	})
	require.NoError(t, err)
	return rep, &out, &errOut
}

func TestStdoutReporter(t *testing.T) {
	t.Parallel()

	rep, out, errOut := newReporter(t, config.OutputStdout)
	require.NoError(t, rep.Report(context.Background(), sampleResult()))

	assert.Equal(t, "#f(a, b)\nok\nbad\n", out.String())
	assert.Equal(t, "c.typ: error: format failure\n", errOut.String())
}

func TestCheckReporter(t *testing.T) {
	t.Parallel()

	rep, out, errOut := newReporter(t, config.OutputCheck)
	require.NoError(t, rep.Report(context.Background(), sampleResult()))

	assert.Empty(t, out.String())
	assert.Equal(t,
		"Would reformat: a.typ\n"+
			"c.typ: error: format failure\n"+
			"1 file would be reformatted, 1 file already formatted, 1 file failed\n",
		errOut.String())
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	rep, out, _ := newReporter(t, config.OutputDiff)
	require.NoError(t, rep.Report(context.Background(), sampleResult()))

	assert.Equal(t,
		"diff --git a/a.typ b/a.typ\n"+
			"--- a/a.typ\n"+
			"+++ b/a.typ\n"+
			"@@ -1,1 +1,1 @@\n"+
			"-#f(a,b)\n"+
			"+#f(a, b)\n"+
			"\n"+
			"1 file changed, 1 insertion(+), 1 deletion(-)\n",
		out.String())
}

func TestInPlaceReporterSkipped(t *testing.T) {
	t.Parallel()

	rep, _, errOut := newReporter(t, config.OutputInPlace)
	result := &runner.Result{
		Files: []runner.FileOutcome{{
			Path:   "/work/a.typ",
			Result: &pipeline.Result{Changed: true, Skipped: true, SkipReason: "file modified during formatting"},
		}},
	}
	require.NoError(t, rep.Report(context.Background(), result))
	assert.Equal(t, "Skipped: a.typ (file modified during formatting)\n", errOut.String())
}

func TestNewRejectsUnknownMode(t *testing.T) {
	t.Parallel()

	_, err := reporter.New("xml", reporter.DefaultOptions())
	require.Error(t, err)
}

func TestNilResult(t *testing.T) {
	t.Parallel()

	for _, mode := range []config.OutputMode{config.OutputStdout, config.OutputCheck, config.OutputDiff, config.OutputInPlace} {
		rep, _, _ := newReporter(t, mode)
		assert.NoError(t, rep.Report(context.Background(), nil), mode)
	}
}
