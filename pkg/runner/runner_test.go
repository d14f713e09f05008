package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/typfmt/pkg/config"
	"github.com/yaklabco/typfmt/pkg/pipeline"
	"github.com/yaklabco/typfmt/pkg/runner"
)

func options(dir string, mode config.OutputMode, jobs int) runner.Options {
	cfg := config.NewConfig()
	cfg.Mode = mode
	return runner.Options{WorkingDir: dir, Config: cfg, Jobs: jobs}
}

func TestRunNoFiles(t *testing.T) {
	t.Parallel()

	res, err := runner.Run(context.Background(), options(t.TempDir(), config.OutputCheck, 0))
	require.NoError(t, err)
	assert.Empty(t, res.Files)
	assert.False(t, res.HasChanges())
	assert.NoError(t, res.Err())
}

func TestRunCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, map[string]string{
		"clean.typ": "#f(a, b)\n",
		"dirty.typ": "#f(a,b)\n",
	})

	res, err := runner.Run(context.Background(), options(dir, config.OutputCheck, 2))
	require.NoError(t, err)
	require.Len(t, res.Files, 2)

	assert.Equal(t, filepath.Join(dir, "clean.typ"), res.Files[0].Path)
	assert.False(t, res.Files[0].Result.Changed)
	assert.True(t, res.Files[1].Result.Changed)

	assert.Equal(t, runner.Stats{FilesDiscovered: 2, FilesFormatted: 2, FilesChanged: 1}, res.Stats)
	assert.True(t, res.HasChanges())
	assert.False(t, res.HasFailures())
}

func TestRunInPlace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, map[string]string{"a.typ": "#f(a,b)\n", "b.typ": "=  B\n"})

	res, err := runner.Run(context.Background(), options(dir, config.OutputInPlace, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Stats.FilesWritten)

	a, err := os.ReadFile(filepath.Join(dir, "a.typ"))
	require.NoError(t, err)
	assert.Equal(t, "#f(a, b)\n", string(a))

	b, err := os.ReadFile(filepath.Join(dir, "b.typ"))
	require.NoError(t, err)
	assert.Equal(t, "= B\n", string(b))
}

func TestRunOrderIsStableAcrossJobCounts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := map[string]string{}
	for _, name := range []string{"e", "b", "d", "a", "c", "g", "f"} {
		files[name+".typ"] = "#" + name + "(x,y)\n"
	}
	makeTree(t, dir, files)

	serial, err := runner.Run(context.Background(), options(dir, config.OutputStdout, 1))
	require.NoError(t, err)
	parallel, err := runner.Run(context.Background(), options(dir, config.OutputStdout, 8))
	require.NoError(t, err)

	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.Equal(t, serial.Files[i].Result.Output, parallel.Files[i].Result.Output)
	}
}

func TestRunCollectsFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, map[string]string{"a.typ": "x\n"})

	opts := options(dir, config.OutputStdout, 0)
	opts.Config.IndentWidth = 0

	res, err := runner.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, res.HasFailures())
	assert.Equal(t, 1, res.Stats.FilesFailed)

	combined := res.Err()
	require.ErrorIs(t, combined, pipeline.ErrFormatFailure)
	assert.Contains(t, combined.Error(), "a.typ")
	require.NotNil(t, res.Files[0].Result, "the unchanged source travels with the failure")
	assert.Equal(t, "x\n", res.Files[0].Result.Output)
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, map[string]string{"a.typ": ""})
	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = runner.RunFiles(ctx, files, options(dir, config.OutputStdout, 0))
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewResult(t *testing.T) {
	t.Parallel()

	result := runner.NewResult(
		runner.FileOutcome{Path: "<stdin>", Result: &pipeline.Result{Path: "<stdin>", Changed: true}},
		runner.FileOutcome{Path: "bad.typ", Error: pipeline.ErrFormatFailure},
	)
	assert.Equal(t, runner.Stats{FilesDiscovered: 2, FilesFormatted: 1, FilesChanged: 1, FilesFailed: 1}, result.Stats)
	assert.True(t, result.HasChanges())
	assert.True(t, result.HasFailures())
	require.ErrorIs(t, result.Err(), pipeline.ErrFormatFailure)
}
