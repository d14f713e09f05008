package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/typfmt/pkg/config"
	"github.com/yaklabco/typfmt/pkg/pipeline"
)

func configWithMode(mode config.OutputMode) *config.Config {
	cfg := config.NewConfig()
	cfg.Mode = mode
	return cfg
}

func TestProcessContent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("formats", func(t *testing.T) {
		t.Parallel()

		res, err := pipeline.ProcessContent(ctx, "a.typ", "#f(a,b)\n", configWithMode(config.OutputStdout), pipeline.Options{})
		require.NoError(t, err)
		assert.Equal(t, "#f(a, b)\n", res.Output)
		assert.True(t, res.Changed)
		assert.Nil(t, res.Diff)
	})

	t.Run("already formatted", func(t *testing.T) {
		t.Parallel()

		res, err := pipeline.ProcessContent(ctx, "a.typ", "#f(a, b)\n", configWithMode(config.OutputCheck), pipeline.Options{})
		require.NoError(t, err)
		assert.False(t, res.Changed)
	})

	t.Run("diff mode", func(t *testing.T) {
		t.Parallel()

		res, err := pipeline.ProcessContent(ctx, "a.typ", "#f(a,b)\n", configWithMode(config.OutputDiff), pipeline.Options{})
		require.NoError(t, err)
		require.NotNil(t, res.Diff)
		assert.Equal(t, 1, res.Diff.Added)
		assert.Equal(t, 1, res.Diff.Removed)
	})

	t.Run("ast dump", func(t *testing.T) {
		t.Parallel()

		res, err := pipeline.ProcessContent(ctx, "a.typ", "= Hi\n", configWithMode(config.OutputStdout), pipeline.Options{Dump: pipeline.DumpAST})
		require.NoError(t, err)
		assert.Contains(t, res.Output, "Heading")
		assert.False(t, res.Changed)
	})

	t.Run("doc dump", func(t *testing.T) {
		t.Parallel()

		res, err := pipeline.ProcessContent(ctx, "a.typ", "#f(a,b)\n", configWithMode(config.OutputStdout), pipeline.Options{Dump: pipeline.DumpDoc})
		require.NoError(t, err)
		assert.Contains(t, res.Output, "Group")
	})

	t.Run("invalid config keeps the source", func(t *testing.T) {
		t.Parallel()

		cfg := configWithMode(config.OutputStdout)
		cfg.MaxWidth = 0

		res, err := pipeline.ProcessContent(ctx, "a.typ", "#f(a,b)\n", cfg, pipeline.Options{})
		require.ErrorIs(t, err, pipeline.ErrFormatFailure)
		require.NotNil(t, res)
		assert.Equal(t, "#f(a,b)\n", res.Output)
	})
}

func TestProcessFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("in place", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "main.typ")
		require.NoError(t, os.WriteFile(path, []byte("#f(a,b)\n"), 0o600))

		res, err := pipeline.ProcessFile(ctx, path, configWithMode(config.OutputInPlace), pipeline.Options{})
		require.NoError(t, err)
		assert.True(t, res.Written)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "#f(a, b)\n", string(got))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("unchanged file is not written", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "main.typ")
		require.NoError(t, os.WriteFile(path, []byte("#f(a, b)\n"), 0o644))

		res, err := pipeline.ProcessFile(ctx, path, configWithMode(config.OutputInPlace), pipeline.Options{})
		require.NoError(t, err)
		assert.False(t, res.Written)
	})

	t.Run("check mode leaves the file alone", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "main.typ")
		require.NoError(t, os.WriteFile(path, []byte("#f(a,b)\n"), 0o644))

		res, err := pipeline.ProcessFile(ctx, path, configWithMode(config.OutputCheck), pipeline.Options{})
		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.False(t, res.Written)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "#f(a,b)\n", string(got))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := pipeline.ProcessFile(ctx, filepath.Join(t.TempDir(), "gone.typ"), configWithMode(config.OutputStdout), pipeline.Options{})
		require.ErrorIs(t, err, pipeline.ErrFileNotFound)
	})
}
