package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/typfmt/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("replaces content and keeps mode", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "main.typ", "old")

		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("new\n"), 0o600))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new\n", string(got))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("zero mode falls back to default", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "fresh.typ")
		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("x"), 0))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, info.Mode().Perm())
	})

	t.Run("leaves no temporary files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "main.typ", "old")
		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("new"), 0o644))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "main.typ", entries[0].Name())
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "no", "such", "main.typ")
		require.Error(t, fsutil.WriteAtomic(ctx, path, []byte("x"), 0o644))
	})
}
