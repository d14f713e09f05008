package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/typfmt/pkg/runner"
)

// makeTree creates files under dir, keyed by slash-separated relative path.
func makeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func abs(dir string, rels ...string) []string {
	out := make([]string, len(rels))
	for i, rel := range rels {
		out[i] = filepath.Join(dir, filepath.FromSlash(rel))
	}
	return out
}

func TestDiscoverDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, map[string]string{
		"main.typ":          "",
		"chapters/one.typ":  "",
		"chapters/two.TYP":  "",
		"chapters/notes.md": "",
		".hidden/skip.typ":  "",
		".skip.typ":         "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "chapters/one.typ", "chapters/two.TYP", "main.typ"), files)
}

func TestDiscoverExplicitFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, map[string]string{"snippet.txt": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"snippet.txt"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "snippet.txt"), files)
}

func TestDiscoverIgnoreGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, map[string]string{
		"main.typ":           "",
		"build/out.typ":      "",
		"lib/gen/table.typ":  "",
		"lib/util.typ":       "",
		"lib/util.gen.typ":   "",
		"deep/vendor/x.typ":  "",
		"deep/keep/main.typ": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"build/**", "*.gen.typ", "lib/gen", "**/vendor/**"},
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "deep/keep/main.typ", "lib/util.typ", "main.typ"), files)
}

func TestDiscoverInvalidGlob(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   t.TempDir(),
		ExcludeGlobs: []string{"[unclosed"},
	})
	require.Error(t, err)
}

func TestDiscoverDeduplicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, map[string]string{"a.typ": "", "sub/b.typ": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{".", "a.typ", "sub", "sub/b.typ"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "a.typ", "sub/b.typ"), files)
}

func TestDiscoverMissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"nope"},
		WorkingDir: t.TempDir(),
	})
	require.Error(t, err)
}

func TestDiscoverCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscoverDirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, map[string]string{"real/a.typ": ""})
	if err := os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	// A link back to the root must not loop.
	require.NoError(t, os.Symlink(dir, filepath.Join(dir, "real", "loop")))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "real/a.typ"), files)

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "real/a.typ"), files, "the linked directory is walked once")
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".typ"}, runner.DefaultExtensions())
}
