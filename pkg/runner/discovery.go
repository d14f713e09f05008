package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Discover lists the files to format. Explicit file arguments are taken as
// given, whatever their extension; directories are walked for files with a
// known extension, skipping hidden entries. Results are absolute, sorted,
// and free of duplicates.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	ignore, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	w := &walker{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		ignore:     ignore,
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]struct{}),
		walked:     make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		path := input
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}
		if info.IsDir() {
			if err := w.walk(path); err != nil {
				return nil, err
			}
			continue
		}
		w.add(path)
	}

	slices.Sort(w.files)
	return w.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

type pattern struct {
	glob glob.Glob
	// base patterns have no separator and also match the file name alone.
	base bool
}

func compileGlobs(patterns []string) ([]pattern, error) {
	out := make([]pattern, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimPrefix(filepath.ToSlash(p), "./")
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
		out = append(out, pattern{glob: g, base: !strings.Contains(p, "/")})
	}
	return out, nil
}

type walker struct {
	ctx        context.Context
	workDir    string
	extensions []string
	ignore     []pattern
	follow     bool
	seen       map[string]struct{}
	walked     map[string]struct{}
	files      []string
}

func (w *walker) add(path string) {
	if w.ignored(path, false) {
		return
	}
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

// ignored matches path, relative to the working directory, against the
// ignore globs. Directories also match patterns written as "dir/**".
func (w *walker) ignored(path string, dir bool) bool {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	name := filepath.Base(path)

	for _, p := range w.ignore {
		if p.glob.Match(rel) || (p.base && p.glob.Match(name)) {
			return true
		}
		if dir && p.glob.Match(rel+"/") {
			return true
		}
	}
	return false
}

func (w *walker) hasExtension(path string) bool {
	return slices.Contains(w.extensions, strings.ToLower(filepath.Ext(path)))
}

func (w *walker) walk(root string) error {
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		if _, ok := w.walked[resolved]; ok {
			return nil
		}
		w.walked[resolved] = struct{}{}
	}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")
		if entry.IsDir() {
			if hidden || (path != root && w.ignored(path, true)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if info.IsDir() {
				if !w.follow {
					return nil
				}
				return w.walk(target)
			}
		}

		if w.hasExtension(path) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}
	return nil
}
