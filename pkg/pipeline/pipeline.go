// Package pipeline formats a single Typst source file: read, format,
// verify, and then print, diff, or rewrite it.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yaklabco/typfmt/pkg/attr"
	"github.com/yaklabco/typfmt/pkg/config"
	"github.com/yaklabco/typfmt/pkg/diff"
	"github.com/yaklabco/typfmt/pkg/doc"
	"github.com/yaklabco/typfmt/pkg/format"
	"github.com/yaklabco/typfmt/pkg/fsutil"
	"github.com/yaklabco/typfmt/pkg/syntax"
)

// Pipeline error types for categorization.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrFormatFailure    = errors.New("format failure")
	ErrWriteFailure     = errors.New("write failure")
)

// Dump selects a debug rendering printed instead of the formatted text.
type Dump int

const (
	DumpNone Dump = iota
	// DumpAST prints the syntax tree.
	DumpAST
	// DumpDoc prints the layout document before rendering.
	DumpDoc
)

// Result describes what happened to one file.
type Result struct {
	Path string

	// Original is the source as read.
	Original string

	// Output is what the front end prints: the formatted source, a debug
	// dump, or the original source when formatting failed.
	Output string

	// Changed is true when the formatted source differs from the original.
	Changed bool

	// Diff is set in diff mode when the file changed.
	Diff *diff.Unified

	// Written is true when the file was rewritten in place.
	Written bool

	// Skipped is true when an in-place write was abandoned.
	Skipped    bool
	SkipReason string

	// Elapsed is the time spent formatting, excluding I/O.
	Elapsed time.Duration
}

// Options controls per-file processing.
type Options struct {
	Dump Dump
}

// ProcessFile runs the pipeline for the file at path. In in-place mode the
// file is rewritten atomically, unless it changed on disk while it was
// being formatted.
func ProcessFile(ctx context.Context, path string, cfg *config.Config, opts Options) (*Result, error) {
	content, snap, err := fsutil.Read(ctx, path)
	if err != nil {
		return nil, categorize(err)
	}

	result, err := ProcessContent(ctx, path, string(content), cfg, opts)
	if err != nil {
		return result, err
	}
	if cfg.Mode != config.OutputInPlace || !result.Changed || opts.Dump != DumpNone {
		return result, nil
	}

	changed, err := snap.Changed(ctx)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", path, err)
	}
	if changed {
		result.Skipped = true
		result.SkipReason = "file modified during formatting"
		return result, nil
	}

	if err := fsutil.WriteAtomic(ctx, path, []byte(result.Output), snap.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true
	return result, nil
}

// ProcessContent formats source that is already in memory. On a format
// failure it returns the error together with a result whose Output is the
// unchanged source.
func ProcessContent(ctx context.Context, path, src string, cfg *config.Config, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("process %s: %w", path, err)
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}

	result := &Result{Path: path, Original: src, Output: src}
	start := time.Now()
	defer func() { result.Elapsed = time.Since(start) }()

	switch opts.Dump {
	case DumpAST:
		var b strings.Builder
		if err := syntax.Dump(&b, syntax.Parse(src)); err != nil {
			return result, fmt.Errorf("dump %s: %w", path, err)
		}
		result.Output = b.String()
		return result, nil
	case DumpDoc:
		root := syntax.Parse(src)
		arena, d, err := format.BuildDoc(root, attr.Compute(root), *cfg)
		if err != nil {
			return result, fmt.Errorf("%w: %s: %w", ErrFormatFailure, path, err)
		}
		var b strings.Builder
		if err := doc.Dump(&b, arena, d); err != nil {
			return result, fmt.Errorf("dump %s: %w", path, err)
		}
		result.Output = b.String()
		return result, nil
	}

	formatted, err := format.Source(src, *cfg)
	if err != nil {
		return result, fmt.Errorf("%w: %s: %w", ErrFormatFailure, path, err)
	}

	result.Output = formatted
	result.Changed = formatted != src
	if result.Changed && cfg.Mode == config.OutputDiff {
		result.Diff = diff.Compute(path, src, formatted)
	}
	return result, nil
}

func categorize(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}
