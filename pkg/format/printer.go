// Package format converts a Typst syntax tree into a layout document and
// renders it. The conversion is driven by the node attributes computed by
// package attr: disabled nodes are reproduced verbatim, everything else is
// rebuilt from its parts.
package format

import (
	"errors"
	"fmt"

	"github.com/yaklabco/typfmt/pkg/attr"
	"github.com/yaklabco/typfmt/pkg/config"
	"github.com/yaklabco/typfmt/pkg/doc"
	"github.com/yaklabco/typfmt/pkg/syntax"
)

var (
	// ErrInternal reports a converter invariant violation. The input is
	// left untouched when it occurs.
	ErrInternal = errors.New("internal formatter error")

	// ErrUnsafeOutput reports that the formatted text no longer parses as
	// cleanly as the input did.
	ErrUnsafeOutput = errors.New("formatted output introduces syntax errors")

	// ErrInvalidConfig reports layout settings the printer cannot honor.
	ErrInvalidConfig = errors.New("invalid format configuration")
)

// internalError is raised with panic inside the converter and recovered at
// the package boundary.
type internalError struct {
	msg string
}

func failf(format string, args ...any) {
	panic(internalError{msg: fmt.Sprintf(format, args...)})
}

// printer holds the state of one conversion. It owns the arena, so every
// document it builds lives exactly as long as the call that created it.
type printer struct {
	arena *doc.Arena
	store *attr.Store
	cfg   config.Config
}

func newPrinter(store *attr.Store, cfg config.Config) *printer {
	return &printer{
		arena: doc.NewArena(),
		store: store,
		cfg:   cfg,
	}
}

func validate(cfg config.Config) error {
	if cfg.MaxWidth < 1 {
		return fmt.Errorf("%w: max width must be positive, got %d", ErrInvalidConfig, cfg.MaxWidth)
	}
	if cfg.IndentWidth < 1 {
		return fmt.Errorf("%w: indent width must be positive, got %d", ErrInvalidConfig, cfg.IndentWidth)
	}
	return nil
}

// BuildDoc converts root into a document without rendering it. The
// returned arena owns the document.
func BuildDoc(root *syntax.Node, store *attr.Store, cfg config.Config) (arena *doc.Arena, d doc.Doc, err error) {
	if err := validate(cfg); err != nil {
		return nil, doc.Nil, err
	}
	if store == nil {
		store = attr.Compute(root)
	}

	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(internalError)
			if !ok {
				panic(r)
			}
			arena, d, err = nil, doc.Nil, fmt.Errorf("%w: %s", ErrInternal, ie.msg)
		}
	}()

	p := newPrinter(store, cfg)
	return p.arena, p.convert(NewContext(), root), nil
}

// Format converts root into formatted text.
func Format(root *syntax.Node, store *attr.Store, cfg config.Config) (string, error) {
	arena, d, err := BuildDoc(root, store, cfg)
	if err != nil {
		return "", err
	}
	return doc.Render(arena, d, cfg.MaxWidth), nil
}

// Source parses and formats src. The result is checked by parsing it again;
// output with more syntax errors than the input is rejected.
func Source(src string, cfg config.Config) (string, error) {
	root := syntax.Parse(src)
	out, err := Format(root, attr.Compute(root), cfg)
	if err != nil {
		return "", err
	}

	before := len(syntax.Errors(root))
	if after := len(syntax.Errors(syntax.Parse(out))); after > before {
		return "", fmt.Errorf("%w: %d errors before, %d after", ErrUnsafeOutput, before, after)
	}
	return out, nil
}
