package format

import (
	"github.com/yaklabco/typfmt/pkg/attr"
	"github.com/yaklabco/typfmt/pkg/doc"
)

// listOptions describes a delimited, separated list for the fold engine.
type listOptions struct {
	open, close string
	// sep separates items on a single line.
	sep string
	// brokenSep follows each item laid out on its own line.
	brokenSep string
	// trailing puts brokenSep after the last item as well.
	trailing bool
	style    attr.FoldStyle
}

// parenList is the layout of argument lists, arrays, and the like.
func parenList(style attr.FoldStyle) listOptions {
	return listOptions{
		open:      "(",
		close:     ")",
		sep:       ",",
		brokenSep: ",",
		trailing:  true,
		style:     style,
	}
}

// foldList lays out items according to the fold style:
//
//	FoldFit     all on one line if they fit, else filled onto indented lines
//	FoldNever   one item per line
//	FoldSingle  all on one line if they fit, else one item per line
//
// A Nil item stands for a blank line in one-per-line layout.
func (p *printer) foldList(items []doc.Doc, opts listOptions) doc.Doc {
	if len(items) == 0 {
		return p.arena.Text(opts.open + opts.close)
	}
	switch opts.style {
	case attr.FoldNever:
		return p.foldNever(items, opts)
	case attr.FoldSingle:
		return p.arena.FlatAlt(p.foldNever(items, opts), p.foldFlat(items, opts))
	default:
		return p.foldFit(items, opts)
	}
}

func (p *printer) foldNever(items []doc.Doc, opts listOptions) doc.Doc {
	a := p.arena
	body := make([]doc.Doc, 0, 3*len(items))
	for i, item := range items {
		body = append(body, a.Hardline())
		if item == doc.Nil {
			continue
		}
		body = append(body, item)
		if i < len(items)-1 || opts.trailing {
			body = append(body, a.Text(opts.brokenSep))
		}
	}
	return a.Concat(
		a.Text(opts.open),
		a.Nest(a.Concat(body...), p.cfg.IndentWidth),
		a.Hardline(),
		a.Text(opts.close),
	)
}

func (p *printer) foldFlat(items []doc.Doc, opts listOptions) doc.Doc {
	a := p.arena
	return a.Concat(
		a.Text(opts.open),
		a.Intersperse(items, a.Text(opts.sep+" ")),
		a.Text(opts.close),
	)
}

func (p *printer) foldFit(items []doc.Doc, opts listOptions) doc.Doc {
	a := p.arena
	var trailing doc.Doc
	if opts.trailing {
		trailing = a.WhenBroken(a.Text(opts.brokenSep))
	}
	return a.Group(a.Concat(
		a.Text(opts.open),
		a.Nest(a.Concat(
			a.LineOrNil(),
			a.Intersperse(items, a.Concat(a.Text(opts.sep), a.Softline())),
			trailing,
		), p.cfg.IndentWidth),
		a.LineOrNil(),
		a.Text(opts.close),
	))
}
