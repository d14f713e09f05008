package format

import (
	"github.com/yaklabco/typfmt/pkg/attr"
	"github.com/yaklabco/typfmt/pkg/doc"
	"github.com/yaklabco/typfmt/pkg/syntax"
)

// listItems returns the items between the parentheses of a collection,
// argument list, or parameter list.
func listItems(n *syntax.Node) []*syntax.Node {
	var out []*syntax.Node
	for _, child := range n.Children() {
		switch k := child.Kind(); {
		case k == syntax.KindRightParen:
			return out
		case k.IsTrivia(), k == syntax.KindLeftParen, k == syntax.KindComma, k == syntax.KindColon:
		default:
			out = append(out, child)
		}
	}
	return out
}

func (p *printer) convertAll(ctx Context, nodes []*syntax.Node) []doc.Doc {
	docs := make([]doc.Doc, len(nodes))
	for i, n := range nodes {
		docs[i] = p.convert(ctx, n)
	}
	return docs
}

func (p *printer) convertCodeBlock(ctx Context, n *syntax.Node) doc.Doc {
	code := n.ChildOf(syntax.KindCode)
	if code == nil {
		return p.arena.Text("{}")
	}
	if p.store.Disabled(code) {
		return p.verbatim(n)
	}
	return p.convertCode(ctx, code)
}

// convertCode lays out the statements of a code block one per line. Source
// blank lines between statements survive as a single blank line, and a
// comment that shares a line with the statement before it stays there.
func (p *printer) convertCode(ctx Context, n *syntax.Node) doc.Doc {
	var items []doc.Doc
	blank := false
	lineStart := true

	for _, child := range n.Children() {
		switch k := child.Kind(); {
		case k == syntax.KindSpace:
			count := newlines(child.Text())
			if count > 0 {
				lineStart = true
			}
			if count > 1 && len(items) > 0 {
				blank = true
			}
			continue
		case k == syntax.KindSemicolon:
			continue
		case k.IsComment() && !lineStart && len(items) > 0:
			last := len(items) - 1
			items[last] = p.arena.Concat(items[last], p.arena.Space(), p.verbatim(child))
			continue
		}

		if blank {
			items = append(items, doc.Nil)
			blank = false
		}
		items = append(items, p.convert(ctx, child))
		lineStart = false
	}

	return p.foldList(items, listOptions{
		open:  "{",
		close: "}",
		sep:   ";",
		style: attr.FoldNever,
	})
}

func (p *printer) convertParenthesized(ctx Context, n *syntax.Node) doc.Doc {
	inner := nonTrivia(n, syntax.KindLeftParen, syntax.KindRightParen)
	if len(inner) != 1 {
		failf("parenthesized expression at %d has %d parts", startOf(n), len(inner))
	}
	a := p.arena
	body := p.convert(ctx, inner[0])
	return a.FlatAlt(
		a.Concat(
			a.Text("("),
			a.Nest(a.Concat(a.LineOrNil(), body), p.cfg.IndentWidth),
			a.LineOrNil(),
			a.Text(")"),
		),
		a.Concat(a.Text("("), body, a.Text(")")),
	)
}

func (p *printer) convertArray(ctx Context, n *syntax.Node) doc.Doc {
	items := listItems(n)
	if len(items) == 1 {
		return p.singleton(p.convert(ctx, items[0]))
	}
	return p.foldList(p.convertAll(ctx, items), parenList(p.store.FoldPreference(n)))
}

// singleton writes a one-element tuple, whose trailing comma is required.
func (p *printer) singleton(item doc.Doc) doc.Doc {
	a := p.arena
	return a.FlatAlt(
		a.Concat(
			a.Text("("),
			a.Nest(a.Concat(a.Hardline(), item, a.Text(",")), p.cfg.IndentWidth),
			a.Hardline(),
			a.Text(")"),
		),
		a.Concat(a.Text("("), item, a.Text(",)")),
	)
}

func (p *printer) convertDict(ctx Context, n *syntax.Node) doc.Doc {
	items := listItems(n)
	if len(items) == 0 {
		return p.arena.Text("(:)")
	}
	return p.foldList(p.convertAll(ctx, items), parenList(p.store.FoldPreference(n)))
}

// convertPair handles named arguments and dictionary entries.
func (p *printer) convertPair(ctx Context, n *syntax.Node) doc.Doc {
	parts := nonTrivia(n, syntax.KindColon)
	if len(parts) != 2 {
		return p.verbatim(n)
	}
	return p.arena.Concat(
		p.convert(ctx, parts[0]),
		p.arena.Text(": "),
		p.convert(ctx, parts[1]),
	)
}

func (p *printer) convertSpread(ctx Context, n *syntax.Node) doc.Doc {
	parts := nonTrivia(n, syntax.KindDots)
	out := p.arena.Text("..")
	if len(parts) == 1 {
		out = p.arena.Concat(out, p.convert(ctx, parts[0]))
	}
	return out
}

func (p *printer) convertUnary(ctx Context, n *syntax.Node) doc.Doc {
	parts := nonTrivia(n)
	if len(parts) != 2 {
		failf("unary expression at %d has %d parts", startOf(n), len(parts))
	}
	op := p.verbatim(parts[0])
	if parts[0].Kind() == syntax.KindNot {
		op = p.arena.Text("not ")
	}
	return p.arena.Concat(op, p.convert(ctx, parts[1]))
}

func (p *printer) convertBinary(ctx Context, n *syntax.Node) doc.Doc {
	parts := nonTrivia(n)
	if len(parts) < 3 {
		failf("binary expression at %d has %d parts", startOf(n), len(parts))
	}
	ops := make([]doc.Doc, 0, len(parts)-2)
	for _, op := range parts[1 : len(parts)-1] {
		ops = append(ops, p.verbatim(op))
	}
	a := p.arena
	return a.Concat(
		p.convert(ctx, parts[0]),
		a.Space(),
		a.Intersperse(ops, a.Space()),
		a.Space(),
		p.convert(ctx, parts[len(parts)-1]),
	)
}

func (p *printer) convertFieldAccess(ctx Context, n *syntax.Node) doc.Doc {
	parts := nonTrivia(n, syntax.KindDot)
	if len(parts) != 2 {
		failf("field access at %d has %d parts", startOf(n), len(parts))
	}
	return p.arena.Concat(p.convert(ctx, parts[0]), p.arena.Text("."), p.verbatim(parts[1]))
}

func (p *printer) convertFuncCall(ctx Context, n *syntax.Node) doc.Doc {
	children := n.Children()
	callee, args := children[0], children[len(children)-1]
	if args.Kind() != syntax.KindArgs {
		failf("call at %d has no argument list", startOf(n))
	}

	if callee.Kind() == syntax.KindMathIdent {
		if p.store.Disabled(args) {
			return p.arena.Concat(p.verbatim(callee), p.verbatim(args))
		}
		return p.arena.Concat(p.verbatim(callee), p.convertMathArgs(ctx, args))
	}
	return p.arena.Concat(p.convert(ctx, callee), p.convert(ctx, args))
}

// convertArgs writes an argument list. Calls without arguments, or with a
// single argument that is not itself a call, stay tight. Others are folded,
// one argument per line if the source already spread them over lines.
// Trailing content blocks follow the parenthesis directly.
func (p *printer) convertArgs(ctx Context, n *syntax.Node) doc.Doc {
	var parts []doc.Doc

	if n.HasChild(syntax.KindLeftParen) {
		items := listItems(n)
		switch {
		case len(items) == 0:
			parts = append(parts, p.arena.Text("()"))
		case len(items) == 1 && items[0].Kind() != syntax.KindFuncCall:
			parts = append(parts, p.arena.Text("("), p.convert(ctx, items[0]), p.arena.Text(")"))
		default:
			parts = append(parts, p.foldList(p.convertAll(ctx, items), parenList(p.store.FoldPreference(n))))
		}
	}

	for _, block := range trailingBlocks(n) {
		parts = append(parts, p.convert(ctx, block))
	}
	return p.arena.Concat(parts...)
}

// trailingBlocks returns the content blocks that follow the parentheses of
// an argument list.
func trailingBlocks(n *syntax.Node) []*syntax.Node {
	children := n.Children()
	start := 0
	for i, child := range children {
		if child.Kind() == syntax.KindRightParen {
			start = i + 1
		}
	}
	if !n.HasChild(syntax.KindLeftParen) {
		start = 0
	}

	var out []*syntax.Node
	for _, child := range children[start:] {
		if child.Kind() == syntax.KindContentBlock {
			out = append(out, child)
		}
	}
	return out
}

func (p *printer) convertClosure(ctx Context, n *syntax.Node) doc.Doc {
	parts := nonTrivia(n, syntax.KindEq, syntax.KindArrow)
	a := p.arena

	if len(parts) == 3 && parts[0].Kind() == syntax.KindIdent {
		return a.Concat(
			p.verbatim(parts[0]),
			p.convert(ctx, parts[1]),
			a.Text(" = "),
			p.convert(ctx, parts[2]),
		)
	}
	if len(parts) != 2 {
		failf("closure at %d has %d parts", startOf(n), len(parts))
	}

	params := parts[0]
	head := p.convert(ctx, params)
	if items := listItems(params); len(items) == 1 && isPlainParam(items[0]) && !p.store.Disabled(params) {
		head = p.convert(ctx, items[0])
	}
	return a.Concat(head, a.Text(" => "), p.convert(ctx, parts[1]))
}

// isPlainParam reports whether a parameter can stand without parentheses.
func isPlainParam(n *syntax.Node) bool {
	switch n.Kind() {
	case syntax.KindIdent, syntax.KindUnderscore:
		return true
	default:
		return false
	}
}

func (p *printer) convertParams(ctx Context, n *syntax.Node) doc.Doc {
	items := listItems(n)
	if !n.HasChild(syntax.KindLeftParen) && len(items) == 1 {
		return p.convert(ctx, items[0])
	}
	return p.foldList(p.convertAll(ctx, items), parenList(p.store.FoldPreference(n)))
}

func (p *printer) convertDestructuring(ctx Context, n *syntax.Node) doc.Doc {
	items := listItems(n)
	switch {
	case len(items) == 0 && n.HasChild(syntax.KindColon):
		return p.arena.Text("(:)")
	case len(items) == 1:
		return p.singleton(p.convert(ctx, items[0]))
	}
	return p.foldList(p.convertAll(ctx, items), parenList(attr.FoldFit))
}

func (p *printer) convertDestructAssignment(ctx Context, n *syntax.Node) doc.Doc {
	parts := nonTrivia(n, syntax.KindEq)
	if len(parts) != 2 {
		failf("destructuring assignment at %d has %d parts", startOf(n), len(parts))
	}
	return p.arena.Concat(p.convert(ctx, parts[0]), p.arena.Text(" = "), p.convert(ctx, parts[1]))
}

func (p *printer) convertLetBinding(ctx Context, n *syntax.Node) doc.Doc {
	parts := nonTrivia(n, syntax.KindLet, syntax.KindEq)
	if len(parts) == 0 || len(parts) > 2 {
		failf("let binding at %d has %d parts", startOf(n), len(parts))
	}
	a := p.arena
	out := a.Concat(a.Text("let "), p.convert(ctx, parts[0]))
	if len(parts) == 2 {
		out = a.Concat(out, a.Text(" = "), p.convert(ctx, parts[1]))
	}
	return out
}

// convertSetRule keeps the arguments of a set rule on one line when they
// fit and puts each on its own line otherwise.
func (p *printer) convertSetRule(ctx Context, n *syntax.Node) doc.Doc {
	parts := nonTrivia(n, syntax.KindSet, syntax.KindIf)
	if len(parts) < 2 || len(parts) > 3 {
		failf("set rule at %d has %d parts", startOf(n), len(parts))
	}
	a := p.arena

	args := parts[1]
	argsDoc := p.verbatim(args)
	if !p.store.Disabled(args) {
		argsDoc = p.foldList(p.convertAll(ctx, listItems(args)), parenList(attr.FoldSingle))
	}

	out := a.Concat(a.Text("set "), p.convert(ctx, parts[0]), argsDoc)
	if len(parts) == 3 {
		out = a.Concat(out, a.Text(" if "), p.convert(ctx, parts[2]))
	}
	return out
}

func (p *printer) convertShowRule(ctx Context, n *syntax.Node) doc.Doc {
	parts := nonTrivia(n, syntax.KindShow)
	a := p.arena

	colon := -1
	for i, part := range parts {
		if part.Kind() == syntax.KindColon {
			colon = i
		}
	}
	if colon < 0 || colon != len(parts)-2 {
		failf("show rule at %d is malformed", startOf(n))
	}

	out := a.Text("show")
	if colon == 1 {
		out = a.Concat(out, a.Space(), p.convert(ctx, parts[0]))
	}
	return a.Concat(out, a.Text(": "), p.convert(ctx, parts[colon+1]))
}

// convertKeywordChain handles conditionals and loops: keywords, conditions,
// and bodies separated by single spaces. Comments between them are kept; a
// line comment ends its line.
func (p *printer) convertKeywordChain(ctx Context, n *syntax.Node) doc.Doc {
	a := p.arena
	var parts []doc.Doc
	afterLineComment := false

	for _, child := range n.Children() {
		if child.Kind() == syntax.KindSpace {
			continue
		}
		if len(parts) > 0 {
			if afterLineComment {
				parts = append(parts, a.Hardline())
			} else {
				parts = append(parts, a.Space())
			}
		}
		if child.Kind().IsExpr() {
			parts = append(parts, p.convert(ctx, child))
		} else {
			parts = append(parts, p.verbatim(child))
		}
		afterLineComment = child.Kind() == syntax.KindLineComment
	}
	return a.Concat(parts...)
}

// convertKeywordExpr handles a keyword followed by an optional expression,
// as in context, include, and return.
func (p *printer) convertKeywordExpr(ctx Context, n *syntax.Node) doc.Doc {
	parts := nonTrivia(n)
	out := p.verbatim(parts[0])
	if len(parts) > 1 {
		out = p.arena.Concat(out, p.arena.Space(), p.convert(ctx, parts[1]))
	}
	return out
}
