package format

import (
	"github.com/yaklabco/typfmt/pkg/doc"
	"github.com/yaklabco/typfmt/pkg/syntax"
)

// convertMath converts a math body, as an aligned grid when the context and
// the node's attributes allow it, otherwise node by node.
func (p *printer) convertMath(ctx Context, n *syntax.Node) doc.Doc {
	if d, ok := p.convertMathAligned(ctx, n); ok {
		return d
	}
	return p.convertMathNodes(ctx, n.Children())
}

// convertMathNodes converts math nodes in sequence. Whitespace keeps only
// its shape: a line break or a single space.
func (p *printer) convertMathNodes(ctx Context, nodes []*syntax.Node) doc.Doc {
	parts := make([]doc.Doc, 0, len(nodes))
	afterHash := false
	for _, n := range nodes {
		switch {
		case n.Kind() == syntax.KindSpace:
			parts = append(parts, p.convertSpace(ctx, n))
		case n.Kind() == syntax.KindHash:
			parts = append(parts, p.verbatim(n))
			afterHash = true
			continue
		case afterHash:
			parts = append(parts, p.convert(ctx.WithMode(ModeCode), n))
		case n.Kind().IsExpr():
			parts = append(parts, p.convert(ctx, n))
		default:
			parts = append(parts, p.verbatim(n))
		}
		afterHash = false
	}
	return p.arena.Concat(parts...)
}

// convertMathDelimited keeps a bracketed group on one line when it fits and
// otherwise puts the body on its own indented lines.
func (p *printer) convertMathDelimited(ctx Context, n *syntax.Node) doc.Doc {
	children := n.Children()
	if len(children) != 3 {
		failf("delimited math at %d has %d parts", startOf(n), len(children))
	}
	left, right := p.verbatim(children[0]), p.verbatim(children[2])
	body := children[1]
	flat := p.convert(ctx, body)
	broken := flat
	if !p.store.Disabled(body) && !p.store.AlignmentEligible(body) {
		broken = p.arena.Group(p.convertMathNodes(ctx, trimSpaces(body.Children())))
	}

	return p.arena.FlatAlt(
		p.arena.Concat(
			left,
			p.arena.Nest(p.arena.Concat(p.arena.Hardline(), broken), p.cfg.IndentWidth),
			p.arena.Hardline(),
			right,
		),
		p.arena.Concat(left, flat, right),
	)
}

// convertAdjacent writes the children of n back to back, as in attachments
// and roots.
func (p *printer) convertAdjacent(ctx Context, n *syntax.Node) doc.Doc {
	parts := make([]doc.Doc, 0, len(n.Children()))
	for _, child := range n.Children() {
		if child.Kind().IsExpr() {
			parts = append(parts, p.convert(ctx, child))
			continue
		}
		parts = append(parts, p.verbatim(child))
	}
	return p.arena.Concat(parts...)
}

func (p *printer) convertMathFrac(ctx Context, n *syntax.Node) doc.Doc {
	operands := nonTrivia(n, syntax.KindSlash)
	if len(operands) != 2 {
		failf("fraction at %d has %d operands", startOf(n), len(operands))
	}
	return p.arena.Concat(
		p.convert(ctx, operands[0]),
		p.arena.Text(" / "),
		p.convert(ctx, operands[1]),
	)
}

// convertMathArgs writes the arguments of a call in math. Separators and
// line structure are kept; spaces are normalized to one.
func (p *printer) convertMathArgs(ctx Context, args *syntax.Node) doc.Doc {
	children := args.Children()
	if len(children) < 2 || children[0].Kind() != syntax.KindLeftParen ||
		children[len(children)-1].Kind() != syntax.KindRightParen {
		return p.verbatim(args)
	}

	inner := children[1 : len(children)-1]
	var trailing doc.Doc
	if len(inner) > 0 {
		if last := inner[len(inner)-1]; last.Kind() == syntax.KindSpace {
			inner = inner[:len(inner)-1]
			trailing = p.convertSpace(ctx, last)
		}
	}

	parts := make([]doc.Doc, 0, len(inner))
	for _, child := range inner {
		switch child.Kind() {
		case syntax.KindSpace:
			parts = append(parts, p.convertSpace(ctx, child))
		case syntax.KindMath, syntax.KindNamed:
			parts = append(parts, p.convert(ctx, child))
		default:
			parts = append(parts, p.verbatim(child))
		}
	}

	return p.arena.Concat(
		p.arena.Text("("),
		p.arena.Nest(p.arena.Concat(parts...), p.cfg.IndentWidth),
		trailing,
		p.arena.Text(")"),
	)
}
