package format

import (
	"strings"

	"github.com/yaklabco/typfmt/pkg/doc"
	"github.com/yaklabco/typfmt/pkg/syntax"
)

// markupLine is a run of markup nodes between two line breaks.
type markupLine struct {
	nodes   []*syntax.Node
	hasText bool
}

// splitMarkupLines groups markup children into source lines. A line ends
// after a whitespace node that contains a newline, a paragraph break, or a
// construct that always occupies lines of its own.
func splitMarkupLines(nodes []*syntax.Node) []markupLine {
	var lines []markupLine
	var cur markupLine

	for _, n := range nodes {
		cur.nodes = append(cur.nodes, n)
		switch n.Kind() {
		case syntax.KindText, syntax.KindStrong, syntax.KindEmph:
			cur.hasText = true
		case syntax.KindRaw:
			if isBlockRaw(n) {
				lines = append(lines, cur)
				cur = markupLine{}
			} else {
				cur.hasText = true
			}
		}
		if endsMarkupLine(n) {
			lines = append(lines, cur)
			cur = markupLine{}
		}
	}
	if len(cur.nodes) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

func endsMarkupLine(n *syntax.Node) bool {
	switch k := n.Kind(); {
	case k == syntax.KindSpace:
		return n.HasNewline()
	case k == syntax.KindParbreak, k == syntax.KindCodeBlock, k.IsStmt():
		return true
	case k == syntax.KindEquation:
		return n.IsBlockEquation()
	default:
		return false
	}
}

// isBlockRaw reports whether a raw element uses three or more backticks
// and spans several lines.
func isBlockRaw(n *syntax.Node) bool {
	children := n.Children()
	return len(children) > 0 && len(children[0].Text()) >= 3 && n.HasNewline()
}

// convertMarkup converts a sequence of markup nodes line by line. Lines that
// carry prose are reproduced as written, apart from their whitespace, unless
// text wrapping is enabled.
func (p *printer) convertMarkup(ctx Context, nodes []*syntax.Node) doc.Doc {
	var parts []doc.Doc
	for _, line := range splitMarkupLines(nodes) {
		keep := line.hasText && !p.cfg.WrapText
		parts = append(parts, p.convertMarkupLine(ctx, line.nodes, keep))
	}
	return p.arena.Concat(parts...)
}

func (p *printer) convertMarkupLine(ctx Context, nodes []*syntax.Node, keep bool) doc.Doc {
	parts := make([]doc.Doc, 0, len(nodes))
	afterHash := false

	for _, n := range nodes {
		switch {
		case n.Kind() == syntax.KindSpace:
			parts = append(parts, p.convertMarkupSpace(ctx, n))
		case n.Kind() == syntax.KindParbreak:
			parts = append(parts, p.convertKind(ctx, n))
		case keep:
			parts = append(parts, p.verbatim(n))
		case n.Kind() == syntax.KindHash:
			parts = append(parts, p.verbatim(n))
			afterHash = true
			continue
		case afterHash:
			parts = append(parts, p.convert(ctx.WithMode(ModeCode), n))
		case n.Kind() == syntax.KindText && p.cfg.WrapText && !p.store.Disabled(n):
			parts = append(parts, p.wrapText(n.Text()))
		case n.Kind().IsExpr():
			parts = append(parts, p.convert(ctx, n))
		default:
			parts = append(parts, p.verbatim(n))
		}
		afterHash = false
	}
	return p.arena.Concat(parts...)
}

func (p *printer) convertMarkupSpace(ctx Context, n *syntax.Node) doc.Doc {
	if p.cfg.WrapText && !n.HasNewline() {
		return p.arena.Softline()
	}
	return p.convertSpace(ctx, n)
}

// convertDelimited handles strong and emphasized text.
func (p *printer) convertDelimited(ctx Context, n *syntax.Node) doc.Doc {
	parts := make([]doc.Doc, 0, len(n.Children()))
	for _, child := range n.Children() {
		if child.Kind() == syntax.KindMarkup {
			parts = append(parts, p.convert(ctx, child))
			continue
		}
		parts = append(parts, p.verbatim(child))
	}
	return p.arena.Concat(parts...)
}

func (p *printer) convertHeading(ctx Context, n *syntax.Node) doc.Doc {
	marker := n.ChildOf(syntax.KindHeadingMarker)
	body := n.ChildOf(syntax.KindMarkup)
	if isEmptyMarkup(body) {
		return p.verbatim(marker)
	}
	return p.arena.Concat(p.verbatim(marker), p.arena.Space(), p.convert(ctx, body))
}

// convertListItem writes the marker followed by the body indented one
// level, so that continuation lines stay inside the item.
func (p *printer) convertListItem(ctx Context, n *syntax.Node) doc.Doc {
	children := n.Children()
	marker := children[0]
	body := n.ChildOf(syntax.KindMarkup)
	return p.arena.Concat(p.verbatim(marker), p.itemBody(ctx, body))
}

func (p *printer) convertTermItem(ctx Context, n *syntax.Node) doc.Doc {
	bodies := n.ChildrenOf(syntax.KindMarkup)
	if len(bodies) != 2 {
		failf("term item at %d has %d bodies", startOf(n), len(bodies))
	}
	return p.arena.Concat(
		p.arena.Text("/ "),
		p.arena.Nest(p.convert(ctx, bodies[0]), p.cfg.IndentWidth),
		p.arena.Text(":"),
		p.itemBody(ctx, bodies[1]),
	)
}

// itemBody renders a list body after its marker. An empty body produces
// nothing, so no trailing space is left behind.
func (p *printer) itemBody(ctx Context, body *syntax.Node) doc.Doc {
	if isEmptyMarkup(body) {
		return doc.Nil
	}
	inner := p.arena.Nest(p.convert(ctx, body), p.cfg.IndentWidth)
	if body.Children()[0].Kind() == syntax.KindSpace {
		return inner
	}
	return p.arena.Concat(p.arena.Space(), inner)
}

func isEmptyMarkup(n *syntax.Node) bool {
	return n == nil || len(n.Children()) == 0
}

// convertEquation lays out dollar-delimited math. Whitespace next to the
// dollars becomes a soft line in block equations, so a body that breaks
// moves onto its own indented lines.
func (p *printer) convertEquation(ctx Context, n *syntax.Node) doc.Doc {
	block := n.IsBlockEquation()
	inner := ctx.WithMode(ModeMath)
	if !block {
		inner = inner.Aligned(AlignNever)
	}

	a := p.arena
	parts := make([]doc.Doc, 0, len(n.Children()))
	var lead doc.Doc
	for _, child := range n.Children() {
		switch child.Kind() {
		case syntax.KindSpace:
			switch {
			case !block:
				parts = append(parts, a.Space())
			case lead == doc.Nil && len(parts) == 1:
				lead = a.Line()
			default:
				parts = append(parts, a.Line())
			}
		case syntax.KindMath:
			parts = append(parts, a.Nest(a.Concat(lead, p.convert(inner, child)), p.cfg.IndentWidth))
		default:
			parts = append(parts, p.verbatim(child))
		}
	}
	return a.Concat(parts...)
}

func (p *printer) convertRef(ctx Context, n *syntax.Node) doc.Doc {
	parts := []doc.Doc{p.verbatim(n.Children()[0])}
	if supplement := n.ChildOf(syntax.KindContentBlock); supplement != nil {
		parts = append(parts, p.convert(ctx, supplement))
	}
	return p.arena.Concat(parts...)
}

// convertContentBlock nests the markup body one level. A line break right
// before the closing bracket stays outside the nesting so the bracket lines
// up with the line that opened it.
func (p *printer) convertContentBlock(ctx Context, n *syntax.Node) doc.Doc {
	body := n.ChildOf(syntax.KindMarkup)
	if body == nil || p.store.Disabled(body) {
		return p.verbatim(n)
	}

	nodes := body.Children()
	var trailing doc.Doc
	if len(nodes) > 0 {
		if last := nodes[len(nodes)-1]; last.Kind() == syntax.KindSpace && last.HasNewline() {
			nodes = nodes[:len(nodes)-1]
			trailing = p.arena.Hardline()
		}
	}

	markup := ctx.WithMode(ModeMarkup)
	return p.arena.Concat(
		p.arena.Text("["),
		p.arena.Nest(p.arena.Group(p.convertMarkup(markup, nodes)), p.cfg.IndentWidth),
		trailing,
		p.arena.Text("]"),
	)
}

// wrapText splits prose into words joined by soft lines. Only ASCII
// whitespace separates words; other spaces, such as no-break spaces, are
// part of the word.
func (p *printer) wrapText(text string) doc.Doc {
	words := strings.FieldsFunc(text, isASCIISpace)
	docs := make([]doc.Doc, 0, len(words)+1)
	for _, w := range words {
		docs = append(docs, p.arena.Text(w))
	}
	out := p.arena.Intersperse(docs, p.arena.Softline())
	if strings.HasSuffix(text, " ") {
		out = p.arena.Concat(out, p.arena.Softline())
	}
	return out
}

func isASCIISpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v'
}
