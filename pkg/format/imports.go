package format

import (
	"slices"
	"strings"

	"github.com/yaklabco/typfmt/pkg/doc"
	"github.com/yaklabco/typfmt/pkg/syntax"
)

func (p *printer) convertImport(ctx Context, n *syntax.Node) doc.Doc {
	parts := nonTrivia(n, syntax.KindImport)
	if len(parts) == 0 {
		failf("import at %d has no source", startOf(n))
	}
	a := p.arena
	out := []doc.Doc{a.Text("import "), p.convert(ctx, parts[0])}

	rest := parts[1:]
	if len(rest) >= 2 && rest[0].Kind() == syntax.KindAs {
		out = append(out, a.Text(" as "), p.verbatim(rest[1]))
		rest = rest[2:]
	}
	if len(rest) == 2 && rest[0].Kind() == syntax.KindColon {
		out = append(out, a.Text(": "), p.convert(ctx, rest[1]))
		rest = nil
	}
	if len(rest) > 0 {
		failf("import at %d has unexpected %s", startOf(n), rest[0].Kind())
	}
	return a.Concat(out...)
}

// convertImportItems writes the imported names, sorted by their original
// name when reordering is enabled. Parenthesized lists may break over lines
// like any other list; bare lists stay on one line.
func (p *printer) convertImportItems(ctx Context, n *syntax.Node) doc.Doc {
	items := nonTrivia(n, syntax.KindLeftParen, syntax.KindRightParen, syntax.KindComma)
	if p.cfg.ReorderImportItems {
		items = slices.Clone(items)
		slices.SortStableFunc(items, func(x, y *syntax.Node) int {
			return strings.Compare(importedName(x), importedName(y))
		})
	}

	docs := p.convertAll(ctx, items)
	if n.HasChild(syntax.KindLeftParen) {
		return p.foldList(docs, parenList(p.store.FoldPreference(n)))
	}
	return p.arena.Intersperse(docs, p.arena.Text(", "))
}

// importedName returns the name an import item refers to in the source
// module.
func importedName(n *syntax.Node) string {
	if n.Kind() == syntax.KindRenamedImportItem {
		return n.Children()[0].Text()
	}
	return n.Text()
}

func (p *printer) convertRenamedItem(n *syntax.Node) doc.Doc {
	parts := nonTrivia(n, syntax.KindAs)
	if len(parts) != 2 {
		failf("renamed import at %d has %d parts", startOf(n), len(parts))
	}
	return p.arena.Concat(p.verbatim(parts[0]), p.arena.Text(" as "), p.verbatim(parts[1]))
}
