package format

import (
	"strings"

	"github.com/yaklabco/typfmt/pkg/doc"
	"github.com/yaklabco/typfmt/pkg/syntax"
)

// convert is the single entry point for turning a node into a document.
// Disabled nodes come back as their source text; every other expression is
// grouped so that its line breaks are decided together.
func (p *printer) convert(ctx Context, n *syntax.Node) doc.Doc {
	if n == nil {
		return doc.Nil
	}
	if p.store.Disabled(n) {
		return p.verbatim(n)
	}
	return p.arena.Group(p.convertKind(ctx, n))
}

//nolint:gocyclo,cyclop,funlen // One case per node kind.
func (p *printer) convertKind(ctx Context, n *syntax.Node) doc.Doc {
	switch n.Kind() {
	case syntax.KindMarkup:
		return p.convertMarkup(ctx.WithMode(ModeMarkup), n.Children())
	case syntax.KindSpace:
		return p.convertSpace(ctx, n)
	case syntax.KindParbreak:
		return p.arena.Hardlines(newlines(n.Text()))
	case syntax.KindStrong, syntax.KindEmph:
		return p.convertDelimited(ctx, n)
	case syntax.KindHeading:
		return p.convertHeading(ctx, n)
	case syntax.KindListItem, syntax.KindEnumItem:
		return p.convertListItem(ctx, n)
	case syntax.KindTermItem:
		return p.convertTermItem(ctx, n)
	case syntax.KindEquation:
		return p.convertEquation(ctx, n)
	case syntax.KindRef:
		return p.convertRef(ctx, n)

	case syntax.KindMath:
		return p.convertMath(ctx.WithMode(ModeMath), n)
	case syntax.KindMathDelimited:
		return p.convertMathDelimited(ctx, n)
	case syntax.KindMathAttach, syntax.KindMathRoot:
		return p.convertAdjacent(ctx, n)
	case syntax.KindMathFrac:
		return p.convertMathFrac(ctx, n)

	case syntax.KindCodeBlock:
		return p.convertCodeBlock(ctx.WithMode(ModeCode), n)
	case syntax.KindContentBlock:
		return p.convertContentBlock(ctx, n)
	case syntax.KindParenthesized:
		return p.convertParenthesized(ctx, n)
	case syntax.KindArray:
		return p.convertArray(ctx, n)
	case syntax.KindDict:
		return p.convertDict(ctx, n)
	case syntax.KindNamed, syntax.KindKeyed:
		return p.convertPair(ctx, n)
	case syntax.KindSpread:
		return p.convertSpread(ctx, n)
	case syntax.KindUnary:
		return p.convertUnary(ctx, n)
	case syntax.KindBinary:
		return p.convertBinary(ctx, n)
	case syntax.KindFieldAccess:
		return p.convertFieldAccess(ctx, n)
	case syntax.KindFuncCall:
		return p.convertFuncCall(ctx, n)
	case syntax.KindArgs:
		return p.convertArgs(ctx, n)
	case syntax.KindClosure:
		return p.convertClosure(ctx, n)
	case syntax.KindParams:
		return p.convertParams(ctx, n)
	case syntax.KindDestructuring:
		return p.convertDestructuring(ctx, n)
	case syntax.KindDestructAssignment:
		return p.convertDestructAssignment(ctx, n)
	case syntax.KindLetBinding:
		return p.convertLetBinding(ctx, n)
	case syntax.KindSetRule:
		return p.convertSetRule(ctx, n)
	case syntax.KindShowRule:
		return p.convertShowRule(ctx, n)
	case syntax.KindConditional, syntax.KindWhileLoop, syntax.KindForLoop:
		return p.convertKeywordChain(ctx, n)
	case syntax.KindModuleImport:
		return p.convertImport(ctx, n)
	case syntax.KindImportItems:
		return p.convertImportItems(ctx, n)
	case syntax.KindRenamedImportItem:
		return p.convertRenamedItem(n)
	case syntax.KindContextual, syntax.KindModuleInclude, syntax.KindFuncReturn:
		return p.convertKeywordExpr(ctx, n)
	case syntax.KindLoopBreak, syntax.KindLoopContinue:
		return p.verbatim(n)
	case syntax.KindCode:
		return p.convertCode(ctx.WithMode(ModeCode), n)

	case syntax.KindError, syntax.KindLineComment, syntax.KindBlockComment,
		syntax.KindText, syntax.KindLinebreak, syntax.KindEscape, syntax.KindShorthand,
		syntax.KindSmartQuote, syntax.KindRaw, syntax.KindRawDelim, syntax.KindRawLang,
		syntax.KindLink, syntax.KindLabel, syntax.KindRefMarker, syntax.KindHeadingMarker,
		syntax.KindListMarker, syntax.KindEnumMarker, syntax.KindTermMarker,
		syntax.KindMathIdent, syntax.KindMathShorthand, syntax.KindMathAlignPoint, syntax.KindMathPrimes,
		syntax.KindHash, syntax.KindLeftBrace, syntax.KindRightBrace, syntax.KindLeftBracket,
		syntax.KindRightBracket, syntax.KindLeftParen, syntax.KindRightParen, syntax.KindComma,
		syntax.KindSemicolon, syntax.KindColon, syntax.KindStar, syntax.KindUnderscore,
		syntax.KindDollar, syntax.KindPlus, syntax.KindMinus, syntax.KindSlash, syntax.KindHat,
		syntax.KindDot, syntax.KindEq, syntax.KindEqEq, syntax.KindExclEq, syntax.KindLt,
		syntax.KindLtEq, syntax.KindGt, syntax.KindGtEq, syntax.KindPlusEq, syntax.KindHyphEq,
		syntax.KindStarEq, syntax.KindSlashEq, syntax.KindDots, syntax.KindArrow, syntax.KindRoot,
		syntax.KindNot, syntax.KindAnd, syntax.KindOr, syntax.KindNone, syntax.KindAuto,
		syntax.KindBool, syntax.KindLet, syntax.KindSet, syntax.KindShow, syntax.KindContext,
		syntax.KindIf, syntax.KindElse, syntax.KindFor, syntax.KindIn, syntax.KindWhile,
		syntax.KindBreak, syntax.KindContinue, syntax.KindReturn, syntax.KindImport,
		syntax.KindInclude, syntax.KindAs, syntax.KindIdent, syntax.KindInt, syntax.KindFloat,
		syntax.KindNumeric, syntax.KindStr:
		return p.verbatim(n)
	}

	failf("no conversion for %s node at %d", n.Kind(), startOf(n))
	return doc.Nil
}

// verbatim reproduces the node's source text exactly.
func (p *printer) verbatim(n *syntax.Node) doc.Doc {
	return p.arena.Verbatim(n.Text())
}

// convertSpace turns a whitespace node into a line break when it spans
// lines, otherwise into a space. In markup the original spacing survives
// unless spaces are collapsed.
func (p *printer) convertSpace(ctx Context, n *syntax.Node) doc.Doc {
	if newlines(n.Text()) > 0 {
		return p.arena.Hardline()
	}
	if ctx.Mode == ModeMarkup && !p.cfg.CollapseSpaces() {
		return p.arena.Text(n.Text())
	}
	return p.arena.Space()
}

func startOf(n *syntax.Node) int {
	start, _ := n.Span()
	return start
}

// newlines counts line breaks, treating "\r\n" as one.
func newlines(s string) int {
	return strings.Count(s, "\n") + strings.Count(s, "\r") - strings.Count(s, "\r\n")
}

// nonTrivia returns the children of n that are neither whitespace nor
// comments, excluding the given punctuation kinds.
func nonTrivia(n *syntax.Node, skip ...syntax.Kind) []*syntax.Node {
	var out []*syntax.Node
outer:
	for _, child := range n.Children() {
		if child.Kind().IsTrivia() {
			continue
		}
		for _, k := range skip {
			if child.Kind() == k {
				continue outer
			}
		}
		out = append(out, child)
	}
	return out
}
