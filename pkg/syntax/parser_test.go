package syntax_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/typfmt/pkg/syntax"
)

func leafText(n *syntax.Node) string {
	var b strings.Builder
	_ = syntax.Walk(n, func(n *syntax.Node) error {
		if n.IsLeaf() {
			b.WriteString(n.Text())
		}
		return nil
	})
	return b.String()
}

func kinds(nodes []*syntax.Node) []syntax.Kind {
	out := make([]syntax.Kind, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Kind())
	}
	return out
}

func TestParseIsLossless(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"Hello *world* and _you_.\n\nNew paragraph.",
		"= Heading\n== Sub heading\n",
		"- one\n- two\n  - nested\n+ first\n1. numbered\n/ Term: description\n",
		"#let x = 1\n#let f(a, b: 2) = a + b\n#f(1, b: 3)[content]",
		"#{\n  let y = (1, 2, 3)\n  for i in y { i }\n}\n",
		"#if x > 1 [big] else if x < 0 [neg] else [small]",
		"#import \"mod.typ\": a, b as c\n#import \"@preview/pkg:0.1.0\": *\n",
		"#show heading: set text(red)\n#set page(width: 10cm, margin: (x: 1in))",
		"$ a &= b \\ c &= d $",
		"$sum_(i=0)^n i / 2 + sqrt(x') + mat(1, 2; 3, 4)$",
		"`inline` and ```rust\nfn main() {}\n```",
		"https://example.com/path(x). <label> @ref[supplement] -- --- ... ~",
		"// line comment\n/* block /* nested */ comment */ text",
		"#(:)\n#(a: 1, ..rest)\n#((a, b) => a)\n#let (a, b) = (1, 2)",
		"unclosed *strong\n\n#f(\n$ unclosed",
		"#{ ) }",
		"broken ] bracket",
		"#x.y.z(1)\n#(1 + 2) * 3\n#not true\n#(x not in y)",
		"\r\nwindows\r\n\r\nlines\r\n",
	}

	for _, src := range inputs {
		root := syntax.Parse(src)
		require.NotNil(t, root)
		assert.Equal(t, syntax.KindMarkup, root.Kind())
		assert.Equal(t, src, leafText(root), "input %q", src)
		assert.Equal(t, src, root.Text())
	}
}

func TestParseHeading(t *testing.T) {
	t.Parallel()

	root := syntax.Parse("= Hello\n")
	require.Len(t, root.Children(), 2)

	heading := root.Children()[0]
	assert.Equal(t, syntax.KindHeading, heading.Kind())
	assert.Equal(t,
		[]syntax.Kind{syntax.KindHeadingMarker, syntax.KindSpace, syntax.KindMarkup},
		kinds(heading.Children()))
	assert.Equal(t, "Hello", heading.ChildOf(syntax.KindMarkup).Text())
	assert.False(t, root.Erroneous())
}

func TestParseListNesting(t *testing.T) {
	t.Parallel()

	root := syntax.Parse("- a\n  - b\n- c")
	items := root.Exprs()
	require.Len(t, items, 2)
	assert.Equal(t, "- a\n  - b", items[0].Text())
	assert.Equal(t, "- c", items[1].Text())

	body := items[0].ChildOf(syntax.KindMarkup)
	require.NotNil(t, body)
	assert.True(t, body.HasChild(syntax.KindListItem))
}

func TestParseEmbeddedCode(t *testing.T) {
	t.Parallel()

	root := syntax.Parse("#f(x)[y] text")
	require.GreaterOrEqual(t, len(root.Children()), 2)
	assert.Equal(t, syntax.KindHash, root.Children()[0].Kind())

	call := root.Children()[1]
	assert.Equal(t, syntax.KindFuncCall, call.Kind())
	args := call.ChildOf(syntax.KindArgs)
	require.NotNil(t, args)
	assert.Equal(t,
		[]syntax.Kind{syntax.KindLeftParen, syntax.KindIdent, syntax.KindRightParen, syntax.KindContentBlock},
		kinds(args.Children()))
}

func TestParseEmbeddedStopsBeforeOperators(t *testing.T) {
	t.Parallel()

	root := syntax.Parse("#x - y")
	require.GreaterOrEqual(t, len(root.Children()), 2)
	assert.Equal(t, syntax.KindIdent, root.Children()[1].Kind())
	assert.Equal(t, "x", root.Children()[1].Text())
}

func TestParseLetBinding(t *testing.T) {
	t.Parallel()

	root := syntax.Parse("#let f(x) = x")
	let := root.ChildOf(syntax.KindLetBinding)
	require.NotNil(t, let)

	closure := let.ChildOf(syntax.KindClosure)
	require.NotNil(t, closure)
	assert.True(t, closure.HasChild(syntax.KindParams))
	assert.True(t, closure.HasChild(syntax.KindEq))
}

func TestParseCollections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want syntax.Kind
	}{
		{"#(:)", syntax.KindDict},
		{"#(a: 1)", syntax.KindDict},
		{"#(\"k\": 1)", syntax.KindDict},
		{"#(1)", syntax.KindParenthesized},
		{"#(1,)", syntax.KindArray},
		{"#()", syntax.KindArray},
		{"#(1, 2)", syntax.KindArray},
		{"#(..a)", syntax.KindArray},
	}

	for _, tc := range tests {
		root := syntax.Parse(tc.src)
		require.GreaterOrEqual(t, len(root.Children()), 2, tc.src)
		assert.Equal(t, tc.want, root.Children()[1].Kind(), tc.src)
		assert.False(t, root.Erroneous(), tc.src)
	}
}

func TestParseCodeBlock(t *testing.T) {
	t.Parallel()

	root := syntax.Parse("#{ let x = 1; x }")
	block := root.ChildOf(syntax.KindCodeBlock)
	require.NotNil(t, block)

	code := block.ChildOf(syntax.KindCode)
	require.NotNil(t, code)
	assert.Equal(t,
		[]syntax.Kind{syntax.KindLetBinding, syntax.KindIdent},
		kinds(code.Exprs()))
	assert.True(t, code.HasChild(syntax.KindSemicolon))
}

func TestParseBinaryPrecedence(t *testing.T) {
	t.Parallel()

	root := syntax.Parse("#(1 + 2 * 3)")
	paren := root.ChildOf(syntax.KindParenthesized)
	require.NotNil(t, paren)

	sum := paren.ChildOf(syntax.KindBinary)
	require.NotNil(t, sum)
	assert.Equal(t, "1 + 2 * 3", sum.Text())
	assert.Equal(t, "2 * 3", sum.ChildOf(syntax.KindBinary).Text())
}

func TestParseEquation(t *testing.T) {
	t.Parallel()

	root := syntax.Parse("$ a &= b \\ c $")
	eq := root.ChildOf(syntax.KindEquation)
	require.NotNil(t, eq)

	math := eq.ChildOf(syntax.KindMath)
	require.NotNil(t, math)
	assert.True(t, math.HasChild(syntax.KindMathAlignPoint))
	assert.True(t, math.HasChild(syntax.KindLinebreak))
	assert.False(t, root.Erroneous())
	assert.True(t, eq.IsBlockEquation())
	assert.Equal(t, syntax.KindText, math.Children()[0].Kind(), "surrounding spaces belong to the equation")
	assert.Equal(t, "a &= b \\ c", math.Text())

	inline := syntax.Parse("$a $").ChildOf(syntax.KindEquation)
	require.NotNil(t, inline)
	assert.False(t, inline.IsBlockEquation())
}

func TestParseMathStructures(t *testing.T) {
	t.Parallel()

	root := syntax.Parse("$(a+b) / 2$")
	math := root.ChildOf(syntax.KindEquation).ChildOf(syntax.KindMath)
	frac := math.ChildOf(syntax.KindMathFrac)
	require.NotNil(t, frac)
	assert.Equal(t, "(a+b) / 2", frac.Text())
	assert.True(t, frac.HasChild(syntax.KindMathDelimited))

	root = syntax.Parse("$x_1^2$")
	math = root.ChildOf(syntax.KindEquation).ChildOf(syntax.KindMath)
	attach := math.ChildOf(syntax.KindMathAttach)
	require.NotNil(t, attach)
	assert.Equal(t, "x_1^2", attach.Text())

	root = syntax.Parse("$vec(1, 2)$")
	math = root.ChildOf(syntax.KindEquation).ChildOf(syntax.KindMath)
	call := math.ChildOf(syntax.KindFuncCall)
	require.NotNil(t, call)
	assert.Equal(t, syntax.KindMathIdent, call.Children()[0].Kind())
}

func TestParseStrongAndEmph(t *testing.T) {
	t.Parallel()

	root := syntax.Parse("*bold* _it_ snake_case")
	assert.Equal(t, syntax.KindStrong, root.Children()[0].Kind())
	assert.Equal(t, syntax.KindEmph, root.Children()[2].Kind())
	assert.False(t, root.Erroneous())
	assert.NotContains(t, kinds(root.Children()[3:]), syntax.KindEmph)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	root := syntax.Parse("ok\n*unclosed")
	assert.True(t, root.Erroneous())

	diags := syntax.Errors(root)
	require.NotEmpty(t, diags)
	assert.Equal(t, 2, diags[0].Line)
	assert.Contains(t, diags[0].Message, "expected closing star")

	assert.Empty(t, syntax.Errors(syntax.Parse("fine")))
}

func TestParseRaw(t *testing.T) {
	t.Parallel()

	root := syntax.Parse("```py\nprint(1)\n```")
	raw := root.ChildOf(syntax.KindRaw)
	require.NotNil(t, raw)
	assert.Equal(t,
		[]syntax.Kind{syntax.KindRawDelim, syntax.KindRawLang, syntax.KindText, syntax.KindRawDelim},
		kinds(raw.Children()))
}

func TestNodeIDsArePreorder(t *testing.T) {
	t.Parallel()

	root := syntax.Parse("#f(a, b)")
	var ids []syntax.ID
	_ = syntax.Walk(root, func(n *syntax.Node) error {
		ids = append(ids, n.ID())
		return nil
	})

	require.Len(t, ids, syntax.Count(root))
	for i, id := range ids {
		assert.Equal(t, syntax.ID(i), id)
	}
}

func TestDump(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	require.NoError(t, syntax.Dump(&b, syntax.Parse("a *b*")))

	want := `Markup 0..5
  Text 0..1 "a"
  Space 1..2 " "
  Strong 2..5
    Star 2..3 "*"
    Markup 3..4
      Text 3..4 "b"
    Star 4..5 "*"
`
	assert.Equal(t, want, b.String())
}

func TestLineIndex(t *testing.T) {
	t.Parallel()

	index := syntax.NewLineIndex("ab\ncd\r\nef")

	line, col := index.Position(0)
	assert.Equal(t, []int{1, 1}, []int{line, col})
	line, col = index.Position(4)
	assert.Equal(t, []int{2, 2}, []int{line, col})
	line, col = index.Position(7)
	assert.Equal(t, []int{3, 1}, []int{line, col})
}
