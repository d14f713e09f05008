package attr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/typfmt/pkg/attr"
	"github.com/yaklabco/typfmt/pkg/syntax"
)

func find(root *syntax.Node, kind syntax.Kind) *syntax.Node {
	var found *syntax.Node
	_ = syntax.Walk(root, func(n *syntax.Node) error {
		if found == nil && n.Kind() == kind {
			found = n
		}
		return nil
	})
	return found
}

func TestMultilineFlavor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		kind      syntax.Kind
		multiline bool
		fold      attr.FoldStyle
	}{
		{"args on one line", "#f(a, b)", syntax.KindArgs, false, attr.FoldFit},
		{"args broken after paren", "#f(\n  a,\n  b,\n)", syntax.KindArgs, true, attr.FoldNever},
		{"args broken later", "#f(a,\n  b)", syntax.KindArgs, false, attr.FoldNever},
		{"args with a broken array", "#f(a, (\n  1, 2))", syntax.KindArgs, false, attr.FoldNever},
		{"args followed by a broken block", "#f(a, b)[\n  x\n]", syntax.KindArgs, false, attr.FoldFit},
		{"array broken", "#(\n  1, 2)", syntax.KindArray, true, attr.FoldNever},
		{"array broken later", "#(1,\n  2)", syntax.KindArray, false, attr.FoldFit},
		{"dict broken", "#(\n  a: 1,\n)", syntax.KindDict, true, attr.FoldNever},
		{"import items broken", "#import \"m.typ\": (\n  a, b)", syntax.KindImportItems, true, attr.FoldNever},
		{"import items bare", "#import \"m.typ\": a, b", syntax.KindImportItems, false, attr.FoldFit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			root := syntax.Parse(tc.src)
			store := attr.Compute(root)
			node := find(root, tc.kind)
			require.NotNil(t, node)

			assert.Equal(t, tc.multiline, store.MultilineFlavor(node))
			assert.Equal(t, tc.fold, store.FoldPreference(node))
		})
	}
}

func TestDisabled(t *testing.T) {
	t.Parallel()

	t.Run("erroneous nodes", func(t *testing.T) {
		t.Parallel()

		root := syntax.Parse("#f(a b)")
		store := attr.Compute(root)
		call := find(root, syntax.KindFuncCall)
		require.NotNil(t, call)
		assert.True(t, store.Disabled(call))
		assert.True(t, store.Disabled(find(root, syntax.KindArgs)))
		assert.False(t, store.Disabled(root))
	})

	t.Run("off comment disables the next sibling only", func(t *testing.T) {
		t.Parallel()

		root := syntax.Parse("#{\n  // @typstyle off\n  let x  =  1\n  let y  =  2\n}")
		store := attr.Compute(root)

		code := find(root, syntax.KindCode)
		require.NotNil(t, code)
		lets := code.ChildrenOf(syntax.KindLetBinding)
		require.Len(t, lets, 2)

		assert.True(t, store.Disabled(lets[0]))
		assert.True(t, store.Disabled(lets[0].Children()[0]))
		assert.False(t, store.Disabled(lets[1]))
		assert.False(t, store.Disabled(code))
	})

	t.Run("block comment marker", func(t *testing.T) {
		t.Parallel()

		root := syntax.Parse("/* @typstyle off */ #f(a,b)")
		store := attr.Compute(root)
		assert.True(t, store.Disabled(find(root, syntax.KindHash)))
		assert.True(t, store.Disabled(find(root, syntax.KindFuncCall)))
	})

	t.Run("comments inside lists", func(t *testing.T) {
		t.Parallel()

		root := syntax.Parse("#f(a, // note\n  b)")
		store := attr.Compute(root)
		assert.True(t, store.Disabled(find(root, syntax.KindArgs)))
		assert.False(t, store.Disabled(find(root, syntax.KindFuncCall)))
	})

	t.Run("clean source", func(t *testing.T) {
		t.Parallel()

		root := syntax.Parse("= Title\n\n#let x = (1, 2)")
		store := attr.Compute(root)
		_ = syntax.Walk(root, func(n *syntax.Node) error {
			assert.False(t, store.Disabled(n), n.Kind().String())
			return nil
		})
	})
}

func TestAlignment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		marker   bool
		eligible bool
	}{
		{"block with align points", "$ a &= b \\ c &= d $", true, true},
		{"inline with align points", "$a &= b$", true, true},
		{"block with linebreak only", "$ a \\ b $", false, true},
		{"inline with linebreak only", "$a \\ b$", false, false},
		{"plain", "$ a + b $", false, false},
		{"nested marker", "$ (a &= b) $", true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			root := syntax.Parse(tc.src)
			store := attr.Compute(root)
			math := find(root, syntax.KindMath)
			require.NotNil(t, math)

			assert.Equal(t, tc.marker, store.HasAlignmentMarker(math))
			assert.Equal(t, tc.eligible, store.AlignmentEligible(math))
		})
	}
}

func TestAbsentNodes(t *testing.T) {
	t.Parallel()

	store := attr.Compute(syntax.Parse("a"))
	other := find(syntax.Parse("#f(\n  x)\n#g(y)"), syntax.KindFuncCall)
	require.NotNil(t, other)

	var nilStore *attr.Store
	assert.Equal(t, attr.Attrs{}, nilStore.Get(other))
	assert.False(t, store.Disabled(nil))
	assert.Equal(t, attr.FoldFit, store.FoldPreference(nil))
	assert.False(t, store.AlignmentEligible(nil))
}

func TestFoldStyleString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "fit", attr.FoldFit.String())
	assert.Equal(t, "never", attr.FoldNever.String())
	assert.Equal(t, "single", attr.FoldSingle.String())
}
