// Package attr infers per-node formatting attributes from a syntax tree.
//
// Attributes are computed once per tree and then only read. The formatter
// consults them instead of re-inspecting source text.
package attr

import (
	"strings"

	"github.com/yaklabco/typfmt/pkg/syntax"
)

// FoldStyle selects how a delimited list is laid out.
type FoldStyle uint8

const (
	// FoldFit keeps the list on one line when it fits and otherwise packs
	// as many items per line as fit.
	FoldFit FoldStyle = iota
	// FoldNever puts every item on its own line.
	FoldNever
	// FoldSingle keeps the list on one line when it fits and otherwise puts
	// every item on its own line.
	FoldSingle
)

// String returns the style name used in configuration and debug output.
func (f FoldStyle) String() string {
	switch f {
	case FoldNever:
		return "never"
	case FoldSingle:
		return "single"
	default:
		return "fit"
	}
}

// Attrs holds the inferred attributes of one node.
type Attrs struct {
	Disabled      bool
	Fold          FoldStyle
	Multiline     bool
	HasAlignPoint bool
	CanAlign      bool
}

// Store maps node IDs to attributes.
type Store struct {
	attrs []Attrs
	set   []bool
}

// offMarkers are the comment bodies that disable formatting of the next
// sibling.
//
//nolint:gochecknoglobals // Read-only lookup table.
var offMarkers = []string{"@typstyle off", "@typfmt off"}

// Compute infers attributes for every node of the tree rooted at root.
func Compute(root *syntax.Node) *Store {
	size := syntax.Count(root)
	s := &Store{attrs: make([]Attrs, size), set: make([]bool, size)}
	s.visit(root, false, false)
	return s
}

// visit fills in the attributes of n and its subtree. It returns whether
// any node in the subtree is disabled.
func (s *Store) visit(n *syntax.Node, parentDisabled, blockEquation bool) bool {
	a := Attrs{
		Disabled: parentDisabled || brokenOutsideMarkup(n) || hidesComments(n),
	}
	a.Multiline = multilineFlavor(n)
	if a.Multiline {
		a.Fold = FoldNever
	}

	anyDisabled := a.Disabled
	children := n.Children()
	skipNext := false
	for _, child := range children {
		switch {
		case child.Kind() == syntax.KindSpace:
		case child.Kind().IsComment():
			if isOffComment(child) {
				skipNext = true
			}
		default:
			if skipNext {
				// The hash belongs to the embedded expression after it.
				skipNext = child.Kind() == syntax.KindHash
				s.disableAll(child)
				anyDisabled = true
				continue
			}
		}

		childBlock := blockEquation
		if n.Kind() == syntax.KindEquation {
			childBlock = n.IsBlockEquation()
		}
		if s.visit(child, a.Disabled, childBlock) {
			anyDisabled = true
		}
	}

	switch n.Kind() {
	case syntax.KindMath, syntax.KindMathDelimited:
		a.HasAlignPoint = s.hasAlignPoint(n)
	case syntax.KindArgs:
		if s.argsSpanLines(n) {
			a.Fold = FoldNever
		}
	}
	if n.Kind() == syntax.KindMath {
		breaks := blockEquation && n.HasChild(syntax.KindLinebreak)
		a.CanAlign = (a.HasAlignPoint || breaks) && !anyDisabled
	}

	s.put(n, a)
	return anyDisabled
}

func (s *Store) hasAlignPoint(n *syntax.Node) bool {
	for _, child := range n.Children() {
		switch child.Kind() {
		case syntax.KindMathAlignPoint:
			return true
		case syntax.KindMath, syntax.KindMathDelimited:
			if s.Get(child).HasAlignPoint {
				return true
			}
		}
	}
	return false
}

// argsSpanLines reports whether the source breaks an argument list over
// lines, either between its arguments or inside a multi-line argument.
// Children must already be visited.
func (s *Store) argsSpanLines(n *syntax.Node) bool {
	for _, child := range n.Children() {
		switch {
		case child.Kind() == syntax.KindRightParen:
			return false
		case child.Kind() == syntax.KindSpace:
			if child.HasNewline() {
				return true
			}
		case s.Get(child).Multiline:
			return true
		}
	}
	return false
}

func (s *Store) disableAll(n *syntax.Node) {
	_ = syntax.Walk(n, func(n *syntax.Node) error {
		s.put(n, Attrs{Disabled: true})
		return nil
	})
}

func (s *Store) put(n *syntax.Node, a Attrs) {
	id := int(n.ID())
	if id < 0 || id >= len(s.attrs) {
		return
	}
	s.attrs[id] = a
	s.set[id] = true
}

// Get returns the attributes of n. Nodes the store does not know get the
// zero Attrs: enabled, FoldFit, no alignment.
func (s *Store) Get(n *syntax.Node) Attrs {
	if s == nil || n == nil {
		return Attrs{}
	}
	id := int(n.ID())
	if id < 0 || id >= len(s.attrs) || !s.set[id] {
		return Attrs{}
	}
	return s.attrs[id]
}

// Disabled reports whether n must be emitted exactly as written.
func (s *Store) Disabled(n *syntax.Node) bool {
	return s.Get(n).Disabled
}

// FoldPreference returns the list layout preferred for n.
func (s *Store) FoldPreference(n *syntax.Node) FoldStyle {
	return s.Get(n).Fold
}

// MultilineFlavor reports whether the source of a delimited list already
// breaks after its opening delimiter.
func (s *Store) MultilineFlavor(n *syntax.Node) bool {
	return s.Get(n).Multiline
}

// HasAlignmentMarker reports whether a math node contains an alignment
// point, directly or through nested math.
func (s *Store) HasAlignmentMarker(n *syntax.Node) bool {
	return s.Get(n).HasAlignPoint
}

// AlignmentEligible reports whether a math node may be laid out as an
// aligned grid.
func (s *Store) AlignmentEligible(n *syntax.Node) bool {
	return s.Get(n).CanAlign
}

func isOffComment(n *syntax.Node) bool {
	text := n.Text()
	switch n.Kind() {
	case syntax.KindLineComment:
		text = strings.TrimPrefix(text, "//")
	case syntax.KindBlockComment:
		text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	default:
		return false
	}
	text = strings.TrimSpace(text)
	for _, marker := range offMarkers {
		if text == marker {
			return true
		}
	}
	return false
}

// brokenOutsideMarkup reports whether n contains a parse error. Markup
// containers stay enabled so that their intact lines are still formatted;
// the broken children are disabled individually.
func brokenOutsideMarkup(n *syntax.Node) bool {
	return n.Erroneous() && n.Kind() != syntax.KindMarkup
}

// hidesComments reports whether n carries a comment the formatter has no
// place for. Such nodes are kept verbatim so the comment survives.
func hidesComments(n *syntax.Node) bool {
	switch n.Kind() {
	case syntax.KindMarkup, syntax.KindCode, syntax.KindCodeBlock, syntax.KindContentBlock,
		syntax.KindConditional, syntax.KindWhileLoop, syntax.KindForLoop, syntax.KindMath:
		return false
	}
	for _, child := range n.Children() {
		if child.Kind().IsComment() {
			return true
		}
	}
	return false
}

func multilineFlavor(n *syntax.Node) bool {
	switch n.Kind() {
	case syntax.KindArgs, syntax.KindArray, syntax.KindDict, syntax.KindParams,
		syntax.KindDestructuring, syntax.KindImportItems:
	default:
		return false
	}

	children := n.Children()
	if len(children) < 2 || children[0].Kind() != syntax.KindLeftParen {
		return false
	}
	next := children[1]
	return next.Kind() == syntax.KindSpace && next.HasNewline()
}
