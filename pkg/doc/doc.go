// Package doc implements a width-aware document algebra in the style of
// Wadler's "prettier printer". Documents are stored in an Arena and referred
// to by integer handles, so a whole layout is released together when the
// arena goes out of scope.
package doc

import "strings"

// Doc is a handle to a document stored in an Arena.
// The zero value is the empty document.
type Doc int32

// Nil is the empty document. It is valid in every arena.
const Nil Doc = 0

type kind uint8

const (
	kindNil kind = iota
	kindText
	kindVerbatim
	kindSpaces
	kindHardline
	kindLine
	kindLineOrNil
	kindConcat
	kindNest
	kindGroup
	kindAlt
)

type node struct {
	kind kind
	text string
	n    int
	docs []Doc
}

// Arena owns the nodes of one layout pass.
// An Arena is not safe for concurrent use.
type Arena struct {
	nodes []node
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	a := &Arena{nodes: make([]node, 1, 256)}
	a.nodes[Nil] = node{kind: kindNil}
	return a
}

func (a *Arena) alloc(n node) Doc {
	a.nodes = append(a.nodes, n)
	return Doc(len(a.nodes) - 1)
}

func (a *Arena) node(d Doc) *node {
	return &a.nodes[d]
}

// Nil returns the empty document.
func (a *Arena) Nil() Doc {
	return Nil
}

// Text returns a literal text document. The text must not contain newlines;
// use Verbatim for multi-line source text.
func (a *Arena) Text(s string) Doc {
	if s == "" {
		return Nil
	}
	return a.alloc(node{kind: kindText, text: s})
}

// Verbatim returns a document that emits s exactly as written, including any
// newlines. Lines after the first are not indented.
func (a *Arena) Verbatim(s string) Doc {
	if s == "" {
		return Nil
	}
	if !strings.Contains(s, "\n") {
		return a.Text(s)
	}
	return a.alloc(node{kind: kindVerbatim, text: s})
}

// Space returns a single literal space.
func (a *Arena) Space() Doc {
	return a.Spaces(1)
}

// Spaces returns n literal spaces.
func (a *Arena) Spaces(n int) Doc {
	if n <= 0 {
		return Nil
	}
	return a.alloc(node{kind: kindSpaces, n: n})
}

// Hardline returns a mandatory line break.
func (a *Arena) Hardline() Doc {
	return a.Hardlines(1)
}

// Hardlines returns n mandatory line breaks.
func (a *Arena) Hardlines(n int) Doc {
	if n <= 0 {
		return Nil
	}
	return a.alloc(node{kind: kindHardline, n: n})
}

// Line returns a soft line break that renders as a space when flat.
func (a *Arena) Line() Doc {
	return a.alloc(node{kind: kindLine})
}

// LineOrNil returns a soft line break that renders as nothing when flat.
func (a *Arena) LineOrNil() Doc {
	return a.alloc(node{kind: kindLineOrNil})
}

// Softline is a Line in its own group: it breaks only when the content up to
// the next break does not fit.
func (a *Arena) Softline() Doc {
	return a.Group(a.Line())
}

// Concat joins documents in sequence.
func (a *Arena) Concat(docs ...Doc) Doc {
	parts := make([]Doc, 0, len(docs))
	for _, d := range docs {
		if d != Nil {
			parts = append(parts, d)
		}
	}
	switch len(parts) {
	case 0:
		return Nil
	case 1:
		return parts[0]
	default:
		return a.alloc(node{kind: kindConcat, docs: parts})
	}
}

// Nest increases the indentation of line breaks inside d by indent columns.
func (a *Arena) Nest(d Doc, indent int) Doc {
	if d == Nil || indent == 0 {
		return d
	}
	return a.alloc(node{kind: kindNest, n: indent, docs: []Doc{d}})
}

// Group renders d flat if it fits in the remaining width, otherwise broken.
func (a *Arena) Group(d Doc) Doc {
	if d == Nil {
		return Nil
	}
	if a.node(d).kind == kindGroup {
		return d
	}
	return a.alloc(node{kind: kindGroup, docs: []Doc{d}})
}

// FlatAlt offers two independently built renderings of the same content.
// The flat one is used when it fits on the current line, broken otherwise.
// Inside an already flat group the flat rendering is always used.
func (a *Arena) FlatAlt(broken, flat Doc) Doc {
	return a.Group(a.alt(broken, flat))
}

// WhenBroken renders d only if the enclosing group is broken.
func (a *Arena) WhenBroken(d Doc) Doc {
	if d == Nil {
		return Nil
	}
	return a.alt(d, Nil)
}

// WhenFlat renders d only if the enclosing group is flat.
func (a *Arena) WhenFlat(d Doc) Doc {
	if d == Nil {
		return Nil
	}
	return a.alt(Nil, d)
}

func (a *Arena) alt(broken, flat Doc) Doc {
	return a.alloc(node{kind: kindAlt, docs: []Doc{broken, flat}})
}

// Intersperse places sep between consecutive docs.
func (a *Arena) Intersperse(docs []Doc, sep Doc) Doc {
	parts := make([]Doc, 0, 2*len(docs))
	for i, d := range docs {
		if i > 0 {
			parts = append(parts, sep)
		}
		parts = append(parts, d)
	}
	return a.Concat(parts...)
}
