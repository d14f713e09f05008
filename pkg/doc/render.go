package doc

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Width returns the display width of s in terminal columns.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

type cmd struct {
	indent int
	flat   bool
	doc    Doc
}

type renderer struct {
	arena   *Arena
	width   int
	out     strings.Builder
	col     int
	pending int
}

// Render lays out d within width columns and returns the text.
func Render(a *Arena, d Doc, width int) string {
	r := &renderer{arena: a, width: width}
	r.run(d)
	return r.out.String()
}

func (r *renderer) run(d Doc) {
	stack := []cmd{{doc: d}}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := r.arena.node(c.doc)
		switch n.kind {
		case kindNil:
		case kindText:
			r.write(n.text)
		case kindVerbatim:
			r.writeVerbatim(n.text)
		case kindSpaces:
			r.write(strings.Repeat(" ", n.n))
		case kindHardline:
			for range n.n {
				r.newline(c.indent)
			}
		case kindLine:
			if c.flat {
				r.write(" ")
			} else {
				r.newline(c.indent)
			}
		case kindLineOrNil:
			if !c.flat {
				r.newline(c.indent)
			}
		case kindConcat:
			for i := len(n.docs) - 1; i >= 0; i-- {
				stack = append(stack, cmd{indent: c.indent, flat: c.flat, doc: n.docs[i]})
			}
		case kindNest:
			stack = append(stack, cmd{indent: c.indent + n.n, flat: c.flat, doc: n.docs[0]})
		case kindGroup:
			next := cmd{indent: c.indent, flat: true, doc: n.docs[0]}
			if !c.flat && !r.fits(next, stack) {
				next.flat = false
			}
			stack = append(stack, next)
		case kindAlt:
			pick := n.docs[0]
			if c.flat {
				pick = n.docs[1]
			}
			stack = append(stack, cmd{indent: c.indent, flat: c.flat, doc: pick})
		}
	}
}

// fits reports whether next, rendered in its mode, followed by the pending
// commands in rest, reaches a possible line break before overflowing. A hard
// break cannot be rendered flat, so meeting one in flat content fails.
func (r *renderer) fits(next cmd, rest []cmd) bool {
	remaining := r.width - r.col - r.pending
	stack := []cmd{next}
	restIdx := len(rest) - 1

	for remaining >= 0 {
		if len(stack) == 0 {
			if restIdx < 0 {
				return true
			}
			stack = append(stack, rest[restIdx])
			restIdx--
		}

		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := r.arena.node(c.doc)
		switch n.kind {
		case kindNil:
		case kindText:
			remaining -= Width(n.text)
		case kindVerbatim:
			if c.flat {
				return false
			}
			first, _, _ := strings.Cut(n.text, "\n")
			return remaining-Width(first) >= 0
		case kindSpaces:
			remaining -= n.n
		case kindHardline:
			return !c.flat
		case kindLine:
			if !c.flat {
				return true
			}
			remaining--
		case kindLineOrNil:
			if !c.flat {
				return true
			}
		case kindConcat:
			for i := len(n.docs) - 1; i >= 0; i-- {
				stack = append(stack, cmd{indent: c.indent, flat: c.flat, doc: n.docs[i]})
			}
		case kindNest:
			stack = append(stack, cmd{indent: c.indent + n.n, flat: c.flat, doc: n.docs[0]})
		case kindGroup:
			stack = append(stack, cmd{indent: c.indent, flat: c.flat, doc: n.docs[0]})
		case kindAlt:
			pick := n.docs[0]
			if c.flat {
				pick = n.docs[1]
			}
			stack = append(stack, cmd{indent: c.indent, flat: c.flat, doc: pick})
		}
	}

	return false
}

func (r *renderer) write(s string) {
	if s == "" {
		return
	}
	if r.pending > 0 {
		r.out.WriteString(strings.Repeat(" ", r.pending))
		r.col += r.pending
		r.pending = 0
	}
	r.out.WriteString(s)
	r.col += Width(s)
}

func (r *renderer) writeVerbatim(s string) {
	idx := strings.LastIndexByte(s, '\n')
	r.write(s[:idx+1])
	r.out.WriteString(s[idx+1:])
	r.col = Width(s[idx+1:])
}

// newline starts a new line. Indentation is deferred until text follows so
// that blank lines carry no trailing whitespace.
func (r *renderer) newline(indent int) {
	r.out.WriteByte('\n')
	r.col = 0
	r.pending = max(indent, 0)
}
