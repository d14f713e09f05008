package syntax

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// kindEOF is returned by the code lexer at the end of input. It never
// appears in a tree.
const kindEOF = kindCount

type newlineMode uint8

const (
	// Newlines are plain trivia, as inside parentheses.
	nlContinue newlineMode = iota
	// Newlines are trivia but end the current expression, as in code blocks.
	nlStop
	// Newlines end an embedded expression and are left to the markup.
	nlEmbedded
)

type parser struct {
	src        string
	pos        int
	nodes      []*Node
	nl         newlineMode
	hadNewline bool
	depth      int
	blockStart int
	termColon  bool
}

// Parse parses a complete Typst source file. Parsing never fails: malformed
// input yields Error nodes and marks their ancestors as erroneous.
func Parse(src string) *Node {
	p := &parser{src: src}
	p.markupExprs(func() bool { return false })
	root := p.wrapAll(0, KindMarkup)
	number(root, 0)
	return root
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) byteAt(i int) byte {
	if i >= 0 && i < len(p.src) {
		return p.src[i]
	}
	return 0
}

func (p *parser) peekByte(off int) byte {
	return p.byteAt(p.pos + off)
}

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.src[p.pos:], s)
}

func (p *parser) runeAt(i int) (rune, int) {
	if i < 0 || i >= len(p.src) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(p.src[i:])
}

func (p *parser) runeBefore(i int) rune {
	if i <= 0 || i > len(p.src) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeLastRuneInString(p.src[:i])
	return r
}

func (p *parser) marker() int {
	return len(p.nodes)
}

func (p *parser) leaf(kind Kind, end int) *Node {
	n := &Node{kind: kind, src: p.src, start: p.pos, end: end}
	if kind == KindError {
		n.erroneous = true
	}
	p.nodes = append(p.nodes, n)
	p.pos = end
	return n
}

func (p *parser) errorLeaf(end int, message string) {
	n := p.leaf(KindError, end)
	n.message = message
}

// expected records a zero-width error without consuming input.
func (p *parser) expected(what string) {
	p.errorLeaf(p.pos, "expected "+what)
}

func (p *parser) lastIsTrivia() bool {
	return len(p.nodes) > 0 && p.nodes[len(p.nodes)-1].kind.IsTrivia()
}

// wrap turns nodes[m:] into a single inner node, leaving trailing trivia
// outside of it.
func (p *parser) wrap(m int, kind Kind) *Node {
	end := len(p.nodes)
	for end > m && p.nodes[end-1].kind.IsTrivia() {
		end--
	}
	return p.wrapRange(m, end, kind)
}

// wrapAll turns nodes[m:] into a single inner node, trivia included.
func (p *parser) wrapAll(m int, kind Kind) *Node {
	return p.wrapRange(m, len(p.nodes), kind)
}

func (p *parser) wrapRange(m, end int, kind Kind) *Node {
	n := &Node{kind: kind, src: p.src}

	switch {
	case end > m:
		n.children = make([]*Node, end-m)
		copy(n.children, p.nodes[m:end])
		n.start = n.children[0].start
		n.end = n.children[len(n.children)-1].end
	case m < len(p.nodes):
		n.start = p.nodes[m].start
		n.end = n.start
	default:
		n.start = p.pos
		n.end = p.pos
	}

	for _, child := range n.children {
		if child.erroneous {
			n.erroneous = true
			break
		}
	}

	trailing := append([]*Node(nil), p.nodes[end:]...)
	p.nodes = append(append(p.nodes[:m], n), trailing...)
	return n
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// identEnd returns the end of the identifier starting at i.
func (p *parser) identEnd(i int) int {
	r, size := p.runeAt(i)
	if size == 0 || !isIdentStart(r) {
		return i
	}
	j := i + size
	for j < len(p.src) {
		r, size = p.runeAt(j)
		if !isIdentContinue(r) {
			break
		}
		j += size
	}
	return j
}

// lineEnd returns the offset of the next line break at or after i.
func (p *parser) lineEnd(i int) int {
	if idx := strings.IndexAny(p.src[i:], "\r\n"); idx >= 0 {
		return i + idx
	}
	return len(p.src)
}

// blockCommentEnd returns the end of the (possibly nested) block comment
// starting at i, and whether it was terminated.
func (p *parser) blockCommentEnd(i int) (int, bool) {
	depth := 0
	j := i
	for j < len(p.src) {
		switch {
		case strings.HasPrefix(p.src[j:], "/*"):
			depth++
			j += 2
		case strings.HasPrefix(p.src[j:], "*/"):
			depth--
			j += 2
			if depth == 0 {
				return j, true
			}
		default:
			j++
		}
	}
	return len(p.src), false
}

// comment consumes a comment at the current position, if any.
func (p *parser) comment() bool {
	switch {
	case p.hasPrefix("//"):
		p.leaf(KindLineComment, p.lineEnd(p.pos))
		return true
	case p.hasPrefix("/*"):
		end, ok := p.blockCommentEnd(p.pos)
		if !ok {
			p.errorLeaf(end, "unclosed block comment")
			return true
		}
		p.leaf(KindBlockComment, end)
		return true
	default:
		return false
	}
}

// stringEnd returns the end of the string literal starting at i.
func (p *parser) stringEnd(i int) (int, bool) {
	j := i + 1
	for j < len(p.src) {
		switch p.src[j] {
		case '\\':
			j += 2
		case '"':
			return j + 1, true
		default:
			j++
		}
	}
	return len(p.src), false
}

// column returns the byte column of the current position in its line.
func (p *parser) column() int {
	lineStart := strings.LastIndexAny(p.src[:p.pos], "\r\n") + 1
	return p.pos - lineStart
}
