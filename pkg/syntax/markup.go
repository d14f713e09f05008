package syntax

import "strings"

func (p *parser) markupExprs(stop func() bool) {
	for !p.eof() && !stop() {
		start := p.pos
		p.markupExpr(stop)
		if p.pos == start {
			_, size := p.runeAt(p.pos)
			p.errorLeaf(p.pos+size, "unexpected character")
		}
	}
}

func (p *parser) markupExpr(stop func() bool) {
	c := p.src[p.pos]

	switch {
	case isSpaceByte(c):
		p.markupSpace()
	case p.comment():
	case p.atLineStart() && p.lineItem(stop):
	case c == '\\':
		p.escape()
	case (c == '*' || c == '_') && !p.inWord(p.pos):
		p.delimited(c, stop)
	case c == '`':
		p.raw()
	case c == '$':
		p.equation(false)
	case c == '#' && p.codeStartsAt(p.pos+1):
		p.embedded()
	case c == '<' && p.labelEnd(p.pos) > 0:
		p.leaf(KindLabel, p.labelEnd(p.pos))
	case c == '@' && p.refEnd(p.pos) > p.pos+1:
		p.ref()
	case p.linkEnd(p.pos) > 0:
		p.leaf(KindLink, p.linkEnd(p.pos))
	case c == '[':
		p.depth++
		p.leaf(KindText, p.pos+1)
	case c == ']':
		if p.depth == 0 {
			p.errorLeaf(p.pos+1, "unexpected closing bracket")
			return
		}
		p.depth--
		p.leaf(KindText, p.pos+1)
	case p.shorthandEnd(p.pos) > 0:
		p.leaf(KindShorthand, p.shorthandEnd(p.pos))
	case c == '\'' || c == '"':
		p.leaf(KindSmartQuote, p.pos+1)
	default:
		p.text()
	}
}

// markupSpace consumes a whitespace run. Two or more line breaks make a
// paragraph break.
func (p *parser) markupSpace() {
	end, newlines, _ := p.spaceRun(p.pos)
	if newlines >= 2 {
		p.leaf(KindParbreak, end)
		return
	}
	p.leaf(KindSpace, end)
}

// spaceRun scans the whitespace starting at i. It returns the end of the
// run, the number of line breaks, and the offset just past the last one.
func (p *parser) spaceRun(i int) (int, int, int) {
	newlines := 0
	lineStart := -1
	j := i
	for j < len(p.src) && isSpaceByte(p.src[j]) {
		switch p.src[j] {
		case '\r':
			if p.byteAt(j+1) == '\n' {
				j++
			}
			newlines++
			lineStart = j + 1
		case '\n':
			newlines++
			lineStart = j + 1
		}
		j++
	}
	return j, newlines, lineStart
}

func (p *parser) atParbreak() bool {
	if !isSpaceByte(p.peekByte(0)) {
		return false
	}
	_, newlines, _ := p.spaceRun(p.pos)
	return newlines >= 2
}

// atItemEnd reports whether the whitespace at the current position ends an
// item whose marker sits at column col. A negative col ends the item at
// any line break.
func (p *parser) atItemEnd(col int) bool {
	if !isSpaceByte(p.peekByte(0)) {
		return false
	}
	end, newlines, lineStart := p.spaceRun(p.pos)
	switch {
	case newlines == 0:
		return false
	case col < 0 || newlines >= 2 || end >= len(p.src):
		return true
	default:
		return end-lineStart <= col
	}
}

func (p *parser) atLineStart() bool {
	i := p.pos
	for i > p.blockStart && (p.src[i-1] == ' ' || p.src[i-1] == '\t') {
		i--
	}
	return i == p.blockStart || p.src[i-1] == '\n' || p.src[i-1] == '\r'
}

func (p *parser) spaceOrEndAt(i int) bool {
	return i >= len(p.src) || isSpaceByte(p.src[i])
}

// lineItem parses a heading, list, enum, or term item if one starts at the
// current position.
func (p *parser) lineItem(stop func() bool) bool {
	c := p.src[p.pos]
	switch {
	case c == '=':
		end := p.pos
		for p.byteAt(end) == '=' {
			end++
		}
		if !p.spaceOrEndAt(end) {
			return false
		}
		p.heading(end, stop)
	case c == '-' && p.spaceOrEndAt(p.pos+1):
		p.listItem(KindListItem, KindListMarker, p.pos+1, stop)
	case c == '+' && p.spaceOrEndAt(p.pos+1):
		p.listItem(KindEnumItem, KindEnumMarker, p.pos+1, stop)
	case isDigit(c):
		end := p.pos
		for isDigit(p.byteAt(end)) {
			end++
		}
		if p.byteAt(end) != '.' || !p.spaceOrEndAt(end+1) {
			return false
		}
		p.listItem(KindEnumItem, KindEnumMarker, end+1, stop)
	case c == '/' && p.byteAt(p.pos+1) == ' ':
		p.termItem(stop)
	default:
		return false
	}
	return true
}

// horizontalSpace consumes spaces and tabs as a Space node.
func (p *parser) horizontalSpace() {
	end := p.pos
	for p.byteAt(end) == ' ' || p.byteAt(end) == '\t' {
		end++
	}
	if end > p.pos {
		p.leaf(KindSpace, end)
	}
}

func (p *parser) heading(markerEnd int, stop func() bool) {
	m := p.marker()
	p.leaf(KindHeadingMarker, markerEnd)
	p.horizontalSpace()
	body := p.marker()
	p.markupExprs(func() bool { return stop() || p.atItemEnd(-1) })
	p.wrap(body, KindMarkup)
	p.wrap(m, KindHeading)
}

func (p *parser) listItem(kind, marker Kind, markerEnd int, stop func() bool) {
	col := p.column()
	m := p.marker()
	p.leaf(marker, markerEnd)
	p.horizontalSpace()
	body := p.marker()
	p.markupExprs(func() bool { return stop() || p.atItemEnd(col) })
	p.wrap(body, KindMarkup)
	p.wrap(m, kind)
}

func (p *parser) termItem(stop func() bool) {
	col := p.column()
	m := p.marker()
	p.leaf(KindTermMarker, p.pos+1)
	p.horizontalSpace()

	itemEnd := func() bool { return stop() || p.atItemEnd(col) }

	term := p.marker()
	saved := p.termColon
	p.termColon = true
	p.markupExprs(func() bool { return itemEnd() || p.peekByte(0) == ':' })
	p.termColon = saved
	p.wrap(term, KindMarkup)

	if p.peekByte(0) == ':' {
		p.leaf(KindColon, p.pos+1)
		p.horizontalSpace()
	} else {
		p.expected("colon")
	}

	desc := p.marker()
	p.markupExprs(itemEnd)
	p.wrap(desc, KindMarkup)
	p.wrap(m, KindTermItem)
}

func (p *parser) escape() {
	if p.spaceOrEndAt(p.pos + 1) {
		p.leaf(KindLinebreak, p.pos+1)
		return
	}
	if p.hasPrefix(`\u{`) {
		if idx := strings.IndexByte(p.src[p.pos:], '}'); idx >= 0 {
			p.leaf(KindEscape, p.pos+idx+1)
			return
		}
		p.errorLeaf(len(p.src), "unclosed unicode escape")
		return
	}
	_, size := p.runeAt(p.pos + 1)
	p.leaf(KindEscape, p.pos+1+size)
}

// inWord reports whether the delimiter at i sits between two alphanumeric
// characters, in which case it is plain text.
func (p *parser) inWord(i int) bool {
	next, _ := p.runeAt(i + 1)
	return isAlnum(p.runeBefore(i)) && isAlnum(next)
}

func (p *parser) delimited(delim byte, stop func() bool) {
	kind, marker, name := KindStrong, KindStar, "star"
	if delim == '_' {
		kind, marker, name = KindEmph, KindUnderscore, "underscore"
	}

	m := p.marker()
	p.leaf(marker, p.pos+1)
	body := p.marker()
	closing := func() bool { return p.peekByte(0) == delim && !p.inWord(p.pos) }
	p.markupExprs(func() bool { return stop() || closing() || p.atParbreak() })
	p.wrapAll(body, KindMarkup)

	if !p.eof() && closing() {
		p.leaf(marker, p.pos+1)
	} else {
		p.expected("closing " + name)
	}
	p.wrap(m, kind)
}

func (p *parser) backticks(i int) int {
	n := 0
	for p.byteAt(i+n) == '`' {
		n++
	}
	return n
}

func (p *parser) raw() {
	m := p.marker()
	n := p.backticks(p.pos)

	if n == 2 {
		p.leaf(KindRawDelim, p.pos+1)
		p.leaf(KindRawDelim, p.pos+1)
		p.wrap(m, KindRaw)
		return
	}

	closeAt := -1
	for j := p.pos + n; j < len(p.src); {
		if p.src[j] != '`' {
			j++
			continue
		}
		run := p.backticks(j)
		if run >= n {
			closeAt = j
			break
		}
		j += run
	}
	if closeAt < 0 {
		p.errorLeaf(len(p.src), "unclosed raw text")
		return
	}

	p.leaf(KindRawDelim, p.pos+n)
	if n >= 3 {
		if end := p.identEnd(p.pos); end > p.pos {
			p.leaf(KindRawLang, end)
		}
	}
	if closeAt > p.pos {
		p.leaf(KindText, closeAt)
	}
	p.leaf(KindRawDelim, closeAt+n)
	p.wrap(m, KindRaw)
}

func (p *parser) equation(inCode bool) {
	m := p.marker()
	p.leaf(KindDollar, p.pos+1)

	p.mathSpace()
	body := p.marker()
	p.mathExprs(func() bool { return p.peekByte(0) == '$' })
	p.wrap(body, KindMath)

	if p.peekByte(0) == '$' {
		p.leaf(KindDollar, p.pos+1)
		if inCode {
			p.skipTrivia()
		}
	} else {
		p.expected("closing dollar sign")
	}
	p.wrap(m, KindEquation)
}

// codeStartsAt reports whether an embedded expression can start at i.
func (p *parser) codeStartsAt(i int) bool {
	r, _ := p.runeAt(i)
	if isIdentStart(r) {
		return true
	}
	switch r {
	case '(', '{', '[', '"', '$':
		return true
	default:
		return false
	}
}

// embedded parses a hash-prefixed code expression inside markup or math.
func (p *parser) embedded() {
	saved := p.nl
	p.nl = nlEmbedded
	p.leaf(KindHash, p.pos+1)
	p.primary(true)
	p.nl = saved
	if !p.lastIsTrivia() && p.peekByte(0) == ';' {
		p.leaf(KindSemicolon, p.pos+1)
	}
}

func isLabelByte(r rune) bool {
	return isIdentContinue(r) || r == '.' || r == ':'
}

// labelEnd returns the end of the label starting at i, or zero.
func (p *parser) labelEnd(i int) int {
	j := i + 1
	for j < len(p.src) {
		r, size := p.runeAt(j)
		if !isLabelByte(r) {
			break
		}
		j += size
	}
	if j == i+1 || p.byteAt(j) != '>' {
		return 0
	}
	return j + 1
}

// refEnd returns the end of the reference marker starting at i. Trailing
// dots and colons belong to the surrounding text.
func (p *parser) refEnd(i int) int {
	j := i + 1
	for j < len(p.src) {
		r, size := p.runeAt(j)
		if !isLabelByte(r) {
			break
		}
		j += size
	}
	for j > i+1 && (p.src[j-1] == '.' || p.src[j-1] == ':') {
		j--
	}
	return j
}

func (p *parser) ref() {
	m := p.marker()
	p.leaf(KindRefMarker, p.refEnd(p.pos))
	if p.peekByte(0) == '[' {
		p.contentBlock(false)
	}
	p.wrap(m, KindRef)
}

// linkEnd returns the end of the URL starting at i, or zero.
func (p *parser) linkEnd(i int) int {
	rest := p.src[i:]
	if !strings.HasPrefix(rest, "http://") && !strings.HasPrefix(rest, "https://") {
		return 0
	}
	if isAlnum(p.runeBefore(i)) {
		return 0
	}

	j := i + strings.Index(rest, "//") + 2
	var parens, brackets int
loop:
	for j < len(p.src) {
		switch c := p.src[j]; {
		case isSpaceByte(c) || c == '<' || c == '>' || c == '"' || c == '`':
			break loop
		case c == '(':
			parens++
		case c == ')':
			if parens == 0 {
				break loop
			}
			parens--
		case c == '[':
			brackets++
		case c == ']':
			if brackets == 0 {
				break loop
			}
			brackets--
		}
		j++
	}
	for j > i && strings.IndexByte(".,;:!?'", p.src[j-1]) >= 0 {
		j--
	}
	return j
}

// shorthandEnd returns the end of the markup shorthand at i, or zero.
func (p *parser) shorthandEnd(i int) int {
	rest := p.src[i:]
	for _, s := range []string{"---", "--", "-?", "...", "~"} {
		if strings.HasPrefix(rest, s) {
			return i + len(s)
		}
	}
	return 0
}

// markupSpecialAt reports whether a text run must stop at i because
// another markup construct may start there.
func (p *parser) markupSpecialAt(i int) bool {
	c := p.src[i]
	switch c {
	case ' ', '\t', '\n', '\r', '\\', '*', '_', '`', '$', '#', '<', '@', '[', ']', '~', '\'', '"':
		return true
	case '/':
		next := p.byteAt(i + 1)
		return next == '/' || next == '*'
	case '-', '.':
		return p.shorthandEnd(i) > 0
	case ':':
		return p.termColon
	case 'h':
		return p.linkEnd(i) > 0
	default:
		return false
	}
}

// text consumes a run of plain text, at least one character long.
func (p *parser) text() {
	_, size := p.runeAt(p.pos)
	j := p.pos + size
	for j < len(p.src) && !p.markupSpecialAt(j) {
		_, size = p.runeAt(j)
		j += size
	}
	p.leaf(KindText, j)
}
