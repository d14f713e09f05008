package syntax

import (
	"sort"
	"strings"
	"unicode"
)

//nolint:gochecknoglobals // Sorted once, read-only afterwards.
var mathShorthands = func() []string {
	list := []string{
		"...", "-->", "->", "<--", "<-", "<->", "<-->", "==>", "=>", "<==", "<=>", "<==>",
		"<=", ">=", "!=", "::=", ":=", "=:", "|->", "<<<", ">>>", "<<", ">>", "~~", "-<", ">-",
		"[|", "|]", "||",
	}
	sort.SliceStable(list, func(i, j int) bool { return len(list[i]) > len(list[j]) })
	return list
}()

const (
	mathOpeners = "([{⟨⌈⌊"
	mathClosers = ")]}⟩⌉⌋"
)

func (p *parser) mathSpace() {
	end, _, _ := p.spaceRun(p.pos)
	if end > p.pos {
		p.leaf(KindSpace, end)
	}
}

func (p *parser) mathExprs(stop func() bool) {
	last := -1
	for !p.eof() && !stop() {
		start := p.pos
		switch c := p.src[p.pos]; {
		case isSpaceByte(c):
			p.mathSpace()
		case p.comment():
		case c == '/' && last >= 0:
			p.leaf(KindSlash, p.pos+1)
			p.mathSpace()
			if p.eof() || stop() {
				p.expected("denominator")
			} else {
				p.mathExpr(stop)
			}
			p.wrap(last, KindMathFrac)
		default:
			m := p.marker()
			p.mathExpr(stop)
			switch p.nodes[m].kind {
			case KindMathAlignPoint, KindLinebreak:
				last = -1
			default:
				last = m
			}
		}
		if p.pos == start {
			_, size := p.runeAt(p.pos)
			p.errorLeaf(p.pos+size, "unexpected character")
		}
	}
}

// mathExpr parses a primary with its attachments.
func (p *parser) mathExpr(stop func() bool) {
	m := p.marker()
	p.mathPrimary(stop)

	switch p.nodes[m].kind {
	case KindMathAlignPoint, KindLinebreak, KindError:
		return
	}

	attached := false
	for !p.eof() {
		switch p.src[p.pos] {
		case '\'':
			p.leaf(KindMathPrimes, p.primesEnd(p.pos))
		case '_', '^':
			kind := KindUnderscore
			if p.src[p.pos] == '^' {
				kind = KindHat
			}
			p.leaf(kind, p.pos+1)
			if p.eof() || stop() || isSpaceByte(p.peekByte(0)) {
				p.expected("script")
			} else {
				p.mathPrimary(stop)
			}
		default:
			if attached {
				p.wrap(m, KindMathAttach)
			}
			return
		}
		attached = true
	}
	if attached {
		p.wrap(m, KindMathAttach)
	}
}

func (p *parser) primesEnd(i int) int {
	for p.byteAt(i) == '\'' {
		i++
	}
	return i
}

func (p *parser) mathPrimary(stop func() bool) {
	r, size := p.runeAt(p.pos)

	switch {
	case r == '\\':
		p.escape()
	case r == '&':
		p.leaf(KindMathAlignPoint, p.pos+1)
	case r == '#' && p.codeStartsAt(p.pos+1):
		p.embedded()
	case r == '"':
		end, ok := p.stringEnd(p.pos)
		if !ok {
			p.errorLeaf(end, "unclosed string")
			return
		}
		p.leaf(KindStr, end)
	case unicode.IsLetter(r):
		p.mathIdent()
	case r < 0x80 && isDigit(byte(r)):
		end := p.pos
		for isDigit(p.byteAt(end)) {
			end++
		}
		if p.byteAt(end) == '.' && isDigit(p.byteAt(end+1)) {
			end++
			for isDigit(p.byteAt(end)) {
				end++
			}
		}
		p.leaf(KindText, end)
	case p.mathShorthandEnd() > 0:
		p.leaf(KindMathShorthand, p.mathShorthandEnd())
	case r == '\'':
		p.leaf(KindMathPrimes, p.primesEnd(p.pos))
	case strings.ContainsRune(mathOpeners, r):
		p.mathDelimited(size, stop)
	case r == '√' || r == '∛' || r == '∜':
		m := p.marker()
		p.leaf(KindRoot, p.pos+size)
		if !p.eof() && !stop() && !isSpaceByte(p.peekByte(0)) {
			p.mathPrimary(stop)
		}
		p.wrap(m, KindMathRoot)
	default:
		p.leaf(KindText, p.pos+size)
	}
}

// mathIdent parses a letter run. A single letter is plain text; longer runs
// and dotted chains are identifiers, which may be called.
func (p *parser) mathIdent() {
	m := p.marker()
	end := p.pos
	letters := 0
	for {
		r, size := p.runeAt(end)
		if size == 0 || !unicode.IsLetter(r) {
			break
		}
		end += size
		letters++
	}
	for letters > 1 && p.byteAt(end) == '.' {
		r, _ := p.runeAt(end + 1)
		if !unicode.IsLetter(r) {
			break
		}
		end++
		for {
			r, size := p.runeAt(end)
			if size == 0 || !unicode.IsLetter(r) {
				break
			}
			end += size
		}
	}

	if letters == 1 {
		p.leaf(KindText, end)
		return
	}
	p.leaf(KindMathIdent, end)
	if p.peekByte(0) == '(' {
		p.mathArgs()
		p.wrap(m, KindFuncCall)
	}
}

func (p *parser) mathShorthandEnd() int {
	rest := p.src[p.pos:]
	for _, s := range mathShorthands {
		if strings.HasPrefix(rest, s) {
			return p.pos + len(s)
		}
	}
	return 0
}

func (p *parser) atMathCloser() bool {
	r, _ := p.runeAt(p.pos)
	return strings.ContainsRune(mathClosers, r)
}

// mathDelimited parses a bracketed group. Without a closing delimiter the
// opener and body stay plain siblings.
func (p *parser) mathDelimited(openSize int, stop func() bool) {
	m := p.marker()
	p.leaf(KindText, p.pos+openSize)
	body := p.marker()
	p.mathExprs(func() bool { return stop() || p.atMathCloser() })

	if p.eof() || !p.atMathCloser() {
		return
	}
	p.wrapAll(body, KindMath)
	_, size := p.runeAt(p.pos)
	p.leaf(KindText, p.pos+size)
	p.wrap(m, KindMathDelimited)
}

// mathArgs parses the argument list of a call in math.
func (p *parser) mathArgs() {
	m := p.marker()
	p.leaf(KindLeftParen, p.pos+1)

	argEnd := func() bool {
		switch p.peekByte(0) {
		case ',', ';', ')', '$':
			return true
		default:
			return false
		}
	}

	for !p.eof() {
		switch c := p.src[p.pos]; {
		case c == ')':
			p.leaf(KindRightParen, p.pos+1)
			p.wrap(m, KindArgs)
			return
		case c == '$':
			p.expected("closing paren")
			p.wrap(m, KindArgs)
			return
		case isSpaceByte(c):
			p.mathSpace()
		case c == ',':
			p.leaf(KindComma, p.pos+1)
		case c == ';':
			p.leaf(KindSemicolon, p.pos+1)
		default:
			p.mathArg(argEnd)
		}
	}

	p.expected("closing paren")
	p.wrap(m, KindArgs)
}

func (p *parser) mathArg(argEnd func() bool) {
	m := p.marker()
	if end := p.identEnd(p.pos); end > p.pos && p.byteAt(end) == ':' && p.byteAt(end+1) != '=' {
		p.leaf(KindIdent, end)
		p.leaf(KindColon, end+1)
		p.mathSpace()
		body := p.marker()
		p.mathExprs(argEnd)
		p.wrap(body, KindMath)
		p.wrap(m, KindNamed)
		return
	}

	start := p.pos
	p.mathExprs(argEnd)
	if p.pos == start {
		p.forceError("unexpected token")
		return
	}
	p.wrap(m, KindMath)
}
