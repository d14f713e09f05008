package syntax

import "strings"

//nolint:gochecknoglobals // Read-only lookup table.
var keywords = map[string]Kind{
	"none":     KindNone,
	"auto":     KindAuto,
	"true":     KindBool,
	"false":    KindBool,
	"not":      KindNot,
	"and":      KindAnd,
	"or":       KindOr,
	"let":      KindLet,
	"set":      KindSet,
	"show":     KindShow,
	"context":  KindContext,
	"if":       KindIf,
	"else":     KindElse,
	"for":      KindFor,
	"in":       KindIn,
	"while":    KindWhile,
	"break":    KindBreak,
	"continue": KindContinue,
	"return":   KindReturn,
	"import":   KindImport,
	"include":  KindInclude,
	"as":       KindAs,
}

//nolint:gochecknoglobals // Read-only lookup table.
var punctuation = map[byte]Kind{
	'{': KindLeftBrace, '}': KindRightBrace,
	'[': KindLeftBracket, ']': KindRightBracket,
	'(': KindLeftParen, ')': KindRightParen,
	',': KindComma, ';': KindSemicolon, ':': KindColon,
	'.': KindDot, '=': KindEq, '<': KindLt, '>': KindGt,
	'+': KindPlus, '-': KindMinus, '*': KindStar, '/': KindSlash,
	'$': KindDollar, '#': KindHash,
}

// lexCode returns the kind and end offset of the code token at i.
func (p *parser) lexCode(i int) (Kind, int) {
	if i >= len(p.src) {
		return kindEOF, i
	}

	r, size := p.runeAt(i)
	if isIdentStart(r) {
		end := p.identEnd(i)
		word := p.src[i:end]
		if word == "_" {
			return KindUnderscore, end
		}
		if kw, ok := keywords[word]; ok {
			return kw, end
		}
		return KindIdent, end
	}

	c := p.src[i]
	if isDigit(c) || (c == '.' && isDigit(p.byteAt(i+1))) {
		return p.lexNumber(i)
	}

	two := ""
	if i+2 <= len(p.src) {
		two = p.src[i : i+2]
	}
	switch two {
	case "..":
		return KindDots, i + 2
	case "=>":
		return KindArrow, i + 2
	case "==":
		return KindEqEq, i + 2
	case "!=":
		return KindExclEq, i + 2
	case "<=":
		return KindLtEq, i + 2
	case ">=":
		return KindGtEq, i + 2
	case "+=":
		return KindPlusEq, i + 2
	case "-=":
		return KindHyphEq, i + 2
	case "*=":
		return KindStarEq, i + 2
	case "/=":
		return KindSlashEq, i + 2
	}

	if k, ok := punctuation[c]; ok {
		return k, i + 1
	}

	if c == '"' {
		end, ok := p.stringEnd(i)
		if !ok {
			return KindError, end
		}
		return KindStr, end
	}

	return KindError, i + size
}

func (p *parser) lexNumber(i int) (Kind, int) {
	j := i
	if p.byteAt(j) == '0' && strings.ContainsRune("xob", rune(p.byteAt(j+1))) {
		j += 2
		for j < len(p.src) && isAlnum(rune(p.src[j])) {
			j++
		}
		return KindInt, j
	}

	kind := KindInt
	for j < len(p.src) && isDigit(p.src[j]) {
		j++
	}
	if p.byteAt(j) == '.' && isDigit(p.byteAt(j+1)) {
		kind = KindFloat
		j++
		for j < len(p.src) && isDigit(p.src[j]) {
			j++
		}
	}
	if e := p.byteAt(j); e == 'e' || e == 'E' {
		k := j + 1
		if s := p.byteAt(k); s == '+' || s == '-' {
			k++
		}
		if isDigit(p.byteAt(k)) {
			kind = KindFloat
			j = k
			for j < len(p.src) && isDigit(p.src[j]) {
				j++
			}
		}
	}

	switch {
	case p.byteAt(j) == '%':
		return KindNumeric, j + 1
	case isASCIILetter(p.byteAt(j)):
		end := j
		for isASCIILetter(p.byteAt(end)) {
			end++
		}
		return KindNumeric, end
	default:
		return kind, j
	}
}

func (p *parser) peek() Kind {
	k, _ := p.lexCode(p.pos)
	return k
}

func (p *parser) at(k Kind) bool {
	return p.peek() == k
}

// peekSecond returns the kind of the token after the current one, skipping
// plain whitespace.
func (p *parser) peekSecond() Kind {
	_, end := p.lexCode(p.pos)
	for end < len(p.src) && isSpaceByte(p.src[end]) {
		end++
	}
	k, _ := p.lexCode(end)
	return k
}

// skipTrivia consumes spaces and comments according to the newline mode.
func (p *parser) skipTrivia() {
	p.hadNewline = false
	for !p.eof() {
		c := p.src[p.pos]
		if isSpaceByte(c) {
			j := p.pos
			for j < len(p.src) && isSpaceByte(p.src[j]) {
				if p.src[j] == '\n' || p.src[j] == '\r' {
					if p.nl == nlEmbedded {
						break
					}
					p.hadNewline = true
				}
				j++
			}
			if j == p.pos {
				return
			}
			p.leaf(KindSpace, j)
			continue
		}
		if !p.comment() {
			return
		}
	}
}

// eat consumes the current code token and the trivia after it.
func (p *parser) eat() {
	p.eatNoTrivia()
	p.skipTrivia()
}

func (p *parser) eatNoTrivia() {
	k, end := p.lexCode(p.pos)
	if k == kindEOF {
		return
	}
	if k == KindError {
		p.errorLeaf(end, "unexpected character")
		return
	}
	p.leaf(k, end)
}

func (p *parser) expect(k Kind, what string) {
	if p.at(k) {
		p.eat()
		return
	}
	p.expected(what)
}

// errorToken turns the current token into an error, unless it closes an
// enclosing construct.
func (p *parser) errorToken(message string) {
	k, end := p.lexCode(p.pos)
	switch k {
	case kindEOF, KindRightParen, KindRightBracket, KindRightBrace, KindComma, KindSemicolon:
		p.expected(message)
	default:
		p.errorLeaf(end, message)
		p.skipTrivia()
	}
}

// forceError consumes at least one byte as an error to guarantee progress.
func (p *parser) forceError(message string) {
	_, end := p.lexCode(p.pos)
	if end <= p.pos {
		end = p.pos + 1
	}
	p.errorLeaf(min(end, len(p.src)), message)
	p.skipTrivia()
}

func (p *parser) atStmtEnd() bool {
	if p.eof() || (p.nl == nlStop && p.hadNewline) {
		return true
	}
	switch p.src[p.pos] {
	case ';', '}', ']', ')', ',', '\n', '\r':
		return true
	default:
		return false
	}
}

const (
	precAssign = 1
	precOr     = 2
	precAnd    = 3
	precCmp    = 4
	precAdd    = 5
	precMul    = 6
	precUnary  = 7
)

// binOp reports the binary operator at the current position: its
// precedence, associativity, and how many tokens it spans.
func (p *parser) binOp() (int, bool, int, bool) {
	switch p.peek() {
	case KindEq, KindPlusEq, KindHyphEq, KindStarEq, KindSlashEq:
		return precAssign, true, 1, true
	case KindOr:
		return precOr, false, 1, true
	case KindAnd:
		return precAnd, false, 1, true
	case KindEqEq, KindExclEq, KindLt, KindLtEq, KindGt, KindGtEq, KindIn:
		return precCmp, false, 1, true
	case KindNot:
		if p.peekSecond() == KindIn {
			return precCmp, false, 2, true
		}
		return 0, false, 0, false
	case KindPlus, KindMinus:
		return precAdd, false, 1, true
	case KindStar, KindSlash:
		return precMul, false, 1, true
	default:
		return 0, false, 0, false
	}
}

func (p *parser) codeExpr() {
	p.exprPrec(0)
}

func (p *parser) exprPrec(minPrec int) {
	m := p.marker()

	switch p.peek() {
	case KindPlus, KindMinus:
		p.eat()
		p.exprPrec(precUnary)
		p.wrap(m, KindUnary)
	case KindNot:
		p.eat()
		p.exprPrec(precCmp)
		p.wrap(m, KindUnary)
	default:
		p.primary(false)
	}

	for {
		if p.nl == nlStop && p.hadNewline {
			return
		}
		prec, rightAssoc, tokens, ok := p.binOp()
		if !ok || prec < minPrec {
			return
		}
		isAssign := p.at(KindEq)
		for range tokens {
			p.eat()
		}
		next := prec + 1
		if rightAssoc {
			next = prec
		}
		p.exprPrec(next)

		lhs := p.nodes[m]
		if isAssign && (lhs.kind == KindArray || lhs.kind == KindDict || lhs.kind == KindParenthesized) {
			toPattern(lhs)
			p.wrap(m, KindDestructAssignment)
			continue
		}
		p.wrap(m, KindBinary)
	}
}

// primary parses an atom followed by field accesses and calls. Postfix
// operators must follow without intervening trivia.
func (p *parser) primary(embedded bool) {
	m := p.marker()
	p.atom(embedded)
	if !canPostfix(p.nodes[m].kind) {
		return
	}

	for !p.eof() && !p.lastIsTrivia() {
		if p.nl == nlStop && p.hadNewline {
			return
		}
		c := p.src[p.pos]
		switch {
		case c == '.':
			r, _ := p.runeAt(p.pos + 1)
			if !isIdentStart(r) {
				return
			}
			p.eatNoTrivia()
			p.expect(KindIdent, "field name")
			p.wrap(m, KindFieldAccess)
		case c == '(' || c == '[':
			p.args()
			p.wrap(m, KindFuncCall)
		default:
			return
		}
	}
}

// canPostfix reports whether field access and calls may follow k.
func canPostfix(k Kind) bool {
	switch k {
	case KindError, KindLetBinding, KindSetRule, KindShowRule, KindContextual,
		KindConditional, KindWhileLoop, KindForLoop, KindModuleImport, KindModuleInclude,
		KindFuncReturn, KindLoopBreak, KindLoopContinue, KindClosure:
		return false
	default:
		return true
	}
}

func (p *parser) atom(embedded bool) {
	switch p.peek() {
	case KindIdent:
		m := p.marker()
		p.eat()
		if !embedded && p.at(KindArrow) {
			p.wrap(m, KindParams)
			p.eat()
			p.codeExpr()
			p.wrap(m, KindClosure)
		}
	case KindNone, KindAuto, KindBool, KindInt, KindFloat, KindNumeric, KindStr, KindUnderscore:
		p.eat()
	case KindLeftBrace:
		p.codeBlock()
	case KindLeftBracket:
		p.contentBlock(true)
	case KindDollar:
		p.equation(true)
	case KindLeftParen:
		p.collection(embedded)
	case KindLet:
		p.letBinding()
	case KindSet:
		p.setRule()
	case KindShow:
		p.showRule()
	case KindContext:
		p.keywordExpr(KindContextual)
	case KindIf:
		p.conditional()
	case KindWhile:
		p.whileLoop()
	case KindFor:
		p.forLoop()
	case KindImport:
		p.moduleImport()
	case KindInclude:
		p.keywordExpr(KindModuleInclude)
	case KindReturn:
		p.funcReturn()
	case KindBreak:
		m := p.marker()
		p.eat()
		p.wrap(m, KindLoopBreak)
	case KindContinue:
		m := p.marker()
		p.eat()
		p.wrap(m, KindLoopContinue)
	default:
		p.errorToken("expected expression")
	}
}

func (p *parser) keywordExpr(kind Kind) {
	m := p.marker()
	p.eat()
	p.codeExpr()
	p.wrap(m, kind)
}

func (p *parser) codeBlock() {
	m := p.marker()
	saved := p.nl
	p.nl = nlStop
	p.eatNoTrivia()
	body := p.marker()
	p.skipTrivia()
	p.codeStatements(func() bool { return p.at(KindRightBrace) })
	p.wrapAll(body, KindCode)
	p.nl = saved
	p.expect(KindRightBrace, "closing brace")
	p.wrap(m, KindCodeBlock)
}

func (p *parser) codeStatements(stop func() bool) {
	for !p.eof() && !stop() {
		start := p.pos
		p.codeExpr()
		switch {
		case p.at(KindSemicolon):
			p.eat()
		case p.eof() || stop() || p.hadNewline:
		default:
			p.errorToken("expected semicolon or line break")
		}
		if p.pos == start {
			p.forceError("unexpected token")
		}
	}
}

func (p *parser) contentBlock(trivia bool) {
	m := p.marker()
	p.leaf(KindLeftBracket, p.pos+1)
	body := p.marker()

	savedDepth, savedStart, savedTerm, savedNL := p.depth, p.blockStart, p.termColon, p.nl
	p.depth, p.blockStart, p.termColon = 0, p.pos, false
	p.markupExprs(func() bool { return p.depth == 0 && p.peekByte(0) == ']' })
	p.wrapAll(body, KindMarkup)
	p.depth, p.blockStart, p.termColon, p.nl = savedDepth, savedStart, savedTerm, savedNL

	if p.peekByte(0) == ']' {
		p.leaf(KindRightBracket, p.pos+1)
		if trivia {
			p.skipTrivia()
		}
	} else {
		p.expected("closing bracket")
	}
	p.wrap(m, KindContentBlock)
}

type itemKind uint8

const (
	itemPos itemKind = iota
	itemNamed
	itemKeyed
	itemSpread
)

func (p *parser) item() itemKind {
	m := p.marker()
	if p.at(KindDots) {
		p.eat()
		if !p.at(KindComma) && !p.at(KindRightParen) && !p.eof() {
			p.codeExpr()
		}
		p.wrap(m, KindSpread)
		return itemSpread
	}

	p.codeExpr()
	if !p.at(KindColon) {
		return itemPos
	}

	key := p.nodes[m]
	p.eat()
	p.codeExpr()
	if key.kind == KindIdent {
		p.wrap(m, KindNamed)
		return itemNamed
	}
	p.wrap(m, KindKeyed)
	return itemKeyed
}

// items parses comma-separated items up to the closing paren.
func (p *parser) items() (int, int, int, bool) {
	var count, keyed, spreads int
	sawComma := false
	for !p.eof() && !p.at(KindRightParen) {
		start := p.pos
		switch p.item() {
		case itemNamed, itemKeyed:
			keyed++
		case itemSpread:
			spreads++
		case itemPos:
		}
		count++
		switch {
		case p.at(KindComma):
			p.eat()
			sawComma = true
		case !p.at(KindRightParen):
			p.errorToken("expected comma")
		}
		if p.pos == start {
			p.forceError("unexpected token")
		}
	}
	return count, keyed, spreads, sawComma
}

func (p *parser) collection(embedded bool) {
	m := p.marker()
	saved := p.nl
	p.nl = nlContinue
	p.eat()

	emptyDict := false
	if p.at(KindColon) && p.peekSecond() == KindRightParen {
		p.eat()
		emptyDict = true
	}
	count, keyed, spreads, sawComma := p.items()

	p.nl = saved
	p.expect(KindRightParen, "closing paren")

	var kind Kind
	switch {
	case emptyDict || keyed > 0:
		kind = KindDict
	case count == 1 && !sawComma && spreads == 0:
		kind = KindParenthesized
	default:
		kind = KindArray
	}
	n := p.wrap(m, kind)

	if !embedded && p.at(KindArrow) {
		toParams(n)
		p.eat()
		p.codeExpr()
		p.wrap(m, KindClosure)
	}
}

// toParams reinterprets a parsed collection as closure parameters.
func toParams(n *Node) {
	n.kind = KindParams
	for _, child := range n.children {
		switch child.kind {
		case KindArray, KindDict:
			toPattern(child)
		case KindParenthesized:
			child.kind = KindDestructuring
			for _, inner := range child.children {
				toPattern(inner)
			}
		}
	}
}

// toPattern reinterprets a parsed collection as a destructuring pattern.
func toPattern(n *Node) {
	switch n.kind {
	case KindArray, KindDict:
		n.kind = KindDestructuring
		for _, child := range n.children {
			switch child.kind {
			case KindArray, KindDict:
				toPattern(child)
			case KindNamed:
				if value := lastNonTrivia(child); value != nil {
					toPattern(value)
				}
			}
		}
	}
}

func lastNonTrivia(n *Node) *Node {
	for i := len(n.children) - 1; i >= 0; i-- {
		if !n.children[i].kind.IsTrivia() {
			return n.children[i]
		}
	}
	return nil
}

func (p *parser) args() {
	m := p.marker()
	if p.peekByte(0) == '(' {
		saved := p.nl
		p.nl = nlContinue
		p.eat()
		p.items()
		p.nl = saved
		p.expect(KindRightParen, "closing paren")
	}
	for !p.eof() && !p.lastIsTrivia() && p.peekByte(0) == '[' {
		p.contentBlock(true)
	}
	p.wrap(m, KindArgs)
}

func (p *parser) pattern() {
	switch p.peek() {
	case KindLeftParen:
		m := p.marker()
		p.collection(true)
		toPattern(p.nodes[m])
	case KindIdent, KindUnderscore:
		p.eat()
	default:
		p.errorToken("expected pattern")
	}
}

func (p *parser) letBinding() {
	m := p.marker()
	p.eat()

	if p.at(KindIdent) && p.byteAt(p.identEnd(p.pos)) == '(' {
		closure := p.marker()
		p.eatNoTrivia()
		params := p.marker()
		p.collection(true)
		toParams(p.nodes[params])
		p.expect(KindEq, "equals sign")
		p.codeExpr()
		p.wrap(closure, KindClosure)
	} else {
		p.pattern()
		if p.at(KindEq) {
			p.eat()
			p.codeExpr()
		}
	}

	p.wrap(m, KindLetBinding)
}

func (p *parser) setRule() {
	m := p.marker()
	p.eat()

	target := p.marker()
	p.expect(KindIdent, "identifier")
	for !p.lastIsTrivia() && p.peekByte(0) == '.' {
		p.eatNoTrivia()
		p.expect(KindIdent, "field name")
		p.wrap(target, KindFieldAccess)
	}
	if !p.lastIsTrivia() && p.peekByte(0) == '(' {
		p.args()
	} else {
		p.expected("argument list")
	}
	if p.at(KindIf) {
		p.eat()
		p.codeExpr()
	}

	p.wrap(m, KindSetRule)
}

func (p *parser) showRule() {
	m := p.marker()
	p.eat()
	if !p.at(KindColon) {
		p.codeExpr()
	}
	p.expect(KindColon, "colon")
	p.codeExpr()
	p.wrap(m, KindShowRule)
}

func (p *parser) block() {
	switch p.peek() {
	case KindLeftBrace:
		p.codeBlock()
	case KindLeftBracket:
		p.contentBlock(true)
	default:
		p.expected("block")
	}
}

func (p *parser) conditional() {
	m := p.marker()
	p.eat()
	p.codeExpr()
	p.block()
	if p.at(KindElse) {
		p.eat()
		if p.at(KindIf) {
			p.conditional()
		} else {
			p.block()
		}
	}
	p.wrap(m, KindConditional)
}

func (p *parser) whileLoop() {
	m := p.marker()
	p.eat()
	p.codeExpr()
	p.block()
	p.wrap(m, KindWhileLoop)
}

func (p *parser) forLoop() {
	m := p.marker()
	p.eat()
	p.pattern()
	p.expect(KindIn, "keyword in")
	p.codeExpr()
	p.block()
	p.wrap(m, KindForLoop)
}

func (p *parser) moduleImport() {
	m := p.marker()
	p.eat()
	p.codeExpr()
	if p.at(KindAs) {
		p.eat()
		p.expect(KindIdent, "identifier")
	}
	if p.at(KindColon) {
		p.eat()
		if p.at(KindStar) {
			p.eat()
		} else {
			p.importItems()
		}
	}
	p.wrap(m, KindModuleImport)
}

func (p *parser) importItems() {
	m := p.marker()
	paren := p.at(KindLeftParen)
	saved := p.nl
	if paren {
		p.nl = nlContinue
		p.eat()
	}

	for !p.eof() {
		if !p.at(KindIdent) {
			if !paren || !p.at(KindRightParen) {
				p.errorToken("expected import item")
			}
			break
		}
		item := p.marker()
		p.eat()
		if p.at(KindAs) {
			p.eat()
			p.expect(KindIdent, "identifier")
			p.wrap(item, KindRenamedImportItem)
		}
		if !p.at(KindComma) {
			break
		}
		p.eat()
		if !p.at(KindIdent) {
			break
		}
	}

	if paren {
		p.nl = saved
		p.expect(KindRightParen, "closing paren")
	}
	p.wrap(m, KindImportItems)
}

func (p *parser) funcReturn() {
	m := p.marker()
	p.eat()
	if !p.atStmtEnd() {
		p.codeExpr()
	}
	p.wrap(m, KindFuncReturn)
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
