package syntax

// Kind classifies a syntax node. The set is closed: every node produced by
// Parse has one of the kinds declared here.
type Kind uint8

// Trivia and errors.
const (
	KindError Kind = iota
	KindSpace
	KindLineComment
	KindBlockComment

	// Markup.
	KindMarkup
	KindText
	KindLinebreak
	KindParbreak
	KindEscape
	KindShorthand
	KindSmartQuote
	KindStrong
	KindEmph
	KindRaw
	KindRawDelim
	KindRawLang
	KindLink
	KindLabel
	KindRef
	KindRefMarker
	KindHeading
	KindHeadingMarker
	KindListItem
	KindListMarker
	KindEnumItem
	KindEnumMarker
	KindTermItem
	KindTermMarker
	KindEquation

	// Math.
	KindMath
	KindMathIdent
	KindMathShorthand
	KindMathAlignPoint
	KindMathDelimited
	KindMathAttach
	KindMathPrimes
	KindMathFrac
	KindMathRoot

	// Punctuation.
	KindHash
	KindLeftBrace
	KindRightBrace
	KindLeftBracket
	KindRightBracket
	KindLeftParen
	KindRightParen
	KindComma
	KindSemicolon
	KindColon
	KindStar
	KindUnderscore
	KindDollar
	KindPlus
	KindMinus
	KindSlash
	KindHat
	KindDot
	KindEq
	KindEqEq
	KindExclEq
	KindLt
	KindLtEq
	KindGt
	KindGtEq
	KindPlusEq
	KindHyphEq
	KindStarEq
	KindSlashEq
	KindDots
	KindArrow
	KindRoot

	// Keywords.
	KindNot
	KindAnd
	KindOr
	KindNone
	KindAuto
	KindBool
	KindLet
	KindSet
	KindShow
	KindContext
	KindIf
	KindElse
	KindFor
	KindIn
	KindWhile
	KindBreak
	KindContinue
	KindReturn
	KindImport
	KindInclude
	KindAs

	// Code.
	KindCode
	KindIdent
	KindInt
	KindFloat
	KindNumeric
	KindStr
	KindCodeBlock
	KindContentBlock
	KindParenthesized
	KindArray
	KindDict
	KindNamed
	KindKeyed
	KindUnary
	KindBinary
	KindFieldAccess
	KindFuncCall
	KindArgs
	KindSpread
	KindClosure
	KindParams
	KindLetBinding
	KindSetRule
	KindShowRule
	KindContextual
	KindConditional
	KindWhileLoop
	KindForLoop
	KindModuleImport
	KindImportItems
	KindRenamedImportItem
	KindModuleInclude
	KindLoopBreak
	KindLoopContinue
	KindFuncReturn
	KindDestructuring
	KindDestructAssignment

	kindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [kindCount]string{
	KindError:              "Error",
	KindSpace:              "Space",
	KindLineComment:        "LineComment",
	KindBlockComment:       "BlockComment",
	KindMarkup:             "Markup",
	KindText:               "Text",
	KindLinebreak:          "Linebreak",
	KindParbreak:           "Parbreak",
	KindEscape:             "Escape",
	KindShorthand:          "Shorthand",
	KindSmartQuote:         "SmartQuote",
	KindStrong:             "Strong",
	KindEmph:               "Emph",
	KindRaw:                "Raw",
	KindRawDelim:           "RawDelim",
	KindRawLang:            "RawLang",
	KindLink:               "Link",
	KindLabel:              "Label",
	KindRef:                "Ref",
	KindRefMarker:          "RefMarker",
	KindHeading:            "Heading",
	KindHeadingMarker:      "HeadingMarker",
	KindListItem:           "ListItem",
	KindListMarker:         "ListMarker",
	KindEnumItem:           "EnumItem",
	KindEnumMarker:         "EnumMarker",
	KindTermItem:           "TermItem",
	KindTermMarker:         "TermMarker",
	KindEquation:           "Equation",
	KindMath:               "Math",
	KindMathIdent:          "MathIdent",
	KindMathShorthand:      "MathShorthand",
	KindMathAlignPoint:     "MathAlignPoint",
	KindMathDelimited:      "MathDelimited",
	KindMathAttach:         "MathAttach",
	KindMathPrimes:         "MathPrimes",
	KindMathFrac:           "MathFrac",
	KindMathRoot:           "MathRoot",
	KindHash:               "Hash",
	KindLeftBrace:          "LeftBrace",
	KindRightBrace:         "RightBrace",
	KindLeftBracket:        "LeftBracket",
	KindRightBracket:       "RightBracket",
	KindLeftParen:          "LeftParen",
	KindRightParen:         "RightParen",
	KindComma:              "Comma",
	KindSemicolon:          "Semicolon",
	KindColon:              "Colon",
	KindStar:               "Star",
	KindUnderscore:         "Underscore",
	KindDollar:             "Dollar",
	KindPlus:               "Plus",
	KindMinus:              "Minus",
	KindSlash:              "Slash",
	KindHat:                "Hat",
	KindDot:                "Dot",
	KindEq:                 "Eq",
	KindEqEq:               "EqEq",
	KindExclEq:             "ExclEq",
	KindLt:                 "Lt",
	KindLtEq:               "LtEq",
	KindGt:                 "Gt",
	KindGtEq:               "GtEq",
	KindPlusEq:             "PlusEq",
	KindHyphEq:             "HyphEq",
	KindStarEq:             "StarEq",
	KindSlashEq:            "SlashEq",
	KindDots:               "Dots",
	KindArrow:              "Arrow",
	KindRoot:               "Root",
	KindNot:                "Not",
	KindAnd:                "And",
	KindOr:                 "Or",
	KindNone:               "None",
	KindAuto:               "Auto",
	KindBool:               "Bool",
	KindLet:                "Let",
	KindSet:                "Set",
	KindShow:               "Show",
	KindContext:            "Context",
	KindIf:                 "If",
	KindElse:               "Else",
	KindFor:                "For",
	KindIn:                 "In",
	KindWhile:              "While",
	KindBreak:              "Break",
	KindContinue:           "Continue",
	KindReturn:             "Return",
	KindImport:             "Import",
	KindInclude:            "Include",
	KindAs:                 "As",
	KindCode:               "Code",
	KindIdent:              "Ident",
	KindInt:                "Int",
	KindFloat:              "Float",
	KindNumeric:            "Numeric",
	KindStr:                "Str",
	KindCodeBlock:          "CodeBlock",
	KindContentBlock:       "ContentBlock",
	KindParenthesized:      "Parenthesized",
	KindArray:              "Array",
	KindDict:               "Dict",
	KindNamed:              "Named",
	KindKeyed:              "Keyed",
	KindUnary:              "Unary",
	KindBinary:             "Binary",
	KindFieldAccess:        "FieldAccess",
	KindFuncCall:           "FuncCall",
	KindArgs:               "Args",
	KindSpread:             "Spread",
	KindClosure:            "Closure",
	KindParams:             "Params",
	KindLetBinding:         "LetBinding",
	KindSetRule:            "SetRule",
	KindShowRule:           "ShowRule",
	KindContextual:         "Contextual",
	KindConditional:        "Conditional",
	KindWhileLoop:          "WhileLoop",
	KindForLoop:            "ForLoop",
	KindModuleImport:       "ModuleImport",
	KindImportItems:        "ImportItems",
	KindRenamedImportItem:  "RenamedImportItem",
	KindModuleInclude:      "ModuleInclude",
	KindLoopBreak:          "LoopBreak",
	KindLoopContinue:       "LoopContinue",
	KindFuncReturn:         "FuncReturn",
	KindDestructuring:      "Destructuring",
	KindDestructAssignment: "DestructAssignment",
}

// String returns the kind's name.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsTrivia reports whether nodes of this kind carry no meaning in code.
func (k Kind) IsTrivia() bool {
	return k == KindSpace || k == KindLineComment || k == KindBlockComment
}

// IsComment reports whether k is a line or block comment.
func (k Kind) IsComment() bool {
	return k == KindLineComment || k == KindBlockComment
}

// IsStmt reports whether k is a statement that ends a markup line.
func (k Kind) IsStmt() bool {
	switch k {
	case KindLetBinding, KindSetRule, KindShowRule, KindModuleImport, KindModuleInclude:
		return true
	default:
		return false
	}
}

// IsExpr reports whether k is an expression, as opposed to a token,
// trivia, or a structural helper such as Args or Params.
func (k Kind) IsExpr() bool {
	switch k {
	case KindText, KindLinebreak, KindParbreak, KindEscape, KindShorthand, KindSmartQuote,
		KindStrong, KindEmph, KindRaw, KindLink, KindLabel, KindRef, KindHeading,
		KindListItem, KindEnumItem, KindTermItem, KindEquation,
		KindMath, KindMathIdent, KindMathShorthand, KindMathAlignPoint, KindMathDelimited,
		KindMathAttach, KindMathPrimes, KindMathFrac, KindMathRoot,
		KindNone, KindAuto, KindBool, KindIdent, KindInt, KindFloat, KindNumeric, KindStr,
		KindCodeBlock, KindContentBlock, KindParenthesized, KindArray, KindDict,
		KindUnary, KindBinary, KindFieldAccess, KindFuncCall, KindClosure,
		KindLetBinding, KindSetRule, KindShowRule, KindContextual, KindConditional,
		KindWhileLoop, KindForLoop, KindModuleImport, KindModuleInclude,
		KindLoopBreak, KindLoopContinue, KindFuncReturn, KindDestructAssignment,
		KindUnderscore, KindDestructuring:
		return true
	default:
		return false
	}
}
