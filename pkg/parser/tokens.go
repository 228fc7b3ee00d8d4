package parser

import "github.com/sandrolain/golox/pkg/types"

// symbols1 maps single-character punctuation to token kinds.
var symbols1 = map[rune]types.TokenKind{
	'(': types.TokenLeftParen,
	')': types.TokenRightParen,
	'{': types.TokenLeftBrace,
	'}': types.TokenRightBrace,
	',': types.TokenComma,
	'.': types.TokenDot,
	'-': types.TokenMinus,
	'+': types.TokenPlus,
	';': types.TokenSemicolon,
	'/': types.TokenSlash,
	'*': types.TokenStar,
	'!': types.TokenBang,
	'=': types.TokenEqual,
	'<': types.TokenLess,
	'>': types.TokenGreater,
}

// symbols2 maps the first character of a two-character operator to the
// operator's kind. The second character is always '='.
var symbols2 = map[rune]types.TokenKind{
	'!': types.TokenBangEqual,
	'=': types.TokenEqualEqual,
	'<': types.TokenLessEqual,
	'>': types.TokenGreaterEqual,
}

func lookupSymbol1(r rune) (types.TokenKind, bool) {
	kind, ok := symbols1[r]
	return kind, ok
}

func lookupSymbol2(r rune) (types.TokenKind, bool) {
	kind, ok := symbols2[r]
	return kind, ok
}

// statementStarts are the keywords the parser resynchronizes on.
var statementStarts = map[types.TokenKind]bool{
	types.TokenClass:  true,
	types.TokenFun:    true,
	types.TokenVar:    true,
	types.TokenFor:    true,
	types.TokenIf:     true,
	types.TokenWhile:  true,
	types.TokenPrint:  true,
	types.TokenReturn: true,
}
