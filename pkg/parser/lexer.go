package parser

import (
	"strconv"
	"unicode/utf8"

	"github.com/sandrolain/golox/pkg/types"
)

const eof = -1

// Lexer converts source text into a sequence of tokens.
// The implementation is based on Rob Pike's "Lexical Scanning in Go" technique.
//
// Scan errors never stop the lexer: the offending input is reported and
// skipped, and the token stream is still terminated by a single EOF token.
type Lexer struct {
	input   string // Input string being scanned
	length  int    // Length of input string
	start   int    // Start position of current token
	current int    // Current position in input
	width   int    // Width of last rune read
	line    uint   // Current line, starting at 1
	errs    types.ErrorList
}

// NewLexer creates a new lexer from the provided input string.
// The input is tokenized by successive calls to the Next method.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		length: len(input),
		line:   1,
	}
}

// Scan tokenizes source in one pass. The returned sequence always ends with
// EOF; the error is a types.ErrorList when anything had to be reported.
func Scan(source string) ([]types.Token, error) {
	return NewLexer(source).ScanTokens()
}

// ScanTokens reads the remaining input and returns every token, EOF included.
func (l *Lexer) ScanTokens() ([]types.Token, error) {
	var tokens []types.Token
	for {
		t := l.Next()
		tokens = append(tokens, t)
		if t.Kind == types.TokenEOF {
			break
		}
	}
	return tokens, l.errs.Err()
}

// Next returns the next token from the input.
// When the end of the input is reached, Next returns TokenEOF for all subsequent calls.
func (l *Lexer) Next() types.Token {
	for {
		l.skipWhitespace()

		ch := l.nextRune()
		switch {
		case ch == eof:
			return l.eof()
		case ch == '"' || ch == '\'':
			l.ignore()
			if t, ok := l.scanString(ch); ok {
				return t
			}
			continue
		case isDigit(ch):
			l.backup()
			return l.scanNumber()
		case isAlpha(ch):
			l.backup()
			return l.scanIdentifier()
		}

		// Check for two-character symbols first (e.g., !=, <=)
		if kind, ok := lookupSymbol2(ch); ok {
			if l.acceptRune('=') {
				return l.newToken(kind)
			}
		}

		// Check for single-character symbols
		if kind, ok := lookupSymbol1(ch); ok {
			return l.newToken(kind)
		}

		l.error(types.ErrUnexpectedChar, "Unexpected character.")
		l.ignore()
	}
}

// Errors returns every error encountered so far.
func (l *Lexer) Errors() types.ErrorList {
	return l.errs
}

// scanString reads a string literal from the current position.
// The opening quote has already been consumed; the closing quote must match
// it. Strings may span lines and have no escape sequences.
func (l *Lexer) scanString(quote rune) (types.Token, bool) {
	for {
		switch l.nextRune() {
		case quote:
			l.backup()
			value := l.input[l.start:l.current]
			l.acceptRune(quote)
			t := types.Token{
				Kind:    types.TokenString,
				Lexeme:  l.input[l.start-1 : l.current],
				Literal: types.String(value),
				Line:    l.line,
			}
			l.ignore()
			return t, true
		case eof:
			l.error(types.ErrStringNotClosed, "Unterminated string.")
			l.ignore()
			return types.Token{}, false
		}
	}
}

// scanNumber reads a number literal from the current position.
// Format: [0-9]+(\.[0-9]+)?
func (l *Lexer) scanNumber() types.Token {
	l.acceptAll(isDigit)

	// A dot only belongs to the number when a digit follows it.
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.nextRune()
		l.acceptAll(isDigit)
	}

	t := l.newToken(types.TokenNumber)
	// The lexeme is digits with at most one dot, so ParseFloat can only
	// fail by overflowing to ±Inf, which is the value we want anyway.
	n, _ := strconv.ParseFloat(t.Lexeme, 64)
	t.Literal = types.Number(n)
	return t
}

// scanIdentifier reads an identifier or keyword from the current position.
func (l *Lexer) scanIdentifier() types.Token {
	l.acceptAll(isAlphaNumeric)

	t := l.newToken(types.LookupKeyword(l.input[l.start:l.current]))
	switch t.Kind {
	case types.TokenTrue:
		t.Literal = types.Bool(true)
	case types.TokenFalse:
		t.Literal = types.Bool(false)
	case types.TokenNil:
		t.Literal = types.NilValue
	}
	return t
}

// Helper methods

func (l *Lexer) eof() types.Token {
	return types.Token{
		Kind: types.TokenEOF,
		Line: l.line,
	}
}

func (l *Lexer) error(code types.ErrorCode, message string) {
	l.errs.Add(types.NewError(code, message, l.line))
}

func (l *Lexer) newToken(kind types.TokenKind) types.Token {
	t := types.Token{
		Kind:   kind,
		Lexeme: l.input[l.start:l.current],
		Line:   l.line,
	}
	l.width = 0
	l.start = l.current
	return t
}

func (l *Lexer) nextRune() rune {
	if l.current >= l.length {
		l.width = 0
		return eof
	}

	r, w := utf8.DecodeRuneInString(l.input[l.current:])
	l.width = w
	l.current += w
	if r == '\n' {
		l.line++
	}
	return r
}

// backup steps back over the last rune read. It may be called only once per
// call to nextRune.
func (l *Lexer) backup() {
	if l.width > 0 && l.input[l.current-l.width] == '\n' {
		l.line--
	}
	l.current -= l.width
	l.width = 0
}

func (l *Lexer) peek() rune {
	r := l.nextRune()
	l.backup()
	return r
}

func (l *Lexer) peekNext() rune {
	if l.current >= l.length {
		return eof
	}
	_, w := utf8.DecodeRuneInString(l.input[l.current:])
	if l.current+w >= l.length {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.current+w:])
	return r
}

func (l *Lexer) ignore() {
	l.start = l.current
}

func (l *Lexer) acceptRune(r rune) bool {
	return l.accept(func(c rune) bool {
		return c == r
	})
}

func (l *Lexer) accept(isValid func(rune) bool) bool {
	if isValid(l.nextRune()) {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptAll(isValid func(rune) bool) bool {
	var matched bool
	for l.accept(isValid) {
		matched = true
	}
	return matched
}

// skipWhitespace skips blanks, newlines and // comments.
func (l *Lexer) skipWhitespace() {
	for {
		l.acceptAll(isWhitespace)
		l.ignore()

		if l.peek() != '/' || l.peekNext() != '/' {
			return
		}
		// Line comment: consume up to, not including, the newline.
		for {
			ch := l.nextRune()
			if ch == eof {
				break
			}
			if ch == '\n' {
				l.backup()
				break
			}
		}
		l.ignore()
	}
}

// Character classification functions

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
