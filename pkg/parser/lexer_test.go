package parser_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sandrolain/golox/pkg/parser"
	"github.com/sandrolain/golox/pkg/types"
)

type lexerTestCase struct {
	name     string
	input    string
	expected []types.Token
}

func runLexerTests(t *testing.T, tests []lexerTestCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Scan(tt.input)
			if err != nil {
				t.Fatalf("Scan(%q) error: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Scan(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func tok(kind types.TokenKind, lexeme string, line uint) types.Token {
	return types.Token{Kind: kind, Lexeme: lexeme, Line: line}
}

func lit(kind types.TokenKind, lexeme string, value types.Value, line uint) types.Token {
	return types.Token{Kind: kind, Lexeme: lexeme, Literal: value, Line: line}
}

func eofAt(line uint) types.Token {
	return types.Token{Kind: types.TokenEOF, Line: line}
}

func TestLexerArithmetic(t *testing.T) {
	runLexerTests(t, []lexerTestCase{
		{
			name:  "sum",
			input: "1 + 2",
			expected: []types.Token{
				lit(types.TokenNumber, "1", types.Number(1), 1),
				tok(types.TokenPlus, "+", 1),
				lit(types.TokenNumber, "2", types.Number(2), 1),
				eofAt(1),
			},
		},
		{
			name:  "decimal",
			input: "12.5*3",
			expected: []types.Token{
				lit(types.TokenNumber, "12.5", types.Number(12.5), 1),
				tok(types.TokenStar, "*", 1),
				lit(types.TokenNumber, "3", types.Number(3), 1),
				eofAt(1),
			},
		},
		{
			name:  "trailing dot is not part of the number",
			input: "1.",
			expected: []types.Token{
				lit(types.TokenNumber, "1", types.Number(1), 1),
				tok(types.TokenDot, ".", 1),
				eofAt(1),
			},
		},
	})
}

func TestLexerOperators(t *testing.T) {
	runLexerTests(t, []lexerTestCase{
		{
			name:  "one and two character operators",
			input: "! != = == > >= < <=",
			expected: []types.Token{
				tok(types.TokenBang, "!", 1),
				tok(types.TokenBangEqual, "!=", 1),
				tok(types.TokenEqual, "=", 1),
				tok(types.TokenEqualEqual, "==", 1),
				tok(types.TokenGreater, ">", 1),
				tok(types.TokenGreaterEqual, ">=", 1),
				tok(types.TokenLess, "<", 1),
				tok(types.TokenLessEqual, "<=", 1),
				eofAt(1),
			},
		},
		{
			name:  "punctuation",
			input: "(){},.-;/",
			expected: []types.Token{
				tok(types.TokenLeftParen, "(", 1),
				tok(types.TokenRightParen, ")", 1),
				tok(types.TokenLeftBrace, "{", 1),
				tok(types.TokenRightBrace, "}", 1),
				tok(types.TokenComma, ",", 1),
				tok(types.TokenDot, ".", 1),
				tok(types.TokenMinus, "-", 1),
				tok(types.TokenSemicolon, ";", 1),
				tok(types.TokenSlash, "/", 1),
				eofAt(1),
			},
		},
	})
}

func TestLexerKeywordsAndIdentifiers(t *testing.T) {
	runLexerTests(t, []lexerTestCase{
		{
			name:  "keywords carry literals where they have one",
			input: "var x = true; nil false",
			expected: []types.Token{
				tok(types.TokenVar, "var", 1),
				tok(types.TokenIdentifier, "x", 1),
				tok(types.TokenEqual, "=", 1),
				lit(types.TokenTrue, "true", types.Bool(true), 1),
				tok(types.TokenSemicolon, ";", 1),
				lit(types.TokenNil, "nil", types.NilValue, 1),
				lit(types.TokenFalse, "false", types.Bool(false), 1),
				eofAt(1),
			},
		},
		{
			name:  "identifier with keyword prefix",
			input: "classy _or2",
			expected: []types.Token{
				tok(types.TokenIdentifier, "classy", 1),
				tok(types.TokenIdentifier, "_or2", 1),
				eofAt(1),
			},
		},
	})
}

func TestLexerStrings(t *testing.T) {
	runLexerTests(t, []lexerTestCase{
		{
			name:  "double quoted",
			input: `"hello"`,
			expected: []types.Token{
				lit(types.TokenString, `"hello"`, types.String("hello"), 1),
				eofAt(1),
			},
		},
		{
			name:  "single quoted keeps the other quote",
			input: `'say "hi"'`,
			expected: []types.Token{
				lit(types.TokenString, `'say "hi"'`, types.String(`say "hi"`), 1),
				eofAt(1),
			},
		},
		{
			name:  "multi-line string advances the line",
			input: "\"a\nb\" x",
			expected: []types.Token{
				lit(types.TokenString, "\"a\nb\"", types.String("a\nb"), 2),
				tok(types.TokenIdentifier, "x", 2),
				eofAt(2),
			},
		},
	})
}

func TestLexerCommentsAndLines(t *testing.T) {
	runLexerTests(t, []lexerTestCase{
		{
			name:  "comment to end of line",
			input: "a // ignored ( ) \"\nb",
			expected: []types.Token{
				tok(types.TokenIdentifier, "a", 1),
				tok(types.TokenIdentifier, "b", 2),
				eofAt(2),
			},
		},
		{
			name:     "empty input",
			input:    "",
			expected: []types.Token{eofAt(1)},
		},
		{
			name:     "only whitespace",
			input:    " \t\r\n\n",
			expected: []types.Token{eofAt(3)},
		},
	})
}

func TestLexerErrors(t *testing.T) {
	t.Run("unterminated string", func(t *testing.T) {
		tokens, err := parser.Scan(`"abc`)
		if err == nil {
			t.Fatal("expected an error")
		}
		var list types.ErrorList
		if !errors.As(err, &list) || len(list) != 1 {
			t.Fatalf("expected one diagnostic, got %v", err)
		}
		if list[0].Code != types.ErrStringNotClosed {
			t.Errorf("code = %s, want %s", list[0].Code, types.ErrStringNotClosed)
		}
		if got := list[0].Error(); got != "[line 1] Error: Unterminated string." {
			t.Errorf("message = %q", got)
		}
		if len(tokens) != 1 || tokens[0].Kind != types.TokenEOF {
			t.Errorf("expected only EOF, got %v", tokens)
		}
	})

	t.Run("unexpected character keeps scanning", func(t *testing.T) {
		tokens, err := parser.Scan("a @ b # c")
		var list types.ErrorList
		if !errors.As(err, &list) || len(list) != 2 {
			t.Fatalf("expected two diagnostics, got %v", err)
		}
		for _, e := range list {
			if e.Message != "Unexpected character." {
				t.Errorf("message = %q", e.Message)
			}
		}
		want := []types.Token{
			tok(types.TokenIdentifier, "a", 1),
			tok(types.TokenIdentifier, "b", 1),
			tok(types.TokenIdentifier, "c", 1),
			eofAt(1),
		}
		if diff := cmp.Diff(want, tokens); diff != "" {
			t.Errorf("tokens mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestLexerNextAfterEOF(t *testing.T) {
	l := parser.NewLexer("x")
	if got := l.Next(); got.Kind != types.TokenIdentifier {
		t.Fatalf("first token = %v", got)
	}
	for i := 0; i < 3; i++ {
		if got := l.Next(); got.Kind != types.TokenEOF {
			t.Fatalf("call %d: expected EOF, got %v", i, got)
		}
	}
}
