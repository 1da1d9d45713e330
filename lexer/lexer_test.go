package lexer

import (
	"nilan/token"
	"reflect"
	"testing"
)

// stripPositions zeroes Line/Column on a copy of each token so tests can
// assert on type/lexeme/literal shape without hard-coding column math.
func stripPositions(tokens []token.Token) []token.Token {
	out := make([]token.Token, len(tokens))
	for i, tok := range tokens {
		tok.Line = 0
		tok.Column = 0
		out[i] = tok
	}
	return out
}

func runTestSuccess(t *testing.T, scanner *Lexer, expected []token.Token) {
	t.Run("ValidTokenScan", func(t *testing.T) {
		got, err := scanner.Scan()
		if err != nil {
			t.Errorf("scanner.Scan() raised an error: %v", err)
		}

		if !reflect.DeepEqual(stripPositions(got), stripPositions(expected)) {
			t.Errorf("scanner.Scan() = %v, want %v", got, expected)
		}
	})
}

func TestOperatorsSuccess(t *testing.T) {
	expected := []token.Token{
		token.CreateToken(token.EQUAL_EQUAL, 0, 0),
		token.CreateToken(token.DIV_ASSIGN, 0, 0),
		token.CreateToken(token.MULT, 0, 0),
		token.CreateToken(token.ADD, 0, 0),
		token.CreateToken(token.LARGER, 0, 0),
		token.CreateToken(token.SUB, 0, 0),
		token.CreateToken(token.LESS, 0, 0),
		token.CreateToken(token.NOT_EQUAL, 0, 0),
		token.CreateToken(token.LESS_EQUAL, 0, 0),
		token.CreateToken(token.LARGER_EQUAL, 0, 0),
		token.CreateToken(token.BANG, 0, 0),
		token.CreateToken(token.BANG, 0, 0),
		token.CreateToken(token.EOF, 0, 0),
	}
	scanner := CreateLexer("==/=*+>-<!=<=>=!!")
	runTestSuccess(t, scanner, expected)
}

func TestPunctuationSuccess(t *testing.T) {
	expected := []token.Token{
		token.CreateToken(token.LPA, 0, 0),
		token.CreateToken(token.RPA, 0, 0),
		token.CreateToken(token.LCUR, 0, 0),
		token.CreateToken(token.RCUR, 0, 0),
		token.CreateToken(token.LBRACK, 0, 0),
		token.CreateToken(token.RBRACK, 0, 0),
		token.CreateToken(token.COLON, 0, 0),
		token.CreateToken(token.COMMA, 0, 0),
		token.CreateToken(token.DOT, 0, 0),
		token.CreateToken(token.SEMICOLON, 0, 0),
		token.CreateToken(token.EOF, 0, 0),
	}
	scanner := CreateLexer("(){}[]:,.;")
	runTestSuccess(t, scanner, expected)
}

func TestLongestMatchOperators(t *testing.T) {
	expected := []token.Token{
		token.CreateToken(token.POW_ASSIGN, 0, 0),
		token.CreateToken(token.POW, 0, 0),
		token.CreateToken(token.MULT, 0, 0),
		token.CreateToken(token.FLOORDIV_ASSIGN, 0, 0),
		token.CreateToken(token.FLOORDIV, 0, 0),
		token.CreateToken(token.STRICT_EQUAL, 0, 0),
		token.CreateToken(token.EQUAL_EQUAL, 0, 0),
		token.CreateToken(token.EOF, 0, 0),
	}
	scanner := CreateLexer("**=***//=// =====")
	runTestSuccess(t, scanner, expected)
}

func TestNewlineIsSignificant(t *testing.T) {
	expected := []token.Token{
		token.CreateToken(token.IDENTIFIER, 0, 0),
		token.CreateToken(token.NEWLINE, 0, 0),
		token.CreateToken(token.IDENTIFIER, 0, 0),
		token.CreateToken(token.EOF, 0, 0),
	}
	expected[0].Lexeme = "a"
	expected[2].Lexeme = "b"
	scanner := CreateLexer("a\nb")
	runTestSuccess(t, scanner, expected)
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  token.Token
	}{
		{"decimal int", "42", token.CreateLiteralToken(token.INT, int64(42), "42", 0, 0)},
		{"float", "3.14", token.CreateLiteralToken(token.FLOAT, 3.14, "3.14", 0, 0)},
		{"hex", "0xFF", token.CreateLiteralToken(token.INT, int64(255), "0xFF", 0, 0)},
		{"octal", "0o17", token.CreateLiteralToken(token.INT, int64(15), "0o17", 0, 0)},
		{"binary", "0b101", token.CreateLiteralToken(token.INT, int64(5), "0b101", 0, 0)},
		{"imaginary", "2i", token.CreateLiteralToken(token.FLOAT, complex(0, 2), "2i", 0, 0)},
		{"underscored", "1_000", token.CreateLiteralToken(token.INT, int64(1000), "1_000", 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanner := CreateLexer(tt.input)
			got, err := scanner.Scan()
			if err != nil {
				t.Fatalf("scanner.Scan() raised an error: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("expected a single literal token followed by EOF, got %v", got)
			}
			got[0].Line, got[0].Column = 0, 0
			if !reflect.DeepEqual(got[0], tt.want) {
				t.Errorf("got %v, want %v", got[0], tt.want)
			}
		})
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"double quoted", `"hello"`, "hello"},
		{"single quoted", `'hello'`, "hello"},
		{"escape sequences", `"a\nb\tc"`, "a\nb\tc"},
		{"hex escape", `"\x41"`, "A"},
		{"unicode escape", "\"\\u0041\"", "A"},
		{"triple quoted multi-line", "\"\"\"line1\nline2\"\"\"", "line1\nline2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanner := CreateLexer(tt.input)
			got, err := scanner.Scan()
			if err != nil {
				t.Fatalf("scanner.Scan() raised an error: %v", err)
			}
			if len(got) != 2 || got[0].TokenType != token.STRING {
				t.Fatalf("expected a single STRING token followed by EOF, got %v", got)
			}
			if got[0].Literal != tt.want {
				t.Errorf("got literal %q, want %q", got[0].Literal, tt.want)
			}
		})
	}
}

func TestUnclosedStringRaisesError(t *testing.T) {
	scanner := CreateLexer(`"unterminated`)
	_, err := scanner.Scan()
	if err == nil {
		t.Error("expected an error for an unclosed string literal, got nil")
	}
}

func TestRegexLiteral(t *testing.T) {
	scanner := CreateLexer("`[a-z]+`")
	got, err := scanner.Scan()
	if err != nil {
		t.Fatalf("scanner.Scan() raised an error: %v", err)
	}
	if len(got) != 2 || got[0].TokenType != token.REGEX || got[0].Literal != "[a-z]+" {
		t.Fatalf("unexpected regex scan result: %v", got)
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	scanner := CreateLexer("if else myVar")
	got, err := scanner.Scan()
	if err != nil {
		t.Fatalf("scanner.Scan() raised an error: %v", err)
	}
	wantTypes := []token.TokenType{token.IF, token.ELSE, token.IDENTIFIER, token.EOF}
	if len(got) != len(wantTypes) {
		t.Fatalf("expected %d tokens, got %d (%v)", len(wantTypes), len(got), got)
	}
	for i, wt := range wantTypes {
		if got[i].TokenType != wt {
			t.Errorf("token %d: got type %v, want %v", i, got[i].TokenType, wt)
		}
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	scanner := CreateLexer("x # this is a comment\ny")
	got, err := scanner.Scan()
	if err != nil {
		t.Fatalf("scanner.Scan() raised an error: %v", err)
	}
	wantTypes := []token.TokenType{token.IDENTIFIER, token.NEWLINE, token.IDENTIFIER, token.EOF}
	if len(got) != len(wantTypes) {
		t.Fatalf("expected %d tokens, got %d (%v)", len(wantTypes), len(got), got)
	}
	for i, wt := range wantTypes {
		if got[i].TokenType != wt {
			t.Errorf("token %d: got type %v, want %v", i, got[i].TokenType, wt)
		}
	}
}

func TestIllegalCharacterRaisesError(t *testing.T) {
	scanner := CreateLexer("$$$")
	_, err := scanner.Scan()
	if err == nil {
		t.Error("expected an error for an illegal character sequence, got nil")
	}
}
