package token

import (
	"testing"
)

func TestCreateToken(t *testing.T) {
	tests := []struct {
		name      string
		tokenType TokenType
		line      int32
		column    int
		want      Token
	}{
		{
			name:      "Create ASSIGN token",
			tokenType: ASSIGN,
			line:      1,
			column:    3,
			want:      Token{TokenType: ASSIGN, Lexeme: "=", Line: 1, Column: 3},
		},
		{
			name:      "Create LPA token",
			tokenType: LPA,
			line:      0,
			column:    0,
			want:      Token{TokenType: LPA, Lexeme: "(", Line: 0, Column: 0},
		},
		{
			name:      "Create EOF token",
			tokenType: EOF,
			line:      4,
			column:    0,
			want:      Token{TokenType: EOF, Lexeme: "EOF", Line: 4, Column: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CreateToken(tt.tokenType, tt.line, tt.column)
			if got != tt.want {
				t.Errorf("CreateToken() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCreateLiteralToken(t *testing.T) {
	got := CreateLiteralToken(INT, int64(42), "42", 2, 5)
	want := Token{TokenType: INT, Lexeme: "42", Literal: int64(42), Line: 2, Column: 5}
	if got != want {
		t.Errorf("CreateLiteralToken() = %v, want %v", got, want)
	}
}

func TestIsAssignOperator(t *testing.T) {
	tests := []struct {
		tokenType TokenType
		want      bool
	}{
		{ASSIGN, true},
		{ADD_ASSIGN, true},
		{POW_ASSIGN, true},
		{ADD, false},
		{IDENTIFIER, false},
	}

	for _, tt := range tests {
		if got := IsAssignOperator(tt.tokenType); got != tt.want {
			t.Errorf("IsAssignOperator(%v) = %v, want %v", tt.tokenType, got, tt.want)
		}
	}
}
