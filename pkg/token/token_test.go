package token

import "testing"

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ      Type
		expected string
	}{
		{LeftParen, "LEFT_PAREN"},
		{BangEqual, "BANG_EQUAL"},
		{Identifier, "IDENTIFIER"},
		{Var, "VAR"},
		{EOF, "EOF"},
		{Type(-1), "Type(-1)"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.expected {
			t.Errorf("Type %d: expected %q, got %q", tt.typ, tt.expected, got)
		}
	}
}

func TestTokenString(t *testing.T) {
	withLiteral := Token{Type: Number, Lexeme: "42", Literal: 42.0, Line: 1}
	if got := withLiteral.String(); got != "NUMBER 42 42" {
		t.Errorf("unexpected string %q", got)
	}

	bare := Token{Type: Semicolon, Lexeme: ";", Line: 1}
	if got := bare.String(); got != "SEMICOLON ;" {
		t.Errorf("unexpected string %q", got)
	}
}
