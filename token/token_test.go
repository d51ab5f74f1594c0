package token

import (
	"testing"

	"lead/position"
)

func TestKeywordsBooleanCaseFolding(t *testing.T) {
	tests := []struct {
		lexeme string
		want   Type
	}{
		{"true", TRUE},
		{"True", TRUE},
		{"false", FALSE},
		{"False", FALSE},
		{"xor", XOR},
	}

	for _, tt := range tests {
		got, ok := Keywords[tt.lexeme]
		if !ok {
			t.Fatalf("Keywords[%q] missing", tt.lexeme)
		}
		if got != tt.want {
			t.Errorf("Keywords[%q] = %v, want %v", tt.lexeme, got, tt.want)
		}
	}
}

func TestKeywordsNotAKeyword(t *testing.T) {
	if _, ok := Keywords["myVar"]; ok {
		t.Fatalf("myVar should not be a keyword")
	}
}

func TestTokenString(t *testing.T) {
	tok := New(PLUS, "+", position.Span{})
	want := `Token{Type: +, Lexeme: "+"}`
	if tok.String() != want {
		t.Errorf("String() = %q, want %q", tok.String(), want)
	}
}
