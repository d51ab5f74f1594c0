package lexer

import (
	"testing"

	"lead/token"
)

func typesOf(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks, err := New("let x: i32 = 5 << 2;").Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Type{
		token.LET, token.IDENTIFIER, token.COLON, token.I32, token.ASSIGN,
		token.NUMBER, token.SHL, token.NUMBER, token.SEMICOLON, token.EOF,
	}
	got := typesOf(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanBooleanKeywordBothCases(t *testing.T) {
	toks, err := New("true xor False;").Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Type{token.TRUE, token.XOR, token.FALSE, token.SEMICOLON, token.EOF}
	got := typesOf(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanNumberWithUnderscoreSeparators(t *testing.T) {
	toks, err := New("1_000_000;").Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Type != token.NUMBER || toks[0].Lexeme != "1000000" {
		t.Errorf("got %+v, want cleaned lexeme 1000000", toks[0])
	}
}

func TestScanStringEscapes(t *testing.T) {
	toks, err := New(`"a\tb\n\"c\"";`).Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "a\tb\n\"c\""
	if toks[0].Literal.(string) != want {
		t.Errorf("got %q, want %q", toks[0].Literal, want)
	}
}

func TestScanCharEscape(t *testing.T) {
	toks, err := New(`'\n';`).Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Type != token.CHAR || toks[0].Literal.(string) != "\n" {
		t.Errorf("got %+v", toks[0])
	}
}

func TestScanUnclosedStringIsAnError(t *testing.T) {
	_, err := New(`"unterminated`).Scan()
	if err == nil {
		t.Fatalf("expected an error for an unclosed string literal")
	}
}

func TestScanDirective(t *testing.T) {
	toks, err := New(`#import "lib";`).Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Type{token.HASH, token.IMPORT, token.STRING, token.SEMICOLON, token.EOF}
	got := typesOf(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanComment(t *testing.T) {
	toks, err := New("1; # trailing comment\n2;").Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Type{token.NUMBER, token.SEMICOLON, token.NUMBER, token.SEMICOLON, token.EOF}
	got := typesOf(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
