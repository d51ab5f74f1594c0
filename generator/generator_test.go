package generator

import (
	"strings"
	"testing"

	"lead/analyzer"
	"lead/lexer"
	"lead/parser"
	"lead/transpile"
)

func compile(t *testing.T, src string, isMain bool) string {
	t.Helper()
	toks, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	nodes, err := parser.New(toks).Parse()
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	residual, err := analyzer.Analyze(nodes, isMain)
	if err != nil {
		t.Fatalf("analyzer error: %v", err)
	}
	ir, err := transpile.Lower(residual)
	if err != nil {
		t.Fatalf("transpile error: %v", err)
	}
	return Generate(ir)
}

func TestFoldedReturnRendersAsIntMain(t *testing.T) {
	out := compile(t, "fn main(): i32 { return 1 + 2; }", true)
	if !strings.Contains(out, "int main() {") {
		t.Fatalf("want function header, got %q", out)
	}
	if !strings.Contains(out, "\treturn 3;") {
		t.Fatalf("want tab-indented folded return, got %q", out)
	}
}

func TestViaDerefAssignmentRendersStarPrefix(t *testing.T) {
	out := compile(t, "fn main(): i32 { let x: i32 = 0; var p: ref i32 = ref x; let y: i32 = 1; p = y; return 0; }", true)
	if !strings.Contains(out, "*p = y;") {
		t.Fatalf("want '*p = y;' for a via-deref assignment, got %q", out)
	}
}

func TestFuncDefHasNoTrailingSemicolon(t *testing.T) {
	out := compile(t, "fn main(): i32 { return 0; }", true)
	trimmed := strings.TrimRight(out, "\n")
	if strings.HasSuffix(trimmed, "};") {
		t.Fatalf("FuncDef must not be semicolon-terminated, got %q", out)
	}
	if !strings.HasSuffix(trimmed, "}") {
		t.Fatalf("expected FuncDef to end on '}', got %q", out)
	}
}

func TestIncludeRendersAngleBracketHeader(t *testing.T) {
	out := compile(t, `#include "stdio"; fn main(): i32 { return 0; }`, true)
	if !strings.Contains(out, "#include <stdio.h>") {
		t.Fatalf("want angle-bracket include, got %q", out)
	}
}

func TestFunctionCallArgumentsAreCommaJoined(t *testing.T) {
	out := compile(t, `#extern printf(fmt: str, ...): i32; fn main(): i32 { printf("%d", 1); return 0; }`, true)
	if !strings.Contains(out, `printf("%d", 1)`) {
		t.Fatalf("want rendered call with its args, got %q", out)
	}
}

func TestBinaryOperationsAreParenthesized(t *testing.T) {
	out := compile(t, "fn f(a: i32, b: i32): i32 { return a + b * 2; }", false)
	if !strings.Contains(out, "(a + (b * 2))") {
		t.Fatalf("want fully parenthesized binary tree, got %q", out)
	}
}
