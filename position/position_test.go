package position

import "testing"

func TestAdvance(t *testing.T) {
	tests := []struct {
		name  string
		start Position
		chr   rune
		want  Position
	}{
		{"plain char", Position{Index: 2, Line: 0, Column: 2}, 'x', Position{Index: 3, Line: 0, Column: 3}},
		{"newline resets column", Position{Index: 5, Line: 1, Column: 4}, '\n', Position{Index: 6, Line: 2, Column: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start.Advance(tt.chr)
			if got != tt.want {
				t.Errorf("Advance() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEOFSentinel(t *testing.T) {
	p := EOF()
	if !p.IsEOF() {
		t.Fatalf("EOF() should report IsEOF() == true")
	}
	if New().IsEOF() {
		t.Fatalf("New() should not be EOF")
	}
}

func TestShowOnTextSingleLine(t *testing.T) {
	src := "let x = 1;"
	span := NewSpan(Position{Index: 4, Line: 0, Column: 4}, Position{Index: 5, Line: 0, Column: 5})
	got := span.ShowOnText(src)
	want := "let x = 1;\n    ^"
	if got != want {
		t.Errorf("ShowOnText() = %q, want %q", got, want)
	}
}

func TestShowOnTextMultiLine(t *testing.T) {
	src := "fn main(): i32 {\n\treturn 1;\n}"
	span := NewSpan(Position{Index: 0, Line: 0, Column: 0}, Position{Index: 15, Line: 1, Column: 9})
	got := span.ShowOnText(src)
	if got == "" {
		t.Fatalf("expected non-empty rendering")
	}
}

func TestShowOnTextEOFSentinel(t *testing.T) {
	src := "let x = 1;"
	span := EOFSpan()
	got := span.ShowOnText(src)
	want := "let x = 1;\n          ^"
	if got != want {
		t.Errorf("ShowOnText() = %q, want %q", got, want)
	}
}
