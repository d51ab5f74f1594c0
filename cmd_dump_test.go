package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDumpCmdWritesCASTJSON(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "prog.lead")
	if err := os.WriteFile(srcPath, []byte("fn main(): i32 { return 1 + 2; }"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(cwd)

	cmd := &dumpCmd{}
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	cmd.SetFlags(fs)
	if err := fs.Parse([]string{"-cast", "prog.lead"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	status := cmd.Execute(context.Background(), fs)
	if status != 0 {
		t.Fatalf("dump failed with exit status %v", status)
	}

	out, err := os.ReadFile("prog.json")
	if err != nil {
		t.Fatalf("expected prog.json to exist: %v", err)
	}
	if !strings.Contains(string(out), "\"Name\"") && !strings.Contains(string(out), "\"Text\"") {
		t.Fatalf("expected JSON dump of the lowered C AST, got %s", out)
	}
	var parsed any
	if err := json.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("dump output is not valid JSON: %v", err)
	}
}
