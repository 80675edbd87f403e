package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mgomes/clairscript/clair"
)

func TestCheckCommandRequiresPath(t *testing.T) {
	err := checkCommand(nil)
	if err == nil || !strings.Contains(err.Error(), "path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckCommandReportsFailures(t *testing.T) {
	dir := t.TempDir()
	writeTokenFile(t, dir, "ok.tokens.json", "", declTokens())
	bad := writeTokenFile(t, dir, filepath.Join("nested", "bad.tokens.json"), "", unclosedIfTokens())
	if err := os.WriteFile(filepath.Join(dir, "notes.json"), []byte("not tokens"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := captureStdout(t, func() error {
		return checkCommand([]string{"-j", "2", dir})
	})
	if err == nil {
		t.Fatalf("expected check failure")
	}
	if !strings.Contains(err.Error(), "1 of 2 file(s) failed") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, bad) || !strings.Contains(out, "[Ligne 1]") {
		t.Fatalf("expected failure line for %s, got %q", bad, out)
	}
}

func TestCheckCommandAllValid(t *testing.T) {
	dir := t.TempDir()
	writeTokenFile(t, dir, "a.tokens.json", "", declTokens())
	writeTokenFile(t, dir, "b.tokens.json", "", unreachableTokens())

	out, err := captureStdout(t, func() error {
		return checkCommand([]string{dir})
	})
	if err != nil {
		t.Fatalf("checkCommand failed: %v", err)
	}
	if strings.TrimSpace(out) != "2 file(s) ok" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCheckFilesKeepsFileOrder(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i, name := range []string{"a", "b", "c", "d", "e"} {
		tokens := declTokens()
		if i%2 == 1 {
			tokens = unclosedIfTokens()
		}
		files = append(files, writeTokenFile(t, dir, name+".tokens.json", "", tokens))
	}

	failures, err := checkFiles(context.Background(), files, clair.Config{}, 3)
	if err != nil {
		t.Fatalf("checkFiles failed: %v", err)
	}
	if len(failures) != 2 {
		t.Fatalf("expected 2 failures, got %d (%v)", len(failures), failures)
	}
	if !strings.HasPrefix(failures[0].Error(), files[1]) || !strings.HasPrefix(failures[1].Error(), files[3]) {
		t.Fatalf("failures out of order: %v", failures)
	}
	var syntaxErr *clair.SyntaxError
	if !errors.As(failures[0], &syntaxErr) {
		t.Fatalf("expected syntax error, got %v", failures[0])
	}
}

func TestCheckFilesStopsOnCancelledContext(t *testing.T) {
	path := writeTokenFile(t, t.TempDir(), "a.tokens.json", "", declTokens())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := checkFiles(ctx, []string{path}, clair.Config{}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCollectTokenFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeTokenFile(t, dir, "a.tokens.json", "", declTokens())
	b := writeTokenFile(t, dir, filepath.Join("sub", "b.tokens.json"), "", declTokens())
	other := filepath.Join(dir, "other.json")
	if err := os.WriteFile(other, []byte("[]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	files, err := collectTokenFiles([]string{dir, a, other})
	if err != nil {
		t.Fatalf("collectTokenFiles failed: %v", err)
	}
	want := []string{a, other, b}
	if strings.Join(files, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected files:\n%v\nwant:\n%v", files, want)
	}

	if _, err := collectTokenFiles([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Fatalf("expected stat error for missing target")
	}
}
