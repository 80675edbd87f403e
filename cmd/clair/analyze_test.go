package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mgomes/clairscript/clair"
)

func TestAnalyzeCommandRequiresTokenFile(t *testing.T) {
	err := analyzeCommand(nil)
	if err == nil || !strings.Contains(err.Error(), "token file required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyzeCommandNoIssues(t *testing.T) {
	path := writeTokenFile(t, t.TempDir(), "decl.tokens.json", "", declTokens())

	out, err := captureStdout(t, func() error {
		return analyzeCommand([]string{path})
	})
	if err != nil {
		t.Fatalf("analyzeCommand failed: %v", err)
	}
	if !strings.Contains(out, "No issues found") {
		t.Fatalf("unexpected analyze output: %q", out)
	}
}

func TestAnalyzeCommandReportsUnreachableStatements(t *testing.T) {
	path := writeTokenFile(t, t.TempDir(), "f.tokens.json", "", unreachableTokens())

	out, err := captureStdout(t, func() error {
		return analyzeCommand([]string{path})
	})
	if err == nil {
		t.Fatalf("expected analyze command to report lint failures")
	}
	if !strings.Contains(err.Error(), "analysis found 1 issue(s)") {
		t.Fatalf("unexpected analyze error: %v", err)
	}
	if !strings.Contains(out, ":3:3: unreachable statement (f)") {
		t.Fatalf("expected unreachable statement warning, got %q", out)
	}
}

func TestAnalyzeCommandResolvesIncludes(t *testing.T) {
	dir := t.TempDir()
	libDir := t.TempDir()
	writeTokenFile(t, libDir, "outils.clair.tokens.json", "", declTokens())

	// inclure "outils.clair"
	path := writeTokenFile(t, dir, "main.tokens.json", "", []clair.Token{
		kw("inclure", 1, 1),
		str("outils.clair", 1, 9),
	})

	out, err := captureStdout(t, func() error {
		return analyzeCommand([]string{path})
	})
	if err == nil || !strings.Contains(out, `include "outils.clair" not found`) {
		t.Fatalf("expected missing include warning, got %q (%v)", out, err)
	}

	out, err = captureStdout(t, func() error {
		return analyzeCommand([]string{"-include-path", libDir, path})
	})
	if err != nil {
		t.Fatalf("analyzeCommand with include path failed: %v (%q)", err, out)
	}
}

func TestAnalyzeProgramTerminatingBranches(t *testing.T) {
	// si x { renvoie 1 } sinon { lance 2 }
	// montre 3
	program := mustParseTokens(t, []clair.Token{
		kw("si", 1, 1),
		ident("x", 1, 4),
		punct("{", 1, 6),
		kw("renvoie", 1, 8),
		clair.NumberToken(1, 1, 16),
		punct("}", 1, 18),
		kw("sinon", 1, 20),
		punct("{", 1, 26),
		kw("lance", 1, 28),
		clair.NumberToken(2, 1, 34),
		punct("}", 1, 36),
		kw("montre", 2, 1),
		clair.NumberToken(3, 2, 8),
	})

	warnings := analyzeProgram(program, nil)
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %#v", warnings)
	}
	if warnings[0].Pos.Line != 2 || warnings[0].Context != programContext {
		t.Fatalf("unexpected warning: %#v", warnings[0])
	}
}

func TestAnalyzeProgramIfWithoutElseDoesNotTerminate(t *testing.T) {
	// si x { renvoie 1 }
	// montre 3
	program := mustParseTokens(t, []clair.Token{
		kw("si", 1, 1),
		ident("x", 1, 4),
		punct("{", 1, 6),
		kw("renvoie", 1, 8),
		clair.NumberToken(1, 1, 16),
		punct("}", 1, 18),
		kw("montre", 2, 1),
		clair.NumberToken(3, 2, 8),
	})

	if warnings := analyzeProgram(program, nil); len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %#v", warnings)
	}
}

func TestAnalyzeProgramDuplicates(t *testing.T) {
	// classe A {
	//   fonction f() { }
	//   prive fonction f() { }
	// }
	// soit o = {a: 1, a: 2}
	program := mustParseTokens(t, []clair.Token{
		kw("classe", 1, 1),
		ident("A", 1, 8),
		punct("{", 1, 10),
		kw("fonction", 2, 3),
		ident("f", 2, 12),
		punct("(", 2, 13),
		punct(")", 2, 14),
		punct("{", 2, 16),
		punct("}", 2, 18),
		kw("prive", 3, 3),
		kw("fonction", 3, 9),
		ident("f", 3, 18),
		punct("(", 3, 19),
		punct(")", 3, 20),
		punct("{", 3, 22),
		punct("}", 3, 24),
		punct("}", 4, 1),
		kw("soit", 5, 1),
		ident("o", 5, 6),
		punct("=", 5, 8),
		punct("{", 5, 10),
		ident("a", 5, 11),
		punct(":", 5, 12),
		clair.NumberToken(1, 5, 14),
		punct(",", 5, 15),
		ident("a", 5, 17),
		punct(":", 5, 18),
		clair.NumberToken(2, 5, 20),
		punct("}", 5, 21),
	})

	warnings := analyzeProgram(program, nil)
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %#v", warnings)
	}
	if warnings[0].Message != `duplicate method "f" (first declared on line 2)` || warnings[0].Pos.Line != 3 {
		t.Fatalf("unexpected method warning: %#v", warnings[0])
	}
	if warnings[1].Message != `duplicate key "a" in object literal` || warnings[1].Pos.Column != 20 {
		t.Fatalf("unexpected key warning: %#v", warnings[1])
	}
}

func TestAnalyzeProgramRejectsEscapingInclude(t *testing.T) {
	// inclure "lib/../../secret"
	program := mustParseTokens(t, []clair.Token{
		kw("inclure", 1, 1),
		str("lib/../../secret", 1, 9),
	})

	warnings := analyzeProgram(program, nil)
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "escapes the search root") {
		t.Fatalf("unexpected warnings: %#v", warnings)
	}
}

func TestComputeIncludePathsIncludesTokenDirAndDedupesExtras(t *testing.T) {
	tokenDir := t.TempDir()
	tokenPath := filepath.Join(tokenDir, "main.tokens.json")
	extraDir := t.TempDir()

	dirs, err := computeIncludePaths(tokenPath, []string{tokenDir, extraDir, extraDir})
	if err != nil {
		t.Fatalf("computeIncludePaths failed: %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("expected 2 dirs, got %d (%v)", len(dirs), dirs)
	}

	wantToken, _ := filepath.Abs(tokenDir)
	wantExtra, _ := filepath.Abs(extraDir)
	if dirs[0] != wantToken {
		t.Fatalf("expected first dir %q, got %q", wantToken, dirs[0])
	}
	if dirs[1] != wantExtra {
		t.Fatalf("expected second dir %q, got %q", wantExtra, dirs[1])
	}
}

func TestComputeIncludePathsRejectsNonDirectoryExtra(t *testing.T) {
	tokenPath := filepath.Join(t.TempDir(), "main.tokens.json")
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	_, err := computeIncludePaths(tokenPath, []string{file})
	if err == nil {
		t.Fatalf("expected non-directory include path error")
	}
	if !strings.Contains(err.Error(), "is not a directory") {
		t.Fatalf("unexpected error: %v", err)
	}
}
