package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mgomes/clairscript/clair"
)

func TestRunCLIHelp(t *testing.T) {
	if err := runCLI([]string{"clair", "help"}); err != nil {
		t.Fatalf("runCLI help failed: %v", err)
	}
}

func TestRunCLIInvalidCommand(t *testing.T) {
	err := runCLI([]string{"clair", "unknown"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCLIWithoutCommand(t *testing.T) {
	err := runCLI([]string{"clair"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseCommandRequiresTokenFile(t *testing.T) {
	err := parseCommand(nil)
	if err == nil {
		t.Fatalf("expected token file error")
	}
	if !strings.Contains(err.Error(), "token file required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseCommandRejectsUnknownFormat(t *testing.T) {
	path := writeTokenFile(t, t.TempDir(), "x.tokens.json", "", declTokens())
	err := parseCommand([]string{"-format", "yaml", path})
	if err == nil || !strings.Contains(err.Error(), `unknown format "yaml"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseCommandPrintsTree(t *testing.T) {
	path := writeTokenFile(t, t.TempDir(), "decl.tokens.json", "", declTokens())

	out, err := captureStdout(t, func() error {
		return parseCommand([]string{path})
	})
	if err != nil {
		t.Fatalf("parseCommand failed: %v", err)
	}
	want := "Program @1:1\n  VariableDeclaration x @1:1\n    Literal 5 @1:10\n"
	if out != want {
		t.Fatalf("unexpected tree:\n%s", out)
	}
}

func TestParseCommandPrintsJSON(t *testing.T) {
	path := writeTokenFile(t, t.TempDir(), "decl.tokens.json", "", declTokens())

	out, err := captureStdout(t, func() error {
		return parseCommand([]string{"-format", "json", path})
	})
	if err != nil {
		t.Fatalf("parseCommand failed: %v", err)
	}
	for _, want := range []string{`"type": "VariableDeclaration"`, `"name": "x"`, `"value": 5`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output, got %q", want, out)
		}
	}
}

func TestParseCommandReportsSyntaxError(t *testing.T) {
	path := writeTokenFile(t, t.TempDir(), "bad.tokens.json", "si vrai {", unclosedIfTokens())

	err := parseCommand([]string{path})
	if err == nil {
		t.Fatalf("expected syntax error")
	}
	var syntaxErr *clair.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *clair.SyntaxError in chain, got %v", err)
	}
	if syntaxErr.Line() != 1 {
		t.Fatalf("unexpected error line %d", syntaxErr.Line())
	}
	if !strings.Contains(err.Error(), "--> ligne 1") {
		t.Fatalf("expected code frame from stream source, got %v", err)
	}
}

func TestParseCommandLimitsNestingByDefault(t *testing.T) {
	tokens := make([]clair.Token, 0, defaultMaxNesting+2)
	tokens = append(tokens, kw("montre", 1, 1))
	for i := 0; i <= defaultMaxNesting; i++ {
		tokens = append(tokens, punct("(", 1, 8+i))
	}
	path := writeTokenFile(t, t.TempDir(), "deep.tokens.json", "", tokens)

	err := parseCommand([]string{path})
	var syntaxErr *clair.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *clair.SyntaxError, got %v", err)
	}
	if !strings.Contains(syntaxErr.Msg, "Imbrication trop profonde (limite 10000)") {
		t.Fatalf("unexpected error: %v", err)
	}

	err = parseCommand([]string{"-max-nesting", "0", path})
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *clair.SyntaxError, got %v", err)
	}
	if !strings.Contains(syntaxErr.Msg, "fin de l'entrée") {
		t.Fatalf("expected end-of-input error without a limit, got %v", err)
	}
}

func TestParseCommandReportsStreamError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.tokens.json")
	if err := os.WriteFile(path, []byte(`{"version": "3.0.0", "tokens": []}`), 0o644); err != nil {
		t.Fatalf("write token file: %v", err)
	}

	err := parseCommand([]string{path})
	var streamErr *clair.StreamError
	if !errors.As(err, &streamErr) {
		t.Fatalf("expected *clair.StreamError, got %v", err)
	}
}

func kw(value string, line, column int) clair.Token {
	return clair.NewToken(clair.TokenKeyword, value, line, column)
}

func ident(value string, line, column int) clair.Token {
	return clair.NewToken(clair.TokenIdentifier, value, line, column)
}

func punct(value string, line, column int) clair.Token {
	return clair.NewToken(clair.TokenPunctuation, value, line, column)
}

func str(value string, line, column int) clair.Token {
	return clair.NewToken(clair.TokenString, value, line, column)
}

// declTokens is `soit x = 5`.
func declTokens() []clair.Token {
	return []clair.Token{
		kw("soit", 1, 1),
		ident("x", 1, 6),
		punct("=", 1, 8),
		clair.NumberToken(5, 1, 10),
	}
}

// unclosedIfTokens is `si vrai {`.
func unclosedIfTokens() []clair.Token {
	return []clair.Token{
		kw("si", 1, 1),
		kw("vrai", 1, 4),
		punct("{", 1, 9),
	}
}

// unreachableTokens is
//
//	fonction f() {
//	  renvoie 1
//	  montre 2
//	}
func unreachableTokens() []clair.Token {
	return []clair.Token{
		kw("fonction", 1, 1),
		ident("f", 1, 10),
		punct("(", 1, 11),
		punct(")", 1, 12),
		punct("{", 1, 14),
		kw("renvoie", 2, 3),
		clair.NumberToken(1, 2, 11),
		kw("montre", 3, 3),
		clair.NumberToken(2, 3, 10),
		punct("}", 4, 1),
	}
}

func mustParseTokens(t *testing.T, tokens []clair.Token) *clair.Program {
	t.Helper()
	program, err := clair.Parse(tokens)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return program
}

func writeTokenFile(t *testing.T, dir, name, source string, tokens []clair.Token) string {
	t.Helper()
	var buf bytes.Buffer
	if err := clair.EncodeTokenStream(&buf, &clair.TokenStream{Source: source, Tokens: tokens}); err != nil {
		t.Fatalf("encode tokens: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write token file: %v", err)
	}
	return path
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()
	_ = w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	if _, copyErr := io.Copy(&buf, r); copyErr != nil {
		t.Fatalf("read stdout: %v", copyErr)
	}
	_ = r.Close()
	return buf.String(), runErr
}
