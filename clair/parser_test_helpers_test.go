package clair

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/require"
)

// scan is a minimal source-to-token converter used to build test fixtures.
// It knows numbers, double-quoted strings without escapes, words, and the
// punctuation of the language.
func scan(src string) ([]Token, error) {
	var toks []Token
	runes := []rune(src)
	line, col := 1, 1

	for i := 0; i < len(runes); {
		r := runes[i]
		startLine, startCol := line, col
		advance := func(n int) {
			i += n
			col += n
		}

		switch {
		case r == '\n':
			i++
			line++
			col = 1
		case unicode.IsSpace(r):
			advance(1)
		case unicode.IsDigit(r):
			j := i
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			if j+1 < len(runes) && runes[j] == '.' && unicode.IsDigit(runes[j+1]) {
				j++
				for j < len(runes) && unicode.IsDigit(runes[j]) {
					j++
				}
			}
			text := string(runes[i:j])
			n, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, err
			}
			tok := NumberToken(n, startLine, startCol)
			tok.Value = text
			toks = append(toks, tok)
			advance(j - i)
		case r == '"':
			j := i + 1
			for j < len(runes) && runes[j] != '"' {
				if runes[j] == '\n' {
					return nil, fmt.Errorf("%d:%d: unterminated string", startLine, startCol)
				}
				j++
			}
			if j >= len(runes) {
				return nil, fmt.Errorf("%d:%d: unterminated string", startLine, startCol)
			}
			toks = append(toks, NewToken(TokenString, string(runes[i+1:j]), startLine, startCol))
			advance(j + 1 - i)
		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			word := string(runes[i:j])
			kind := TokenIdentifier
			if LookupKeyword(word) != KeywordNone {
				kind = TokenKeyword
			}
			toks = append(toks, NewToken(kind, word, startLine, startCol))
			advance(j - i)
		default:
			if i+1 < len(runes) {
				switch pair := string(runes[i : i+2]); pair {
				case "==", "!=", "<=", ">=":
					toks = append(toks, NewToken(TokenPunctuation, pair, startLine, startCol))
					advance(2)
					continue
				}
			}
			if !strings.ContainsRune("=+-*/.<>(){}[],:!", r) {
				return nil, fmt.Errorf("%d:%d: unexpected character %q", startLine, startCol, r)
			}
			toks = append(toks, NewToken(TokenPunctuation, string(r), startLine, startCol))
			advance(1)
		}
	}
	return toks, nil
}

func scanTokens(t testing.TB, src string) []Token {
	t.Helper()
	toks, err := scan(src)
	require.NoError(t, err)
	return toks
}

func mustParse(t testing.TB, src string) *Program {
	t.Helper()
	program, err := Parse(scanTokens(t, src))
	require.NoError(t, err)
	require.NotNil(t, program)
	return program
}

func parseSyntaxError(t testing.TB, src string) *SyntaxError {
	t.Helper()
	program, err := ParseConfig(scanTokens(t, src), Config{})
	require.Error(t, err)
	require.Nil(t, program, "no partial AST on failure")
	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr), "expected *SyntaxError, got %T", err)
	return syntaxErr
}

// parseExpr parses a single expression statement and returns its expression.
func parseExpr(t testing.TB, src string) Expression {
	t.Helper()
	program := mustParse(t, src)
	require.Len(t, program.Body, 1)
	stmt, ok := program.Body[0].(*ExprStmt)
	require.True(t, ok, "expected expression statement, got %T", program.Body[0])
	return stmt.Expr
}

// sexpr renders an expression compactly, ignoring positions.
func sexpr(expr Expression) string {
	switch e := expr.(type) {
	case nil:
		return "<nil>"
	case *Literal:
		return FormatLiteral(e.Value)
	case *Identifier:
		return e.Name
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", e.Operator, sexpr(e.Left), sexpr(e.Right))
	case *UnaryExpr:
		return fmt.Sprintf("(%s %s)", e.Operator, sexpr(e.Right))
	case *AssignExpr:
		return fmt.Sprintf("(= %s %s)", sexpr(e.Left), sexpr(e.Right))
	case *MemberExpr:
		return fmt.Sprintf("(index %s %s)", sexpr(e.Object), sexpr(e.Property))
	case *CallExpr:
		parts := []string{"call", e.Callee}
		for _, a := range e.Args {
			parts = append(parts, sexpr(a))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case *NewExpr:
		return "(nouveau " + e.ClassName + ")"
	case *ListLiteral:
		parts := make([]string, 0, len(e.Elements))
		for _, el := range e.Elements {
			parts = append(parts, sexpr(el))
		}
		return "[" + strings.Join(parts, " ") + "]"
	case *ObjectLiteral:
		parts := make([]string, 0, len(e.Pairs))
		for _, pair := range e.Pairs {
			parts = append(parts, pair.Key+": "+sexpr(pair.Value))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("<%T>", expr)
	}
}
