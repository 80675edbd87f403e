package clair

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// SyntaxError reports the first grammar violation met by the parser.
type SyntaxError struct {
	Pos Position
	Msg string
	// Found is the offending token, nil when the input ended early.
	Found  *Token
	source string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[Ligne %d] %s", e.Pos.Line, e.Msg)
	if frame := e.codeFrame(); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

// codeFrame shows the offending source line with a caret under the column.
// It is empty when the source is unknown or does not reach the line.
func (e *SyntaxError) codeFrame() string {
	if e.source == "" || e.Pos.Line <= 0 {
		return ""
	}
	text, ok := sourceLine(e.source, e.Pos.Line)
	if !ok {
		return ""
	}

	column := min(max(e.Pos.Column, 1), utf8.RuneCountInString(text)+1)
	gutter := strconv.Itoa(e.Pos.Line)

	var b strings.Builder
	fmt.Fprintf(&b, "  --> ligne %d, colonne %d\n", e.Pos.Line, column)
	fmt.Fprintf(&b, " %s | %s\n", gutter, text)
	fmt.Fprintf(&b, " %*s | %*s^", len(gutter), "", column-1, "")
	return b.String()
}

func sourceLine(source string, n int) (string, bool) {
	i := 0
	for line := range strings.Lines(source) {
		i++
		if i == n {
			line = strings.TrimRight(line, "\r\n")
			return strings.ReplaceAll(line, "\t", " "), true
		}
	}
	return "", false
}

// Line is the source line the error points at.
func (e *SyntaxError) Line() int {
	return e.Pos.Line
}

func (p *parser) errorAt(tok Token, msg string) error {
	found := tok
	return &SyntaxError{Pos: tok.Pos, Msg: msg, Found: &found, source: p.source}
}

// errorAtEnd reports input that ended before a construct was complete. The
// anchor is the token that opened the construct.
func (p *parser) errorAtEnd(anchor Token, msg string) error {
	return &SyntaxError{Pos: anchor.Pos, Msg: msg + " (fin de l'entrée)", source: p.source}
}

// errorExpected reports that the current token does not fit msg, a
// complete "... attendu" phrase. At end of input the error points at anchor.
func (p *parser) errorExpected(anchor Token, msg string) error {
	tok, ok := p.peek()
	if !ok {
		return p.errorAtEnd(anchor, msg)
	}
	return p.errorAt(tok, fmt.Sprintf("%s (trouvé: %s)", msg, tokenLabel(tok)))
}

func (p *parser) errorUnexpected(tok Token) error {
	return p.errorAt(tok, fmt.Sprintf("Expression inattendue: %s", tok.Value))
}

func tokenLabel(tok Token) string {
	switch tok.Kind {
	case TokenNumber:
		return "nombre " + tok.Value
	case TokenString:
		return fmt.Sprintf("chaîne %q", tok.Value)
	case TokenIdentifier:
		return "identifiant " + tok.Value
	case TokenKeyword:
		return fmt.Sprintf("mot-clé '%s'", tok.Value)
	default:
		return fmt.Sprintf("'%s'", tok.Value)
	}
}
