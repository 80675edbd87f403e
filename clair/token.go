package clair

import (
	"errors"
	"math"
	"strconv"
)

// TokenKind identifies the lexical category of a token.
type TokenKind string

const (
	TokenNumber      TokenKind = "NUMBER"
	TokenString      TokenKind = "STRING"
	TokenIdentifier  TokenKind = "IDENTIFIER"
	TokenKeyword     TokenKind = "KEYWORD"
	TokenPunctuation TokenKind = "PUNCTUATION"
)

func (k TokenKind) valid() bool {
	switch k {
	case TokenNumber, TokenString, TokenIdentifier, TokenKeyword, TokenPunctuation:
		return true
	default:
		return false
	}
}

// Position identifies a line and column in the source file, both 1-based.
type Position struct {
	Line   int
	Column int
}

// Token captures lexical information for the parser.
type Token struct {
	Kind TokenKind
	// Value is the literal text of the token. NUMBER tokens keep their
	// spelling here and their numeric value in Number.
	Value  string
	Number float64
	Pos    Position
}

// NumberToken builds a NUMBER token from its numeric value.
func NumberToken(n float64, line, column int) Token {
	return Token{
		Kind:   TokenNumber,
		Value:  strconv.FormatFloat(n, 'g', -1, 64),
		Number: n,
		Pos:    Position{Line: line, Column: column},
	}
}

// NewToken builds a token from its text. A NUMBER token also gets its
// numeric value; spellings parseNumber rejects leave Number at zero and are
// reported by the parser.
func NewToken(kind TokenKind, value string, line, column int) Token {
	tok := Token{Kind: kind, Value: value, Pos: Position{Line: line, Column: column}}
	if kind == TokenNumber {
		if n, err := parseNumber(value); err == nil {
			tok.Number = n
		}
	}
	return tok
}

var errNotFinite = errors.New("not a finite number")

// parseNumber reads a NUMBER spelling. NaN and infinities have no literal
// form in the language and are rejected.
func parseNumber(s string) (float64, error) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, errNotFinite
	}
	return n, nil
}

// numberValue is the value of a NUMBER token, taken from its spelling when
// it has one.
func (t Token) numberValue() (float64, error) {
	if t.Value == "" {
		if math.IsNaN(t.Number) || math.IsInf(t.Number, 0) {
			return 0, errNotFinite
		}
		return t.Number, nil
	}
	return parseNumber(t.Value)
}

// Keyword returns the reserved word carried by a KEYWORD token, or
// KeywordNone for any other token.
func (t Token) Keyword() Keyword {
	if t.Kind != TokenKeyword {
		return KeywordNone
	}
	return LookupKeyword(t.Value)
}

func (t Token) isKeyword(kw Keyword) bool {
	return t.Keyword() == kw
}

func (t Token) isPunct(value string) bool {
	return t.Kind == TokenPunctuation && t.Value == value
}

// Keyword enumerates the reserved words of the language.
type Keyword int

const (
	KeywordNone Keyword = iota
	KeywordSoit
	KeywordMontre
	KeywordSi
	KeywordSinon
	KeywordTantque
	KeywordFonction
	KeywordRenvoie
	KeywordClasse
	KeywordAbstrait
	KeywordHerite
	KeywordDe
	KeywordInterface
	KeywordEssaye
	KeywordAttrape
	KeywordEnfin
	KeywordLance
	KeywordInclure
	KeywordPour
	KeywordChaque
	KeywordDans
	KeywordVrai
	KeywordFaux
	KeywordNul
	KeywordNouveau
	KeywordPrive
	KeywordPublic
	KeywordEt
	KeywordOu
	KeywordNon
	KeywordTypeof

	keywordCount
)

var keywordText = [keywordCount]string{
	KeywordSoit:      "soit",
	KeywordMontre:    "montre",
	KeywordSi:        "si",
	KeywordSinon:     "sinon",
	KeywordTantque:   "tantque",
	KeywordFonction:  "fonction",
	KeywordRenvoie:   "renvoie",
	KeywordClasse:    "classe",
	KeywordAbstrait:  "abstrait",
	KeywordHerite:    "herite",
	KeywordDe:        "de",
	KeywordInterface: "interface",
	KeywordEssaye:    "essaye",
	KeywordAttrape:   "attrape",
	KeywordEnfin:     "enfin",
	KeywordLance:     "lance",
	KeywordInclure:   "inclure",
	KeywordPour:      "pour",
	KeywordChaque:    "chaque",
	KeywordDans:      "dans",
	KeywordVrai:      "vrai",
	KeywordFaux:      "faux",
	KeywordNul:       "nul",
	KeywordNouveau:   "nouveau",
	KeywordPrive:     "prive",
	KeywordPublic:    "public",
	KeywordEt:        "et",
	KeywordOu:        "ou",
	KeywordNon:       "non",
	KeywordTypeof:    "typeof",
}

var keywordsByText = func() map[string]Keyword {
	m := make(map[string]Keyword, len(keywordText))
	for kw, text := range keywordText {
		if text != "" {
			m[text] = Keyword(kw)
		}
	}
	return m
}()

// LookupKeyword maps reserved-word text to its Keyword.
func LookupKeyword(text string) Keyword {
	return keywordsByText[text]
}

// Keywords returns every reserved word in declaration order.
func Keywords() []string {
	out := make([]string, 0, keywordCount-1)
	for _, text := range keywordText[1:] {
		out = append(out, text)
	}
	return out
}

func (k Keyword) String() string {
	if k <= KeywordNone || k >= keywordCount {
		return ""
	}
	return keywordText[k]
}
