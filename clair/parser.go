package clair

import "fmt"

// Config controls optional parser behaviour. The zero value is ready to use.
type Config struct {
	// MaxNesting bounds how deeply statements and expressions may nest.
	// Zero means unlimited.
	MaxNesting int
	// Source is the raw program text the tokens were produced from. When
	// set, syntax errors include a code frame.
	Source string
}

type statementParseFn func(start Token) (Statement, error)

type parser struct {
	tokens []Token
	cursor int

	source     string
	maxNesting int
	nesting    int

	statementFns map[Keyword]statementParseFn
}

// statementKeywords lists the keywords that open a statement. Every entry
// must have a rule registered in newParser.
var statementKeywords = []Keyword{
	KeywordSoit,
	KeywordMontre,
	KeywordSi,
	KeywordTantque,
	KeywordFonction,
	KeywordRenvoie,
	KeywordClasse,
	KeywordAbstrait,
	KeywordInterface,
	KeywordEssaye,
	KeywordLance,
	KeywordInclure,
	KeywordPour,
}

func newParser(tokens []Token, cfg Config) *parser {
	p := &parser{
		tokens:     tokens,
		source:     cfg.Source,
		maxNesting: cfg.MaxNesting,
	}

	p.statementFns = map[Keyword]statementParseFn{
		KeywordSoit:      statementRule(p.parseVarStatement),
		KeywordMontre:    statementRule(p.parsePrintStatement),
		KeywordSi:        statementRule(p.parseIfStatement),
		KeywordTantque:   statementRule(p.parseWhileStatement),
		KeywordFonction:  statementRule(p.parseFunctionStatement),
		KeywordRenvoie:   statementRule(p.parseReturnStatement),
		KeywordClasse:    statementRule(p.parseClassStatement),
		KeywordAbstrait:  statementRule(p.parseAbstractClassStatement),
		KeywordInterface: statementRule(p.parseInterfaceStatement),
		KeywordEssaye:    statementRule(p.parseTryStatement),
		KeywordLance:     statementRule(p.parseThrowStatement),
		KeywordInclure:   statementRule(p.parseIncludeStatement),
		KeywordPour:      statementRule(p.parseForEachStatement),
	}

	return p
}

func statementRule[S Statement](fn func(Token) (S, error)) statementParseFn {
	return func(start Token) (Statement, error) {
		stmt, err := fn(start)
		if err != nil {
			return nil, err
		}
		return stmt, nil
	}
}

// Parse builds the AST for a complete token sequence.
func Parse(tokens []Token) (*Program, error) {
	return ParseConfig(tokens, Config{})
}

// ParseConfig is Parse with explicit configuration. Each call owns its
// cursor, so concurrent calls on distinct token slices are safe.
func ParseConfig(tokens []Token, cfg Config) (*Program, error) {
	return newParser(tokens, cfg).parseProgram()
}

// ParseStream parses a decoded token stream. The stream's source text, when
// present, is used for error code frames unless cfg already sets one.
func ParseStream(stream *TokenStream, cfg Config) (*Program, error) {
	if stream == nil {
		return nil, fmt.Errorf("clair: nil token stream")
	}
	if cfg.Source == "" {
		cfg.Source = stream.Source
	}
	return ParseConfig(stream.Tokens, cfg)
}

func (p *parser) parseProgram() (*Program, error) {
	body := []Statement{}
	for p.cursor < len(p.tokens) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return NewProgram(body), nil
}

// peek returns the current token without advancing. ok is false once the
// cursor has run past the last token.
func (p *parser) peek() (tok Token, ok bool) {
	if p.cursor >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.cursor], true
}

// eat consumes the current token. Callers must have checked peek first.
func (p *parser) eat() Token {
	tok := p.tokens[p.cursor]
	p.cursor++
	return tok
}

// last is the anchor for errors raised when the input ends outside any
// construct that could anchor them.
func (p *parser) last() Token {
	if len(p.tokens) == 0 {
		return Token{Pos: Position{Line: 1, Column: 1}}
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *parser) peekPunct(value string) bool {
	tok, ok := p.peek()
	return ok && tok.isPunct(value)
}

func (p *parser) peekKeyword(kw Keyword) bool {
	tok, ok := p.peek()
	return ok && tok.isKeyword(kw)
}

func (p *parser) expectPunct(anchor Token, value, msg string) (Token, error) {
	if !p.peekPunct(value) {
		return Token{}, p.errorExpected(anchor, msg)
	}
	return p.eat(), nil
}

func (p *parser) expectKeyword(anchor Token, kw Keyword, msg string) (Token, error) {
	if !p.peekKeyword(kw) {
		return Token{}, p.errorExpected(anchor, msg)
	}
	return p.eat(), nil
}

func (p *parser) expectKind(anchor Token, kind TokenKind, msg string) (Token, error) {
	tok, ok := p.peek()
	if !ok || tok.Kind != kind {
		return Token{}, p.errorExpected(anchor, msg)
	}
	return p.eat(), nil
}

func (p *parser) enter(tok Token) error {
	p.nesting++
	if p.maxNesting > 0 && p.nesting > p.maxNesting {
		return p.errorAt(tok, fmt.Sprintf("Imbrication trop profonde (limite %d)", p.maxNesting))
	}
	return nil
}

func (p *parser) leave() {
	p.nesting--
}
