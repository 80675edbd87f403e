package clair

func (p *parser) parseStatement() (Statement, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.errorAtEnd(p.last(), "Instruction attendue")
	}
	err := p.enter(tok)
	defer p.leave()
	if err != nil {
		return nil, err
	}

	if rule, ok := p.statementFns[tok.Keyword()]; ok {
		return rule(p.eat())
	}
	return p.parseExpressionStatement(tok)
}

func (p *parser) parseVarStatement(start Token) (*VarStmt, error) {
	name, err := p.expectKind(start, TokenIdentifier, "Nom de variable attendu")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(start, "=", "'=' attendu"); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return newNode(KindVariableDeclaration, &VarStmt{Name: name.Value, Value: value}, start), nil
}

// parsePrintStatement accepts `montre a, b` and `montre(a, b)`.
func (p *parser) parsePrintStatement(start Token) (*PrintStmt, error) {
	open, hasParen := p.peek()
	hasParen = hasParen && open.isPunct("(")
	if hasParen {
		p.eat()
	}

	args, err := p.parseExpressionList()
	if err != nil {
		return nil, err
	}

	if hasParen {
		if _, err := p.expectPunct(open, ")", "')' attendu après les arguments de montre"); err != nil {
			return nil, err
		}
	}
	return newNode(KindPrintStatement, &PrintStmt{Args: args}, start), nil
}

func (p *parser) parseReturnStatement(start Token) (*ReturnStmt, error) {
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return newNode(KindReturnStatement, &ReturnStmt{Value: value}, start), nil
}

func (p *parser) parseThrowStatement(start Token) (*ThrowStmt, error) {
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return newNode(KindThrowStatement, &ThrowStmt{Value: value}, start), nil
}

func (p *parser) parseIncludeStatement(start Token) (*IncludeStmt, error) {
	path, err := p.expectKind(start, TokenString, "Chemin de fichier attendu (chaîne de caractères) après inclure")
	if err != nil {
		return nil, err
	}
	return newNode(KindIncludeStatement, &IncludeStmt{Path: path.Value}, start), nil
}

func (p *parser) parseExpressionStatement(first Token) (*ExprStmt, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return newNode(KindExpressionStatement, &ExprStmt{Expr: expr}, first), nil
}

// parseBlock parses a mandatory `{ ... }` block. construct completes the
// error phrases, e.g. "de la fonction".
func (p *parser) parseBlock(anchor Token, construct string) ([]Statement, error) {
	if _, err := p.expectPunct(anchor, "{", "'{' attendu au début "+construct); err != nil {
		return nil, err
	}
	return p.parseBlockBody(anchor, construct)
}

// parseBody parses either a braced block or exactly one statement.
func (p *parser) parseBody(anchor Token, construct string) ([]Statement, error) {
	if p.peekPunct("{") {
		p.eat()
		return p.parseBlockBody(anchor, construct)
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return []Statement{stmt}, nil
}

// parseBlockBody collects statements up to and including the closing brace.
// When the input ends first, the error points at anchor, the token that
// opened the construct.
func (p *parser) parseBlockBody(anchor Token, construct string) ([]Statement, error) {
	stmts := []Statement{}
	for {
		tok, ok := p.peek()
		if !ok {
			return nil, p.errorAtEnd(anchor, "'}' attendu à la fin "+construct)
		}
		if tok.isPunct("}") {
			p.eat()
			return stmts, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}
