package clair

func (p *parser) parseIfStatement(start Token) (*IfStmt, error) {
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	consequent, err := p.parseBody(start, "du bloc si")
	if err != nil {
		return nil, err
	}

	var alternate []Statement
	if p.peekKeyword(KeywordSinon) {
		elseTok := p.eat()
		alternate, err = p.parseBody(elseTok, "du bloc sinon")
		if err != nil {
			return nil, err
		}
	}

	return newNode(KindIfStatement, &IfStmt{Condition: condition, Consequent: consequent, Alternate: alternate}, start), nil
}

func (p *parser) parseWhileStatement(start Token) (*WhileStmt, error) {
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody(start, "du bloc tantque")
	if err != nil {
		return nil, err
	}

	return newNode(KindWhileStatement, &WhileStmt{Condition: condition, Body: body}, start), nil
}

// parseForEachStatement parses `pour chaque x dans iterable { ... }`. The body
// must be braced.
func (p *parser) parseForEachStatement(start Token) (*ForEachStmt, error) {
	if _, err := p.expectKeyword(start, KeywordChaque, "'chaque' attendu après 'pour'"); err != nil {
		return nil, err
	}
	variable, err := p.expectKind(start, TokenIdentifier, "Nom de variable attendu dans la boucle pour chaque")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(start, KeywordDans, "'dans' attendu"); err != nil {
		return nil, err
	}

	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock(start, "du bloc pour chaque")
	if err != nil {
		return nil, err
	}

	return newNode(KindPourChaqueStatement, &ForEachStmt{Variable: variable.Value, Iterable: iterable, Body: body}, start), nil
}

// parseTryStatement parses `essaye { } [attrape (e) { }] [enfin { }]`. Both
// clauses are optional but keep this order.
func (p *parser) parseTryStatement(start Token) (*TryStmt, error) {
	block, err := p.parseBlock(start, "du bloc essaye")
	if err != nil {
		return nil, err
	}

	var handler *CatchClause
	if p.peekKeyword(KeywordAttrape) {
		handler, err = p.parseCatchClause(p.eat())
		if err != nil {
			return nil, err
		}
	}

	var finalizer []Statement
	if p.peekKeyword(KeywordEnfin) {
		finallyTok := p.eat()
		finalizer, err = p.parseBlock(finallyTok, "du bloc enfin")
		if err != nil {
			return nil, err
		}
	}

	return newNode(KindTryStatement, &TryStmt{Block: block, Handler: handler, Finalizer: finalizer}, start), nil
}

func (p *parser) parseCatchClause(start Token) (*CatchClause, error) {
	open, err := p.expectPunct(start, "(", "'(' attendu après attrape")
	if err != nil {
		return nil, err
	}
	param, err := p.expectKind(start, TokenIdentifier, "Nom du paramètre d'exception attendu")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(open, ")", "')' attendu après le paramètre d'exception"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock(start, "du bloc attrape")
	if err != nil {
		return nil, err
	}
	return &CatchClause{Param: param.Value, Body: body, position: start.Pos}, nil
}
