package clair

func (p *parser) parsePrimary() (Expression, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.errorAtEnd(p.last(), "Expression attendue")
	}

	switch {
	case tok.isPunct("("):
		return p.parseGroupedExpression(p.eat())
	case tok.Kind == TokenNumber:
		n, err := tok.numberValue()
		if err != nil {
			return nil, p.errorAt(tok, "Nombre invalide: "+tok.Value)
		}
		p.eat()
		return newNode(KindLiteral, &Literal{Value: n}, tok), nil
	case tok.Kind == TokenString:
		p.eat()
		return newNode(KindLiteral, &Literal{Value: tok.Value}, tok), nil
	case tok.Kind == TokenIdentifier:
		return p.parseIdentifierExpression(p.eat())
	case tok.isPunct("["):
		return p.parseListLiteral(p.eat())
	case tok.isPunct("{"):
		return p.parseObjectLiteral(p.eat())
	}

	switch tok.Keyword() {
	case KeywordVrai:
		p.eat()
		return newNode(KindLiteral, &Literal{Value: true}, tok), nil
	case KeywordFaux:
		p.eat()
		return newNode(KindLiteral, &Literal{Value: false}, tok), nil
	case KeywordNul:
		p.eat()
		return newNode(KindLiteral, &Literal{Value: nil}, tok), nil
	case KeywordNouveau:
		return p.parseNewExpression(p.eat())
	}

	return nil, p.errorUnexpected(tok)
}

func (p *parser) parseGroupedExpression(open Token) (Expression, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(open, ")", "')' attendu"); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseIdentifierExpression handles a bare name, a call `name(args)`, or an
// indexed access `name[key]`, which may chain as `name[a][b]`.
func (p *parser) parseIdentifierExpression(ident Token) (Expression, error) {
	if p.peekPunct("(") {
		return p.parseCallExpression(ident)
	}

	var expr Expression = newNode(KindIdentifier, &Identifier{Name: ident.Value}, ident)
	for p.peekPunct("[") {
		open := p.eat()
		index, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(open, "]", "']' attendu"); err != nil {
			return nil, err
		}
		expr = newNode(KindMemberExpression, &MemberExpr{Object: expr, Property: index}, ident)
	}
	return expr, nil
}

func (p *parser) parseCallExpression(callee Token) (Expression, error) {
	p.eat() // (
	args := []Expression{}
	if !p.peekPunct(")") {
		var err error
		args, err = p.parseExpressionList()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expectPunct(callee, ")", "')' attendu après les arguments"); err != nil {
		return nil, err
	}
	return newNode(KindCallExpression, &CallExpr{Callee: callee.Value, Args: args}, callee), nil
}

// parseNewExpression parses `nouveau Nom()`. Constructor arguments are not
// supported.
func (p *parser) parseNewExpression(start Token) (Expression, error) {
	name, err := p.expectKind(start, TokenIdentifier, "Nom de classe attendu après nouveau")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(start, "(", "'(' attendu après le nom de classe"); err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(start, ")", "')' attendu, nouveau n'accepte pas d'arguments"); err != nil {
		return nil, err
	}
	return newNode(KindNewExpression, &NewExpr{ClassName: name.Value}, start), nil
}

func (p *parser) parseListLiteral(start Token) (Expression, error) {
	elements := []Expression{}
	if !p.peekPunct("]") {
		var err error
		elements, err = p.parseExpressionList()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expectPunct(start, "]", "']' attendu à la fin de la liste"); err != nil {
		return nil, err
	}
	return newNode(KindListLiteral, &ListLiteral{Elements: elements}, start), nil
}

func (p *parser) parseObjectLiteral(start Token) (Expression, error) {
	pairs := []ObjectPair{}
	if !p.peekPunct("}") {
		for {
			pair, err := p.parseObjectPair(start)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, pair)
			if !p.peekPunct(",") {
				break
			}
			p.eat()
		}
	}
	if _, err := p.expectPunct(start, "}", "'}' attendu à la fin de l'objet"); err != nil {
		return nil, err
	}
	return newNode(KindObjectLiteral, &ObjectLiteral{Pairs: pairs}, start), nil
}

// parseObjectPair parses `key: value` where key is an identifier or a string.
func (p *parser) parseObjectPair(start Token) (ObjectPair, error) {
	key, ok := p.peek()
	if !ok || (key.Kind != TokenIdentifier && key.Kind != TokenString) {
		return ObjectPair{}, p.errorExpected(start, "Clé d'objet attendue")
	}
	p.eat()

	if _, err := p.expectPunct(key, ":", "':' attendu après la clé"); err != nil {
		return ObjectPair{}, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return ObjectPair{}, err
	}
	return ObjectPair{Key: key.Value, Value: value}, nil
}
