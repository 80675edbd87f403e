package clair

func (p *parser) parseFunctionStatement(start Token) (*FunctionStmt, error) {
	return p.parseFunction(start, true)
}

// parseFunction parses the rest of `fonction name(params) { body }` after the
// keyword. Interface methods pass bodyRequired=false and may stop after the
// parameter list.
func (p *parser) parseFunction(start Token, bodyRequired bool) (*FunctionStmt, error) {
	name, err := p.expectKind(start, TokenIdentifier, "Nom de fonction attendu")
	if err != nil {
		return nil, err
	}

	params, err := p.parseParams(start)
	if err != nil {
		return nil, err
	}

	body := []Statement{}
	if bodyRequired || p.peekPunct("{") {
		body, err = p.parseBlock(start, "de la fonction")
		if err != nil {
			return nil, err
		}
	}

	return newNode(KindFunctionDeclaration, &FunctionStmt{Name: name.Value, Params: params, Body: body}, start), nil
}

func (p *parser) parseParams(start Token) ([]string, error) {
	open, err := p.expectPunct(start, "(", "'(' attendu après le nom de la fonction")
	if err != nil {
		return nil, err
	}

	params := []string{}
	if p.peekPunct(")") {
		p.eat()
		return params, nil
	}

	for {
		param, err := p.expectKind(open, TokenIdentifier, "Nom de paramètre attendu")
		if err != nil {
			return nil, err
		}
		params = append(params, param.Value)
		if !p.peekPunct(",") {
			break
		}
		p.eat()
	}

	if _, err := p.expectPunct(open, ")", "')' attendu après les paramètres"); err != nil {
		return nil, err
	}
	return params, nil
}
