package clair

func (p *parser) parseClassStatement(start Token) (*ClassStmt, error) {
	return p.parseClass(start)
}

// parseAbstractClassStatement handles `abstrait classe ...`. The class node
// is anchored on `abstrait`.
func (p *parser) parseAbstractClassStatement(start Token) (*ClassStmt, error) {
	if _, err := p.expectKeyword(start, KeywordClasse, "'classe' attendu après 'abstrait'"); err != nil {
		return nil, err
	}
	class, err := p.parseClass(start)
	if err != nil {
		return nil, err
	}
	class.IsAbstract = true
	return class, nil
}

func (p *parser) parseClass(start Token) (*ClassStmt, error) {
	name, err := p.expectKind(start, TokenIdentifier, "Nom de classe attendu")
	if err != nil {
		return nil, err
	}

	superClass := ""
	if p.peekKeyword(KeywordHerite) {
		inherits := p.eat()
		if _, err := p.expectKeyword(inherits, KeywordDe, "'de' attendu après 'herite'"); err != nil {
			return nil, err
		}
		parent, err := p.expectKind(inherits, TokenIdentifier, "Nom de la classe parente attendu")
		if err != nil {
			return nil, err
		}
		superClass = parent.Value
	}

	if _, err := p.expectPunct(start, "{", "'{' attendu au début de la classe"); err != nil {
		return nil, err
	}

	methods := []*FunctionStmt{}
	for {
		tok, ok := p.peek()
		if !ok {
			return nil, p.errorAtEnd(start, "'}' attendu à la fin de la classe")
		}
		if tok.isPunct("}") {
			p.eat()
			break
		}

		visibility := VisibilityPublic
		switch tok.Keyword() {
		case KeywordPrive:
			visibility = VisibilityPrivate
			p.eat()
		case KeywordPublic:
			p.eat()
		}

		method, err := p.parseMember(start, "Seules les fonctions sont autorisées dans les classes", true)
		if err != nil {
			return nil, err
		}
		method.Visibility = visibility
		methods = append(methods, method)
	}

	return newNode(KindClassDeclaration, &ClassStmt{Name: name.Value, SuperClassName: superClass, Methods: methods}, start), nil
}

func (p *parser) parseInterfaceStatement(start Token) (*InterfaceStmt, error) {
	name, err := p.expectKind(start, TokenIdentifier, "Nom d'interface attendu")
	if err != nil {
		return nil, err
	}

	if _, err := p.expectPunct(start, "{", "'{' attendu au début de l'interface"); err != nil {
		return nil, err
	}

	methods := []*FunctionStmt{}
	for {
		tok, ok := p.peek()
		if !ok {
			return nil, p.errorAtEnd(start, "'}' attendu à la fin de l'interface")
		}
		if tok.isPunct("}") {
			p.eat()
			break
		}

		method, err := p.parseMember(start, "Seules les déclarations de fonctions sont autorisées dans une interface", false)
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}

	return newNode(KindInterfaceDeclaration, &InterfaceStmt{Name: name.Value, Methods: methods}, start), nil
}

// parseMember parses one `fonction` member of a class or interface body.
// Anything else is rejected with notFunction.
func (p *parser) parseMember(owner Token, notFunction string, bodyRequired bool) (*FunctionStmt, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.errorAtEnd(owner, notFunction)
	}
	if !tok.isKeyword(KeywordFonction) {
		return nil, p.errorAt(tok, notFunction)
	}
	return p.parseFunction(p.eat(), bodyRequired)
}
