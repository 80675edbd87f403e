package clair

func (p *parser) parseExpression() (Expression, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.errorAtEnd(p.last(), "Expression attendue")
	}
	err := p.enter(tok)
	defer p.leave()
	if err != nil {
		return nil, err
	}
	return p.parseAssignment()
}

// parseAssignment parses `target = value`, right-associative. The target is
// not checked for assignability here.
func (p *parser) parseAssignment() (Expression, error) {
	left, err := p.parseBinary(precOr)
	if err != nil {
		return nil, err
	}

	if !p.peekPunct("=") {
		return left, nil
	}
	op := p.eat()
	right, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return newNode(KindAssignmentExpression, &AssignExpr{Left: left, Right: right}, op), nil
}

// parseBinary parses a left-associative chain of operators at level prec,
// with operands parsed one level up. Past the product level it falls through
// to unary expressions.
func (p *parser) parseBinary(prec int) (Expression, error) {
	if prec > precProduct {
		return p.parseUnary()
	}

	left, err := p.parseBinary(prec + 1)
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.peek()
		if !ok || binaryPrecedence(tok) != prec {
			return left, nil
		}
		op := p.eat()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = newNode(KindBinaryExpression, &BinaryExpr{Operator: op.Value, Left: left, Right: right}, op)
	}
}

func (p *parser) parseUnary() (Expression, error) {
	tok, ok := p.peek()
	if !ok || !isUnaryOperator(tok) {
		return p.parsePrimary()
	}

	err := p.enter(tok)
	defer p.leave()
	if err != nil {
		return nil, err
	}

	op := p.eat()
	right, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return newNode(KindUnaryExpression, &UnaryExpr{Operator: op.Value, Right: right}, op), nil
}

// parseExpressionList parses `expr {, expr}`.
func (p *parser) parseExpressionList() ([]Expression, error) {
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	exprs := []Expression{first}
	for p.peekPunct(",") {
		p.eat()
		next, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, next)
	}
	return exprs, nil
}
