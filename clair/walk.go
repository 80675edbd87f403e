package clair

// Visitor is called for each node during Inspect. Returning false skips the
// node's children.
type Visitor func(node Node) bool

// Inspect traverses an AST in depth-first, source order.
func Inspect(node Node, visit Visitor) {
	if node == nil || !visit(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		inspectStatements(n.Body, visit)
	case *VarStmt:
		Inspect(n.Value, visit)
	case *PrintStmt:
		inspectExpressions(n.Args, visit)
	case *IfStmt:
		Inspect(n.Condition, visit)
		inspectStatements(n.Consequent, visit)
		inspectStatements(n.Alternate, visit)
	case *WhileStmt:
		Inspect(n.Condition, visit)
		inspectStatements(n.Body, visit)
	case *FunctionStmt:
		inspectStatements(n.Body, visit)
	case *ReturnStmt:
		Inspect(n.Value, visit)
	case *ClassStmt:
		for _, m := range n.Methods {
			Inspect(m, visit)
		}
	case *InterfaceStmt:
		for _, m := range n.Methods {
			Inspect(m, visit)
		}
	case *TryStmt:
		inspectStatements(n.Block, visit)
		if n.Handler != nil {
			inspectStatements(n.Handler.Body, visit)
		}
		inspectStatements(n.Finalizer, visit)
	case *ThrowStmt:
		Inspect(n.Value, visit)
	case *ForEachStmt:
		Inspect(n.Iterable, visit)
		inspectStatements(n.Body, visit)
	case *ExprStmt:
		Inspect(n.Expr, visit)

	case *AssignExpr:
		Inspect(n.Left, visit)
		Inspect(n.Right, visit)
	case *BinaryExpr:
		Inspect(n.Left, visit)
		Inspect(n.Right, visit)
	case *UnaryExpr:
		Inspect(n.Right, visit)
	case *MemberExpr:
		Inspect(n.Object, visit)
		Inspect(n.Property, visit)
	case *CallExpr:
		inspectExpressions(n.Args, visit)
	case *ListLiteral:
		inspectExpressions(n.Elements, visit)
	case *ObjectLiteral:
		for _, pair := range n.Pairs {
			Inspect(pair.Value, visit)
		}
	}
}

func inspectStatements(stmts []Statement, visit Visitor) {
	for _, s := range stmts {
		Inspect(s, visit)
	}
}

func inspectExpressions(exprs []Expression, visit Visitor) {
	for _, e := range exprs {
		Inspect(e, visit)
	}
}
