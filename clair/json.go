package clair

import (
	"encoding/json"
	"io"
)

// FprintJSON writes the JSON form of the AST to w. Every node object carries
// "type", "line" and "column" plus its own fields; absent optional parts are
// null.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

// MarshalJSON encodes the program in the same form as FprintJSON.
func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(p))
}

type jsonObject map[string]any

func located(node Node, fields jsonObject) jsonObject {
	fields["type"] = string(node.Kind())
	pos := node.Pos()
	fields["line"] = pos.Line
	fields["column"] = pos.Column
	return fields
}

func toJSON(node Node) any {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		return jsonObject{
			"type": string(KindProgram),
			"body": statementsJSON(n.Body),
		}
	case *VarStmt:
		return located(n, jsonObject{"name": n.Name, "value": toJSON(n.Value)})
	case *PrintStmt:
		return located(n, jsonObject{"args": expressionsJSON(n.Args)})
	case *IfStmt:
		return located(n, jsonObject{
			"condition":  toJSON(n.Condition),
			"consequent": statementsJSON(n.Consequent),
			"alternate":  statementsJSON(n.Alternate),
		})
	case *WhileStmt:
		return located(n, jsonObject{"condition": toJSON(n.Condition), "body": statementsJSON(n.Body)})
	case *FunctionStmt:
		m := jsonObject{"name": n.Name, "params": n.Params, "body": statementsJSON(n.Body)}
		if n.Visibility != VisibilityNone {
			m["visibility"] = string(n.Visibility)
		}
		return located(n, m)
	case *ReturnStmt:
		return located(n, jsonObject{"argument": toJSON(n.Value)})
	case *ClassStmt:
		var super any
		if n.SuperClassName != "" {
			super = n.SuperClassName
		}
		return located(n, jsonObject{
			"name":           n.Name,
			"superClassName": super,
			"methods":        functionsJSON(n.Methods),
			"isAbstract":     n.IsAbstract,
		})
	case *InterfaceStmt:
		return located(n, jsonObject{"name": n.Name, "methods": functionsJSON(n.Methods)})
	case *TryStmt:
		var handler any
		if n.Handler != nil {
			handler = jsonObject{"param": n.Handler.Param, "body": statementsJSON(n.Handler.Body)}
		}
		return located(n, jsonObject{
			"block":     statementsJSON(n.Block),
			"handler":   handler,
			"finalizer": statementsJSON(n.Finalizer),
		})
	case *ThrowStmt:
		return located(n, jsonObject{"argument": toJSON(n.Value)})
	case *IncludeStmt:
		return located(n, jsonObject{"path": n.Path})
	case *ForEachStmt:
		return located(n, jsonObject{
			"variable": n.Variable,
			"iterable": toJSON(n.Iterable),
			"body":     statementsJSON(n.Body),
		})
	case *ExprStmt:
		return located(n, jsonObject{"expression": toJSON(n.Expr)})

	case *AssignExpr:
		return located(n, jsonObject{"left": toJSON(n.Left), "right": toJSON(n.Right)})
	case *BinaryExpr:
		return located(n, jsonObject{"operator": n.Operator, "left": toJSON(n.Left), "right": toJSON(n.Right)})
	case *UnaryExpr:
		return located(n, jsonObject{"operator": n.Operator, "argument": toJSON(n.Right)})
	case *Literal:
		return located(n, jsonObject{"value": n.Value})
	case *Identifier:
		return located(n, jsonObject{"name": n.Name})
	case *MemberExpr:
		return located(n, jsonObject{"object": toJSON(n.Object), "property": toJSON(n.Property)})
	case *CallExpr:
		return located(n, jsonObject{"callee": n.Callee, "args": expressionsJSON(n.Args)})
	case *NewExpr:
		return located(n, jsonObject{"className": n.ClassName})
	case *ListLiteral:
		return located(n, jsonObject{"elements": expressionsJSON(n.Elements)})
	case *ObjectLiteral:
		pairs := make([]any, 0, len(n.Pairs))
		for _, pair := range n.Pairs {
			pairs = append(pairs, jsonObject{"key": pair.Key, "value": toJSON(pair.Value)})
		}
		return located(n, jsonObject{"pairs": pairs})
	}
	return nil
}

// statementsJSON keeps the nil/empty distinction: nil encodes as null.
func statementsJSON(stmts []Statement) any {
	if stmts == nil {
		return nil
	}
	out := make([]any, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, toJSON(s))
	}
	return out
}

func expressionsJSON(exprs []Expression) []any {
	out := make([]any, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, toJSON(e))
	}
	return out
}

func functionsJSON(fns []*FunctionStmt) []any {
	out := make([]any, 0, len(fns))
	for _, fn := range fns {
		out = append(out, toJSON(fn))
	}
	return out
}
