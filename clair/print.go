package clair

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TreeLine is one row of the indented tree rendering of an AST. Node is nil
// for field headers such as "consequent:".
type TreeLine struct {
	Depth  int
	Node   Node
	Label  string
	Detail string
}

// String renders the line without indentation.
func (l TreeLine) String() string {
	if l.Node == nil {
		return l.Label + ":"
	}
	var b strings.Builder
	b.WriteString(l.Label)
	if l.Detail != "" {
		b.WriteString(" ")
		b.WriteString(l.Detail)
	}
	if pos := l.Node.Pos(); pos.Line > 0 {
		fmt.Fprintf(&b, " @%d:%d", pos.Line, pos.Column)
	}
	return b.String()
}

// Fprint writes an indented textual representation of the AST to w.
func Fprint(w io.Writer, node Node) error {
	for _, line := range Flatten(node) {
		if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", line.Depth), line); err != nil {
			return err
		}
	}
	return nil
}

// Flatten lists the AST as tree rows in depth-first order.
func Flatten(node Node) []TreeLine {
	f := &flattener{}
	f.node(node)
	return f.lines
}

type flattener struct {
	lines []TreeLine
	depth int
}

func (f *flattener) header(label string) {
	f.lines = append(f.lines, TreeLine{Depth: f.depth, Label: label})
}

func (f *flattener) field(label string, fn func()) {
	f.header(label)
	f.depth++
	fn()
	f.depth--
}

func (f *flattener) statements(label string, stmts []Statement) {
	if stmts == nil {
		return
	}
	f.field(label, func() {
		for _, s := range stmts {
			f.node(s)
		}
	})
}

func (f *flattener) expressions(label string, exprs []Expression) {
	f.field(label, func() {
		for _, e := range exprs {
			f.node(e)
		}
	})
}

func (f *flattener) node(node Node) {
	if node == nil {
		return
	}
	f.lines = append(f.lines, TreeLine{Depth: f.depth, Node: node, Label: string(node.Kind()), Detail: nodeDetail(node)})
	f.depth++
	defer func() { f.depth-- }()

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Body {
			f.node(s)
		}
	case *VarStmt:
		f.node(n.Value)
	case *PrintStmt:
		for _, a := range n.Args {
			f.node(a)
		}
	case *IfStmt:
		f.field("condition", func() { f.node(n.Condition) })
		f.statements("consequent", n.Consequent)
		f.statements("alternate", n.Alternate)
	case *WhileStmt:
		f.field("condition", func() { f.node(n.Condition) })
		f.statements("body", n.Body)
	case *FunctionStmt:
		f.statements("body", n.Body)
	case *ReturnStmt:
		f.node(n.Value)
	case *ClassStmt:
		for _, m := range n.Methods {
			f.node(m)
		}
	case *InterfaceStmt:
		for _, m := range n.Methods {
			f.node(m)
		}
	case *TryStmt:
		f.statements("block", n.Block)
		if n.Handler != nil {
			f.statements("attrape ("+n.Handler.Param+")", n.Handler.Body)
		}
		f.statements("finalizer", n.Finalizer)
	case *ThrowStmt:
		f.node(n.Value)
	case *ForEachStmt:
		f.field("iterable", func() { f.node(n.Iterable) })
		f.statements("body", n.Body)
	case *ExprStmt:
		f.node(n.Expr)
	case *AssignExpr:
		f.node(n.Left)
		f.node(n.Right)
	case *BinaryExpr:
		f.node(n.Left)
		f.node(n.Right)
	case *UnaryExpr:
		f.node(n.Right)
	case *MemberExpr:
		f.node(n.Object)
		f.field("property", func() { f.node(n.Property) })
	case *CallExpr:
		if len(n.Args) > 0 {
			f.expressions("args", n.Args)
		}
	case *ListLiteral:
		for _, e := range n.Elements {
			f.node(e)
		}
	case *ObjectLiteral:
		for _, pair := range n.Pairs {
			f.field(strconv.Quote(pair.Key), func() { f.node(pair.Value) })
		}
	}
}

func nodeDetail(node Node) string {
	switch n := node.(type) {
	case *VarStmt:
		return n.Name
	case *FunctionStmt:
		detail := n.Name + "(" + strings.Join(n.Params, ", ") + ")"
		if n.Visibility != VisibilityNone {
			detail = string(n.Visibility) + " " + detail
		}
		return detail
	case *ClassStmt:
		detail := n.Name
		if n.SuperClassName != "" {
			detail += " herite de " + n.SuperClassName
		}
		if n.IsAbstract {
			detail = "abstrait " + detail
		}
		return detail
	case *InterfaceStmt:
		return n.Name
	case *IncludeStmt:
		return strconv.Quote(n.Path)
	case *ForEachStmt:
		return n.Variable
	case *BinaryExpr:
		return n.Operator
	case *UnaryExpr:
		return n.Operator
	case *Literal:
		return FormatLiteral(n.Value)
	case *Identifier:
		return n.Name
	case *CallExpr:
		return n.Callee
	case *NewExpr:
		return n.ClassName
	default:
		return ""
	}
}

// FormatLiteral renders a literal value in Clair syntax.
func FormatLiteral(value any) string {
	switch v := value.(type) {
	case nil:
		return "nul"
	case bool:
		if v {
			return "vrai"
		}
		return "faux"
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprint(v)
	}
}
