package clair

// NodeKind is the discriminator carried by every AST node. Its values are
// the node names of the output contract ("IfStatement", "Literal", ...).
type NodeKind string

const (
	KindProgram              NodeKind = "Program"
	KindVariableDeclaration  NodeKind = "VariableDeclaration"
	KindPrintStatement       NodeKind = "PrintStatement"
	KindIfStatement          NodeKind = "IfStatement"
	KindWhileStatement       NodeKind = "WhileStatement"
	KindFunctionDeclaration  NodeKind = "FunctionDeclaration"
	KindReturnStatement      NodeKind = "ReturnStatement"
	KindClassDeclaration     NodeKind = "ClassDeclaration"
	KindInterfaceDeclaration NodeKind = "InterfaceDeclaration"
	KindTryStatement         NodeKind = "TryStatement"
	KindThrowStatement       NodeKind = "ThrowStatement"
	KindIncludeStatement     NodeKind = "IncludeStatement"
	KindPourChaqueStatement  NodeKind = "PourChaqueStatement"
	KindExpressionStatement  NodeKind = "ExpressionStatement"

	KindAssignmentExpression NodeKind = "AssignmentExpression"
	KindBinaryExpression     NodeKind = "BinaryExpression"
	KindUnaryExpression      NodeKind = "UnaryExpression"
	KindLiteral              NodeKind = "Literal"
	KindIdentifier           NodeKind = "Identifier"
	KindMemberExpression     NodeKind = "MemberExpression"
	KindCallExpression       NodeKind = "CallExpression"
	KindNewExpression        NodeKind = "NewExpression"
	KindListLiteral          NodeKind = "ListLiteral"
	KindObjectLiteral        NodeKind = "ObjectLiteral"
)

type Node interface {
	Pos() Position
	Kind() NodeKind
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

// node holds the discriminator and the position of the token that opened
// the construct. Every AST type embeds it.
type node struct {
	kind     NodeKind
	position Position
}

func (n *node) Pos() Position  { return n.position }
func (n *node) Kind() NodeKind { return n.kind }

func (n *node) stamp(kind NodeKind, anchor Token) {
	n.kind = kind
	n.position = anchor.Pos
}

type stampable interface {
	Node
	stamp(NodeKind, Token)
}

// newNode stamps payload with its kind and the position of anchor.
func newNode[N stampable](kind NodeKind, payload N, anchor Token) N {
	payload.stamp(kind, anchor)
	return payload
}

// Program is the root of every parse. It has no position of its own.
type Program struct {
	node
	Body []Statement
}

// NewProgram wraps top-level statements in a Program root.
func NewProgram(body []Statement) *Program {
	return &Program{node: node{kind: KindProgram}, Body: body}
}

func (p *Program) Pos() Position {
	if len(p.Body) == 0 {
		return Position{}
	}
	return p.Body[0].Pos()
}

type AssignExpr struct {
	node
	Left  Expression
	Right Expression
}

func (e *AssignExpr) exprNode() {}

type BinaryExpr struct {
	node
	Operator string
	Left     Expression
	Right    Expression
}

func (e *BinaryExpr) exprNode() {}

type UnaryExpr struct {
	node
	Operator string
	Right    Expression
}

func (e *UnaryExpr) exprNode() {}

// Literal holds a float64, string, bool, or nil (for `nul`).
type Literal struct {
	node
	Value any
}

func (e *Literal) exprNode() {}

type Identifier struct {
	node
	Name string
}

func (e *Identifier) exprNode() {}

// MemberExpr is the indexed access `object[property]`.
type MemberExpr struct {
	node
	Object   Expression
	Property Expression
}

func (e *MemberExpr) exprNode() {}

type CallExpr struct {
	node
	Callee string
	Args   []Expression
}

func (e *CallExpr) exprNode() {}

type NewExpr struct {
	node
	ClassName string
}

func (e *NewExpr) exprNode() {}

type ListLiteral struct {
	node
	Elements []Expression
}

func (e *ListLiteral) exprNode() {}

type ObjectPair struct {
	Key   string
	Value Expression
}

type ObjectLiteral struct {
	node
	Pairs []ObjectPair
}

func (e *ObjectLiteral) exprNode() {}
