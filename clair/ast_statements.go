package clair

type VarStmt struct {
	node
	Name  string
	Value Expression
}

func (s *VarStmt) stmtNode() {}

type PrintStmt struct {
	node
	Args []Expression
}

func (s *PrintStmt) stmtNode() {}

// IfStmt keeps Alternate nil when there is no `sinon` branch.
type IfStmt struct {
	node
	Condition  Expression
	Consequent []Statement
	Alternate  []Statement
}

func (s *IfStmt) stmtNode() {}

type WhileStmt struct {
	node
	Condition Expression
	Body      []Statement
}

func (s *WhileStmt) stmtNode() {}

// Visibility of a class member. Functions outside classes, and interface
// methods, carry no visibility.
type Visibility string

const (
	VisibilityNone    Visibility = ""
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "prive"
)

type FunctionStmt struct {
	node
	Name       string
	Params     []string
	Body       []Statement
	Visibility Visibility
}

func (s *FunctionStmt) stmtNode() {}

type ReturnStmt struct {
	node
	Value Expression
}

func (s *ReturnStmt) stmtNode() {}

type ClassStmt struct {
	node
	Name           string
	SuperClassName string
	Methods        []*FunctionStmt
	IsAbstract     bool
}

func (s *ClassStmt) stmtNode() {}

type InterfaceStmt struct {
	node
	Name    string
	Methods []*FunctionStmt
}

func (s *InterfaceStmt) stmtNode() {}

type CatchClause struct {
	Param    string
	Body     []Statement
	position Position
}

func (c *CatchClause) Pos() Position { return c.position }

// TryStmt keeps Handler and Finalizer nil when the matching clause is absent.
type TryStmt struct {
	node
	Block     []Statement
	Handler   *CatchClause
	Finalizer []Statement
}

func (s *TryStmt) stmtNode() {}

type ThrowStmt struct {
	node
	Value Expression
}

func (s *ThrowStmt) stmtNode() {}

type IncludeStmt struct {
	node
	Path string
}

func (s *IncludeStmt) stmtNode() {}

// ForEachStmt is `pour chaque Variable dans Iterable { Body }`.
type ForEachStmt struct {
	node
	Variable string
	Iterable Expression
	Body     []Statement
}

func (s *ForEachStmt) stmtNode() {}

type ExprStmt struct {
	node
	Expr Expression
}

func (s *ExprStmt) stmtNode() {}
