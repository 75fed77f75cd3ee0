package ast

/*** NODES ***/

// Node is any element of the source grammar.
type Node interface{ node() }

// Module is the root of one translation unit.
type Module struct {
	Body []Stmt
}

func (*Module) node() {}

/*** EXPRESSION CONTEXT ***/

// Ctx records how an expression occurrence uses its value.
// Store and Del are the write contexts tracked by the liveness pass.
type Ctx int

const (
	CtxLoad Ctx = iota
	CtxStore
	CtxDel
)

func (c Ctx) String() string {
	switch c {
	case CtxStore:
		return "store"
	case CtxDel:
		return "del"
	default:
		return "load"
	}
}

// Write reports whether the context mutates the binding or the target.
func (c Ctx) Write() bool { return c == CtxStore || c == CtxDel }

/*** FUNCTION ROLES ***/

// Role tags a FunctionDef with why it exists. Synthesized control-flow
// bodies are invoked from inside their enclosing function after lowering,
// so the liveness pass folds their effects into the father scope. The tag
// is assigned when the node is constructed, never inferred from the name.
type Role int

const (
	RoleUser Role = iota // written by the user
	RoleBranchTrue
	RoleBranchFalse
	RoleLoopCondition
	RoleLoopBody
	RoleGetter
	RoleSetter
)

func (r Role) String() string {
	switch r {
	case RoleBranchTrue:
		return "branch-true"
	case RoleBranchFalse:
		return "branch-false"
	case RoleLoopCondition:
		return "loop-condition"
	case RoleLoopBody:
		return "loop-body"
	case RoleGetter:
		return "getter"
	case RoleSetter:
		return "setter"
	default:
		return "user"
	}
}

// ControlFlowBody reports whether the function is a lowered branch or loop
// body whose writes must become visible in the enclosing function scope.
func (r Role) ControlFlowBody() bool {
	switch r {
	case RoleBranchTrue, RoleBranchFalse, RoleLoopCondition, RoleLoopBody:
		return true
	}
	return false
}

/*** STATEMENTS ***/

type Stmt interface {
	Node
	stmt()
}

// Arguments lists the parameter names of a FunctionDef.
type Arguments struct {
	Args   []string
	Vararg string // "" if absent
	Kwarg  string // "" if absent
}

// Names returns all parameter names, including vararg/kwarg when present.
func (a Arguments) Names() []string {
	names := make([]string, 0, len(a.Args)+2)
	names = append(names, a.Args...)
	if a.Vararg != "" {
		names = append(names, a.Vararg)
	}
	if a.Kwarg != "" {
		names = append(names, a.Kwarg)
	}
	return names
}

type FunctionDef struct {
	Name string
	Args Arguments
	Body []Stmt
	Role Role
}

func (*FunctionDef) node() {}
func (*FunctionDef) stmt() {}

type Assign struct {
	Targets []Expr // Name/Attribute/Subscript/Tuple in store context
	Value   Expr
}

func (*Assign) node() {}
func (*Assign) stmt() {}

type AugAssign struct {
	Target Expr
	Op     string // "+", "-", ...
	Value  Expr
}

func (*AugAssign) node() {}
func (*AugAssign) stmt() {}

type Delete struct {
	Targets []Expr
}

func (*Delete) node() {}
func (*Delete) stmt() {}

type Return struct {
	Value Expr // nil for a bare return
}

func (*Return) node() {}
func (*Return) stmt() {}

type If struct {
	Cond Expr
	Body []Stmt
	Else []Stmt // nil if absent
}

func (*If) node() {}
func (*If) stmt() {}

type While struct {
	Cond Expr
	Body []Stmt
	Else []Stmt
}

func (*While) node() {}
func (*While) stmt() {}

type For struct {
	Target Expr
	Iter   Expr
	Body   []Stmt
	Else   []Stmt
}

func (*For) node() {}
func (*For) stmt() {}

type Global struct {
	Names []string
}

func (*Global) node() {}
func (*Global) stmt() {}

type Nonlocal struct {
	Names []string
}

func (*Nonlocal) node() {}
func (*Nonlocal) stmt() {}

type ExprStmt struct {
	X Expr
}

func (*ExprStmt) node() {}
func (*ExprStmt) stmt() {}

type Pass struct{}

func (*Pass) node() {}
func (*Pass) stmt() {}

/*** EXPRESSIONS ***/

type Expr interface {
	Node
	expr()
}

type Name struct {
	ID  string
	Ctx Ctx
}

func (*Name) node() {}
func (*Name) expr() {}

type Attribute struct {
	Value Expr
	Attr  string
	Ctx   Ctx
}

func (*Attribute) node() {}
func (*Attribute) expr() {}

type Subscript struct {
	Value Expr
	Index Expr
	Ctx   Ctx
}

func (*Subscript) node() {}
func (*Subscript) expr() {}

type Keyword struct {
	Arg   string
	Value Expr
}

type Call struct {
	Func     Expr
	Args     []Expr
	Keywords []Keyword
}

func (*Call) node() {}
func (*Call) expr() {}

type Tuple struct {
	Elts []Expr
	Ctx  Ctx
}

func (*Tuple) node() {}
func (*Tuple) expr() {}

type List struct {
	Elts []Expr
	Ctx  Ctx
}

func (*List) node() {}
func (*List) expr() {}

type Dict struct {
	Keys   []Expr
	Values []Expr
}

func (*Dict) node() {}
func (*Dict) expr() {}

// Constant holds nil, bool, int64, float64, or string.
type Constant struct {
	Value any
}

func (*Constant) node() {}
func (*Constant) expr() {}

type BinOp struct {
	Left  Expr
	Op    string
	Right Expr
}

func (*BinOp) node() {}
func (*BinOp) expr() {}

type UnaryOp struct {
	Op string
	X  Expr
}

func (*UnaryOp) node() {}
func (*UnaryOp) expr() {}

type Compare struct {
	Left        Expr
	Ops         []string
	Comparators []Expr
}

func (*Compare) node() {}
func (*Compare) expr() {}

// Comprehension is one "for target in iter if ..." clause.
type Comprehension struct {
	Target Expr
	Iter   Expr
	Ifs    []Expr
}

type ListComp struct {
	Elt        Expr
	Generators []Comprehension
}

func (*ListComp) node() {}
func (*ListComp) expr() {}

type SetComp struct {
	Elt        Expr
	Generators []Comprehension
}

func (*SetComp) node() {}
func (*SetComp) expr() {}

type DictComp struct {
	Key        Expr
	Value      Expr
	Generators []Comprehension
}

func (*DictComp) node() {}
func (*DictComp) expr() {}

// Raw is verbatim source text standing in for an expression the synthesizer
// reconstructs from recorded text (e.g. a subscripted written name). The
// renderer emits it as-is.
type Raw struct {
	Text string
}

func (*Raw) node() {}
func (*Raw) expr() {}
