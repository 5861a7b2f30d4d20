package ast

import (
	"spy/corelang/pkg/fqn"
	"spy/corelang/pkg/object"
	"spy/corelang/pkg/symtable"
)

// Const is a blue literal value folded directly into the AST.
type Const struct {
	Meta
	Val object.Value
}

func (*Const) isExpr() {}

// FQNConst is an internal node, not part of spec.md §3.5's source-level
// node set: the redshift pass (pkg/doppler) introduces it to name a
// resolved call target or type by FQN in the residual AST, mirroring
// doppler.py's make_const building an ast.FQNConst for function/type blue
// values. It never appears in AST received straight from the parser.
type FQNConst struct {
	Meta
	FQNVal fqn.FQN
}

func (*FQNConst) isExpr() {}

// Name is a variable reference, resolved by symbol analysis (pkg/symtable)
// before reaching pkg/interp/pkg/doppler: Kind says where to find it
// (spec.md §3.6), and FQNVal is set when Kind == symtable.Global, naming
// the module-table entry to read. This corresponds to the specialized
// NameLocal/NameOuterDirect/NameOuterCell/FQNConst split
// spy/vm/astframe.py performs via _specialize_Name, collapsed here into
// one node with a Kind tag rather than four node types, since Go's
// dispatch-by-field-switch is as direct as dispatch-by-node-type.
type Name struct {
	Meta
	Ident  string
	Kind   symtable.ScopeKind
	FQNVal fqn.FQN
}

func (*Name) isExpr() {}

type BinOp struct {
	Meta
	Op          string // "+","-","*","/","//","%"
	Left, Right Expr
}

func (*BinOp) isExpr() {}

type UnaryOp struct {
	Meta
	Op      string // "-","not"
	Operand Expr
}

func (*UnaryOp) isExpr() {}

type Compare struct {
	Meta
	Op          string // "==","!=","<","<=",">",">="
	Left, Right Expr
}

func (*Compare) isExpr() {}

type Call struct {
	Meta
	Func Expr
	Args []Expr
}

func (*Call) isExpr() {}

type GetAttr struct {
	Meta
	Obj  Expr
	Attr string
}

func (*GetAttr) isExpr() {}

// SetAttr is an expression per spec.md §3.5 (it evaluates to the assigned
// value): `p.x = 3` both mutates and yields `3`. Attempting it on a
// non-pointer struct value is the static error spec.md §4.3 names;
// pkg/interp is responsible for raising it, not this node.
type SetAttr struct {
	Meta
	Obj   Expr
	Attr  string
	Value Expr
}

func (*SetAttr) isExpr() {}

type GetItem struct {
	Meta
	Obj   Expr
	Index Expr
}

func (*GetItem) isExpr() {}

type SetItem struct {
	Meta
	Obj   Expr
	Index Expr
	Value Expr
}

func (*SetItem) isExpr() {}

type List struct {
	Meta
	Elems []Expr
}

func (*List) isExpr() {}

type Tuple struct {
	Meta
	Elems []Expr
}

func (*Tuple) isExpr() {}

type StrConst struct {
	Meta
	Val string
}

func (*StrConst) isExpr() {}

// FStr is a formatted string literal: a sequence of StrConst and ordinary
// expression parts concatenated at evaluation time.
type FStr struct {
	Meta
	Parts []Expr
}

func (*FStr) isExpr() {}

// And and Or are short-circuiting boolean expressions, kept as their own
// node kinds (rather than desugared into If) because short-circuit
// evaluation order matters for redshift: spy/vm/astframe.py's eval_expr_And/
// Or evaluate the left operand and only evaluate the right if necessary,
// and in redshift mode that means the right operand may still be entirely
// unevaluated when the left is blue and decisive.
type And struct {
	Meta
	Left, Right Expr
}

func (*And) isExpr() {}

type Or struct {
	Meta
	Left, Right Expr
}

func (*Or) isExpr() {}
