package ast

import (
	"spy/corelang/pkg/fqn"
	"spy/corelang/pkg/object"
	"spy/corelang/pkg/symtable"
)

type Assign struct {
	Meta
	Target Expr // Name, GetAttr, or GetItem
	Value  Expr
}

func (*Assign) isStmt() {}

type VarDef struct {
	Meta
	Name     string
	Declared *object.Type
	Value    Expr
}

func (*VarDef) isStmt() {}

type If struct {
	Meta
	Cond Expr
	Then []Stmt
	Else []Stmt // nil if there is no else clause
}

func (*If) isStmt() {}

type While struct {
	Meta
	Cond Expr
	Body []Stmt
}

func (*While) isStmt() {}

// For is specified in terms of the desugared fastiter/continue_iteration/
// item/next protocol (spy/vm/astframe.py's _desugar_For): Iter is the
// iterable expression, and evaluation repeatedly calls its type's
// __fastiter__/__continue_iteration__/__item__/__next__ capabilities rather than this node encoding the
// desugaring itself — pkg/interp owns that protocol.
type For struct {
	Meta
	Target string
	Iter   Expr
	Body   []Stmt
}

func (*For) isStmt() {}

type Return struct {
	Meta
	Value Expr // nil for a bare `return`
}

func (*Return) isStmt() {}

type Raise struct {
	Meta
	Exc Expr
}

func (*Raise) isStmt() {}

// ExprStmt is spec.md §3.5's "Expr" statement form: an expression
// evaluated for its side effects, its value discarded. Named ExprStmt here
// (not Expr) to avoid colliding with this package's Expr interface.
type ExprStmt struct {
	Meta
	Value Expr
}

func (*ExprStmt) isStmt() {}

type Pass struct {
	Meta
}

func (*Pass) isStmt() {}

// Break and Continue are not among spec.md §3.5's enumerated statement
// kinds, but original_source/spy/ast.py's Break/Continue are a feature the
// distillation dropped that a complete While/For implementation needs;
// pkg/interp's breakSignal/continueSignal control.go already exists to
// carry them.
type Break struct {
	Meta
}

func (*Break) isStmt() {}

type Continue struct {
	Meta
}

func (*Continue) isStmt() {}

type FuncDef struct {
	Meta
	FQNVal    fqn.FQN
	Params    []Param
	VarArg    *Param
	Result    *object.Type
	Body      []Stmt
	FuncColor symtable.Color // Blue for `blue`/`blue.generic` functions, Red otherwise
}

func (*FuncDef) isStmt() {}

func (f *FuncDef) FQN() fqn.FQN { return f.FQNVal }

type ClassDef struct {
	Meta
	FQNVal fqn.FQN
	Fields []FieldDef
}

func (*ClassDef) isStmt() {}

func (c *ClassDef) FQN() fqn.FQN { return c.FQNVal }
