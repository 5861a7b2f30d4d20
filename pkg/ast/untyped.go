package ast

import "spy/corelang/pkg/errs"

// RawModule is what spec.md §6.1 says this module receives from the
// (external) parser: the statement/expression node set of §3.5, minus the
// static-type annotations scope analysis and type checking later attach.
// It is intentionally a much looser shape than the typed ast package
// above: fields are untyped (string op names, raw literal values, nested
// RawExpr/RawStmt trees) because nothing has been resolved yet.
type RawModule struct {
	Path  string
	Body  []RawStmt
}

// RawStmt and RawExpr mirror the same node-kind vocabulary as Stmt/Expr,
// but carry no static type or color — those are added by this package's
// Analyzer (analyze.go, using pkg/symtable for scope lookups), which
// produces the typed ast.Stmt/ast.Expr trees in node.go/stmt.go/expr.go.
type RawStmt struct {
	Kind RawStmtKind
	Loc  errs.Loc

	// populated depending on Kind
	Target, Name, Attr string
	Declared           string // a type name as written in source, unresolved
	Value, Cond, Iter  *RawExpr
	Then, Else, Body   []RawStmt
	Params             []RawParam
	VarArg             *RawParam
	Result             string
	Fields             []RawField
	IsBlue             bool
	IsGeneric          bool
}

type RawStmtKind int

const (
	RawAssign RawStmtKind = iota
	RawVarDef
	RawIf
	RawWhile
	RawFor
	RawReturn
	RawRaise
	RawExprStmt
	RawPass
	RawFuncDef
	RawClassDef
)

type RawParam struct {
	Name string
	Type string
}

type RawField struct {
	Name string
	Type string
}

type RawExpr struct {
	Kind  RawExprKind
	Loc   errs.Loc
	Str   string     // literal string value, identifier name, or operator symbol depending on Kind
	Int   int64       // literal integer value
	Float float64     // literal float value
	Bool  bool        // literal bool value
	Obj, Index, Value *RawExpr
	Left, Right       *RawExpr
	Func              *RawExpr
	Args              []RawExpr
	Elems             []RawExpr
	Parts             []RawExpr
}

type RawExprKind int

const (
	RawIntConst RawExprKind = iota
	RawFloatConst
	RawBoolConst
	RawStrConst
	RawFStrLit
	RawNameExpr
	RawBinOp
	RawUnaryOp
	RawCompare
	RawCall
	RawGetAttr
	RawSetAttr
	RawGetItem
	RawSetItem
	RawListLit
	RawTupleLit
	RawAndExpr
	RawOrExpr
)
