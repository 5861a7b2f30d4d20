package ast

import (
	"testing"

	"spy/corelang/pkg/errs"
	"spy/corelang/pkg/object"
	"spy/corelang/pkg/symtable"
)

func TestNodeEmbeddingPromotesMetaMethods(t *testing.T) {
	loc := errs.Loc{Filename: "a.spy", LineStart: 1, ColStart: 1}
	n := &BinOp{
		Meta: Meta{Loc: loc, StaticType: object.TypeI32, Color: symtable.Blue},
		Op:   "+",
		Left: &Const{Meta: Meta{StaticType: object.TypeI32, Color: symtable.Blue}, Val: object.I32{Val: 1}},
		Right: &Const{Meta: Meta{StaticType: object.TypeI32, Color: symtable.Blue}, Val: object.I32{Val: 2}},
	}
	var e Expr = n
	if e.Location() != loc {
		t.Fatalf("expected Location() to be promoted from Meta")
	}
	if e.Type() != object.TypeI32 {
		t.Fatalf("expected Type() to be promoted from Meta")
	}
	if e.ColorOf() != symtable.Blue {
		t.Fatalf("expected ColorOf() to be promoted from Meta")
	}
}

func TestStmtInterfaceSatisfiedByAllStatementKinds(t *testing.T) {
	var stmts = []Stmt{
		&Assign{}, &VarDef{}, &If{}, &While{}, &For{}, &Return{}, &Raise{},
		&ExprStmt{}, &Pass{}, &FuncDef{}, &ClassDef{}, &Break{}, &Continue{},
	}
	if len(stmts) != 13 {
		t.Fatalf("expected 13 statement kinds, got %d", len(stmts))
	}
}

func TestExprInterfaceSatisfiedByAllExpressionKinds(t *testing.T) {
	var exprs = []Expr{
		&Const{}, &FQNConst{}, &Name{}, &BinOp{}, &UnaryOp{}, &Compare{},
		&Call{}, &GetAttr{}, &SetAttr{}, &GetItem{}, &SetItem{}, &List{},
		&Tuple{}, &StrConst{}, &FStr{}, &And{}, &Or{},
	}
	if len(exprs) != 17 {
		t.Fatalf("expected 17 expression kinds, got %d", len(exprs))
	}
}

func TestFuncDefCarriesFQNAndColor(t *testing.T) {
	fd := &FuncDef{
		Meta:      Meta{Color: symtable.Red},
		Params:    []Param{{Name: "x", Type: object.TypeI32}, {Name: "y", Type: object.TypeI32}},
		Result:    object.TypeI32,
		FuncColor: symtable.Red,
	}
	if fd.ColorOf() != symtable.Red {
		t.Fatalf("expected FuncDef color to be red")
	}
	if len(fd.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fd.Params))
	}
}
