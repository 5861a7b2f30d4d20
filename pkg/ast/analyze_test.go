package ast

import (
	"testing"

	"spy/corelang/pkg/fqn"
	"spy/corelang/pkg/object"
	"spy/corelang/pkg/symtable"
)

// TestAnalyzeColorMonotonicity exercises the literal rule spec.md §3.4
// states: an expression is red iff any sub-expression is red. `x + 1`
// where `x` is a red parameter must come out red even though the literal
// `1` is blue.
func TestAnalyzeColorMonotonicity(t *testing.T) {
	raw := &RawModule{
		Path: "m",
		Body: []RawStmt{
			{
				Kind:   RawFuncDef,
				Name:   "addone",
				Params: []RawParam{{Name: "x", Type: "i32"}},
				Result: "i32",
				Body: []RawStmt{
					{Kind: RawReturn, Value: &RawExpr{
						Kind:  RawBinOp,
						Str:   "+",
						Left:  &RawExpr{Kind: RawNameExpr, Str: "x"},
						Right: &RawExpr{Kind: RawIntConst, Int: 1},
					}},
				},
			},
		},
	}

	a := NewAnalyzer("m")
	stmts, err := a.Analyze(raw, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(stmts))
	}
	fd, ok := stmts[0].(*FuncDef)
	if !ok {
		t.Fatalf("expected *FuncDef, got %T", stmts[0])
	}
	ret, ok := fd.Body[0].(*Return)
	if !ok {
		t.Fatalf("expected *Return, got %T", fd.Body[0])
	}
	if ret.Value.ColorOf() != symtable.Red {
		t.Fatalf("expected return expression to be red (x is red), got %v", ret.Value.ColorOf())
	}
	bin := ret.Value.(*BinOp)
	if bin.Left.ColorOf() != symtable.Red {
		t.Fatalf("expected parameter reference x to be red")
	}
	if bin.Right.ColorOf() != symtable.Blue {
		t.Fatalf("expected literal 1 to be blue")
	}
}

// TestAnalyzeMutualRecursionResolvesViaTwoPassSignatures exercises the
// forward-declaration pass: `even` calls `odd` before `odd` is walked, and
// vice versa, which only resolves if every function's signature is
// declared before any body is converted.
func TestAnalyzeMutualRecursionResolvesViaTwoPassSignatures(t *testing.T) {
	raw := &RawModule{
		Path: "m",
		Body: []RawStmt{
			{
				Kind:   RawFuncDef,
				Name:   "even",
				Params: []RawParam{{Name: "n", Type: "i32"}},
				Result: "bool",
				Body: []RawStmt{
					{Kind: RawReturn, Value: &RawExpr{
						Kind: RawCall,
						Func: &RawExpr{Kind: RawNameExpr, Str: "odd"},
						Args: []RawExpr{{Kind: RawNameExpr, Str: "n"}},
					}},
				},
			},
			{
				Kind:   RawFuncDef,
				Name:   "odd",
				Params: []RawParam{{Name: "n", Type: "i32"}},
				Result: "bool",
				Body: []RawStmt{
					{Kind: RawReturn, Value: &RawExpr{
						Kind: RawCall,
						Func: &RawExpr{Kind: RawNameExpr, Str: "even"},
						Args: []RawExpr{{Kind: RawNameExpr, Str: "n"}},
					}},
				},
			},
		},
	}

	a := NewAnalyzer("m")
	stmts, err := a.Analyze(raw, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	even := stmts[0].(*FuncDef)
	call := even.Body[0].(*Return).Value.(*Call)
	callee, ok := call.Func.(*Name)
	if !ok {
		t.Fatalf("expected *Name callee, got %T", call.Func)
	}
	if callee.Kind != symtable.Global {
		t.Fatalf("expected callee to resolve as global, got %v", callee.Kind)
	}
	if callee.FQNVal.Symbol != "odd" {
		t.Fatalf("expected callee FQN symbol odd, got %q", callee.FQNVal.Symbol)
	}
}

// TestAnalyzeModuleVarVisibleToSiblingFunction exercises a module-level
// VarDef constant being resolved as a Global from inside a function body
// declared after it.
func TestAnalyzeModuleVarVisibleToSiblingFunction(t *testing.T) {
	raw := &RawModule{
		Path: "m",
		Body: []RawStmt{
			{Kind: RawVarDef, Name: "LIMIT", Value: &RawExpr{Kind: RawIntConst, Int: 10}},
			{
				Kind:   RawFuncDef,
				Name:   "under_limit",
				Params: []RawParam{{Name: "n", Type: "i32"}},
				Result: "bool",
				Body: []RawStmt{
					{Kind: RawReturn, Value: &RawExpr{
						Kind: RawCompare, Str: "<",
						Left:  &RawExpr{Kind: RawNameExpr, Str: "n"},
						Right: &RawExpr{Kind: RawNameExpr, Str: "LIMIT"},
					}},
				},
			},
		},
	}

	a := NewAnalyzer("m")
	stmts, err := a.Analyze(raw, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	fd := stmts[1].(*FuncDef)
	cmp := fd.Body[0].(*Return).Value.(*Compare)
	limitRef, ok := cmp.Right.(*Name)
	if !ok {
		t.Fatalf("expected *Name, got %T", cmp.Right)
	}
	if limitRef.Kind != symtable.Global {
		t.Fatalf("expected LIMIT to resolve as global, got %v", limitRef.Kind)
	}
	if limitRef.FQNVal.Symbol != "LIMIT" {
		t.Fatalf("expected FQN symbol LIMIT, got %q", limitRef.FQNVal.Symbol)
	}
}

// TestAnalyzeClassFieldAndNameResolution exercises declareClass resolving
// both a field's declared type and the class name itself as an ordinary
// Name expression, independent of field-type resolution.
func TestAnalyzeClassFieldAndNameResolution(t *testing.T) {
	raw := &RawModule{
		Path: "m",
		Body: []RawStmt{
			{Kind: RawClassDef, Name: "Point", Fields: []RawField{
				{Name: "x", Type: "i32"},
				{Name: "y", Type: "i32"},
			}},
			{
				Kind: RawFuncDef, Name: "classref", Result: "type",
				Body: []RawStmt{
					{Kind: RawReturn, Value: &RawExpr{Kind: RawNameExpr, Str: "Point"}},
				},
			},
		},
	}

	a := NewAnalyzer("m")
	stmts, err := a.Analyze(raw, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	cd := stmts[0].(*ClassDef)
	if len(cd.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(cd.Fields))
	}
	if cd.Fields[0].Type != object.TypeI32 {
		t.Fatalf("expected field x to resolve to TypeI32")
	}

	fd := stmts[1].(*FuncDef)
	ref := fd.Body[0].(*Return).Value.(*Name)
	if ref.Kind != symtable.Global {
		t.Fatalf("expected Point reference to resolve as global, got %v", ref.Kind)
	}
	if ref.Type() != object.TypeType {
		t.Fatalf("expected Point reference to have static type TypeType, got %v", ref.Type())
	}
}

// TestAnalyzePredeclaredGlobalVisibleUnqualified exercises a Predeclared
// builtin (the shape pkg/vm.GlobalSymbols produces) resolving inside a
// module that never declares it itself.
func TestAnalyzePredeclaredGlobalVisibleUnqualified(t *testing.T) {
	printFQN := fqn.Simple("builtins", "print_str")
	printFT := object.NewFuncType(printFQN, []*object.Type{object.TypeStr}, nil, object.TypeVoid, object.Red)
	raw := &RawModule{
		Path: "m",
		Body: []RawStmt{
			{
				Kind: RawFuncDef, Name: "greet",
				Params: []RawParam{{Name: "who", Type: "str"}},
				Body: []RawStmt{
					{Kind: RawExprStmt, Value: &RawExpr{
						Kind: RawCall,
						Func: &RawExpr{Kind: RawNameExpr, Str: "print_str"},
						Args: []RawExpr{{Kind: RawNameExpr, Str: "who"}},
					}},
				},
			},
		},
	}
	predeclared := []Predeclared{
		{Name: "print_str", FQN: printFQN, Type: printFT, Color: symtable.Blue},
	}

	a := NewAnalyzer("m")
	stmts, err := a.Analyze(raw, predeclared)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	fd := stmts[0].(*FuncDef)
	call := fd.Body[0].(*ExprStmt).Value.(*Call)
	callee := call.Func.(*Name)
	if callee.Kind != symtable.Global {
		t.Fatalf("expected print_str to resolve as global, got %v", callee.Kind)
	}
}
