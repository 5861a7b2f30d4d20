package vm

import (
	"strings"
	"testing"

	"spy/corelang/pkg/ast"
	"spy/corelang/pkg/fqn"
	"spy/corelang/pkg/interp"
	"spy/corelang/pkg/object"
)

// TestPipelineHelloWorld exercises spec scenario 1 end to end through
// Analyzed/LoadAnalyzed: a module defining a void function that calls the
// predeclared print_str builtin, loaded and then called via the registry.
func TestPipelineHelloWorld(t *testing.T) {
	v := NewVM()
	var out strings.Builder
	v.Stdout = &out

	raw := &ast.RawModule{
		Path: "main",
		Body: []ast.RawStmt{
			{
				Kind: ast.RawFuncDef, Name: "main",
				Body: []ast.RawStmt{
					{Kind: ast.RawExprStmt, Value: &ast.RawExpr{
						Kind: ast.RawCall,
						Func: &ast.RawExpr{Kind: ast.RawNameExpr, Str: "print_str"},
						Args: []ast.RawExpr{{Kind: ast.RawStrConst, Str: "Hello world!"}},
					}},
				},
			},
		},
	}

	body, err := Analyzed(v, "main", raw)
	if err != nil {
		t.Fatalf("Analyzed: %v", err)
	}
	if _, err := LoadAnalyzed(v, "main", body); err != nil {
		t.Fatalf("LoadAnalyzed: %v", err)
	}

	m, ok := v.Module("main")
	if !ok {
		t.Fatalf("expected module main to be loaded")
	}
	mainFn, ok := m.Get("main")
	if !ok {
		t.Fatalf("expected main to be registered on the module")
	}
	fn, ok := mainFn.(*object.ASTFunc)
	if !ok {
		t.Fatalf("expected *object.ASTFunc, got %T", mainFn)
	}

	fd, ok := fn.Body.(*ast.FuncDef)
	if !ok {
		t.Fatalf("expected fn.Body to be *ast.FuncDef, got %T", fn.Body)
	}
	frame := interp.NewFrame(v, nil)
	if _, err := frame.RunFuncBody(fd.Body, fn.FT.Result); err != nil {
		t.Fatalf("running main: %v", err)
	}
	if got := out.String(); got != "Hello world!\n" {
		t.Fatalf("expected %q, got %q", "Hello world!\n", got)
	}
}

// TestPipelineIntDivisionBuiltins exercises spec scenario 5: builtins::
// i32_div promotes to float division while i32_floordiv/i32_mod keep floor
// semantics, including the negative-operand edge case, and i32_div panics
// on a zero divisor.
func TestPipelineIntDivisionBuiltins(t *testing.T) {
	v := NewVM()

	call := func(name string, a, b int32) (object.Value, error) {
		val, ok := v.LookupGlobal(fqn.Simple("builtins", name))
		if !ok {
			t.Fatalf("builtin %s not registered", name)
		}
		return val.(*object.NativeFunc).Call([]object.Value{object.I32{Val: a}, object.I32{Val: b}})
	}

	res, err := call("i32_div", 7, 2)
	if err != nil {
		t.Fatalf("i32_div: %v", err)
	}
	if got := res.(object.F64).Val; got != 3.5 {
		t.Fatalf("expected i32_div(7,2) == 3.5, got %v", got)
	}

	res, err = call("i32_floordiv", -7, 2)
	if err != nil {
		t.Fatalf("i32_floordiv: %v", err)
	}
	if got := res.(object.I32).Val; got != -4 {
		t.Fatalf("expected i32_floordiv(-7,2) == -4, got %v", got)
	}

	res, err = call("i32_mod", -7, 2)
	if err != nil {
		t.Fatalf("i32_mod: %v", err)
	}
	if got := res.(object.I32).Val; got != 1 {
		t.Fatalf("expected i32_mod(-7,2) == 1, got %v", got)
	}

	if _, err := call("i32_div", 1, 0); err == nil {
		t.Fatalf("expected division by zero to error")
	}
}

// TestPipelineGcAllocMutateThroughPointer exercises spec scenario 6:
// gc_alloc(Point)(1) allocates a struct, and a field write through the
// returned pointer mutates the target in place.
func TestPipelineGcAllocMutateThroughPointer(t *testing.T) {
	v := NewVM()

	gcAlloc, ok := v.LookupGlobal(fqn.Simple("unsafe", "gc_alloc"))
	if !ok {
		t.Fatalf("gc_alloc not registered")
	}
	pointType := object.NewType(fqn.Simple("main", "Point"), object.KindStruct)
	pointType.Fields = []object.FieldLayout{
		{Name: "x", Type: object.TypeI32, Offset: 0},
		{Name: "y", Type: object.TypeI32, Offset: 1},
	}

	curried, err := gcAlloc.(*object.NativeFunc).Call([]object.Value{pointType})
	if err != nil {
		t.Fatalf("gc_alloc(Point): %v", err)
	}
	allocated, err := curried.(*object.NativeFunc).Call([]object.Value{object.I32{Val: 1}})
	if err != nil {
		t.Fatalf("gc_alloc(Point)(1): %v", err)
	}
	ptr, ok := allocated.(*object.Pointer)
	if !ok {
		t.Fatalf("expected *object.Pointer, got %T", allocated)
	}

	inst := (*ptr.Target).(*object.StructInstance)
	inst.Set("x", object.I32{Val: 3})

	got, _ := inst.Get("x")
	if got.(object.I32).Val != 3 {
		t.Fatalf("expected mutated field x == 3, got %v", got)
	}
}

// TestGlobalSymbolsExposesBuiltinsToAnalyzer exercises the GlobalSymbols/
// Analyzed wiring: a module never declaring print_str itself still
// resolves it as a predeclared global, per spec scenario 1.
func TestGlobalSymbolsExposesBuiltinsToAnalyzer(t *testing.T) {
	v := NewVM()
	predeclared := GlobalSymbols(v)
	found := false
	for _, p := range predeclared {
		if p.Name == "print_str" {
			found = true
			if p.FQN.Module != "builtins" || p.FQN.Symbol != "print_str" {
				t.Fatalf("unexpected FQN for print_str: %v", p.FQN)
			}
		}
	}
	if !found {
		t.Fatalf("expected print_str among predeclared globals")
	}
}
