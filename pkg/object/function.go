package object

import (
	"fmt"
	"strings"

	"spy/corelang/pkg/fqn"
)

// Func is the common interface satisfied by every callable W-object:
// interpreted functions backed by a typed AST body (ASTFunc) and builtin
// functions backed by Go code (NativeFunc). pkg/ops dispatches through this
// interface so operator implementations and ordinary calls share one
// calling convention (spec.md §4.1/§4.2).
type Func interface {
	Value
	FuncFQN() fqn.FQN
	FuncType() *Type
}

// ResolveState guards a blue function against being redshifted while one
// of its own redshifts is still in progress (a recursive blue call chain),
// mirroring the "Resolving" guard spec.md §4.4 calls for generics
// memoization.
type ResolveState int

const (
	Unresolved ResolveState = iota
	Resolving
	Redshifted
)

// ASTFunc is a function backed by a typed-AST body (pkg/ast.FuncDef),
// walked by pkg/interp in interp mode and by pkg/doppler in redshift mode.
// Body is stored as `any` (rather than a concrete *ast.FuncDef) so this
// package never has to import pkg/ast, which itself imports pkg/object for
// static types — importing ast here would close a dependency cycle.
// pkg/interp and pkg/doppler type-assert Body back to *ast.FuncDef.
type ASTFunc struct {
	FQNVal   fqn.FQN
	FT       *Type
	Body     any
	Closure  []map[string]Value // chain of enclosing frames' locals, captured at definition time (spec.md §3.7)
	FnColor  Color

	// generic/blue-function instantiation bookkeeping (spec.md §4.4)
	State          ResolveState
	RedshiftedInto *ASTFunc

	// memo caches a blue function's call results by the tuple of argument
	// FQNs, per spec.md §3.3/§4.4 ("generics are ordinary functions from
	// types to types whose results are memoized by argument FQN"). Every
	// blue ASTFunc carries its own cache rather than this living on a
	// shared registry, so memoization and garbage collection naturally
	// follow the function value's own lifetime.
	memo map[string]*memoEntry
}

func NewASTFunc(f fqn.FQN, ft *Type, body any, closure []map[string]Value, color Color) *ASTFunc {
	return &ASTFunc{FQNVal: f, FT: ft, Body: body, Closure: closure, FnColor: color}
}

type memoState int

const (
	memoUnresolved memoState = iota
	memoResolving
	memoDone
)

type memoEntry struct {
	state memoState
	value Value
}

// MemoKey builds the memoization key for a blue call's argument tuple: the
// canonical FQN string of each argument that has one (types, functions,
// modules), joined, since spec.md §4.4 keys memoization "by the tuple of
// argument FQNs." An argument with no FQN (an ordinary scalar passed to a
// blue function) falls back to a Go-formatted value, which is still stable
// and collision-free for the primitive kinds blue functions take.
func (f *ASTFunc) MemoKey(args []Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		switch w := a.(type) {
		case Func:
			parts[i] = w.FuncFQN().String()
		case *Type:
			parts[i] = w.FQN().String()
		case *Module:
			parts[i] = w.FQN().String()
		default:
			parts[i] = fmt.Sprintf("%T:%v", a, a)
		}
	}
	return strings.Join(parts, "|")
}

// MemoBegin records that key's evaluation is in progress, returning
// (cached value, true, nil) if already done, (nil, false, err) if key is
// already Resolving (a recursive blue call cycle, spec.md §4.4's
// "Resolving-state guard"), or (nil, false, nil) to proceed with a fresh
// evaluation.
func (f *ASTFunc) MemoBegin(key string) (Value, bool, error) {
	if f.memo == nil {
		f.memo = make(map[string]*memoEntry)
	}
	e, ok := f.memo[key]
	if !ok {
		f.memo[key] = &memoEntry{state: memoResolving}
		return nil, false, nil
	}
	switch e.state {
	case memoDone:
		return e.value, true, nil
	case memoResolving:
		return nil, false, fmt.Errorf("object: %s: cyclic generic instantiation for key %q", f.FuncFQN(), key)
	default:
		return nil, false, nil
	}
}

// MemoFinish stores key's result and marks it resolved.
func (f *ASTFunc) MemoFinish(key string, v Value) {
	f.memo[key] = &memoEntry{state: memoDone, value: v}
}

// ResetMemo discards every cached call result, used when a generic's
// definition is replaced (e.g. by a REPL) and its stale cache must not
// survive the redefinition.
func (f *ASTFunc) ResetMemo() {
	f.memo = nil
}

func (f *ASTFunc) Type() *Type     { return f.FT }
func (f *ASTFunc) FuncFQN() fqn.FQN { return f.FQNVal }
func (f *ASTFunc) FuncType() *Type { return f.FT }

// NativeFunc is a builtin function implemented directly in Go: arithmetic
// operators, metafunctions, and libspy entry points all resolve to one of
// these.
type NativeFunc struct {
	FQNVal fqn.FQN
	FT     *Type
	Impl   func(args []Value) (Value, error)
}

func NewNativeFunc(f fqn.FQN, ft *Type, impl func(args []Value) (Value, error)) *NativeFunc {
	return &NativeFunc{FQNVal: f, FT: ft, Impl: impl}
}

func (f *NativeFunc) Type() *Type      { return f.FT }
func (f *NativeFunc) FuncFQN() fqn.FQN  { return f.FQNVal }
func (f *NativeFunc) FuncType() *Type  { return f.FT }
func (f *NativeFunc) Call(args []Value) (Value, error) { return f.Impl(args) }
