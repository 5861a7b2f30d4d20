package interp

import (
	"fmt"

	"spy/corelang/pkg/ast"
	"spy/corelang/pkg/errs"
	"spy/corelang/pkg/fqn"
	"spy/corelang/pkg/object"
	"spy/corelang/pkg/symtable"
)

// Globals is the read side of the module/FQN registry a Frame needs:
// resolving a Name with Kind == symtable.Global or an ast.FQNConst. Kept
// as a narrow interface (rather than importing pkg/vm, which itself
// imports pkg/interp) so pkg/vm's VM can satisfy it without a dependency
// cycle.
type Globals interface {
	LookupGlobal(f fqn.FQN) (object.Value, bool)
	RegisterGlobal(f fqn.FQN, v object.Value) error
}

// registerGlobal publishes a FuncDef/ClassDef's runtime value into the
// global registry, wrapping a registration conflict as a source-located
// SPyError rather than the registry's bare error.
func (f *Frame) registerGlobal(fqnVal fqn.FQN, v object.Value, loc errs.Loc) error {
	if err := f.Globals.RegisterGlobal(fqnVal, v); err != nil {
		return errs.Simple("NameError", err.Error(), "", loc)
	}
	return nil
}

// Frame is a tree-walking evaluator for one function activation, per
// spec.md §3.7: a locals map, a pointer to the enclosing frames (for
// closures), and the current source span for error reporting.
type Frame struct {
	Globals Globals
	Locals  map[string]object.Value
	Closure []map[string]object.Value // enclosing frames' locals, outermost last
	Loc     errs.Loc
}

func NewFrame(globals Globals, closure []map[string]object.Value) *Frame {
	return &Frame{Globals: globals, Locals: make(map[string]object.Value), Closure: closure}
}

func (f *Frame) DeclareLocal(name string, v object.Value) {
	f.Locals[name] = v
}

// StoreLocal assigns name in this frame's locals, declaring it if this is
// its first assignment (an ordinary Assign to a fresh name is treated the
// same as one preceded by VarDef, matching the dynamic-language feel of
// SPy's local variables).
func (f *Frame) StoreLocal(name string, v object.Value) {
	f.Locals[name] = v
}

// LoadName resolves a Name node against this frame's locals, its closure
// chain, or the global registry, per the Kind symbol analysis already
// stamped onto the node (spec.md §3.6).
func (f *Frame) LoadName(n *ast.Name) (object.Value, error) {
	switch n.Kind {
	case symtable.Local:
		if v, ok := f.Locals[n.Ident]; ok {
			return v, nil
		}
		return nil, f.nameError(n.Ident)
	case symtable.Outer, symtable.OuterCell:
		for _, scope := range f.Closure {
			if v, ok := scope[n.Ident]; ok {
				return v, nil
			}
		}
		return nil, f.nameError(n.Ident)
	case symtable.Global:
		if v, ok := f.Globals.LookupGlobal(n.FQNVal); ok {
			return v, nil
		}
		return nil, f.nameError(n.Ident)
	default:
		return nil, fmt.Errorf("interp: %s: unknown scope kind for %q", n.Location(), n.Ident)
	}
}

func (f *Frame) nameError(ident string) error {
	return errs.Simple("NameError", fmt.Sprintf("name %q is not defined", ident), "", f.Loc)
}

// RunFuncBody executes a function's statement list to completion, matching
// spy/vm/astframe.py's ASTFrame.run: it executes the body in sequence (no
// ClassDef is declared ahead of its own statement; see
// forwardDeclareClasses), returning the function's result (or an error for
// an unhandled control-flow signal or a void function that falls off the
// end without returning while a non-void result type was declared).
func (f *Frame) RunFuncBody(body []ast.Stmt, resultType *object.Type) (object.Value, error) {
	f.forwardDeclareClasses(body)
	err := f.ExecBlock(body)
	if err == nil {
		if resultType != nil && resultType != object.TypeVoid {
			return nil, errs.Simple("TypeError", "function fell off the end without returning a value", "", f.Loc)
		}
		return object.Void, nil
	}
	if ret, ok := asReturn(err); ok {
		return ret.Value, nil
	}
	return nil, err
}

// forwardDeclareClasses is a no-op: each ClassDef registers its type into
// the global registry only when ExecStmt reaches that statement, so a class
// is resolvable at run time only after its own ClassDef has executed. No
// Type skeletons are pre-registered before the body runs.
func (f *Frame) forwardDeclareClasses(body []ast.Stmt) {}
