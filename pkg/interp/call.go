package interp

import (
	"fmt"

	"spy/corelang/pkg/ast"
	"spy/corelang/pkg/errs"
	"spy/corelang/pkg/object"
)

// CallFunc invokes fn with args, dispatching to either a native Go
// implementation or a fresh Frame running an interpreted body, per
// spec.md §3.7 ("frames are created per call and dropped on return").
// Lexical scoping: the callee's closure chain is the one captured at its
// own definition time (fn.Closure), not the caller's locals.
func (f *Frame) CallFunc(fn object.Func, args []object.Value) (object.Value, error) {
	switch v := fn.(type) {
	case *object.NativeFunc:
		return v.Call(args)
	case *object.ASTFunc:
		fd, ok := v.Body.(*ast.FuncDef)
		if !ok {
			return nil, fmt.Errorf("interp: %s: function body is not a *ast.FuncDef", v.FuncFQN())
		}
		if v.FnColor == object.Blue {
			return f.callBlue(v, fd, args)
		}
		callee := NewFrame(f.Globals, v.Closure)
		if err := bindParams(callee, fd, args, v.FuncFQN().String()); err != nil {
			return nil, err
		}
		return callee.RunFuncBody(fd.Body, fd.Result)
	default:
		return nil, fmt.Errorf("interp: %s: value is not callable", f.Loc)
	}
}

// callBlue invokes a `blue`/`blue.generic` function through its per-function
// memoization cache (spec.md §3.3, §4.4): repeated calls with the same
// argument-FQN tuple return the identical cached value rather than
// re-running the body, and a call already in progress for the same key is a
// StaticError rather than infinite recursion.
func (f *Frame) callBlue(v *object.ASTFunc, fd *ast.FuncDef, args []object.Value) (object.Value, error) {
	key := v.MemoKey(args)
	if cached, done, err := v.MemoBegin(key); err != nil {
		return nil, errs.Simple("StaticError", err.Error(), "", fd.Location())
	} else if done {
		return cached, nil
	}
	callee := NewFrame(f.Globals, v.Closure)
	if err := bindParams(callee, fd, args, v.FuncFQN().String()); err != nil {
		return nil, err
	}
	result, err := callee.RunFuncBody(fd.Body, fd.Result)
	if err != nil {
		return nil, err
	}
	v.MemoFinish(key, result)
	return result, nil
}

// bindParams declares each positional parameter as a local, and, if the
// function declares a trailing vararg, collects the remaining arguments
// into a Tuple, mirroring spy/vm/astframe.py's declare_arguments/
// init_arguments.
func bindParams(callee *Frame, fd *ast.FuncDef, args []object.Value, fname string) error {
	n := len(fd.Params)
	if fd.VarArg == nil {
		if len(args) != n {
			return errs.Simple("TypeError",
				fmt.Sprintf("%s: expected %d arguments, got %d", fname, n, len(args)), "", fd.Location())
		}
	} else if len(args) < n {
		return errs.Simple("TypeError",
			fmt.Sprintf("%s: expected at least %d arguments, got %d", fname, n, len(args)), "", fd.Location())
	}
	for i, p := range fd.Params {
		callee.DeclareLocal(p.Name, args[i])
	}
	if fd.VarArg != nil {
		extra := append([]object.Value(nil), args[n:]...)
		var elemType *object.Type
		if fd.VarArg.Type != nil {
			elemType = fd.VarArg.Type
		} else {
			elemType = object.TypeVoid
		}
		callee.DeclareLocal(fd.VarArg.Name, object.NewTuple(elemType, extra))
	}
	return nil
}
