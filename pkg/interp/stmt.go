package interp

import (
	"fmt"

	"spy/corelang/pkg/ast"
	"spy/corelang/pkg/errs"
	"spy/corelang/pkg/object"
)

// ExecBlock runs a statement list in sequence, stopping at the first error
// (which may be an ordinary error or one of returnSignal/breakSignal/
// continueSignal propagating out of the block).
func (f *Frame) ExecBlock(body []ast.Stmt) error {
	for _, stmt := range body {
		if err := f.ExecStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ExecStmt executes one statement, mirroring spy/vm/astframe.py's
// AbstractFrame.exec_stmt dispatch.
func (f *Frame) ExecStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.Pass:
		return nil
	case *ast.Break:
		return &breakSignal{}
	case *ast.Continue:
		return &continueSignal{}
	case *ast.ExprStmt:
		_, err := f.EvalExpr(n.Value)
		return err
	case *ast.VarDef:
		return f.execVarDef(n)
	case *ast.Assign:
		return f.execAssign(n)
	case *ast.If:
		return f.execIf(n)
	case *ast.While:
		return f.execWhile(n)
	case *ast.For:
		return f.execFor(n)
	case *ast.Return:
		return f.execReturn(n)
	case *ast.Raise:
		return f.execRaise(n)
	case *ast.FuncDef:
		return f.execFuncDef(n)
	case *ast.ClassDef:
		return f.execClassDef(n)
	default:
		return fmt.Errorf("interp: %s: unhandled statement node %T", s.Location(), s)
	}
}

func (f *Frame) execVarDef(n *ast.VarDef) error {
	if n.Value == nil {
		f.DeclareLocal(n.Name, zeroValue(n.Declared))
		return nil
	}
	v, err := f.EvalExpr(n.Value)
	if err != nil {
		return err
	}
	f.DeclareLocal(n.Name, v)
	return nil
}

// zeroValue returns a type's default value, used for `VarDef` without an
// initializer.
func zeroValue(t *object.Type) object.Value {
	if t == nil {
		return object.Void
	}
	switch t.Kind {
	case object.KindBool:
		return object.Bool{}
	case object.KindI8:
		return object.I8{}
	case object.KindI32:
		return object.I32{}
	case object.KindF64:
		return object.F64{}
	case object.KindStr:
		return object.NewStr("")
	case object.KindStruct:
		return object.NewStructInstance(t)
	default:
		return object.Void
	}
}

func (f *Frame) execAssign(n *ast.Assign) error {
	val, err := f.EvalExpr(n.Value)
	if err != nil {
		return err
	}
	switch target := n.Target.(type) {
	case *ast.Name:
		f.StoreLocal(target.Ident, val)
		return nil
	case *ast.GetAttr:
		obj, err := f.EvalExpr(target.Obj)
		if err != nil {
			return err
		}
		return f.setAttr(obj, target.Attr, val, n.Location())
	case *ast.GetItem:
		obj, err := f.EvalExpr(target.Obj)
		if err != nil {
			return err
		}
		idx, err := f.EvalExpr(target.Index)
		if err != nil {
			return err
		}
		if l, ok := obj.(*object.List); ok {
			i, ok := idx.(object.I32)
			if !ok {
				return errs.Simple("TypeError", "list index must be i32", "", n.Location())
			}
			if err := l.SetItem(i.Val, val); err != nil {
				return &errs.PanicError{Message: err.Error()}
			}
			return nil
		}
		_, err = f.dispatchAndCall("setitem", n.Location(), obj, idx, val)
		return err
	default:
		return fmt.Errorf("interp: %s: invalid assignment target %T", n.Location(), n.Target)
	}
}

func (f *Frame) execIf(n *ast.If) error {
	cond, err := f.EvalExpr(n.Cond)
	if err != nil {
		return err
	}
	b, err := f.truthy(cond, n.Location())
	if err != nil {
		return err
	}
	if b {
		return f.ExecBlock(n.Then)
	}
	return f.ExecBlock(n.Else)
}

func (f *Frame) execWhile(n *ast.While) error {
	for {
		cond, err := f.EvalExpr(n.Cond)
		if err != nil {
			return err
		}
		b, err := f.truthy(cond, n.Location())
		if err != nil {
			return err
		}
		if !b {
			return nil
		}
		if err := f.ExecBlock(n.Body); err != nil {
			if isBreak(err) {
				return nil
			}
			if isContinue(err) {
				continue
			}
			return err
		}
	}
}

// execFor implements the __fastiter__/__item__/__next__/__continue_iteration__
// desugaring protocol (mirroring spy/vm/astframe.py's _desugar_For): it =
// Iter.__fastiter__(); while it.__continue_iteration__(): Target =
// it.__item__(); it = it.__next__(); Body.
func (f *Frame) execFor(n *ast.For) error {
	iterable, err := f.EvalExpr(n.Iter)
	if err != nil {
		return err
	}
	it, err := f.callCapability(iterable, "__fastiter__", nil, n.Location())
	if err != nil {
		return err
	}
	for {
		cont, err := f.callCapability(it, "__continue_iteration__", nil, n.Location())
		if err != nil {
			return err
		}
		b, err := f.truthy(cont, n.Location())
		if err != nil {
			return err
		}
		if !b {
			return nil
		}
		item, err := f.callCapability(it, "__item__", nil, n.Location())
		if err != nil {
			return err
		}
		f.StoreLocal(n.Target, item)
		it, err = f.callCapability(it, "__next__", nil, n.Location())
		if err != nil {
			return err
		}
		if err := f.ExecBlock(n.Body); err != nil {
			if isBreak(err) {
				return nil
			}
			if isContinue(err) {
				continue
			}
			return err
		}
	}
}

// callCapability invokes a metaprotocol method on recv, passing recv as the
// implicit first ("self") argument, matching how pkg/ops registers
// capability functions (e.g. arith.go's registerIntType).
func (f *Frame) callCapability(recv object.Value, name string, extra []object.Value, loc errs.Loc) (object.Value, error) {
	fnVal, ok := recv.Type().Capability(name)
	if !ok {
		return nil, errs.Simple("AttributeError", fmt.Sprintf("%s has no capability %q", recv.Type(), name), "", loc)
	}
	fn, ok := fnVal.(object.Func)
	if !ok {
		return nil, errs.Simple("TypeError", fmt.Sprintf("capability %q of %s is not callable", name, recv.Type()), "", loc)
	}
	args := append([]object.Value{recv}, extra...)
	return f.CallFunc(fn, args)
}

func (f *Frame) execReturn(n *ast.Return) error {
	if n.Value == nil {
		return &returnSignal{Value: object.Void}
	}
	v, err := f.EvalExpr(n.Value)
	if err != nil {
		return err
	}
	return &returnSignal{Value: v}
}

func (f *Frame) execRaise(n *ast.Raise) error {
	v, err := f.EvalExpr(n.Exc)
	if err != nil {
		return err
	}
	exc, ok := v.(*object.Exception)
	if !ok {
		return errs.Simple("TypeError", fmt.Sprintf("cannot raise a value of type %s", v.Type()), "", n.Location())
	}
	return errs.Simple(exc.ExcType.String(), exc.Message, "", n.Location())
}

// execFuncDef builds an ASTFunc closing over this frame's current locals
// chain and registers it into the global FQN registry, so subsequent
// Name/FQNConst lookups resolve it (spec.md §3.1, §3.7).
func (f *Frame) execFuncDef(n *ast.FuncDef) error {
	closure := append([]map[string]object.Value{f.Locals}, f.Closure...)
	paramTypes := make([]*object.Type, len(n.Params))
	for i, p := range n.Params {
		paramTypes[i] = p.Type
	}
	var vararg *object.Type
	if n.VarArg != nil {
		vararg = n.VarArg.Type
	}
	ft := object.NewFuncType(n.FQNVal, paramTypes, vararg, n.Result, n.FuncColor)
	fn := object.NewASTFunc(n.FQNVal, ft, n, closure, n.FuncColor)
	return f.registerGlobal(n.FQNVal, fn, n.Location())
}

// execClassDef registers a struct type's field layout into the global
// registry. Capability methods defined inside the class body are expected
// to have already been attached to the type value by an earlier pass
// (pkg/doppler/pkg/vm's loader); this module does not implement class-body
// method syntax beyond field declarations, matching spec.md §3.5's ClassDef
// node shape (fields only).
func (f *Frame) execClassDef(n *ast.ClassDef) error {
	t := object.NewType(n.FQNVal, object.KindStruct)
	offset := 0
	for _, fd := range n.Fields {
		t.Fields = append(t.Fields, object.FieldLayout{Name: fd.Name, Type: fd.Type, Offset: offset})
		offset++
	}
	return f.registerGlobal(n.FQNVal, t, n.Location())
}
