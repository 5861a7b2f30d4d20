package interp

import (
	"fmt"

	"spy/corelang/pkg/ast"
	"spy/corelang/pkg/errs"
	"spy/corelang/pkg/object"
	"spy/corelang/pkg/ops"
)

// binOpName maps a BinOp's surface operator to the dispatch name pkg/ops
// expects (spec.md §4.1: "add","sub","mul","truediv","floordiv","mod" —
// "/" dispatches to __truediv__, not __div__, since it's true division).
var binOpName = map[string]string{
	"+": "add", "-": "sub", "*": "mul", "/": "truediv", "//": "floordiv", "%": "mod",
}

var cmpOpName = map[string]string{
	"==": "eq", "!=": "ne", "<": "lt", "<=": "le", ">": "gt", ">=": "ge",
}

// EvalExpr evaluates a typed expression node to a concrete W-object,
// mirroring spy/vm/astframe.py's AbstractFrame.eval_expr dispatch.
func (f *Frame) EvalExpr(e ast.Expr) (object.Value, error) {
	switch n := e.(type) {
	case *ast.Const:
		return n.Val, nil
	case *ast.FQNConst:
		if v, ok := f.Globals.LookupGlobal(n.FQNVal); ok {
			return v, nil
		}
		return nil, f.nameError(n.FQNVal.String())
	case *ast.Name:
		return f.LoadName(n)
	case *ast.StrConst:
		return object.NewStr(n.Val), nil
	case *ast.FStr:
		return f.evalFStr(n)
	case *ast.List:
		return f.evalList(n)
	case *ast.Tuple:
		return f.evalTuple(n)
	case *ast.BinOp:
		return f.evalBinOp(n)
	case *ast.UnaryOp:
		return f.evalUnaryOp(n)
	case *ast.Compare:
		return f.evalCompare(n)
	case *ast.And:
		return f.evalAnd(n)
	case *ast.Or:
		return f.evalOr(n)
	case *ast.Call:
		return f.evalCall(n)
	case *ast.GetAttr:
		return f.evalGetAttr(n)
	case *ast.SetAttr:
		return f.evalSetAttr(n)
	case *ast.GetItem:
		return f.evalGetItem(n)
	case *ast.SetItem:
		return f.evalSetItem(n)
	default:
		return nil, fmt.Errorf("interp: %s: unhandled expression node %T", e.Location(), e)
	}
}

func (f *Frame) evalFStr(n *ast.FStr) (object.Value, error) {
	out := ""
	for _, part := range n.Parts {
		v, err := f.EvalExpr(part)
		if err != nil {
			return nil, err
		}
		s, err := f.stringOf(v, part.Location())
		if err != nil {
			return nil, err
		}
		out += s
	}
	return object.NewStr(out), nil
}

// stringOf converts v to its display string, preferring a user-defined
// __str__ capability and falling back to a builtin rendering for
// primitives, mirroring the `__str__`/`__repr__` capability of spec.md §4.1.
func (f *Frame) stringOf(v object.Value, loc errs.Loc) (string, error) {
	if s, ok := v.(*object.Str); ok {
		return s.Go(), nil
	}
	if fn, ok := v.Type().Capability("__str__"); ok {
		if nf, ok := fn.(object.Func); ok {
			r, err := f.CallFunc(nf, []object.Value{v})
			if err != nil {
				return "", err
			}
			if s, ok := r.(*object.Str); ok {
				return s.Go(), nil
			}
		}
	}
	switch w := v.(type) {
	case object.Bool:
		if w.Val {
			return "True", nil
		}
		return "False", nil
	case object.I8:
		return fmt.Sprintf("%d", w.Val), nil
	case object.I32:
		return fmt.Sprintf("%d", w.Val), nil
	case object.F64:
		return fmt.Sprintf("%g", w.Val), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

func (f *Frame) evalList(n *ast.List) (object.Value, error) {
	elems := make([]object.Value, len(n.Elems))
	for i, e := range n.Elems {
		v, err := f.EvalExpr(e)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	elemType := n.Type()
	if elemType == nil && len(elems) > 0 {
		elemType = elems[0].Type()
	}
	if elemType == nil {
		elemType = object.TypeVoid
	}
	return object.NewList(elemType, elems), nil
}

func (f *Frame) evalTuple(n *ast.Tuple) (object.Value, error) {
	elems := make([]object.Value, len(n.Elems))
	for i, e := range n.Elems {
		v, err := f.EvalExpr(e)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	elemType := n.Type()
	if elemType == nil && len(elems) > 0 {
		elemType = elems[0].Type()
	}
	if elemType == nil {
		elemType = object.TypeVoid
	}
	return object.NewTuple(elemType, elems), nil
}

func (f *Frame) evalBinOp(n *ast.BinOp) (object.Value, error) {
	opName, ok := binOpName[n.Op]
	if !ok {
		return nil, fmt.Errorf("interp: %s: unknown binary operator %q", n.Location(), n.Op)
	}
	left, err := f.EvalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := f.EvalExpr(n.Right)
	if err != nil {
		return nil, err
	}
	return f.dispatchAndCall(opName, n.Location(), left, right)
}

func (f *Frame) evalUnaryOp(n *ast.UnaryOp) (object.Value, error) {
	v, err := f.EvalExpr(n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "-":
		return f.dispatchAndCall("neg", n.Location(), v)
	case "not":
		return f.dispatchAndCall("not", n.Location(), v)
	default:
		return nil, fmt.Errorf("interp: %s: unknown unary operator %q", n.Location(), n.Op)
	}
}

func (f *Frame) evalCompare(n *ast.Compare) (object.Value, error) {
	opName, ok := cmpOpName[n.Op]
	if !ok {
		return nil, fmt.Errorf("interp: %s: unknown comparison operator %q", n.Location(), n.Op)
	}
	left, err := f.EvalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := f.EvalExpr(n.Right)
	if err != nil {
		return nil, err
	}
	if le, ok := left.(*object.Exception); ok {
		if re, ok := right.(*object.Exception); ok {
			eq := ops.ExceptionsEqual(le, re)
			if opName == "ne" {
				eq = !eq
			}
			return object.Bool{Val: eq}, nil
		}
	}
	return f.dispatchAndCall(opName, n.Location(), left, right)
}

// dispatchAndCall resolves opName for operands via pkg/ops.Dispatch and
// invokes the resulting OpImpl's function, passing operands through in
// order (spec.md §4.2).
func (f *Frame) dispatchAndCall(opName string, loc errs.Loc, operands ...object.Value) (object.Value, error) {
	args := make([]ops.OpArg, len(operands))
	for i, v := range operands {
		args[i] = ops.FromValue(v, loc)
	}
	impl, err := ops.Dispatch(opName, args)
	if err != nil {
		return nil, errs.Simple("TypeError", err.Error(), "", loc)
	}
	callArgs, err := f.buildOpImplArgs(impl, operands)
	if err != nil {
		return nil, err
	}
	return f.CallFunc(impl.Func, callArgs)
}

// buildOpImplArgs materializes an OpImpl's actual argument list from its
// ArgSpecs (or, for a Simple OpImpl, the dispatch operands unchanged).
// ArgConvert specs apply their converter immediately (spec.md §4.2 step 5:
// "in interp mode, apply it immediately"), unlike doppler's shiftOperator,
// which leaves the equivalent conversion as a residual call node.
func (f *Frame) buildOpImplArgs(impl ops.OpImpl, operands []object.Value) ([]object.Value, error) {
	if impl.IsSimple() {
		return operands, nil
	}
	out := make([]object.Value, len(impl.Args))
	for i, spec := range impl.Args {
		v, err := f.resolveArgSpec(spec, operands)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (f *Frame) resolveArgSpec(spec ops.ArgSpec, operands []object.Value) (object.Value, error) {
	switch spec.Kind {
	case ops.ArgConst:
		return spec.ConstVal, nil
	case ops.ArgConvert:
		inner, err := f.resolveArgSpec(*spec.Inner, operands)
		if err != nil {
			return nil, err
		}
		return f.CallFunc(spec.ConvertFn, []object.Value{inner})
	default:
		return operands[spec.Index], nil
	}
}

func (f *Frame) evalAnd(n *ast.And) (object.Value, error) {
	left, err := f.EvalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	lb, err := f.truthy(left, n.Location())
	if err != nil {
		return nil, err
	}
	if !lb {
		return left, nil
	}
	return f.EvalExpr(n.Right)
}

func (f *Frame) evalOr(n *ast.Or) (object.Value, error) {
	left, err := f.EvalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	lb, err := f.truthy(left, n.Location())
	if err != nil {
		return nil, err
	}
	if lb {
		return left, nil
	}
	return f.EvalExpr(n.Right)
}

// truthy implements the `__bool__` capability, with a direct path for the
// builtin Bool kind.
func (f *Frame) truthy(v object.Value, loc errs.Loc) (bool, error) {
	if b, ok := v.(object.Bool); ok {
		return b.Val, nil
	}
	if fn, ok := v.Type().Capability("__bool__"); ok {
		if nf, ok := fn.(object.Func); ok {
			r, err := f.CallFunc(nf, []object.Value{v})
			if err != nil {
				return false, err
			}
			if b, ok := r.(object.Bool); ok {
				return b.Val, nil
			}
		}
	}
	return false, errs.Simple("TypeError", fmt.Sprintf("%s has no truth value", v.Type()), "", loc)
}

func (f *Frame) evalCall(n *ast.Call) (object.Value, error) {
	callee, err := f.EvalExpr(n.Func)
	if err != nil {
		return nil, err
	}
	args := make([]object.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := f.EvalExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	switch c := callee.(type) {
	case object.Func:
		return f.CallFunc(c, args)
	case *object.Type:
		return f.construct(c, args, n.Location())
	default:
		return nil, errs.Simple("TypeError", fmt.Sprintf("value of type %s is not callable", callee.Type()), "", n.Location())
	}
}

// construct implements calling a type value as a constructor, dispatching
// to its `__new__` capability if it has one (spec.md §4.1), or, for a plain
// struct type, building a zero-valued instance and assigning args
// positionally to its declared fields.
func (f *Frame) construct(t *object.Type, args []object.Value, loc errs.Loc) (object.Value, error) {
	if fn, ok := t.Capability("__new__"); ok {
		if nf, ok := fn.(object.Func); ok {
			return f.CallFunc(nf, args)
		}
	}
	inst := object.NewStructInstance(t)
	for i, field := range t.Fields {
		if i < len(args) {
			inst.Set(field.Name, args[i])
		}
	}
	return inst, nil
}

func (f *Frame) evalGetAttr(n *ast.GetAttr) (object.Value, error) {
	obj, err := f.EvalExpr(n.Obj)
	if err != nil {
		return nil, err
	}
	return f.getAttr(obj, n.Attr, n.Location())
}

func (f *Frame) getAttr(obj object.Value, attr string, loc errs.Loc) (object.Value, error) {
	switch o := obj.(type) {
	case *object.StructInstance:
		if v, ok := o.Get(attr); ok {
			return v, nil
		}
	case *object.Module:
		if v, ok := o.Get(attr); ok {
			return v, nil
		}
	case *object.Pointer:
		v, ok := o.Deref(0)
		if !ok {
			return nil, &errs.PanicError{Message: "dereferencing a null or out-of-range pointer"}
		}
		return f.getAttr(v, attr, loc)
	}
	if fn, ok := obj.Type().Capability("__getattr__"); ok {
		if nf, ok := fn.(object.Func); ok {
			return f.CallFunc(nf, []object.Value{obj, object.NewStr(attr)})
		}
	}
	return nil, errs.Simple("AttributeError", fmt.Sprintf("%s has no attribute %q", obj.Type(), attr), "", loc)
}

// evalSetAttr implements spec.md §4.3's immutability rule: assigning an
// attribute directly on a struct value (not reached through a pointer) is
// an error, since struct values are copy-on-assign and have no shared
// identity to mutate.
func (f *Frame) evalSetAttr(n *ast.SetAttr) (object.Value, error) {
	obj, err := f.EvalExpr(n.Obj)
	if err != nil {
		return nil, err
	}
	val, err := f.EvalExpr(n.Value)
	if err != nil {
		return nil, err
	}
	if err := f.setAttr(obj, n.Attr, val, n.Location()); err != nil {
		return nil, err
	}
	return val, nil
}

func (f *Frame) setAttr(obj object.Value, attr string, val object.Value, loc errs.Loc) error {
	switch o := obj.(type) {
	case *object.StructInstance:
		return errs.Simple("TypeError",
			fmt.Sprintf("cannot assign to field %q of a non-pointer struct value", attr),
			"take a pointer to mutate a struct field", loc)
	case *object.Module:
		o.Set(attr, val)
		return nil
	case *object.Pointer:
		target, ok := o.Deref(0)
		if !ok {
			return &errs.PanicError{Message: "dereferencing a null or out-of-range pointer"}
		}
		return f.setAttr(target, attr, val, loc)
	}
	if fn, ok := obj.Type().Capability("__setattr__"); ok {
		if nf, ok := fn.(object.Func); ok {
			_, err := f.CallFunc(nf, []object.Value{obj, object.NewStr(attr), val})
			return err
		}
	}
	return errs.Simple("AttributeError", fmt.Sprintf("%s has no attribute %q", obj.Type(), attr), "", loc)
}

func (f *Frame) evalGetItem(n *ast.GetItem) (object.Value, error) {
	obj, err := f.EvalExpr(n.Obj)
	if err != nil {
		return nil, err
	}
	idx, err := f.EvalExpr(n.Index)
	if err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case *object.List:
		i, ok := idx.(object.I32)
		if !ok {
			return nil, errs.Simple("TypeError", "list index must be i32", "", n.Location())
		}
		v, err := o.GetItem(i.Val)
		if err != nil {
			return nil, &errs.PanicError{Message: err.Error()}
		}
		return v, nil
	case *object.Tuple:
		i, ok := idx.(object.I32)
		if !ok {
			return nil, errs.Simple("TypeError", "tuple index must be i32", "", n.Location())
		}
		v, err := o.GetItem(i.Val)
		if err != nil {
			return nil, &errs.PanicError{Message: err.Error()}
		}
		return v, nil
	}
	return f.dispatchAndCall("getitem", n.Location(), obj, idx)
}

func (f *Frame) evalSetItem(n *ast.SetItem) (object.Value, error) {
	obj, err := f.EvalExpr(n.Obj)
	if err != nil {
		return nil, err
	}
	idx, err := f.EvalExpr(n.Index)
	if err != nil {
		return nil, err
	}
	val, err := f.EvalExpr(n.Value)
	if err != nil {
		return nil, err
	}
	if l, ok := obj.(*object.List); ok {
		i, ok := idx.(object.I32)
		if !ok {
			return nil, errs.Simple("TypeError", "list index must be i32", "", n.Location())
		}
		if err := l.SetItem(i.Val, val); err != nil {
			return nil, &errs.PanicError{Message: err.Error()}
		}
		return val, nil
	}
	if _, err := f.dispatchAndCall("setitem", n.Location(), obj, idx, val); err != nil {
		return nil, err
	}
	return val, nil
}
