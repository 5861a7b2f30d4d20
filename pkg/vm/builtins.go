package vm

import (
	"fmt"

	"spy/corelang/pkg/errs"
	"spy/corelang/pkg/fqn"
	"spy/corelang/pkg/object"
)

// registerBuiltins installs the builtin namespace every module sees
// without an explicit import: stdout printing, the i32_div/i32_floordiv/
// i32_mod family spec.md §8 scenario 5 exercises as callable functions
// (i32_div shares operator::i32_div's promote-to-f64-and-panic-on-zero
// semantics; it is just a directly callable name rather than the `/`
// spelling pkg/ops/arith.go wires into the `__truediv__` capability), and
// the `unsafe` allocation builtins scenario 6 exercises (`gc_alloc(T)(n)`).
// Grounded on original_source/spy/vm/vm.py's builtins module registration
// and, for the curried gc_alloc(T)(n) shape, on
// tests/compiler/unsafe/test_ptr.py.
func registerBuiltins(v *VM) {
	registerPrint(v)
	registerIntBuiltins(v)
	registerUnsafe(v)
}

func mustRegister(v *VM, f fqn.FQN, val object.Value) {
	if err := v.Registry.Register(f, val); err != nil {
		panic(fmt.Sprintf("vm: builtin %s: %v", f, err))
	}
}

func nativeVoidPrint(f fqn.FQN, argType *object.Type, render func(object.Value) string, v *VM) *object.NativeFunc {
	ft := object.NewFuncType(f, []*object.Type{argType}, nil, object.TypeVoid, object.Red)
	return object.NewNativeFunc(f, ft, func(args []object.Value) (object.Value, error) {
		fmt.Fprintln(v.Stdout, render(args[0]))
		return object.Void, nil
	})
}

func registerPrint(v *VM) {
	reg := func(name string, t *object.Type, render func(object.Value) string) {
		f := fqn.Simple("builtins", name)
		mustRegister(v, f, nativeVoidPrint(f, t, render, v))
	}
	reg("print_i32", object.TypeI32, func(a object.Value) string { return fmt.Sprintf("%d", a.(object.I32).Val) })
	reg("print_i8", object.TypeI8, func(a object.Value) string { return fmt.Sprintf("%d", a.(object.I8).Val) })
	reg("print_f64", object.TypeF64, func(a object.Value) string { return fmt.Sprintf("%g", a.(object.F64).Val) })
	reg("print_bool", object.TypeBool, func(a object.Value) string {
		if a.(object.Bool).Val {
			return "true"
		}
		return "false"
	})
	reg("print_str", object.TypeStr, func(a object.Value) string { return a.(*object.Str).Go() })
}

// registerIntBuiltins installs builtins::i32_div/i32_floordiv/i32_mod, the
// callable form of i32 division spec.md §8 scenario 5 names directly:
// i32_div promotes both operands to f64 and performs true division (3.5,
// not 3) but still panics on a zero divisor, matching operator::i32_div's
// __truediv__ capability, while i32_floordiv/i32_mod keep pkg/ops/arith.go's
// floor semantics so `i32_floordiv(-7, 2) == -4` and `i32_mod(-7, 2) == 1`.
func registerIntBuiltins(v *VM) {
	divFQN := fqn.Simple("builtins", "i32_div")
	divFT := object.NewFuncType(divFQN, []*object.Type{object.TypeI32, object.TypeI32}, nil, object.TypeF64, object.Red)
	mustRegister(v, divFQN, object.NewNativeFunc(divFQN, divFT, func(args []object.Value) (object.Value, error) {
		a, b := args[0].(object.I32).Val, args[1].(object.I32).Val
		if b == 0 {
			return nil, &errs.PanicError{Message: "division by zero"}
		}
		return object.F64{Val: float64(a) / float64(b)}, nil
	}))

	floordivFQN := fqn.Simple("builtins", "i32_floordiv")
	floordivFT := object.NewFuncType(floordivFQN, []*object.Type{object.TypeI32, object.TypeI32}, nil, object.TypeI32, object.Red)
	mustRegister(v, floordivFQN, object.NewNativeFunc(floordivFQN, floordivFT, func(args []object.Value) (object.Value, error) {
		a, b := int64(args[0].(object.I32).Val), int64(args[1].(object.I32).Val)
		if b == 0 {
			return nil, &errs.PanicError{Message: "division by zero"}
		}
		return object.I32{Val: int32(floorDivVM(a, b))}, nil
	}))

	modFQN := fqn.Simple("builtins", "i32_mod")
	modFT := object.NewFuncType(modFQN, []*object.Type{object.TypeI32, object.TypeI32}, nil, object.TypeI32, object.Red)
	mustRegister(v, modFQN, object.NewNativeFunc(modFQN, modFT, func(args []object.Value) (object.Value, error) {
		a, b := int64(args[0].(object.I32).Val), int64(args[1].(object.I32).Val)
		if b == 0 {
			return nil, &errs.PanicError{Message: "division by zero"}
		}
		return object.I32{Val: int32(floorModVM(a, b))}, nil
	}))
}

// floorDivVM/floorModVM duplicate pkg/ops/arith.go's unexported floorDiv/
// floorMod: the same three-line floor-division identity, kept here rather
// than exported across the package boundary for one tiny helper.
func floorDivVM(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorModVM(a, b int64) int64 {
	r := a % b
	if r != 0 && ((r < 0) != (b < 0)) {
		r += b
	}
	return r
}

// registerUnsafe installs the `unsafe` module's gc_alloc/raw_alloc
// builtins: each is a blue-style curried function, `gc_alloc(T)` returning
// a NativeFunc `(n i32) -> ptr[T]` that allocates n zeroed T's, matching
// spec.md §8 scenario 6's `p2 = gc_alloc(Point)(1); p2.x = 3`.
func registerUnsafe(v *VM) {
	reg := func(name string, kind object.MemoryKind) {
		outerFQN := fqn.Simple("unsafe", name)
		outerFT := object.NewFuncType(outerFQN, []*object.Type{object.TypeType}, nil, nil, object.Blue)
		mustRegister(v, outerFQN, object.NewNativeFunc(outerFQN, outerFT, func(args []object.Value) (object.Value, error) {
			elemType, ok := args[0].(*object.Type)
			if !ok {
				return nil, fmt.Errorf("vm: %s: argument must be a type", name)
			}
			innerFQN := fqn.Simple("unsafe", name).WithQualifiers([]fqn.Qualifier{{Key: "T", Value: elemType.FQN().String()}})
			innerFT := object.NewFuncType(innerFQN, []*object.Type{object.TypeI32}, nil, object.NewPointerType(elemType, true), object.Red)
			return object.NewNativeFunc(innerFQN, innerFT, func(innerArgs []object.Value) (object.Value, error) {
				n := innerArgs[0].(object.I32).Val
				if n <= 0 {
					return nil, &errs.PanicError{Message: fmt.Sprintf("%s: count must be positive", name)}
				}
				zero := zeroValueOf(elemType)
				return &object.Pointer{ElemType: elemType, Memory: kind, Mode: object.Checked, Target: &zero, Len: int(n)}, nil
			}), nil
		}))
	}
	reg("gc_alloc", object.MemoryGC)
	reg("raw_alloc", object.MemoryRaw)
}

// zeroValueOf produces the zero W-object for a concrete type, matching
// gc_alloc/raw_alloc's "zeroed memory" contract (pkg/libspy.Table's notes
// on both entries).
func zeroValueOf(t *object.Type) object.Value {
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
