package ops

import (
	"math"

	"spy/corelang/pkg/errs"
	"spy/corelang/pkg/fqn"
	"spy/corelang/pkg/libspy"
	"spy/corelang/pkg/object"
)

// init registers the standard numeric/string capability tables, binding
// each operator to the concrete libspy FQN spec.md's §6.2 table names it,
// so every residual arithmetic node pkg/doppler builds names a real
// contract entry and pkg/interp's interpreted results match what the
// (external) C emitter would produce, per spec.md §4.3's edge-case
// policies: integer true division (which promotes to f64), floor-division
// and modulo panic on a zero divisor, floor-division rounds toward negative
// infinity, modulo follows the sign of the divisor, and float division never
// panics.
func init() {
	registerIntType(object.TypeI8, "i8", math.MinInt8, math.MaxInt8,
		func(v int64) object.Value { return object.I8{Val: int8(v)} },
		func(v object.Value) int64 { return int64(v.(object.I8).Val) })
	registerIntType(object.TypeI32, "i32", math.MinInt32, math.MaxInt32,
		func(v int64) object.Value { return object.I32{Val: int32(v)} },
		func(v object.Value) int64 { return int64(v.(object.I32).Val) })
	registerF64()
	registerBool()
	registerStr()
}

func registerIntType(t *object.Type, name string, lo, hi int64, wrap func(int64) object.Value, unwrap func(object.Value) int64) {
	bin := func(opName string, f func(a, b int64) (int64, error)) {
		impl := object.NewNativeFunc(fqn.Simple("operator", name+"_"+opName), nil, func(args []object.Value) (object.Value, error) {
			a, b := unwrap(args[0]), unwrap(args[1])
			r, err := f(a, b)
			if err != nil {
				return nil, err
			}
			return wrap(r), nil
		})
		t.SetCapability("__"+opName+"__", impl)
	}

	bin("add", func(a, b int64) (int64, error) { return a + b, nil })
	bin("sub", func(a, b int64) (int64, error) { return a - b, nil })
	bin("mul", func(a, b int64) (int64, error) { return a * b, nil })
	// __truediv__: "/" on two ints is true division, promoting to f64 rather
	// than truncating to a same-type result, but it still panics on a zero
	// divisor rather than producing +-Inf (spec.md §4.3: "Integer division by
	// zero is a panic"; the int/int case panics even though its result type
	// is f64 — only float/float division is IEEE-never-panics).
	t.SetCapability("__truediv__", object.NewNativeFunc(fqn.Simple("operator", name+"_div"), nil,
		func(args []object.Value) (object.Value, error) {
			a, b := unwrap(args[0]), unwrap(args[1])
			if b == 0 {
				return nil, &errs.PanicError{Message: "division by zero"}
			}
			return object.F64{Val: float64(a) / float64(b)}, nil
		}))
	bin("floordiv", func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, &errs.PanicError{Message: "division by zero"}
		}
		return floorDiv(a, b), nil
	})
	bin("mod", func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, &errs.PanicError{Message: "division by zero"}
		}
		return floorMod(a, b), nil
	})

	cmp := func(opName string, f func(a, b int64) bool) {
		impl := object.NewNativeFunc(fqn.Simple("operator", name+"_"+opName), nil, func(args []object.Value) (object.Value, error) {
			return object.Bool{Val: f(unwrap(args[0]), unwrap(args[1]))}, nil
		})
		t.SetCapability("__"+opName+"__", impl)
	}
	cmp("eq", func(a, b int64) bool { return a == b })
	cmp("ne", func(a, b int64) bool { return a != b })
	cmp("lt", func(a, b int64) bool { return a < b })
	cmp("le", func(a, b int64) bool { return a <= b })
	cmp("gt", func(a, b int64) bool { return a > b })
	cmp("ge", func(a, b int64) bool { return a >= b })

	t.SetCapability("__neg__", object.NewNativeFunc(fqn.Simple("operator", name+"_neg"), nil,
		func(args []object.Value) (object.Value, error) {
			return wrap(-unwrap(args[0])), nil
		}))

	// saturating conversion from f64, per spec.md §4.3: out-of-range floats
	// clamp to the type's min/max rather than wrapping or panicking, and NaN
	// saturates to 0.
	t.SetCapability("__from_f64__", object.NewNativeFunc(fqn.Simple("operator", "f64_to_"+name), nil,
		func(args []object.Value) (object.Value, error) {
			f := args[0].(object.F64).Val
			return wrap(saturateF64ToInt(f, lo, hi)), nil
		}))
}

// floorDiv implements floor (round-toward-negative-infinity) division,
// matching operator::iN_floordiv's contract: (a floordiv b)*b + (a mod b) == a.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod implements the modulo operation whose sign follows the divisor,
// matching operator::iN_mod.
func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

// saturateF64ToInt clamps f into [lo, hi], mapping NaN to 0, matching
// spec.md §4.3's saturating float-to-integer conversion policy.
func saturateF64ToInt(f float64, lo, hi int64) int64 {
	if math.IsNaN(f) {
		return 0
	}
	if f <= float64(lo) {
		return lo
	}
	if f >= float64(hi) {
		return hi
	}
	return int64(f)
}

func registerF64() {
	t := object.TypeF64
	get := func(v object.Value) float64 { return v.(object.F64).Val }
	bin := func(opName string, f func(a, b float64) float64) {
		impl := object.NewNativeFunc(fqn.Simple("operator", "f64_"+opName), nil, func(args []object.Value) (object.Value, error) {
			return object.F64{Val: f(get(args[0]), get(args[1]))}, nil
		})
		t.SetCapability("__"+opName+"__", impl)
	}
	bin("add", func(a, b float64) float64 { return a + b })
	bin("sub", func(a, b float64) float64 { return a - b })
	bin("mul", func(a, b float64) float64 { return a * b })
	// __truediv__: f64 division never panics — dividing by zero produces
	// +-Inf or NaN, per IEEE 754 and spec.md §4.3 (unlike the integer types'
	// division family); f64 floordiv/mod below do not panic on zero either.
	t.SetCapability("__truediv__", object.NewNativeFunc(fqn.Simple("operator", "f64_div"), nil,
		func(args []object.Value) (object.Value, error) {
			return object.F64{Val: get(args[0]) / get(args[1])}, nil
		}))
	bin("floordiv", func(a, b float64) float64 { return math.Floor(a / b) })
	bin("mod", func(a, b float64) float64 { return math.Mod(math.Mod(a, b)+b, b) })

	cmp := func(opName string, f func(a, b float64) bool) {
		impl := object.NewNativeFunc(fqn.Simple("operator", "f64_"+opName), nil, func(args []object.Value) (object.Value, error) {
			return object.Bool{Val: f(get(args[0]), get(args[1]))}, nil
		})
		t.SetCapability("__"+opName+"__", impl)
	}
	cmp("eq", func(a, b float64) bool { return a == b })
	cmp("ne", func(a, b float64) bool { return a != b })
	cmp("lt", func(a, b float64) bool { return a < b })
	cmp("le", func(a, b float64) bool { return a <= b })
	cmp("gt", func(a, b float64) bool { return a > b })
	cmp("ge", func(a, b float64) bool { return a >= b })

	t.SetCapability("__neg__", object.NewNativeFunc(fqn.Simple("operator", "f64_neg"), nil,
		func(args []object.Value) (object.Value, error) {
			return object.F64{Val: -get(args[0])}, nil
		}))
}

func registerBool() {
	t := object.TypeBool
	get := func(v object.Value) bool { return v.(object.Bool).Val }
	t.SetCapability("__eq__", object.NewNativeFunc(fqn.Simple("operator", "bool_eq"), nil,
		func(args []object.Value) (object.Value, error) {
			return object.Bool{Val: get(args[0]) == get(args[1])}, nil
		}))
	t.SetCapability("__not__", object.NewNativeFunc(fqn.Simple("operator", "bool_not"), nil,
		func(args []object.Value) (object.Value, error) {
			return object.Bool{Val: !get(args[0])}, nil
		}))
	t.SetCapability("__ne__", object.NewNativeFunc(fqn.Simple("operator", "bool_ne"), nil,
		func(args []object.Value) (object.Value, error) {
			return object.Bool{Val: get(args[0]) != get(args[1])}, nil
		}))
}

func registerStr() {
	t := object.TypeStr
	if _, ok := libspy.Lookup("str::add"); !ok {
		panic("ops: libspy.Table is missing str::add; pkg/doppler's residual check depends on it")
	}
	t.SetCapability("__add__", object.NewNativeFunc(fqn.Simple("str", "add"), nil,
		func(args []object.Value) (object.Value, error) {
			return args[0].(*object.Str).Add(args[1].(*object.Str)), nil
		}))
	t.SetCapability("__mul__", object.NewNativeFunc(fqn.Simple("str", "mul"), nil,
		func(args []object.Value) (object.Value, error) {
			return args[0].(*object.Str).Mul(args[1].(object.I32).Val), nil
		}))
	t.SetCapability("__eq__", object.NewNativeFunc(fqn.Simple("str", "eq"), nil,
		func(args []object.Value) (object.Value, error) {
			return object.Bool{Val: args[0].(*object.Str).Eq(args[1].(*object.Str))}, nil
		}))
	t.SetCapability("__getitem__", object.NewNativeFunc(fqn.Simple("str", "getitem"), nil,
		func(args []object.Value) (object.Value, error) {
			r, ok := args[0].(*object.Str).GetItem(args[1].(object.I32).Val)
			if !ok {
				return nil, &errs.PanicError{Message: "string index out of range"}
			}
			return r, nil
		}))
	t.SetCapability("__len__", object.NewNativeFunc(fqn.Simple("str", "len"), nil,
		func(args []object.Value) (object.Value, error) {
			return object.I32{Val: int32(args[0].(*object.Str).Len())}, nil
		}))
	t.SetCapability("__ne__", object.NewNativeFunc(fqn.Simple("str", "ne"), nil,
		func(args []object.Value) (object.Value, error) {
			return object.Bool{Val: !args[0].(*object.Str).Eq(args[1].(*object.Str))}, nil
		}))
}
