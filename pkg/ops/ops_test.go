package ops

import (
	"math"
	"testing"

	"spy/corelang/pkg/errs"
	"spy/corelang/pkg/object"
)

func zeroLoc() errs.Loc { return errs.Loc{} }

func callCap(t *testing.T, ty *object.Type, name string, args ...object.Value) object.Value {
	t.Helper()
	v, ok := ty.Capability(name)
	if !ok {
		t.Fatalf("type %s has no capability %q", ty, name)
	}
	fn, ok := v.(*object.NativeFunc)
	if !ok {
		t.Fatalf("capability %q is not a native function", name)
	}
	got, err := fn.Call(args)
	if err != nil {
		t.Fatalf("calling %q: %v", name, err)
	}
	return got
}

// TestI32TrueDivPromotesToF64 exercises spec scenario 5: "/" on two i32
// operands is true division, producing an f64 result rather than a
// truncated same-type one.
func TestI32TrueDivPromotesToF64(t *testing.T) {
	got := callCap(t, object.TypeI32, "__truediv__", object.I32{Val: 7}, object.I32{Val: 2})
	f, ok := got.(object.F64)
	if !ok {
		t.Fatalf("i32_div(7,2) = %T, want object.F64", got)
	}
	if f.Val != 3.5 {
		t.Fatalf("i32_div(7,2) = %v, want 3.5", f.Val)
	}
}

// TestI32TrueDivPanicsOnZero exercises spec scenario 5's other half:
// i32_div(7, 0) fails with a runtime PanicError ("division by zero") even
// though its result type is f64 — promoting to f64 changes the result type,
// not the panic policy. The error carries no ZeroDivisionError exception
// type.
func TestI32TrueDivPanicsOnZero(t *testing.T) {
	v, ok := object.TypeI32.Capability("__truediv__")
	if !ok {
		t.Fatalf("i32 has no __truediv__ capability")
	}
	fn := v.(*object.NativeFunc)
	_, err := fn.Call([]object.Value{object.I32{Val: 7}, object.I32{Val: 0}})
	if err == nil {
		t.Fatalf("expected i32_div(7,0) to panic")
	}
}

func TestI32FloorDivAndModIdentity(t *testing.T) {
	cases := []struct{ a, b int32 }{
		{7, 2}, {-7, 2}, {7, -2}, {-7, -2}, {0, 5},
	}
	for _, c := range cases {
		q := callCap(t, object.TypeI32, "__floordiv__", object.I32{Val: c.a}, object.I32{Val: c.b}).(object.I32).Val
		r := callCap(t, object.TypeI32, "__mod__", object.I32{Val: c.a}, object.I32{Val: c.b}).(object.I32).Val
		if c.a != q*c.b+r {
			t.Errorf("a=%d b=%d: floor-div/mod identity failed: q=%d r=%d", c.a, c.b, q, r)
		}
		if r != 0 {
			sameSign := (r < 0) == (c.b < 0)
			if !sameSign {
				t.Errorf("a=%d b=%d: expected mod sign to follow divisor, got r=%d", c.a, c.b, r)
			}
		}
	}
}

func TestI32FloorDivExactValues(t *testing.T) {
	if got := callCap(t, object.TypeI32, "__floordiv__", object.I32{Val: -7}, object.I32{Val: 2}).(object.I32).Val; got != -4 {
		t.Fatalf("i32_floordiv(-7, 2) = %d, want -4", got)
	}
	if got := callCap(t, object.TypeI32, "__mod__", object.I32{Val: -7}, object.I32{Val: 2}).(object.I32).Val; got != 1 {
		t.Fatalf("i32_mod(-7, 2) = %d, want 1", got)
	}
}

func TestF64DivNeverPanics(t *testing.T) {
	got := callCap(t, object.TypeF64, "__truediv__", object.F64{Val: 1}, object.F64{Val: 0}).(object.F64).Val
	if !(got > 0) { // +Inf
		t.Fatalf("expected f64 1/0 to be +Inf-like, got %v", got)
	}
}

func TestSaturatingF64ToI32(t *testing.T) {
	v, _ := object.TypeI32.Capability("__from_f64__")
	fn := v.(*object.NativeFunc)

	check := func(in float64, want int32) {
		got, err := fn.Call([]object.Value{object.F64{Val: in}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.(object.I32).Val != want {
			t.Errorf("saturate(%v) = %d, want %d", in, got.(object.I32).Val, want)
		}
	}
	check(1e300, 2147483647)
	check(-1e300, -2147483648)
	check(3.9, 3)
	check(math.NaN(), 0)
}

func TestStringHashNonZeroAndEqualStringsHashEqual(t *testing.T) {
	a := object.NewStr("hello")
	b := object.NewStr("hello")
	if a.Hash() == 0 {
		t.Fatalf("expected non-zero hash")
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("expected equal strings to hash equal")
	}
}

func TestDispatchFindsLeftOperandCapability(t *testing.T) {
	a := FromValue(object.I32{Val: 3}, zeroLoc())
	b := FromValue(object.I32{Val: 4}, zeroLoc())
	impl, err := Dispatch("add", []OpArg{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if impl.IsNull() {
		t.Fatalf("expected a resolved implementation for i32 add")
	}
	fn := impl.Func.(*object.NativeFunc)
	got, err := fn.Call([]object.Value{object.I32{Val: 3}, object.I32{Val: 4}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(object.I32).Val != 7 {
		t.Fatalf("got %d, want 7", got.(object.I32).Val)
	}
}

func TestDispatchDeterministicForFixedTypes(t *testing.T) {
	a := FromValue(object.I32{Val: 1}, zeroLoc())
	b := FromValue(object.I32{Val: 2}, zeroLoc())
	impl1, err1 := Dispatch("add", []OpArg{a, b})
	impl2, err2 := Dispatch("add", []OpArg{a, b})
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if !impl1.Func.FuncFQN().Equal(impl2.Func.FuncFQN()) {
		t.Fatalf("expected dispatch to be deterministic for fixed operand types")
	}
}

func TestDispatchNoOperatorIsError(t *testing.T) {
	a := FromValue(object.I32{Val: 1}, zeroLoc())
	b := FromValue(object.I32{Val: 2}, zeroLoc())
	_, err := Dispatch("frobnicate", []OpArg{a, b})
	if err == nil {
		t.Fatalf("expected an error for an unimplemented operator")
	}
}
