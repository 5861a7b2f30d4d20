package ops

import (
	"fmt"
	"strings"

	"spy/corelang/pkg/object"
)

// Metafunction is a blue function invoked at dispatch time to decide how an
// operator should be implemented for its actual operand types: it receives
// the OpArgs being dispatched and returns an OpImpl (or ImplNull to decline,
// letting dispatch fall through to the next candidate), mirroring the
// upper-case __ADD__-style capability entries of spec.md §4.1.
type Metafunction func(args []OpArg) (OpImpl, error)

// WrapPlain adapts an ordinary (lower-case) capability function into a
// Metafunction that always returns a trivial, simple OpImpl calling it
// directly — spec.md §4.1's "a lower-case capability is auto-wrapped into
// the upper-case metaprotocol by producing a constant OpImpl".
func WrapPlain(fn object.Func) Metafunction {
	return func(args []OpArg) (OpImpl, error) {
		return Simple(fn), nil
	}
}

// lookupMeta finds a metafunction-shaped capability on a type: either an
// upper-case metafunction entry (invoked directly) or a lower-case plain
// function entry (auto-wrapped via WrapPlain), per spec.md §4.1.
func lookupMeta(caps object.Capabilities, metaName, plainName string) (Metafunction, bool) {
	if caps == nil {
		return nil, false
	}
	if v, ok := caps[metaName]; ok {
		if fn, ok := v.(metafuncValue); ok {
			return fn.mf, true
		}
		if fn, ok := v.(object.Func); ok {
			// A function value stored directly under the upper-case name is
			// treated as a metafunction returning a constant OpImpl.
			return WrapPlain(fn), true
		}
	}
	if v, ok := caps[plainName]; ok {
		if fn, ok := v.(object.Func); ok {
			return WrapPlain(fn), true
		}
	}
	return nil, false
}

// metafuncValue lets a Go-native Metafunction be stored directly in a
// Capabilities table (spec.md §4.1 capability tables hold Values; a
// metafunction isn't itself an object.Func since it doesn't take W-object
// arguments the way an ordinary call does).
type metafuncValue struct {
	mf Metafunction
}

func (metafuncValue) Type() *object.Type { return nil }

func NewMetafunctionValue(mf Metafunction) object.Value { return metafuncValue{mf: mf} }

// Dispatch resolves a unary or binary operator given its name (e.g. "add",
// "eq", "getattr") and operands, following spec.md §4.2's algorithm:
//  1. try the left operand's upper-case metafunction / lower-case plain
//     capability ("__add__");
//  2. if that declines and there is a second operand, try its reflected
//     capability ("__radd__");
//  3. if both decline, retry each operand through its base (unlifted)
//     representation, per the "exact type match before lifted/base"
//     tie-break;
//  4. otherwise, no implementation exists.
func Dispatch(opName string, args []OpArg) (OpImpl, error) {
	if len(args) == 0 {
		return ImplNull, fmt.Errorf("ops: dispatch %q: no operands", opName)
	}
	left := args[0]
	upperMeta, plainName := "__"+strings.ToUpper(opName)+"__", "__"+opName+"__"
	if left.StaticType != nil {
		if mf, ok := lookupMeta(left.StaticType.Caps, upperMeta, plainName); ok {
			impl, err := mf(args)
			if err != nil {
				return ImplNull, err
			}
			if !impl.IsNull() {
				return impl, nil
			}
		}
	}
	rMetaUpper, rMeta := "__R"+strings.ToUpper(opName)+"__", "__r"+opName+"__"
	if len(args) >= 2 {
		right := args[1]
		if right.StaticType != nil {
			if mf, ok := lookupMeta(right.StaticType.Caps, rMetaUpper, rMeta); ok {
				impl, err := mf(args)
				if err != nil {
					return ImplNull, err
				}
				if !impl.IsNull() {
					return impl, nil
				}
			}
		}
	}
	// Exact-type candidates (left, then right) have all declined. Before
	// giving up, retry through each operand's base representation, per the
	// "exact type match before lifted/base" tie-break.
	if impl, ok, err := dispatchLifted(opName, args, 0); err != nil {
		return ImplNull, err
	} else if ok {
		return impl, nil
	}
	if len(args) >= 2 {
		if impl, ok, err := dispatchLifted(opName, args, 1); err != nil {
			return ImplNull, err
		} else if ok {
			return impl, nil
		}
	}
	return ImplNull, fmt.Errorf("ops: no operator %q for operand type %s", opName, left.StaticType)
}

// dispatchLifted retries Dispatch for args with args[idx]'s static type
// swapped for its LiftedFrom base, and — if that succeeds — wraps the
// result so args[idx] is unlifted (via the lifted type's "__unlift__"
// capability) before the resolved function ever sees it. Returns ok=false
// if args[idx]'s type isn't lifted, has no "__unlift__" capability, or the
// base type has no implementation of its own.
func dispatchLifted(opName string, args []OpArg, idx int) (OpImpl, bool, error) {
	t := args[idx].StaticType
	if t == nil || t.LiftedFrom == nil {
		return ImplNull, false, nil
	}
	unliftVal, ok := t.Capability("__unlift__")
	if !ok {
		return ImplNull, false, nil
	}
	unliftFn, ok := unliftVal.(object.Func)
	if !ok {
		return ImplNull, false, nil
	}
	baseArgs := make([]OpArg, len(args))
	copy(baseArgs, args)
	baseArgs[idx].StaticType = t.LiftedFrom
	impl, err := Dispatch(opName, baseArgs)
	if err != nil {
		return ImplNull, false, nil
	}
	return wrapUnliftArg(impl, idx, unliftFn, len(args)), true, nil
}

// wrapUnliftArg rebuilds impl's argument list so that the operand at idx is
// passed through convertFn first (an ArgConvert spec), while every other
// argument keeps whatever arrangement impl already called for — a plain
// passthrough for a Simple OpImpl, or impl's own ArgSpec otherwise.
func wrapUnliftArg(impl OpImpl, idx int, convertFn object.Func, nargs int) OpImpl {
	specs := make([]ArgSpec, nargs)
	if impl.IsSimple() {
		for i := range specs {
			specs[i] = ArgSpec{Kind: ArgPassthrough, Index: i}
		}
	} else {
		copy(specs, impl.Args)
	}
	inner := specs[idx]
	specs[idx] = ArgSpec{Kind: ArgConvert, Index: idx, ConvertFn: convertFn, Inner: &inner}
	return OpImpl{Func: impl.Func, Args: specs}
}
