// Package ops implements SPy's operator dispatch protocol: OpArg/OpImpl
// (spec.md §4.1, §4.2) and the concrete arithmetic/comparison
// implementations operators resolve to (spec.md §4.3's edge cases).
//
// Grounded in full on original_source/spy/vm/opimpl.py's W_OpArg/W_OpImpl.
package ops

import (
	"fmt"

	"spy/corelang/pkg/errs"
	"spy/corelang/pkg/object"
)

// OpArg is a lazily-forceable operand passed through the dispatch
// machinery: it carries the operand's static type and color eagerly, but
// only carries its concrete blue value when the operand is actually blue,
// mirroring spy/vm/opimpl.py's W_OpArg (w_static_type, loc, _w_blueval).
type OpArg struct {
	Color      object.Color
	StaticType *object.Type
	BlueVal    object.Value // nil unless Color == object.Blue
	Loc        errs.Loc
}

func NewOpArg(color object.Color, t *object.Type, blueVal object.Value, loc errs.Loc) OpArg {
	return OpArg{Color: color, StaticType: t, BlueVal: blueVal, Loc: loc}
}

// FromValue builds a blue OpArg from a concrete already-known value.
func FromValue(v object.Value, loc errs.Loc) OpArg {
	return OpArg{Color: object.Blue, StaticType: v.Type(), BlueVal: v, Loc: loc}
}

func (a OpArg) IsBlue() bool { return a.Color == object.Blue }

// BlueEnsure returns the OpArg's blue value, erroring if the operand turned
// out to be red (a metafunction asked for a compile-time-known value but
// got one only available at run time).
func (a OpArg) BlueEnsure() (object.Value, error) {
	if !a.IsBlue() {
		return nil, fmt.Errorf("ops: expected a blue value at %s, got a red one", a.Loc)
	}
	return a.BlueVal, nil
}

// OpArgEq compares two OpArgs' static types for equality of FQN, mirroring
// spy/vm/opimpl.py's W_OpArg.op_EQ: dispatch-time type identity, not value
// equality.
func OpArgEq(a, b OpArg) bool {
	if a.StaticType == nil || b.StaticType == nil {
		return a.StaticType == b.StaticType
	}
	return a.StaticType.FQN().Equal(b.StaticType.FQN())
}
