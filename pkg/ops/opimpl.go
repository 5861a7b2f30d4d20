package ops

import "spy/corelang/pkg/object"

// ArgSpecKind tags how one argument of an OpImpl's call should be built,
// mirroring doppler.py's ArgSpec.Arg/Const/Convert used when shifting an
// operator call into the residual AST.
type ArgSpecKind int

const (
	// ArgPassthrough forwards the Index-th original operand unchanged.
	ArgPassthrough ArgSpecKind = iota
	// ArgConst substitutes a fixed, already-known value (used when a
	// metafunction partially applies one of its own operands, e.g. binding
	// `self`).
	ArgConst
	// ArgConvert wraps Inner's argument in a type-conversion call before
	// passing it (spec.md §4.3's "a type mismatch between a call's static
	// argument type and the callee's declared parameter type is resolved
	// by inserting an implicit conversion call").
	ArgConvert
)

// ArgSpec is one entry of an OpImpl.Args list: how to build the I-th actual
// argument of the call OpImpl.Func ends up receiving.
type ArgSpec struct {
	Kind       ArgSpecKind
	Index      int
	ConstVal   object.Value
	ConvertFn  object.Func // the conversion function to call, when Kind == ArgConvert
	Inner      *ArgSpec
}

// OpImpl is the result of dispatching an operator: which function to
// invoke and how to build its argument list, or the NULL sentinel meaning
// "no implementation found," mirroring spy/vm/opimpl.py's W_OpImpl.
type OpImpl struct {
	Func object.Func // nil means NULL
	Args []ArgSpec   // nil means "simple": pass the dispatch's own operands unchanged, in order
}

// ImplNull is the sentinel "no implementation" OpImpl (W_OpImpl.NULL in the
// original).
var ImplNull = OpImpl{}

func (o OpImpl) IsNull() bool { return o.Func == nil }

// IsSimple reports whether this OpImpl just forwards its dispatch operands
// unchanged (no Args list needed).
func (o OpImpl) IsSimple() bool { return o.Args == nil }

// IsDirectCall reports whether every ArgSpec is a plain, in-order
// passthrough, meaning callers can skip building a residual Call's
// argument-reordering machinery entirely.
func (o OpImpl) IsDirectCall() bool {
	if o.IsSimple() {
		return true
	}
	for i, spec := range o.Args {
		if spec.Kind != ArgPassthrough || spec.Index != i {
			return false
		}
	}
	return true
}

func Simple(fn object.Func) OpImpl { return OpImpl{Func: fn} }
