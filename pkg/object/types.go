package object

import "spy/corelang/pkg/fqn"

// FieldLayout describes one field of a struct type: its name, its type,
// and its byte offset within the struct's flat layout (spec.md §3.3
// "types carry enough layout information for the [external] C emitter to
// compute field offsets").
type FieldLayout struct {
	Name   string
	Type   *Type
	Offset int
}

// Capabilities is a type's metaprotocol table: capability name (e.g.
// "__add__", "__ADD__", "__getattr__") to the Value implementing it,
// per spec.md §4.1. Upper-case entries are metafunctions invoked at
// dispatch time to produce an OpImpl; lower-case entries are ordinary
// functions auto-wrapped into a trivial OpImpl by pkg/ops.
type Capabilities map[string]Value

// Type is itself a W-object (its own Type() returns the singleton "type"
// type), carrying an FQN, a Kind, a capability table, and, for struct
// types, a field layout (spec.md §3.3).
type Type struct {
	FQNVal fqn.FQN
	Kind   Kind
	Caps   Capabilities

	// struct layout
	Fields   []FieldLayout
	SizeHint int

	// function type shape; meaningful when Kind == KindFunc
	Params []*Type
	VarArg *Type // nil if the function takes no variadic tail
	Result *Type
	FColor Color // the function *type's* own color: Blue for "blue function", Red otherwise

	// pointer element type; meaningful when Kind == KindPtr
	Elem *Type

	// LiftedFrom, when non-nil, names the low-level representation type
	// this type presents a user-facing wrapper over (spec.md §4.1's
	// __lift__/__unlift__ capability pair). pkg/ops.Dispatch only consults
	// it once every exact-type-match candidate on this type has declined,
	// per spec.md §4.2's "exact type match before lifted/base" tie-break.
	LiftedFrom *Type
}

func NewType(f fqn.FQN, kind Kind) *Type {
	return &Type{FQNVal: f, Kind: kind, Caps: Capabilities{}}
}

func (t *Type) FQN() fqn.FQN { return t.FQNVal }

func (t *Type) Type() *Type { return TypeType }

func (t *Type) Capability(name string) (Value, bool) {
	if t.Caps == nil {
		return nil, false
	}
	v, ok := t.Caps[name]
	return v, ok
}

func (t *Type) SetCapability(name string, v Value) {
	if t.Caps == nil {
		t.Caps = Capabilities{}
	}
	t.Caps[name] = v
}

func (t *Type) String() string {
	return t.FQNVal.String()
}

// Field looks up a struct field by name, returning its layout and whether
// it exists.
func (t *Type) Field(name string) (FieldLayout, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldLayout{}, false
}

// builtin singleton types, registered into a fresh fqn.Registry by
// pkg/vm's NewVM, which loops over BuiltinTypes when constructing a VM.
var (
	TypeBool      = NewType(fqn.Simple("builtins", "bool"), KindBool)
	TypeI8        = NewType(fqn.Simple("builtins", "i8"), KindI8)
	TypeI32       = NewType(fqn.Simple("builtins", "i32"), KindI32)
	TypeF64       = NewType(fqn.Simple("builtins", "f64"), KindF64)
	TypeStr       = NewType(fqn.Simple("builtins", "str"), KindStr)
	TypeType      = NewType(fqn.Simple("builtins", "type"), KindType)
	TypeModule    = NewType(fqn.Simple("builtins", "module"), KindModule)
	TypeException = NewType(fqn.Simple("builtins", "Exception"), KindException)
	TypeVoid      = NewType(fqn.Simple("builtins", "void"), KindStruct)
)

// BuiltinTypes lists every singleton builtin type, for registration and for
// iterating capability tables at VM construction time.
func BuiltinTypes() []*Type {
	return []*Type{TypeBool, TypeI8, TypeI32, TypeF64, TypeStr, TypeType, TypeModule, TypeException, TypeVoid}
}

// NewPointerType builds (a fresh, non-interned) pointer-to-elem type.
func NewPointerType(elem *Type, checked bool) *Type {
	name := "ptr checked"
	if !checked {
		name = "ptr release"
	}
	t := NewType(fqn.New("builtins", name, []fqn.Qualifier{{Key: "T", Value: elem.FQNVal.String()}}, 0), KindPtr)
	t.Elem = elem
	return t
}

// NewFuncType builds a function type with the given parameter types, an
// optional vararg tail type, a result type, and its own color.
func NewFuncType(f fqn.FQN, params []*Type, vararg *Type, result *Type, color Color) *Type {
	t := NewType(f, KindFunc)
	t.Params = params
	t.VarArg = vararg
	t.Result = result
	t.FColor = color
	return t
}

// NewLiftedType builds a type that presents a user-facing wrapper over
// base: dispatch on a value of this type tries the type's own capabilities
// first, and only falls back to base's (via unlift, spec.md §4.2) once every
// exact match has declined. lift/unlift are registered as the "__lift__"/
// "__unlift__" capabilities when non-nil, mirroring how every other
// metaprotocol entry is installed via SetCapability.
func NewLiftedType(f fqn.FQN, kind Kind, base *Type, lift, unlift Func) *Type {
	t := NewType(f, kind)
	t.LiftedFrom = base
	if lift != nil {
		t.SetCapability("__lift__", lift)
	}
	if unlift != nil {
		t.SetCapability("__unlift__", unlift)
	}
	return t
}
