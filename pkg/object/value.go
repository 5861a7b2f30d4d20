// Package object implements SPy's W-objects: the tagged runtime values
// that flow through both the interpreter and the redshift pass (spec.md
// §3.2), their types and capability tables (spec.md §3.3, §4.1), and the
// blue/red color system (spec.md §3.4, in color.go).
//
// Grounded on the Kind-tagged value model in the teacher's
// pkg/runtime/values.go (see DESIGN.md for why the file itself isn't
// reused: Able's union/interface/future/iterator kinds don't exist in
// SPy's object model).
package object

// Kind identifies a W-object's runtime category.
type Kind int

const (
	KindBool Kind = iota
	KindI8
	KindI32
	KindF64
	KindStr
	KindPtr
	KindStruct
	KindModule
	KindFunc
	KindType
	KindOpArg
	KindOpImpl
	KindException
	KindList
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindI8:
		return "i8"
	case KindI32:
		return "i32"
	case KindF64:
		return "f64"
	case KindStr:
		return "str"
	case KindPtr:
		return "ptr"
	case KindStruct:
		return "struct"
	case KindModule:
		return "module"
	case KindFunc:
		return "func"
	case KindType:
		return "type"
	case KindOpArg:
		return "OpArg"
	case KindOpImpl:
		return "OpImpl"
	case KindException:
		return "exception"
	case KindList:
		return "list"
	case KindTuple:
		return "tuple"
	default:
		return "<unknown kind>"
	}
}

// Value is the interface every W-object implements: the dynamic type it
// carries (spec.md §3.2 "every object knows its own type").
type Value interface {
	Type() *Type
}
