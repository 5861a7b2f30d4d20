package object

import "spy/corelang/pkg/fqn"

// Standard exception types, per spec.md §4.3/§7. Each is a distinct *Type
// with Kind == KindException; ops.ExceptionsEqual compares exceptions by
// their type's FQN, so exceptions of different types are always unequal.
var (
	TypeErrorType         = NewType(fqn.Simple("builtins", "TypeError"), KindException)
	ValueErrorType        = NewType(fqn.Simple("builtins", "ValueError"), KindException)
	IndexErrorType        = NewType(fqn.Simple("builtins", "IndexError"), KindException)
	ZeroDivisionErrorType = NewType(fqn.Simple("builtins", "ZeroDivisionError"), KindException)
	AssertionErrorType    = NewType(fqn.Simple("builtins", "AssertionError"), KindException)
	NameErrorType         = NewType(fqn.Simple("builtins", "NameError"), KindException)
	ScopeErrorType        = NewType(fqn.Simple("builtins", "ScopeError"), KindException)
)

// BuiltinExceptionTypes lists every standard exception type, for
// registration into a fresh fqn.Registry at VM construction time.
func BuiltinExceptionTypes() []*Type {
	return []*Type{
		TypeErrorType, ValueErrorType, IndexErrorType, ZeroDivisionErrorType,
		AssertionErrorType, NameErrorType, ScopeErrorType,
	}
}
