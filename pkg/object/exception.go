package object

// Exception is the W-object carried by a raised error: a concrete
// exception type (e.g. builtins::TypeError, builtins::ZeroDivisionError)
// plus a message. Comparing two exceptions of different types is always
// false rather than an error (spec.md §4.3 edge cases), implemented in
// pkg/ops/compare.go.
type Exception struct {
	ExcType *Type
	Message string
}

func NewException(excType *Type, message string) *Exception {
	return &Exception{ExcType: excType, Message: message}
}

func (e *Exception) Type() *Type { return e.ExcType }

func (e *Exception) Error() string { return e.ExcType.String() + ": " + e.Message }
