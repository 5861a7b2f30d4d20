package ops

import "spy/corelang/pkg/object"

// ExceptionsEqual implements spec.md §4.3's edge case: comparing two
// exception W-objects of different dynamic types is always false, not an
// error, unlike comparing most other mismatched types.
func ExceptionsEqual(a, b *object.Exception) bool {
	if !a.ExcType.FQN().Equal(b.ExcType.FQN()) {
		return false
	}
	return a.Message == b.Message
}
