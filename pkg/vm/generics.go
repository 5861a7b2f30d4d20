package vm

import "spy/corelang/pkg/object"

// GenericCache is named by SPEC_FULL.md §5/§6 as the home for spec.md
// §4.4's "generics are ordinary blue functions memoized by argument FQN
// tuple" guarantee. The memoization itself lives one layer down, on
// pkg/object.ASTFunc (MemoKey/MemoBegin/MemoFinish): every blue ASTFunc
// already carries its own call-result cache, because memoization has to
// survive exactly as long as the function value itself does, and a
// separate VM-wide cache keyed only by FQN would either duplicate that
// bookkeeping or go stale the moment a function value is rebound.
//
// GenericCache exists anyway as the explicit, named place this behavior is
// documented from pkg/vm's side: a VM that wants to inspect or reset
// memoization state (a REPL re-evaluating a generic after editing it, a
// test asserting cache hits) goes through this type rather than reaching
// into pkg/object directly.
type GenericCache struct{}

// Reset clears fn's own memoization cache, forcing its next call (for any
// argument tuple) to re-run rather than hit a stale cached result — the
// operation a REPL needs after redefining a blue.generic function.
func (GenericCache) Reset(fn *object.ASTFunc) {
	fn.ResetMemo()
}
