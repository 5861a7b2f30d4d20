// Package interp implements SPy's frame evaluator in interp mode: a
// tree-walking evaluator over the typed AST that fully executes every
// node and returns an ordinary W-object (spec.md §3.7, §4.3).
//
// Grounded in full on original_source/spy/vm/astframe.py's AbstractFrame/
// ASTFrame. pkg/doppler's redshift-mode evaluator wraps a *Frame rather
// than subclassing it (Go has no inheritance): per spec.md §4.3, blue
// subexpressions are evaluated eagerly in both modes, and that shared
// "evaluate this blue thing" behavior is exactly what *Frame provides;
// pkg/doppler only adds the red-path residual-building logic on top.
package interp

import "spy/corelang/pkg/object"

// returnSignal, breakSignal, and continueSignal implement Go's error
// interface purely so ExecStmt/ExecBlock can propagate them up through
// ordinary error returns, mirroring spy/vm/astframe.py's Return/Break/
// Continue control-flow exceptions.
type returnSignal struct {
	Value object.Value
}

func (*returnSignal) Error() string { return "interp: return" }

type breakSignal struct{}

func (*breakSignal) Error() string { return "interp: break" }

type continueSignal struct{}

func (*continueSignal) Error() string { return "interp: continue" }

func asReturn(err error) (*returnSignal, bool) {
	r, ok := err.(*returnSignal)
	return r, ok
}

func isBreak(err error) bool {
	_, ok := err.(*breakSignal)
	return ok
}

func isContinue(err error) bool {
	_, ok := err.(*continueSignal)
	return ok
}
